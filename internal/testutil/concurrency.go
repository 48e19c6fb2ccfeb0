package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/vk/packgrid/internal/module"
	"github.com/vk/packgrid/internal/registry"
	"github.com/vk/packgrid/modules/js"
)

// SleeperModule is a shared, self-contained parser module for concurrency
// tests. It parses JS like the js module after sleeping, and records when
// each file was parsed, keyed by base name.
type SleeperModule struct {
	mu             sync.Mutex
	executionTimes map[string]*ExecutionRecord
	parses         map[string]int
	sleepDuration  time.Duration
}

// NewSleeperModule creates a new sleeper module for testing.
func NewSleeperModule(sleep time.Duration) *SleeperModule {
	return &SleeperModule{
		executionTimes: make(map[string]*ExecutionRecord),
		parses:         make(map[string]int),
		sleepDuration:  sleep,
	}
}

// Register replaces the JS parser with the sleeper.
func (m *SleeperModule) Register(r *registry.Registry) {
	r.RegisterParser(&registry.RegisteredParser{
		Name:        "sleeper",
		SourceTypes: []module.SourceType{module.JS},
		Parse:       m.parse,
	})
}

func (m *SleeperModule) parse(ctx context.Context, uri string, content []byte) (module.Module, error) {
	start := time.Now()
	select {
	case <-time.After(m.sleepDuration):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	end := time.Now()

	name := filepath.Base(uri)
	m.mu.Lock()
	m.executionTimes[name] = &ExecutionRecord{Start: start, End: end}
	m.parses[name]++
	m.mu.Unlock()

	return js.Parse(ctx, uri, content)
}

// Record returns the parse record of the named file, or nil.
func (m *SleeperModule) Record(name string) *ExecutionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.executionTimes[name]
}

// Parses returns how many times the named file was parsed.
func (m *SleeperModule) Parses(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.parses[name]
}

// FailerModule registers a parser that rejects every file of its source
// types with Err.
type FailerModule struct {
	Err         error
	SourceTypes []module.SourceType
}

// Register registers the failing parser.
func (m *FailerModule) Register(r *registry.Registry) {
	r.RegisterParser(&registry.RegisteredParser{
		Name:        "failer",
		SourceTypes: m.SourceTypes,
		Parse: func(context.Context, string, []byte) (module.Module, error) {
			return nil, m.Err
		},
	})
}

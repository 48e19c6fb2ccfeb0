// Package loader turns a canonical module URI into raw content.
package loader

import (
	"context"
	"fmt"

	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/fsutil"
)

// Loader reads module content by canonical URI.
type Loader struct {
	fsys fsutil.FS
}

// New creates a Loader reading through fsys.
func New(fsys fsutil.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load returns the raw bytes stored at uri. A missing file yields an error
// wrapping fs.ErrNotExist.
func (l *Loader) Load(ctx context.Context, uri string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := l.fsys.ReadFile(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", uri, err)
	}
	ctxlog.FromContext(ctx).Debug("Loaded module content.", "uri", uri, "bytes", len(data))
	return data, nil
}

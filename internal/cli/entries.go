package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/packgrid/internal/config"
)

// entryList collects repeated -entry flags. Each value is "name=path", or a
// bare path named after its file.
type entryList []config.Entry

func (l *entryList) String() string {
	parts := make([]string, 0, len(*l))
	for _, e := range *l {
		parts = append(parts, e.Name+"="+e.Path)
	}
	return strings.Join(parts, ",")
}

func (l *entryList) Set(value string) error {
	name, path, ok := strings.Cut(value, "=")
	if !ok {
		path = value
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if name == "" || path == "" {
		return fmt.Errorf("invalid entry %q: want name=path", value)
	}
	*l = append(*l, config.Entry{Name: name, Path: path})
	return nil
}

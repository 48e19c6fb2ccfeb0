package module

import (
	"path/filepath"
	"strings"
)

// SourceType identifies which parser family handles a module.
type SourceType int

const (
	JSON SourceType = iota
	CSS
	JS
	JSX
	TSX
	TS
)

var sourceTypeByExt = map[string]SourceType{
	"json": JSON,
	"css":  CSS,
	"js":   JS,
	"jsx":  JSX,
	"tsx":  TSX,
	"ts":   TS,
}

// String returns the extension associated with the source type.
func (s SourceType) String() string {
	for ext, st := range sourceTypeByExt {
		if st == s {
			return ext
		}
	}
	return "unknown"
}

// SourceTypeFromExt maps a file extension, with or without a leading dot, to
// its source type. Matching is exact and case-sensitive.
func SourceTypeFromExt(ext string) (SourceType, bool) {
	st, ok := sourceTypeByExt[strings.TrimPrefix(ext, ".")]
	return st, ok
}

// SourceTypeFromURI derives the source type from the extension of a URI.
func SourceTypeFromURI(uri string) (SourceType, bool) {
	ext := filepath.Ext(uri)
	if ext == "" {
		return 0, false
	}
	return SourceTypeFromExt(ext)
}

// Package css registers the parser for stylesheets. Only @import rules are
// treated as dependencies; url() references are assets and out of scope.
package css

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	csslex "github.com/tdewolff/parse/v2/css"
	"github.com/vk/packgrid/internal/dependency"
	"github.com/vk/packgrid/internal/module"
	"github.com/vk/packgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Stylesheet is a parsed CSS module.
type Stylesheet struct {
	source  string
	imports []module.Import
}

func (s *Stylesheet) Render() string                { return s.source }
func (s *Stylesheet) Dependencies() []module.Import { return s.imports }

// Parse collects the @import rules of a stylesheet. Remote imports are left
// to the browser.
func Parse(ctx context.Context, uri string, content []byte) (module.Module, error) {
	l := csslex.NewLexer(parse.NewInputBytes(content))

	var imports []module.Import
	seen := make(map[string]struct{})
	for {
		tt, data := next(l)
		if tt == csslex.ErrorToken {
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("failed to scan %s: %w", uri, err)
			}
			break
		}
		if tt != csslex.AtKeywordToken || !strings.EqualFold(string(data), "@import") {
			continue
		}
		spec, ok := importTarget(l)
		if !ok || isRemote(spec) {
			continue
		}
		if _, dup := seen[spec]; dup {
			continue
		}
		seen[spec] = struct{}{}
		imports = append(imports, module.Import{Specifier: spec, Kind: dependency.AtImport})
	}
	return &Stylesheet{source: string(content), imports: imports}, nil
}

// next skips whitespace and comments.
func next(l *csslex.Lexer) (csslex.TokenType, []byte) {
	for {
		tt, data := l.Next()
		if tt != csslex.WhitespaceToken && tt != csslex.CommentToken {
			return tt, data
		}
	}
}

// importTarget reads the prelude of an @import rule: a string, url(...) or
// url("...").
func importTarget(l *csslex.Lexer) (string, bool) {
	tt, data := next(l)
	switch tt {
	case csslex.StringToken:
		return unquote(string(data)), true
	case csslex.URLToken:
		if len(data) <= len("url(") {
			return "", false
		}
		inner := strings.TrimSuffix(string(data[len("url("):]), ")")
		return unquote(strings.TrimSpace(inner)), true
	case csslex.FunctionToken:
		if !strings.EqualFold(string(data), "url(") {
			return "", false
		}
		if tt, data = next(l); tt == csslex.StringToken {
			return unquote(string(data)), true
		}
	}
	return "", false
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func isRemote(spec string) bool {
	return strings.HasPrefix(spec, "http://") ||
		strings.HasPrefix(spec, "https://") ||
		strings.HasPrefix(spec, "//") ||
		strings.HasPrefix(spec, "data:")
}

// Register registers the parser with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterParser(&registry.RegisteredParser{
		Name:        "css",
		SourceTypes: []module.SourceType{module.CSS},
		Parse:       Parse,
	})
}

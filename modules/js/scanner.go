package js

import (
	"errors"
	"io"

	"github.com/tdewolff/parse/v2"
	jslex "github.com/tdewolff/parse/v2/js"
	"github.com/vk/packgrid/internal/dependency"
	"github.com/vk/packgrid/internal/module"
)

// token is a significant lexeme: whitespace and comments are dropped.
type token struct {
	tt   jslex.TokenType
	data string
}

// Scan returns the dependencies declared in source in declaration order.
// Repeated (specifier, kind) pairs are reported once. On a lexical error the
// dependencies found up to that point are returned along with the error.
func Scan(source string) ([]module.Import, error) {
	toks, err := tokenize(source)

	imports := make([]module.Import, 0)
	seen := make(map[module.Import]struct{})
	add := func(spec string, kind dependency.Kind) {
		imp := module.Import{Specifier: spec, Kind: kind}
		if _, dup := seen[imp]; dup {
			return
		}
		seen[imp] = struct{}{}
		imports = append(imports, imp)
	}

	for i := 0; i < len(toks); i++ {
		switch tok := toks[i]; {
		case tok.tt == jslex.ImportToken:
			if spec, ok := callArgument(toks, i+1); ok {
				add(spec, dependency.DynamicImport)
				continue
			}
			if spec, next, ok := fromClause(toks, i+1, true); ok {
				add(spec, dependency.Import)
				i = next
			}
		case tok.tt == jslex.ExportToken:
			if spec, next, ok := fromClause(toks, i+1, false); ok {
				add(spec, dependency.Import)
				i = next
			}
		case tok.tt == jslex.IdentifierToken && tok.data == "require":
			if i > 0 && toks[i-1].tt == jslex.DotToken {
				continue
			}
			if spec, ok := callArgument(toks, i+1); ok {
				add(spec, dependency.Require)
			}
		}
	}
	return imports, err
}

// callArgument matches `( "spec" )` or `( "spec", ...` starting at i.
func callArgument(toks []token, i int) (string, bool) {
	if i+2 >= len(toks) || toks[i].tt != jslex.OpenParenToken {
		return "", false
	}
	spec, ok := literal(toks[i+1])
	if !ok {
		return "", false
	}
	switch toks[i+2].tt {
	case jslex.CloseParenToken, jslex.CommaToken:
		return spec, true
	}
	return "", false
}

// fromClause matches the tail of an import or re-export declaration starting
// at i: an optional clause of bindings followed by `from "spec"`. A bare
// string is accepted only for side-effect imports. It returns the index of
// the specifier token.
func fromClause(toks []token, i int, sideEffect bool) (string, int, bool) {
	if i >= len(toks) {
		return "", 0, false
	}
	if sideEffect && toks[i].tt == jslex.StringToken {
		spec, _ := literal(toks[i])
		return spec, i, true
	}
	// export declarations other than `export *` and `export {` are local.
	if !sideEffect {
		first := toks[i]
		if first.tt == jslex.IdentifierToken && first.data == "type" && i+1 < len(toks) {
			first = toks[i+1]
		}
		if first.tt != jslex.MulToken && first.tt != jslex.OpenBraceToken {
			return "", 0, false
		}
	}
	for ; i < len(toks); i++ {
		switch tt := toks[i].tt; {
		case tt == jslex.FromToken && i+1 < len(toks) && toks[i+1].tt == jslex.StringToken:
			spec, _ := literal(toks[i+1])
			return spec, i + 1, true
		case tt == jslex.OpenBraceToken, tt == jslex.CloseBraceToken,
			tt == jslex.CommaToken, tt == jslex.MulToken, jslex.IsIdentifierName(tt):
		default:
			return "", 0, false
		}
	}
	return "", 0, false
}

// literal unquotes a string token or a template without substitutions.
func literal(tok token) (string, bool) {
	switch tok.tt {
	case jslex.StringToken, jslex.TemplateToken:
		if len(tok.data) < 2 {
			return "", false
		}
		return tok.data[1 : len(tok.data)-1], true
	}
	return "", false
}

func tokenize(source string) ([]token, error) {
	l := jslex.NewLexer(parse.NewInputString(source))

	var toks []token
	prev := jslex.ErrorToken
	for {
		tt, data := l.Next()
		switch tt {
		case jslex.ErrorToken:
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return toks, err
			}
			return toks, nil
		case jslex.WhitespaceToken, jslex.LineTerminatorToken,
			jslex.CommentToken, jslex.CommentLineTerminatorToken:
			continue
		case jslex.DivToken, jslex.DivEqToken:
			if regexpAllowed(prev) {
				tt, data = l.RegExp()
			}
		}
		toks = append(toks, token{tt: tt, data: string(data)})
		prev = tt
	}
}

// regexpAllowed reports whether a slash following prev starts a regular
// expression literal rather than a division.
func regexpAllowed(prev jslex.TokenType) bool {
	switch prev {
	case jslex.ErrorToken:
		return true
	case jslex.CloseParenToken, jslex.CloseBracketToken, jslex.CloseBraceToken,
		jslex.ThisToken, jslex.SuperToken, jslex.TrueToken, jslex.FalseToken, jslex.NullToken:
		return false
	}
	return jslex.IsPunctuator(prev) || jslex.IsReservedWord(prev)
}

package format

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

func formatCSS(src, unit string) (string, error) {
	if err := checkCSS(src); err != nil {
		return "", err
	}

	w := &indentWriter{unit: unit}
	var selectors []string

	p := css.NewParser(parse.NewInput(strings.NewReader(src)), false)
	for {
		gt, tt, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); !errors.Is(err, io.EOF) {
				return "", malformed(CSS, err.Error())
			}
			if w.depth != 0 {
				return "", malformed(CSS, "unclosed block")
			}
			return w.String(), nil
		case css.CommentGrammar:
			w.line(string(data))
		case css.AtRuleGrammar:
			w.line(joinPrelude(string(data), cssValues(p.Values())) + ";")
		case css.BeginAtRuleGrammar:
			w.line(joinPrelude(string(data), cssValues(p.Values())) + " {")
			w.depth++
		case css.QualifiedRuleGrammar:
			selectors = append(selectors, cssValues(p.Values()))
		case css.BeginRulesetGrammar:
			selectors = append(selectors, cssValues(p.Values()))
			w.line(strings.Join(selectors, ", ") + " {")
			selectors = selectors[:0]
			w.depth++
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			w.line(string(data) + ":" + cssValues(p.Values()) + ";")
		case css.EndRulesetGrammar, css.EndAtRuleGrammar:
			if w.depth == 0 {
				return "", malformed(CSS, "unexpected '}'")
			}
			w.depth--
			w.line("}")
		case css.TokenGrammar:
			if tt == css.SemicolonToken {
				continue
			}
			if s := strings.TrimSpace(string(data)); s != "" {
				w.line(s)
			}
		}
	}
}

// checkCSS walks the token stream for unbalanced braces and unterminated
// comments or strings, which the parser recovers from silently.
func checkCSS(src string) error {
	l := css.NewLexer(parse.NewInput(strings.NewReader(src)))
	depth := 0
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); !errors.Is(err, io.EOF) {
				return malformed(CSS, err.Error())
			}
			if depth != 0 {
				return malformed(CSS, "unclosed block")
			}
			return nil
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			if depth == 0 {
				return malformed(CSS, "unexpected '}'")
			}
			depth--
		case css.CommentToken:
			if len(data) < 4 || !bytes.HasSuffix(data, []byte("*/")) {
				return malformed(CSS, "unterminated comment")
			}
		case css.BadStringToken:
			return malformed(CSS, "unterminated string")
		case css.StringToken:
			if len(data) < 2 || data[len(data)-1] != data[0] {
				return malformed(CSS, "unterminated string")
			}
		}
	}
}

// cssValues renders a token run with whitespace collapsed to single spaces.
func cssValues(vals []css.Token) string {
	var b strings.Builder
	space := false
	for _, v := range vals {
		if v.TokenType == css.WhitespaceToken {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.Write(v.Data)
	}
	return b.String()
}

func joinPrelude(keyword, prelude string) string {
	if prelude == "" {
		return keyword
	}
	return keyword + " " + prelude
}

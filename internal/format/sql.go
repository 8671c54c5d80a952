package format

import "strings"

type sqlKind int

const (
	sqlWord sqlKind = iota
	sqlQuoted
	sqlPunct
	sqlComment
)

type sqlToken struct {
	text string
	kind sqlKind
}

// Phrases that start a new line at the current depth, longest first.
var sqlClauses = [][]string{
	{"LEFT", "OUTER", "JOIN"},
	{"RIGHT", "OUTER", "JOIN"},
	{"FULL", "OUTER", "JOIN"},
	{"GROUP", "BY"},
	{"ORDER", "BY"},
	{"INSERT", "INTO"},
	{"DELETE", "FROM"},
	{"UNION", "ALL"},
	{"LEFT", "JOIN"},
	{"RIGHT", "JOIN"},
	{"INNER", "JOIN"},
	{"CROSS", "JOIN"},
	{"FULL", "JOIN"},
	{"SELECT"},
	{"FROM"},
	{"WHERE"},
	{"HAVING"},
	{"LIMIT"},
	{"OFFSET"},
	{"UNION"},
	{"VALUES"},
	{"UPDATE"},
	{"SET"},
	{"JOIN"},
}

// Keywords that start a new line one level deeper than the clause.
var sqlConditions = map[string]bool{"AND": true, "OR": true, "ON": true}

func formatSQL(src, unit string) (string, error) {
	toks, err := tokenizeSQL(src)
	if err != nil {
		return "", err
	}

	f := &sqlFormatter{w: indentWriter{unit: unit}}
	var parens []bool // true when the paren opened a subquery

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.kind {
		case sqlComment:
			f.emit(t.text)
			f.flush()
		case sqlPunct:
			switch t.text {
			case "(":
				sub := i+1 < len(toks) && toks[i+1].kind == sqlWord && strings.EqualFold(toks[i+1].text, "SELECT")
				parens = append(parens, sub)
				f.emit("(")
				if sub {
					f.flush()
					f.w.depth++
				}
			case ")":
				if len(parens) == 0 {
					return "", malformed(SQL, "unbalanced ')'")
				}
				sub := parens[len(parens)-1]
				parens = parens[:len(parens)-1]
				if sub {
					f.flush()
					f.w.depth--
				}
				f.emit(")")
			case ";":
				f.emit(";")
				f.flush()
			default:
				f.emit(t.text)
			}
		case sqlWord:
			if n := matchClause(toks, i); n > 0 {
				f.flush()
				for _, c := range toks[i : i+n] {
					f.emit(c.text)
				}
				i += n - 1
				continue
			}
			if sqlConditions[strings.ToUpper(t.text)] {
				f.flush()
				f.extra = 1
			}
			f.emit(t.text)
		default:
			f.emit(t.text)
		}
	}

	if len(parens) > 0 {
		return "", malformed(SQL, "unbalanced '('")
	}
	f.flush()
	return f.w.String(), nil
}

type sqlFormatter struct {
	w       indentWriter
	cur     strings.Builder
	extra   int
	noSpace bool
}

func (f *sqlFormatter) emit(tok string) {
	if f.cur.Len() > 0 && !f.noSpace && tok != "," && tok != ")" && tok != ";" {
		f.cur.WriteByte(' ')
	}
	f.cur.WriteString(tok)
	f.noSpace = tok == "("
}

func (f *sqlFormatter) flush() {
	if f.cur.Len() > 0 {
		f.w.lineAt(f.w.depth+f.extra, f.cur.String())
	}
	f.cur.Reset()
	f.extra = 0
	f.noSpace = false
}

func matchClause(toks []sqlToken, i int) int {
	for _, phrase := range sqlClauses {
		if i+len(phrase) > len(toks) {
			continue
		}
		ok := true
		for j, word := range phrase {
			t := toks[i+j]
			if t.kind != sqlWord || !strings.EqualFold(t.text, word) {
				ok = false
				break
			}
		}
		if ok {
			return len(phrase)
		}
	}
	return 0
}

func tokenizeSQL(src string) ([]sqlToken, error) {
	var toks []sqlToken
	rs := []rune(src)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			i++
		case r == '-' && i+1 < len(rs) && rs[i+1] == '-':
			j := i
			for j < len(rs) && rs[j] != '\n' {
				j++
			}
			toks = append(toks, sqlToken{text: strings.TrimSpace(string(rs[i:j])), kind: sqlComment})
			i = j
		case r == '\'' || r == '"' || r == '`':
			j := i + 1
			for {
				if j >= len(rs) {
					return nil, malformed(SQL, "unterminated quoted string")
				}
				if rs[j] == r {
					// doubled quote is an escaped quote
					if j+1 < len(rs) && rs[j+1] == r {
						j += 2
						continue
					}
					break
				}
				j++
			}
			toks = append(toks, sqlToken{text: string(rs[i : j+1]), kind: sqlQuoted})
			i = j + 1
		case strings.ContainsRune("(),;", r):
			toks = append(toks, sqlToken{text: string(r), kind: sqlPunct})
			i++
		default:
			j := i
			for j < len(rs) && !strings.ContainsRune(" \t\n\r(),;'\"`", rs[j]) {
				j++
			}
			toks = append(toks, sqlToken{text: string(rs[i:j]), kind: sqlWord})
			i = j
		}
	}
	return toks, nil
}

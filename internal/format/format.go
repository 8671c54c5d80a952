// Package format provides the pretty-printing collaborator used by the
// FormatXML, FormatJSON, FormatCSS and FormatSQL filters. The filters treat it
// as a black box: text in, formatted text or an error out.
package format

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names a supported source language.
type Kind string

const (
	XML  Kind = "xml"
	JSON Kind = "json"
	CSS  Kind = "css"
	SQL  Kind = "sql"
)

// ErrMalformed is wrapped by every error caused by unparseable input.
var ErrMalformed = errors.New("malformed input")

// Formatter pretty-prints source text of a given kind.
type Formatter interface {
	Format(kind Kind, src string) (string, error)
}

// Beautifier is the default Formatter.
type Beautifier struct {
	Indent string // indentation unit, four spaces when empty
}

// Default returns a Beautifier indenting with four spaces.
func Default() Formatter {
	return Beautifier{Indent: "    "}
}

// Format implements Formatter.
func (b Beautifier) Format(kind Kind, src string) (string, error) {
	unit := b.Indent
	if unit == "" {
		unit = "    "
	}
	switch kind {
	case JSON:
		return formatJSON(src, unit)
	case XML:
		return formatXML(src, unit)
	case CSS:
		return formatCSS(src, unit)
	case SQL:
		return formatSQL(src, unit)
	default:
		return "", fmt.Errorf("format: unknown kind %q", kind)
	}
}

func malformed(kind Kind, detail string) error {
	return fmt.Errorf("format %s: %w: %s", kind, ErrMalformed, detail)
}

// indentWriter accumulates indented output lines.
type indentWriter struct {
	b     strings.Builder
	unit  string
	depth int
}

func (w *indentWriter) line(s string) {
	w.lineAt(w.depth, s)
}

func (w *indentWriter) lineAt(depth int, s string) {
	if w.b.Len() > 0 {
		w.b.WriteByte('\n')
	}
	if depth > 0 {
		w.b.WriteString(strings.Repeat(w.unit, depth))
	}
	w.b.WriteString(s)
}

func (w *indentWriter) String() string {
	return w.b.String()
}

package prompt

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReaderPrompt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"two lines", "foo\nbar\n", []string{"foo", "bar"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"eof without newline", "last", []string{"last", ""}},
		{"empty", "", []string{"", ""}},
		{"blank line", "\nx\n", []string{"", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			r := NewReader(strings.NewReader(tt.input), &out)
			for i, want := range tt.want {
				if got := r.Prompt("Search:"); got != want {
					t.Errorf("answer %d = %q, want %q", i, got, want)
				}
			}
			if !strings.HasPrefix(out.String(), "Search: ") {
				t.Errorf("label not written: %q", out.String())
			}
		})
	}
}

func TestReaderNilOut(t *testing.T) {
	r := NewReader(strings.NewReader("42\n"), nil)
	if got := r.Prompt("Line Width:"); got != "42" {
		t.Errorf("got %q", got)
	}
}

func TestReaderCloseReleasesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers")
	if err := os.WriteFile(path, []byte("yes\n"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}

	r := NewReader(f, nil)
	if got := r.Prompt("Search:"); got != "yes" {
		t.Errorf("got %q", got)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := f.Read(make([]byte, 1)); !errors.Is(err, os.ErrClosed) {
		t.Errorf("file still open after Close, read err = %v", err)
	}
}

func TestReaderCloseNonCloser(t *testing.T) {
	r := NewReader(strings.NewReader("x"), nil)
	if err := r.Close(); err != nil {
		t.Errorf("close on plain reader: %v", err)
	}
}

func TestStatic(t *testing.T) {
	s := Static{"Search:": "a"}
	if got := s.Prompt("Search:"); got != "a" {
		t.Errorf("got %q", got)
	}
	if got := s.Prompt("Replace:"); got != "" {
		t.Errorf("missing label returned %q", got)
	}
	var empty Static
	if got := empty.Prompt("Search:"); got != "" {
		t.Errorf("nil map returned %q", got)
	}
}

// Package prompt supplies interactive answers for filter inputs such as the
// Replace search pattern or the WordWrap width.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/edouard-claude/exsel/internal/engine"
	"github.com/edouard-claude/exsel/internal/logger"
)

// Form prompts on the terminal with a single-field huh form.
type Form struct{}

// Prompt implements engine.Prompter. Aborted or failed forms yield "".
func (Form) Prompt(label string) string {
	var answer string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(label).
			Value(&answer),
	))
	if err := form.Run(); err != nil {
		logger.Debug("prompt aborted", "label", label, "error", err)
		return ""
	}
	return answer
}

// Reader prompts by writing the label to Out and reading one line from In.
type Reader struct {
	In  *bufio.Reader
	Out io.Writer

	src io.Reader
}

// NewReader wraps in and out as a line prompter.
func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{In: bufio.NewReader(in), Out: out, src: in}
}

// Close closes the underlying input when it is closable.
func (r *Reader) Close() error {
	if c, ok := r.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Prompt implements engine.Prompter. EOF before a newline keeps what was read.
func (r *Reader) Prompt(label string) string {
	if r.Out != nil {
		fmt.Fprintf(r.Out, "%s ", label)
	}
	line, err := r.In.ReadString('\n')
	if err != nil && err != io.EOF {
		logger.Debug("prompt read failed", "label", label, "error", err)
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

// Static answers from a fixed label-to-value map.
type Static map[string]string

// Prompt implements engine.Prompter.
func (s Static) Prompt(label string) string {
	return s[label]
}

// Auto picks a prompter for the current process. A terminal on stdin gets the
// huh form; otherwise answers are read from /dev/tty when it can be opened,
// since stdin may carry the selection text. With no terminal at all, every
// answer is empty. The returned func releases the terminal handle, if any.
func Auto() (engine.Prompter, func() error) {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return Form{}, noClose
	}
	if tty, err := os.Open("/dev/tty"); err == nil {
		r := NewReader(tty, os.Stderr)
		return r, r.Close
	}
	return Static(nil), noClose
}

func noClose() error { return nil }

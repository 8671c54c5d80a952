package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/edouard-claude/exsel/internal/config"
	"github.com/edouard-claude/exsel/internal/filter"
	"github.com/edouard-claude/exsel/internal/report"
	"github.com/edouard-claude/exsel/internal/utils"
)

var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	StatStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Color toggles styling globally. It is set from the [display] config section.
var Color = true

// IsTerminal returns true if stdout is a TTY.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func styled() bool {
	return Color && IsTerminal()
}

// PrintResult prints a filter result to stdout, highlighted with the
// selection style when attached to a terminal.
func PrintResult(out filter.Output, style config.Style, verbose int) {
	if verbose > 0 && styled() {
		fmt.Fprintln(os.Stderr, DimStyle.Render("--- exsel result ---"))
	}
	text := out.String()
	if styled() {
		text = RenderSelection(text, style)
	}
	fmt.Println(text)
}

// RenderSelection applies the selection highlight to s. Empty style fields
// leave the terminal default in place.
func RenderSelection(s string, style config.Style) string {
	if style.Color == "" && style.Background == "" {
		return s
	}
	st := lipgloss.NewStyle()
	if style.Color != "" {
		st = st.Foreground(lipgloss.Color(style.Color))
	}
	if style.Background != "" {
		st = st.Background(lipgloss.Color(style.Background))
	}
	return st.Render(s)
}

// PrintError prints a styled error to stderr.
func PrintError(msg string) {
	if styled() {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("exsel: "+msg))
	} else {
		fmt.Fprintln(os.Stderr, "exsel: "+msg)
	}
}

// PrintHint prints an advisory line to stderr, such as where a tee copy
// was saved.
func PrintHint(msg string) {
	printHint(os.Stderr, msg)
}

func printHint(w io.Writer, msg string) {
	if styled() {
		msg = WarnStyle.Render(msg)
	}
	fmt.Fprintln(w, msg)
}

// Notice writes a one-line summary of each reported result. It stands in for
// a desktop notification when running from a terminal.
type Notice struct {
	W     io.Writer
	Width int
}

// NewNotice returns a Notice writing to stderr.
func NewNotice() *Notice {
	return &Notice{W: os.Stderr, Width: 40}
}

// Notify implements report.Notifier.
func (n *Notice) Notify(r report.Notification) error {
	w := n.W
	if w == nil {
		w = os.Stderr
	}
	width := n.Width
	if width <= 0 {
		width = 40
	}
	original := utils.Truncate(oneLine(utils.StripANSI(r.Original)), width)
	modified := utils.Truncate(oneLine(utils.StripANSI(r.Modified.String())), width)

	var err error
	if styled() {
		_, err = fmt.Fprintf(w, "%s %s %s %s\n",
			HeaderStyle.Render(r.Filter+":"), DimStyle.Render(original), DimStyle.Render("→"), SuccessStyle.Render(modified))
	} else {
		_, err = fmt.Fprintf(w, "%s: %s → %s\n", r.Filter, original, modified)
	}
	return err
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FormatSeparator returns a horizontal separator line.
func FormatSeparator(width int) string {
	return strings.Repeat("═", width)
}

// FormatTable formats data as a simple aligned table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}

	return b.String()
}

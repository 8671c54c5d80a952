package utils

import (
	"fmt"
	"unicode/utf8"
)

var ansiRe = NewLazyRegex(`\x1b\[[0-9;]*[a-zA-Z]`)

// Truncate truncates s to max runes, appending "..." if truncated.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// StripANSI removes ANSI escape codes from s.
func StripANSI(s string) string {
	return ansiRe.Re().ReplaceAllString(s, "")
}

// FormatCount formats a character count for display: "1.2M", "59.2K", "694".
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

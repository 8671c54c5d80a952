// Package tee keeps a copy of selection text on disk so it can be recovered
// after a filter fails.
package tee

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// Modes.
const (
	ModeFailures = "failures"
	ModeAlways   = "always"
	ModeNever    = "never"
)

// Config for tee behavior.
type Config struct {
	Enabled     bool
	Mode        string // "failures", "always", "never"
	MaxFiles    int
	MaxFileSize int64
	MinSize     int
	Dir         string
}

// DefaultConfig returns tee defaults.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Enabled:     true,
		Mode:        ModeFailures,
		MaxFiles:    20,
		MaxFileSize: 1 << 20, // 1MB
		MinSize:     200,
		Dir:         filepath.Join(home, ".local", "share", "exsel", "tee"),
	}
}

// MaybeSave writes text to the tee directory if cfg asks for it. failed
// reports whether the filter run failed. The returned hint names the file,
// or is empty when nothing was saved.
func MaybeSave(text string, failed bool, filterID string, cfg Config) string {
	if !cfg.Enabled || cfg.Mode == ModeNever {
		return ""
	}
	if os.Getenv("EXSEL_TEE") == "0" {
		return ""
	}

	shouldSave := cfg.Mode == ModeAlways || (cfg.Mode == ModeFailures && failed)
	if !shouldSave {
		return ""
	}
	if utf8.RuneCountInString(text) < cfg.MinSize {
		return ""
	}

	dir := cfg.Dir
	if envDir := os.Getenv("EXSEL_TEE_DIR"); envDir != "" {
		dir = envDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ""
	}

	data := truncateBytes(text, cfg.MaxFileSize)

	safeName := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, filterID)

	filename := fmt.Sprintf("%d-%s.txt", time.Now().UnixNano(), safeName)
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		return ""
	}

	rotateFiles(dir, cfg.MaxFiles)

	return fmt.Sprintf("[selection saved: %s]", path)
}

// truncateBytes cuts s to at most max bytes on a rune boundary.
func truncateBytes(s string, max int64) string {
	if max <= 0 || int64(len(s)) <= max {
		return s
	}
	cut := int(max)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func rotateFiles(dir string, maxFiles int) {
	if maxFiles <= 0 {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var saved []os.DirEntry
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
			saved = append(saved, e)
		}
	}
	if len(saved) <= maxFiles {
		return
	}

	// Timestamp prefix sorts chronologically.
	sort.Slice(saved, func(i, j int) bool {
		return saved[i].Name() < saved[j].Name()
	})

	toRemove := len(saved) - maxFiles
	for i := 0; i < toRemove; i++ {
		os.Remove(filepath.Join(dir, saved[i].Name()))
	}
}

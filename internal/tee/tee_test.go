package tee

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testConfig(dir string) Config {
	return Config{
		Enabled:     true,
		Mode:        ModeFailures,
		MaxFiles:    3,
		MaxFileSize: 1 << 20,
		MinSize:     200,
		Dir:         dir,
	}
}

func TestMaybeSaveOnFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	text := strings.Repeat("<a><b></a>\n", 30)

	hint := MaybeSave(text, true, "FormatXML", cfg)
	if hint == "" {
		t.Fatal("expected hint, got empty")
	}
	if !strings.Contains(hint, "[selection saved:") {
		t.Errorf("unexpected hint: %q", hint)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected 1 file, got %d", len(entries))
	}
	if !strings.HasSuffix(entries[0].Name(), "-FormatXML.txt") {
		t.Errorf("file name = %q", entries[0].Name())
	}
	data, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if string(data) != text {
		t.Error("saved text differs")
	}
}

func TestMaybeSaveNoSaveOnSuccess(t *testing.T) {
	cfg := testConfig(t.TempDir())
	if hint := MaybeSave(strings.Repeat("x", 500), false, "MD5", cfg); hint != "" {
		t.Errorf("expected no save on success, got %q", hint)
	}
}

func TestMaybeSaveSmallText(t *testing.T) {
	cfg := testConfig(t.TempDir())
	if hint := MaybeSave("small", true, "MD5", cfg); hint != "" {
		t.Errorf("expected no save for small text, got %q", hint)
	}
}

func TestMaybeSaveDisabled(t *testing.T) {
	for _, cfg := range []Config{
		{Enabled: false, Mode: ModeAlways, Dir: t.TempDir()},
		{Enabled: true, Mode: ModeNever, Dir: t.TempDir()},
	} {
		if hint := MaybeSave(strings.Repeat("x", 500), true, "MD5", cfg); hint != "" {
			t.Errorf("expected no save, got %q", hint)
		}
	}
}

func TestMaybeSaveModeAlways(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Mode = ModeAlways
	if hint := MaybeSave(strings.Repeat("x", 500), false, "FormatJSON", cfg); hint == "" {
		t.Error("expected save in always mode")
	}
}

func TestMaybeSaveEnvDisable(t *testing.T) {
	t.Setenv("EXSEL_TEE", "0")
	cfg := testConfig(t.TempDir())
	if hint := MaybeSave(strings.Repeat("x", 500), true, "MD5", cfg); hint != "" {
		t.Errorf("expected no save with EXSEL_TEE=0, got %q", hint)
	}
}

func TestMaybeSaveEnvDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EXSEL_TEE_DIR", dir)
	cfg := testConfig(filepath.Join(t.TempDir(), "unused"))
	if hint := MaybeSave(strings.Repeat("x", 500), true, "MD5", cfg); !strings.Contains(hint, dir) {
		t.Errorf("hint %q does not point into %s", hint, dir)
	}
}

func TestMaybeSaveSanitizesName(t *testing.T) {
	dir := t.TempDir()
	MaybeSave(strings.Repeat("x", 500), true, "../Pig Latin", testConfig(dir))
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), "----Pig-Latin.txt") {
		t.Errorf("entries = %v", entries)
	}
}

func TestTruncateBytes(t *testing.T) {
	tests := []struct {
		s    string
		max  int64
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "h"},
		{"héllo", 3, "hé"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncateBytes(tt.s, tt.max); got != tt.want {
			t.Errorf("truncateBytes(%q, %d) = %q, want %q", tt.s, tt.max, got, tt.want)
		}
	}
}

func TestRotateFiles(t *testing.T) {
	dir := t.TempDir()

	for i := range 5 {
		path := filepath.Join(dir, strings.Repeat("a", i+1)+".txt")
		_ = os.WriteFile(path, []byte("data"), 0644)
	}
	_ = os.WriteFile(filepath.Join(dir, "keep.log"), []byte("x"), 0644)

	rotateFiles(dir, 3)

	entries, _ := os.ReadDir(dir)
	count := 0
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".txt") {
			count++
		}
	}
	if count != 3 {
		t.Errorf("expected 3 files after rotation, got %d", count)
	}
	if _, err := os.Stat(filepath.Join(dir, "keep.log")); err != nil {
		t.Error("unrelated file removed")
	}
}

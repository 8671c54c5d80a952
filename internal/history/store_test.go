package history

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edouard-claude/exsel/internal/filter"
	"github.com/edouard-claude/exsel/internal/logger"
	"github.com/edouard-claude/exsel/internal/report"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpen(t *testing.T) {
	store := newTestStore(t)
	if store == nil {
		t.Fatal("store is nil")
	}
}

func TestOpenCreatesDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	store.Close()
}

func TestRecord(t *testing.T) {
	store := newTestStore(t)

	if err := store.Record("Uppercase", "https://example.com", "héllo", "HÉLLO"); err != nil {
		t.Fatalf("record: %v", err)
	}

	summary, err := store.GetSummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalRuns != 1 {
		t.Errorf("total runs = %d", summary.TotalRuns)
	}
	if summary.InputChars != 5 || summary.OutputChars != 5 {
		t.Errorf("chars = %d/%d, want 5/5", summary.InputChars, summary.OutputChars)
	}
}

func TestRecordLogsPruneFailure(t *testing.T) {
	store := newTestStore(t)

	var buf bytes.Buffer
	logger.Init(&logger.Config{Level: "debug", Output: &buf})
	t.Cleanup(func() { logger.Init(&logger.Config{Level: "warn", Output: os.Stderr}) })

	stmts := []string{
		`INSERT INTO reports (timestamp, filter, page_url, original, modified, input_chars, output_chars)
		 VALUES (datetime('now', '-100 days'), 'Reverse', '', 'ab', 'ba', 2, 2)`,
		`CREATE TRIGGER keep_reports BEFORE DELETE ON reports BEGIN SELECT RAISE(ABORT, 'pruning disabled'); END`,
	}
	for _, q := range stmts {
		if _, err := store.db.Exec(q); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}

	if err := store.Record("Uppercase", "", "a", "A"); err != nil {
		t.Fatalf("record should succeed when pruning fails: %v", err)
	}
	if !strings.Contains(buf.String(), "prune history") || !strings.Contains(buf.String(), "pruning disabled") {
		t.Errorf("prune failure not logged: %q", buf.String())
	}

	summary, err := store.GetSummary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.TotalRuns != 2 {
		t.Errorf("total runs = %d, want 2", summary.TotalRuns)
	}
}

func TestNotify(t *testing.T) {
	store := newTestStore(t)
	r := report.New(store, true)

	r.Report("hello", filter.Count(5), "Length", "https://example.com/page")

	recent, err := store.GetRecent(1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("got %d entries, want 1", len(recent))
	}
	e := recent[0]
	if e.Filter != "Length" || e.Modified != "5" || e.Original != "hello" || e.PageURL != "https://example.com/page" {
		t.Errorf("entry = %+v", e)
	}
}

func TestGetRecent(t *testing.T) {
	store := newTestStore(t)

	_ = store.Record("Reverse", "", "abc", "cba")
	_ = store.Record("Uppercase", "", "abc", "ABC")
	_ = store.Record("Lowercase", "", "ABC", "abc")

	recent, err := store.GetRecent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d entries, want 2", len(recent))
	}
	// Most recent first
	if recent[0].Filter != "Lowercase" {
		t.Errorf("first = %q", recent[0].Filter)
	}
	if recent[0].Timestamp == "" {
		t.Error("timestamp not populated")
	}
}

func TestGetByFilter(t *testing.T) {
	store := newTestStore(t)

	store.Record("Reverse", "", "ab", "ba")
	store.Record("Reverse", "", "cd", "dc")
	store.Record("Uppercase", "", "a", "A")

	stats, err := store.GetByFilter(10)
	if err != nil {
		t.Fatalf("by filter: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d filters, want 2", len(stats))
	}
	if stats[0].Filter != "Reverse" || stats[0].Runs != 2 {
		t.Errorf("first = %+v", stats[0])
	}

	summary, _ := store.GetSummary()
	if summary.DistinctFilters != 2 {
		t.Errorf("distinct = %d", summary.DistinctFilters)
	}
}

func TestDBPath(t *testing.T) {
	t.Setenv("EXSEL_DB_PATH", "/custom/path.db")
	if got := DBPath(""); got != "/custom/path.db" {
		t.Errorf("got %q", got)
	}

	t.Setenv("EXSEL_DB_PATH", "")
	if got := DBPath("/config/path.db"); got != "/config/path.db" {
		t.Errorf("got %q", got)
	}
}

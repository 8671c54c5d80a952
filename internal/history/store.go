package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	_ "modernc.org/sqlite"

	"github.com/edouard-claude/exsel/internal/logger"
	"github.com/edouard-claude/exsel/internal/report"
)

// Store keeps reported (original, modified) pairs in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens or creates a SQLite database for history.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &Store{db: db}, nil
}

// Record stores one reported result.
func (s *Store) Record(filter, pageURL, original, modified string) error {
	_, err := s.db.Exec(insertSQL, filter, pageURL, original, modified,
		utf8.RuneCountInString(original), utf8.RuneCountInString(modified))
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}

	if _, err := s.db.Exec(cleanupSQL); err != nil {
		logger.Debug("prune history", "error", err)
	}

	return nil
}

// Notify implements report.Notifier.
func (s *Store) Notify(n report.Notification) error {
	return s.Record(n.Filter, n.URL, n.Original, n.Modified.String())
}

// GetSummary returns aggregate history stats.
func (s *Store) GetSummary() (*Summary, error) {
	var sum Summary
	err := s.db.QueryRow(summarySQL).Scan(&sum.TotalRuns, &sum.DistinctFilters, &sum.InputChars, &sum.OutputChars)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	return &sum, nil
}

// GetRecent returns the last n reported results, newest first.
func (s *Store) GetRecent(n int) ([]Entry, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := s.db.Query(recentSQL, n)
	if err != nil {
		return nil, fmt.Errorf("recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Filter, &e.PageURL, &e.Original, &e.Modified, &e.InputChars, &e.OutputChars, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("recent scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetByFilter returns usage per filter, most used first.
func (s *Store) GetByFilter(limit int) ([]FilterStats, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(byFilterSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("by filter: %w", err)
	}
	defer rows.Close()

	var stats []FilterStats
	for rows.Next() {
		var f FilterStats
		if err := rows.Scan(&f.Filter, &f.Runs, &f.InputChars, &f.OutputChars, &f.LastUsed); err != nil {
			return nil, fmt.Errorf("by filter scan: %w", err)
		}
		stats = append(stats, f)
	}
	return stats, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DBPath resolves the history database path.
func DBPath(configPath string) string {
	if p := os.Getenv("EXSEL_DB_PATH"); p != "" {
		return p
	}
	if configPath != "" {
		return configPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "exsel", "history.db")
}

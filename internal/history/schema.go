package history

const createTableSQL = `
CREATE TABLE IF NOT EXISTS reports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp DATETIME DEFAULT (datetime('now')),
	filter TEXT NOT NULL,
	page_url TEXT NOT NULL,
	original TEXT NOT NULL,
	modified TEXT NOT NULL,
	input_chars INTEGER NOT NULL,
	output_chars INTEGER NOT NULL
);
`

const cleanupSQL = `DELETE FROM reports WHERE timestamp < datetime('now', '-90 days');`

const insertSQL = `
INSERT INTO reports (filter, page_url, original, modified, input_chars, output_chars)
VALUES (?, ?, ?, ?, ?, ?);
`

const summarySQL = `
SELECT
	COUNT(*) as total_runs,
	COUNT(DISTINCT filter) as distinct_filters,
	COALESCE(SUM(input_chars), 0) as input_chars,
	COALESCE(SUM(output_chars), 0) as output_chars
FROM reports;
`

const recentSQL = `
SELECT filter, page_url, original, modified, input_chars, output_chars, timestamp
FROM reports
ORDER BY id DESC
LIMIT ?;
`

const byFilterSQL = `
SELECT
	filter,
	COUNT(*) as runs,
	SUM(input_chars) as input_chars,
	SUM(output_chars) as output_chars,
	MAX(timestamp) as last_used
FROM reports
GROUP BY filter
ORDER BY runs DESC, filter ASC
LIMIT ?;
`

// Summary holds aggregate history stats.
type Summary struct {
	TotalRuns       int
	DistinctFilters int
	InputChars      int
	OutputChars     int
}

// Entry holds a single reported result.
type Entry struct {
	Filter      string
	PageURL     string
	Original    string
	Modified    string
	InputChars  int
	OutputChars int
	Timestamp   string
}

// FilterStats holds aggregate stats per filter label.
type FilterStats struct {
	Filter      string
	Runs        int
	InputChars  int
	OutputChars int
	LastUsed    string
}

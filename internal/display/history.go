package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/edouard-claude/exsel/internal/history"
	"github.com/edouard-claude/exsel/internal/utils"
)

// RunHistory executes the history command.
func RunHistory(w io.Writer, store *history.Store, args []string) error {
	if store == nil {
		PrintError("history is disabled (set [history] enabled = true)")
		return nil
	}

	var (
		showJSON    bool
		showFilters bool
		recentN     int
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--json":
			showJSON = true
		case arg == "--filters":
			showFilters = true
		case arg == "--recent":
			recentN = 10
			if i+1 < len(args) {
				if n, err := strconv.Atoi(args[i+1]); err == nil {
					recentN = n
					i++
				}
			}
		case strings.HasPrefix(arg, "--recent="):
			recentN, _ = strconv.Atoi(strings.TrimPrefix(arg, "--recent="))
			if recentN <= 0 {
				recentN = 10
			}
		default:
			return fmt.Errorf("history: unknown flag %q", arg)
		}
	}

	if showJSON {
		return exportJSON(w, store, recentN)
	}
	if recentN > 0 {
		return showRecent(w, store, recentN)
	}
	if showFilters {
		return showByFilter(w, store, 20)
	}

	summary, err := store.GetSummary()
	if err != nil {
		return fmt.Errorf("get summary: %w", err)
	}
	printSummary(w, summary)
	return showByFilter(w, store, 10)
}

func printSummary(w io.Writer, s *history.Summary) {
	tty := styled()

	fmt.Fprintln(w)
	if tty {
		fmt.Fprintln(w, HeaderStyle.Render("  exsel history"))
		fmt.Fprintln(w, DimStyle.Render("  "+FormatSeparator(30)))
	} else {
		fmt.Fprintln(w, "  exsel history")
		fmt.Fprintln(w, "  "+FormatSeparator(30))
	}
	fmt.Fprintln(w)

	printKPI := func(label, value string) {
		if tty {
			fmt.Fprintf(w, "  %s  %s\n", DimStyle.Render(fmt.Sprintf("%-18s", label)), StatStyle.Render(value))
		} else {
			fmt.Fprintf(w, "  %-18s  %s\n", label, value)
		}
	}

	printKPI("Results reported", strconv.Itoa(s.TotalRuns))
	printKPI("Distinct filters", strconv.Itoa(s.DistinctFilters))
	printKPI("Characters in", utils.FormatCount(s.InputChars))
	printKPI("Characters out", utils.FormatCount(s.OutputChars))
	fmt.Fprintln(w)
}

func showByFilter(w io.Writer, store *history.Store, limit int) error {
	stats, err := store.GetByFilter(limit)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return nil
	}

	if styled() {
		fmt.Fprintln(w, DimStyle.Render("  Most used filters"))
	} else {
		fmt.Fprintln(w, "  Most used filters")
	}
	fmt.Fprintln(w)

	headers := []string{"Filter", "Runs", "In", "Out", "Last used"}
	var rows [][]string
	for _, s := range stats {
		rows = append(rows, []string{
			utils.Truncate(s.Filter, 25),
			strconv.Itoa(s.Runs),
			utils.FormatCount(s.InputChars),
			utils.FormatCount(s.OutputChars),
			s.LastUsed,
		})
	}

	fmt.Fprint(w, FormatTable(headers, rows))
	fmt.Fprintln(w)
	return nil
}

func showRecent(w io.Writer, store *history.Store, n int) error {
	entries, err := store.GetRecent(n)
	if err != nil {
		return err
	}

	headers := []string{"Filter", "Original", "Modified", "Page", "Time"}
	var rows [][]string
	for _, e := range entries {
		rows = append(rows, []string{
			utils.Truncate(e.Filter, 20),
			utils.Truncate(oneLine(e.Original), 24),
			utils.Truncate(oneLine(e.Modified), 24),
			utils.Truncate(e.PageURL, 30),
			e.Timestamp,
		})
	}

	fmt.Fprint(w, FormatTable(headers, rows))
	return nil
}

func exportJSON(w io.Writer, store *history.Store, recentN int) error {
	summary, err := store.GetSummary()
	if err != nil {
		return fmt.Errorf("get summary: %w", err)
	}
	byFilter, _ := store.GetByFilter(20)
	if recentN <= 0 {
		recentN = 10
	}
	recent, _ := store.GetRecent(recentN)

	data := map[string]any{
		"summary":   summary,
		"by_filter": byFilter,
		"recent":    recent,
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	out := pretty.Pretty(raw)
	if styled() {
		out = pretty.Color(out, nil)
	}
	_, err = w.Write(out)
	return err
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/edouard-claude/exsel/internal/config"
	"github.com/edouard-claude/exsel/internal/display"
	"github.com/edouard-claude/exsel/internal/engine"
	"github.com/edouard-claude/exsel/internal/filter"
	"github.com/edouard-claude/exsel/internal/history"
	"github.com/edouard-claude/exsel/internal/i18n"
	"github.com/edouard-claude/exsel/internal/initcmd"
	"github.com/edouard-claude/exsel/internal/logger"
	"github.com/edouard-claude/exsel/internal/prompt"
	"github.com/edouard-claude/exsel/internal/report"
	"github.com/edouard-claude/exsel/internal/tee"
)

const version = "0.1.0"

// Run is the main entry point. Returns exit code.
func Run(args []string) int {
	if len(args) < 2 {
		printUsage()
		return 0
	}

	flags, remaining, err := ParseFlags(args[1:])
	if err != nil {
		display.PrintError(err.Error())
		return 1
	}

	if flags.Version {
		fmt.Printf("exsel v%s\n", version)
		return 0
	}
	if flags.Help || len(remaining) == 0 {
		printUsage()
		return 0
	}

	cfg := loadConfig(flags)

	command := remaining[0]
	cmdArgs := remaining[1:]

	switch command {
	case "list":
		return runList(cfg)
	case "menu":
		return runMenu(cfg, cmdArgs)
	case "apply":
		return runApply(cfg, flags, cmdArgs)
	case "history":
		store := openHistory(cfg)
		if store != nil {
			defer store.Close()
		}
		if err := display.RunHistory(os.Stdout, store, cmdArgs); err != nil {
			display.PrintError(err.Error())
			return 1
		}
		return 0
	case "config":
		printConfig(cfg)
		return 0
	case "init":
		if err := initcmd.Run(cmdArgs); err != nil {
			display.PrintError(err.Error())
			return 1
		}
		return 0
	}

	display.PrintError(fmt.Sprintf("unknown command %q (see exsel --help)", command))
	return 1
}

// loadConfig reads the config file and initializes logging and display from
// it. A broken config file is logged and replaced by defaults.
func loadConfig(flags Flags) *config.Config {
	cfg, cfgErr := config.Load()

	level := cfg.Log.Level
	switch {
	case flags.Verbose >= 2:
		level = "debug"
	case flags.Verbose == 1:
		level = "info"
	}
	logger.Init(&logger.Config{Level: level, Output: os.Stderr})

	if cfgErr != nil {
		logger.Warn("config error, using defaults", "error", cfgErr)
	}
	display.Color = cfg.Display.Color
	return cfg
}

func newRegistry(cfg *config.Config) *filter.Registry {
	catalog, err := i18n.Load(cfg.Display.Locale)
	if err != nil {
		logger.Debug("locale catalog unavailable", "locale", cfg.Display.Locale, "error", err)
	}
	return filter.NewBuiltin(filter.Deps{Messages: catalog})
}

func openHistory(cfg *config.Config) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(history.DBPath(cfg.History.DBPath))
	if err != nil {
		logger.Warn("history disabled", "error", err)
		return nil
	}
	return store
}

func runList(cfg *config.Config) int {
	registry := newRegistry(cfg)
	active := make(map[string]bool)
	for _, id := range config.NewStore(cfg).ActiveFilterIDs() {
		active[id] = true
	}

	headers := []string{"ID", "Name", "Active", "Inputs"}
	var rows [][]string
	for _, d := range registry.List() {
		mark := ""
		if active[d.ID] {
			mark = "yes"
			if display.IsTerminal() && display.Color {
				mark = display.SuccessStyle.Render(mark)
			}
		}
		var inputs []string
		for _, in := range d.Inputs {
			inputs = append(inputs, in.Name)
		}
		rows = append(rows, []string{d.ID, d.Name, mark, strings.Join(inputs, ",")})
	}
	fmt.Print(display.FormatTable(headers, rows))
	return 0
}

func runMenu(cfg *config.Config, args []string) int {
	watch := false
	for _, a := range args {
		switch a {
		case "--watch", "-w":
			watch = true
		default:
			display.PrintError(fmt.Sprintf("menu: unknown flag %q", a))
			return 1
		}
	}

	e := &engine.Engine{
		Registry: newRegistry(cfg),
		Settings: config.NewStore(cfg),
		Menu:     &engine.ListMenu{},
	}
	printMenu(os.Stdout, e.BuildMenu())
	if !watch {
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path := config.Path()
	logger.Info("watching config", "path", path)
	err := config.Watch(ctx, path, func() {
		next, err := config.Load()
		if err != nil {
			logger.Warn("config error, using defaults", "error", err)
		}
		e.Settings = config.NewStore(next)
		fmt.Println()
		printMenu(os.Stdout, e.BuildMenu())
	})
	if err != nil {
		display.PrintError(err.Error())
		return 1
	}
	return 0
}

func printMenu(w io.Writer, items []engine.MenuItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "(no active filters)")
		return
	}
	for i, item := range items {
		if display.IsTerminal() && display.Color {
			fmt.Fprintf(w, "%2d. %s %s\n", i+1, item.Label, display.DimStyle.Render("("+item.ID+")"))
		} else {
			fmt.Fprintf(w, "%2d. %s (%s)\n", i+1, item.Label, item.ID)
		}
	}
}

func runApply(cfg *config.Config, flags Flags, args []string) int {
	if len(args) == 0 {
		display.PrintError("apply requires a filter id")
		return 1
	}
	id := args[0]

	text, err := selectionText(args[1:], os.Stdin)
	if err != nil {
		display.PrintError(err.Error())
		return 1
	}

	var notifiers []report.Notifier
	store := openHistory(cfg)
	if store != nil {
		defer store.Close()
		notifiers = append(notifiers, store)
	}
	if cfg.Notify.Desktop {
		notifiers = append(notifiers, display.NewNotice())
	}
	if cfg.Notify.Clipboard {
		notifiers = append(notifiers, report.NewClipboard())
	}

	prompter, closePrompt := prompt.Auto()
	defer func() {
		if err := closePrompt(); err != nil {
			logger.Debug("close prompt", "error", err)
		}
	}()

	settings := config.NewStore(cfg)
	e := &engine.Engine{
		Registry: newRegistry(cfg),
		Settings: settings,
		Prompter: prompter,
		Reporter: report.New(report.Multi(notifiers...), !flags.NoNotify),
	}

	out, err := e.Invoke(id, filter.Context{Text: text, PageURL: flags.URL, Inputs: flags.Inputs})
	if err != nil {
		display.PrintError(err.Error())
		if hint := tee.MaybeSave(text, true, id, teeConfig(cfg)); hint != "" {
			display.PrintHint(hint)
		}
		return 1
	}
	display.PrintResult(out, settings.SelectionStyle(), flags.Verbose)
	if hint := tee.MaybeSave(out.String(), false, id, teeConfig(cfg)); hint != "" {
		display.PrintHint(hint)
	}
	return 0
}

func teeConfig(cfg *config.Config) tee.Config {
	teeCfg := tee.DefaultConfig()
	teeCfg.Enabled = cfg.Tee.Enabled
	if cfg.Tee.Mode != "" {
		teeCfg.Mode = cfg.Tee.Mode
	}
	if cfg.Tee.MaxFiles > 0 {
		teeCfg.MaxFiles = cfg.Tee.MaxFiles
	}
	if cfg.Tee.Dir != "" {
		teeCfg.Dir = cfg.Tee.Dir
	}
	return teeCfg
}

// selectionText joins args, or reads stdin when no text was given. A single
// trailing newline from stdin is dropped.
func selectionText(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read selection: %w", err)
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

func printConfig(cfg *config.Config) {
	store := config.NewStore(cfg)
	style := store.SelectionStyle()

	fmt.Printf("config: %s\n", config.Path())
	fmt.Printf("filters.active: %s\n", strings.Join(store.ActiveFilterIDs(), ", "))
	fmt.Printf("selection.color: %s\n", orDefault(style.Color))
	fmt.Printf("selection.background: %s\n", orDefault(style.Background))
	fmt.Printf("notify.desktop: %v\n", cfg.Notify.Desktop)
	fmt.Printf("notify.clipboard: %v\n", cfg.Notify.Clipboard)
	fmt.Printf("history.enabled: %v\n", cfg.History.Enabled)
	fmt.Printf("history.db_path: %s\n", history.DBPath(cfg.History.DBPath))
	fmt.Printf("tee.mode: %s\n", teeConfig(cfg).Mode)
	fmt.Printf("tee.dir: %s\n", teeConfig(cfg).Dir)
	fmt.Printf("display.color: %v\n", cfg.Display.Color)
	fmt.Printf("display.locale: %s\n", localeLine(cfg.Display.Locale))
	fmt.Printf("log.level: %s\n", cfg.Log.Level)
}

// localeLine reports the configured locale alongside the catalog it resolves to.
func localeLine(locale string) string {
	catalog, err := i18n.Load(locale)
	if err != nil || catalog == nil {
		return orDefault(locale) + " (catalog: none)"
	}
	return orDefault(locale) + " (catalog: " + catalog.Language() + ")"
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}

func printUsage() {
	usage := `exsel v%s - text selection filters

Usage: exsel [flags] <command> [args...]

Commands:
  list                     List all filters and whether they are active
  menu [--watch]           Show the active menu, rebuilding on config change
  apply <id> [text...]     Run a filter on text (stdin when omitted)
  history                  Show reported results (--recent N, --filters, --json)
  config                   Show current configuration
  init                     Write the config file (--active a,b, --defaults, --uninstall)

Flags:
  -v, -vv          Verbose output (stackable)
  --url U          Page URL reported with the result
  --search S       Replace: pattern to search for
  --replace R      Replace: replacement text
  --width W        WordWrap: line width
  --cut            WordWrap: break words longer than the width
  --no-notify      Return the result without notifying
  --version        Show version
  --help           Show this help

Examples:
  echo "Hello" | exsel apply UpperCase
  exsel apply Replace --search o --replace 0 foo
  exsel --url https://example.com apply MD5 secret
  exsel menu --watch
  exsel history --recent 5
`
	fmt.Printf(usage, version)
}

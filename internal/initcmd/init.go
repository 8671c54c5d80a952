package initcmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/edouard-claude/exsel/internal/config"
	"github.com/edouard-claude/exsel/internal/filter"
)

// Run writes the exsel config file. An existing file is backed up and merged:
// only the settings named on the command line change.
func Run(args []string) error {
	var (
		active    []string
		setActive bool
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--uninstall":
			return Uninstall()
		case arg == "--active":
			if i+1 >= len(args) {
				return fmt.Errorf("--active requires a comma-separated list")
			}
			active, setActive = splitIDs(args[i+1]), true
			i++
		case strings.HasPrefix(arg, "--active="):
			active, setActive = splitIDs(strings.TrimPrefix(arg, "--active=")), true
		case arg == "--defaults":
			active, setActive = append([]string(nil), filter.DefaultActive...), true
		default:
			return fmt.Errorf("init: unknown flag %q", arg)
		}
	}

	if setActive {
		if err := validateIDs(active); err != nil {
			return err
		}
	}

	path := config.Path()
	cfg, err := readExisting(path)
	if err != nil {
		return err
	}
	if setActive {
		cfg.Filters.Active = &active
	} else if cfg.Filters.Active == nil {
		defaults := append([]string(nil), filter.DefaultActive...)
		cfg.Filters.Active = &defaults
	}

	if err := write(path, cfg); err != nil {
		return err
	}

	fmt.Println("exsel init complete:")
	fmt.Printf("  config: %s\n", path)
	fmt.Printf("  active filters: %d\n", len(*cfg.Filters.Active))
	return nil
}

// Uninstall removes the config file. Its backup, if any, is kept.
func Uninstall() error {
	path := config.Path()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove config: %w", err)
	}
	fmt.Println("exsel config removed")
	return nil
}

func readExisting(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Backup
	if err := os.WriteFile(path+".bak", data, 0644); err != nil {
		return nil, fmt.Errorf("backup config: %w", err)
	}

	cfg, err := config.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func write(path string, cfg *config.Config) error {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, out, 0644)
}

func splitIDs(s string) []string {
	ids := []string{}
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func validateIDs(ids []string) error {
	registry := filter.NewBuiltin(filter.Deps{})
	var unknown []string
	for _, id := range ids {
		if _, ok := registry.Lookup(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown filter(s): %s", strings.Join(unknown, ", "))
	}
	return nil
}

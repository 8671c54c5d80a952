package config

import "github.com/edouard-claude/exsel/internal/filter"

// Style is the selection highlight. Empty fields inherit the host default.
type Style struct {
	Color      string
	Background string
}

// Built-in selection style used when nothing is persisted. Both fields are
// empty, meaning the host default applies.
var defaultStyle = Style{}

// Store is a read-only snapshot of the persisted settings the core consumes.
type Store struct {
	cfg *Config
}

// NewStore wraps cfg. A nil cfg behaves like an empty configuration.
func NewStore(cfg *Config) *Store {
	return &Store{cfg: cfg}
}

// ActiveFilterIDs returns the configured active filter IDs in order, or the
// default list when none are configured. The slice is a copy.
func (s *Store) ActiveFilterIDs() []string {
	ids := filter.DefaultActive
	if s != nil && s.cfg != nil && s.cfg.Filters.Active != nil {
		ids = *s.cfg.Filters.Active
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// SelectionStyle returns the persisted style, each field falling back to the
// built-in default independently.
func (s *Store) SelectionStyle() Style {
	style := defaultStyle
	if s == nil || s.cfg == nil {
		return style
	}
	if c := s.cfg.Selection.Color; c != "" {
		style.Color = c
	}
	if b := s.cfg.Selection.Background; b != "" {
		style.Background = b
	}
	return style
}

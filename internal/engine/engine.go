package engine

import (
	"errors"
	"fmt"

	"github.com/edouard-claude/exsel/internal/filter"
	"github.com/edouard-claude/exsel/internal/logger"
	"github.com/edouard-claude/exsel/internal/report"
)

// ErrUnknownFilter is returned when invoking an ID absent from the registry.
var ErrUnknownFilter = errors.New("unknown filter")

// Settings supplies the configured active filter IDs.
type Settings interface {
	ActiveFilterIDs() []string
}

// Prompter obtains a missing auxiliary input from the user. It blocks until
// answered; a cancelled or empty answer is "".
type Prompter interface {
	Prompt(label string) string
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(label string) string

// Prompt implements Prompter.
func (f PrompterFunc) Prompt(label string) string { return f(label) }

// Engine builds the host menu from settings and runs the chosen filter.
type Engine struct {
	Registry *filter.Registry
	Settings Settings
	Menu     Menu
	Prompter Prompter
	Reporter *report.Reporter
}

// BuildMenu clears the host menu and creates one entry per configured filter
// that resolves in the registry, in configured order. Duplicate and unknown
// IDs are skipped.
func (e *Engine) BuildMenu() []MenuItem {
	var ids []string
	if e.Settings != nil {
		ids = e.Settings.ActiveFilterIDs()
	}

	if e.Menu != nil {
		e.Menu.RemoveAll()
	}

	seen := make(map[string]bool, len(ids))
	items := make([]MenuItem, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		d, ok := e.Registry.Lookup(id)
		if !ok {
			logger.Debug("skipping unknown filter", "id", id)
			continue
		}

		item := MenuItem{
			ID:    d.ID,
			Label: label(d),
			Trigger: func(ctx filter.Context) (filter.Output, error) {
				return e.Invoke(d.ID, ctx)
			},
		}
		if e.Menu != nil {
			e.Menu.Create(item)
		}
		items = append(items, item)
	}

	logger.Debug("menu built", "entries", len(items), "configured", len(ids))
	return items
}

// Invoke runs the filter registered under id against ctx. Declared inputs
// missing from ctx are prompted for once each before the transform runs.
// Transform errors are returned and nothing is reported.
func (e *Engine) Invoke(id string, ctx filter.Context) (filter.Output, error) {
	d, ok := e.Registry.Lookup(id)
	if !ok {
		return filter.Output{}, fmt.Errorf("invoke %q: %w", id, ErrUnknownFilter)
	}

	for _, in := range d.Inputs {
		if in.Optional {
			continue
		}
		if _, ok := ctx.Input(in.Name); ok {
			continue
		}
		answer := ""
		if e.Prompter != nil {
			answer = e.Prompter.Prompt(in.Label)
		}
		ctx = ctx.With(in.Name, answer)
	}

	out, err := filter.Run(d, ctx)
	if err != nil {
		return filter.Output{}, err
	}

	return e.Reporter.Report(ctx.Text, out, label(d), ctx.PageURL), nil
}

// label is the display name of d, falling back to its ID when the message
// catalog has no entry.
func label(d filter.Descriptor) string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

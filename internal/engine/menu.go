package engine

import "github.com/edouard-claude/exsel/internal/filter"

// MenuItem is one entry of the host menu, bound to a filter.
type MenuItem struct {
	ID      string
	Label   string
	Trigger func(ctx filter.Context) (filter.Output, error)
}

// Menu is the host menu collaborator.
type Menu interface {
	RemoveAll()
	Create(item MenuItem)
}

// ListMenu is an in-memory Menu that keeps entries in creation order.
type ListMenu struct {
	items []MenuItem
}

// RemoveAll implements Menu.
func (m *ListMenu) RemoveAll() {
	m.items = nil
}

// Create implements Menu.
func (m *ListMenu) Create(item MenuItem) {
	m.items = append(m.items, item)
}

// Items returns the current entries.
func (m *ListMenu) Items() []MenuItem {
	out := make([]MenuItem, len(m.items))
	copy(out, m.items)
	return out
}

// Find returns the entry bound to id.
func (m *ListMenu) Find(id string) (MenuItem, bool) {
	for _, item := range m.items {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}

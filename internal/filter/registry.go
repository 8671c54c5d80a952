package filter

import "fmt"

// Registry holds filter descriptors indexed by ID, in declaration order.
type Registry struct {
	byID    map[string]int
	filters []Descriptor
}

// NewRegistry builds a registry from a list of descriptors.
// It panics on duplicate or empty IDs.
func NewRegistry(descriptors ...Descriptor) *Registry {
	r := &Registry{byID: make(map[string]int, len(descriptors))}
	for _, d := range descriptors {
		r.Register(d)
	}
	return r
}

// Register adds a descriptor. Registration happens at initialization only;
// a duplicate ID is a programming error and panics.
func (r *Registry) Register(d Descriptor) {
	if d.ID == "" {
		panic("filter: register descriptor with empty id")
	}
	if d.Transform == nil {
		panic(fmt.Sprintf("filter: register %q without transform", d.ID))
	}
	if _, dup := r.byID[d.ID]; dup {
		panic(fmt.Sprintf("filter: duplicate id %q", d.ID))
	}
	if r.byID == nil {
		r.byID = make(map[string]int)
	}
	r.byID[d.ID] = len(r.filters)
	r.filters = append(r.filters, d)
}

// Lookup returns the descriptor registered under id.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.filters[i], true
}

// List returns all descriptors in declaration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, len(r.filters))
	copy(out, r.filters)
	return out
}

// Len returns the number of registered filters.
func (r *Registry) Len() int {
	return len(r.filters)
}

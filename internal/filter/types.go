package filter

import "strconv"

// Descriptor is an immutable record describing one registered filter.
type Descriptor struct {
	ID          string
	Name        string
	Description string
	Inputs      []Input
	Transform   TransformFunc
	Random      bool // output is intentionally non-deterministic
}

// Input declares an auxiliary value a filter needs beyond the selection text.
type Input struct {
	Name     string
	Label    string // prompt text, e.g. "Search:"
	Optional bool   // optional inputs are never prompted for
}

// TransformFunc is the signature for built-in filter implementations.
type TransformFunc func(ctx Context) (Output, error)

// Context is the per-invocation snapshot of the user's selection.
type Context struct {
	Text    string
	PageURL string
	Inputs  map[string]string
}

// Input returns the named auxiliary input and whether it was supplied.
func (c Context) Input(name string) (string, bool) {
	v, ok := c.Inputs[name]
	return v, ok
}

// With returns a copy of c with the named input set.
func (c Context) With(name, value string) Context {
	inputs := make(map[string]string, len(c.Inputs)+1)
	for k, v := range c.Inputs {
		inputs[k] = v
	}
	inputs[name] = value
	c.Inputs = inputs
	return c
}

// Output is the reportable value produced by a filter: text or a count.
type Output struct {
	text    string
	count   int
	isCount bool
}

// Text wraps a string result.
func Text(s string) Output {
	return Output{text: s}
}

// Count wraps a scalar result such as a character or word count.
func Count(n int) Output {
	return Output{count: n, isCount: true}
}

// IsCount reports whether the output is a count rather than text.
func (o Output) IsCount() bool {
	return o.isCount
}

// Int returns the count, or 0 for text output.
func (o Output) Int() int {
	return o.count
}

// String renders the output for display or clipboard use.
func (o Output) String() string {
	if o.isCount {
		return strconv.Itoa(o.count)
	}
	return o.text
}

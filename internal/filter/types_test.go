package filter

import "testing"

func TestOutputText(t *testing.T) {
	o := Text("hello")
	if o.IsCount() {
		t.Error("text output reported as count")
	}
	if o.String() != "hello" {
		t.Errorf("String() = %q", o.String())
	}
}

func TestOutputCount(t *testing.T) {
	o := Count(42)
	if !o.IsCount() {
		t.Error("count output not reported as count")
	}
	if o.Int() != 42 {
		t.Errorf("Int() = %d", o.Int())
	}
	if o.String() != "42" {
		t.Errorf("String() = %q", o.String())
	}
}

func TestContextWith(t *testing.T) {
	base := Context{Text: "abc", Inputs: map[string]string{"search": "a"}}
	next := base.With("replace", "b")

	if _, ok := base.Input("replace"); ok {
		t.Error("With mutated the original context")
	}
	if v, ok := next.Input("replace"); !ok || v != "b" {
		t.Errorf("replace = %q, %v", v, ok)
	}
	if v, _ := next.Input("search"); v != "a" {
		t.Errorf("search lost: %q", v)
	}
}

func TestContextInputNilMap(t *testing.T) {
	var c Context
	if _, ok := c.Input("search"); ok {
		t.Error("expected missing input on zero context")
	}
	c = c.With("search", "")
	if v, ok := c.Input("search"); !ok || v != "" {
		t.Errorf("empty input not kept: %q, %v", v, ok)
	}
}

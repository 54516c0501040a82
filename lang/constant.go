package lang

import "maps"

// Constants is the table of names bound by var declarations.
// There is a single global namespace; redeclaring a name replaces its value.
type Constants struct {
	values map[string]Value
}

// NewConstants returns an empty constant table.
func NewConstants() *Constants {
	return &Constants{values: make(map[string]Value)}
}

// Define binds name to v, replacing any previous binding.
func (c *Constants) Define(name string, v Value) {
	if c.values == nil {
		c.values = make(map[string]Value)
	}

	c.values[name] = v
}

// Lookup returns the value bound to name.
func (c *Constants) Lookup(name string) (Value, bool) {
	if c == nil {
		return Value{}, false
	}

	v, ok := c.values[name]

	return v, ok
}

// Len returns the number of constants defined.
func (c *Constants) Len() int {
	if c == nil {
		return 0
	}

	return len(c.values)
}

// Names returns the defined constant names in sorted order.
func (c *Constants) Names() []string {
	if c == nil {
		return nil
	}

	return sortedKeys(c.values)
}

// Clone returns an independent copy of c.
func (c *Constants) Clone() *Constants {
	if c == nil {
		return nil
	}

	return &Constants{values: maps.Clone(c.values)}
}

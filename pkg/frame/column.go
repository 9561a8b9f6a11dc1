package frame

import "fmt"

// Kind is the storage type of a Column.
type Kind int

const (
	Int Kind = iota
	Float
	Bool
	String
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Column is a single named, typed column. Exactly one of the value slices is
// populated, chosen by Kind. A nil Valid slice means every value is present.
type Column struct {
	Name string
	Kind Kind

	Ints    []int64
	Floats  []float64
	Bools   []bool
	Strings []string

	Valid []bool
}

func NewIntColumn(name string, values []int64) *Column {
	return &Column{Name: name, Kind: Int, Ints: values}
}

func NewFloatColumn(name string, values []float64) *Column {
	return &Column{Name: name, Kind: Float, Floats: values}
}

func NewBoolColumn(name string, values []bool) *Column {
	return &Column{Name: name, Kind: Bool, Bools: values}
}

func NewStringColumn(name string, values []string) *Column {
	return &Column{Name: name, Kind: String, Strings: values}
}

func (c *Column) Len() int {
	switch c.Kind {
	case Int:
		return len(c.Ints)
	case Float:
		return len(c.Floats)
	case Bool:
		return len(c.Bools)
	default:
		return len(c.Strings)
	}
}

// IsValid reports whether row i holds a value rather than a null.
func (c *Column) IsValid(i int) bool {
	return c.Valid == nil || c.Valid[i]
}

// Value returns the value at row i, or nil for a null.
func (c *Column) Value(i int) any {
	if !c.IsValid(i) {
		return nil
	}
	switch c.Kind {
	case Int:
		return c.Ints[i]
	case Float:
		return c.Floats[i]
	case Bool:
		return c.Bools[i]
	default:
		return c.Strings[i]
	}
}

// Float returns the value at row i as a float64. Int columns widen, Bool
// columns map to 0 and 1. The second return is false for nulls and for
// String columns.
func (c *Column) Float(i int) (float64, bool) {
	if !c.IsValid(i) {
		return 0, false
	}
	switch c.Kind {
	case Int:
		return float64(c.Ints[i]), true
	case Float:
		return c.Floats[i], true
	case Bool:
		if c.Bools[i] {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// IsNumeric reports whether Float returns values for this column.
func (c *Column) IsNumeric() bool {
	return c.Kind != String
}

// Take returns a new column holding the rows at the given indices, in order.
func (c *Column) Take(indices []int) *Column {
	out := c.emptyLike(len(indices))
	for _, i := range indices {
		out.appendFrom(c, i)
	}
	return out
}

func (c *Column) emptyLike(capacity int) *Column {
	out := &Column{Name: c.Name, Kind: c.Kind}
	switch c.Kind {
	case Int:
		out.Ints = make([]int64, 0, capacity)
	case Float:
		out.Floats = make([]float64, 0, capacity)
	case Bool:
		out.Bools = make([]bool, 0, capacity)
	default:
		out.Strings = make([]string, 0, capacity)
	}
	return out
}

func (c *Column) appendFrom(src *Column, i int) {
	if !src.IsValid(i) {
		c.appendNull()
		return
	}
	c.growValid(true)
	switch c.Kind {
	case Int:
		c.Ints = append(c.Ints, src.Ints[i])
	case Float:
		c.Floats = append(c.Floats, src.Floats[i])
	case Bool:
		c.Bools = append(c.Bools, src.Bools[i])
	default:
		c.Strings = append(c.Strings, src.Strings[i])
	}
}

func (c *Column) appendNull() {
	if c.Valid == nil {
		c.Valid = make([]bool, c.Len())
		for i := range c.Valid {
			c.Valid[i] = true
		}
	}
	c.Valid = append(c.Valid, false)
	switch c.Kind {
	case Int:
		c.Ints = append(c.Ints, 0)
	case Float:
		c.Floats = append(c.Floats, 0)
	case Bool:
		c.Bools = append(c.Bools, false)
	default:
		c.Strings = append(c.Strings, "")
	}
}

func (c *Column) growValid(valid bool) {
	if c.Valid != nil {
		c.Valid = append(c.Valid, valid)
	}
}

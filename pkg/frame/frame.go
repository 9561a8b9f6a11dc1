// Package frame implements the tabular data model shared by every pipeline
// stage: ordered, typed columns keyed by name, loaded from CSV and written
// as CSV or Parquet through Apache Arrow.
package frame

import "fmt"

// Frame is an ordered collection of equal-length columns with unique names.
type Frame struct {
	cols  []*Column
	index map[string]int
}

// New constructs a Frame from the given columns. Every column must have the
// same length and a unique name.
func New(cols ...*Column) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(cols))}
	for _, col := range cols {
		if len(f.cols) > 0 && col.Len() != f.cols[0].Len() {
			return nil, fmt.Errorf("column %q has %d rows, want %d", col.Name, col.Len(), f.cols[0].Len())
		}
		if _, exists := f.index[col.Name]; exists {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		f.index[col.Name] = len(f.cols)
		f.cols = append(f.cols, col)
	}
	return f, nil
}

func (f *Frame) NumRows() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].Len()
}

func (f *Frame) NumCols() int {
	return len(f.cols)
}

// Columns returns the frame's columns in order.
func (f *Frame) Columns() []*Column {
	return f.cols
}

// ColumnNames returns the column names in order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.cols))
	for i, col := range f.cols {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column, or false if it does not exist.
func (f *Frame) Column(name string) (*Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Select returns a new frame restricted to the named columns, in the given
// order. The columns are shared, not copied.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]*Column, 0, len(names))
	for _, name := range names {
		col, ok := f.Column(name)
		if !ok {
			return nil, fmt.Errorf("no column %q", name)
		}
		cols = append(cols, col)
	}
	return New(cols...)
}

// Drop returns a new frame without the named columns. Names that do not
// exist are ignored. The remaining columns are shared, not copied.
func (f *Frame) Drop(names ...string) *Frame {
	dropped := make(map[string]bool, len(names))
	for _, name := range names {
		dropped[name] = true
	}
	var cols []*Column
	for _, col := range f.cols {
		if !dropped[col.Name] {
			cols = append(cols, col)
		}
	}
	out, _ := New(cols...)
	return out
}

// Take returns a new frame holding the rows at the given indices, in order.
// Indices may repeat.
func (f *Frame) Take(indices []int) *Frame {
	cols := make([]*Column, len(f.cols))
	for i, col := range f.cols {
		cols[i] = col.Take(indices)
	}
	out, _ := New(cols...)
	return out
}

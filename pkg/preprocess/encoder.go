// Package preprocess reconciles train/test feature schemas and rebalances
// class distributions before model fitting: one-hot encoding with an
// explicit category vocabulary, schema alignment, outlier removal,
// synthetic minority oversampling, and a seeded train/validation split.
package preprocess

import (
	"errors"
	"fmt"

	"github.com/mhartmann/richter/pkg/frame"
	"gonum.org/v1/gonum/mat"
)

// Encoded is a feature matrix together with its column schema. Columns[j]
// names column j of X.
type Encoded struct {
	Columns []string
	X       *mat.Dense
}

// NumRows returns the number of feature rows.
func (e *Encoded) NumRows() int {
	r, _ := e.X.Dims()
	return r
}

// Take returns a new Encoded holding the rows at the given indices, in
// order, sharing the column schema. At least one index is required; a
// zero-row matrix cannot be represented.
func (e *Encoded) Take(indices []int) (*Encoded, error) {
	if len(indices) == 0 {
		return nil, errors.New("cannot take zero rows")
	}
	_, cols := e.X.Dims()
	out := mat.NewDense(len(indices), cols, nil)
	for i, idx := range indices {
		out.SetRow(i, e.X.RawRowView(idx))
	}
	return &Encoded{Columns: e.Columns, X: out}, nil
}

// Encoder one-hot encodes the non-numeric columns of a frame. Fit scans the
// frame once to collect each column's category vocabulary in first-encounter
// order; Transform emits fixed-width indicator vectors against that
// vocabulary. The resulting output schema is explicit and stable, so the
// same category always maps to the same output column.
type Encoder struct {
	sources []sourceColumn
	schema  []string
	fitted  bool
}

type sourceColumn struct {
	name        string
	categorical bool
	categories  []string
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Fit collects the category vocabulary of every non-numeric column,
// scanning columns left to right and values top to bottom.
func (e *Encoder) Fit(f *frame.Frame) error {
	e.sources = e.sources[:0]
	e.schema = e.schema[:0]
	for _, col := range f.Columns() {
		src := sourceColumn{name: col.Name, categorical: !col.IsNumeric()}
		if src.categorical {
			seen := make(map[string]bool)
			for i := 0; i < col.Len(); i++ {
				if !col.IsValid(i) {
					continue
				}
				v := col.Strings[i]
				if !seen[v] {
					seen[v] = true
					src.categories = append(src.categories, v)
				}
			}
			for _, category := range src.categories {
				e.schema = append(e.schema, indicatorName(col.Name, category))
			}
		} else {
			e.schema = append(e.schema, col.Name)
		}
		e.sources = append(e.sources, src)
	}
	e.fitted = true
	return nil
}

// Transform encodes f against the fitted vocabulary. Numeric columns pass
// through unchanged; categorical columns become one indicator column per
// fitted category. Category values never seen during Fit encode as all
// zeros. Every fitted source column must be present in f.
func (e *Encoder) Transform(f *frame.Frame) (*Encoded, error) {
	if !e.fitted {
		return nil, errors.New("encoder is not fitted")
	}
	rows := f.NumRows()
	if rows == 0 {
		return nil, errors.New("cannot encode a frame with no rows")
	}
	X := mat.NewDense(rows, len(e.schema), nil)

	offset := 0
	for _, src := range e.sources {
		col, ok := f.Column(src.name)
		if !ok {
			return nil, fmt.Errorf("frame has no column %q", src.name)
		}
		if src.categorical {
			if col.IsNumeric() {
				return nil, fmt.Errorf("column %q was fitted as categorical but is numeric", src.name)
			}
			index := make(map[string]int, len(src.categories))
			for k, category := range src.categories {
				index[category] = k
			}
			for i := 0; i < rows; i++ {
				if !col.IsValid(i) {
					continue
				}
				if k, found := index[col.Strings[i]]; found {
					X.Set(i, offset+k, 1)
				}
			}
			offset += len(src.categories)
		} else {
			for i := 0; i < rows; i++ {
				if v, ok := col.Float(i); ok {
					X.Set(i, offset, v)
				}
			}
			offset++
		}
	}

	return &Encoded{Columns: e.Schema(), X: X}, nil
}

// FitTransform fits the encoder on f and encodes it.
func (e *Encoder) FitTransform(f *frame.Frame) (*Encoded, error) {
	if err := e.Fit(f); err != nil {
		return nil, err
	}
	return e.Transform(f)
}

// Schema returns a copy of the output column schema.
func (e *Encoder) Schema() []string {
	out := make([]string, len(e.schema))
	copy(out, e.schema)
	return out
}

func indicatorName(column, category string) string {
	return column + "_" + category
}

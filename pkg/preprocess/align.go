package preprocess

import "gonum.org/v1/gonum/mat"

// Align reconciles enc to the reference schema: reference columns missing
// from enc are added filled with zero, columns absent from the reference
// are dropped, and the output column order is exactly the reference order.
// Aligning an already aligned matrix is the identity.
func Align(enc *Encoded, reference []string) *Encoded {
	index := make(map[string]int, len(enc.Columns))
	for j, name := range enc.Columns {
		index[name] = j
	}

	rows := enc.NumRows()
	X := mat.NewDense(rows, len(reference), nil)
	for j, name := range reference {
		src, found := index[name]
		if !found {
			continue
		}
		for i := 0; i < rows; i++ {
			X.Set(i, j, enc.X.At(i, src))
		}
	}

	columns := make([]string, len(reference))
	copy(columns, reference)
	return &Encoded{Columns: columns, X: X}
}

package frame

import "fmt"

// LeftJoin joins right onto left by equality of the named column, preserving
// the row order of left. Left rows without a match keep their values and get
// nulls for the right-only columns; a left row with several matches appears
// once per match. The join column appears once, from the left frame.
func LeftJoin(left, right *Frame, on string) (*Frame, error) {
	leftKey, ok := left.Column(on)
	if !ok {
		return nil, fmt.Errorf("left frame has no column %q", on)
	}
	rightKey, ok := right.Column(on)
	if !ok {
		return nil, fmt.Errorf("right frame has no column %q", on)
	}
	if leftKey.Kind != rightKey.Kind {
		return nil, fmt.Errorf("join column %q is %s on the left but %s on the right",
			on, leftKey.Kind, rightKey.Kind)
	}
	for _, col := range right.Columns() {
		if col.Name == on {
			continue
		}
		if _, exists := left.Column(col.Name); exists {
			return nil, fmt.Errorf("column %q exists in both frames", col.Name)
		}
	}

	matches := make(map[any][]int, right.NumRows())
	for i := 0; i < right.NumRows(); i++ {
		if !rightKey.IsValid(i) {
			continue
		}
		key := rightKey.Value(i)
		matches[key] = append(matches[key], i)
	}

	outCols := make([]*Column, 0, left.NumCols()+right.NumCols()-1)
	for _, col := range left.Columns() {
		outCols = append(outCols, col.emptyLike(left.NumRows()))
	}
	var rightCols []*Column
	for _, col := range right.Columns() {
		if col.Name == on {
			continue
		}
		rightCols = append(rightCols, col)
		outCols = append(outCols, col.emptyLike(left.NumRows()))
	}

	nLeft := left.NumCols()
	for i := 0; i < left.NumRows(); i++ {
		var rows []int
		if leftKey.IsValid(i) {
			rows = matches[leftKey.Value(i)]
		}
		if len(rows) == 0 {
			for j, col := range left.Columns() {
				outCols[j].appendFrom(col, i)
			}
			for j := range rightCols {
				outCols[nLeft+j].appendNull()
			}
			continue
		}
		for _, r := range rows {
			for j, col := range left.Columns() {
				outCols[j].appendFrom(col, i)
			}
			for j, col := range rightCols {
				outCols[nLeft+j].appendFrom(col, r)
			}
		}
	}

	return New(outCols...)
}

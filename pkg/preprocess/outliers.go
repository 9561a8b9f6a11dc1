package preprocess

import (
	"fmt"

	"github.com/mhartmann/richter/pkg/frame"
)

// RemoveOutliers returns the rows of f whose value in the named numeric
// column does not exceed threshold. Rows equal to the threshold are kept.
// Rows with a missing value in the column are kept; they cannot exceed the
// threshold.
func RemoveOutliers(f *frame.Frame, column string, threshold float64) (*frame.Frame, error) {
	col, ok := f.Column(column)
	if !ok {
		return nil, fmt.Errorf("no column %q", column)
	}
	if !col.IsNumeric() {
		return nil, fmt.Errorf("column %q is not numeric", column)
	}

	var keep []int
	for i := 0; i < col.Len(); i++ {
		v, valid := col.Float(i)
		if !valid || v <= threshold {
			keep = append(keep, i)
		}
	}
	return f.Take(keep), nil
}

package model

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// StandardScaler scales each column by its standard deviation, optionally
// centering on the mean first. Pipelines built here disable centering:
// one-hot encoded inputs are mostly zeros and centering them is neither
// cheap nor meaningful.
type StandardScaler struct {
	WithMean bool

	mean  []float64
	scale []float64
}

func NewStandardScaler(withMean bool) *StandardScaler {
	return &StandardScaler{WithMean: withMean}
}

// Fit computes per-column means and standard deviations. Columns with zero
// deviation get a unit scale so they pass through unchanged.
func (s *StandardScaler) Fit(X *mat.Dense) error {
	rows, cols := X.Dims()
	if rows == 0 {
		return errors.New("cannot fit scaler on zero rows")
	}
	s.mean = make([]float64, cols)
	s.scale = make([]float64, cols)
	for j := 0; j < cols; j++ {
		sum := 0.0
		for i := 0; i < rows; i++ {
			sum += X.At(i, j)
		}
		mean := sum / float64(rows)

		variance := 0.0
		for i := 0; i < rows; i++ {
			d := X.At(i, j) - mean
			variance += d * d
		}
		variance /= float64(rows)

		s.mean[j] = mean
		s.scale[j] = math.Sqrt(variance)
		if s.scale[j] == 0 {
			s.scale[j] = 1
		}
	}
	return nil
}

// Transform returns a scaled copy of X.
func (s *StandardScaler) Transform(X *mat.Dense) (*mat.Dense, error) {
	if s.scale == nil {
		return nil, errors.New("scaler is not fitted")
	}
	rows, cols := X.Dims()
	if cols != len(s.scale) {
		return nil, errors.New("column count differs from fit")
	}
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := X.At(i, j)
			if s.WithMean {
				v -= s.mean[j]
			}
			out.Set(i, j, v/s.scale[j])
		}
	}
	return out, nil
}

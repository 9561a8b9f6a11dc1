package model

import (
	"testing"

	"github.com/mhartmann/richter/pkg/preprocess"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// separable builds a three-class dataset with well-separated clusters.
func separable() (*preprocess.Encoded, []int) {
	rows := [][]float64{}
	y := []int{}
	centers := map[int][2]float64{1: {0, 0}, 2: {10, 0}, 3: {0, 10}}
	offsets := [][2]float64{{0, 0}, {0.5, 0}, {0, 0.5}, {0.5, 0.5}, {0.25, 0.25}, {-0.5, 0}}
	for class := 1; class <= 3; class++ {
		center := centers[class]
		for _, offset := range offsets {
			rows = append(rows, []float64{center[0] + offset[0], center[1] + offset[1]})
			y = append(y, class)
		}
	}
	X := mat.NewDense(len(rows), 2, nil)
	for i, row := range rows {
		X.SetRow(i, row)
	}
	return &preprocess.Encoded{Columns: []string{"x", "y"}, X: X}, y
}

func TestPipeline_FitCapturesSchema(t *testing.T) {
	enc, y := separable()

	pipe, err := NewGradientBoostingPipeline(Params{"n_estimators": 10})
	require.NoError(t, err)
	require.False(t, pipe.IsFitted())

	require.NoError(t, pipe.Fit(enc, y))
	require.True(t, pipe.IsFitted())
	require.Equal(t, []string{"x", "y"}, pipe.FeatureNames())
}

func TestPipeline_PredictSeparableClasses(t *testing.T) {
	enc, y := separable()

	pipe, err := NewGradientBoostingPipeline(Params{"n_estimators": 20})
	require.NoError(t, err)
	require.NoError(t, pipe.Fit(enc, y))

	got, err := pipe.Predict(enc)
	require.NoError(t, err)
	require.Equal(t, y, got)
}

func TestPipeline_PredictAlignsColumns(t *testing.T) {
	enc, y := separable()

	pipe, err := NewGradientBoostingPipeline(Params{"n_estimators": 20})
	require.NoError(t, err)
	require.NoError(t, pipe.Fit(enc, y))

	// Same data with columns swapped and an extra column; alignment must
	// recover the training order.
	rows, _ := enc.X.Dims()
	shuffled := mat.NewDense(rows, 3, nil)
	for i := 0; i < rows; i++ {
		shuffled.Set(i, 0, enc.X.At(i, 1))
		shuffled.Set(i, 1, 99)
		shuffled.Set(i, 2, enc.X.At(i, 0))
	}
	got, err := pipe.Predict(&preprocess.Encoded{Columns: []string{"y", "noise", "x"}, X: shuffled})
	require.NoError(t, err)
	require.Equal(t, y, got)
}

func TestPipeline_PredictBeforeFit(t *testing.T) {
	enc, _ := separable()

	pipe, err := NewGradientBoostingPipeline(nil)
	require.NoError(t, err)
	_, err = pipe.Predict(enc)
	require.Error(t, err)
}

func TestPipeline_FitLengthMismatch(t *testing.T) {
	enc, y := separable()

	pipe, err := NewGradientBoostingPipeline(nil)
	require.NoError(t, err)
	require.Error(t, pipe.Fit(enc, y[:3]))
}

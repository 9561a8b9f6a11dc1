package model

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestStandardScaler_NoCentering(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	scaler := NewStandardScaler(false)
	require.NoError(t, scaler.Fit(X))
	got, err := scaler.Transform(X)
	require.NoError(t, err)

	// Values are divided by the population standard deviation but not
	// centered, so signs and ordering are preserved.
	for i := 0; i < 4; i++ {
		require.Greater(t, got.At(i, 0), 0.0)
	}
	require.InDelta(t, got.At(1, 0)/got.At(0, 0), 2.0, 1e-12)
}

func TestStandardScaler_ZeroVarianceColumnUnchanged(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 5,
		1, 6,
		1, 7,
	})

	scaler := NewStandardScaler(false)
	require.NoError(t, scaler.Fit(X))
	got, err := scaler.Transform(X)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.Equal(t, 1.0, got.At(i, 0))
	}
}

func TestStandardScaler_WithMeanCenters(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{-1, 1})

	scaler := NewStandardScaler(true)
	require.NoError(t, scaler.Fit(X))
	got, err := scaler.Transform(X)
	require.NoError(t, err)

	require.InDelta(t, -1.0, got.At(0, 0), 1e-12)
	require.InDelta(t, 1.0, got.At(1, 0), 1e-12)
}

func TestStandardScaler_TransformBeforeFit(t *testing.T) {
	_, err := NewStandardScaler(false).Transform(mat.NewDense(1, 1, []float64{1}))
	require.Error(t, err)
}

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewGradientBoosting_Defaults(t *testing.T) {
	gbt, err := NewGradientBoosting(nil)
	require.NoError(t, err)
	require.Equal(t, defaultGBTEstimators, gbt.NEstimators)
	require.Equal(t, defaultGBTLearnRate, gbt.LearningRate)
	require.Equal(t, defaultGBTMaxDepth, gbt.MaxDepth)
}

func TestNewGradientBoosting_ParamsApplied(t *testing.T) {
	gbt, err := NewGradientBoosting(Params{
		"n_estimators":  30,
		"learning_rate": 0.05,
		"max_depth":     4,
	})
	require.NoError(t, err)
	require.Equal(t, 30, gbt.NEstimators)
	require.Equal(t, 0.05, gbt.LearningRate)
	require.Equal(t, 4, gbt.MaxDepth)
}

func TestNewGradientBoosting_RejectsBadParams(t *testing.T) {
	_, err := NewGradientBoosting(Params{"n_estimators": 0})
	require.Error(t, err)
	_, err = NewGradientBoosting(Params{"learning_rate": -0.1})
	require.Error(t, err)
	_, err = NewGradientBoosting(Params{"max_depth": "deep"})
	require.Error(t, err)
}

func TestGradientBoosting_Deterministic(t *testing.T) {
	enc, y := separable()

	first, err := NewGradientBoosting(Params{"n_estimators": 15})
	require.NoError(t, err)
	require.NoError(t, first.Fit(enc.X, y))
	firstPred, err := first.Predict(enc.X)
	require.NoError(t, err)

	second, err := NewGradientBoosting(Params{"n_estimators": 15})
	require.NoError(t, err)
	require.NoError(t, second.Fit(enc.X, y))
	secondPred, err := second.Predict(enc.X)
	require.NoError(t, err)

	require.Equal(t, firstPred, secondPred)
}

func TestGradientBoosting_SingleClass(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := []int{2, 2, 2}

	gbt, err := NewGradientBoosting(Params{"n_estimators": 5})
	require.NoError(t, err)
	require.NoError(t, gbt.Fit(X, y))

	got, err := gbt.Predict(X)
	require.NoError(t, err)
	require.Equal(t, []int{2, 2, 2}, got)
}

func TestGradientBoosting_PredictBeforeFit(t *testing.T) {
	gbt, err := NewGradientBoosting(nil)
	require.NoError(t, err)
	_, err = gbt.Predict(mat.NewDense(1, 1, []float64{1}))
	require.Error(t, err)
}

func TestMicroF1(t *testing.T) {
	require.Equal(t, 1.0, MicroF1([]int{1, 2, 3}, []int{1, 2, 3}))
	require.Equal(t, 0.0, MicroF1([]int{1, 1}, []int{2, 2}))
	require.InDelta(t, 0.5, MicroF1([]int{1, 2, 1, 2}, []int{1, 2, 2, 1}), 1e-12)
}

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRandomForest_Defaults(t *testing.T) {
	rf, err := NewRandomForest(nil)
	require.NoError(t, err)
	require.Equal(t, defaultForestEstimators, rf.NEstimators)
	require.Equal(t, 0, rf.MaxFeatures)
}

func TestNewRandomForest_ParamsApplied(t *testing.T) {
	rf, err := NewRandomForest(Params{"n_estimators": 25, "max_features": 8})
	require.NoError(t, err)
	require.Equal(t, 25, rf.NEstimators)
	require.Equal(t, 8, rf.MaxFeatures)
}

func TestNewRandomForest_RejectsBadParams(t *testing.T) {
	_, err := NewRandomForest(Params{"n_estimators": -1})
	require.Error(t, err)
	_, err = NewRandomForest(Params{"max_features": -2})
	require.Error(t, err)
	_, err = NewRandomForest(Params{"n_estimators": 1.5})
	require.Error(t, err)
}

func TestRandomForest_PredictBeforeFit(t *testing.T) {
	rf, err := NewRandomForest(nil)
	require.NoError(t, err)

	enc, _ := separable()
	_, err = rf.Predict(enc.X)
	require.Error(t, err)
}

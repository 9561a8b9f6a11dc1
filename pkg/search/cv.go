package search

import (
	"fmt"
	"math/rand"

	"github.com/mhartmann/richter/pkg/model"
	"github.com/mhartmann/richter/pkg/preprocess"
)

// PipelineBuilder constructs an untrained pipeline for a candidate
// configuration.
type PipelineBuilder func(params model.Params) (*model.Pipeline, error)

// crossValidate scores a configuration by k-fold cross-validated
// micro-averaged F1. Fold assignment is a seeded permutation dealt
// round-robin, so folds differ in size by at most one row.
func crossValidate(build PipelineBuilder, enc *preprocess.Encoded, y []int, params model.Params, folds int, seed int64) (float64, error) {
	rows := enc.NumRows()
	if folds < 2 {
		return 0, fmt.Errorf("need at least 2 folds, got %d", folds)
	}
	if rows < folds {
		return 0, fmt.Errorf("cannot split %d rows into %d folds", rows, folds)
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(rows)
	assignment := make([][]int, folds)
	for i, idx := range perm {
		assignment[i%folds] = append(assignment[i%folds], idx)
	}

	total := 0.0
	for fold := 0; fold < folds; fold++ {
		var trainIdx []int
		for f, indices := range assignment {
			if f != fold {
				trainIdx = append(trainIdx, indices...)
			}
		}
		valIdx := assignment[fold]

		yTrain := make([]int, len(trainIdx))
		for i, idx := range trainIdx {
			yTrain[i] = y[idx]
		}
		yVal := make([]int, len(valIdx))
		for i, idx := range valIdx {
			yVal[i] = y[idx]
		}

		pipe, err := build(params)
		if err != nil {
			return 0, fmt.Errorf("building pipeline: %w", err)
		}
		trainEnc, err := enc.Take(trainIdx)
		if err != nil {
			return 0, fmt.Errorf("fold %d: %w", fold, err)
		}
		valEnc, err := enc.Take(valIdx)
		if err != nil {
			return 0, fmt.Errorf("fold %d: %w", fold, err)
		}
		if err := pipe.Fit(trainEnc, yTrain); err != nil {
			return 0, fmt.Errorf("fold %d: %w", fold, err)
		}
		predictions, err := pipe.Predict(valEnc)
		if err != nil {
			return 0, fmt.Errorf("fold %d: %w", fold, err)
		}
		total += model.MicroF1(yVal, predictions)
	}
	return total / float64(folds), nil
}

// Package model assembles scaling+classifier pipelines with two
// interchangeable classifier strategies: a random forest and gradient
// boosted trees.
package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Classifier is the uniform fit/predict capability both strategies expose.
type Classifier interface {
	Fit(X *mat.Dense, y []int) error
	Predict(X *mat.Dense) ([]int, error)
}

// Params maps hyperparameter names to values. An empty or nil map means
// library defaults throughout.
type Params map[string]any

// Int reads an integer hyperparameter, accepting float values with no
// fractional part, or returns fallback when the key is absent.
func (p Params) Int(key string, fallback int) (int, error) {
	v, ok := p[key]
	if !ok {
		return fallback, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("hyperparameter %q: %v is not an integer", key, v)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("hyperparameter %q: unsupported type %T", key, v)
	}
}

// Float reads a float hyperparameter, or fallback when the key is absent.
func (p Params) Float(key string, fallback float64) (float64, error) {
	v, ok := p[key]
	if !ok {
		return fallback, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("hyperparameter %q: unsupported type %T", key, v)
	}
}

// Package search implements sequential model-based hyperparameter
// optimization: a Gaussian-process surrogate over observed configurations
// proposes candidates by expected improvement, and each candidate is
// scored with cross-validated micro-averaged F1.
package search

import (
	"math"
	"math/rand"

	"github.com/mhartmann/richter/pkg/model"
)

// Dimension describes the admissible values of one hyperparameter and how
// they map onto the unit interval for the surrogate.
type Dimension interface {
	// Sample draws a value uniformly over the dimension.
	Sample(rng *rand.Rand) any
	// Encode maps a sampled value into [0, 1].
	Encode(value any) float64
}

// Real is a continuous range, optionally sampled on a log scale.
type Real struct {
	Min, Max float64
	Log      bool
}

func (d Real) Sample(rng *rand.Rand) any {
	if d.Log {
		lo, hi := math.Log(d.Min), math.Log(d.Max)
		return math.Exp(lo + rng.Float64()*(hi-lo))
	}
	return d.Min + rng.Float64()*(d.Max-d.Min)
}

func (d Real) Encode(value any) float64 {
	v := value.(float64)
	if d.Log {
		return (math.Log(v) - math.Log(d.Min)) / (math.Log(d.Max) - math.Log(d.Min))
	}
	return (v - d.Min) / (d.Max - d.Min)
}

// Integer is an inclusive integer range.
type Integer struct {
	Min, Max int
}

func (d Integer) Sample(rng *rand.Rand) any {
	return d.Min + rng.Intn(d.Max-d.Min+1)
}

func (d Integer) Encode(value any) float64 {
	if d.Max == d.Min {
		return 0
	}
	return float64(value.(int)-d.Min) / float64(d.Max-d.Min)
}

// Categorical is a fixed set of choices.
type Categorical struct {
	Choices []any
}

func (d Categorical) Sample(rng *rand.Rand) any {
	return d.Choices[rng.Intn(len(d.Choices))]
}

func (d Categorical) Encode(value any) float64 {
	if len(d.Choices) < 2 {
		return 0
	}
	for i, choice := range d.Choices {
		if choice == value {
			return float64(i) / float64(len(d.Choices)-1)
		}
	}
	return 0
}

// Param is a named dimension.
type Param struct {
	Name string
	Dim  Dimension
}

// Space is an ordered hyperparameter search space.
type Space []Param

// Sample draws one configuration.
func (s Space) Sample(rng *rand.Rand) model.Params {
	out := make(model.Params, len(s))
	for _, p := range s {
		out[p.Name] = p.Dim.Sample(rng)
	}
	return out
}

// Encode maps a configuration into the unit hypercube, one coordinate per
// dimension in space order.
func (s Space) Encode(params model.Params) []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Dim.Encode(params[p.Name])
	}
	return out
}

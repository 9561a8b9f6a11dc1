package search

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mhartmann/richter/pkg/model"
	"github.com/mhartmann/richter/pkg/preprocess"
)

// Options controls the optimization loop.
type Options struct {
	// Iterations is the total configuration evaluation budget.
	Iterations int
	// Folds is the cross-validation fold count per evaluation.
	Folds int
	// InitialPoints is how many configurations are drawn uniformly before
	// the surrogate starts proposing. 0 means min(5, Iterations).
	InitialPoints int
	// Candidates is how many random configurations the acquisition
	// function ranks per proposal. 0 means 500.
	Candidates int
	// Seed fixes fold splitting and exploration randomness.
	Seed int64
}

// Observation is one evaluated configuration.
type Observation struct {
	Params model.Params
	Score  float64
}

// Result carries the best-observed configuration, its cross-validated
// score, a pipeline refit on the full training set with that
// configuration, and the full evaluation history.
type Result struct {
	BestParams model.Params
	BestScore  float64
	Pipeline   *model.Pipeline
	History    []Observation
}

// Run performs sequential model-based optimization over space: each
// iteration proposes a configuration (uniformly at first, then by expected
// improvement under a Gaussian-process surrogate of the observed scores),
// evaluates it with k-fold cross-validated micro-F1, and updates the
// surrogate. After the budget is exhausted the winning configuration is
// refit on all of enc.
func Run(build PipelineBuilder, enc *preprocess.Encoded, y []int, space Space, opts Options) (*Result, error) {
	if opts.Iterations < 1 {
		return nil, fmt.Errorf("iteration budget must be positive, got %d", opts.Iterations)
	}
	if len(space) == 0 {
		return nil, errors.New("empty search space")
	}

	initial := opts.InitialPoints
	if initial == 0 {
		initial = 5
	}
	if initial > opts.Iterations {
		initial = opts.Iterations
	}
	candidates := opts.Candidates
	if candidates == 0 {
		candidates = 500
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	result := &Result{BestScore: -1}
	var encodings [][]float64
	var scores []float64

	for iter := 0; iter < opts.Iterations; iter++ {
		var params model.Params
		if iter < initial {
			params = space.Sample(rng)
		} else {
			fitted, err := fitSurrogate(encodings, scores)
			if err != nil {
				return nil, fmt.Errorf("fitting surrogate: %w", err)
			}
			params = propose(fitted, space, rng, candidates, result.BestScore)
		}

		score, err := crossValidate(build, enc, y, params, opts.Folds, opts.Seed)
		if err != nil {
			return nil, fmt.Errorf("evaluating configuration %v: %w", params, err)
		}

		encodings = append(encodings, space.Encode(params))
		scores = append(scores, score)
		result.History = append(result.History, Observation{Params: params, Score: score})
		if score > result.BestScore {
			result.BestScore = score
			result.BestParams = params
		}
	}

	pipe, err := build(result.BestParams)
	if err != nil {
		return nil, fmt.Errorf("building final pipeline: %w", err)
	}
	if err := pipe.Fit(enc, y); err != nil {
		return nil, fmt.Errorf("refitting best configuration: %w", err)
	}
	result.Pipeline = pipe
	return result, nil
}

// propose ranks uniformly drawn candidate configurations by expected
// improvement and returns the best.
func propose(s *surrogate, space Space, rng *rand.Rand, candidates int, best float64) model.Params {
	bestParams := space.Sample(rng)
	bestEI := s.expectedImprovement(space.Encode(bestParams), best)
	for i := 1; i < candidates; i++ {
		params := space.Sample(rng)
		ei := s.expectedImprovement(space.Encode(params), best)
		if ei > bestEI {
			bestEI = ei
			bestParams = params
		}
	}
	return bestParams
}

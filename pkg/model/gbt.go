package model

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// GradientBoosting defaults.
const (
	defaultGBTEstimators = 100
	defaultGBTLearnRate  = 0.1
	defaultGBTMaxDepth   = 3
	defaultGBTMinLeaf    = 1
)

// GradientBoosting is a multiclass gradient-boosted tree classifier: one
// regression tree per class per round, fitted to the softmax residuals of
// the running scores. Training is deterministic.
type GradientBoosting struct {
	NEstimators  int
	LearningRate float64
	MaxDepth     int
	MinLeaf      int

	classes []int
	rounds  [][]*regressionTree
}

// NewGradientBoosting constructs the classifier from a hyperparameter map.
// Recognized keys: n_estimators, learning_rate, max_depth,
// min_samples_leaf. An empty map means defaults.
func NewGradientBoosting(params Params) (*GradientBoosting, error) {
	estimators, err := params.Int("n_estimators", defaultGBTEstimators)
	if err != nil {
		return nil, err
	}
	learnRate, err := params.Float("learning_rate", defaultGBTLearnRate)
	if err != nil {
		return nil, err
	}
	maxDepth, err := params.Int("max_depth", defaultGBTMaxDepth)
	if err != nil {
		return nil, err
	}
	minLeaf, err := params.Int("min_samples_leaf", defaultGBTMinLeaf)
	if err != nil {
		return nil, err
	}

	if estimators < 1 {
		return nil, fmt.Errorf("n_estimators must be positive, got %d", estimators)
	}
	if learnRate <= 0 {
		return nil, fmt.Errorf("learning_rate must be positive, got %g", learnRate)
	}
	if maxDepth < 1 {
		return nil, fmt.Errorf("max_depth must be positive, got %d", maxDepth)
	}
	if minLeaf < 1 {
		return nil, fmt.Errorf("min_samples_leaf must be positive, got %d", minLeaf)
	}

	return &GradientBoosting{
		NEstimators:  estimators,
		LearningRate: learnRate,
		MaxDepth:     maxDepth,
		MinLeaf:      minLeaf,
	}, nil
}

func (g *GradientBoosting) Fit(X *mat.Dense, y []int) error {
	rows, _ := X.Dims()
	if rows == 0 {
		return errors.New("gradient boosting: empty X")
	}
	if rows != len(y) {
		return errors.New("gradient boosting: X and y length mismatch")
	}

	g.classes = distinctSorted(y)
	k := len(g.classes)
	classIndex := make(map[int]int, k)
	for idx, class := range g.classes {
		classIndex[class] = idx
	}
	if k == 1 {
		g.rounds = nil
		return nil
	}

	scores := mat.NewDense(rows, k, nil)
	residuals := make([]float64, rows)
	indices := make([]int, rows)
	for i := range indices {
		indices[i] = i
	}

	g.rounds = make([][]*regressionTree, g.NEstimators)
	for m := 0; m < g.NEstimators; m++ {
		probs := softmax(scores)
		g.rounds[m] = make([]*regressionTree, k)
		for c := 0; c < k; c++ {
			for i := 0; i < rows; i++ {
				target := 0.0
				if classIndex[y[i]] == c {
					target = 1.0
				}
				residuals[i] = target - probs.At(i, c)
			}

			leafValue := func(leafIndices []int) float64 {
				num, den := 0.0, 0.0
				for _, i := range leafIndices {
					r := residuals[i]
					num += r
					den += math.Abs(r) * (1 - math.Abs(r))
				}
				if den == 0 {
					return 0
				}
				return float64(k-1) / float64(k) * num / den
			}

			tree := fitRegressionTree(X, residuals, indices, g.MaxDepth, g.MinLeaf, leafValue)
			g.rounds[m][c] = tree
			for i := 0; i < rows; i++ {
				scores.Set(i, c, scores.At(i, c)+g.LearningRate*tree.predictRow(X, i))
			}
		}
	}
	return nil
}

func (g *GradientBoosting) Predict(X *mat.Dense) ([]int, error) {
	if g.classes == nil {
		return nil, errors.New("gradient boosting is not fitted")
	}
	rows, _ := X.Dims()
	out := make([]int, rows)
	if len(g.classes) == 1 {
		for i := range out {
			out[i] = g.classes[0]
		}
		return out, nil
	}

	k := len(g.classes)
	scores := mat.NewDense(rows, k, nil)
	for _, round := range g.rounds {
		for c, tree := range round {
			for i := 0; i < rows; i++ {
				scores.Set(i, c, scores.At(i, c)+g.LearningRate*tree.predictRow(X, i))
			}
		}
	}

	for i := 0; i < rows; i++ {
		best := 0
		for c := 1; c < k; c++ {
			if scores.At(i, c) > scores.At(i, best) {
				best = c
			}
		}
		out[i] = g.classes[best]
	}
	return out, nil
}

func softmax(scores *mat.Dense) *mat.Dense {
	rows, cols := scores.Dims()
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		maxScore := scores.At(i, 0)
		for c := 1; c < cols; c++ {
			if scores.At(i, c) > maxScore {
				maxScore = scores.At(i, c)
			}
		}
		sum := 0.0
		for c := 0; c < cols; c++ {
			v := math.Exp(scores.At(i, c) - maxScore)
			out.Set(i, c, v)
			sum += v
		}
		for c := 0; c < cols; c++ {
			out.Set(i, c, out.At(i, c)/sum)
		}
	}
	return out
}

func distinctSorted(y []int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, v := range y {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

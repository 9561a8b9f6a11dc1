package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/ensemble"
	"gonum.org/v1/gonum/mat"
)

// RandomForest defaults.
const defaultForestEstimators = 100

// RandomForest wraps the golearn ensemble random forest behind the
// Classifier contract, converting between matrices and golearn instances.
type RandomForest struct {
	NEstimators int
	// MaxFeatures is the feature-subset size per split; 0 means the square
	// root of the feature count, resolved at fit time.
	MaxFeatures int

	inner   *ensemble.RandomForest
	classes []string
}

// NewRandomForest constructs the classifier from a hyperparameter map.
// Recognized keys: n_estimators, max_features. An empty map means defaults.
func NewRandomForest(params Params) (*RandomForest, error) {
	estimators, err := params.Int("n_estimators", defaultForestEstimators)
	if err != nil {
		return nil, err
	}
	maxFeatures, err := params.Int("max_features", 0)
	if err != nil {
		return nil, err
	}

	if estimators < 1 {
		return nil, fmt.Errorf("n_estimators must be positive, got %d", estimators)
	}
	if maxFeatures < 0 {
		return nil, fmt.Errorf("max_features must not be negative, got %d", maxFeatures)
	}

	return &RandomForest{NEstimators: estimators, MaxFeatures: maxFeatures}, nil
}

func (rf *RandomForest) Fit(X *mat.Dense, y []int) error {
	rows, cols := X.Dims()
	if rows == 0 {
		return errors.New("random forest: empty X")
	}
	if rows != len(y) {
		return errors.New("random forest: X and y length mismatch")
	}

	rf.classes = nil
	for _, class := range distinctSorted(y) {
		rf.classes = append(rf.classes, strconv.Itoa(class))
	}

	features := rf.MaxFeatures
	if features == 0 {
		features = int(math.Sqrt(float64(cols)))
	}
	if features < 1 {
		features = 1
	}
	if features > cols {
		features = cols
	}

	grid, err := rf.instances(X, y)
	if err != nil {
		return err
	}

	rf.inner = ensemble.NewRandomForest(rf.NEstimators, features)
	if err := rf.inner.Fit(grid); err != nil {
		return fmt.Errorf("fitting random forest: %w", err)
	}
	return nil
}

func (rf *RandomForest) Predict(X *mat.Dense) ([]int, error) {
	if rf.inner == nil {
		return nil, errors.New("random forest is not fitted")
	}

	grid, err := rf.instances(X, nil)
	if err != nil {
		return nil, err
	}
	predictions, err := rf.inner.Predict(grid)
	if err != nil {
		return nil, fmt.Errorf("predicting with random forest: %w", err)
	}

	rows, _ := X.Dims()
	out := make([]int, rows)
	for i := 0; i < rows; i++ {
		class, err := strconv.Atoi(base.GetClass(predictions, i))
		if err != nil {
			return nil, fmt.Errorf("parsing predicted class: %w", err)
		}
		out[i] = class
	}
	return out, nil
}

// instances converts a feature matrix into golearn dense instances. With a
// nil label slice it builds a prediction grid: the class attribute still
// carries the training categories, in training order, so predicted classes
// resolve consistently.
func (rf *RandomForest) instances(X *mat.Dense, y []int) (*base.DenseInstances, error) {
	rows, cols := X.Dims()

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, 0, cols)
	for j := 0; j < cols; j++ {
		specs = append(specs, inst.AddAttribute(base.NewFloatAttribute(fmt.Sprintf("f%d", j))))
	}

	classAttr := base.NewCategoricalAttribute()
	classAttr.SetName("class")
	classSpec := inst.AddAttribute(classAttr)
	if err := inst.AddClassAttribute(classAttr); err != nil {
		return nil, fmt.Errorf("adding class attribute: %w", err)
	}
	for _, class := range rf.classes {
		classAttr.GetSysValFromString(class)
	}

	if err := inst.Extend(rows); err != nil {
		return nil, fmt.Errorf("allocating instances: %w", err)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			inst.Set(specs[j], i, base.PackFloatToBytes(X.At(i, j)))
		}
		label := rf.classes[0]
		if y != nil {
			label = strconv.Itoa(y[i])
		}
		inst.Set(classSpec, i, classAttr.GetSysValFromString(label))
	}
	return inst, nil
}

package model

import (
	"errors"
	"fmt"

	"github.com/mhartmann/richter/pkg/preprocess"
)

// Pipeline composes a standard scaler with a classifier. Fitting captures
// the feature schema, so prediction-time inputs are always aligned to the
// training-time columns before being scaled and classified.
type Pipeline struct {
	scaler     *StandardScaler
	classifier Classifier
	features   []string
	fitted     bool
}

// NewPipeline wraps the classifier with a variance-only scaler.
func NewPipeline(classifier Classifier) *Pipeline {
	return &Pipeline{
		scaler:     NewStandardScaler(false),
		classifier: classifier,
	}
}

// Fit trains the scaler and classifier on the encoded features and records
// the feature schema for prediction-time alignment.
func (p *Pipeline) Fit(enc *preprocess.Encoded, y []int) error {
	if enc.NumRows() != len(y) {
		return fmt.Errorf("got %d feature rows but %d labels", enc.NumRows(), len(y))
	}
	if err := p.scaler.Fit(enc.X); err != nil {
		return err
	}
	scaled, err := p.scaler.Transform(enc.X)
	if err != nil {
		return err
	}
	if err := p.classifier.Fit(scaled, y); err != nil {
		return fmt.Errorf("fitting classifier: %w", err)
	}

	p.features = make([]string, len(enc.Columns))
	copy(p.features, enc.Columns)
	p.fitted = true
	return nil
}

// Predict aligns enc to the training-time schema, scales it, and returns
// the predicted class per row.
func (p *Pipeline) Predict(enc *preprocess.Encoded) ([]int, error) {
	if !p.fitted {
		return nil, errors.New("pipeline is not fitted")
	}
	aligned := preprocess.Align(enc, p.features)
	scaled, err := p.scaler.Transform(aligned.X)
	if err != nil {
		return nil, err
	}
	predictions, err := p.classifier.Predict(scaled)
	if err != nil {
		return nil, fmt.Errorf("predicting: %w", err)
	}
	return predictions, nil
}

// FeatureNames returns the schema captured at fit time.
func (p *Pipeline) FeatureNames() []string {
	out := make([]string, len(p.features))
	copy(out, p.features)
	return out
}

// IsFitted reports whether Fit has completed.
func (p *Pipeline) IsFitted() bool {
	return p.fitted
}

// NewRandomForestPipeline builds an untrained scaler+random-forest
// pipeline. An empty params map means defaults.
func NewRandomForestPipeline(params Params) (*Pipeline, error) {
	forest, err := NewRandomForest(params)
	if err != nil {
		return nil, err
	}
	return NewPipeline(forest), nil
}

// NewGradientBoostingPipeline builds an untrained scaler+gradient-boosting
// pipeline. An empty params map means defaults.
func NewGradientBoostingPipeline(params Params) (*Pipeline, error) {
	gbt, err := NewGradientBoosting(params)
	if err != nil {
		return nil, err
	}
	return NewPipeline(gbt), nil
}

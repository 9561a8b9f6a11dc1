// Package submit applies a fitted pipeline to the competition test data
// and writes predictions in the submission-format template.
package submit

import (
	"fmt"

	"github.com/mhartmann/richter/pkg/frame"
	"github.com/mhartmann/richter/pkg/model"
	"github.com/mhartmann/richter/pkg/preprocess"
	"github.com/mhartmann/richter/pkg/tables"
)

// SchemaMismatchError reports a row-count disagreement between predictions
// and the submission-format template.
type SchemaMismatchError struct {
	TemplateRows   int
	PredictionRows int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("submission template has %d rows but got %d predictions",
		e.TemplateRows, e.PredictionRows)
}

// CreateSubmission loads the test features, encodes them the way training
// encoded its features, predicts with the fitted pipeline (which aligns
// inputs to its captured training schema), and writes a CSV whose row
// identifiers and columns are copied from the submission-format template
// with the prediction columns overwritten.
func CreateSubmission(pipe *model.Pipeline, testValuesPath, formatPath, outPath string) error {
	test, err := frame.ReadCSV(testValuesPath)
	if err != nil {
		return err
	}

	enc, err := preprocess.NewEncoder().FitTransform(test.Drop(tables.BuildingID))
	if err != nil {
		return fmt.Errorf("encoding test values: %w", err)
	}
	predictions, err := pipe.Predict(enc)
	if err != nil {
		return err
	}

	format, err := frame.ReadCSV(formatPath)
	if err != nil {
		return err
	}
	if format.NumRows() != len(predictions) {
		return &SchemaMismatchError{TemplateRows: format.NumRows(), PredictionRows: len(predictions)}
	}
	for _, field := range tables.Submission.Fields() {
		if _, ok := format.Column(field.Name); !ok {
			return fmt.Errorf("submission template has no %q column", field.Name)
		}
	}

	predicted := make([]int64, len(predictions))
	for i, p := range predictions {
		predicted[i] = int64(p)
	}

	outCols := make([]*frame.Column, 0, format.NumCols())
	for _, col := range format.Columns() {
		if col.Name == tables.BuildingID {
			outCols = append(outCols, col)
			continue
		}
		outCols = append(outCols, frame.NewIntColumn(col.Name, predicted))
	}
	submission, err := frame.New(outCols...)
	if err != nil {
		return err
	}

	if err := submission.WriteCSV(outPath); err != nil {
		return fmt.Errorf("writing submission: %w", err)
	}
	return nil
}

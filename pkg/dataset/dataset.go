// Package dataset loads the raw survey tables and assembles the interim
// train/test artifacts consumed by preprocessing and modeling.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mhartmann/richter/pkg/frame"
	"github.com/mhartmann/richter/pkg/tables"
)

// LoadCompetitionRaw loads the competition train features, train labels,
// and test features from the given raw data directory.
func LoadCompetitionRaw(rawDir string) (train, labels, test *frame.Frame, err error) {
	train, err = frame.ReadCSV(filepath.Join(rawDir, tables.TrainValuesFile))
	if err != nil {
		return nil, nil, nil, err
	}
	labels, err = frame.ReadCSV(filepath.Join(rawDir, tables.TrainLabelsFile))
	if err != nil {
		return nil, nil, nil, err
	}
	test, err = frame.ReadCSV(filepath.Join(rawDir, tables.TestValuesFile))
	if err != nil {
		return nil, nil, nil, err
	}
	return train, labels, test, nil
}

// LoadOriginalRaw loads the original survey tables (damage assessment,
// building structure, ownership and use) from the given raw data directory.
func LoadOriginalRaw(rawDir string) (damage, structure, ownerUse *frame.Frame, err error) {
	damage, err = frame.ReadCSV(filepath.Join(rawDir, tables.DamageAssessmentFile))
	if err != nil {
		return nil, nil, nil, err
	}
	structure, err = frame.ReadCSV(filepath.Join(rawDir, tables.StructureFile))
	if err != nil {
		return nil, nil, nil, err
	}
	ownerUse, err = frame.ReadCSV(filepath.Join(rawDir, tables.OwnershipFile))
	if err != nil {
		return nil, nil, nil, err
	}
	return damage, structure, ownerUse, nil
}

// BuildCompetitionTables attaches labels to the training features by
// building_id and passes the test features through unchanged.
func BuildCompetitionTables(train, labels, test *frame.Frame) (*frame.Frame, *frame.Frame, error) {
	merged, err := frame.LeftJoin(train, labels, tables.BuildingID)
	if err != nil {
		return nil, nil, fmt.Errorf("merging labels onto train: %w", err)
	}
	return merged, test, nil
}

// BuildOriginalTable attaches ownership attributes to the structure records
// by building_id.
func BuildOriginalTable(structure, ownerUse *frame.Frame) (*frame.Frame, error) {
	merged, err := frame.LeftJoin(structure, ownerUse, tables.BuildingID)
	if err != nil {
		return nil, fmt.Errorf("merging ownership onto structure: %w", err)
	}
	return merged, nil
}

// WriteInterim writes the merged train table and the test table as
// gzip-compressed Parquet files under outDir, creating it if needed.
func WriteInterim(train, test *frame.Frame, outDir, trainOut, testOut string) error {
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := train.WriteParquet(filepath.Join(outDir, trainOut)); err != nil {
		return fmt.Errorf("writing train interim: %w", err)
	}
	if err := test.WriteParquet(filepath.Join(outDir, testOut)); err != nil {
		return fmt.Errorf("writing test interim: %w", err)
	}
	return nil
}

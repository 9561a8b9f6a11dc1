// Package config holds the process-wide defaults for data locations.
// Entry points take an explicit Config rather than reading globals, so
// commands and tests can override any path.
package config

import (
	"path/filepath"

	"github.com/mhartmann/richter/pkg/tables"
)

// Config names the directories and default file names the pipeline reads
// from and writes to.
type Config struct {
	// RawDataDir holds the competition/ and original/ input files.
	RawDataDir string
	// InterimDataDir receives the merged train/test Parquet artifacts.
	InterimDataDir string
	// ProcessedDataDir receives final outputs such as submission files.
	ProcessedDataDir string

	// TrainInterimFile and TestInterimFile are the interim artifact names
	// written under InterimDataDir.
	TrainInterimFile string
	TestInterimFile  string

	// SubmissionFile is the default submission name under ProcessedDataDir.
	SubmissionFile string
}

// Default returns the conventional data layout relative to the working
// directory.
func Default() Config {
	return Config{
		RawDataDir:       filepath.Join("data", "raw"),
		InterimDataDir:   filepath.Join("data", "interim"),
		ProcessedDataDir: filepath.Join("data", "processed"),
		TrainInterimFile: tables.TrainInterimName,
		TestInterimFile:  tables.TestInterimName,
		SubmissionFile:   "submission.csv",
	}
}

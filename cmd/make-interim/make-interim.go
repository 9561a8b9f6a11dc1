package main

import (
	"fmt"
	"os"

	"github.com/mhartmann/richter/pkg/config"
	"github.com/mhartmann/richter/pkg/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	FlagRawDir   = "raw-dir"
	FlagOutDir   = "out-dir"
	FlagTrainOut = "train-out"
	FlagTestOut  = "test-out"
)

func init() {
	defaults := config.Default()
	cmd.Flags().String(FlagRawDir, defaults.RawDataDir, "raw data directory")
	cmd.Flags().String(FlagOutDir, defaults.InterimDataDir, "interim output directory")
	cmd.Flags().String(FlagTrainOut, defaults.TrainInterimFile, "train interim file name")
	cmd.Flags().String(FlagTestOut, defaults.TestInterimFile, "test interim file name")
}

func main() {
	err := cmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var cmd = cobra.Command{
	Use:     "make-interim",
	Short:   "merges the raw competition tables into interim parquet artifacts",
	Args:    cobra.NoArgs,
	Version: "0.1.0",
	RunE:    runE,
}

func runE(cmd *cobra.Command, _ []string) error {
	rawDir, err := cmd.Flags().GetString(FlagRawDir)
	if err != nil {
		return fmt.Errorf("getting raw directory: %w", err)
	}
	outDir, err := cmd.Flags().GetString(FlagOutDir)
	if err != nil {
		return fmt.Errorf("getting output directory: %w", err)
	}
	trainOut, err := cmd.Flags().GetString(FlagTrainOut)
	if err != nil {
		return fmt.Errorf("getting train output name: %w", err)
	}
	testOut, err := cmd.Flags().GetString(FlagTestOut)
	if err != nil {
		return fmt.Errorf("getting test output name: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("loading raw data", zap.String("dir", rawDir))
	train, labels, test, err := dataset.LoadCompetitionRaw(rawDir)
	if err != nil {
		return fmt.Errorf("loading competition raw data: %w", err)
	}

	logger.Info("building interim artifacts",
		zap.Int("train_rows", train.NumRows()),
		zap.Int("test_rows", test.NumRows()))
	merged, test, err := dataset.BuildCompetitionTables(train, labels, test)
	if err != nil {
		return fmt.Errorf("building interim tables: %w", err)
	}

	err = dataset.WriteInterim(merged, test, outDir, trainOut, testOut)
	if err != nil {
		return err
	}
	logger.Info("interim artifacts written", zap.String("dir", outDir))
	return nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mhartmann/richter/pkg/config"
	"github.com/mhartmann/richter/pkg/dataset"
	"github.com/mhartmann/richter/pkg/frame"
	"github.com/mhartmann/richter/pkg/model"
	"github.com/mhartmann/richter/pkg/preprocess"
	"github.com/mhartmann/richter/pkg/search"
	"github.com/mhartmann/richter/pkg/submit"
	"github.com/mhartmann/richter/pkg/tables"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	FlagRawDir           = "raw-dir"
	FlagOut              = "out"
	FlagModel            = "model"
	FlagIterations       = "iterations"
	FlagFolds            = "folds"
	FlagValSize          = "val-size"
	FlagNeighbors        = "neighbors"
	FlagOutlierColumn    = "outlier-column"
	FlagOutlierThreshold = "outlier-threshold"
	FlagSeed             = "seed"
)

func init() {
	defaults := config.Default()
	cmd.Flags().String(FlagRawDir, defaults.RawDataDir, "raw data directory")
	cmd.Flags().String(FlagOut, filepath.Join(defaults.ProcessedDataDir, defaults.SubmissionFile), "submission output path")
	cmd.Flags().String(FlagModel, "rf", "classifier strategy [rf|gbt]")
	cmd.Flags().Int(FlagIterations, 25, "hyperparameter search budget")
	cmd.Flags().Int(FlagFolds, 5, "cross-validation folds")
	cmd.Flags().Float64(FlagValSize, 0.2, "validation split fraction")
	cmd.Flags().Int(FlagNeighbors, preprocess.DefaultNeighbors, "oversampling neighbor count")
	cmd.Flags().String(FlagOutlierColumn, "", "numeric column to filter on; empty disables outlier removal")
	cmd.Flags().Float64(FlagOutlierThreshold, 0, "keep rows with outlier-column value at or below this")
	cmd.Flags().Int64(FlagSeed, 0, "random seed")
}

func main() {
	err := cmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var cmd = cobra.Command{
	Use:     "make-submission",
	Short:   "trains a damage-grade classifier and writes a competition submission",
	Args:    cobra.NoArgs,
	Version: "0.1.0",
	RunE:    runE,
}

func runE(cmd *cobra.Command, _ []string) error {
	rawDir, err := cmd.Flags().GetString(FlagRawDir)
	if err != nil {
		return fmt.Errorf("getting raw directory: %w", err)
	}
	outPath, err := cmd.Flags().GetString(FlagOut)
	if err != nil {
		return fmt.Errorf("getting output path: %w", err)
	}
	modelName, err := cmd.Flags().GetString(FlagModel)
	if err != nil {
		return fmt.Errorf("getting model: %w", err)
	}
	iterations, err := cmd.Flags().GetInt(FlagIterations)
	if err != nil {
		return fmt.Errorf("getting iterations: %w", err)
	}
	folds, err := cmd.Flags().GetInt(FlagFolds)
	if err != nil {
		return fmt.Errorf("getting folds: %w", err)
	}
	valSize, err := cmd.Flags().GetFloat64(FlagValSize)
	if err != nil {
		return fmt.Errorf("getting validation size: %w", err)
	}
	neighbors, err := cmd.Flags().GetInt(FlagNeighbors)
	if err != nil {
		return fmt.Errorf("getting neighbor count: %w", err)
	}
	outlierColumn, err := cmd.Flags().GetString(FlagOutlierColumn)
	if err != nil {
		return fmt.Errorf("getting outlier column: %w", err)
	}
	outlierThreshold, err := cmd.Flags().GetFloat64(FlagOutlierThreshold)
	if err != nil {
		return fmt.Errorf("getting outlier threshold: %w", err)
	}
	seed, err := getSeed(cmd)
	if err != nil {
		return fmt.Errorf("getting seed: %w", err)
	}

	builder, space, err := strategy(modelName)
	if err != nil {
		return err
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("loading raw data", zap.String("dir", rawDir))
	trainValues, labels, test, err := dataset.LoadCompetitionRaw(rawDir)
	if err != nil {
		return fmt.Errorf("loading competition raw data: %w", err)
	}
	merged, _, err := dataset.BuildCompetitionTables(trainValues, labels, test)
	if err != nil {
		return fmt.Errorf("merging labels onto train: %w", err)
	}

	if outlierColumn != "" {
		before := merged.NumRows()
		merged, err = preprocess.RemoveOutliers(merged, outlierColumn, outlierThreshold)
		if err != nil {
			return fmt.Errorf("removing outliers: %w", err)
		}
		logger.Info("removed outliers",
			zap.String("column", outlierColumn),
			zap.Int("dropped", before-merged.NumRows()))
	}

	y, err := labelVector(merged)
	if err != nil {
		return err
	}
	enc, err := preprocess.NewEncoder().FitTransform(merged.Drop(tables.BuildingID, tables.DamageGrade))
	if err != nil {
		return fmt.Errorf("encoding features: %w", err)
	}
	logger.Info("encoded features",
		zap.Int("rows", enc.NumRows()),
		zap.Int("columns", len(enc.Columns)))

	trainEnc, valEnc, yTrain, yVal, err := preprocess.SplitTrainVal(enc, y, valSize, seed)
	if err != nil {
		return fmt.Errorf("splitting train/validation: %w", err)
	}

	balancedX, yBalanced, err := preprocess.Oversample(trainEnc.X, yTrain, neighbors, seed)
	if err != nil {
		return fmt.Errorf("oversampling: %w", err)
	}
	trainEnc = &preprocess.Encoded{Columns: trainEnc.Columns, X: balancedX}
	logger.Info("rebalanced classes", zap.Int("rows", trainEnc.NumRows()))

	logger.Info("searching hyperparameters",
		zap.String("model", modelName),
		zap.Int("iterations", iterations),
		zap.Int("folds", folds))
	result, err := search.Run(builder, trainEnc, yBalanced, space, search.Options{
		Iterations: iterations,
		Folds:      folds,
		Seed:       seed,
	})
	if err != nil {
		return fmt.Errorf("hyperparameter search: %w", err)
	}
	logger.Info("search finished",
		zap.Float64("cv_micro_f1", result.BestScore),
		zap.Any("params", result.BestParams))

	valPredictions, err := result.Pipeline.Predict(valEnc)
	if err != nil {
		return fmt.Errorf("predicting validation set: %w", err)
	}
	logger.Info("validation score",
		zap.Float64("micro_f1", model.MicroF1(yVal, valPredictions)))

	if err := os.MkdirAll(filepath.Dir(outPath), os.ModePerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	err = submit.CreateSubmission(result.Pipeline,
		filepath.Join(rawDir, tables.TestValuesFile),
		filepath.Join(rawDir, tables.SubmissionFormatFile),
		outPath)
	if err != nil {
		return err
	}
	logger.Info("submission written", zap.String("path", outPath))
	return nil
}

func strategy(name string) (search.PipelineBuilder, search.Space, error) {
	switch name {
	case "rf":
		space := search.Space{
			{Name: "n_estimators", Dim: search.Integer{Min: 50, Max: 300}},
			{Name: "max_features", Dim: search.Integer{Min: 4, Max: 64}},
		}
		return model.NewRandomForestPipeline, space, nil
	case "gbt":
		space := search.Space{
			{Name: "n_estimators", Dim: search.Integer{Min: 50, Max: 300}},
			{Name: "learning_rate", Dim: search.Real{Min: 0.01, Max: 0.3, Log: true}},
			{Name: "max_depth", Dim: search.Integer{Min: 2, Max: 6}},
		}
		return model.NewGradientBoostingPipeline, space, nil
	default:
		return nil, nil, fmt.Errorf("model must be one of [rf|gbt], not %s", name)
	}
}

// labelVector extracts damage_grade as an int label per row.
func labelVector(merged *frame.Frame) ([]int, error) {
	col, ok := merged.Column(tables.DamageGrade)
	if !ok {
		return nil, fmt.Errorf("merged table has no %q column", tables.DamageGrade)
	}
	y := make([]int, col.Len())
	for i := 0; i < col.Len(); i++ {
		v, valid := col.Float(i)
		if !valid {
			return nil, fmt.Errorf("row %d has no %s", i, tables.DamageGrade)
		}
		y[i] = int(v)
	}
	return y, nil
}

func getSeed(cmd *cobra.Command) (int64, error) {
	// Check if the user set the seed manually.
	seedSet := false
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if f.Name == FlagSeed {
			seedSet = true
		}
	})

	if seedSet {
		// User-provided seed.
		return cmd.Flags().GetInt64(FlagSeed)
	}
	// Use time as seed.
	return time.Now().UnixNano(), nil
}

package preprocess_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mhartmann/richter/pkg/frame"
	"github.com/mhartmann/richter/pkg/preprocess"
	"github.com/stretchr/testify/require"
)

func trainFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(
		frame.NewIntColumn("age", []int64{10, 20, 30}),
		frame.NewStringColumn("roof", []string{"tin", "tile", "tin"}),
		frame.NewFloatColumn("height", []float64{5, 6, 7}),
	)
	require.NoError(t, err)
	return f
}

func TestEncoder_SchemaOrder(t *testing.T) {
	enc := preprocess.NewEncoder()
	require.NoError(t, enc.Fit(trainFrame(t)))

	// Numeric columns pass through in place; categorical columns expand
	// into one indicator per category in first-encounter order.
	want := []string{"age", "roof_tin", "roof_tile", "height"}
	if diff := cmp.Diff(want, enc.Schema()); diff != "" {
		t.Errorf("schema (-want +got):\n%s", diff)
	}
}

func TestEncoder_TransformIndicators(t *testing.T) {
	enc := preprocess.NewEncoder()
	encoded, err := enc.FitTransform(trainFrame(t))
	require.NoError(t, err)

	require.Equal(t, 3, encoded.NumRows())
	// Row 1: age=20, roof=tile, height=6.
	require.Equal(t, 20.0, encoded.X.At(1, 0))
	require.Equal(t, 0.0, encoded.X.At(1, 1))
	require.Equal(t, 1.0, encoded.X.At(1, 2))
	require.Equal(t, 6.0, encoded.X.At(1, 3))
}

func TestEncoder_SameCategorySameColumnAcrossCalls(t *testing.T) {
	enc := preprocess.NewEncoder()
	require.NoError(t, enc.Fit(trainFrame(t)))

	other, err := frame.New(
		frame.NewIntColumn("age", []int64{40}),
		frame.NewStringColumn("roof", []string{"tile"}),
		frame.NewFloatColumn("height", []float64{3}),
	)
	require.NoError(t, err)

	first, err := enc.Transform(other)
	require.NoError(t, err)
	second, err := enc.Transform(other)
	require.NoError(t, err)

	require.Equal(t, first.Columns, second.Columns)
	require.Equal(t, 1.0, first.X.At(0, 2))
}

func TestEncoder_UnseenCategoryEncodesAsZeros(t *testing.T) {
	enc := preprocess.NewEncoder()
	require.NoError(t, enc.Fit(trainFrame(t)))

	test, err := frame.New(
		frame.NewIntColumn("age", []int64{15}),
		frame.NewStringColumn("roof", []string{"thatch"}),
		frame.NewFloatColumn("height", []float64{4}),
	)
	require.NoError(t, err)

	encoded, err := enc.Transform(test)
	require.NoError(t, err)
	require.Equal(t, 0.0, encoded.X.At(0, 1))
	require.Equal(t, 0.0, encoded.X.At(0, 2))
}

func TestEncoder_MissingTrainingCategoryYieldsZeroColumn(t *testing.T) {
	enc := preprocess.NewEncoder()
	require.NoError(t, enc.Fit(trainFrame(t)))

	// No "tin" roofs at inference time: the roof_tin indicator still
	// exists and is zero everywhere.
	test, err := frame.New(
		frame.NewIntColumn("age", []int64{15, 25}),
		frame.NewStringColumn("roof", []string{"tile", "tile"}),
		frame.NewFloatColumn("height", []float64{4, 5}),
	)
	require.NoError(t, err)

	encoded, err := enc.Transform(test)
	require.NoError(t, err)
	require.Equal(t, enc.Schema(), encoded.Columns)
	for i := 0; i < encoded.NumRows(); i++ {
		require.Equal(t, 0.0, encoded.X.At(i, 1))
	}
}

func TestEncoder_TransformEmptyFrame(t *testing.T) {
	enc := preprocess.NewEncoder()
	f := trainFrame(t)
	require.NoError(t, enc.Fit(f))

	// Filtering can legitimately drop every row; encoding the leftover
	// frame reports an error rather than producing an empty matrix.
	empty, err := preprocess.RemoveOutliers(f, "age", 5)
	require.NoError(t, err)
	require.Equal(t, 0, empty.NumRows())

	_, err = enc.Transform(empty)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no rows")
}

func TestEncoder_CategoricalColumnArrivesNumeric(t *testing.T) {
	enc := preprocess.NewEncoder()
	require.NoError(t, enc.Fit(trainFrame(t)))

	test, err := frame.New(
		frame.NewIntColumn("age", []int64{15}),
		frame.NewIntColumn("roof", []int64{7}),
		frame.NewFloatColumn("height", []float64{4}),
	)
	require.NoError(t, err)

	_, err = enc.Transform(test)
	require.Error(t, err)
	require.Contains(t, err.Error(), "roof")
}

func TestEncoder_TransformBeforeFit(t *testing.T) {
	_, err := preprocess.NewEncoder().Transform(trainFrame(t))
	require.Error(t, err)
}

func TestEncoder_MissingSourceColumn(t *testing.T) {
	enc := preprocess.NewEncoder()
	require.NoError(t, enc.Fit(trainFrame(t)))

	partial, err := frame.New(frame.NewIntColumn("age", []int64{1}))
	require.NoError(t, err)
	_, err = enc.Transform(partial)
	require.Error(t, err)
}

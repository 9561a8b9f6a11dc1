package frame_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mhartmann/richter/pkg/frame"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsRaggedColumns(t *testing.T) {
	_, err := frame.New(
		frame.NewIntColumn("a", []int64{1, 2}),
		frame.NewIntColumn("b", []int64{1}),
	)
	require.Error(t, err)
}

func TestNew_RejectsDuplicateNames(t *testing.T) {
	_, err := frame.New(
		frame.NewIntColumn("a", []int64{1}),
		frame.NewFloatColumn("a", []float64{1}),
	)
	require.Error(t, err)
}

func TestDrop(t *testing.T) {
	f, err := frame.New(
		frame.NewIntColumn("a", []int64{1, 2}),
		frame.NewStringColumn("b", []string{"x", "y"}),
		frame.NewFloatColumn("c", []float64{0.5, 1.5}),
	)
	require.NoError(t, err)

	got := f.Drop("b", "missing")
	if diff := cmp.Diff([]string{"a", "c"}, got.ColumnNames()); diff != "" {
		t.Errorf("column names (-want +got):\n%s", diff)
	}
	require.Equal(t, 2, got.NumRows())
}

func TestTake_RepeatsAndReorders(t *testing.T) {
	f, err := frame.New(
		frame.NewIntColumn("a", []int64{10, 20, 30}),
	)
	require.NoError(t, err)

	got := f.Take([]int{2, 0, 0})
	col, ok := got.Column("a")
	require.True(t, ok)
	if diff := cmp.Diff([]int64{30, 10, 10}, col.Ints); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestLeftJoin_AttachesRightColumns(t *testing.T) {
	left, err := frame.New(
		frame.NewIntColumn("building_id", []int64{1, 2, 3}),
		frame.NewStringColumn("roof", []string{"tin", "tile", "thatch"}),
	)
	require.NoError(t, err)
	right, err := frame.New(
		frame.NewIntColumn("building_id", []int64{3, 1, 2}),
		frame.NewIntColumn("damage_grade", []int64{3, 1, 2}),
	)
	require.NoError(t, err)

	got, err := frame.LeftJoin(left, right, "building_id")
	require.NoError(t, err)

	require.Equal(t, 3, got.NumRows())
	if diff := cmp.Diff([]string{"building_id", "roof", "damage_grade"}, got.ColumnNames()); diff != "" {
		t.Errorf("column names (-want +got):\n%s", diff)
	}
	grade, ok := got.Column("damage_grade")
	require.True(t, ok)
	if diff := cmp.Diff([]int64{1, 2, 3}, grade.Ints); diff != "" {
		t.Errorf("left row order not preserved (-want +got):\n%s", diff)
	}
}

func TestLeftJoin_UnmatchedRowsGetNulls(t *testing.T) {
	left, err := frame.New(
		frame.NewIntColumn("building_id", []int64{1, 2}),
	)
	require.NoError(t, err)
	right, err := frame.New(
		frame.NewIntColumn("building_id", []int64{2}),
		frame.NewFloatColumn("age", []float64{15}),
	)
	require.NoError(t, err)

	got, err := frame.LeftJoin(left, right, "building_id")
	require.NoError(t, err)
	require.Equal(t, 2, got.NumRows())

	age, ok := got.Column("age")
	require.True(t, ok)
	require.False(t, age.IsValid(0))
	require.True(t, age.IsValid(1))
	v, valid := age.Float(1)
	require.True(t, valid)
	require.Equal(t, 15.0, v)
}

func TestLeftJoin_DuplicateKeysFanOut(t *testing.T) {
	left, err := frame.New(
		frame.NewIntColumn("building_id", []int64{1, 2}),
	)
	require.NoError(t, err)
	right, err := frame.New(
		frame.NewIntColumn("building_id", []int64{1, 1}),
		frame.NewStringColumn("use", []string{"home", "shop"}),
	)
	require.NoError(t, err)

	got, err := frame.LeftJoin(left, right, "building_id")
	require.NoError(t, err)
	// Row 1 matches twice, row 2 not at all.
	require.Equal(t, 3, got.NumRows())
	require.GreaterOrEqual(t, got.NumRows(), left.NumRows())
}

func TestLeftJoin_MissingColumn(t *testing.T) {
	left, err := frame.New(frame.NewIntColumn("a", []int64{1}))
	require.NoError(t, err)
	right, err := frame.New(frame.NewIntColumn("b", []int64{1}))
	require.NoError(t, err)

	_, err = frame.LeftJoin(left, right, "b")
	require.Error(t, err)
	_, err = frame.LeftJoin(left, right, "a")
	require.Error(t, err)
}

package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSpace() Space {
	return Space{
		{Name: "n_estimators", Dim: Integer{Min: 10, Max: 100}},
		{Name: "learning_rate", Dim: Real{Min: 0.01, Max: 0.3, Log: true}},
		{Name: "criterion", Dim: Categorical{Choices: []any{"gini", "entropy"}}},
	}
}

func TestSpace_SampleWithinBounds(t *testing.T) {
	space := testSpace()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 100; i++ {
		params := space.Sample(rng)

		n := params["n_estimators"].(int)
		require.GreaterOrEqual(t, n, 10)
		require.LessOrEqual(t, n, 100)

		lr := params["learning_rate"].(float64)
		require.GreaterOrEqual(t, lr, 0.01)
		require.LessOrEqual(t, lr, 0.3)

		criterion := params["criterion"].(string)
		require.Contains(t, []string{"gini", "entropy"}, criterion)
	}
}

func TestSpace_SampleDeterministic(t *testing.T) {
	space := testSpace()

	first := space.Sample(rand.New(rand.NewSource(3)))
	second := space.Sample(rand.New(rand.NewSource(3)))
	require.Equal(t, first, second)
}

func TestSpace_EncodeUnitInterval(t *testing.T) {
	space := testSpace()
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 100; i++ {
		encoded := space.Encode(space.Sample(rng))
		require.Len(t, encoded, len(space))
		for _, v := range encoded {
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestSpace_EncodeEndpoints(t *testing.T) {
	dim := Integer{Min: 10, Max: 20}
	require.Equal(t, 0.0, dim.Encode(10))
	require.Equal(t, 1.0, dim.Encode(20))
	require.Equal(t, 0.5, dim.Encode(15))

	cat := Categorical{Choices: []any{"a", "b"}}
	require.Equal(t, 0.0, cat.Encode("a"))
	require.Equal(t, 1.0, cat.Encode("b"))
}

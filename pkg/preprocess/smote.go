package preprocess

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// DefaultNeighbors is the nearest-neighbor count used when oversampling.
const DefaultNeighbors = 5

// InsufficientSamplesError reports a class too small to synthesize
// neighbors for.
type InsufficientSamplesError struct {
	Class     int
	Count     int
	Neighbors int
}

func (e *InsufficientSamplesError) Error() string {
	return fmt.Sprintf("class %d has %d samples, need more than %d to synthesize neighbors",
		e.Class, e.Count, e.Neighbors)
}

// Oversample rebalances X and y by synthesizing minority-class rows until
// every class reaches the majority class's count. Each synthetic row is an
// interpolation between a minority sample and one of its k nearest
// same-class neighbors. Original rows are preserved and synthetic rows are
// appended. The same seed and input produce the same output. A minority
// class with k or fewer members yields an InsufficientSamplesError.
func Oversample(X *mat.Dense, y []int, neighbors int, seed int64) (*mat.Dense, []int, error) {
	rows, cols := X.Dims()
	if rows != len(y) {
		return nil, nil, fmt.Errorf("got %d feature rows but %d labels", rows, len(y))
	}
	if neighbors < 1 {
		return nil, nil, fmt.Errorf("neighbor count must be positive, got %d", neighbors)
	}

	byClass := make(map[int][]int)
	for i, class := range y {
		byClass[class] = append(byClass[class], i)
	}
	classes := make([]int, 0, len(byClass))
	majority := 0
	for class, members := range byClass {
		classes = append(classes, class)
		if len(members) > majority {
			majority = len(members)
		}
	}
	sort.Ints(classes)

	for _, class := range classes {
		if count := len(byClass[class]); count < majority && count <= neighbors {
			return nil, nil, &InsufficientSamplesError{Class: class, Count: count, Neighbors: neighbors}
		}
	}

	rng := rand.New(rand.NewSource(seed))
	outRows := [][]float64{}
	outLabels := []int{}
	for i := 0; i < rows; i++ {
		row := make([]float64, cols)
		copy(row, X.RawRowView(i))
		outRows = append(outRows, row)
		outLabels = append(outLabels, y[i])
	}

	for _, class := range classes {
		members := byClass[class]
		need := majority - len(members)
		if need == 0 {
			continue
		}

		nearest := nearestNeighbors(X, members, neighbors)
		for t := 0; t < need; t++ {
			i := rng.Intn(len(members))
			j := nearest[i][rng.Intn(len(nearest[i]))]
			gap := rng.Float64()

			base := X.RawRowView(members[i])
			other := X.RawRowView(members[j])
			synthetic := make([]float64, cols)
			for c := 0; c < cols; c++ {
				synthetic[c] = base[c] + gap*(other[c]-base[c])
			}
			outRows = append(outRows, synthetic)
			outLabels = append(outLabels, class)
		}
	}

	out := mat.NewDense(len(outRows), cols, nil)
	for i, row := range outRows {
		out.SetRow(i, row)
	}
	return out, outLabels, nil
}

// nearestNeighbors returns, for each member index position, the positions
// (within members) of its k nearest same-class neighbors by Euclidean
// distance, excluding itself.
func nearestNeighbors(X *mat.Dense, members []int, k int) [][]int {
	n := len(members)
	type neighbor struct {
		position int
		distance float64
	}

	out := make([][]int, n)
	for i := 0; i < n; i++ {
		candidates := make([]neighbor, 0, n-1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			candidates = append(candidates, neighbor{
				position: j,
				distance: squaredDistance(X.RawRowView(members[i]), X.RawRowView(members[j])),
			})
		}
		sort.Slice(candidates, func(a, b int) bool {
			if candidates[a].distance != candidates[b].distance {
				return candidates[a].distance < candidates[b].distance
			}
			return candidates[a].position < candidates[b].position
		})

		count := k
		if count > len(candidates) {
			count = len(candidates)
		}
		out[i] = make([]int, count)
		for c := 0; c < count; c++ {
			out[i][c] = candidates[c].position
		}
	}
	return out
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

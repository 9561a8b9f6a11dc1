package preprocess

import (
	"fmt"
	"math"
	"math/rand"
)

// SplitTrainVal partitions the rows of enc and y into disjoint train and
// validation sets, keeping feature and label rows paired. valFraction is the
// fraction of rows assigned to the validation set, rounded up. The same seed
// produces the same partition; no row is dropped or duplicated.
func SplitTrainVal(enc *Encoded, y []int, valFraction float64, seed int64) (train, val *Encoded, yTrain, yVal []int, err error) {
	rows := enc.NumRows()
	if rows != len(y) {
		return nil, nil, nil, nil, fmt.Errorf("got %d feature rows but %d labels", rows, len(y))
	}
	if valFraction <= 0 || valFraction >= 1 {
		return nil, nil, nil, nil, fmt.Errorf("validation fraction must be in (0, 1), got %g", valFraction)
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(rows)
	nVal := int(math.Ceil(valFraction * float64(rows)))
	if nVal >= rows {
		return nil, nil, nil, nil, fmt.Errorf("validation fraction %g rounds %d of %d rows into validation, leaving no training rows", valFraction, nVal, rows)
	}

	valIdx := perm[:nVal]
	trainIdx := perm[nVal:]

	yTrain = make([]int, 0, len(trainIdx))
	for _, i := range trainIdx {
		yTrain = append(yTrain, y[i])
	}
	yVal = make([]int, 0, len(valIdx))
	for _, i := range valIdx {
		yVal = append(yVal, y[i])
	}

	train, err = enc.Take(trainIdx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	val, err = enc.Take(valIdx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return train, val, yTrain, yVal, nil
}

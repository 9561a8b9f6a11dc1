package model

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// regressionTree is a depth-limited CART regressor used as the weak learner
// for gradient boosting. Splits minimize the squared error of the targets;
// leaf values are supplied by the caller so the boosting stage can apply
// its own leaf estimate.
type regressionTree struct {
	root *treeNode
}

type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

// leafValueFunc computes the value of a leaf from the row indices assigned
// to it.
type leafValueFunc func(indices []int) float64

func fitRegressionTree(X *mat.Dense, targets []float64, indices []int, maxDepth, minLeaf int, leafValue leafValueFunc) *regressionTree {
	return &regressionTree{root: growTree(X, targets, indices, maxDepth, minLeaf, leafValue)}
}

func growTree(X *mat.Dense, targets []float64, indices []int, depth, minLeaf int, leafValue leafValueFunc) *treeNode {
	if depth <= 0 || len(indices) < 2*minLeaf || uniform(targets, indices) {
		return &treeNode{leaf: true, value: leafValue(indices)}
	}

	feature, threshold, ok := bestSplit(X, targets, indices, minLeaf)
	if !ok {
		return &treeNode{leaf: true, value: leafValue(indices)}
	}

	var left, right []int
	for _, i := range indices {
		if X.At(i, feature) <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      growTree(X, targets, left, depth-1, minLeaf, leafValue),
		right:     growTree(X, targets, right, depth-1, minLeaf, leafValue),
	}
}

// bestSplit finds the feature and threshold with the largest squared-error
// reduction, requiring minLeaf rows on each side. Thresholds are midpoints
// between adjacent distinct feature values.
func bestSplit(X *mat.Dense, targets []float64, indices []int, minLeaf int) (feature int, threshold float64, ok bool) {
	_, cols := X.Dims()
	n := len(indices)

	total := 0.0
	for _, i := range indices {
		total += targets[i]
	}

	bestGain := 0.0
	type pair struct {
		value  float64
		target float64
	}
	pairs := make([]pair, n)

	for j := 0; j < cols; j++ {
		for p, i := range indices {
			pairs[p] = pair{value: X.At(i, j), target: targets[i]}
		}
		sort.Slice(pairs, func(a, b int) bool { return pairs[a].value < pairs[b].value })

		leftSum := 0.0
		for p := 0; p < n-1; p++ {
			leftSum += pairs[p].target
			if pairs[p].value == pairs[p+1].value {
				continue
			}
			nLeft := p + 1
			nRight := n - nLeft
			if nLeft < minLeaf || nRight < minLeaf {
				continue
			}
			rightSum := total - leftSum
			gain := leftSum*leftSum/float64(nLeft) + rightSum*rightSum/float64(nRight) - total*total/float64(n)
			if gain > bestGain {
				bestGain = gain
				feature = j
				threshold = (pairs[p].value + pairs[p+1].value) / 2
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func uniform(targets []float64, indices []int) bool {
	for _, i := range indices[1:] {
		if targets[i] != targets[indices[0]] {
			return false
		}
	}
	return true
}

func (t *regressionTree) predictRow(X *mat.Dense, i int) float64 {
	node := t.root
	for !node.leaf {
		if X.At(i, node.feature) <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

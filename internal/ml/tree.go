package ml

import "sort"

const (
	// treeLambda is the L2 regularization term on leaf weights
	treeLambda = 1.0
	// treeMinChildWeight is the minimum hessian sum allowed in a child
	treeMinChildWeight = 1e-6
)

// regTree is a regression tree fitted to per-example gradients and
// hessians, producing additive score corrections for one class.
type regTree struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *regTree
	right     *regTree
}

// fitRegTree grows a tree of at most maxDepth over the examples in idx.
func fitRegTree(X [][]float64, grad, hess []float64, idx []int, maxDepth int) *regTree {
	gSum, hSum := 0.0, 0.0
	for _, i := range idx {
		gSum += grad[i]
		hSum += hess[i]
	}

	if maxDepth <= 0 || len(idx) < 2 {
		return &regTree{leaf: true, value: leafWeight(gSum, hSum)}
	}

	bestGain := 0.0
	bestFeature := -1
	bestThreshold := 0.0
	parentScore := gSum * gSum / (hSum + treeLambda)

	dims := len(X[idx[0]])
	order := make([]int, len(idx))
	for f := 0; f < dims; f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

		gLeft, hLeft := 0.0, 0.0
		for pos := 0; pos < len(order)-1; pos++ {
			i := order[pos]
			gLeft += grad[i]
			hLeft += hess[i]

			// No split between equal feature values
			if X[order[pos]][f] == X[order[pos+1]][f] {
				continue
			}

			gRight := gSum - gLeft
			hRight := hSum - hLeft
			if hLeft < treeMinChildWeight || hRight < treeMinChildWeight {
				continue
			}

			gain := gLeft*gLeft/(hLeft+treeLambda) + gRight*gRight/(hRight+treeLambda) - parentScore
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (X[order[pos]][f] + X[order[pos+1]][f]) / 2
			}
		}
	}

	if bestFeature < 0 {
		return &regTree{leaf: true, value: leafWeight(gSum, hSum)}
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if X[i][bestFeature] < bestThreshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}

	return &regTree{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      fitRegTree(X, grad, hess, leftIdx, maxDepth-1),
		right:     fitRegTree(X, grad, hess, rightIdx, maxDepth-1),
	}
}

// predict returns the tree's score correction for one example
func (t *regTree) predict(x []float64) float64 {
	node := t
	for !node.leaf {
		if x[node.feature] < node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

// leafWeight is the regularized optimal leaf value −G/(H+λ)
func leafWeight(gSum, hSum float64) float64 {
	return -gSum / (hSum + treeLambda)
}

package ml

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// BoostParams are the tunable hyperparameters of the boosted classifier
type BoostParams struct {
	NEstimators  int     `json:"n_estimators"`
	MaxDepth     int     `json:"max_depth"`
	LearningRate float64 `json:"learning_rate"`
}

// GradientBoost is the tuned classifier: softmax gradient boosting over
// regression trees, one tree per class per round.
type GradientBoost struct {
	Params BoostParams

	rounds     [][]*regTree // rounds × classes
	numClasses int
}

// NewGradientBoost creates a boosted classifier with the given parameters
func NewGradientBoost(params BoostParams) *GradientBoost {
	return &GradientBoost{Params: params}
}

// Fit trains the ensemble on feature matrix X and encoded labels y
func (m *GradientBoost) Fit(X [][]float64, y []int, numClasses int) error {
	if len(X) != len(y) {
		return fmt.Errorf("feature/label length mismatch: %d features, %d labels", len(X), len(y))
	}
	if len(X) == 0 {
		return fmt.Errorf("empty training set")
	}
	if numClasses < 2 {
		return ErrTooFewClasses
	}
	if m.Params.NEstimators <= 0 || m.Params.MaxDepth <= 0 || m.Params.LearningRate <= 0 {
		return fmt.Errorf("invalid boost parameters: %+v", m.Params)
	}

	n := len(X)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	scores := make([][]float64, n)
	for i := range scores {
		scores[i] = make([]float64, numClasses)
	}

	probs := make([]float64, numClasses)
	grad := make([]float64, n)
	hess := make([]float64, n)
	m.rounds = make([][]*regTree, 0, m.Params.NEstimators)

	for round := 0; round < m.Params.NEstimators; round++ {
		classTrees := make([]*regTree, numClasses)
		for k := 0; k < numClasses; k++ {
			for i := 0; i < n; i++ {
				copy(probs, scores[i])
				softmaxInPlace(probs)
				p := probs[k]
				target := 0.0
				if y[i] == k {
					target = 1.0
				}
				grad[i] = p - target
				hess[i] = p * (1 - p)
			}
			classTrees[k] = fitRegTree(X, grad, hess, idx, m.Params.MaxDepth)
		}

		for i := 0; i < n; i++ {
			for k := 0; k < numClasses; k++ {
				scores[i][k] += m.Params.LearningRate * classTrees[k].predict(X[i])
			}
		}
		m.rounds = append(m.rounds, classTrees)
	}

	m.numClasses = numClasses
	return nil
}

// Predict returns the encoded label with the highest boosted score per row
func (m *GradientBoost) Predict(X [][]float64) []int {
	preds := make([]int, len(X))
	scores := make([]float64, m.numClasses)
	for i, row := range X {
		for k := range scores {
			scores[k] = 0
		}
		for _, classTrees := range m.rounds {
			for k, tree := range classTrees {
				scores[k] += m.Params.LearningRate * tree.predict(row)
			}
		}
		preds[i] = floats.MaxIdx(scores)
	}
	return preds
}

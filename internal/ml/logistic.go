package ml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultLogisticMaxIter caps gradient-descent iterations
	DefaultLogisticMaxIter = 200
	// DefaultLogisticLearningRate is the full-batch step size
	DefaultLogisticLearningRate = 0.5
	// DefaultLogisticTol stops training when the loss improvement per
	// iteration falls below this threshold
	DefaultLogisticTol = 1e-6
)

// LogisticRegression is the baseline classifier: multinomial logistic
// regression trained by full-batch gradient descent with a bounded
// iteration cap. Deterministic for a given input.
type LogisticRegression struct {
	MaxIter      int
	LearningRate float64
	Tol          float64

	weights    *mat.Dense // dims × numClasses
	bias       []float64
	numClasses int
	dims       int
}

// NewLogisticRegression creates a baseline classifier with default settings
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{
		MaxIter:      DefaultLogisticMaxIter,
		LearningRate: DefaultLogisticLearningRate,
		Tol:          DefaultLogisticTol,
	}
}

// Fit trains the model on feature matrix X and encoded labels y
func (m *LogisticRegression) Fit(X [][]float64, y []int, numClasses int) error {
	if len(X) != len(y) {
		return fmt.Errorf("feature/label length mismatch: %d features, %d labels", len(X), len(y))
	}
	if len(X) == 0 {
		return fmt.Errorf("empty training set")
	}
	if numClasses < 2 {
		return ErrTooFewClasses
	}

	n := len(X)
	d := len(X[0])
	flat := make([]float64, 0, n*d)
	for i, row := range X {
		if len(row) != d {
			return fmt.Errorf("inconsistent feature dimension at row %d: got %d, want %d", i, len(row), d)
		}
		flat = append(flat, row...)
	}
	Xm := mat.NewDense(n, d, flat)

	weights := mat.NewDense(d, numClasses, nil)
	bias := make([]float64, numClasses)

	var logits, probs, grad mat.Dense
	prevLoss := math.Inf(1)

	for iter := 0; iter < m.MaxIter; iter++ {
		logits.Mul(Xm, weights)
		probs.CloneFrom(&logits)

		loss := 0.0
		for i := 0; i < n; i++ {
			row := probs.RawRowView(i)
			floats.Add(row, bias)
			softmaxInPlace(row)
			loss -= math.Log(math.Max(row[y[i]], 1e-15))
			// probs becomes the residual P − Y in place
			row[y[i]] -= 1
		}
		loss /= float64(n)

		grad.Mul(Xm.T(), &probs)
		grad.Scale(m.LearningRate/float64(n), &grad)
		weights.Sub(weights, &grad)

		for k := 0; k < numClasses; k++ {
			colSum := 0.0
			for i := 0; i < n; i++ {
				colSum += probs.At(i, k)
			}
			bias[k] -= m.LearningRate * colSum / float64(n)
		}

		if math.Abs(prevLoss-loss) < m.Tol {
			break
		}
		prevLoss = loss
	}

	m.weights = weights
	m.bias = bias
	m.numClasses = numClasses
	m.dims = d
	return nil
}

// Predict returns the encoded label with the highest score for each row
func (m *LogisticRegression) Predict(X [][]float64) []int {
	preds := make([]int, len(X))
	scores := make([]float64, m.numClasses)
	for i, row := range X {
		for k := 0; k < m.numClasses; k++ {
			scores[k] = m.bias[k] + floats.Dot(row, mat.Col(nil, k, m.weights))
		}
		preds[i] = floats.MaxIdx(scores)
	}
	return preds
}

// softmaxInPlace converts logits to probabilities, shifted for stability
func softmaxInPlace(row []float64) {
	max := floats.Max(row)
	sum := 0.0
	for i, v := range row {
		row[i] = math.Exp(v - max)
		sum += row[i]
	}
	floats.Scale(1/sum, row)
}

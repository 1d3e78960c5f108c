package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// ErrTooFewClasses is returned when the label vector has fewer than two
// distinct classes; a stratified split is undefined in that case.
var ErrTooFewClasses = errors.New("label vector has fewer than 2 distinct classes")

// DefaultTestFraction is the held-out share used by the insights pipeline
const DefaultTestFraction = 0.2

// DefaultSplitSeed fixes the split so repeated analyses of the same upload
// evaluate on the same fold
const DefaultSplitSeed int64 = 42

// Split holds a stratified train/test partition
type Split struct {
	XTrain [][]float64
	YTrain []int
	XTest  [][]float64
	YTest  []int
}

// StratifiedSplit partitions (X, y) into train and test folds preserving
// class proportions. It fails when X and y lengths mismatch or when fewer
// than two classes are present. Single-member classes go entirely to the
// training fold so the model still sees every label.
func StratifiedSplit(X [][]float64, y []int, testFraction float64, seed int64) (*Split, error) {
	if len(X) != len(y) {
		return nil, fmt.Errorf("feature/label length mismatch: %d features, %d labels", len(X), len(y))
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, fmt.Errorf("test fraction must be in (0,1), got %v", testFraction)
	}

	byClass := make(map[int][]int)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	if len(byClass) < 2 {
		return nil, ErrTooFewClasses
	}

	// Deterministic class order so the same seed yields the same split
	labels := make([]int, 0, len(byClass))
	for label := range byClass {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	rng := rand.New(rand.NewSource(seed))
	split := &Split{}
	for _, label := range labels {
		idx := byClass[label]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTest := int(math.Round(float64(len(idx)) * testFraction))
		if nTest < 1 && len(idx) > 1 {
			nTest = 1
		}
		if nTest >= len(idx) {
			nTest = len(idx) - 1
		}

		for _, i := range idx[:nTest] {
			split.XTest = append(split.XTest, X[i])
			split.YTest = append(split.YTest, y[i])
		}
		for _, i := range idx[nTest:] {
			split.XTrain = append(split.XTrain, X[i])
			split.YTrain = append(split.YTrain, y[i])
		}
	}

	return split, nil
}

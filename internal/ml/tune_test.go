package ml

import "testing"

func TestTuneBoostParamsWithinSearchSpace(t *testing.T) {
	t.Parallel()

	X, y := separableData()
	model, err := TuneBoost(X, y, 2, 3, 7, nil)
	if err != nil {
		t.Fatalf("TuneBoost: %v", err)
	}

	p := model.Params
	if p.NEstimators < tuneMinEstimators || p.NEstimators > tuneMaxEstimators {
		t.Errorf("n_estimators %d outside [%d,%d]", p.NEstimators, tuneMinEstimators, tuneMaxEstimators)
	}
	if p.MaxDepth < tuneMinDepth || p.MaxDepth > tuneMaxDepth {
		t.Errorf("max_depth %d outside [%d,%d]", p.MaxDepth, tuneMinDepth, tuneMaxDepth)
	}
	if p.LearningRate < tuneMinLearnRate || p.LearningRate > tuneMaxLearnRate {
		t.Errorf("learning_rate %v outside [%v,%v]", p.LearningRate, tuneMinLearnRate, tuneMaxLearnRate)
	}
}

func TestTuneBoostReturnsUsableModel(t *testing.T) {
	t.Parallel()

	X, y := separableData()
	model, err := TuneBoost(X, y, 2, 2, 11, nil)
	if err != nil {
		t.Fatalf("TuneBoost: %v", err)
	}

	preds := model.Predict(X)
	if len(preds) != len(y) {
		t.Fatalf("expected %d predictions, got %d", len(y), len(preds))
	}
	for i, p := range preds {
		if p < 0 || p > 1 {
			t.Errorf("row %d: prediction %d outside class range", i, p)
		}
	}
}

func TestTuneBoostDeterministicForSeed(t *testing.T) {
	t.Parallel()

	X, y := separableData()

	first, err := TuneBoost(X, y, 2, 3, 42, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := TuneBoost(X, y, 2, 3, 42, nil)
	if err != nil {
		t.Fatal(err)
	}
	if first.Params != second.Params {
		t.Errorf("same seed selected different parameters: %+v vs %+v", first.Params, second.Params)
	}
}

func TestTuneBoostPropagatesFitFailure(t *testing.T) {
	t.Parallel()

	X, _ := separableData()
	singleClass := make([]int, len(X))
	if _, err := TuneBoost(X, singleClass, 1, 2, 42, nil); err == nil {
		t.Error("expected error for single-class input")
	}
}

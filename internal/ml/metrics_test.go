package ml

import (
	"math"
	"reflect"
	"testing"
)

func TestAccuracy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		yTrue []int
		yPred []int
		want  float64
	}{
		{"all correct", []int{0, 1, 1}, []int{0, 1, 1}, 1.0},
		{"none correct", []int{0, 0}, []int{1, 1}, 0.0},
		{"half correct", []int{0, 1, 0, 1}, []int{0, 1, 1, 0}, 0.5},
		{"empty", nil, nil, 0.0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Accuracy(tt.yTrue, tt.yPred); got != tt.want {
				t.Errorf("Accuracy = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfusionMatrixShapeIsStable(t *testing.T) {
	t.Parallel()

	// Class 2 never appears in the data; the matrix still covers it
	cm := ConfusionMatrix([]int{0, 1, 0}, []int{0, 1, 1}, 3)
	if len(cm) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(cm))
	}
	for i, row := range cm {
		if len(row) != 3 {
			t.Fatalf("row %d: expected 3 columns, got %d", i, len(row))
		}
	}

	want := [][]int{{1, 1, 0}, {0, 1, 0}, {0, 0, 0}}
	if !reflect.DeepEqual(cm, want) {
		t.Errorf("ConfusionMatrix = %v, want %v", cm, want)
	}
}

func TestConfusionMatrixEmptyInput(t *testing.T) {
	t.Parallel()

	cm := ConfusionMatrix(nil, nil, 2)
	want := [][]int{{0, 0}, {0, 0}}
	if !reflect.DeepEqual(cm, want) {
		t.Errorf("ConfusionMatrix = %v, want %v", cm, want)
	}
}

func TestClassificationReport(t *testing.T) {
	t.Parallel()

	// High: predicted twice, correct once; Low: predicted twice, correct twice
	yTrue := []int{0, 0, 1, 1}
	yPred := []int{0, 1, 1, 1}
	report := ClassificationReport(yTrue, yPred, []string{"High", "Low"})

	if report.Accuracy != 0.75 {
		t.Errorf("accuracy = %v, want 0.75", report.Accuracy)
	}

	high := report.PerClass["High"]
	if high.Precision != 1.0 || high.Recall != 0.5 || high.Support != 2 {
		t.Errorf("unexpected High metrics: %+v", high)
	}
	low := report.PerClass["Low"]
	if low.Precision != 2.0/3.0 || low.Recall != 1.0 || low.Support != 2 {
		t.Errorf("unexpected Low metrics: %+v", low)
	}

	if len(report.Classes) != 2 || len(report.PerClass) != 2 {
		t.Errorf("expected exactly 2 class rows, got classes=%v", report.Classes)
	}
}

func TestClassificationReportZeroDivisionIsZero(t *testing.T) {
	t.Parallel()

	// Class 1 is never predicted and never true
	yTrue := []int{0, 0}
	yPred := []int{0, 0}
	report := ClassificationReport(yTrue, yPred, []string{"High", "Low"})

	low := report.PerClass["Low"]
	if low.Precision != 0 || low.Recall != 0 || low.F1 != 0 || low.Support != 0 {
		t.Errorf("expected all-zero metrics for absent class, got %+v", low)
	}
	for name, m := range report.PerClass {
		for label, v := range map[string]float64{"precision": m.Precision, "recall": m.Recall, "f1": m.F1} {
			if math.IsNaN(v) {
				t.Errorf("class %s: %s is NaN", name, label)
			}
		}
	}
}

func TestClassificationReportEmptyFold(t *testing.T) {
	t.Parallel()

	report := ClassificationReport(nil, nil, []string{"High", "Low"})
	if report.Accuracy != 0 {
		t.Errorf("accuracy = %v, want 0", report.Accuracy)
	}
	if len(report.PerClass) != 2 {
		t.Errorf("expected 2 class rows even for an empty fold, got %d", len(report.PerClass))
	}
	for name, m := range report.PerClass {
		if m.Precision != 0 || m.Recall != 0 || m.F1 != 0 || m.Support != 0 {
			t.Errorf("class %s: expected zeros, got %+v", name, m)
		}
	}
}

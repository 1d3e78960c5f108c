package ml

// ClassMetrics holds per-class evaluation numbers. Zero-division cases
// (a class with no predicted or no true members) report 0, not an error.
type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report is a classification quality report over held-out data
type Report struct {
	Classes     []string                `json:"classes"`
	PerClass    map[string]ClassMetrics `json:"per_class"`
	Accuracy    float64                 `json:"accuracy"`
	MacroAvg    ClassMetrics            `json:"macro_avg"`
	WeightedAvg ClassMetrics            `json:"weighted_avg"`
}

// Accuracy returns the fraction of matching predictions
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}

// ConfusionMatrix returns an numClasses×numClasses matrix of counts,
// rows indexed by true label and columns by predicted label. Axes always
// cover every known class, including classes absent from the data, so the
// matrix shape is stable across runs.
func ConfusionMatrix(yTrue, yPred []int, numClasses int) [][]int {
	cm := make([][]int, numClasses)
	for i := range cm {
		cm[i] = make([]int, numClasses)
	}
	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		if t >= 0 && t < numClasses && p >= 0 && p < numClasses {
			cm[t][p]++
		}
	}
	return cm
}

// ClassificationReport computes per-class precision/recall/F1/support plus
// accuracy, macro-average and weighted-average aggregates. classes supplies
// the label names in code order and fixes the report's class set.
func ClassificationReport(yTrue, yPred []int, classes []string) *Report {
	numClasses := len(classes)
	cm := ConfusionMatrix(yTrue, yPred, numClasses)

	report := &Report{
		Classes:  append([]string(nil), classes...),
		PerClass: make(map[string]ClassMetrics, numClasses),
		Accuracy: Accuracy(yTrue, yPred),
	}

	total := len(yTrue)
	var macro ClassMetrics
	var weighted ClassMetrics

	for k := 0; k < numClasses; k++ {
		tp := cm[k][k]
		predicted, actual := 0, 0
		for j := 0; j < numClasses; j++ {
			predicted += cm[j][k]
			actual += cm[k][j]
		}

		m := ClassMetrics{Support: actual}
		if predicted > 0 {
			m.Precision = float64(tp) / float64(predicted)
		}
		if actual > 0 {
			m.Recall = float64(tp) / float64(actual)
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		report.PerClass[classes[k]] = m

		macro.Precision += m.Precision / float64(numClasses)
		macro.Recall += m.Recall / float64(numClasses)
		macro.F1 += m.F1 / float64(numClasses)

		if total > 0 {
			w := float64(m.Support) / float64(total)
			weighted.Precision += w * m.Precision
			weighted.Recall += w * m.Recall
			weighted.F1 += w * m.F1
		}
	}

	macro.Support = total
	weighted.Support = total
	report.MacroAvg = macro
	report.WeightedAvg = weighted
	return report
}

// Package ml implements the training pipeline behind AI Insights: label
// encoding, stratified splitting, a logistic-regression baseline, a
// gradient-boosted-tree classifier with bounded random hyperparameter
// search, and classification metrics.
package ml

import (
	"fmt"
	"sort"
)

// LabelEncoder maps categorical string labels to integer codes. Classes
// are ordered lexicographically so codes (and confusion-matrix axes) are
// stable across runs regardless of input order.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

// NewLabelEncoder fits an encoder over the given labels
func NewLabelEncoder(labels []string) *LabelEncoder {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	classes := make([]string, 0, len(seen))
	for l := range seen {
		classes = append(classes, l)
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &LabelEncoder{classes: classes, index: index}
}

// Classes returns the encoder's classes in code order
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// NumClasses returns the number of distinct classes
func (e *LabelEncoder) NumClasses() int {
	return len(e.classes)
}

// Transform encodes the given labels to integer codes
func (e *LabelEncoder) Transform(labels []string) ([]int, error) {
	codes := make([]int, len(labels))
	for i, l := range labels {
		code, ok := e.index[l]
		if !ok {
			return nil, fmt.Errorf("unknown label %q", l)
		}
		codes[i] = code
	}
	return codes, nil
}

// Inverse decodes an integer code back to its string label
func (e *LabelEncoder) Inverse(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("label code %d out of range [0,%d)", code, len(e.classes))
	}
	return e.classes[code], nil
}

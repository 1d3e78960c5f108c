// Package textproc normalizes free-text task descriptions before feature
// extraction: lowercase, letters only, English stopwords removed, Porter
// stemming applied.
package textproc

import (
	"regexp"
	"strings"

	"github.com/bbalet/stopwords"
	"github.com/reiver/go-porterstemmer"
)

var nonLetter = regexp.MustCompile(`[^A-Za-z]+`)

// Normalize produces the normalized token string for a raw description.
// Pure function of its input; deterministic.
func Normalize(text string) string {
	cleaned := nonLetter.ReplaceAllString(strings.ToLower(text), " ")
	cleaned = stopwords.CleanString(cleaned, "en", false)

	tokens := strings.Fields(cleaned)
	for i, tok := range tokens {
		tokens[i] = porterstemmer.StemString(tok)
	}
	return strings.Join(tokens, " ")
}

// NormalizeAll normalizes a sequence of descriptions, preserving order.
func NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = Normalize(t)
	}
	return out
}

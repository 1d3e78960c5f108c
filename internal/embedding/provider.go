// Package embedding converts text into fixed-length numeric vectors using
// a pretrained external model, with process-wide memoization of results.
package embedding

import (
	"context"
	"errors"
)

// ErrNoProvider is returned when embedding features are requested but no
// provider was configured (e.g. missing API key).
var ErrNoProvider = errors.New("no embedding provider configured")

// RequestError wraps a failure to reach the external embedding model.
// Callers treat it as an upstream failure that aborts the current
// operation; it is never retried automatically.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return "embedding request failed: " + e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Provider converts an ordered sequence of strings into vectors of a fixed
// dimension. Implementations must preserve input order and return exactly
// one vector per input.
type Provider interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float64, error)

	// Dimensions returns the fixed vector dimension of the provider's model.
	Dimensions() int
}

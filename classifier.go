package segment

import (
	"context"
	"fmt"
)

// Classifier evaluates a feature context to a probability distribution over
// a small fixed outcome alphabet. Eval must be deterministic for a given
// context and its result must sum to 1.
type Classifier interface {
	Eval(ctx context.Context, features []string) ([]float64, error)
	BestOutcome(probs []float64) string
	Index(outcome string) int
}

// ContextBuilder maps a text and an offset into it to a set of features.
type ContextBuilder interface {
	Context(text string, offset int) []string
}

// BoundaryScanner finds the offsets of possible sentence endings, in
// ascending order.
type BoundaryScanner interface {
	Positions(text string) []int
}

// ContextFunc adapts a function to ContextBuilder.
type ContextFunc func(text string, offset int) []string

// Context calls f(text, offset).
func (f ContextFunc) Context(text string, offset int) []string { return f(text, offset) }

// ScannerFunc adapts a function to BoundaryScanner.
type ScannerFunc func(text string) []int

// Positions calls f(text).
func (f ScannerFunc) Positions(text string) []int { return f(text) }

// decide evaluates one context and returns the best outcome with its
// probability.
func decide(ctx context.Context, c Classifier, features []string) (string, float64, error) {
	probs, err := c.Eval(ctx, features)
	if err != nil {
		return "", 0, err
	}
	best := c.BestOutcome(probs)
	idx := c.Index(best)
	if idx < 0 || idx >= len(probs) {
		return "", 0, fmt.Errorf("%w: %q", ErrUnknownOutcome, best)
	}
	return best, probs[idx], nil
}

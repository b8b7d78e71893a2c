// Package fake provides scripted collaborators for exercising detectors
// without a trained model.
package fake

import (
	"context"
	"strconv"
	"strings"
	"sync"
)

const (
	// Yes is the outcome that means break/split.
	Yes = "T"
	// No is the outcome that means no break/no split.
	No = "F"

	offsetPrefix = "offset="
)

// Decision is a scripted classifier answer. Prob must be in (0.5, 1] so the
// scripted outcome is also the most probable one.
type Decision struct {
	Outcome string
	Prob    float64
}

// Classifier answers from a script keyed by the offset reported by
// Contexts. Unscripted offsets get Default.
type Classifier struct {
	Script  map[int]Decision
	Default Decision
	Err     error

	mu    sync.Mutex
	calls []int
}

// NewClassifier returns a Classifier that answers outcome with probability
// 0.9 wherever it is not told otherwise.
func NewClassifier(outcome string) *Classifier {
	return &Classifier{
		Script:  map[int]Decision{},
		Default: Decision{Outcome: outcome, Prob: 0.9},
	}
}

// Set scripts the answer for offset.
func (c *Classifier) Set(offset int, outcome string, prob float64) *Classifier {
	c.Script[offset] = Decision{Outcome: outcome, Prob: prob}
	return c
}

// Eval returns [P(Yes), P(No)].
func (c *Classifier) Eval(_ context.Context, features []string) ([]float64, error) {
	offset := -1
	for _, f := range features {
		if v, ok := strings.CutPrefix(f, offsetPrefix); ok {
			offset, _ = strconv.Atoi(v)
		}
	}

	c.mu.Lock()
	c.calls = append(c.calls, offset)
	c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}
	d, ok := c.Script[offset]
	if !ok {
		d = c.Default
	}
	if d.Outcome == Yes {
		return []float64{d.Prob, 1 - d.Prob}, nil
	}
	return []float64{1 - d.Prob, d.Prob}, nil
}

// BestOutcome returns the more probable outcome.
func (c *Classifier) BestOutcome(probs []float64) string {
	if probs[0] > probs[1] {
		return Yes
	}
	return No
}

// Index returns the position of outcome in an Eval result.
func (c *Classifier) Index(outcome string) int {
	switch outcome {
	case Yes:
		return 0
	case No:
		return 1
	}
	return -1
}

// Calls returns the offsets evaluated so far, in order.
func (c *Classifier) Calls() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]int(nil), c.calls...)
}

// Contexts is a context builder whose only feature is the offset itself.
type Contexts struct{}

// Context returns a single "offset=N" feature.
func (Contexts) Context(_ string, offset int) []string {
	return []string{offsetPrefix + strconv.Itoa(offset)}
}

// Scanner reports the offsets of every byte in Chars.
type Scanner struct {
	Chars string

	mu    sync.Mutex
	calls int
}

// Positions returns the ascending offsets of delimiter bytes.
func (s *Scanner) Positions(text string) []int {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	var out []int
	for i := 0; i < len(text); i++ {
		if strings.IndexByte(s.Chars, text[i]) >= 0 {
			out = append(out, i)
		}
	}
	return out
}

// Calls returns how many times Positions ran.
func (s *Scanner) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

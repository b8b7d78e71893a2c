// Package maxent evaluates GIS-trained log-linear (maximum entropy) models.
package maxent

import (
	"context"
	"errors"
	"fmt"
	"math"

	segment "github.com/jamesainslie/go-segment"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrModelNotFound indicates the model file does not exist.
	ErrModelNotFound = errors.New("maxent: model file not found")

	// ErrInvalidModel indicates the model is malformed.
	ErrInvalidModel = errors.New("maxent: invalid model")
)

var _ segment.Classifier = (*Model)(nil)

// Param is the weight a predicate contributes to one outcome.
type Param struct {
	Outcome int
	Weight  float64
}

// Model is an immutable log-linear classifier. It is safe for concurrent use.
type Model struct {
	outcomes   []string
	index      map[string]int
	predicates map[string][]Param

	// GIS correction feature; unused when correctionConstant is 0.
	correctionConstant float64
	correctionParam    float64
}

// Option configures a Model.
type Option func(*Model)

// WithCorrection sets the GIS correction constant and the weight of the
// correction feature.
func WithCorrection(constant, param float64) Option {
	return func(m *Model) {
		m.correctionConstant = constant
		m.correctionParam = param
	}
}

// New builds a Model over outcomes. predicates maps each context predicate
// to the weights it contributes.
func New(outcomes []string, predicates map[string][]Param, opts ...Option) (*Model, error) {
	if len(outcomes) == 0 {
		return nil, fmt.Errorf("%w: no outcomes", ErrInvalidModel)
	}

	m := &Model{
		outcomes:   append([]string(nil), outcomes...),
		index:      make(map[string]int, len(outcomes)),
		predicates: make(map[string][]Param, len(predicates)),
	}
	for i, o := range outcomes {
		if _, dup := m.index[o]; dup {
			return nil, fmt.Errorf("%w: duplicate outcome %q", ErrInvalidModel, o)
		}
		m.index[o] = i
	}
	for name, params := range predicates {
		for _, p := range params {
			if p.Outcome < 0 || p.Outcome >= len(outcomes) {
				return nil, fmt.Errorf("%w: predicate %q references outcome %d", ErrInvalidModel, name, p.Outcome)
			}
		}
		m.predicates[name] = append([]Param(nil), params...)
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.correctionConstant < 0 {
		return nil, fmt.Errorf("%w: negative correction constant", ErrInvalidModel)
	}
	return m, nil
}

// Eval returns the outcome distribution for the active features. Features
// the model does not know are ignored.
func (m *Model) Eval(_ context.Context, features []string) ([]float64, error) {
	n := len(m.outcomes)
	scores := make([]float64, n)
	active := make([]int, n)
	for _, f := range features {
		for _, p := range m.predicates[f] {
			scores[p.Outcome] += p.Weight
			active[p.Outcome]++
		}
	}

	if c := m.correctionConstant; c > 0 {
		for o := range scores {
			scores[o] = scores[o]/c + (1-float64(active[o])/c)*m.correctionParam
		}
	}
	return softmax(scores), nil
}

// BestOutcome returns the most probable outcome; ties go to the earliest.
func (m *Model) BestOutcome(probs []float64) string {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	if best >= len(m.outcomes) {
		return ""
	}
	return m.outcomes[best]
}

// Index returns the position of outcome in Eval results, or -1.
func (m *Model) Index(outcome string) int {
	if i, ok := m.index[outcome]; ok {
		return i
	}
	return -1
}

// Outcomes returns the outcome labels in distribution order.
func (m *Model) Outcomes() []string {
	return append([]string(nil), m.outcomes...)
}

// NumPredicates returns how many context predicates carry weights.
func (m *Model) NumPredicates() int { return len(m.predicates) }

func softmax(scores []float64) []float64 {
	peak := math.Inf(-1)
	for _, s := range scores {
		if s > peak {
			peak = s
		}
	}
	var sum float64
	probs := make([]float64, len(scores))
	for i, s := range scores {
		probs[i] = math.Exp(s - peak)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

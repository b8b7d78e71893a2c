package inference

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"runtime"

	segment "github.com/jamesainslie/go-segment"
)

// DefaultDim is the default length of the hashed feature vector.
const DefaultDim = 1 << 14

var _ segment.Classifier = (*Classifier)(nil)

// ClassifierOption configures a Classifier.
type ClassifierOption func(*classifierConfig)

type classifierConfig struct {
	dim      int
	poolSize int
}

// WithDim sets the hashed feature vector length the model expects
// (default: DefaultDim).
func WithDim(n int) ClassifierOption {
	return func(c *classifierConfig) {
		if n > 0 {
			c.dim = n
		}
	}
}

// WithPoolSize sets the ONNX session pool size (default: runtime.NumCPU()).
func WithPoolSize(n int) ClassifierOption {
	return func(c *classifierConfig) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// Classifier evaluates boundary contexts with an ONNX model. Features are
// hashed into a fixed-length count vector. It is safe for concurrent use.
type Classifier struct {
	pool     *Pool
	outcomes []string
	index    map[string]int
	dim      int
}

// NewClassifier loads modelPath. outcomes names the model's output logits
// in order.
func NewClassifier(modelPath string, outcomes []string, opts ...ClassifierOption) (*Classifier, error) {
	cfg := classifierConfig{dim: DefaultDim, poolSize: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&cfg)
	}

	index, err := outcomeIndex(outcomes)
	if err != nil {
		return nil, err
	}

	pool, err := NewPool(modelPath, cfg.poolSize)
	if err != nil {
		return nil, err
	}

	return &Classifier{
		pool:     pool,
		outcomes: append([]string(nil), outcomes...),
		index:    index,
		dim:      cfg.dim,
	}, nil
}

// Eval hashes features, runs the model and returns the softmax of its logits.
func (c *Classifier) Eval(ctx context.Context, features []string) ([]float64, error) {
	logits, err := c.pool.Infer(ctx, HashFeatures(features, c.dim))
	if err != nil {
		return nil, err
	}
	if len(logits) != len(c.outcomes) {
		return nil, fmt.Errorf("model produced %d logits for %d outcomes", len(logits), len(c.outcomes))
	}
	return softmax(logits), nil
}

// BestOutcome returns the most probable outcome.
func (c *Classifier) BestOutcome(probs []float64) string {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	if best >= len(c.outcomes) {
		return ""
	}
	return c.outcomes[best]
}

// Index returns the position of outcome in Eval results, or -1.
func (c *Classifier) Index(outcome string) int {
	if i, ok := c.index[outcome]; ok {
		return i
	}
	return -1
}

// Close releases the session pool.
func (c *Classifier) Close() error {
	return c.pool.Close()
}

// HashFeatures maps features onto a count vector of length dim using
// FNV-1a.
func HashFeatures(features []string, dim int) []float32 {
	vec := make([]float32, dim)
	h := fnv.New32a()
	for _, f := range features {
		h.Reset()
		_, _ = h.Write([]byte(f))
		vec[h.Sum32()%uint32(dim)]++
	}
	return vec
}

func outcomeIndex(outcomes []string) (map[string]int, error) {
	if len(outcomes) == 0 {
		return nil, errors.New("inference: no outcomes")
	}
	index := make(map[string]int, len(outcomes))
	for i, o := range outcomes {
		if _, dup := index[o]; dup {
			return nil, fmt.Errorf("inference: duplicate outcome %q", o)
		}
		index[o] = i
	}
	return index, nil
}

func softmax(logits []float32) []float64 {
	peak := math.Inf(-1)
	for _, l := range logits {
		peak = math.Max(peak, float64(l))
	}
	var sum float64
	probs := make([]float64, len(logits))
	for i, l := range logits {
		probs[i] = math.Exp(float64(l) - peak)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

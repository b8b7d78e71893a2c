package inference

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestHashFeatures(t *testing.T) {
	vec := HashFeatures([]string{"x=.", "x=.", "p=Mr"}, 64)
	if len(vec) != 64 {
		t.Fatalf("len = %d, want 64", len(vec))
	}

	var total float32
	for _, v := range vec {
		total += v
	}
	if total != 3 {
		t.Errorf("counts sum to %v, want 3", total)
	}

	again := HashFeatures([]string{"p=Mr", "x=.", "x=."}, 64)
	for i := range vec {
		if vec[i] != again[i] {
			t.Fatalf("hashing depends on feature order at bucket %d", i)
		}
	}

	if got := HashFeatures(nil, 8); len(got) != 8 {
		t.Errorf("empty features: len = %d, want 8", len(got))
	}
}

func TestSoftmax(t *testing.T) {
	tests := []struct {
		name   string
		logits []float32
		want   []float64
	}{
		{"equal", []float32{0, 0}, []float64{0.5, 0.5}},
		{"sigmoid", []float32{1.5, 0}, []float64{1 / (1 + math.Exp(-1.5)), 1 / (1 + math.Exp(1.5))}},
		{"large logits", []float32{1000, 1000, 1000}, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := softmax(tt.logits)
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-6 {
					t.Errorf("softmax(%v)[%d] = %v, want %v", tt.logits, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestOutcomeIndex(t *testing.T) {
	if _, err := outcomeIndex(nil); err == nil {
		t.Error("expected error for no outcomes")
	}
	if _, err := outcomeIndex([]string{"T", "T"}); err == nil {
		t.Error("expected error for duplicate outcome")
	}

	index, err := outcomeIndex([]string{"T", "F"})
	if err != nil {
		t.Fatalf("outcomeIndex failed: %v", err)
	}
	if index["T"] != 0 || index["F"] != 1 {
		t.Errorf("index = %v", index)
	}
}

func TestClassifier_Outcomes(t *testing.T) {
	c := &Classifier{outcomes: []string{"T", "F"}, index: map[string]int{"T": 0, "F": 1}}

	if got := c.BestOutcome([]float64{0.2, 0.8}); got != "F" {
		t.Errorf("BestOutcome = %q, want F", got)
	}
	if got := c.BestOutcome([]float64{0.5, 0.5}); got != "T" {
		t.Errorf("BestOutcome on tie = %q, want T", got)
	}
	if got := c.Index("F"); got != 1 {
		t.Errorf("Index(F) = %d, want 1", got)
	}
	if got := c.Index("X"); got != -1 {
		t.Errorf("Index(X) = %d, want -1", got)
	}
}

func TestNewClassifier_ModelNotFound(t *testing.T) {
	_, err := NewClassifier("../testdata/nonexistent.onnx", []string{"T", "F"})
	if !errors.Is(err, ErrModelNotFound) {
		t.Errorf("expected ErrModelNotFound, got %v", err)
	}
}

func TestClassifier_Eval(t *testing.T) {
	skipWithoutModel(t)

	c, err := NewClassifier(testModel, []string{"T", "F"}, WithPoolSize(1))
	if err != nil {
		if isORTUnavailableError(err) {
			t.Skipf("Skipping: ONNX runtime not available: %v", err)
		}
		t.Fatalf("NewClassifier failed: %v", err)
	}
	defer func() { _ = c.Close() }()

	probs, err := c.Eval(context.Background(), []string{"x=.", "p=home", "n=He", "ncap", "ws"})
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if len(probs) != 2 {
		t.Fatalf("len(probs) = %d, want 2", len(probs))
	}
	if sum := probs[0] + probs[1]; math.Abs(sum-1) > 1e-6 {
		t.Errorf("probabilities sum to %v", sum)
	}
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	segment "github.com/jamesainslie/go-segment"
	"github.com/jamesainslie/go-segment/eos"
	"github.com/jamesainslie/go-segment/features"
	"github.com/jamesainslie/go-segment/inference"
	"github.com/jamesainslie/go-segment/maxent"
)

// ErrNoModel is returned when a detector is requested without a model path.
var ErrNoModel = errors.New("no model configured")

// Classifier loads path as an ONNX model when it ends in ".onnx" and as a
// maxent model otherwise. The returned func releases it.
func (c *Cfg) Classifier(path string) (segment.Classifier, func(), error) {
	if path == "" {
		return nil, nil, ErrNoModel
	}

	if strings.HasSuffix(path, ".onnx") {
		opts := []inference.ClassifierOption{inference.WithPoolSize(c.Workers)}
		if c.ONNXDim > 0 {
			opts = append(opts, inference.WithDim(c.ONNXDim))
		}
		oc, err := inference.NewClassifier(path, c.Outcomes, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("loading ONNX classifier: %w", err)
		}
		return oc, func() { _ = oc.Close() }, nil
	}

	m, err := maxent.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading maxent model: %w", err)
	}
	return m, func() {}, nil
}

// SentenceDetector builds a detector over SentModel. Breaks after the
// configured abbreviations are vetoed unless the list is empty.
func (c *Cfg) SentenceDetector(logger *slog.Logger) (*segment.SentenceDetector, func(), error) {
	cl, release, err := c.Classifier(c.SentModel)
	if err != nil {
		return nil, nil, fmt.Errorf("sentence model: %w", err)
	}

	opts := []segment.Option{segment.WithLogger(logger)}
	if len(c.Abbreviations) > 0 {
		opts = append(opts, segment.WithBreakFilter(eos.AbbreviationFilter(c.Abbreviations...)))
	}
	return segment.NewSentenceDetector(cl, features.NewSentence(), c.Scanner(), opts...), release, nil
}

// Tokenizer builds a tokenizer over TokModel.
func (c *Cfg) Tokenizer(logger *slog.Logger) (*segment.Tokenizer, func(), error) {
	cl, release, err := c.Classifier(c.TokModel)
	if err != nil {
		return nil, nil, fmt.Errorf("token model: %w", err)
	}

	tok := segment.NewTokenizer(cl, features.NewToken(),
		segment.WithAlphaNumericOptimization(c.AlphaNumeric),
		segment.WithLogger(logger),
	)
	return tok, release, nil
}

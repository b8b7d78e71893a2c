package segment

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"unicode/utf8"
)

// Tokenizer splits whitespace-delimited runs further wherever the
// classifier predicts a token boundary.
type Tokenizer struct {
	classifier   Classifier
	contexts     ContextBuilder
	splitOutcome string
	alphaNumeric bool
	logger       *slog.Logger
}

// NewTokenizer creates a Tokenizer from its collaborators.
func NewTokenizer(c Classifier, b ContextBuilder, opts ...Option) *Tokenizer {
	cfg := newConfig(opts)
	return &Tokenizer{
		classifier:   c,
		contexts:     b,
		splitOutcome: cfg.splitOutcome,
		alphaNumeric: cfg.alphaNumeric,
		logger:       cfg.logger,
	}
}

// AlphaNumericOptimization reports whether purely alphanumeric runs bypass
// the classifier.
func (t *Tokenizer) AlphaNumericOptimization() bool { return t.alphaNumeric }

// Tokenize returns the token spans of text and the joint probability of the
// decisions that produced each of them.
func (t *Tokenizer) Tokenize(ctx context.Context, text string) (Tokens, error) {
	var res Tokens
	evaluated := 0
	for _, s := range SplitWhitespace(text) {
		if err := ctx.Err(); err != nil {
			return Tokens{}, err
		}
		tok := s.Text(text)
		if utf8.RuneCountInString(tok) < 2 || (t.alphaNumeric && isAlphaNumeric(tok)) {
			res.Spans = append(res.Spans, s)
			res.Probs = append(res.Probs, 1.0)
			continue
		}

		segStart := s.Start
		segProb := 1.0
		for rel := range tok {
			if rel == 0 {
				continue
			}
			outcome, p, err := decide(ctx, t.classifier, t.contexts.Context(tok, rel))
			if err != nil {
				return Tokens{}, fmt.Errorf("evaluating offset %d: %w", s.Start+rel, err)
			}
			evaluated++
			// long runs would otherwise underflow to zero
			segProb = max(segProb*p, math.SmallestNonzeroFloat64)
			if outcome == t.splitOutcome {
				j := s.Start + rel
				res.Spans = append(res.Spans, Span{Start: segStart, End: j})
				res.Probs = append(res.Probs, segProb)
				segStart = j
				segProb = 1.0
			}
		}
		res.Spans = append(res.Spans, Span{Start: segStart, End: s.End})
		res.Probs = append(res.Probs, segProb)
	}

	t.logger.Debug("text tokenized",
		slog.Int("tokens", len(res.Spans)),
		slog.Int("evaluated", evaluated),
	)
	return res, nil
}

// TokenStrings returns the token substrings of text.
func (t *Tokenizer) TokenStrings(ctx context.Context, text string) ([]string, error) {
	res, err := t.Tokenize(ctx, text)
	if err != nil {
		return nil, err
	}
	return res.Strings(text), nil
}

package segment

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// SentenceDetector finds sentence starts by classifying the candidate
// sentence endings reported by a BoundaryScanner.
type SentenceDetector struct {
	classifier   Classifier
	contexts     ContextBuilder
	scanner      BoundaryScanner
	breakFilter  BreakFilter
	breakOutcome string
	logger       *slog.Logger
}

// NewSentenceDetector creates a SentenceDetector from its collaborators.
func NewSentenceDetector(c Classifier, b ContextBuilder, s BoundaryScanner, opts ...Option) *SentenceDetector {
	cfg := newConfig(opts)
	return &SentenceDetector{
		classifier:   c,
		contexts:     b,
		scanner:      s,
		breakFilter:  cfg.breakFilter,
		breakOutcome: cfg.breakOutcome,
		logger:       cfg.logger,
	}
}

// Detect returns the start offset of every sentence after the first,
// together with the probability of each break.
func (d *SentenceDetector) Detect(ctx context.Context, text string) (Sentences, error) {
	if text == "" {
		return Sentences{}, nil
	}
	return d.DetectCandidates(ctx, text, d.scanner.Positions(text))
}

// DetectCandidates is Detect with the candidate endings supplied by the
// caller. Candidates must be strictly ascending rune starts inside text.
func (d *SentenceDetector) DetectCandidates(ctx context.Context, text string, candidates []int) (Sentences, error) {
	var res Sentences
	if text == "" || len(candidates) == 0 {
		return res, nil
	}
	if err := validateCandidates(text, candidates); err != nil {
		return res, err
	}

	joint := 1.0
	evaluated := 0
	lastAccepted := 0
	for i, c := range candidates {
		after := nextRune(text, c)
		// Collapse runs of adjacent delimiters onto their last member.
		if i+1 < len(candidates) && candidates[i+1] == after {
			continue
		}
		if err := ctx.Err(); err != nil {
			return Sentences{}, err
		}

		outcome, p, err := decide(ctx, d.classifier, d.contexts.Context(text, c))
		if err != nil {
			return Sentences{}, fmt.Errorf("evaluating candidate %d: %w", c, err)
		}
		evaluated++
		joint *= p

		if outcome != d.breakOutcome || !d.breakFilter(text, lastAccepted, c) {
			continue
		}
		if c != lastAccepted {
			// Step over the delimiter, anything glued to it, then the gap.
			start := firstNonSpace(text, firstSpace(text, after))
			if start < len(text) && (len(res.Starts) == 0 || start > res.Starts[len(res.Starts)-1]) {
				res.Starts = append(res.Starts, start)
				res.Probs = append(res.Probs, p)
			}
		}
		lastAccepted = after
	}

	d.logger.Debug("sentences detected",
		slog.Int("candidates", len(candidates)),
		slog.Int("evaluated", evaluated),
		slog.Int("breaks", len(res.Starts)),
		slog.Float64("joint_prob", joint),
	)
	return res, nil
}

// Sentences returns the sentence substrings of text.
func (d *SentenceDetector) Sentences(ctx context.Context, text string) ([]string, error) {
	res, err := d.Detect(ctx, text)
	if err != nil {
		return nil, err
	}
	return res.Strings(text), nil
}

func validateCandidates(text string, candidates []int) error {
	prev := -1
	for i, c := range candidates {
		switch {
		case c < 0 || c >= len(text):
			return fmt.Errorf("%w: candidate %d at %d outside text of length %d", ErrInvalidCandidates, i, c, len(text))
		case c <= prev:
			return fmt.Errorf("%w: candidate %d at %d not after %d", ErrInvalidCandidates, i, c, prev)
		case !utf8.RuneStart(text[c]):
			return fmt.Errorf("%w: candidate %d at %d splits a rune", ErrInvalidCandidates, i, c)
		}
		prev = c
	}
	return nil
}

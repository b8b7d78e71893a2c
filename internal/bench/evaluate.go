package bench

import (
	"context"
	"fmt"

	segment "github.com/jamesainslie/go-segment"
)

// EvaluateTalk runs det over the talk body and scores its sentence starts
// against the gold boundaries.
func EvaluateTalk(ctx context.Context, det *segment.SentenceDetector, talk *Talk, cfg Config) (Metrics, error) {
	res, err := det.Detect(ctx, talk.RawText)
	if err != nil {
		return Metrics{}, fmt.Errorf("detecting %s: %w", talk.ID, err)
	}
	return Evaluate(res.Starts, talk.Boundaries(), cfg), nil
}

// EvaluateCorpus scores det over every talk with at most limit talks in
// flight and returns per-talk metrics plus their aggregate.
func EvaluateCorpus(ctx context.Context, det *segment.SentenceDetector, talks []*Talk, cfg Config, limit int) ([]Metrics, Metrics, error) {
	texts := make([]string, len(talks))
	for i, t := range talks {
		texts[i] = t.RawText
	}

	results, err := segment.DetectAll(ctx, det, texts, limit)
	if err != nil {
		return nil, Metrics{}, err
	}

	perTalk := make([]Metrics, len(talks))
	var total Metrics
	for i, res := range results {
		perTalk[i] = Evaluate(res.Starts, talks[i].Boundaries(), cfg)
		total = total.Add(perTalk[i], cfg)
	}
	return perTalk, total, nil
}

package segment

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DetectAll runs d.Detect over texts with at most limit calls in flight
// (limit <= 0 means unbounded). Results keep the order of texts.
func DetectAll(ctx context.Context, d *SentenceDetector, texts []string, limit int) ([]Sentences, error) {
	out := make([]Sentences, len(texts))
	err := forEach(ctx, len(texts), limit, func(ctx context.Context, i int) error {
		res, err := d.Detect(ctx, texts[i])
		out[i] = res
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TokenizeAll runs t.Tokenize over texts with at most limit calls in flight
// (limit <= 0 means unbounded). Results keep the order of texts.
func TokenizeAll(ctx context.Context, t *Tokenizer, texts []string, limit int) ([]Tokens, error) {
	out := make([]Tokens, len(texts))
	err := forEach(ctx, len(texts), limit, func(ctx context.Context, i int) error {
		res, err := t.Tokenize(ctx, texts[i])
		out[i] = res
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func forEach(ctx context.Context, n, limit int, fn func(context.Context, int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i := 0; i < n; i++ {
		g.Go(func() error { return fn(ctx, i) })
	}
	return g.Wait()
}

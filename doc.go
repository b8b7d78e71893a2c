// Package segment splits raw text into sentences and tokens by asking a
// statistical classifier about every candidate boundary.
//
// # Quick Start
//
//	model, err := maxent.Load("sentences.model")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	det := segment.NewSentenceDetector(model, features.NewSentence(), eos.NewScanner())
//
//	text := "Mr. Smith went home. He slept."
//	res, err := det.Detect(ctx, text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, span := range res.Spans(text) {
//	    fmt.Printf("%d: %q\n", i, span.Text(text))
//	}
//
// # Offsets
//
// All offsets are byte offsets into the UTF-8 input and always fall on rune
// starts. Spans are half-open.
//
// # Thread Safety
//
// SentenceDetector and Tokenizer keep no per-call state: units and their
// probabilities are returned together. They are safe for concurrent use as
// long as the supplied Classifier and ContextBuilder are. DetectAll and
// TokenizeAll fan a batch of texts out over a bounded number of goroutines.
package segment

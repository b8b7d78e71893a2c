package segment_test

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
	"unicode"

	segment "github.com/jamesainslie/go-segment"
	"github.com/jamesainslie/go-segment/internal/fake"
)

func TestTokenizer_Tokenize_TwoChars(t *testing.T) {
	clf := fake.NewClassifier(fake.No)
	clf.Default.Prob = 0.7
	tok := segment.NewTokenizer(clf, fake.Contexts{})

	res, err := tok.Tokenize(context.Background(), "ab")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if want := []segment.Span{{Start: 0, End: 2}}; !reflect.DeepEqual(res.Spans, want) {
		t.Errorf("Spans = %v, want %v", res.Spans, want)
	}
	if want := []float64{0.7}; !reflect.DeepEqual(res.Probs, want) {
		t.Errorf("Probs = %v, want %v", res.Probs, want)
	}
	if want := []int{1}; !reflect.DeepEqual(clf.Calls(), want) {
		t.Errorf("evaluated %v, want %v", clf.Calls(), want)
	}
}

func TestTokenizer_Tokenize_SingleChar(t *testing.T) {
	clf := fake.NewClassifier(fake.Yes)
	tok := segment.NewTokenizer(clf, fake.Contexts{})

	res, err := tok.Tokenize(context.Background(), "a")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if want := []segment.Span{{Start: 0, End: 1}}; !reflect.DeepEqual(res.Spans, want) {
		t.Errorf("Spans = %v, want %v", res.Spans, want)
	}
	if want := []float64{1.0}; !reflect.DeepEqual(res.Probs, want) {
		t.Errorf("Probs = %v, want %v", res.Probs, want)
	}
	if len(clf.Calls()) != 0 {
		t.Errorf("classifier called %d times, want 0", len(clf.Calls()))
	}
}

func TestTokenizer_Tokenize_Empty(t *testing.T) {
	for _, text := range []string{"", "   \t\n"} {
		clf := fake.NewClassifier(fake.Yes)
		tok := segment.NewTokenizer(clf, fake.Contexts{})

		res, err := tok.Tokenize(context.Background(), text)
		if err != nil {
			t.Fatalf("Tokenize(%q) failed: %v", text, err)
		}
		if res.Spans != nil || res.Probs != nil {
			t.Errorf("Tokenize(%q) = %+v, want empty", text, res)
		}
		if len(clf.Calls()) != 0 {
			t.Errorf("Tokenize(%q) called classifier %d times", text, len(clf.Calls()))
		}
	}
}

func TestTokenizer_Tokenize_NoSplits(t *testing.T) {
	text := "  hello,  world x "
	clf := fake.NewClassifier(fake.No)
	tok := segment.NewTokenizer(clf, fake.Contexts{})

	res, err := tok.Tokenize(context.Background(), text)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if want := segment.SplitWhitespace(text); !reflect.DeepEqual(res.Spans, want) {
		t.Errorf("Spans = %v, want %v", res.Spans, want)
	}
	if got, want := len(clf.Calls()), 5+4; got != want {
		t.Errorf("classifier called %d times, want %d", got, want)
	}
}

func TestTokenizer_Tokenize_Splits(t *testing.T) {
	text := "say world."
	clf := fake.NewClassifier(fake.No).Set(5, fake.Yes, 0.8)
	tok := segment.NewTokenizer(clf, fake.Contexts{})

	res, err := tok.Tokenize(context.Background(), text)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}

	want := []segment.Span{{Start: 0, End: 3}, {Start: 4, End: 9}, {Start: 9, End: 10}}
	if !reflect.DeepEqual(res.Spans, want) {
		t.Fatalf("Spans = %v, want %v", res.Spans, want)
	}
	if got := res.Strings(text); !reflect.DeepEqual(got, []string{"say", "world", "."}) {
		t.Errorf("Strings = %q", got)
	}

	wantProbs := []float64{0.9 * 0.9, math.Pow(0.9, 4) * 0.8, 1.0}
	for i, p := range res.Probs {
		if math.Abs(p-wantProbs[i]) > 1e-12 {
			t.Errorf("prob[%d] = %v, want %v", i, p, wantProbs[i])
		}
	}
}

func TestTokenizer_Tokenize_SplitEverywhere(t *testing.T) {
	clf := fake.NewClassifier(fake.Yes)
	clf.Default.Prob = 0.6
	tok := segment.NewTokenizer(clf, fake.Contexts{})

	res, err := tok.Tokenize(context.Background(), "a.b")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []segment.Span{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 3}}
	if !reflect.DeepEqual(res.Spans, want) {
		t.Errorf("Spans = %v, want %v", res.Spans, want)
	}
	if wantProbs := []float64{0.6, 0.6, 1.0}; !reflect.DeepEqual(res.Probs, wantProbs) {
		t.Errorf("Probs = %v, want %v", res.Probs, wantProbs)
	}
}

func TestTokenizer_AlphaNumericOptimization(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		text    string
		calls   int
	}{
		{"disabled", false, "hello world42", 4 + 6},
		{"enabled words", true, "hello world42", 0},
		{"enabled punctuation", true, "don't stop", 4},
		{"enabled unicode letters", true, "naïve café", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clf := fake.NewClassifier(fake.Yes)
			tok := segment.NewTokenizer(clf, fake.Contexts{}, segment.WithAlphaNumericOptimization(tt.enabled))

			if tok.AlphaNumericOptimization() != tt.enabled {
				t.Errorf("AlphaNumericOptimization() = %v, want %v", tok.AlphaNumericOptimization(), tt.enabled)
			}
			if _, err := tok.Tokenize(context.Background(), tt.text); err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			if got := len(clf.Calls()); got != tt.calls {
				t.Errorf("classifier called %d times, want %d", got, tt.calls)
			}
		})
	}
}

func TestTokenizer_Tokenize_RuneOffsets(t *testing.T) {
	clf := fake.NewClassifier(fake.No)
	tok := segment.NewTokenizer(clf, fake.Contexts{})

	if _, err := tok.Tokenize(context.Background(), "añb"); err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if want := []int{1, 3}; !reflect.DeepEqual(clf.Calls(), want) {
		t.Errorf("evaluated %v, want %v", clf.Calls(), want)
	}
}

func TestTokenizer_SplitOutcome(t *testing.T) {
	clf := fake.NewClassifier(fake.No)
	tok := segment.NewTokenizer(clf, fake.Contexts{}, segment.WithSplitOutcome(fake.No))

	got, err := tok.TokenStrings(context.Background(), "abc")
	if err != nil {
		t.Fatalf("TokenStrings failed: %v", err)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("TokenStrings = %q, want %q", got, want)
	}
}

func TestTokenizer_ClassifierError(t *testing.T) {
	boom := errors.New("boom")
	clf := fake.NewClassifier(fake.No)
	clf.Err = boom
	tok := segment.NewTokenizer(clf, fake.Contexts{})

	_, err := tok.Tokenize(context.Background(), "a bc")
	if !errors.Is(err, boom) {
		t.Errorf("expected classifier error, got: %v", err)
	}
}

func TestTokenizer_ContextCancelled(t *testing.T) {
	tok := segment.NewTokenizer(fake.NewClassifier(fake.No), fake.Contexts{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tok.Tokenize(ctx, "hello")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

// splitAtTwo splits every run at relative offset 2.
func splitAtTwo() *fake.Classifier {
	return fake.NewClassifier(fake.No).Set(2, fake.Yes, 0.75)
}

func TestTokenizer_Properties(t *testing.T) {
	texts := []string{
		"The quick (brown) fox; jumped.",
		"  leading and trailing  ",
		"tabs\tand\nnewlines\r\nmixed",
		"ünïcödé «quotes» — dash",
		"x",
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			tok := segment.NewTokenizer(splitAtTwo(), fake.Contexts{})

			res, err := tok.Tokenize(context.Background(), text)
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			if len(res.Probs) != len(res.Spans) {
				t.Fatalf("len(Probs) = %d, len(Spans) = %d", len(res.Probs), len(res.Spans))
			}

			// Tokens plus the whitespace between them rebuild the text.
			var b strings.Builder
			prev := 0
			for i, s := range res.Spans {
				if s.Start < prev || s.End <= s.Start {
					t.Fatalf("span[%d] = %v overlaps or is empty (prev end %d)", i, s, prev)
				}
				gap := text[prev:s.Start]
				if strings.TrimFunc(gap, unicode.IsSpace) != "" {
					t.Errorf("gap %q before span[%d] is not whitespace", gap, i)
				}
				b.WriteString(gap)
				b.WriteString(s.Text(text))
				prev = s.End
			}
			b.WriteString(text[prev:])
			if b.String() != text {
				t.Errorf("reconstruction = %q, want %q", b.String(), text)
			}

			for i, p := range res.Probs {
				if p <= 0 || p > 1 {
					t.Errorf("prob[%d] = %v outside (0, 1]", i, p)
				}
			}
		})
	}
}

func TestTokenizer_LongRunProbability(t *testing.T) {
	clf := fake.NewClassifier(fake.No)
	clf.Default.Prob = 0.6
	tok := segment.NewTokenizer(clf, fake.Contexts{})

	text := strings.Repeat("a", 2000)
	res, err := tok.Tokenize(context.Background(), text)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if len(res.Probs) != 1 {
		t.Fatalf("got %d tokens, want 1", len(res.Probs))
	}
	if p := res.Probs[0]; p <= 0 || p > 1 {
		t.Errorf("Probs[0] = %g, want in (0, 1]", p)
	}
}

func TestTokenizer_Idempotent(t *testing.T) {
	text := "abcdef gh, ijklm."
	ctx := context.Background()
	tok := segment.NewTokenizer(splitAtTwo(), fake.Contexts{})

	first, err := tok.TokenStrings(ctx, text)
	if err != nil {
		t.Fatalf("TokenStrings failed: %v", err)
	}
	second, err := tok.TokenStrings(ctx, strings.Join(first, " "))
	if err != nil {
		t.Fatalf("TokenStrings failed: %v", err)
	}
	if len(second) < len(first) {
		t.Errorf("re-tokenizing reduced %d tokens to %d", len(first), len(second))
	}
}

func TestSplitWhitespace(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []segment.Span
	}{
		{"empty", "", nil},
		{"only spaces", "   ", nil},
		{"one word", "word", []segment.Span{{Start: 0, End: 4}}},
		{"padded", "  a  bc ", []segment.Span{{Start: 2, End: 3}, {Start: 5, End: 7}}},
		{"unicode space", "a\u2003b", []segment.Span{{Start: 0, End: 1}, {Start: 4, End: 5}}},
		{"no-break space", "a\u00a0b", []segment.Span{{Start: 0, End: 1}, {Start: 3, End: 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segment.SplitWhitespace(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitWhitespace(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

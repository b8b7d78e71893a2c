package segment

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Span is a half-open byte interval [Start, End) of the source text.
type Span struct {
	Start int
	End   int
}

// Len returns the span length in bytes.
func (s Span) Len() int { return s.End - s.Start }

// Text returns the covered substring of text.
func (s Span) Text(text string) string { return text[s.Start:s.End] }

func (s Span) String() string { return fmt.Sprintf("[%d,%d)", s.Start, s.End) }

// Sentences is the result of one sentence detection call.
type Sentences struct {
	// Starts holds the start offset of every sentence after the first.
	Starts []int
	// Probs holds the classifier probability behind each entry of Starts.
	Probs []float64
}

// Spans pairs 0 and each start, closing the last sentence at len(text).
// Text with no content yields no spans.
func (r Sentences) Spans(text string) []Span {
	if len(text) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(r.Starts)+1)
	start := 0
	for _, next := range r.Starts {
		spans = append(spans, Span{Start: start, End: next})
		start = next
	}
	return append(spans, Span{Start: start, End: len(text)})
}

// Strings returns the sentence substrings of text.
func (r Sentences) Strings(text string) []string {
	return spanStrings(text, r.Spans(text))
}

// Tokens is the result of one tokenization call.
type Tokens struct {
	Spans []Span
	// Probs holds the joint classifier probability behind each span. It
	// never drops below math.SmallestNonzeroFloat64, however long the span.
	Probs []float64
}

// Strings returns the token substrings of text.
func (r Tokens) Strings(text string) []string {
	return spanStrings(text, r.Spans)
}

func spanStrings(text string, spans []Span) []string {
	if len(spans) == 0 {
		return nil
	}
	out := make([]string, len(spans))
	for i, s := range spans {
		out[i] = s.Text(text)
	}
	return out
}

// SplitWhitespace returns the maximal runs of non-whitespace in text.
func SplitWhitespace(text string) []Span {
	var spans []Span
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, Span{Start: start, End: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, Span{Start: start, End: len(text)})
	}
	return spans
}

// nextRune returns the offset just past the rune starting at pos.
func nextRune(text string, pos int) int {
	if pos >= len(text) {
		return len(text)
	}
	_, w := utf8.DecodeRuneInString(text[pos:])
	return pos + w
}

// firstSpace returns the first whitespace offset at or after pos, or len(text).
func firstSpace(text string, pos int) int {
	for pos < len(text) {
		r, w := utf8.DecodeRuneInString(text[pos:])
		if unicode.IsSpace(r) {
			return pos
		}
		pos += w
	}
	return len(text)
}

// firstNonSpace returns the first non-whitespace offset at or after pos, or len(text).
func firstNonSpace(text string, pos int) int {
	for pos < len(text) {
		r, w := utf8.DecodeRuneInString(text[pos:])
		if !unicode.IsSpace(r) {
			return pos
		}
		pos += w
	}
	return len(text)
}

func isAlphaNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Package features builds classifier contexts for sentence and token
// boundary candidates.
package features

import (
	"unicode"
	"unicode/utf8"

	segment "github.com/jamesainslie/go-segment"
)

const none = "<none>"

var (
	_ segment.ContextBuilder = Sentence{}
	_ segment.ContextBuilder = Token{}
)

// Sentence builds the context of a candidate sentence ending. Offset must
// point at the delimiter rune.
type Sentence struct{}

// NewSentence returns the default sentence context builder.
func NewSentence() Sentence { return Sentence{} }

// Context returns features describing the delimiter at offset, the text
// glued to it on either side, and the neighbouring words.
func (Sentence) Context(text string, offset int) []string {
	r, w := utf8.DecodeRuneInString(text[offset:])
	after := offset + w

	prefixStart := lastSpaceBefore(text, offset)
	suffixEnd := firstSpaceFrom(text, after)
	prefix := text[prefixStart:offset]
	suffix := text[after:suffixEnd]
	previous := wordBefore(text, prefixStart)
	next := wordAfter(text, suffixEnd)

	feats := make([]string, 0, 12)
	feats = append(feats, "x="+string(r))
	feats = appendWord(feats, "p", prefix)
	feats = appendWord(feats, "s", suffix)
	feats = appendWord(feats, "v", previous)
	feats = appendWord(feats, "n", next)
	if suffixEnd < len(text) {
		feats = append(feats, "ws")
	}
	if prefix != "" && utf8.RuneCountInString(prefix) == 1 {
		feats = append(feats, "p1char")
	}
	return feats
}

func appendWord(feats []string, key, word string) []string {
	if word == "" {
		return append(feats, key+"="+none)
	}
	feats = append(feats, key+"="+word)
	if r, _ := utf8.DecodeRuneInString(word); unicode.IsUpper(r) {
		feats = append(feats, key+"cap")
	}
	return feats
}

// lastSpaceBefore returns the offset just past the last whitespace before
// pos, or 0.
func lastSpaceBefore(text string, pos int) int {
	for pos > 0 {
		r, w := utf8.DecodeLastRuneInString(text[:pos])
		if unicode.IsSpace(r) {
			return pos
		}
		pos -= w
	}
	return 0
}

func firstSpaceFrom(text string, pos int) int {
	for pos < len(text) {
		r, w := utf8.DecodeRuneInString(text[pos:])
		if unicode.IsSpace(r) {
			return pos
		}
		pos += w
	}
	return len(text)
}

// wordBefore returns the whitespace-delimited word ending before the
// whitespace that precedes pos.
func wordBefore(text string, pos int) string {
	end := pos
	for end > 0 {
		r, w := utf8.DecodeLastRuneInString(text[:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= w
	}
	return text[lastSpaceBefore(text, end):end]
}

// wordAfter returns the whitespace-delimited word following the whitespace
// at pos.
func wordAfter(text string, pos int) string {
	start := pos
	for start < len(text) {
		r, w := utf8.DecodeRuneInString(text[start:])
		if !unicode.IsSpace(r) {
			break
		}
		start += w
	}
	return text[start:firstSpaceFrom(text, start)]
}

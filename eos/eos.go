// Package eos finds candidate sentence endings and vetoes breaks after
// known abbreviations.
package eos

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	segment "github.com/jamesainslie/go-segment"
)

// DefaultChars are the runes treated as possible sentence endings.
const DefaultChars = ".!?"

// DefaultAbbreviations are common abbreviations that do not end sentences.
var DefaultAbbreviations = []string{
	"Mr", "Mrs", "Ms", "Dr", "Prof", "Sr", "Jr", "St", "vs", "etc",
	"i.e", "e.g", "U.S", "U.K",
}

var _ segment.BoundaryScanner = (*Scanner)(nil)

// Scanner reports the offset of every end-of-sentence rune.
type Scanner struct {
	chars string
}

// NewScanner returns a Scanner over chars (default: DefaultChars).
func NewScanner(chars ...rune) *Scanner {
	if len(chars) == 0 {
		return &Scanner{chars: DefaultChars}
	}
	return &Scanner{chars: string(chars)}
}

// Positions returns the ascending offsets of end-of-sentence runes in text.
func (s *Scanner) Positions(text string) []int {
	var out []int
	for i, r := range text {
		if strings.ContainsRune(s.chars, r) {
			out = append(out, i)
		}
	}
	return out
}

// AbbreviationFilter returns a break filter that rejects breaks whose
// preceding word, compared under Unicode case folding, is one of abbrevs
// (default: DefaultAbbreviations). The filter is safe for concurrent use.
func AbbreviationFilter(abbrevs ...string) segment.BreakFilter {
	if len(abbrevs) == 0 {
		abbrevs = DefaultAbbreviations
	}
	known := make(map[string]struct{}, len(abbrevs))
	for _, a := range abbrevs {
		known[fold(strings.TrimSuffix(a, "."))] = struct{}{}
	}

	return func(text string, from, candidate int) bool {
		start := candidate
		for start > from {
			r, w := utf8.DecodeLastRuneInString(text[:start])
			if unicode.IsSpace(r) {
				break
			}
			start -= w
		}
		word := strings.TrimLeftFunc(text[start:candidate], func(r rune) bool {
			return unicode.IsPunct(r) && r != '.'
		})
		_, abbrev := known[fold(word)]
		return !abbrev
	}
}

// fold builds a Caser per call since a Caser must not be shared between
// goroutines.
func fold(s string) string {
	return cases.Fold().String(s)
}

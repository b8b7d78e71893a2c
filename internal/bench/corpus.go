// Package bench scores sentence detectors against a transcript corpus.
package bench

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jamesainslie/go-segment/eos"
)

// ErrMissingSource is returned for transcripts without a Source header.
var ErrMissingSource = errors.New("missing Source in header")

// Header holds the metadata comments at the top of a transcript.
type Header struct {
	Source  string
	Speaker string
	Title   string
}

// ParseHeader splits a transcript into its "# Key: value" header and body.
// Blank lines inside the header are skipped. The body is trimmed.
func ParseHeader(text string) (Header, string, error) {
	var h Header
	rest := text
	for rest != "" {
		line, tail, _ := strings.Cut(rest, "\n")
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			break
		}
		rest = tail

		key, value, ok := strings.Cut(strings.TrimLeft(trimmed, "# "), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "Source":
			h.Source = value
		case "Speaker":
			h.Speaker = value
		case "Title":
			h.Title = value
		}
	}

	if h.Source == "" {
		return Header{}, "", ErrMissingSource
	}
	return h, strings.TrimSpace(rest), nil
}

// Sentence is one gold sentence with byte offsets into the talk body.
type Sentence struct {
	Text  string
	Start int
	End   int
}

var (
	goldScanner = eos.NewScanner()
	goldFilter  = eos.AbbreviationFilter()
)

// ParseSentences derives gold sentences from text by rule: a sentence ends
// at an end-of-sentence rune followed by a blank or the end of text, unless
// the word before it is a known abbreviation.
func ParseSentences(text string) []Sentence {
	if text == "" {
		return nil
	}

	var sentences []Sentence
	start := 0
	for _, c := range goldScanner.Positions(text) {
		end := c + 1
		if end < len(text) && !isBlank(text[end]) {
			continue
		}
		if !goldFilter(text, start, c) {
			continue
		}

		sentences = append(sentences, Sentence{
			Text:  strings.TrimSpace(text[start:end]),
			Start: start,
			End:   end,
		})
		start = end
		for start < len(text) && isBlank(text[start]) {
			start++
		}
	}

	if remaining := strings.TrimSpace(text[start:]); remaining != "" {
		sentences = append(sentences, Sentence{
			Text:  remaining,
			Start: start,
			End:   len(text),
		})
	}
	return sentences
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}

// Talk is a loaded transcript with its gold sentences.
type Talk struct {
	ID        string // file name without extension
	Source    string
	Speaker   string
	Title     string
	RawText   string
	Sentences []Sentence
}

// Boundaries returns the gold start offset of every sentence after the
// first, the form a detector reports.
func (t *Talk) Boundaries() []int {
	if len(t.Sentences) < 2 {
		return nil
	}
	out := make([]int, 0, len(t.Sentences)-1)
	for _, s := range t.Sentences[1:] {
		out = append(out, s.Start)
	}
	return out
}

// LoadTalk reads and parses one transcript file.
func LoadTalk(path string) (*Talk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	header, body, err := ParseHeader(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	base := filepath.Base(path)
	return &Talk{
		ID:        strings.TrimSuffix(base, filepath.Ext(base)),
		Source:    header.Source,
		Speaker:   header.Speaker,
		Title:     header.Title,
		RawText:   body,
		Sentences: ParseSentences(body),
	}, nil
}

// LoadCorpus loads every .txt transcript in dir.
func LoadCorpus(dir string) ([]*Talk, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("glob corpus: %w", err)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	talks := make([]*Talk, 0, len(paths))
	for _, path := range paths {
		talk, err := LoadTalk(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
		}
		talks = append(talks, talk)
	}
	return talks, nil
}

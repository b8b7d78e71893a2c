package features

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// boundary stands in for a character position outside the token.
const boundary = "bok"

// Token builds the context of a candidate split inside a token. Offset is
// relative to the token and must be a rune start in (0, len(token)).
type Token struct{}

// NewToken returns the default token context builder.
func NewToken() Token { return Token{} }

// Context returns features for splitting token at offset: the two halves,
// the two runes on either side and their character classes.
func (Token) Context(token string, offset int) []string {
	p1, w1 := utf8.DecodeLastRuneInString(token[:offset])
	f1, wf := utf8.DecodeRuneInString(token[offset:])

	feats := make([]string, 0, 16)
	feats = append(feats,
		"p="+token[:offset],
		"s="+token[offset:],
	)
	feats = appendChar(feats, "p1", p1)
	if offset-w1 > 0 {
		p2, _ := utf8.DecodeLastRuneInString(token[:offset-w1])
		feats = appendChar(feats, "p2", p2)
	} else {
		feats = append(feats, "p2="+boundary)
	}
	feats = appendChar(feats, "f1", f1)
	if offset+wf < len(token) {
		f2, _ := utf8.DecodeRuneInString(token[offset+wf:])
		feats = appendChar(feats, "f2", f2)
	} else {
		feats = append(feats, "f2="+boundary)
	}
	if strings.HasPrefix(token, "&") && strings.HasSuffix(token, ";") {
		feats = append(feats, "cc")
	}
	return append(feats, "p1f1="+string(p1)+string(f1))
}

func appendChar(feats []string, key string, r rune) []string {
	feats = append(feats, key+"="+string(r))
	switch {
	case unicode.IsLetter(r):
		feats = append(feats, key+"_alpha")
		if unicode.IsUpper(r) {
			feats = append(feats, key+"_caps")
		}
	case unicode.IsDigit(r):
		feats = append(feats, key+"_num")
	case unicode.IsSpace(r):
		feats = append(feats, key+"_ws")
	case strings.ContainsRune(".?!", r):
		feats = append(feats, key+"_eos")
	case strings.ContainsRune("`\"'", r):
		feats = append(feats, key+"_quote")
	case strings.ContainsRune("[{(", r):
		feats = append(feats, key+"_lp")
	case strings.ContainsRune("]})", r):
		feats = append(feats, key+"_rp")
	}
	return feats
}

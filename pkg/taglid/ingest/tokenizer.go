package ingest

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/cognicore/taglid/pkg/taglid/lexicon"
)

// Token is one word of the input. Surface keeps the original casing and
// Norm is the lookup key.
type Token struct {
	Surface string
	Norm    string
}

// Tokenizer splits text into word tokens.
type Tokenizer struct{}

// NewTokenizer creates a tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// numeric tokens keep their inner separators ("1,000.50", "Php78.90").
var numericToken = regexp.MustCompile(`(?i)^(?:[$₱]|php|p)?[-+]?\d[\d,]*(?:\.\d+)?%?$`)

// Tokenize splits text on whitespace and cleans each chunk. Chunks without
// a letter or digit are dropped, so punctuation never becomes a token.
func (t *Tokenizer) Tokenize(text string) []Token {
	var tokens []Token
	for _, chunk := range strings.Fields(text) {
		word := t.cleanToken(chunk)
		if word == "" || !hasWordRune(word) {
			continue
		}
		tokens = append(tokens, Token{Surface: word, Norm: lexicon.Normalize(word)})
	}
	return tokens
}

// cleanToken drops characters that cannot be part of a word, removes
// sentence punctuation from non-numerals and trims stray hyphens and
// apostrophes.
func (t *Tokenizer) cleanToken(chunk string) string {
	var b strings.Builder
	for _, r := range chunk {
		if keepRune(r) {
			b.WriteRune(r)
		}
	}
	token := strings.TrimRight(b.String(), ".,")

	if !numericToken.MatchString(token) {
		token = strings.NewReplacer(".", "", ",", "").Replace(token)
	}

	token = strings.Trim(token, "-'’‘")
	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}
	return token
}

func keepRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) {
		return true
	}
	switch r {
	case '$', '₱', '-', '\'', '’', '‘', '.', ',', '%':
		return true
	}
	return false
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

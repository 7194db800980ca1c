// Package morph reduces inflected English and Tagalog words to candidate
// base forms. Reducers are pure: the same word always yields the same
// ordered list of bases.
package morph

import (
	"strings"
	"unicode"

	"github.com/cognicore/taglid/pkg/taglid/lexicon"
)

// Reducer produces base-form candidates for a word in one language.
// Results are ordered from least to most reduced, de-duplicated and never
// contain the input itself.
type Reducer interface {
	Reduce(word string, lang lexicon.Language) []string
}

// Analyzer dispatches to the English or Tagalog reducer.
type Analyzer struct {
	english englishReducer
	tagalog tagalogReducer
}

// New returns an analyzer for both languages.
func New() *Analyzer {
	return &Analyzer{}
}

// Reduce implements Reducer. Hyphenated words are left alone; their
// segments are reduced separately by the caller.
func (a *Analyzer) Reduce(word string, lang lexicon.Language) []string {
	word = lexicon.Normalize(word)
	if !reducible(word) {
		return nil
	}
	var bases []string
	switch lang {
	case lexicon.English:
		bases = a.english.reduce(word)
	case lexicon.Tagalog:
		bases = a.tagalog.reduce(word)
	}
	return dedupe(word, bases)
}

func reducible(word string) bool {
	if len(word) < 3 {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// dedupe keeps the first occurrence of each base and drops the input,
// empty strings and single letters.
func dedupe(word string, bases []string) []string {
	if len(bases) == 0 {
		return nil
	}
	seen := map[string]struct{}{word: {}}
	out := make([]string, 0, len(bases))
	for _, b := range bases {
		if len(b) < 2 {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isVowel(b byte) bool {
	return strings.IndexByte("aeiou", b) >= 0
}

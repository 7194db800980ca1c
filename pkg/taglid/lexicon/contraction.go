package lexicon

import (
	"strings"
	"unicode"
)

// clitic maps a contracted suffix to the word it stands for.
type clitic struct {
	suffix string
	word   string
}

// Longer suffixes first so "n't" wins over "'t".
var cliticRules = []clitic{
	{"n't", "not"},
	{"'re", "are"},
	{"'ve", "have"},
	{"'ll", "will"},
	{"'kin", "akin"},
	{"'tin", "atin"},
	{"'ko", "ko"},
	{"'s", "is"},
	{"'m", "am"},
	{"'d", "would"},
	{"'t", "at"},
	{"'y", "ay"},
}

// expandClitic splits a regular contraction such as "ako'y" or "isn't"
// into its base and the expanded clitic. The base must be all letters.
func expandClitic(word string) ([]string, bool) {
	for _, c := range cliticRules {
		if !strings.HasSuffix(word, c.suffix) {
			continue
		}
		base := strings.TrimSuffix(word, c.suffix)
		if base == "" || !isLetters(base) {
			return nil, false
		}
		return []string{base, c.word}, true
	}
	return nil, false
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Package spell suggests dictionary words for misspelled tokens.
package spell

import (
	"sort"

	"github.com/sajari/fuzzy"

	"github.com/cognicore/taglid/pkg/taglid/lexicon"
)

// DefaultMaxEdits is the edit budget used when none is configured.
const DefaultMaxEdits = 2

// Corrector returns the best dictionary word within maxEdits of word.
type Corrector interface {
	Suggest(word string, maxEdits int) (string, bool)
}

// FuzzyCorrector takes the raw candidates of a sajari/fuzzy model trained
// on the dictionary words and ranks them deterministically by
// Damerau-Levenshtein distance, then combined frequency, then spelling.
type FuzzyCorrector struct {
	model *fuzzy.Model
	res   *lexicon.Resources
	depth int
}

// NewFuzzyCorrector trains a model on every dictionary word of res.
// depth bounds the largest edit budget Suggest will honour.
func NewFuzzyCorrector(res *lexicon.Resources, depth int) *FuzzyCorrector {
	if depth <= 0 {
		depth = DefaultMaxEdits
	}
	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(depth)
	model.SetUseAutocomplete(false)
	for _, w := range res.DictionaryWords() {
		count := res.CombinedFrequency(w)
		if count < 1 {
			count = 1
		}
		model.SetCount(w, count, true)
	}
	return &FuzzyCorrector{model: model, res: res, depth: depth}
}

type candidate struct {
	word string
	dist int
	freq int
}

// Suggest implements Corrector. Words already in a dictionary and budgets
// of zero or less yield no suggestion.
func (c *FuzzyCorrector) Suggest(word string, maxEdits int) (string, bool) {
	if maxEdits <= 0 {
		return "", false
	}
	if maxEdits > c.depth {
		maxEdits = c.depth
	}
	key := lexicon.Normalize(word)
	if key == "" {
		return "", false
	}

	var cands []candidate
	for s := range c.model.Potentials(key, true) {
		if !c.res.InDictionary(lexicon.English, s) && !c.res.InDictionary(lexicon.Tagalog, s) {
			continue
		}
		d := Distance(key, s)
		if d == 0 || d > maxEdits {
			continue
		}
		cands = append(cands, candidate{word: s, dist: d, freq: c.res.CombinedFrequency(s)})
	}
	if len(cands) == 0 {
		return "", false
	}
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.dist != b.dist {
			return a.dist < b.dist
		}
		if a.freq != b.freq {
			return a.freq > b.freq
		}
		return a.word < b.word
	})
	return cands[0].word, true
}

// Distance is the optimal-string-alignment Damerau-Levenshtein distance
// between a and b, counted in runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			x := prev[j] + 1
			if y := curr[j-1] + 1; y < x {
				x = y
			}
			if z := prev[j-1] + cost; z < x {
				x = z
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if t := prev2[j-2] + 1; t < x {
					x = t
				}
			}
			curr[j] = x
		}
		copy(prev2, prev)
		copy(prev, curr)
	}
	return prev[lb]
}

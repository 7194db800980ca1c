package lexicon

import (
	"sort"
	"strings"
	"unicode"

	"github.com/cognicore/taglid/pkg/taglid/stoplist"
)

// Resources is the read-only bundle of lexical tables consulted by the
// classifier:
// - Dictionaries: curated word sets per language
// - Frequencies: corpus counts per language (word -> count)
// - Named entities and interjections: language-neutral word lists
// - Abbreviations and contractions: token -> expansion words
// - Slang: token -> canonical word, tagged with its language
// - Exceptions: tokens never sent to spelling correction
//
// All keys are stored in Normalize form and every lookup normalizes its
// argument, so callers may pass surface forms. A Resources value is never
// mutated after Build and is safe to share between goroutines.
type Resources struct {
	dicts         [len(Languages)]map[string]struct{}
	freqs         [len(Languages)]map[string]int
	entities      map[string]struct{}
	interjections map[string]struct{}
	abbreviations map[string][]string
	contractions  map[string][]string
	slang         map[string]SlangEntry
	exceptions    *stoplist.Manager
}

// SlangEntry is the target of a slang mapping. Canonical may be empty when
// the resource only records the slang word's language.
type SlangEntry struct {
	Canonical string
	Lang      Language
}

// Stats holds the size of every table in a bundle.
type Stats struct {
	EnglishWords  int
	TagalogWords  int
	EnglishFreq   int
	TagalogFreq   int
	NamedEntities int
	Interjections int
	Abbreviations int
	Contractions  int
	Slang         int
	Exceptions    int
}

func newResources() *Resources {
	r := &Resources{
		entities:      make(map[string]struct{}),
		interjections: make(map[string]struct{}),
		abbreviations: make(map[string][]string),
		contractions:  make(map[string][]string),
		slang:         make(map[string]SlangEntry),
		exceptions:    stoplist.NewManager(nil),
	}
	for _, lang := range Languages {
		r.dicts[lang] = make(map[string]struct{})
		r.freqs[lang] = make(map[string]int)
	}
	return r
}

// InDictionary reports whether word is in the curated dictionary of lang.
func (r *Resources) InDictionary(lang Language, word string) bool {
	_, ok := r.dicts[lang][Normalize(word)]
	return ok
}

// Frequency returns the corpus count of word in lang.
func (r *Resources) Frequency(lang Language, word string) (int, bool) {
	n, ok := r.freqs[lang][Normalize(word)]
	return n, ok
}

// IsNamedEntity reports whether word is a listed proper noun or brand.
func (r *Resources) IsNamedEntity(word string) bool {
	_, ok := r.entities[Normalize(word)]
	return ok
}

// IsInterjection reports whether word is a universal interjection.
func (r *Resources) IsInterjection(word string) bool {
	_, ok := r.interjections[Normalize(word)]
	return ok
}

// ExpandAbbreviation returns the full form of an initialism or acronym.
func (r *Resources) ExpandAbbreviation(word string) ([]string, bool) {
	exp, ok := r.abbreviations[Normalize(word)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), exp...), true
}

// ExpandContraction returns the words a contraction stands for. Listed
// contractions take precedence over the regular clitic rules.
func (r *Resources) ExpandContraction(word string) ([]string, bool) {
	key := Normalize(word)
	if exp, ok := r.contractions[key]; ok {
		return append([]string(nil), exp...), true
	}
	return expandClitic(key)
}

// Slang returns the slang mapping for word.
func (r *Resources) Slang(word string) (SlangEntry, bool) {
	e, ok := r.slang[Normalize(word)]
	return e, ok
}

// IsException reports whether word must not be spell-corrected.
func (r *Resources) IsException(word string) bool {
	return r.exceptions.IsStop(Normalize(word))
}

// DictionaryWords returns the sorted union of both dictionaries.
func (r *Resources) DictionaryWords() []string {
	seen := make(map[string]struct{}, len(r.dicts[English])+len(r.dicts[Tagalog]))
	for _, lang := range Languages {
		for w := range r.dicts[lang] {
			seen[w] = struct{}{}
		}
	}
	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// CombinedFrequency is the English plus Tagalog count of word.
func (r *Resources) CombinedFrequency(word string) int {
	key := Normalize(word)
	return r.freqs[English][key] + r.freqs[Tagalog][key]
}

// Stats returns statistics about the bundle contents.
func (r *Resources) Stats() Stats {
	return Stats{
		EnglishWords:  len(r.dicts[English]),
		TagalogWords:  len(r.dicts[Tagalog]),
		EnglishFreq:   len(r.freqs[English]),
		TagalogFreq:   len(r.freqs[Tagalog]),
		NamedEntities: len(r.entities),
		Interjections: len(r.interjections),
		Abbreviations: len(r.abbreviations),
		Contractions:  len(r.contractions),
		Slang:         len(r.slang),
		Exceptions:    r.exceptions.Len(),
	}
}

// Builder accumulates tables and freezes them into a Resources bundle.
// A Builder must not be used after Build.
type Builder struct {
	res *Resources
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{res: newResources()}
}

// AddWords adds dictionary words for lang.
func (b *Builder) AddWords(lang Language, words ...string) *Builder {
	for _, w := range words {
		if key := Normalize(w); key != "" {
			b.res.dicts[lang][key] = struct{}{}
		}
	}
	return b
}

// AddFrequency adds count to the frequency of word in lang. Keys that
// collide after normalization accumulate.
func (b *Builder) AddFrequency(lang Language, word string, count int) *Builder {
	if key := Normalize(word); key != "" && count >= 0 {
		b.res.freqs[lang][key] += count
	}
	return b
}

// AddNamedEntities adds entries to the named-entity list.
func (b *Builder) AddNamedEntities(words ...string) *Builder {
	addSet(b.res.entities, words)
	return b
}

// AddInterjections adds entries to the interjection list. Multi-word
// entries are skipped since no single token can match them.
func (b *Builder) AddInterjections(words ...string) *Builder {
	addSet(b.res.interjections, words)
	return b
}

// AddAbbreviation maps an abbreviation to its whitespace-separated expansion.
func (b *Builder) AddAbbreviation(abbr, expansion string) *Builder {
	addExpansion(b.res.abbreviations, abbr, expansion)
	return b
}

// AddContraction maps a contraction to its whitespace-separated expansion.
func (b *Builder) AddContraction(contraction, expansion string) *Builder {
	addExpansion(b.res.contractions, contraction, expansion)
	return b
}

// AddSlang maps a slang word of lang to its canonical form (may be empty).
func (b *Builder) AddSlang(lang Language, slang, canonical string) *Builder {
	if key := Normalize(slang); key != "" {
		b.res.slang[key] = SlangEntry{Canonical: Normalize(canonical), Lang: lang}
	}
	return b
}

// AddExceptions adds tokens that must never be spell-corrected.
func (b *Builder) AddExceptions(source string, words ...string) *Builder {
	for _, w := range words {
		if key := Normalize(w); key != "" {
			b.res.exceptions.Add(key, stoplist.Reason{Source: source})
		}
	}
	return b
}

// Build returns the frozen bundle.
func (b *Builder) Build() *Resources {
	res := b.res
	b.res = nil
	return res
}

func addSet(set map[string]struct{}, words []string) {
	for _, w := range words {
		if key := Normalize(w); key != "" && !strings.ContainsFunc(key, unicode.IsSpace) {
			set[key] = struct{}{}
		}
	}
}

func addExpansion(m map[string][]string, key, expansion string) {
	key = Normalize(key)
	words := strings.Fields(Normalize(expansion))
	if key == "" || len(words) == 0 {
		return
	}
	m[key] = words
}

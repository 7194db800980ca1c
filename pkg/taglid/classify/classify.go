// Package classify assigns English and Tagalog weights to single words by
// running them through an ordered list of lexical stages. The first stage
// that recognizes a word decides its weights and flag.
package classify

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/taglid/pkg/taglid/internalerr"
	"github.com/cognicore/taglid/pkg/taglid/lexicon"
	"github.com/cognicore/taglid/pkg/taglid/morph"
	"github.com/cognicore/taglid/pkg/taglid/spell"
)

// Defaults for the tunable stages.
const (
	DefaultMaxEdits            = spell.DefaultMaxEdits
	DefaultMaxDepth            = 3
	DefaultMinCorrectionLength = 3
)

// LabeledWord is the classification of one word.
type LabeledWord struct {
	Word       string  `json:"word" msgpack:"word"`
	Eng        float64 `json:"eng" msgpack:"eng"`
	Tgl        float64 `json:"tgl" msgpack:"tgl"`
	Flag       Flag    `json:"flag" msgpack:"flag"`
	Correction string  `json:"correction,omitempty" msgpack:"correction,omitempty"`
}

// Excluded reports whether the word carries no language weight.
func (w LabeledWord) Excluded() bool { return w.Flag.Excluded() }

// Classifier runs the stage pipeline against a resource bundle.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	res                 *lexicon.Resources
	reducer             morph.Reducer
	corrector           spell.Corrector
	maxEdits            int
	maxDepth            int
	minCorrectionLength int
	capitalizedEntities bool
	log                 *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithReducer sets the morphology reducer used by the STEM stage.
// A nil reducer disables STEM.
func WithReducer(r morph.Reducer) Option {
	return func(c *Classifier) { c.reducer = r }
}

// WithCorrector sets the spelling corrector. A nil corrector disables CORR.
func WithCorrector(sc spell.Corrector) Option {
	return func(c *Classifier) { c.corrector = sc }
}

// WithMaxEdits sets the edit budget passed to the corrector.
func WithMaxEdits(n int) Option {
	return func(c *Classifier) { c.maxEdits = n }
}

// WithMaxDepth bounds recursion through ABBR, SLANG, INTW and CORR.
func WithMaxDepth(n int) Option {
	return func(c *Classifier) {
		if n >= 0 {
			c.maxDepth = n
		}
	}
}

// WithMinCorrectionLength sets the shortest word sent to the corrector.
func WithMinCorrectionLength(n int) Option {
	return func(c *Classifier) { c.minCorrectionLength = n }
}

// WithCapitalizedEntities treats capitalized words found in no dictionary
// as named entities.
func WithCapitalizedEntities(on bool) Option {
	return func(c *Classifier) { c.capitalizedEntities = on }
}

// WithLogger sets the logger used for stage traces.
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a classifier over res. Without options it uses the default
// morphology analyzer and no spelling corrector.
func New(res *lexicon.Resources, opts ...Option) *Classifier {
	c := &Classifier{
		res:                 res,
		reducer:             morph.New(),
		maxEdits:            DefaultMaxEdits,
		maxDepth:            DefaultMaxDepth,
		minCorrectionLength: DefaultMinCorrectionLength,
		log:                 slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resources returns the bundle the classifier reads.
func (c *Classifier) Resources() *lexicon.Resources { return c.res }

// Classify labels a single word. The returned Word is always the surface
// form passed in. Blank input is rejected with internalerr.ErrInvalidInput.
func (c *Classifier) Classify(word string) (LabeledWord, error) {
	if strings.TrimSpace(word) == "" {
		return LabeledWord{}, fmt.Errorf("%w: empty word", internalerr.ErrInvalidInput)
	}
	if !utf8.ValidString(word) {
		return LabeledWord{}, fmt.Errorf("%w: word is not valid UTF-8", internalerr.ErrInvalidInput)
	}
	lw := c.classify(word, 0, true)
	lw.Word = word
	c.log.Debug("classified",
		slog.String("word", word),
		slog.String("flag", lw.Flag.String()),
		slog.Float64("eng", lw.Eng),
		slog.Float64("tgl", lw.Tgl),
	)
	return lw, nil
}

// classify runs the stages on surface. With full unset only the lexical
// stages (NUM through FREQ) run, as for intraword segments.
func (c *Classifier) classify(surface string, depth int, full bool) LabeledWord {
	if depth > c.maxDepth {
		return unknown()
	}
	norm := lexicon.Normalize(surface)
	if norm == "" {
		return unknown()
	}

	stages := []func(surface, norm string, depth int) (LabeledWord, bool){
		c.numeral,
		c.namedEntity,
		c.interjection,
		c.dictionary,
		c.abbreviation,
		c.slang,
		c.stem,
		c.frequency,
	}
	if full {
		stages = append(stages, c.intraword, c.correction)
	}
	for _, stage := range stages {
		if lw, ok := stage(surface, norm, depth); ok {
			return lw
		}
	}
	return unknown()
}

var numeralPattern = regexp.MustCompile(`^(?:[$₱]|php|p)?[-+]?(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?%?$`)

func (c *Classifier) numeral(_, norm string, _ int) (LabeledWord, bool) {
	if numeralPattern.MatchString(norm) {
		return LabeledWord{Flag: FlagNumeral}, true
	}
	return LabeledWord{}, false
}

func (c *Classifier) namedEntity(surface, norm string, _ int) (LabeledWord, bool) {
	if c.res.IsNamedEntity(norm) {
		return LabeledWord{Flag: FlagNamedEntity}, true
	}
	if c.capitalizedEntities && startsUpper(surface) &&
		!c.res.InDictionary(lexicon.English, norm) && !c.res.InDictionary(lexicon.Tagalog, norm) {
		return LabeledWord{Flag: FlagNamedEntity}, true
	}
	return LabeledWord{}, false
}

func (c *Classifier) interjection(_, norm string, _ int) (LabeledWord, bool) {
	if c.res.IsInterjection(norm) {
		return LabeledWord{Eng: 0.5, Tgl: 0.5, Flag: FlagInterjection}, true
	}
	return LabeledWord{}, false
}

func (c *Classifier) dictionary(_, norm string, _ int) (LabeledWord, bool) {
	eng := c.res.InDictionary(lexicon.English, norm)
	tgl := c.res.InDictionary(lexicon.Tagalog, norm)
	return fromLanguages(eng, tgl, FlagDictionary)
}

func (c *Classifier) abbreviation(_, norm string, depth int) (LabeledWord, bool) {
	words, ok := c.res.ExpandAbbreviation(norm)
	if !ok {
		words, ok = c.res.ExpandContraction(norm)
	}
	if !ok {
		return LabeledWord{}, false
	}
	var sum float64
	var n int
	for _, w := range words {
		lw := c.classify(w, depth+1, true)
		if lw.Excluded() {
			continue
		}
		sum += lw.Eng
		n++
	}
	if n == 0 {
		return LabeledWord{}, false
	}
	return fromMean(sum/float64(n), FlagAbbreviation), true
}

func (c *Classifier) slang(_, norm string, depth int) (LabeledWord, bool) {
	entry, ok := c.res.Slang(norm)
	if !ok {
		return LabeledWord{}, false
	}
	if entry.Canonical != "" {
		if lw := c.classify(entry.Canonical, depth+1, true); !lw.Excluded() {
			return LabeledWord{Eng: lw.Eng, Tgl: lw.Tgl, Flag: FlagSlang}, true
		}
	}
	if entry.Lang == lexicon.English {
		return LabeledWord{Eng: 1, Flag: FlagSlang}, true
	}
	return LabeledWord{Tgl: 1, Flag: FlagSlang}, true
}

// stem tries the English rules, then the Tagalog rules; the first base
// found in a dictionary decides. A base known only to the other language
// is a root carrying foreign affixes (nagwowork, shinashare) and scores as
// intraword mixing.
func (c *Classifier) stem(_, norm string, _ int) (LabeledWord, bool) {
	if c.reducer == nil {
		return LabeledWord{}, false
	}
	for _, lang := range lexicon.Languages {
		for _, base := range c.reducer.Reduce(norm, lang) {
			own := c.res.InDictionary(lang, base)
			other := c.res.InDictionary(lang.Other(), base)
			switch {
			case own && other:
				return LabeledWord{Eng: 0.5, Tgl: 0.5, Flag: FlagStem}, true
			case own:
				return fromLanguages(lang == lexicon.English, lang == lexicon.Tagalog, FlagStem)
			case other:
				return LabeledWord{Eng: 0.5, Tgl: 0.5, Flag: FlagIntraword}, true
			}
		}
	}
	return LabeledWord{}, false
}

func (c *Classifier) frequency(_, norm string, _ int) (LabeledWord, bool) {
	engN, inEng := c.res.Frequency(lexicon.English, norm)
	tglN, inTgl := c.res.Frequency(lexicon.Tagalog, norm)
	switch {
	case !inEng && !inTgl:
		return LabeledWord{}, false
	case engN > tglN:
		return LabeledWord{Eng: 1, Flag: FlagFrequency}, true
	case tglN > engN:
		return LabeledWord{Tgl: 1, Flag: FlagFrequency}, true
	default:
		return LabeledWord{Eng: 0.5, Tgl: 0.5, Flag: FlagFrequency}, true
	}
}

// intraword averages the lexical classification of each hyphen-separated
// segment. Every resolved segment counts once regardless of its length.
func (c *Classifier) intraword(_, norm string, depth int) (LabeledWord, bool) {
	if !strings.Contains(norm, "-") {
		return LabeledWord{}, false
	}
	var segments []string
	for _, s := range strings.Split(norm, "-") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return LabeledWord{}, false
	}
	var sum float64
	var n int
	for _, s := range segments {
		lw := c.classify(s, depth+1, false)
		if lw.Excluded() {
			continue
		}
		sum += lw.Eng
		n++
	}
	if n == 0 {
		return LabeledWord{}, false
	}
	return fromMean(sum/float64(n), FlagIntraword), true
}

func (c *Classifier) correction(_, norm string, depth int) (LabeledWord, bool) {
	if c.corrector == nil || c.maxEdits <= 0 {
		return LabeledWord{}, false
	}
	if utf8.RuneCountInString(norm) < c.minCorrectionLength || c.res.IsException(norm) {
		return LabeledWord{}, false
	}
	suggestion, ok := c.corrector.Suggest(norm, c.maxEdits)
	if !ok || suggestion == norm {
		return LabeledWord{}, false
	}
	lw := c.classify(suggestion, depth+1, true)
	if lw.Excluded() {
		return LabeledWord{}, false
	}
	return LabeledWord{Eng: lw.Eng, Tgl: lw.Tgl, Flag: FlagCorrection, Correction: suggestion}, true
}

func fromLanguages(eng, tgl bool, flag Flag) (LabeledWord, bool) {
	switch {
	case eng && tgl:
		return LabeledWord{Eng: 0.5, Tgl: 0.5, Flag: flag}, true
	case eng:
		return LabeledWord{Eng: 1, Flag: flag}, true
	case tgl:
		return LabeledWord{Tgl: 1, Flag: flag}, true
	}
	return LabeledWord{}, false
}

// fromMean keeps eng+tgl exactly 1.
func fromMean(eng float64, flag Flag) LabeledWord {
	return LabeledWord{Eng: eng, Tgl: 1 - eng, Flag: flag}
}

func unknown() LabeledWord {
	return LabeledWord{Flag: FlagUnknown}
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

package classify

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/taglid/pkg/taglid/internalerr"
	"github.com/cognicore/taglid/pkg/taglid/lexicon"
	"github.com/cognicore/taglid/pkg/taglid/spell"
)

func testResources() *lexicon.Resources {
	return lexicon.NewBuilder().
		AddWords(lexicon.English, "hello", "world", "love", "do", "not", "laugh", "out", "loud",
			"best", "work", "ask", "mistake", "share", "thank", "you", "na").
		AddWords(lexicon.Tagalog, "mundo", "po", "mag", "na", "sa", "akin", "kain", "kaibigan",
			"salamat", "ako", "ay").
		AddFrequency(lexicon.English, "gonna", 120).
		AddFrequency(lexicon.English, "ok", 800).
		AddFrequency(lexicon.Tagalog, "ok", 800).
		AddFrequency(lexicon.English, "bata", 2).
		AddFrequency(lexicon.Tagalog, "bata", 40).
		AddFrequency(lexicon.Tagalog, "lang", 7000).
		AddNamedEntities("Manila", "Jollibee").
		AddInterjections("haha", "wow").
		AddAbbreviation("lol", "laugh out loud").
		AddAbbreviation("bff", "best kaibigan").
		AddAbbreviation("xyz", "qqq zzz").
		AddAbbreviation("loop", "loop").
		AddSlang(lexicon.English, "luv", "love").
		AddSlang(lexicon.Tagalog, "lodi", "idol").
		AddSlang(lexicon.Tagalog, "chibog", "").
		AddSlang(lexicon.Tagalog, "ikot", "ikot").
		AddExceptions("test", "xoxo").
		Build()
}

type stubReducer map[string][]string

func (s stubReducer) Reduce(word string, _ lexicon.Language) []string { return s[word] }

type stubCorrector struct {
	suggestions map[string]string
	calls       int
}

func (s *stubCorrector) Suggest(word string, maxEdits int) (string, bool) {
	s.calls++
	if maxEdits <= 0 {
		return "", false
	}
	w, ok := s.suggestions[word]
	return w, ok
}

type want struct {
	eng, tgl float64
	flag     Flag
}

func assertLabel(t *testing.T, c *Classifier, word string, w want) LabeledWord {
	t.Helper()
	lw, err := c.Classify(word)
	require.NoError(t, err, "Classify(%q)", word)
	assert.Equal(t, w.flag, lw.Flag, "flag of %q", word)
	assert.InDelta(t, w.eng, lw.Eng, 1e-9, "eng of %q", word)
	assert.InDelta(t, w.tgl, lw.Tgl, 1e-9, "tgl of %q", word)
	assert.Equal(t, word, lw.Word, "surface of %q", word)
	return lw
}

func TestDictionary(t *testing.T) {
	c := New(testResources())
	assertLabel(t, c, "hello", want{1, 0, FlagDictionary})
	assertLabel(t, c, "mundo", want{0, 1, FlagDictionary})
	assertLabel(t, c, "na", want{0.5, 0.5, FlagDictionary})
	assertLabel(t, c, "HeLLo", want{1, 0, FlagDictionary})
}

func TestNumeral(t *testing.T) {
	c := New(testResources())
	for _, w := range []string{"2024", "1,000", "$20", "₱1,500.50", "Php78.90", "P579.00", "50%", "-3.5"} {
		assertLabel(t, c, w, want{0, 0, FlagNumeral})
	}
	lw, _ := c.Classify("1,00")
	assert.NotEqual(t, FlagNumeral, lw.Flag, "malformed thousands group")
}

func TestNamedEntity(t *testing.T) {
	c := New(testResources())
	assertLabel(t, c, "Manila", want{0, 0, FlagNamedEntity})
	assertLabel(t, c, "jollibee", want{0, 0, FlagNamedEntity})
	assertLabel(t, c, "Xavier", want{0, 0, FlagUnknown})

	c = New(testResources(), WithCapitalizedEntities(true))
	assertLabel(t, c, "Xavier", want{0, 0, FlagNamedEntity})
	assertLabel(t, c, "Hello", want{1, 0, FlagDictionary})
	assertLabel(t, c, "xavier", want{0, 0, FlagUnknown})
}

func TestInterjection(t *testing.T) {
	c := New(testResources())
	assertLabel(t, c, "haha", want{0.5, 0.5, FlagInterjection})
	assertLabel(t, c, "WOW", want{0.5, 0.5, FlagInterjection})
}

func TestAbbreviation(t *testing.T) {
	c := New(testResources())
	assertLabel(t, c, "lol", want{1, 0, FlagAbbreviation})
	assertLabel(t, c, "bff", want{0.5, 0.5, FlagAbbreviation})
	assertLabel(t, c, "don't", want{1, 0, FlagAbbreviation})
	assertLabel(t, c, "sa’kin", want{0, 1, FlagAbbreviation})
	assertLabel(t, c, "ako'y", want{0, 1, FlagAbbreviation})
	assertLabel(t, c, "xyz", want{0, 0, FlagUnknown})
}

func TestSlang(t *testing.T) {
	c := New(testResources())
	assertLabel(t, c, "luv", want{1, 0, FlagSlang})
	assertLabel(t, c, "chibog", want{0, 1, FlagSlang})
	assertLabel(t, c, "lodi", want{0, 1, FlagSlang})
}

func TestCyclicDataTerminates(t *testing.T) {
	c := New(testResources())
	assertLabel(t, c, "ikot", want{0, 1, FlagSlang})
	assertLabel(t, c, "loop", want{0, 0, FlagUnknown})
}

func TestMaxDepth(t *testing.T) {
	c := New(testResources(), WithMaxDepth(0))
	assertLabel(t, c, "lol", want{0, 0, FlagUnknown})
	assertLabel(t, c, "hello", want{1, 0, FlagDictionary})
}

func TestStem(t *testing.T) {
	c := New(testResources())
	assertLabel(t, c, "kumain", want{0, 1, FlagStem})
	assertLabel(t, c, "working", want{1, 0, FlagStem})

	c = New(testResources(), WithReducer(stubReducer{"xbase": {"zzz", "na"}}))
	assertLabel(t, c, "xbase", want{0.5, 0.5, FlagStem})

	c = New(testResources(), WithReducer(nil))
	assertLabel(t, c, "nagwowork", want{0, 0, FlagUnknown})
}

func TestAffixedForeignRootIsMixed(t *testing.T) {
	c := New(testResources())
	// English roots under Tagalog affixes score like their hyphenated spelling.
	assertLabel(t, c, "nagwowork", want{0.5, 0.5, FlagIntraword})
	assertLabel(t, c, "shinashare", want{0.5, 0.5, FlagIntraword})
	assertLabel(t, c, "mag-work", want{0.5, 0.5, FlagIntraword})

	// Tagalog root found by the English rules.
	c = New(testResources(), WithReducer(stubReducer{"kaining": {"kain"}}))
	assertLabel(t, c, "kaining", want{0.5, 0.5, FlagIntraword})

	// The first reducer with a dictionary hit decides.
	c = New(testResources(), WithReducer(stubReducer{"worked": {"work", "kain"}}))
	assertLabel(t, c, "worked", want{1, 0, FlagStem})
}

func TestFrequency(t *testing.T) {
	c := New(testResources())
	assertLabel(t, c, "lang", want{0, 1, FlagFrequency})
	assertLabel(t, c, "gonna", want{1, 0, FlagFrequency})
	assertLabel(t, c, "ok", want{0.5, 0.5, FlagFrequency})
	assertLabel(t, c, "bata", want{0, 1, FlagFrequency})
}

func TestIntraword(t *testing.T) {
	c := New(testResources())
	assertLabel(t, c, "mag-aask", want{0.5, 0.5, FlagIntraword})
	assertLabel(t, c, "mag-world-po", want{1.0 / 3, 2.0 / 3, FlagIntraword})
	assertLabel(t, c, "mag-2024", want{0, 1, FlagIntraword})
	assertLabel(t, c, "qqq-zzz", want{0, 0, FlagUnknown})
}

func TestCorrection(t *testing.T) {
	sc := &stubCorrector{suggestions: map[string]string{
		"mistkae": "mistake",
		"xq":      "hello",
		"xoxo":    "hello",
		"salamt":  "salamat",
	}}
	c := New(testResources(), WithCorrector(sc))

	lw := assertLabel(t, c, "mistkae", want{1, 0, FlagCorrection})
	assert.Equal(t, "mistake", lw.Correction)

	lw = assertLabel(t, c, "Salamt", want{0, 1, FlagCorrection})
	assert.Equal(t, "salamat", lw.Correction)

	before := sc.calls
	assertLabel(t, c, "xq", want{0, 0, FlagUnknown})
	assertLabel(t, c, "xoxo", want{0, 0, FlagUnknown})
	assert.Equal(t, before, sc.calls, "short words and exceptions never reach the corrector")

	c = New(testResources(), WithCorrector(sc), WithMaxEdits(0))
	assertLabel(t, c, "mistkae", want{0, 0, FlagUnknown})
}

func TestCorrectionWithFuzzyModel(t *testing.T) {
	res := testResources()
	c := New(res, WithCorrector(spell.NewFuzzyCorrector(res, 2)))
	lw := assertLabel(t, c, "salamt", want{0, 1, FlagCorrection})
	assert.Equal(t, "salamat", lw.Correction)
	assertLabel(t, c, "qwxzvbn", want{0, 0, FlagUnknown})
}

func TestUnknown(t *testing.T) {
	c := New(testResources())
	lw := assertLabel(t, c, "qwxzv", want{0, 0, FlagUnknown})
	assert.Empty(t, lw.Correction)
}

func TestClassifyEmpty(t *testing.T) {
	c := New(testResources())
	for _, w := range []string{"", "   ", "\xff"} {
		_, err := c.Classify(w)
		if !errors.Is(err, internalerr.ErrInvalidInput) {
			t.Errorf("Classify(%q) error = %v, want ErrInvalidInput", w, err)
		}
	}
}

func TestWeightsSumToZeroOrOne(t *testing.T) {
	sc := &stubCorrector{suggestions: map[string]string{"mistkae": "mistake"}}
	c := New(testResources(), WithCorrector(sc))
	words := []string{
		"hello", "mundo", "na", "2024", "Manila", "haha", "lol", "bff", "don't", "luv",
		"lodi", "nagwowork", "lang", "ok", "mag-aask", "mag-world-po", "mistkae", "qwxzv",
	}
	for _, w := range words {
		lw, err := c.Classify(w)
		require.NoError(t, err)
		sum := lw.Eng + lw.Tgl
		if lw.Excluded() {
			assert.Zero(t, sum, "%q flagged %s must carry no weight", w, lw.Flag)
			continue
		}
		assert.True(t, math.Abs(sum-1) < 1e-9, "%q: eng+tgl = %v", w, sum)
		assert.True(t, lw.Flag == FlagCorrection || lw.Correction == "", "%q: correction only on CORR", w)
	}
}

func TestDeterministic(t *testing.T) {
	c := New(testResources())
	words := []string{"mag-aask", "lang", "po", "nagwowork", "bff"}
	first := make([]LabeledWord, len(words))
	for i, w := range words {
		first[i], _ = c.Classify(w)
	}
	for run := 0; run < 10; run++ {
		for i, w := range words {
			got, _ := c.Classify(w)
			assert.Equal(t, first[i], got)
		}
	}
}

func TestFlags(t *testing.T) {
	for _, f := range Flags {
		got, err := ParseFlag(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	if _, err := ParseFlag("BOGUS"); err == nil {
		t.Error("expected error for unknown flag")
	}
	excluded := map[Flag]bool{FlagNumeral: true, FlagNamedEntity: true, FlagUnknown: true}
	for _, f := range Flags {
		if f.Excluded() != excluded[f] {
			t.Errorf("%s.Excluded() = %v", f, f.Excluded())
		}
	}
}

package ingest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/taglid/pkg/taglid/classify"
	"github.com/cognicore/taglid/pkg/taglid/internalerr"
	"github.com/cognicore/taglid/pkg/taglid/lexicon"
)

func surfaces(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Surface
	}
	return out
}

func TestTokenizerBasic(t *testing.T) {
	tokenizer := NewTokenizer()
	tests := []struct {
		text string
		want []string
	}{
		{"hello, mundo", []string{"hello", "mundo"}},
		{"mag-aask lang po", []string{"mag-aask", "lang", "po"}},
		{"Kumain ka na ba?!", []string{"Kumain", "ka", "na", "ba"}},
		{"P579.00 lang, mura!", []string{"P579.00", "lang", "mura"}},
		{"1,000 pesos at 50%", []string{"1,000", "pesos", "at", "50%"}},
		{"U.S.A. ... -- !!!", []string{"USA"}},
		{"'di ba ako'y -hello-", []string{"di", "ba", "ako'y", "hello"}},
		{"(haha) :)", []string{"haha"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := surfaces(tokenizer.Tokenize(tt.text))
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestTokenizerNorm(t *testing.T) {
	tokens := NewTokenizer().Tokenize("HELLO Niño won’t")
	require.Len(t, tokens, 3)
	assert.Equal(t, "HELLO", tokens[0].Surface)
	assert.Equal(t, "hello", tokens[0].Norm)
	assert.Equal(t, "nino", tokens[1].Norm)
	assert.Equal(t, "won't", tokens[2].Norm)
}

func TestStripMarkup(t *testing.T) {
	got := StripMarkup(`<p>Hello <b>mundo</b></p><script>var x = 1;</script><style>p{}</style><div>po</div>`)
	assert.Equal(t, "Hello mundo po", got)
	assert.Equal(t, "plain text", StripMarkup("plain text"))
}

func testPipeline() *Pipeline {
	res := lexicon.NewBuilder().
		AddWords(lexicon.English, "hello", "ask").
		AddWords(lexicon.Tagalog, "mundo", "po", "mag").
		AddFrequency(lexicon.Tagalog, "lang", 7000).
		Build()
	return NewPipeline(NewTokenizer(), classify.New(res))
}

func TestProcessScenarios(t *testing.T) {
	p := testPipeline()

	got, err := p.Process("hello, mundo")
	require.NoError(t, err)
	assert.Equal(t, []classify.LabeledWord{
		{Word: "hello", Eng: 1, Tgl: 0, Flag: classify.FlagDictionary},
		{Word: "mundo", Eng: 0, Tgl: 1, Flag: classify.FlagDictionary},
	}, got)

	got, err = p.Process("mag-aask lang po")
	require.NoError(t, err)
	assert.Equal(t, []classify.LabeledWord{
		{Word: "mag-aask", Eng: 0.5, Tgl: 0.5, Flag: classify.FlagIntraword},
		{Word: "lang", Eng: 0, Tgl: 1, Flag: classify.FlagFrequency},
		{Word: "po", Eng: 0, Tgl: 1, Flag: classify.FlagDictionary},
	}, got)
}

func TestProcessEmpty(t *testing.T) {
	p := testPipeline()
	for _, text := range []string{"", "   \n\t"} {
		_, err := p.Process(text)
		assert.True(t, IsEmptyText(err), "Process(%q) error = %v", text, err)
		assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))
	}

	got, err := p.Process("?! ...")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = p.Process("hello \xff")
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))
}

func TestProcessMarkup(t *testing.T) {
	p := testPipeline()
	p.SetStripMarkup(true)
	got, err := p.Process("<p>hello</p><p>po</p>")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hello", got[0].Word)
	assert.Equal(t, "po", got[1].Word)

	_, err = p.Process("<script>hello()</script>")
	assert.True(t, IsEmptyText(err))
}

func TestSimplify(t *testing.T) {
	records := []classify.LabeledWord{
		{Word: "hello", Eng: 1, Flag: classify.FlagDictionary},
		{Word: "po", Tgl: 1, Flag: classify.FlagDictionary},
		{Word: "na", Eng: 0.5, Tgl: 0.5, Flag: classify.FlagDictionary},
		{Word: "2024", Flag: classify.FlagNumeral},
		{Word: "qwxz", Flag: classify.FlagUnknown},
	}
	want := []Simplified{
		{"hello", LabelEnglish},
		{"po", LabelTagalog},
		{"na", LabelMixed},
		{"2024", LabelNone},
		{"qwxz", LabelNone},
	}
	first := Simplify(records)
	assert.Equal(t, want, first)
	assert.Equal(t, first, Simplify(records))
	assert.Empty(t, Simplify(nil))
}

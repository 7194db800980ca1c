package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cognicore/taglid/pkg/taglid/lexicon"
)

func TestEnglishReduce(t *testing.T) {
	a := New()
	tests := []struct {
		word string
		want string
	}{
		{"working", "work"},
		{"running", "run"},
		{"studies", "study"},
		{"studied", "study"},
		{"books", "book"},
		{"stopped", "stop"},
		{"liked", "like"},
		{"making", "make"},
		{"boxes", "box"},
		{"bigger", "big"},
		{"quickly", "quick"},
		{"Shared", "share"},
	}
	for _, tt := range tests {
		got := a.Reduce(tt.word, lexicon.English)
		assert.Contains(t, got, tt.want, "Reduce(%q, eng)", tt.word)
	}
}

func TestTagalogReduce(t *testing.T) {
	a := New()
	tests := []struct {
		word string
		want string
	}{
		{"aask", "ask"},
		{"nagwowork", "work"},
		{"kumain", "kain"},
		{"kakain", "kain"},
		{"kainin", "kain"},
		{"kakainin", "kain"},
		{"magandang", "maganda"},
		{"pinakamaganda", "ganda"},
		{"nagpunta", "punta"},
		{"pinuntahan", "punta"},
		{"mag-aral", ""},
	}
	for _, tt := range tests {
		got := a.Reduce(tt.word, lexicon.Tagalog)
		if tt.want == "" {
			assert.Empty(t, got, "Reduce(%q, tgl)", tt.word)
			continue
		}
		assert.Contains(t, got, tt.want, "Reduce(%q, tgl)", tt.word)
	}
}

func TestReduceOrderAndDedupe(t *testing.T) {
	a := New()
	got := a.Reduce("nagwowork", lexicon.Tagalog)
	assert.Equal(t, []string{"wowork", "work"}, got)

	for _, lang := range lexicon.Languages {
		for _, w := range []string{"working", "kakainin", "magandang", "books"} {
			bases := a.Reduce(w, lang)
			seen := map[string]bool{}
			for _, b := range bases {
				assert.NotEqual(t, w, b, "base equals input for %q", w)
				assert.False(t, seen[b], "duplicate base %q for %q", b, w)
				seen[b] = true
			}
		}
	}
}

func TestReduceNothingApplies(t *testing.T) {
	a := New()
	assert.Empty(t, a.Reduce("lang", lexicon.Tagalog))
	assert.Empty(t, a.Reduce("po", lexicon.Tagalog))
	assert.Empty(t, a.Reduce("123", lexicon.English))
	assert.Empty(t, a.Reduce("", lexicon.English))
}

func TestReduceDeterministic(t *testing.T) {
	a := New()
	first := a.Reduce("pinakamaganda", lexicon.Tagalog)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, a.Reduce("pinakamaganda", lexicon.Tagalog))
	}
}

func TestAffixes(t *testing.T) {
	aff := Affixes()
	assert.Contains(t, aff, "mag")
	assert.Contains(t, aff, "um")
	assert.Contains(t, aff, "han")
}

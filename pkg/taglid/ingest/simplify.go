package ingest

import "github.com/cognicore/taglid/pkg/taglid/classify"

// Label is the dominant language of a word.
type Label string

const (
	LabelEnglish Label = "eng"
	LabelTagalog Label = "tgl"
	LabelMixed   Label = "eng-tgl" // equal non-zero weights
	LabelNone    Label = "na"      // no language weight
)

// Simplified pairs a word with its dominant language.
type Simplified struct {
	Word  string `json:"word"`
	Label Label  `json:"label"`
}

// LabelOf returns the dominant language of lw.
func LabelOf(lw classify.LabeledWord) Label {
	switch {
	case lw.Eng > lw.Tgl:
		return LabelEnglish
	case lw.Tgl > lw.Eng:
		return LabelTagalog
	case lw.Eng == 0:
		return LabelNone
	default:
		return LabelMixed
	}
}

// Simplify projects each record onto its dominant language, in order.
func Simplify(records []classify.LabeledWord) []Simplified {
	out := make([]Simplified, len(records))
	for i, lw := range records {
		out[i] = Simplified{Word: lw.Word, Label: LabelOf(lw)}
	}
	return out
}

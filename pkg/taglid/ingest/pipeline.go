package ingest

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/taglid/pkg/taglid/classify"
	"github.com/cognicore/taglid/pkg/taglid/internalerr"
)

// ErrEmptyText is returned for blank input.
var ErrEmptyText = fmt.Errorf("%w: empty text", internalerr.ErrInvalidInput)

// Pipeline orchestrates the text flow:
// text → (markup stripping) → tokenization → per-word classification
type Pipeline struct {
	tokenizer   *Tokenizer
	classifier  *classify.Classifier
	stripMarkup bool
}

// NewPipeline creates a text pipeline with the given components.
func NewPipeline(tokenizer *Tokenizer, classifier *classify.Classifier) *Pipeline {
	if tokenizer == nil {
		tokenizer = NewTokenizer()
	}
	return &Pipeline{tokenizer: tokenizer, classifier: classifier}
}

// SetStripMarkup enables HTML text extraction before tokenizing.
func (p *Pipeline) SetStripMarkup(on bool) {
	p.stripMarkup = on
}

// Process labels every word of text in order. Blank text fails with
// ErrEmptyText; text with no words yields an empty result.
func (p *Pipeline) Process(text string) ([]classify.LabeledWord, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", internalerr.ErrInvalidInput)
	}
	if p.stripMarkup {
		text = StripMarkup(text)
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	tokens := p.tokenizer.Tokenize(text)
	out := make([]classify.LabeledWord, 0, len(tokens))
	for _, tok := range tokens {
		lw, err := p.classifier.Classify(tok.Surface)
		if err != nil {
			return nil, fmt.Errorf("classify %q: %w", tok.Surface, err)
		}
		out = append(out, lw)
	}
	return out, nil
}

// IsEmptyText reports whether err came from blank input.
func IsEmptyText(err error) bool {
	return errors.Is(err, ErrEmptyText)
}

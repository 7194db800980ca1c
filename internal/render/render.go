// Package render prints labeled words as aligned console tables.
package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/cognicore/taglid/pkg/taglid/classify"
	"github.com/cognicore/taglid/pkg/taglid/ingest"
	"github.com/cognicore/taglid/pkg/taglid/internalerr"
	"github.com/cognicore/taglid/pkg/taglid/lexicon"
	"github.com/cognicore/taglid/pkg/taglid/store"
)

// ColorEnabled resolves a --color mode ("auto", "on", "off") for f.
func ColorEnabled(mode string, f *os.File) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return os.Getenv("NO_COLOR") == "" && f != nil && term.IsTerminal(int(f.Fd())), nil
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	default:
		return false, fmt.Errorf("%w: color mode %q (want auto, on or off)", internalerr.ErrInvalidInput, mode)
	}
}

// Renderer writes tables to w.
type Renderer struct {
	w     io.Writer
	color bool
	// MaxWordWidth truncates long words; zero disables truncation.
	MaxWordWidth int
}

// New creates a renderer. With useColor set, flags and labels are colored
// by language.
func New(w io.Writer, useColor bool) *Renderer {
	return &Renderer{w: w, color: useColor, MaxWordWidth: 32}
}

var (
	englishColor  = color.New(color.FgCyan)
	tagalogColor  = color.New(color.FgYellow)
	mixedColor    = color.New(color.FgGreen, color.Bold)
	excludedColor = color.New(color.FgHiBlack)
	headerColor   = color.New(color.Bold)
)

func (r *Renderer) paint(c *color.Color, s string) string {
	if !r.color {
		return s
	}
	// work on a copy so the package-level colors stay untouched
	cc := *c
	cc.EnableColor()
	return cc.Sprint(s)
}

func labelColor(l ingest.Label) *color.Color {
	switch l {
	case ingest.LabelEnglish:
		return englishColor
	case ingest.LabelTagalog:
		return tagalogColor
	case ingest.LabelMixed:
		return mixedColor
	default:
		return excludedColor
	}
}

// Words prints one row per labeled word.
func (r *Renderer) Words(words []classify.LabeledWord) error {
	rows := make([][]cell, 0, len(words))
	for _, lw := range words {
		c := labelColor(ingest.LabelOf(lw))
		rows = append(rows, []cell{
			{text: r.truncate(lw.Word)},
			{text: formatWeight(lw.Eng)},
			{text: formatWeight(lw.Tgl)},
			{text: lw.Flag.String(), color: c},
			{text: lw.Correction},
		})
	}
	return r.table([]string{"WORD", "ENG", "TGL", "FLAG", "CORRECTION"}, rows)
}

// Simplified prints one row per word with its collapsed label.
func (r *Renderer) Simplified(words []ingest.Simplified) error {
	rows := make([][]cell, 0, len(words))
	for _, s := range words {
		rows = append(rows, []cell{
			{text: r.truncate(s.Word)},
			{text: string(s.Label), color: labelColor(s.Label)},
		})
	}
	return r.table([]string{"WORD", "LABEL"}, rows)
}

// Stats prints resource table sizes.
func (r *Renderer) Stats(s lexicon.Stats) error {
	entries := []struct {
		name string
		n    int
	}{
		{"english dictionary", s.EnglishWords},
		{"tagalog dictionary", s.TagalogWords},
		{"english frequencies", s.EnglishFreq},
		{"tagalog frequencies", s.TagalogFreq},
		{"named entities", s.NamedEntities},
		{"interjections", s.Interjections},
		{"abbreviations", s.Abbreviations},
		{"contractions", s.Contractions},
		{"slang", s.Slang},
		{"exceptions", s.Exceptions},
	}
	rows := make([][]cell, len(entries))
	for i, e := range entries {
		rows[i] = []cell{{text: e.name}, {text: fmt.Sprint(e.n), right: true}}
	}
	return r.table([]string{"TABLE", "ENTRIES"}, rows)
}

// FlagCounts prints a tally in stage order, skipping zero counts.
func (r *Renderer) FlagCounts(counts map[classify.Flag]int) error {
	var rows [][]cell
	for _, f := range classify.Flags {
		if n := counts[f]; n > 0 {
			rows = append(rows, []cell{{text: f.String()}, {text: fmt.Sprint(n), right: true}})
		}
	}
	// unknown tags read back from storage go last
	var extra []string
	for f := range counts {
		if !f.IsValid() {
			extra = append(extra, string(f))
		}
	}
	sort.Strings(extra)
	for _, f := range extra {
		rows = append(rows, []cell{{text: f}, {text: fmt.Sprint(counts[classify.Flag(f)]), right: true}})
	}
	return r.table([]string{"FLAG", "COUNT"}, rows)
}

// Runs prints stored dataset runs.
func (r *Renderer) Runs(runs []store.Run) error {
	rows := make([][]cell, len(runs))
	for i, run := range runs {
		rows[i] = []cell{
			{text: run.ID},
			{text: run.CreatedAt.Local().Format("2006-01-02 15:04")},
			{text: fmt.Sprint(run.Cells), right: true},
			{text: fmt.Sprint(run.Records), right: true},
			{text: fmt.Sprint(run.Skipped), right: true},
			{text: run.Source},
		}
	}
	return r.table([]string{"ID", "CREATED", "CELLS", "WORDS", "SKIPPED", "SOURCE"}, rows)
}

type cell struct {
	text  string
	color *color.Color
	right bool
}

func (r *Renderer) table(header []string, rows [][]cell) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c.text))
		}
	}

	var b strings.Builder
	for i, h := range header {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(r.paint(headerColor, pad(h, widths[i], false, i == len(header)-1)))
	}
	b.WriteByte('\n')
	for _, row := range rows {
		for i, c := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			s := pad(c.text, widths[i], c.right, i == len(row)-1)
			if c.color != nil {
				s = r.paint(c.color, s)
			}
			b.WriteString(s)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func pad(s string, width int, right, last bool) string {
	if right {
		return runewidth.FillLeft(s, width)
	}
	if last {
		return s
	}
	return runewidth.FillRight(s, width)
}

func (r *Renderer) truncate(s string) string {
	if r.MaxWordWidth <= 0 || runewidth.StringWidth(s) <= r.MaxWordWidth {
		return s
	}
	if r.MaxWordWidth <= 3 {
		return runewidth.Truncate(s, r.MaxWordWidth, "")
	}
	return runewidth.Truncate(s, r.MaxWordWidth, "...")
}

func formatWeight(v float64) string {
	switch v {
	case 0:
		return "0"
	case 1:
		return "1"
	}
	return fmt.Sprintf("%.2f", v)
}

package lexicon

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/edsrzf/mmap-go"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/taglid/pkg/taglid/internalerr"
)

// Default file names inside a resource directory.
const (
	EnglishDictFile   = "eng_dict.txt"
	TagalogDictFile   = "tgl_dict.txt"
	EnglishFreqFile   = "eng_freqlist.csv"
	TagalogFreqFile   = "tgl_freqlist.csv"
	NamedEntitiesFile = "named_entities.txt"
	InterjectionsFile = "interjections.txt"
	AbbreviationsFile = "abbreviations.yaml"
	SlangFile         = "slang.yaml"
	ExceptionsFile    = "exceptions.txt"
)

// Overlay supplies extra dictionary words merged into a bundle before it
// is frozen (for example a shared custom word set).
type Overlay interface {
	Words(ctx context.Context, lang Language) ([]string, error)
}

// Loader reads resource files and builds a Resources bundle.
// Dictionary and frequency paths are required; the rest may be empty.
type Loader struct {
	EnglishDictPath   string
	TagalogDictPath   string
	EnglishFreqPath   string
	TagalogFreqPath   string
	NamedEntitiesPath string
	InterjectionsPath string
	AbbreviationsPath string
	SlangPath         string
	ExceptionsPath    string

	Overlays []Overlay
	Logger   *slog.Logger
}

// DefaultLoader returns a loader for the standard layout of dir. Optional
// files that do not exist are left unset.
func DefaultLoader(dir string) *Loader {
	optional := func(name string) string {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err != nil {
			return ""
		}
		return p
	}
	return &Loader{
		EnglishDictPath:   filepath.Join(dir, EnglishDictFile),
		TagalogDictPath:   filepath.Join(dir, TagalogDictFile),
		EnglishFreqPath:   filepath.Join(dir, EnglishFreqFile),
		TagalogFreqPath:   filepath.Join(dir, TagalogFreqFile),
		NamedEntitiesPath: optional(NamedEntitiesFile),
		InterjectionsPath: optional(InterjectionsFile),
		AbbreviationsPath: optional(AbbreviationsFile),
		SlangPath:         optional(SlangFile),
		ExceptionsPath:    optional(ExceptionsFile),
	}
}

// LoadDir loads the standard layout of dir.
func LoadDir(ctx context.Context, dir string) (*Resources, error) {
	return DefaultLoader(dir).Load(ctx)
}

// Load reads all configured files and returns the frozen bundle. Any
// failure is fatal and wraps internalerr.ErrResourceLoad.
func (l *Loader) Load(ctx context.Context) (*Resources, error) {
	b := NewBuilder()

	required := []struct {
		name string
		path string
	}{
		{"english dictionary", l.EnglishDictPath},
		{"tagalog dictionary", l.TagalogDictPath},
		{"english frequency list", l.EnglishFreqPath},
		{"tagalog frequency list", l.TagalogFreqPath},
	}
	for _, r := range required {
		if r.path == "" {
			return nil, fmt.Errorf("%w: %s path not set", internalerr.ErrResourceLoad, r.name)
		}
	}

	for _, lang := range Languages {
		words, err := ReadWordList(l.dictPath(lang))
		if err != nil {
			return nil, loadErr(lang.String()+" dictionary", err)
		}
		b.AddWords(lang, l.singleWords(lang.String()+" dictionary", words)...)

		freqs, err := ReadFrequencyList(l.freqPath(lang))
		if err != nil {
			return nil, loadErr(lang.String()+" frequency list", err)
		}
		for _, f := range freqs {
			b.AddFrequency(lang, f.Word, f.Count)
		}
	}

	if l.NamedEntitiesPath != "" {
		words, err := ReadWordList(l.NamedEntitiesPath)
		if err != nil {
			return nil, loadErr("named entities", err)
		}
		b.AddNamedEntities(l.singleWords("named entities", words)...)
	}

	if l.InterjectionsPath != "" {
		words, err := ReadWordList(l.InterjectionsPath)
		if err != nil {
			return nil, loadErr("interjections", err)
		}
		b.AddInterjections(l.singleWords("interjections", words)...)
	}

	if l.AbbreviationsPath != "" {
		abbr, err := readAbbreviations(l.AbbreviationsPath)
		if err != nil {
			return nil, loadErr("abbreviations", err)
		}
		abbrs, err := normalizedEntries(abbr.Abbreviations)
		if err != nil {
			return nil, loadErr("abbreviations", err)
		}
		contractions, err := normalizedEntries(abbr.Contractions)
		if err != nil {
			return nil, loadErr("contractions", err)
		}
		for _, e := range abbrs {
			b.AddAbbreviation(e.key, e.value)
		}
		for _, e := range contractions {
			b.AddContraction(e.key, e.value)
		}
	}

	if l.SlangPath != "" {
		slang, err := readSlang(l.SlangPath)
		if err != nil {
			return nil, loadErr("slang", err)
		}
		eng, err := normalizedEntries(slang.English)
		if err != nil {
			return nil, loadErr("eng slang", err)
		}
		tgl, err := normalizedEntries(slang.Tagalog)
		if err != nil {
			return nil, loadErr("tgl slang", err)
		}
		if err := disjoint(eng, tgl); err != nil {
			return nil, loadErr("slang", err)
		}
		for _, e := range eng {
			b.AddSlang(English, e.key, e.value)
		}
		for _, e := range tgl {
			b.AddSlang(Tagalog, e.key, e.value)
		}
	}

	if l.ExceptionsPath != "" {
		words, err := ReadWordList(l.ExceptionsPath)
		if err != nil {
			return nil, loadErr("exceptions", err)
		}
		b.AddExceptions(filepath.Base(l.ExceptionsPath), l.singleWords("exceptions", words)...)
	}

	for _, o := range l.Overlays {
		for _, lang := range Languages {
			words, err := o.Words(ctx, lang)
			if err != nil {
				return nil, loadErr(lang.String()+" overlay", err)
			}
			b.AddWords(lang, words...)
		}
	}

	res := b.Build()
	st := res.Stats()
	l.logger().Info("resources loaded",
		"eng_words", st.EnglishWords,
		"tgl_words", st.TagalogWords,
		"eng_freq", st.EnglishFreq,
		"tgl_freq", st.TagalogFreq,
		"named_entities", st.NamedEntities,
		"interjections", st.Interjections,
		"abbreviations", st.Abbreviations,
		"contractions", st.Contractions,
		"slang", st.Slang,
		"exceptions", st.Exceptions,
	)
	return res, nil
}

func (l *Loader) dictPath(lang Language) string {
	if lang == English {
		return l.EnglishDictPath
	}
	return l.TagalogDictPath
}

func (l *Loader) freqPath(lang Language) string {
	if lang == English {
		return l.EnglishFreqPath
	}
	return l.TagalogFreqPath
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// singleWords drops entries containing whitespace. Tokens never contain
// spaces, so such entries could not match anything.
func (l *Loader) singleWords(what string, words []string) []string {
	out := words[:0:0]
	for _, w := range words {
		if strings.ContainsFunc(w, unicode.IsSpace) {
			l.logger().Warn("ignoring multi-word entry", "list", what, "entry", w)
			continue
		}
		out = append(out, w)
	}
	return out
}

func loadErr(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", internalerr.ErrResourceLoad, what, err)
}

// ReadWordList reads one entry per line, skipping blanks and # comments.
func ReadWordList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, s.Err()
}

// FrequencyEntry is one row of a frequency list.
type FrequencyEntry struct {
	Word  string
	Count int
}

// ReadFrequencyList parses a word,count CSV through a read-only memory map.
// A header row whose count column is not numeric is skipped; any other bad
// count is an error.
func ReadFrequencyList(path string) ([]FrequencyEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		return nil, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	defer m.Unmap()

	return parseFrequencies(bytes.NewReader(m))
}

func parseFrequencies(r io.Reader) ([]FrequencyEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var out []FrequencyEntry
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("line %d: expected word,count", line)
		}
		word := strings.TrimSpace(rec[0])
		count, err := strconv.Atoi(strings.TrimSpace(rec[1]))
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("line %d: bad count %q", line, rec[1])
		}
		if count < 0 {
			return nil, fmt.Errorf("line %d: negative count %d", line, count)
		}
		if word == "" {
			continue
		}
		out = append(out, FrequencyEntry{Word: word, Count: count})
	}
	return out, nil
}

type entry struct {
	key, value string
}

// normalizedEntries returns the entries of m sorted by key, one per
// normalized key. Keys that normalize to the same word must map to the
// same value.
func normalizedEntries(m map[string]string) ([]entry, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	first := make(map[string]string, len(keys))
	out := make([]entry, 0, len(keys))
	for _, k := range keys {
		norm := Normalize(k)
		if norm == "" {
			continue
		}
		if prev, ok := first[norm]; ok {
			if normalizePhrase(m[prev]) != normalizePhrase(m[k]) {
				return nil, fmt.Errorf("%q and %q both define %q with different values", prev, k, norm)
			}
			continue
		}
		first[norm] = k
		out = append(out, entry{key: k, value: m[k]})
	}
	return out, nil
}

// disjoint fails when a word is listed under both languages.
func disjoint(eng, tgl []entry) error {
	seen := make(map[string]string, len(eng))
	for _, e := range eng {
		seen[Normalize(e.key)] = e.key
	}
	for _, e := range tgl {
		if k, ok := seen[Normalize(e.key)]; ok {
			return fmt.Errorf("%q is listed as both eng (%q) and tgl (%q)", Normalize(e.key), k, e.key)
		}
	}
	return nil
}

func normalizePhrase(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = Normalize(f)
	}
	return strings.Join(fields, " ")
}

type abbreviationFile struct {
	Abbreviations map[string]string `yaml:"abbreviations"`
	Contractions  map[string]string `yaml:"contractions"`
}

func readAbbreviations(path string) (*abbreviationFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var af abbreviationFile
	if err := yaml.Unmarshal(data, &af); err != nil {
		return nil, err
	}
	return &af, nil
}

type slangFile struct {
	English map[string]string `yaml:"eng"`
	Tagalog map[string]string `yaml:"tgl"`
}

func readSlang(path string) (*slangFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf slangFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, err
	}
	return &sf, nil
}

package lexicon

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
)

// MergeFrequencies rebuilds a frequency list. Every included word gains one
// count, or enters with a count of 1 when base lacks it; excluded words are
// dropped last, so exclusion wins. Repeated base words are summed. The
// result is ordered by count, highest first, then by word.
func MergeFrequencies(base []FrequencyEntry, include, exclude []string) []FrequencyEntry {
	counts := make(map[string]int, len(base)+len(include))
	for _, e := range base {
		if w := Normalize(e.Word); w != "" {
			counts[w] += e.Count
		}
	}

	seen := make(map[string]struct{}, len(include))
	for _, w := range include {
		w = Normalize(w)
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		counts[w]++
	}

	for _, w := range exclude {
		delete(counts, Normalize(w))
	}

	out := make([]FrequencyEntry, 0, len(counts))
	for w, n := range counts {
		out = append(out, FrequencyEntry{Word: w, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out
}

// WriteFrequencyList writes entries as word,count rows.
func WriteFrequencyList(w io.Writer, entries []FrequencyEntry) error {
	cw := csv.NewWriter(w)
	for _, e := range entries {
		if err := cw.Write([]string{e.Word, strconv.Itoa(e.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

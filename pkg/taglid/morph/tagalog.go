package morph

import "strings"

// Longest first so "pinakama" is tried before "pinaka" and "ma".
var tagalogPrefixes = []string{
	"pinakama", "pinaka", "nakikipag", "makikipag", "nakipag", "makipag",
	"ipinag", "napaka", "ipag", "ipa", "nang", "mang", "pang", "naka",
	"maka", "paki", "naki", "maki", "taga", "nag", "mag", "pag", "tag",
	"ika", "ka", "ma", "na", "pa", "i",
}

var tagalogSuffixes = []string{"han", "hin", "an", "in"}

var tagalogInfixes = []string{"um", "in"}

// minTagalogBase is the shortest base a rule may leave behind.
const minTagalogBase = 3

// Affixes lists the Tagalog prefixes, infixes and suffixes the reducer
// strips. Frequency-list generation treats them as valid tokens.
func Affixes() []string {
	out := make([]string, 0, len(tagalogPrefixes)+len(tagalogInfixes)+len(tagalogSuffixes))
	out = append(out, tagalogPrefixes...)
	out = append(out, tagalogInfixes...)
	out = append(out, tagalogSuffixes...)
	return out
}

// tagalogReducer strips the -ng ligature, one or two prefixes, an -um-/-in-
// infix and syllable reduplication, in that order, then tries suffix
// removal on the word and on every intermediate form. Each form is emitted
// so the caller can stop at the first one that is a dictionary word.
type tagalogReducer struct{}

func (tagalogReducer) reduce(w string) []string {
	var chain []string
	cur := w

	if n := len(cur); n > 4 && strings.HasSuffix(cur, "ng") && isVowel(cur[n-3]) {
		cur = cur[:n-2]
		chain = append(chain, cur)
	}

	for i := 0; i < 2; i++ {
		next, ok := stripPrefix(cur)
		if !ok {
			break
		}
		cur = next
		chain = append(chain, cur)
	}

	if next, ok := stripInfix(cur); ok {
		cur = next
		chain = append(chain, cur)
	}

	if next, ok := stripReduplication(cur); ok {
		chain = append(chain, next)
	}

	out := append([]string(nil), chain...)
	for _, f := range append([]string{w}, chain...) {
		base, ok := stripSuffix(f)
		if !ok {
			continue
		}
		out = append(out, base)
		// kakainin -> kakain -> kain
		if again, ok := stripReduplication(base); ok {
			out = append(out, again)
		}
	}
	return out
}

func stripPrefix(w string) (string, bool) {
	for _, p := range tagalogPrefixes {
		if strings.HasPrefix(w, p) && len(w)-len(p) >= minTagalogBase {
			return w[len(p):], true
		}
	}
	return "", false
}

func stripSuffix(w string) (string, bool) {
	for _, s := range tagalogSuffixes {
		if strings.HasSuffix(w, s) && len(w)-len(s) >= minTagalogBase {
			return w[:len(w)-len(s)], true
		}
	}
	return "", false
}

// stripInfix removes -um- or -in- placed after the first consonant
// cluster: kumain -> kain, prinito -> prito.
func stripInfix(w string) (string, bool) {
	onset := 0
	for onset < len(w) && !isVowel(w[onset]) {
		onset++
	}
	if onset == 0 || onset > 2 {
		return "", false
	}
	for _, in := range tagalogInfixes {
		if strings.HasPrefix(w[onset:], in) && len(w)-len(in) >= minTagalogBase {
			return w[:onset] + w[onset+len(in):], true
		}
	}
	return "", false
}

// stripReduplication removes a repeated leading V, CV or CCV syllable:
// aalis -> alis, kakain -> kain, wowork -> work, prepraktis -> praktis.
func stripReduplication(w string) (string, bool) {
	for _, n := range []int{1, 2, 3} {
		if len(w) < 2*n || len(w)-n < 2 {
			continue
		}
		syl := w[:n]
		if !isVowel(syl[n-1]) {
			continue
		}
		valid := true
		for i := 0; i < n-1; i++ {
			if isVowel(syl[i]) {
				valid = false
				break
			}
		}
		if valid && strings.HasPrefix(w[n:], syl) {
			return w[n:], true
		}
	}
	return "", false
}

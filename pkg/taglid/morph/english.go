package morph

import (
	"strings"

	"github.com/kljensen/snowball"
)

// englishReducer undoes regular English inflection with a handful of
// suffix rules, then falls back to the Snowball stem.
type englishReducer struct{}

func (englishReducer) reduce(w string) []string {
	var out []string
	add := func(s string) {
		if len(s) >= 2 {
			out = append(out, s)
		}
	}

	switch {
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		add(w[:len(w)-3] + "y")
	case strings.HasSuffix(w, "ied") && len(w) > 4:
		add(w[:len(w)-3] + "y")
	case strings.HasSuffix(w, "es"):
		add(w[:len(w)-2])
		add(w[:len(w)-1])
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && !strings.HasSuffix(w, "us"):
		add(w[:len(w)-1])
	case strings.HasSuffix(w, "ed"):
		stem := w[:len(w)-2]
		if undoubled, ok := undouble(stem); ok {
			add(undoubled)
		}
		add(stem)
		add(stem + "e")
	case strings.HasSuffix(w, "ing") && len(w) > 4:
		stem := w[:len(w)-3]
		if undoubled, ok := undouble(stem); ok {
			add(undoubled)
		}
		add(stem)
		add(stem + "e")
	case strings.HasSuffix(w, "est") && len(w) > 5:
		stem := w[:len(w)-3]
		if undoubled, ok := undouble(stem); ok {
			add(undoubled)
		}
		add(stem)
	case strings.HasSuffix(w, "er") && len(w) > 4:
		stem := w[:len(w)-2]
		if undoubled, ok := undouble(stem); ok {
			add(undoubled)
		}
		add(stem)
	case strings.HasSuffix(w, "ly") && len(w) > 4:
		add(w[:len(w)-2])
	}

	if stem, err := snowball.Stem(w, "english", true); err == nil && stem != "" {
		add(stem)
	}
	return out
}

// undouble turns "stopp" into "stop". l, s and z are left doubled since
// they are usually part of the base ("call", "pass", "buzz").
func undouble(s string) (string, bool) {
	n := len(s)
	if n < 3 || s[n-1] != s[n-2] || isVowel(s[n-1]) {
		return "", false
	}
	switch s[n-1] {
	case 'l', 's', 'z':
		return "", false
	}
	return s[:n-1], true
}

package lexicon

import "fmt"

// Language identifies one side of the English/Tagalog pair.
type Language int

const (
	English Language = iota
	Tagalog
)

// Languages lists every supported language in a fixed order.
var Languages = [...]Language{English, Tagalog}

// String returns the short code used in resource file names and output ("eng", "tgl").
func (l Language) String() string {
	switch l {
	case English:
		return "eng"
	case Tagalog:
		return "tgl"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

// Other returns the opposite language of the pair.
func (l Language) Other() Language {
	if l == English {
		return Tagalog
	}
	return English
}

// ParseLanguage converts "eng"/"tgl" (any case) to a Language.
func ParseLanguage(s string) (Language, error) {
	switch Normalize(s) {
	case "eng", "en", "english":
		return English, nil
	case "tgl", "tl", "tagalog", "filipino", "fil":
		return Tagalog, nil
	}
	return 0, fmt.Errorf("unknown language %q", s)
}

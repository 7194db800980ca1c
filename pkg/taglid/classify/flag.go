package classify

import (
	"fmt"
	"strings"
)

// Flag records which stage produced a word's weights.
type Flag string

const (
	FlagNumeral      Flag = "NUM"
	FlagNamedEntity  Flag = "NE"
	FlagInterjection Flag = "INTJ"
	FlagDictionary   Flag = "DICT"
	FlagAbbreviation Flag = "ABBR"
	FlagSlang        Flag = "SLANG"
	FlagStem         Flag = "STEM"
	FlagFrequency    Flag = "FREQ"
	FlagIntraword    Flag = "INTW"
	FlagCorrection   Flag = "CORR"
	FlagUnknown      Flag = "UNK"
)

// Flags lists every flag in pipeline order.
var Flags = []Flag{
	FlagNumeral, FlagNamedEntity, FlagInterjection, FlagDictionary,
	FlagAbbreviation, FlagSlang, FlagStem, FlagFrequency,
	FlagIntraword, FlagCorrection, FlagUnknown,
}

func (f Flag) String() string { return string(f) }

func (f Flag) IsValid() bool {
	switch f {
	case FlagNumeral, FlagNamedEntity, FlagInterjection, FlagDictionary,
		FlagAbbreviation, FlagSlang, FlagStem, FlagFrequency,
		FlagIntraword, FlagCorrection, FlagUnknown:
		return true
	}
	return false
}

// Excluded reports whether words with this flag carry no language weight.
func (f Flag) Excluded() bool {
	switch f {
	case FlagNumeral, FlagNamedEntity, FlagUnknown:
		return true
	}
	return false
}

// ParseFlag converts a tag such as "DICT" (any case) to a Flag.
func ParseFlag(s string) (Flag, error) {
	f := Flag(strings.ToUpper(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("unknown flag %q", s)
	}
	return f, nil
}

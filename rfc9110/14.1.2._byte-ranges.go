package rfc9110

import (
	"math"
	"strconv"
	"strings"
)

// §     An int-range is a range expressed as two non-negative integers or as
// §     one non-negative integer through to the end of the representation
// §     data.  The range unit specifies what the integers mean (e.g., they
// §     might indicate unit offsets from the beginning, inclusive numbered
// §     parts, etc.).
// §
// §       int-range     = first-pos "-" [ last-pos ]
// §       first-pos     = 1*DIGIT
// §       last-pos      = 1*DIGIT
// §
// §     An int-range is invalid if the last-pos value is present and less
// §     than the first-pos.
// §
// §     A suffix-range is a range expressed as a suffix of the representation
// §     data with the provided length, measured in range units.  In other
// §     words, the last N units of the representation data.
// §
// §       suffix-range  = "-" suffix-length
// §       suffix-length = 1*DIGIT

// Form is the syntactic form of a single range-spec.
type Form int

const (
	// Malformed is any range-spec that is neither an int-range nor a suffix-range.
	Malformed Form = iota
	// IntRange is "first-pos-last-pos".
	IntRange
	// OpenRange is an int-range without last-pos, i.e. "first-pos-".
	OpenRange
	// SuffixRange is "-suffix-length".
	SuffixRange
)

func (f Form) String() string {
	switch f {
	case IntRange:
		return "int-range"
	case OpenRange:
		return "open-range"
	case SuffixRange:
		return "suffix-range"
	default:
		return "malformed"
	}
}

// RangeSpec is a lexically classified range-spec.
// Only the fields relevant to Form are set.
type RangeSpec struct {
	Form         Form
	FirstPos     int64
	LastPos      int64
	SuffixLength int64
}

// ParseRangeSpec classifies a single (already trimmed) range-spec.
// The spec is split at the first "-"; every remaining character of each side
// must be a DIGIT, so signs, inner whitespace and extra dashes make it Malformed.
// Whether the range is satisfiable is not decided here.
func ParseRangeSpec(spec string) RangeSpec {
	firstStr, lastStr, found := strings.Cut(spec, "-")
	if !found {
		return RangeSpec{Form: Malformed}
	}
	switch {
	case firstStr == "":
		length, ok := digits(lastStr)
		if !ok {
			return RangeSpec{Form: Malformed}
		}
		return RangeSpec{Form: SuffixRange, SuffixLength: length}
	case lastStr == "":
		first, ok := digits(firstStr)
		if !ok {
			return RangeSpec{Form: Malformed}
		}
		return RangeSpec{Form: OpenRange, FirstPos: first}
	default:
		first, ok := digits(firstStr)
		if !ok {
			return RangeSpec{Form: Malformed}
		}
		last, ok := digits(lastStr)
		if !ok {
			return RangeSpec{Form: Malformed}
		}
		return RangeSpec{Form: IntRange, FirstPos: first, LastPos: last}
	}
}

// §  14.1.2.  Byte Ranges
// §
// §     The first-pos value in a bytes int-range gives the offset of the
// §     first byte in a range.  The last-pos value gives the offset of the
// §     last byte in the range; that is, the byte positions specified are
// §     inclusive.  Byte offsets start at zero.
// §
// §     [...]
// §
// §     In the byte-range syntax, first-pos, last-pos, and suffix-length are
// §     expressed as decimal number of octets.  Since there is no predefined
// §     limit to the length of content, recipients MUST anticipate
// §     potentially large decimal numerals and prevent parsing errors due to
// §     integer conversion overflows.
func digits(s string) (int64, bool) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// all digits, so this can only be an overflow
		return math.MaxInt64, true
	}
	return n, true
}

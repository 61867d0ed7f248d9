// Package rangeparser parses HTTP Range header values against a resource size.
package rangeparser

import (
	"math"

	"github.com/always-cache/range-parser/rfc9110"
)

// Parse parses a Range header value (e.g. "bytes=0-499,-500") for a resource of
// the given size, using the default options.
//
// On success the accepted ranges are returned in request order; ranges that are
// malformed or out of range are dropped as long as at least one range is accepted.
// Otherwise the error is ErrNotAHeader or ErrUnsatisfiable.
// A negative size panics with an *ArgumentError.
func Parse(size int64, header string) (RangeSet, error) {
	return ParseWithOptions(size, header, Options{})
}

// ParseWithOptions is Parse with explicit options.
func ParseWithOptions(size int64, header string, opts Options) (RangeSet, error) {
	if size < 0 {
		return RangeSet{}, opts.invalid(&ArgumentError{Argument: "size", Expected: "a non-negative integer"})
	}
	return parse(size, header, opts)
}

// ParseValue parses loosely typed arguments, e.g. values decoded from JSON.
// size may be any integer type or an integral float; header must be a string.
// Arguments of any other type are argument errors.
func ParseValue(size, header interface{}, opts Options) (RangeSet, error) {
	n, ok := integer(size)
	if !ok {
		return RangeSet{}, opts.invalid(&ArgumentError{Argument: "size", Expected: "an integer"})
	}
	s, ok := header.(string)
	if !ok {
		return RangeSet{}, opts.invalid(&ArgumentError{Argument: "header", Expected: "a string"})
	}
	return ParseWithOptions(n, s, opts)
}

func parse(size int64, header string, opts Options) (RangeSet, error) {
	logger := opts.logger()

	unit, rangeSet, ok := rfc9110.SplitRangesSpecifier(header)
	if !ok {
		logger.Trace().Str("header", header).Msg("No range unit in header")
		return RangeSet{}, ErrNotAHeader
	}

	t := parseTokens(size, rangeSet, logger)
	if len(t.accepted) == 0 {
		logger.Trace().
			Str("header", header).
			Int("malformed", t.malformed).
			Int("outOfRange", t.outOfRange).
			Msg("No acceptable ranges")
		// a single well-formed range is enough to make it a range request
		if t.outOfRange > 0 {
			return RangeSet{}, ErrUnsatisfiable
		}
		return RangeSet{}, ErrNotAHeader
	}

	set := RangeSet{Unit: unit, Ranges: t.accepted}
	if opts.Combine {
		set = Combine(set)
	}
	return set, nil
}

func integer(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return unsigned(uint64(n))
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return unsigned(n)
	case float32:
		return integral(float64(n))
	case float64:
		return integral(n)
	default:
		return 0, false
	}
}

func unsigned(n uint64) (int64, bool) {
	if n > math.MaxInt64 {
		return 0, false
	}
	return int64(n), true
}

func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	// 2^63 itself is not representable as int64
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

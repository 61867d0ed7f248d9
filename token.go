package rangeparser

import (
	"github.com/always-cache/range-parser/rfc9110"

	"github.com/rs/zerolog"
)

type tokenClass int

const (
	accepted tokenClass = iota
	// the token could not be lexed into numeric bounds
	malformed
	// the bounds lexed but 0 <= start <= end does not hold
	outOfRange
)

func (c tokenClass) String() string {
	switch c {
	case accepted:
		return "accepted"
	case malformed:
		return "malformed"
	default:
		return "out-of-range"
	}
}

// tokens is the outcome of running every range-spec of a header through resolve.
type tokens struct {
	accepted   []Range
	malformed  int
	outOfRange int
}

func parseTokens(size int64, rangeSet string, logger *zerolog.Logger) tokens {
	var t tokens
	for _, raw := range rfc9110.SplitRangeSet(rangeSet) {
		r, class := resolve(rfc9110.ParseRangeSpec(raw), size)
		switch class {
		case accepted:
			t.accepted = append(t.accepted, r)
			continue
		case malformed:
			t.malformed++
		case outOfRange:
			t.outOfRange++
		}
		logger.Trace().Str("token", raw).Stringer("reason", class).Int64("size", size).Msg("Dropping range")
	}
	return t
}

// resolve turns a lexed range-spec into a candidate range for a resource of the given size.
// The end is clamped to the last position before validation.
func resolve(spec rfc9110.RangeSpec, size int64) (Range, tokenClass) {
	var r Range
	switch spec.Form {
	case rfc9110.IntRange:
		r = Range{Start: spec.FirstPos, End: spec.LastPos}
	case rfc9110.OpenRange:
		r = Range{Start: spec.FirstPos, End: size - 1}
	case rfc9110.SuffixRange:
		r = Range{Start: size - spec.SuffixLength, End: size - 1}
	default:
		return Range{}, malformed
	}
	if r.End > size-1 {
		r.End = size - 1
	}
	if r.Start < 0 || r.Start > r.End {
		return r, outOfRange
	}
	return r, accepted
}

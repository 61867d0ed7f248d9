package rangeparser

import "strconv"

// Range is an end-inclusive range, starting at 0.
type Range struct {
	// Start is the first position of the range.
	Start int64 `json:"start"`

	// End is the last position of the range.
	End int64 `json:"end"`
}

// Len returns the number of units in the range.
func (r Range) Len() int64 {
	return r.End - r.Start + 1
}

func (r Range) String() string {
	return strconv.FormatInt(r.Start, 10) + "-" + strconv.FormatInt(r.End, 10)
}

// RangeSet is the result of a successful parse: the accepted ranges,
// in request order (or combined order), tagged with the unit named in the header.
type RangeSet struct {
	// Unit is the text before "=" in the header, as is.
	Unit string `json:"unit"`

	Ranges []Range `json:"ranges"`
}

// Len returns the number of ranges in the set.
func (s RangeSet) Len() int {
	return len(s.Ranges)
}

// TotalLen returns the sum of the lengths of all ranges.
// Overlapping ranges are counted twice; combine first if that matters.
func (s RangeSet) TotalLen() int64 {
	var total int64
	for _, r := range s.Ranges {
		total += r.Len()
	}
	return total
}

// ToSlice returns a copy of the ranges without the unit.
func (s RangeSet) ToSlice() []Range {
	ranges := make([]Range, len(s.Ranges))
	copy(ranges, s.Ranges)
	return ranges
}

// Combine returns the set with overlapping and adjacent ranges merged.
func (s RangeSet) Combine() RangeSet {
	return Combine(s)
}

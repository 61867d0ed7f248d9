package rangeparser

import "sort"

type indexedRange struct {
	Range
	// position of the earliest contributing range in the original set
	index int
}

// Combine merges overlapping and adjacent ranges.
//
// The result covers exactly the positions of the input with as few ranges as possible.
// Merged ranges are ordered by the position of their earliest contributor in the
// input, so "-1,20-100,0-1,101-120" combines to "149-149,20-120,0-1" for size 150.
// The input set is not modified.
func Combine(set RangeSet) RangeSet {
	combined := RangeSet{Unit: set.Unit, Ranges: make([]Range, 0, len(set.Ranges))}
	if len(set.Ranges) == 0 {
		return combined
	}

	ordered := make([]indexedRange, len(set.Ranges))
	for i, r := range set.Ranges {
		ordered[i] = indexedRange{Range: r, index: i}
	}
	// stable, so equal starts stay in original order
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})

	merged := make([]indexedRange, 1, len(ordered))
	merged[0] = ordered[0]
	for _, next := range ordered[1:] {
		current := &merged[len(merged)-1]
		if next.Start-1 > current.End {
			merged = append(merged, next)
		} else if next.End > current.End {
			current.End = next.End
			if next.index < current.index {
				current.index = next.index
			}
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].index < merged[j].index
	})
	for _, r := range merged {
		combined.Ranges = append(combined.Ranges, r.Range)
	}
	return combined
}

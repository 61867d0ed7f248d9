package rangeparser_test

import (
	"testing"

	rangeparser "github.com/always-cache/range-parser"

	"github.com/stretchr/testify/require"
)

func TestParseCombine(t *testing.T) {
	tests := []struct {
		name   string
		size   int64
		header string
		want   []rangeparser.Range
	}{
		{
			name:   "overlapping",
			size:   150,
			header: "bytes=0-4,90-99,5-75,100-199,101-102",
			want:   []rangeparser.Range{{Start: 0, End: 75}, {Start: 90, End: 149}},
		},
		{
			name:   "retains_original_order",
			size:   150,
			header: "bytes=-1,20-100,0-1,101-120",
			want:   []rangeparser.Range{{Start: 149, End: 149}, {Start: 20, End: 120}, {Start: 0, End: 1}},
		},
		{
			name:   "adjacent",
			size:   1000,
			header: "bytes=40-80,81-90,-1",
			want:   []rangeparser.Range{{Start: 40, End: 90}, {Start: 999, End: 999}},
		},
		{
			name:   "contained",
			size:   1000,
			header: "bytes=10-20,0-100,50-60",
			want:   []rangeparser.Range{{Start: 0, End: 100}},
		},
		{
			name:   "gap_of_one",
			size:   1000,
			header: "bytes=0-9,11-20",
			want:   []rangeparser.Range{{Start: 0, End: 9}, {Start: 11, End: 20}},
		},
		{
			name:   "duplicates",
			size:   1000,
			header: "bytes=5-10,5-10,5-10",
			want:   []rangeparser.Range{{Start: 5, End: 10}},
		},
		{
			name:   "later_block_extended_by_earlier_range",
			size:   1000,
			header: "bytes=500-600,0-10,550-700,5-20",
			want:   []rangeparser.Range{{Start: 500, End: 700}, {Start: 0, End: 20}},
		},
		{
			name:   "invalid_tokens_do_not_affect_order",
			size:   100,
			header: "bytes=x,50-60,200-300,0-10,-",
			want:   []rangeparser.Range{{Start: 50, End: 60}, {Start: 0, End: 10}},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			set, err := rangeparser.ParseWithOptions(tc.size, tc.header, rangeparser.Options{Combine: true})
			require.NoError(t, err)
			require.Equal(t, "bytes", set.Unit)
			require.Equal(t, tc.want, set.Ranges)
		})
	}
}

func TestCombineIsIdempotent(t *testing.T) {
	headers := []string{
		"bytes=0-4,90-99,5-75,100-199,101-102",
		"bytes=-1,20-100,0-1,101-120",
		"bytes=7-8,1-2,4-5",
	}
	for _, header := range headers {
		once, err := rangeparser.ParseWithOptions(150, header, rangeparser.Options{Combine: true})
		require.NoError(t, err)
		require.Equal(t, once, rangeparser.Combine(once), header)
	}
}

func TestCombineKeepsInput(t *testing.T) {
	set := rangeparser.RangeSet{
		Unit:   "items",
		Ranges: []rangeparser.Range{{Start: 10, End: 20}, {Start: 0, End: 15}},
	}
	combined := set.Combine()
	require.Equal(t, "items", combined.Unit)
	require.Equal(t, []rangeparser.Range{{Start: 0, End: 20}}, combined.Ranges)
	require.Equal(t, []rangeparser.Range{{Start: 10, End: 20}, {Start: 0, End: 15}}, set.Ranges)
}

func TestCombineEmpty(t *testing.T) {
	combined := rangeparser.Combine(rangeparser.RangeSet{Unit: "bytes"})
	require.Equal(t, "bytes", combined.Unit)
	require.Empty(t, combined.Ranges)
}

package rfc9110

import "strings"

// §  14.1.  Range Units
// §
// §     Representation data can be partitioned into subranges when there are
// §     addressable structural units inherent to that data's content coding
// §     or media type.  For example, octet (a.k.a. byte) boundaries are a
// §     structural unit common to all representation data, allowing
// §     partitions of the data to be identified as a range of bytes at some
// §     offset from the start or end of that data.
// §
// §     This general notion of a "range unit" is used in the Accept-Ranges
// §     (Section 14.3) response header field to advertise support for range
// §     requests, the Range (Section 14.2) request header field to delineate
// §     the parts of a representation that are requested, and the
// §     Content-Range (Section 14.4) header field to describe which part of a
// §     representation is being transferred.
// §
// §       range-unit       = token
// §
// §     All range unit names are case-insensitive and ought to be registered
// §     within the "HTTP Range Unit Registry", as defined in Section 16.5.1.

// BytesUnit is the only range unit defined by the standard.
const BytesUnit = "bytes"

// IsBytesUnit reports whether unit names the "bytes" range unit.
func IsBytesUnit(unit string) bool {
	return strings.EqualFold(strings.TrimSpace(unit), BytesUnit)
}

// §  14.1.1.  Range Specifiers
// §
// §     Ranges are expressed in terms of a range unit paired with a set of
// §     range specifiers.  The range unit name determines what kinds of
// §     range-spec are applicable for its own specifiers.  Hence, the
// §     following grammar is generic: each range unit is expected to specify
// §     requirements on when int-range, suffix-range, and other-range are
// §     allowed.
// §
// §     A range request can specify a single range or a set of ranges within
// §     a single representation.
// §
// §       ranges-specifier = range-unit "=" range-set
// §       range-set        = 1#range-spec
// §       range-spec       = int-range
// §                        / suffix-range
// §                        / other-range

// SplitRangesSpecifier splits a ranges-specifier at the first "=".
// The unit is returned exactly as it appears in the field value.
// ok is false when there is no "=" at all.
func SplitRangesSpecifier(value string) (unit string, rangeSet string, ok bool) {
	return strings.Cut(value, "=")
}

// SplitRangeSet splits a range-set into its comma-separated range-spec elements.
// Surrounding whitespace (OWS) is trimmed from each element; empty elements are kept
// so that the caller can count them as malformed.
func SplitRangeSet(rangeSet string) []string {
	specs := strings.Split(rangeSet, ",")
	for i, spec := range specs {
		specs[i] = strings.TrimSpace(spec)
	}
	return specs
}

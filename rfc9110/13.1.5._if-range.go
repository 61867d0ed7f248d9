package rfc9110

import (
	"strings"
	"time"
)

// §  13.1.5.  If-Range
// §
// §     The "If-Range" header field provides a special conditional request
// §     mechanism that is similar to the If-Match and If-Unmodified-Since
// §     header fields but that instructs the recipient to ignore the Range
// §     header field if the validator doesn't match, resulting in transfer
// §     of the new selected representation instead of a 412 (Precondition
// §     Failed) response.
// §
// §       If-Range = entity-tag / HTTP-date
// §
// §     [...]
// §
// §     A recipient of an If-Range header field MUST ignore the Range header
// §     field if the If-Range condition evaluates to false.  Otherwise, the
// §     recipient SHOULD process the Range header field as requested.
//
// IfRange evaluates an If-Range field value against the selected representation.
// An empty value is no condition at all and evaluates to true.
func IfRange(ifRange string, etag EntityTag, lastModified time.Time) bool {
	value := strings.TrimSpace(ifRange)
	if value == "" {
		return true
	}
	// entity tags always start with a quote or the weak prefix
	if strings.HasPrefix(value, `"`) || strings.HasPrefix(value, "W/") {
		return ifRangeEntityTag(value, etag)
	}
	return ifRangeDate(value, lastModified)
}

// §     To evaluate a received If-Range header field containing an
// §     entity-tag:
// §
// §     1.  If the entity-tag validator provided exactly matches the ETag
// §         field value that would have been provided for the selected
// §         representation using the strong comparison function
// §         (Section 8.8.3.2), the condition is true.
// §
// §     2.  Otherwise, the condition is false.
func ifRangeEntityTag(value string, etag EntityTag) bool {
	tag, ok := ParseEntityTag(value)
	return ok && tag.StrongMatch(etag)
}

// §     To evaluate a received If-Range header field containing an
// §     HTTP-date:
// §
// §     1.  If the HTTP-date validator provided is not a strong validator in
// §         the sense defined by Section 8.8.2.2, the condition is false.
// §
// §     2.  If the HTTP-date validator provided exactly matches the
// §         Last-Modified field value that would have been provided for the
// §         selected representation, the condition is true.
func ifRangeDate(value string, lastModified time.Time) bool {
	if lastModified.IsZero() {
		return false
	}
	date, err := HttpDate(value)
	if err != nil {
		return false
	}
	// HTTP-date has a one second resolution
	return date.Equal(lastModified.UTC().Truncate(time.Second))
}

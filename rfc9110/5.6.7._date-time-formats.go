package rfc9110

import (
	"fmt"
	"strings"
	"time"
)

// §  5.6.7.  Date/Time Formats
// §
// §     Prior to 1995, there were three different formats commonly used by
// §     servers to communicate timestamps.  For compatibility with old
// §     implementations, all three are defined here.  The preferred format is
// §     a fixed-length and single-zone subset of the date and time
// §     specification used by the Internet Message Format [RFC5322].
// §
// §       HTTP-date    = IMF-fixdate / obs-date
// §
// §     A recipient that parses a timestamp value in an HTTP field MUST
// §     accept all three HTTP-date formats.  When a sender generates a field
// §     that contains one or more timestamps defined as HTTP-date, the sender
// §     MUST generate those timestamps in the IMF-fixdate format.
func HttpDate(dateStr string) (time.Time, error) {
	date, err := imfDate(dateStr)
	if err == nil {
		return date, nil
	}
	// try to parse as obsolete date
	if date, obsErr := obsDate(dateStr); obsErr == nil {
		return date, nil
	}
	// return original error if unsuccessful
	return date, err
}

// ToHttpDate formats t as an IMF-fixdate.
func ToHttpDate(t time.Time) string {
	return t.UTC().Format(imfDateLayout)
}

// §     Preferred format:
// §
// §       IMF-fixdate  = day-name "," SP date1 SP time-of-day SP GMT
// §       ; fixed length/zone/capitalization subset of the format
// §       ; see Section 3.3 of [RFC5322]
const imfDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

func imfDate(dateStr string) (time.Time, error) {
	date, err := time.Parse(time.RFC1123, normalizeDateStr(dateStr))
	if err != nil {
		return date, err
	}
	if zone, _ := date.Zone(); zone != "GMT" {
		return date, fmt.Errorf("Date %s is not in GMT time, but %s", date, zone)
	}
	return date, nil
}

// §     Obsolete formats:
// §
// §       obs-date     = rfc850-date / asctime-date
func obsDate(dateStr string) (time.Time, error) {
	str := normalizeDateStr(dateStr)
	if date, err := time.Parse(time.RFC850, str); err == nil {
		return date, err
	}
	return time.Parse(time.ANSIC, str)
}

// §     HTTP-date is case sensitive.  Note that Section 4.2 of [CACHING]
// §     relaxes this for cache recipients.
func normalizeDateStr(dateStr string) string {
	s := strings.TrimSpace(dateStr)
	if i := strings.LastIndex(s, " "); i >= 0 {
		s = s[:i+1] + strings.ToUpper(s[i+1:])
	}
	return s
}

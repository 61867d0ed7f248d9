package rfc9110

import "strconv"

// §  14.4.  Content-Range
// §
// §     The "Content-Range" header field is sent in a single part 206
// §     (Partial Content) response to indicate the partial range of the
// §     selected representation enclosed as the message content, sent in
// §     each part of a multipart 206 response to indicate the range enclosed
// §     within each body part (Section 14.6), and sent in 416 (Range Not
// §     Satisfiable) responses to provide information about the selected
// §     representation.
// §
// §       Content-Range       = range-unit SP
// §                             ( range-resp / unsatisfied-range )
// §
// §       range-resp          = incl-range "/" ( complete-length / "*" )
// §       incl-range          = first-pos "-" last-pos
// §       unsatisfied-range   = "*/" complete-length
// §
// §       complete-length     = 1*DIGIT

// ContentRange formats a range-resp Content-Range value.
// A negative complete length is sent as "*" (unknown).
func ContentRange(unit string, firstPos, lastPos, completeLength int64) string {
	complete := "*"
	if completeLength >= 0 {
		complete = strconv.FormatInt(completeLength, 10)
	}
	return unit + " " + strconv.FormatInt(firstPos, 10) + "-" + strconv.FormatInt(lastPos, 10) + "/" + complete
}

// §     A server generating a 416 (Range Not Satisfiable) response to a
// §     byte-range request SHOULD send a Content-Range header field with an
// §     unsatisfied-range value, as in the following example:
// §
// §       Content-Range: bytes */1234
func UnsatisfiedRange(unit string, completeLength int64) string {
	return unit + " */" + strconv.FormatInt(completeLength, 10)
}

package rfc9110

import "strings"

// §  8.8.3.  ETag
// §
// §     The "ETag" field in a response provides the current entity tag for
// §     the selected representation, as determined at the conclusion of
// §     handling the request.
// §
// §       ETag       = entity-tag
// §
// §       entity-tag = [ weak ] opaque-tag
// §       weak       = %s"W/"
// §       opaque-tag = DQUOTE *etagc DQUOTE
// §       etagc      = %x21 / %x23-7E / obs-text
// §                  ; VCHAR except double quotes, plus obs-text
type EntityTag struct {
	Weak   bool
	Opaque string
}

// StrongEntityTag returns a strong entity tag with the given opaque value.
func StrongEntityTag(opaque string) EntityTag {
	return EntityTag{Opaque: opaque}
}

func (e EntityTag) String() string {
	if e.Opaque == "" && !e.Weak {
		return ""
	}
	tag := `"` + e.Opaque + `"`
	if e.Weak {
		return "W/" + tag
	}
	return tag
}

// ParseEntityTag parses a single entity-tag.
func ParseEntityTag(value string) (EntityTag, bool) {
	var tag EntityTag
	s := strings.TrimSpace(value)
	if strings.HasPrefix(s, "W/") {
		tag.Weak = true
		s = s[2:]
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return EntityTag{}, false
	}
	opaque := s[1 : len(s)-1]
	for i := 0; i < len(opaque); i++ {
		if c := opaque[i]; c == '"' || c < 0x21 || c == 0x7f {
			return EntityTag{}, false
		}
	}
	tag.Opaque = opaque
	return tag, true
}

// §  8.8.3.2.  Comparison
// §
// §     Strong comparison: two entity tags are equivalent if both are not
// §     weak and their opaque-tags match character-by-character.
func (e EntityTag) StrongMatch(other EntityTag) bool {
	return !e.Weak && !other.Weak && e.Opaque == other.Opaque
}

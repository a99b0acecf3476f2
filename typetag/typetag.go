// Package typetag defines the fixed v1 type-tag vocabulary used by profile
// reports and schema contracts, and the widening lattice over it.
package typetag

import (
	"fmt"
	"strings"
)

// Tag is one of the six v1 type tags.
type Tag string

const (
	String   Tag = "string"
	Integer  Tag = "integer"
	Number   Tag = "number"
	Boolean  Tag = "boolean"
	Date     Tag = "date"
	DateTime Tag = "datetime"
)

// scalarRank orders the non-temporal tags from most specific to most
// general: boolean < integer < number < string. Widening picks the highest
// rank present.
var scalarRank = map[Tag]int{
	Boolean: 0,
	Integer: 1,
	Number:  2,
	String:  3,
}

// Parse parses a type tag. Unknown tags are an error; the v1 vocabulary is
// closed.
func Parse(s string) (Tag, error) {
	t := Tag(strings.TrimSpace(s))
	switch t {
	case String, Integer, Number, Boolean, Date, DateTime:
		return t, nil
	}
	return "", fmt.Errorf("type tag: unknown %q", s)
}

// IsValid reports whether s is a v1 type tag.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// IsTemporal reports whether t is one of the temporal tags (date, datetime).
func IsTemporal(t Tag) bool {
	return t == Date || t == DateTime
}

// Rank returns the scalar widening rank of a non-temporal tag. Temporal
// tags have no scalar rank; ok is false for them and for unknown tags.
func Rank(t Tag) (int, bool) {
	r, ok := scalarRank[t]
	return r, ok
}

// Widen returns the more general of two non-temporal tags. Widening any tag
// with string yields string.
func Widen(a, b Tag) Tag {
	ra, aok := scalarRank[a]
	rb, bok := scalarRank[b]
	if !aok || !bok {
		return String
	}
	if ra >= rb {
		return a
	}
	return b
}

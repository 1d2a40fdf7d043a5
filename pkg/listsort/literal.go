package listsort

import (
	"math/big"
	"strings"
	"time"

	"github.com/matzehuels/rdftree/pkg/rdf"
)

type category int

const (
	categoryOther category = iota
	categoryString
	categoryNumeric
	categoryBoolean
	categoryDate
	categoryDateTime
	categoryTime
)

func categorize(n rdf.Node) category {
	switch {
	case rdf.IsStringType(n.Datatype):
		return categoryString
	case rdf.IsNumericType(n.Datatype):
		return categoryNumeric
	}
	switch n.Datatype {
	case rdf.XSDBoolean:
		return categoryBoolean
	case rdf.XSDDate:
		return categoryDate
	case rdf.XSDDateTime:
		return categoryDateTime
	case rdf.XSDTime:
		return categoryTime
	}
	return categoryOther
}

var layouts = map[category][]string{
	categoryDate:     {"2006-01-02Z07:00", "2006-01-02"},
	categoryDateTime: {time.RFC3339Nano, "2006-01-02T15:04:05.999999999"},
	categoryTime:     {"15:04:05.999999999Z07:00", "15:04:05.999999999"},
}

// CompareLiterals orders two literals by value when they share a value
// space and by lexical form otherwise.
//
// Strings compare by code point, numeric types (integers, decimals, floats
// and doubles alike) by magnitude, booleans false before true, and dates,
// dateTimes and times chronologically. A literal that fails to parse in its
// declared value space, or two literals of different value spaces, fall
// back to the lexical form. Ties are broken by lexical form and then by
// datatype so that only identical literals compare equal.
func CompareLiterals(a, b rdf.Node) int {
	ca, cb := categorize(a), categorize(b)
	if ca == cb {
		if c, ok := compareValue(ca, a.Value, b.Value); ok && c != 0 {
			return c
		}
	}
	if c := strings.Compare(a.Value, b.Value); c != 0 {
		return c
	}
	if c := strings.Compare(a.Datatype, b.Datatype); c != 0 {
		return c
	}
	return strings.Compare(a.Lang, b.Lang)
}

func compareValue(c category, a, b string) (int, bool) {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	switch c {
	case categoryNumeric:
		ra, okA := new(big.Rat).SetString(a)
		rb, okB := new(big.Rat).SetString(b)
		if !okA || !okB {
			return 0, false
		}
		return ra.Cmp(rb), true
	case categoryBoolean:
		ba, okA := parseBool(a)
		bb, okB := parseBool(b)
		if !okA || !okB {
			return 0, false
		}
		switch {
		case ba == bb:
			return 0, true
		case !ba:
			return -1, true
		default:
			return 1, true
		}
	case categoryDate, categoryDateTime, categoryTime:
		ta, okA := parseTime(c, a)
		tb, okB := parseTime(c, b)
		if !okA || !okB {
			return 0, false
		}
		return ta.Compare(tb), true
	}
	return 0, false
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	}
	return false, false
}

func parseTime(c category, s string) (time.Time, bool) {
	for _, layout := range layouts[c] {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

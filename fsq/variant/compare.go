package variant

import (
	"cmp"
	"strings"
)

// CompareKind picks the context kind for comparing a and b: numeric if
// either side is numeric, then datetime, then boolean, else text.
func CompareKind(a, b Value) Kind {
	switch {
	case a.kind.IsNumeric() || b.kind.IsNumeric():
		return Float
	case a.kind == DateTime || b.kind == DateTime:
		return DateTime
	case a.kind == Bool || b.kind == Bool:
		return Bool
	default:
		return String
	}
}

// Compare orders a and b under the given context kind and returns -1, 0 or
// +1. Numbers compare as floats, text lexicographically, booleans with
// false < true, and datetimes chronologically. An unparsable datetime
// orders before every parsable one.
func Compare(a, b Value, as Kind) int {
	switch as {
	case Int, Float:
		return cmp.Compare(a.Float(), b.Float())
	case Bool:
		return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
	case DateTime:
		ta, okA := a.DateTime()
		tb, okB := b.DateTime()
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return -1
		case !okB:
			return 1
		}
		return ta.Compare(tb)
	default:
		return strings.Compare(a.String(), b.String())
	}
}

// Equal reports whether a and b compare equal under their inferred kind.
func Equal(a, b Value) bool {
	return Compare(a, b, CompareKind(a, b)) == 0
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

package query

import (
	"github.com/ZanzyTHEbar/fsquery/fsq/variant"
)

// Match reports whether v satisfies the predicate. Patterns match the text
// form of v. Comparisons coerce the literal to v's kind. Empty and
// unsupported values only satisfy equality with '' and inequality with
// anything else.
func (p Predicate) Match(v variant.Value) bool {
	if v.IsUnsupported() {
		return false
	}
	if v.IsEmpty() {
		switch p.Op {
		case OpEq:
			return p.Literal == ""
		case OpNe:
			return p.Literal != ""
		}
		return false
	}

	switch p.Op {
	case OpLike, OpRx:
		return p.pattern != nil && p.pattern.MatchString(v.String())
	}

	lit := variant.FromString(p.Literal)
	c := variant.Compare(v, lit, variant.CompareKind(v, lit))
	switch p.Op {
	case OpEq:
		return c == 0
	case OpNe:
		return c != 0
	case OpGt:
		return c > 0
	case OpGte:
		return c >= 0
	case OpLt:
		return c < 0
	case OpLte:
		return c <= 0
	}
	return false
}

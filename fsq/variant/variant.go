// Package variant implements the dynamically typed value that flows through
// expression evaluation.
//
// Every kind has a distinguished empty instance meaning "no result of this
// kind". Conversions never fail: an empty or unparsable value converts to the
// zero of the requested type, so one bad row cannot stop a scan.
package variant

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the type tag of a Value.
type Kind uint8

const (
	String Kind = iota
	Int
	Float
	Bool
	DateTime
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case DateTime:
		return "datetime"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// IsNumeric reports whether k orders by number.
func (k Kind) IsNumeric() bool { return k == Int || k == Float }

// Value is a tagged scalar. The zero Value is an empty String.
type Value struct {
	kind        Kind
	empty       bool
	unsupported bool

	s string
	i int64
	f float64
	b bool
	t time.Time
}

func FromString(s string) Value { return Value{kind: String, s: s} }
func FromInt(i int64) Value { return Value{kind: Int, i: i} }
func FromFloat(f float64) Value { return Value{kind: Float, f: f} }
func FromBool(b bool) Value { return Value{kind: Bool, b: b} }
func FromDateTime(t time.Time) Value { return Value{kind: DateTime, t: t} }
func Empty(kind Kind) Value { return Value{kind: kind, empty: true} }

// Unsupported returns an empty value tagged as unavailable on this platform.
func Unsupported(kind Kind) Value {
	return Value{kind: kind, empty: true, unsupported: true}
}

// Kind returns the type tag.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether v carries no result.
func (v Value) IsEmpty() bool { return v.empty || (v.kind == String && v.s == "") }

// IsUnsupported reports whether v is empty because the platform lacks the feature.
func (v Value) IsUnsupported() bool { return v.unsupported }

// String renders v as text; empty values render as "".
func (v Value) String() string {
	if v.empty {
		return ""
	}
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case Bool:
		return strconv.FormatBool(v.b)
	case DateTime:
		return v.t.Format(DatetimeLayout)
	default:
		return v.s
	}
}

// Int converts v to an integer. Text is parsed as an integer, then as a float
// truncated toward zero, and falls back to 0.
func (v Value) Int() int64 {
	if v.empty {
		return 0
	}
	switch v.kind {
	case Int:
		return v.i
	case Float:
		return int64(v.f)
	case Bool:
		if v.b {
			return 1
		}
		return 0
	case DateTime:
		return v.t.Unix()
	default:
		return parseInt(v.s)
	}
}

// Float converts v to a float, falling back to 0.
func (v Value) Float() float64 {
	if v.empty {
		return 0
	}
	switch v.kind {
	case Int:
		return float64(v.i)
	case Float:
		return v.f
	case Bool:
		if v.b {
			return 1
		}
		return 0
	case DateTime:
		return float64(v.t.Unix())
	default:
		return parseFloat(v.s)
	}
}

// Bool converts v to a boolean. Text is true for true/t/1/y/yes/on.
func (v Value) Bool() bool {
	if v.empty {
		return false
	}
	switch v.kind {
	case Int:
		return v.i != 0
	case Float:
		return v.f != 0
	case Bool:
		return v.b
	case DateTime:
		return !v.t.IsZero()
	default:
		return parseBool(v.s)
	}
}

// DateTime converts v to a timestamp. Integers are Unix seconds; text goes
// through ParseDatetime. The flag is false when no timestamp is available.
func (v Value) DateTime() (time.Time, bool) {
	if v.empty {
		return time.Time{}, false
	}
	switch v.kind {
	case DateTime:
		return v.t, true
	case Int:
		return time.Unix(v.i, 0), true
	case String:
		t, err := ParseDatetime(v.s)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}

func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int64(f)
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1", "y", "yes", "on":
		return true
	}
	return false
}

// ParseNumber reports whether s is numeric text, returning its float value.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

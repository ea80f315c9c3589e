package variant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		text  string
		i     int64
		f     float64
		b     bool
	}{
		{"string int", FromString("42"), "42", 42, 42, false},
		{"string float", FromString("3.75"), "3.75", 3, 3.75, false},
		{"string garbage", FromString("abc"), "abc", 0, 0, false},
		{"string yes", FromString("Yes"), "Yes", 0, 0, true},
		{"string one", FromString("1"), "1", 1, 1, true},
		{"int", FromInt(-7), "-7", -7, -7, true},
		{"float", FromFloat(2.5), "2.5", 2, 2.5, true},
		{"float whole", FromFloat(2), "2", 2, 2, true},
		{"bool true", FromBool(true), "true", 1, 1, true},
		{"bool false", FromBool(false), "false", 0, 0, false},
		{"empty string", Empty(String), "", 0, 0, false},
		{"empty int", Empty(Int), "", 0, 0, false},
		{"empty bool", Empty(Bool), "", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.text, tt.value.String())
			assert.Equal(t, tt.i, tt.value.Int())
			assert.Equal(t, tt.f, tt.value.Float())
			assert.Equal(t, tt.b, tt.value.Bool())
		})
	}
}

func TestEmptiness(t *testing.T) {
	assert.True(t, Value{}.IsEmpty())
	assert.Equal(t, String, Value{}.Kind())
	assert.True(t, Empty(Int).IsEmpty())
	assert.Equal(t, Int, Empty(Int).Kind())
	assert.False(t, FromInt(0).IsEmpty())
	assert.False(t, FromBool(false).IsEmpty())

	u := Unsupported(Bool)
	assert.True(t, u.IsEmpty())
	assert.True(t, u.IsUnsupported())
	assert.Equal(t, Bool, u.Kind())
	assert.False(t, Empty(Bool).IsUnsupported())
}

func TestDateTime(t *testing.T) {
	for _, s := range []string{"2023-10-01", "2023-10-01 13:45:00", "2023:10:01 13:45:00", "2023-10-01T13:45:00"} {
		ts, err := ParseDatetime(s)
		require.NoError(t, err, s)
		assert.Equal(t, 2023, ts.Year(), s)
		assert.Equal(t, time.October, ts.Month(), s)
		assert.Equal(t, 1, ts.Day(), s)
	}

	_, err := ParseDatetime("not a date")
	assert.Error(t, err)
	_, err = ParseDatetime("   ")
	assert.Error(t, err)

	ts := time.Date(2024, 2, 29, 8, 30, 0, 0, time.Local)
	v := FromDateTime(ts)
	assert.Equal(t, "2024-02-29 08:30:00", v.String())
	got, ok := FromString("2024-02-29 08:30:00").DateTime()
	require.True(t, ok)
	assert.True(t, ts.Equal(got))

	_, ok = FromString("garbage").DateTime()
	assert.False(t, ok)
	_, ok = Empty(DateTime).DateTime()
	assert.False(t, ok)
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{"numeric text vs int", FromString("10"), FromInt(9), 1},
		{"float vs int equal", FromFloat(3), FromInt(3), 0},
		{"bool false < true", FromBool(false), FromString("yes"), -1},
		{"text", FromString("apple"), FromString("banana"), -1},
		{"garbage text vs number", FromString("abc"), FromInt(0), 0},
		{"datetime", FromString("2023-01-01"), FromDateTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)), -1},
		{"unparsable datetime first", FromString("never"), FromDateTime(time.Now()), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b, CompareKind(tt.a, tt.b)))
		})
	}

	// the context kind decides: numeric text orders by number only when asked to
	assert.Equal(t, -1, Compare(FromString("9"), FromString("10"), Float))
	assert.Equal(t, 1, Compare(FromString("9"), FromString("10"), String))
	assert.True(t, Equal(FromString("1.0"), FromInt(1)))
	assert.False(t, Equal(FromString("a"), FromString("b")))
}

func TestParseNumber(t *testing.T) {
	f, ok := ParseNumber(" 1.5 ")
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	_, ok = ParseNumber("x")
	assert.False(t, ok)
}

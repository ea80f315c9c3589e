package function

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rowsOf(key string, values ...string) []Row {
	rows := make([]Row, 0, len(values))
	for _, v := range values {
		rows = append(rows, Row{key: v, "other": "ignored"})
	}
	return rows
}

func parse(t *testing.T, s string) float64 {
	t.Helper()
	f, err := strconv.ParseFloat(s, 64)
	assert.NoError(t, err)
	return f
}

func TestAggregateBasics(t *testing.T) {
	rows := rowsOf("size", "1", "2", "3")

	assert.Equal(t, "3", EvaluateAggregate(Count, rows, "size", ""))
	assert.Equal(t, "6", EvaluateAggregate(Sum, rows, "size", ""))
	assert.Equal(t, "2", EvaluateAggregate(Avg, rows, "size", ""))
	assert.Equal(t, "1", EvaluateAggregate(Min, rows, "size", ""))
	assert.Equal(t, "3", EvaluateAggregate(Max, rows, "size", ""))

	assert.InDelta(t, 2.0/3.0, parse(t, EvaluateAggregate(VarPop, rows, "size", "")), 1e-12)
	assert.InDelta(t, 1.0, parse(t, EvaluateAggregate(VarSamp, rows, "size", "")), 1e-12)
	assert.InDelta(t, 0.816496580927726, parse(t, EvaluateAggregate(StdDevPop, rows, "size", "")), 1e-12)
	assert.InDelta(t, 1.0, parse(t, EvaluateAggregate(StdDevSamp, rows, "size", "")), 1e-12)
}

func TestAggregateUnparsable(t *testing.T) {
	rows := rowsOf("v", "4", "x", "-2", "")

	assert.Equal(t, "4", EvaluateAggregate(Count, rows, "v", ""))
	assert.Equal(t, "4", EvaluateAggregate(Sum, rows, "v", ""), "negative and junk values are skipped")
	assert.Equal(t, "-2", EvaluateAggregate(Min, rows, "v", ""))
	assert.Equal(t, "4", EvaluateAggregate(Max, rows, "v", ""))
	// (4 + -2) / 4 rows
	assert.Equal(t, "0.5", EvaluateAggregate(Avg, rows, "v", ""))

	none := rowsOf("v", "a", "b")
	assert.Equal(t, "0", EvaluateAggregate(Min, none, "v", ""))
	assert.Equal(t, "0", EvaluateAggregate(Max, none, "v", ""))
	assert.Equal(t, "0", EvaluateAggregate(Sum, none, "v", ""))
	assert.Equal(t, "0", EvaluateAggregate(VarPop, none, "v", ""))

	assert.Equal(t, "0", EvaluateAggregate(Sum, rows, "missing", ""))
}

func TestAggregateAvgDoesNotTruncate(t *testing.T) {
	assert.Equal(t, "1.5", EvaluateAggregate(Avg, rowsOf("n", "1", "2"), "n", ""))
	assert.Equal(t, "0.25", EvaluateAggregate(Avg, rowsOf("n", "0.5", "0", "0", "0.5"), "n", ""))
}

func TestAggregateEdgeCases(t *testing.T) {
	single := rowsOf("n", "5")
	assert.Equal(t, "0", EvaluateAggregate(StdDevSamp, single, "n", ""))
	assert.Equal(t, "0", EvaluateAggregate(VarSamp, single, "n", ""))

	assert.Equal(t, "0", EvaluateAggregate(Avg, nil, "n", ""))
	assert.Equal(t, "0", EvaluateAggregate(Count, nil, "n", ""))
	for _, fn := range []Function{StdDevPop, StdDevSamp, VarPop, VarSamp} {
		assert.Equal(t, "", EvaluateAggregate(fn, nil, "n", "ignored"), "%s", fn)
	}

	assert.Equal(t, "fallback", EvaluateAggregate(None, single, "n", "fallback"))
	assert.Equal(t, "", EvaluateAggregate(None, single, "n", ""))
	assert.Equal(t, "first", EvaluateAggregate(Lower, single, "n", "first"))
}

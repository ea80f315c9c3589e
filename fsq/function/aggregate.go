package function

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Row is one buffered result row, keyed by output column.
type Row = map[string]string

// EvaluateAggregate reduces rows to one cell by applying fn to the values
// stored under key. For anything but an aggregate function it returns def.
//
// Unparsable values are skipped; an empty buffer yields "0" for avg and ""
// for the deviation and variance functions.
func EvaluateAggregate(fn Function, rows []Row, key string, def string) string {
	switch fn {
	case Min, Max:
		ints := collectInts(rows, key)
		if len(ints) == 0 {
			return "0"
		}
		best := ints[0]
		for _, v := range ints[1:] {
			if (fn == Min && v < best) || (fn == Max && v > best) {
				best = v
			}
		}
		return strconv.FormatInt(best, 10)

	case Sum:
		return strconv.FormatUint(sumUnsigned(rows, key), 10)

	case Count:
		return strconv.Itoa(len(rows))

	case Avg:
		if len(rows) == 0 {
			return "0"
		}
		return formatFloat(mean(rows, key))

	case StdDevPop, StdDevSamp, VarPop, VarSamp:
		if len(rows) == 0 {
			return ""
		}
		denom := len(rows)
		if fn == StdDevSamp || fn == VarSamp {
			denom = max(len(rows)-1, 1)
		}
		v := variance(rows, key, denom)
		if fn == StdDevPop || fn == StdDevSamp {
			v = math.Sqrt(v)
		}
		return formatFloat(v)
	}
	return def
}

func collectInts(rows []Row, key string) []int64 {
	out := make([]int64, 0, len(rows))
	for _, row := range rows {
		if v, err := strconv.ParseInt(strings.TrimSpace(row[key]), 10, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func collectFloats(rows []Row, key string) []float64 {
	out := make([]float64, 0, len(rows))
	for _, row := range rows {
		if v, err := strconv.ParseFloat(strings.TrimSpace(row[key]), 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

// sumUnsigned adds every value under key that parses as a non-negative integer.
func sumUnsigned(rows []Row, key string) uint64 {
	var sum uint64
	for _, row := range rows {
		if v, err := strconv.ParseUint(strings.TrimSpace(row[key]), 10, 64); err == nil {
			sum += v
		}
	}
	return sum
}

// mean divides the sum of the parseable values by the number of rows, not
// by the number of parseable values.
func mean(rows []Row, key string) float64 {
	if len(rows) == 0 {
		return 0
	}
	return floats.Sum(collectFloats(rows, key)) / float64(len(rows))
}

// variance is the two-pass estimate: squared deviations from mean, over the
// parseable values, divided by denom.
func variance(rows []Row, key string, denom int) float64 {
	xs := collectFloats(rows, key)
	if len(xs) == 0 {
		return 0
	}
	floats.AddConst(-mean(rows, key), xs)
	return floats.Dot(xs, xs) / float64(denom)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

package function

import (
	"math"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/fsquery/fsq/variant"
)

func evalNumeric(fn Function, arg string, args []string) variant.Value {
	switch fn {
	case Bin, Hex, Oct:
		n, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			return variant.Empty(variant.String)
		}
		base := map[Function]int{Bin: 2, Hex: 16, Oct: 8}[fn]
		// negative numbers render as their two's complement bit pattern
		return variant.FromString(strconv.FormatUint(uint64(n), base))
	}

	x, ok := variant.ParseNumber(arg)
	if !ok {
		return variant.Empty(variant.Float)
	}

	switch fn {
	case Abs:
		return variant.FromFloat(math.Abs(x))
	case Power:
		exp, ok := optionalNumber(args, 0)
		if !ok {
			return variant.Empty(variant.Float)
		}
		return variant.FromFloat(math.Pow(x, exp))
	case Sqrt:
		return variant.FromFloat(math.Sqrt(x))
	case Log:
		base, ok := optionalNumber(args, 10)
		if !ok {
			return variant.Empty(variant.Float)
		}
		return variant.FromFloat(math.Log(x) / math.Log(base))
	case Ln:
		return variant.FromFloat(math.Log(x))
	case Exp:
		return variant.FromFloat(math.Exp(x))
	case Least:
		for _, a := range args {
			if v, ok := variant.ParseNumber(a); ok {
				x = math.Min(x, v)
			}
		}
		return variant.FromFloat(x)
	case Greatest:
		for _, a := range args {
			if v, ok := variant.ParseNumber(a); ok {
				x = math.Max(x, v)
			}
		}
		return variant.FromFloat(x)
	}
	return variant.Empty(variant.Float)
}

// optionalNumber parses args[0], returning def when there is none.
func optionalNumber(args []string, def float64) (float64, bool) {
	if len(args) == 0 {
		return def, true
	}
	return variant.ParseNumber(args[0])
}

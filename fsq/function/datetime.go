package function

import (
	"github.com/ZanzyTHEbar/fsquery/fsq/variant"
)

func evalDatePart(fn Function, arg string) variant.Value {
	t, err := variant.ParseDatetime(arg)
	if err != nil {
		return variant.Empty(variant.Int)
	}
	switch fn {
	case Day:
		return variant.FromInt(int64(t.Day()))
	case Month:
		return variant.FromInt(int64(t.Month()))
	case Year:
		return variant.FromInt(int64(t.Year()))
	case DayOfWeek:
		// Sunday is 1
		return variant.FromInt(int64(t.Weekday()) + 1)
	}
	return variant.Empty(variant.Int)
}

package function

import (
	"math"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/fsquery/fsq/variant"

	"github.com/dustin/go-humanize"
)

func formatSizeValue(arg string, args []string) variant.Value {
	size, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return variant.Empty(variant.String)
	}
	modifier := ""
	if len(args) > 0 {
		modifier = args[0]
	}
	return variant.FromString(formatBytes(size, modifier))
}

const maxPrecision = 20

type sizeUnit struct {
	base   float64
	suffix string
}

var sizeUnits = map[string]sizeUnit{
	"b":  {1, "B"},
	"k":  {1 << 10, "KiB"},
	"m":  {1 << 20, "MiB"},
	"g":  {1 << 30, "GiB"},
	"t":  {1 << 40, "TiB"},
	"p":  {1 << 50, "PiB"},
	"e":  {1 << 60, "EiB"},
	"kb": {1e3, "KB"},
	"mb": {1e6, "MB"},
	"gb": {1e9, "GB"},
	"tb": {1e12, "TB"},
	"pb": {1e15, "PB"},
	"eb": {1e18, "EB"},
}

// formatBytes renders a byte count. The modifier is
//
//	[%.N][ ]unit
//
// where N is the number of decimals, capped at maxPrecision (trailing zeros
// are trimmed when N is absent or unreadable, up to two), the optional space
// separates number and suffix, and unit is b for bytes, k/m/g/t/p/e for
// binary units (KiB...) or kb/mb/... for decimal units (KB...). An empty or
// unrecognised modifier picks a binary unit automatically.
func formatBytes(size uint64, modifier string) string {
	precision := -1
	m := modifier
	if rest, ok := strings.CutPrefix(m, "%."); ok {
		digits := len(rest) - len(strings.TrimLeft(rest, "0123456789"))
		if digits > 0 {
			if n, err := strconv.Atoi(rest[:digits]); err == nil {
				precision = min(n, maxPrecision)
			}
		}
		m = rest[digits:]
	}
	sep := ""
	if strings.HasPrefix(m, " ") {
		sep = " "
		m = strings.TrimLeft(m, " ")
	}

	unit, ok := sizeUnits[strings.ToLower(m)]
	if !ok {
		return humanize.IBytes(size)
	}

	value := float64(size) / unit.base
	var num string
	if precision >= 0 {
		num = strconv.FormatFloat(value, 'f', precision, 64)
	} else {
		num = strconv.FormatFloat(math.Round(value*100)/100, 'f', -1, 64)
	}
	return num + sep + unit.suffix
}

func formatTimeValue(arg string) variant.Value {
	secs, err := strconv.ParseUint(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return variant.Empty(variant.String)
	}
	return variant.FromString(FormatSeconds(secs))
}

// FormatSeconds renders a duration as space separated day, hour, minute and
// second components, omitting zero components: 3661 is "1h 1m 1s".
func FormatSeconds(secs uint64) string {
	if secs == 0 {
		return "0s"
	}
	parts := make([]string, 0, 4)
	for _, u := range []struct {
		n      uint64
		suffix string
	}{{86400, "d"}, {3600, "h"}, {60, "m"}, {1, "s"}} {
		if q := secs / u.n; q > 0 {
			parts = append(parts, strconv.FormatUint(q, 10)+u.suffix)
			secs %= u.n
		}
	}
	return strings.Join(parts, " ")
}

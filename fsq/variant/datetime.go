package variant

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const (
	// DatetimeLayout is how timestamps render as text.
	DatetimeLayout = "2006-01-02 15:04:05"
	// DateLayout is how calendar dates render as text.
	DateLayout = "2006-01-02"
)

var datetimeLayouts = []string{
	DatetimeLayout,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	DateLayout,
	"2006:01:02 15:04:05", // EXIF
	"2006-01",
	"2006",
	"02.01.2006",
	"02.01.2006 15:04:05",
}

// ParseDatetime parses s as a local timestamp. Common layouts are tried
// first; anything else goes through cast's broader layout list.
func ParseDatetime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("cannot parse date: empty input")
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	t, err := cast.StringToDateInDefaultLocation(s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse date: %s", s)
	}
	return t, nil
}

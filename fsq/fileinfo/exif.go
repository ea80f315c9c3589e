package fileinfo

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	exiflib "github.com/rwcarlsen/goexif/exif"
)

// Exif holds the EXIF tags exposed as attributes. Missing tags stay empty.
type Exif struct {
	DateTime  time.Time
	Altitude  string
	Latitude  string
	Longitude string
	Make      string
	Model     string
	Software  string
	Version   string
}

// ExtractEXIF decodes the EXIF block of the image at path.
func ExtractEXIF(path string) (*Exif, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exiflib.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("no exif data in %s: %w", path, err)
	}

	out := &Exif{
		Make:     exifString(x, exiflib.Make),
		Model:    exifString(x, exiflib.Model),
		Software: exifString(x, exiflib.Software),
	}
	if t, err := x.DateTime(); err == nil {
		out.DateTime = t
	}
	if lat, lng, err := x.LatLong(); err == nil {
		out.Latitude = strconv.FormatFloat(lat, 'f', -1, 64)
		out.Longitude = strconv.FormatFloat(lng, 'f', -1, 64)
	}
	if tag, err := x.Get(exiflib.GPSAltitude); err == nil {
		if num, den, err := tag.Rat2(0); err == nil && den != 0 {
			alt := float64(num) / float64(den)
			// ref 1 is below sea level
			if ref, err := x.Get(exiflib.GPSAltitudeRef); err == nil {
				if r, err := ref.Int(0); err == nil && r == 1 {
					alt = -alt
				}
			}
			out.Altitude = strconv.FormatFloat(alt, 'f', -1, 64)
		}
	}
	if tag, err := x.Get(exiflib.ExifVersion); err == nil {
		out.Version = strings.TrimRight(string(tag.Val), "\x00")
	}
	return out, nil
}

func exifString(x *exiflib.Exif, name exiflib.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}

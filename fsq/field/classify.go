package field

import (
	roaring "github.com/RoaringBitmap/roaring"
)

// IsNumeric reports whether values of f compare numerically.
func (f Field) IsNumeric() bool { return f.Valid() && catalog[f].kind == kindNumeric }

// IsDatetime reports whether values of f are timestamps.
func (f Field) IsDatetime() bool { return f.Valid() && catalog[f].kind == kindDatetime }

// IsImageField reports whether f is read from an image header.
func (f Field) IsImageField() bool { return f.Valid() && catalog[f].source == srcImage }

// IsAudioField reports whether f is read from audio tags or frame headers.
func (f Field) IsAudioField() bool { return f.Valid() && catalog[f].source == srcAudio }

// IsExifField reports whether f is read from an EXIF block.
func (f Field) IsExifField() bool { return f.Valid() && catalog[f].source == srcExif }

// IsCategory reports whether f is answered by an extension lookup.
func (f Field) IsCategory() bool { return f.Valid() && catalog[f].source == srcCategory }

// NeedsMetadata reports whether answering f requires filesystem metadata
// beyond the entry's name and path. Media and EXIF attributes have their own
// extraction path and report false.
func (f Field) NeedsMetadata() bool { return f.Valid() && catalog[f].source == srcStat }

// Set is a compact set of fields, used to record which attributes a query
// touches so the scanner can decide per query which extractors to run.
type Set struct {
	bm *roaring.Bitmap
}

// NewSet returns a set holding fields.
func NewSet(fields ...Field) *Set {
	s := &Set{bm: roaring.New()}
	for _, f := range fields {
		s.Add(f)
	}
	return s
}

// Add inserts f; invalid fields are ignored.
func (s *Set) Add(f Field) {
	if f.Valid() {
		s.bm.Add(uint32(f))
	}
}

// Contains reports whether f is in the set.
func (s *Set) Contains(f Field) bool {
	return f.Valid() && s.bm.Contains(uint32(f))
}

// Len returns the number of fields in the set.
func (s *Set) Len() int { return int(s.bm.GetCardinality()) }

// Fields returns the members in declaration order.
func (s *Set) Fields() []Field {
	out := make([]Field, 0, s.Len())
	it := s.bm.Iterator()
	for it.HasNext() {
		out = append(out, Field(it.Next()))
	}
	return out
}

// AnyMetadata reports whether some member needs a stat call.
func (s *Set) AnyMetadata() bool { return s.intersects(metadataFields) }

// AnyExif reports whether some member is an EXIF attribute.
func (s *Set) AnyExif() bool { return s.intersects(exifFields) }

// AnyMedia reports whether some member is an image or audio attribute.
func (s *Set) AnyMedia() bool { return s.intersects(mediaFields) }

func (s *Set) intersects(other *roaring.Bitmap) bool {
	return s.bm.Intersects(other)
}

var (
	metadataFields = classBitmap(Field.NeedsMetadata)
	exifFields     = classBitmap(Field.IsExifField)
	mediaFields    = classBitmap(func(f Field) bool { return f.IsImageField() || f.IsAudioField() })
)

func classBitmap(pred func(Field) bool) *roaring.Bitmap {
	bm := roaring.New()
	for f := Field(0); f < numFields; f++ {
		if pred(f) {
			bm.Add(uint32(f))
		}
	}
	return bm
}

package fileinfo

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/fsquery/fsq/field"
	"github.com/ZanzyTHEbar/fsquery/fsq/variant"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
)

// Record renders attributes of one row. Metadata is fetched on first use and
// kept for the lifetime of the record, so a row never stats or decodes the
// same file twice. A Record is not safe for concurrent use.
type Record struct {
	Entry *Entry
	Info  *Info

	logger zerolog.Logger

	stat      *Stat
	statDone  bool
	exif      *Exif
	exifDone  bool
	media     *Media
	mediaDone bool
}

// NewRecord prepares a row. Exactly one of entry and info is normally set.
func NewRecord(entry *Entry, info *Info, logger zerolog.Logger) *Record {
	return &Record{Entry: entry, Info: info, logger: logger}
}

// Name is the base name of the row.
func (r *Record) Name() string {
	if r.Info != nil {
		return r.Info.Name
	}
	if r.Entry != nil {
		return r.Entry.Name()
	}
	return ""
}

// Path is the row's path as walked.
func (r *Record) Path() string {
	if r.Info != nil {
		return r.Info.Path
	}
	if r.Entry != nil {
		return r.Entry.Path
	}
	return ""
}

// Text renders f as it appears in output.
func (r *Record) Text(f field.Field) string {
	return r.Value(f).String()
}

// Key is the value used when comparing f: like Value, except that the
// formatted size compares by byte count.
func (r *Record) Key(f field.Field) variant.Value {
	if f == field.FormattedSize {
		return r.Value(field.Size)
	}
	return r.Value(f)
}

// Value returns f as a typed value; unavailable attributes are empty.
func (r *Record) Value(f field.Field) variant.Value {
	switch {
	case f.IsCategory():
		return variant.FromBool(CategoryOf(r.Name()) == categoryFields[f])
	case f.IsExifField():
		return r.exifValue(f)
	case f.IsImageField() || f.IsAudioField():
		return r.mediaValue(f)
	}

	switch f {
	case field.Name:
		return variant.FromString(r.Name())
	case field.Path:
		return variant.FromString(r.Path())
	case field.AbsPath:
		abs, err := filepath.Abs(r.Path())
		if err != nil {
			return variant.Empty(variant.String)
		}
		return variant.FromString(abs)
	case field.IsHidden:
		return variant.FromBool(strings.HasPrefix(r.Name(), "."))
	}

	st := r.Stat()
	if st == nil {
		return variant.Empty(emptyKindOf(f))
	}
	mode := st.Mode

	switch f {
	case field.Size:
		return variant.FromInt(int64(st.Size))
	case field.FormattedSize:
		return variant.FromString(humanize.IBytes(st.Size))
	case field.Uid:
		if !st.HasOwner {
			return variant.Empty(variant.Int)
		}
		return variant.FromInt(int64(st.Uid))
	case field.Gid:
		if !st.HasOwner {
			return variant.Empty(variant.Int)
		}
		return variant.FromInt(int64(st.Gid))
	case field.User:
		if !st.HasOwner {
			return variant.Empty(variant.String)
		}
		return variant.FromString(UserName(st.Uid))
	case field.Group:
		if !st.HasOwner {
			return variant.Empty(variant.String)
		}
		return variant.FromString(GroupName(st.Gid))
	case field.Created:
		return timeValue(st.Created)
	case field.Accessed:
		return timeValue(st.Accessed)
	case field.Modified:
		return timeValue(st.Modified)
	case field.IsDir:
		return variant.FromBool(mode.IsDir())
	case field.IsFile:
		return variant.FromBool(mode.IsRegular())
	case field.IsSymlink:
		return variant.FromBool(mode&fs.ModeSymlink != 0)
	case field.IsPipe:
		return variant.FromBool(mode&fs.ModeNamedPipe != 0)
	case field.IsCharacterDevice:
		return variant.FromBool(mode&fs.ModeCharDevice != 0)
	case field.IsBlockDevice:
		return variant.FromBool(mode&fs.ModeDevice != 0 && mode&fs.ModeCharDevice == 0)
	case field.IsSocket:
		return variant.FromBool(mode&fs.ModeSocket != 0)
	case field.Mode:
		return variant.FromString(mode.String())
	case field.UserRead:
		return variant.FromBool(mode&0o400 != 0)
	case field.UserWrite:
		return variant.FromBool(mode&0o200 != 0)
	case field.UserExec:
		return variant.FromBool(mode&0o100 != 0)
	case field.GroupRead:
		return variant.FromBool(mode&0o040 != 0)
	case field.GroupWrite:
		return variant.FromBool(mode&0o020 != 0)
	case field.GroupExec:
		return variant.FromBool(mode&0o010 != 0)
	case field.OtherRead:
		return variant.FromBool(mode&0o004 != 0)
	case field.OtherWrite:
		return variant.FromBool(mode&0o002 != 0)
	case field.OtherExec:
		return variant.FromBool(mode&0o001 != 0)
	case field.Suid:
		return variant.FromBool(mode&fs.ModeSetuid != 0)
	case field.Sgid:
		return variant.FromBool(mode&fs.ModeSetgid != 0)
	case field.HasXattrs:
		return r.hasXattrs()
	case field.IsShebang:
		return r.isShebang(mode)
	case field.Sha1:
		return r.sha1(mode)
	}
	return variant.Empty(variant.String)
}

// Stat returns the row's metadata, loading it once. Archive members are
// served from their pre-extracted record.
func (r *Record) Stat() *Stat {
	if r.statDone {
		return r.stat
	}
	r.statDone = true

	switch {
	case r.Info != nil:
		r.stat = &Stat{Size: r.Info.Size, Mode: r.Info.Mode, Modified: r.Info.Modified}
		if r.Info.IsDir {
			r.stat.Mode |= fs.ModeDir
		}
	case r.Entry != nil:
		st, err := Lstat(r.Entry.Path)
		if err != nil {
			r.logger.Debug().Err(err).Msg("stat failed")
			return nil
		}
		r.stat = st
	}
	return r.stat
}

func (r *Record) onDisk() bool { return r.Info == nil && r.Entry != nil }

func (r *Record) hasXattrs() variant.Value {
	if !r.onDisk() {
		return variant.Empty(variant.Bool)
	}
	ok, err := HasXattrs(r.Entry.Path)
	switch {
	case errors.Is(err, ErrXattrUnsupported):
		return variant.Unsupported(variant.Bool)
	case err != nil:
		return variant.Empty(variant.Bool)
	}
	return variant.FromBool(ok)
}

func (r *Record) isShebang(mode fs.FileMode) variant.Value {
	if !r.onDisk() || !mode.IsRegular() {
		return variant.FromBool(false)
	}
	f, err := os.Open(r.Entry.Path)
	if err != nil {
		return variant.Empty(variant.Bool)
	}
	defer f.Close()
	head := make([]byte, 2)
	if _, err := io.ReadFull(f, head); err != nil {
		return variant.FromBool(false)
	}
	return variant.FromBool(string(head) == "#!")
}

func (r *Record) sha1(mode fs.FileMode) variant.Value {
	if !r.onDisk() || !mode.IsRegular() {
		return variant.Empty(variant.String)
	}
	sum, err := Checksum(r.Entry.Path, "sha1")
	if err != nil {
		r.logger.Debug().Err(err).Msg("checksum failed")
		return variant.Empty(variant.String)
	}
	return variant.FromString(sum)
}

func (r *Record) exifValue(f field.Field) variant.Value {
	if !r.exifDone {
		r.exifDone = true
		if r.onDisk() && CategoryOf(r.Name()) == CategoryImage {
			x, err := ExtractEXIF(r.Entry.Path)
			if err != nil {
				r.logger.Debug().Err(err).Msg("exif")
			}
			r.exif = x
		}
	}
	if r.exif == nil {
		return variant.Empty(emptyKindOf(f))
	}

	x := r.exif
	switch f {
	case field.ExifDateTime:
		return timeValue(x.DateTime)
	case field.ExifGpsAltitude:
		return variant.FromString(x.Altitude)
	case field.ExifGpsLatitude:
		return variant.FromString(x.Latitude)
	case field.ExifGpsLongitude:
		return variant.FromString(x.Longitude)
	case field.ExifMake:
		return variant.FromString(x.Make)
	case field.ExifModel:
		return variant.FromString(x.Model)
	case field.ExifSoftware:
		return variant.FromString(x.Software)
	case field.ExifVersion:
		return variant.FromString(x.Version)
	}
	return variant.Empty(variant.String)
}

func (r *Record) mediaValue(f field.Field) variant.Value {
	if !r.mediaDone {
		r.mediaDone = true
		if r.onDisk() {
			var (
				m   *Media
				err error
			)
			switch CategoryOf(r.Name()) {
			case CategoryImage:
				m, err = ExtractImage(r.Entry.Path)
			case CategoryAudio:
				m, err = ExtractAudio(r.Entry.Path)
			}
			if err != nil {
				r.logger.Debug().Err(err).Msg("media")
			}
			r.media = m
		}
	}
	m := r.media
	if m == nil {
		return variant.Empty(emptyKindOf(f))
	}

	switch f {
	case field.Width:
		return positive(m.Width)
	case field.Height:
		return positive(m.Height)
	case field.Bitrate:
		return positive(m.Bitrate)
	case field.Freq:
		return positive(m.Freq)
	case field.Year:
		return positive(m.Year)
	case field.Title:
		return variant.FromString(m.Title)
	case field.Artist:
		return variant.FromString(m.Artist)
	case field.Album:
		return variant.FromString(m.Album)
	case field.Genre:
		return variant.FromString(m.Genre)
	}
	return variant.Empty(variant.String)
}

var categoryFields = map[field.Field]Category{
	field.IsArchive: CategoryArchive,
	field.IsAudio:   CategoryAudio,
	field.IsBook:    CategoryBook,
	field.IsDoc:     CategoryDoc,
	field.IsImage:   CategoryImage,
	field.IsSource:  CategorySource,
	field.IsVideo:   CategoryVideo,
}

func emptyKindOf(f field.Field) variant.Kind {
	switch {
	case f.IsNumeric():
		return variant.Int
	case f.IsDatetime():
		return variant.DateTime
	default:
		return variant.String
	}
}

func timeValue(t time.Time) variant.Value {
	if t.IsZero() {
		return variant.Empty(variant.DateTime)
	}
	return variant.FromDateTime(t.Local())
}

func positive(n int) variant.Value {
	if n <= 0 {
		return variant.Empty(variant.Int)
	}
	return variant.FromInt(int64(n))
}

// Package field is the catalog of queryable file attributes.
//
// Every attribute is a variant of the closed Field enumeration. Names typed
// by users are mapped onto variants with Resolve, which is case-insensitive
// and fails with an *UnknownFieldError for anything outside the alias table.
package field

import (
	"errors"
	"fmt"
	"strings"

	"github.com/armon/go-radix"
)

// Field identifies one queryable attribute of a filesystem entry.
type Field int

const (
	Name Field = iota
	Path
	AbsPath
	Size
	FormattedSize
	Uid
	Gid
	User
	Group
	Created
	Accessed
	Modified
	IsDir
	IsFile
	IsSymlink
	IsPipe
	IsCharacterDevice
	IsBlockDevice
	IsSocket
	Mode
	UserRead
	UserWrite
	UserExec
	GroupRead
	GroupWrite
	GroupExec
	OtherRead
	OtherWrite
	OtherExec
	Suid
	Sgid
	IsHidden
	HasXattrs
	IsShebang
	Width
	Height
	Bitrate
	Freq
	Title
	Artist
	Album
	Year
	Genre
	ExifDateTime
	ExifGpsAltitude
	ExifGpsLatitude
	ExifGpsLongitude
	ExifMake
	ExifModel
	ExifSoftware
	ExifVersion
	IsArchive
	IsAudio
	IsBook
	IsDoc
	IsImage
	IsSource
	IsVideo
	Sha1

	numFields
)

type kind uint8

const (
	kindPlain kind = iota
	kindNumeric
	kindDatetime
)

type source uint8

const (
	srcEntry    source = iota // answerable from the directory entry alone
	srcStat                   // needs lstat and friends
	srcImage                  // image header
	srcAudio                  // audio tags / frame header
	srcExif                   // EXIF block
	srcCategory               // extension lookup
)

type def struct {
	id      string
	aliases []string
	kind    kind
	source  source
}

// catalog is indexed by Field; the array length pins it to numFields.
var catalog = [numFields]def{
	Name:              {"Name", []string{"name"}, kindPlain, srcEntry},
	Path:              {"Path", []string{"path"}, kindPlain, srcEntry},
	AbsPath:           {"AbsPath", []string{"abspath"}, kindPlain, srcEntry},
	Size:              {"Size", []string{"size"}, kindNumeric, srcStat},
	FormattedSize:     {"FormattedSize", []string{"fsize", "hsize"}, kindNumeric, srcStat},
	Uid:               {"Uid", []string{"uid"}, kindNumeric, srcStat},
	Gid:               {"Gid", []string{"gid"}, kindNumeric, srcStat},
	User:              {"User", []string{"user"}, kindPlain, srcStat},
	Group:             {"Group", []string{"group"}, kindPlain, srcStat},
	Created:           {"Created", []string{"created"}, kindDatetime, srcStat},
	Accessed:          {"Accessed", []string{"accessed"}, kindDatetime, srcStat},
	Modified:          {"Modified", []string{"modified"}, kindDatetime, srcStat},
	IsDir:             {"IsDir", []string{"is_dir"}, kindPlain, srcStat},
	IsFile:            {"IsFile", []string{"is_file"}, kindPlain, srcStat},
	IsSymlink:         {"IsSymlink", []string{"is_symlink"}, kindPlain, srcStat},
	IsPipe:            {"IsPipe", []string{"is_pipe", "is_fifo"}, kindPlain, srcStat},
	IsCharacterDevice: {"IsCharacterDevice", []string{"is_char", "is_character"}, kindPlain, srcStat},
	IsBlockDevice:     {"IsBlockDevice", []string{"is_block"}, kindPlain, srcStat},
	IsSocket:          {"IsSocket", []string{"is_socket"}, kindPlain, srcStat},
	Mode:              {"Mode", []string{"mode"}, kindPlain, srcStat},
	UserRead:          {"UserRead", []string{"user_read"}, kindPlain, srcStat},
	UserWrite:         {"UserWrite", []string{"user_write"}, kindPlain, srcStat},
	UserExec:          {"UserExec", []string{"user_exec"}, kindPlain, srcStat},
	GroupRead:         {"GroupRead", []string{"group_read"}, kindPlain, srcStat},
	GroupWrite:        {"GroupWrite", []string{"group_write"}, kindPlain, srcStat},
	GroupExec:         {"GroupExec", []string{"group_exec"}, kindPlain, srcStat},
	OtherRead:         {"OtherRead", []string{"other_read"}, kindPlain, srcStat},
	OtherWrite:        {"OtherWrite", []string{"other_write"}, kindPlain, srcStat},
	OtherExec:         {"OtherExec", []string{"other_exec"}, kindPlain, srcStat},
	Suid:              {"Suid", []string{"suid"}, kindPlain, srcStat},
	Sgid:              {"Sgid", []string{"sgid"}, kindPlain, srcStat},
	IsHidden:          {"IsHidden", []string{"is_hidden"}, kindPlain, srcStat},
	HasXattrs:         {"HasXattrs", []string{"has_xattrs"}, kindPlain, srcStat},
	IsShebang:         {"IsShebang", []string{"is_shebang"}, kindPlain, srcStat},
	Width:             {"Width", []string{"width"}, kindNumeric, srcImage},
	Height:            {"Height", []string{"height"}, kindNumeric, srcImage},
	Bitrate:           {"Bitrate", []string{"mp3_bitrate", "bitrate"}, kindNumeric, srcAudio},
	Freq:              {"Freq", []string{"mp3_freq", "freq"}, kindNumeric, srcAudio},
	Title:             {"Title", []string{"mp3_title", "title"}, kindPlain, srcAudio},
	Artist:            {"Artist", []string{"mp3_artist", "artist"}, kindPlain, srcAudio},
	Album:             {"Album", []string{"mp3_album", "album"}, kindPlain, srcAudio},
	Year:              {"Year", []string{"mp3_year"}, kindNumeric, srcAudio},
	Genre:             {"Genre", []string{"mp3_genre", "genre"}, kindPlain, srcAudio},
	ExifDateTime:      {"ExifDateTime", []string{"exif_datetime"}, kindDatetime, srcExif},
	ExifGpsAltitude:   {"ExifGpsAltitude", []string{"exif_altitude", "exif_alt"}, kindPlain, srcExif},
	ExifGpsLatitude:   {"ExifGpsLatitude", []string{"exif_latitude", "exif_lat"}, kindPlain, srcExif},
	ExifGpsLongitude:  {"ExifGpsLongitude", []string{"exif_longitude", "exif_lon", "exif_lng"}, kindPlain, srcExif},
	ExifMake:          {"ExifMake", []string{"exif_make"}, kindPlain, srcExif},
	ExifModel:         {"ExifModel", []string{"exif_model"}, kindPlain, srcExif},
	ExifSoftware:      {"ExifSoftware", []string{"exif_software"}, kindPlain, srcExif},
	ExifVersion:       {"ExifVersion", []string{"exif_version"}, kindPlain, srcExif},
	IsArchive:         {"IsArchive", []string{"is_archive"}, kindPlain, srcCategory},
	IsAudio:           {"IsAudio", []string{"is_audio"}, kindPlain, srcCategory},
	IsBook:            {"IsBook", []string{"is_book"}, kindPlain, srcCategory},
	IsDoc:             {"IsDoc", []string{"is_doc"}, kindPlain, srcCategory},
	IsImage:           {"IsImage", []string{"is_image"}, kindPlain, srcCategory},
	IsSource:          {"IsSource", []string{"is_source"}, kindPlain, srcCategory},
	IsVideo:           {"IsVideo", []string{"is_video"}, kindPlain, srcCategory},
	Sha1:              {"Sha1", []string{"sha1"}, kindPlain, srcStat},
}

// ErrUnknownField is matched by every resolution failure.
var ErrUnknownField = errors.New("unknown field")

// UnknownFieldError reports a name that is not in the alias table.
type UnknownFieldError struct {
	Name        string
	Suggestions []string
}

func (e *UnknownFieldError) Error() string {
	msg := "unknown field " + e.Name
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

// Is lets errors.Is match ErrUnknownField.
func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

var aliases = buildAliasIndex()

func buildAliasIndex() *radix.Tree {
	tree := radix.New()
	for f := Field(0); f < numFields; f++ {
		for _, alias := range catalog[f].aliases {
			if _, dup := tree.Insert(alias, f); dup {
				panic(fmt.Sprintf("field: duplicate alias %q", alias))
			}
		}
	}
	return tree
}

// Resolve maps user text onto a Field, ignoring case.
func Resolve(name string) (Field, error) {
	key := strings.ToLower(name)
	if v, ok := aliases.Get(key); ok {
		return v.(Field), nil
	}
	return 0, &UnknownFieldError{Name: key, Suggestions: suggest(key)}
}

// suggest lists up to three aliases sharing the longest known prefix of name.
func suggest(name string) []string {
	for n := len(name); n > 0; n-- {
		var out []string
		aliases.WalkPrefix(name[:n], func(alias string, _ interface{}) bool {
			out = append(out, alias)
			return len(out) >= 3
		})
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// All returns every field in declaration order.
func All() []Field {
	out := make([]Field, 0, numFields)
	for f := Field(0); f < numFields; f++ {
		out = append(out, f)
	}
	return out
}

// Valid reports whether f is a declared field.
func (f Field) Valid() bool { return f >= 0 && f < numFields }

// String returns the canonical identifier, e.g. "FormattedSize".
func (f Field) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return catalog[f].id
}

// Aliases returns the accepted names, primary alias first.
func (f Field) Aliases() []string {
	if !f.Valid() {
		return nil
	}
	return append([]string(nil), catalog[f].aliases...)
}

// MarshalText serializes the canonical identifier, not the alias.
func (f Field) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("field: invalid value %d", int(f))
	}
	return []byte(catalog[f].id), nil
}

// UnmarshalText accepts either the canonical identifier or an alias.
func (f *Field) UnmarshalText(text []byte) error {
	for c := Field(0); c < numFields; c++ {
		if catalog[c].id == string(text) {
			*f = c
			return nil
		}
	}
	resolved, err := Resolve(string(text))
	if err != nil {
		return err
	}
	*f = resolved
	return nil
}

package field

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldCatalog(t *testing.T) {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"ResolveEveryAlias", testResolveEveryAlias},
		{"ResolveUnknown", testResolveUnknown},
		{"Classification", testClassification},
		{"NeedsMetadata", testNeedsMetadata},
		{"Serialization", testSerialization},
		{"Set", testSet},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

func testResolveEveryAlias(t *testing.T) {
	for _, f := range All() {
		require.NotEmpty(t, f.Aliases(), "field %s has no alias", f)
		for _, alias := range f.Aliases() {
			for _, variant := range []string{alias, strings.ToUpper(alias), mixedCase(alias)} {
				got, err := Resolve(variant)
				require.NoError(t, err, "alias %q", variant)
				assert.Equal(t, f, got, "alias %q", variant)
			}
		}
	}

	got, err := Resolve("HSIZE")
	require.NoError(t, err)
	assert.Equal(t, FormattedSize, got)

	got, err = Resolve("exif_lng")
	require.NoError(t, err)
	assert.Equal(t, ExifGpsLongitude, got)
}

func testResolveUnknown(t *testing.T) {
	for _, name := range []string{"", "nosuchfield", "sizes", "year", "exif"} {
		_, err := Resolve(name)
		require.Error(t, err, "name %q", name)
		assert.True(t, errors.Is(err, ErrUnknownField))

		var ufe *UnknownFieldError
		require.True(t, errors.As(err, &ufe))
		assert.Equal(t, strings.ToLower(name), ufe.Name)
	}

	_, err := Resolve("Exif_Mak")
	var ufe *UnknownFieldError
	require.True(t, errors.As(err, &ufe))
	assert.Equal(t, "exif_mak", ufe.Name)
	assert.Contains(t, ufe.Suggestions, "exif_make")
	assert.Contains(t, err.Error(), "unknown field exif_mak")
	assert.LessOrEqual(t, len(ufe.Suggestions), 3)
}

func testClassification(t *testing.T) {
	numeric := []Field{Size, FormattedSize, Uid, Gid, Width, Height, Bitrate, Freq, Year}
	datetime := []Field{Created, Accessed, Modified, ExifDateTime}

	for _, f := range All() {
		assert.Equal(t, contains(numeric, f), f.IsNumeric(), "IsNumeric(%s)", f)
		assert.Equal(t, contains(datetime, f), f.IsDatetime(), "IsDatetime(%s)", f)
	}

	assert.True(t, Width.IsImageField())
	assert.True(t, Genre.IsAudioField())
	assert.True(t, ExifVersion.IsExifField())
	assert.True(t, IsVideo.IsCategory())
	assert.False(t, Field(-1).IsNumeric())
	assert.False(t, numFields.Valid())
}

func testNeedsMetadata(t *testing.T) {
	cheap := []Field{Name, Path, AbsPath, IsArchive, IsAudio, IsBook, IsDoc, IsImage, IsSource, IsVideo}
	for _, f := range cheap {
		assert.False(t, f.NeedsMetadata(), "%s", f)
	}
	for _, f := range All() {
		if f.IsImageField() || f.IsAudioField() || f.IsExifField() {
			assert.False(t, f.NeedsMetadata(), "%s", f)
		}
	}
	for _, f := range []Field{Size, Modified, Mode, Suid, HasXattrs, IsShebang, Sha1, User} {
		assert.True(t, f.NeedsMetadata(), "%s", f)
	}
}

func testSerialization(t *testing.T) {
	out, err := json.Marshal(map[string]Field{"col": FormattedSize})
	require.NoError(t, err)
	assert.JSONEq(t, `{"col":"FormattedSize"}`, string(out))

	assert.Equal(t, "IsCharacterDevice", IsCharacterDevice.String())
	assert.Equal(t, "Field(999)", Field(999).String())

	var f Field
	require.NoError(t, f.UnmarshalText([]byte("ExifGpsLatitude")))
	assert.Equal(t, ExifGpsLatitude, f)
	require.NoError(t, f.UnmarshalText([]byte("is_fifo")))
	assert.Equal(t, IsPipe, f)
	assert.Error(t, f.UnmarshalText([]byte("bogus")))
}

func testSet(t *testing.T) {
	s := NewSet(Name, Path)
	assert.Equal(t, 2, s.Len())
	assert.False(t, s.AnyMetadata())
	assert.False(t, s.AnyExif())
	assert.False(t, s.AnyMedia())

	s.Add(Size)
	s.Add(Size)
	s.Add(Field(-3))
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.AnyMetadata())
	assert.True(t, s.Contains(Size))
	assert.False(t, s.Contains(Sha1))

	s.Add(ExifMake)
	s.Add(Width)
	assert.True(t, s.AnyExif())
	assert.True(t, s.AnyMedia())
	assert.Equal(t, []Field{Name, Path, Size, Width, ExifMake}, s.Fields())
}

func mixedCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i%2 == 0 {
			b.WriteString(strings.ToUpper(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func contains(list []Field, f Field) bool {
	for _, x := range list {
		if x == f {
			return true
		}
	}
	return false
}

package fileinfo

import (
	"bufio"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/fsquery/fsq/field"
	"github.com/ZanzyTHEbar/fsquery/fsq/variant"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	require.NoError(t, os.Chmod(path, perm))
	return path
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		name string
		want Category
	}{
		{"photo.JPG", CategoryImage},
		{"song.mp3", CategoryAudio},
		{"backup.tar", CategoryArchive},
		{"novel.epub", CategoryBook},
		{"notes.md", CategoryDoc},
		{"main.go", CategorySource},
		{"clip.mkv", CategoryVideo},
		{"Makefile", CategoryNone},
		{".bashrc", CategoryNone},
		{"weird.xyz", CategoryNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryOf(tt.name))
		})
	}
}

func TestChecksum(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.txt", "hello", 0o644)

	tests := []struct {
		algorithm string
		want      string
	}{
		{"sha1", "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"},
		{"SHA256", "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"},
		{"md5", "5d41402abc4b2a76b9719d911017c592"},
	}
	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			got, err := Checksum(path, tt.algorithm)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Checksum(path, "crc32")
	assert.Error(t, err)
	_, err = Checksum(filepath.Join(t.TempDir(), "missing"), "sha1")
	assert.Error(t, err)
}

func TestLstat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.bin", "0123456789", 0o640)

	st, err := Lstat(path)
	require.NoError(t, err)
	assert.EqualValues(t, 10, st.Size)
	assert.True(t, st.Mode.IsRegular())
	assert.Equal(t, os.FileMode(0o640), st.Mode.Perm())
	assert.False(t, st.Modified.IsZero())

	_, err = Lstat(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestParseFrameHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  uint32
		bitrate int
		freq    int
		ok      bool
	}{
		{"mpeg1 layer3 128k 44.1k", 0xFFFB9000, 128, 44100, true},
		{"mpeg1 layer3 320k 48k", 0xFFFBE400, 320, 48000, true},
		{"mpeg2 layer3 64k 22.05k", 0xFFF38000, 64, 22050, true},
		{"no sync", 0x12345678, 0, 0, false},
		{"reserved version", 0xFFEB9000, 0, 0, false},
		{"free bitrate", 0xFFFB0000, 0, 0, false},
		{"reserved freq", 0xFFFB9C00, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bitrate, freq, ok := parseFrameHeader(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.bitrate, bitrate)
			assert.Equal(t, tt.freq, freq)
		})
	}
}

func TestReadMPEGFrameSkipsID3(t *testing.T) {
	var buf bytes.Buffer
	// ID3v2.3 header declaring a 4 byte body
	buf.Write([]byte{'I', 'D', '3', 3, 0, 0, 0, 0, 0, 4})
	buf.Write([]byte{0xFF, 0xFB, 0x90, 0x00}) // sync-like bytes inside the tag
	buf.Write([]byte{0x00, 0x00})
	buf.Write([]byte{0xFF, 0xFB, 0xE4, 0x00})

	bitrate, freq, err := readMPEGFrame(bufio.NewReader(&buf))
	require.NoError(t, err)
	assert.Equal(t, 320, bitrate)
	assert.Equal(t, 48000, freq)

	_, _, err = readMPEGFrame(bufio.NewReader(bytes.NewReader([]byte("plain text"))))
	assert.ErrorIs(t, err, errNoFrame)
}

func TestRecord(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "run.sh", "#!/bin/sh\necho hi\n", 0o754)
	hidden := writeFile(t, dir, ".env", "KEY=1", 0o600)

	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.White)
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))
	picture := writeFile(t, dir, "pic.png", pngBuf.String(), 0o644)

	nop := zerolog.Nop()

	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{"Names", func(t *testing.T) {
			r := NewRecord(NewEntry(script, nil), nil, nop)
			assert.Equal(t, "run.sh", r.Text(field.Name))
			assert.Equal(t, script, r.Text(field.Path))
			abs, _ := filepath.Abs(script)
			assert.Equal(t, abs, r.Text(field.AbsPath))
		}},
		{"SizeAndMode", func(t *testing.T) {
			r := NewRecord(NewEntry(script, nil), nil, nop)
			size := r.Value(field.Size)
			assert.Equal(t, variant.Int, size.Kind())
			assert.EqualValues(t, 18, size.Int())
			assert.Equal(t, "18 B", r.Text(field.FormattedSize))
			assert.Equal(t, int64(18), r.Key(field.FormattedSize).Int())
			assert.Equal(t, "-rwxr-xr--", r.Text(field.Mode))
		}},
		{"PermissionBits", func(t *testing.T) {
			r := NewRecord(NewEntry(script, nil), nil, nop)
			want := map[field.Field]bool{
				field.UserRead: true, field.UserWrite: true, field.UserExec: true,
				field.GroupRead: true, field.GroupWrite: false, field.GroupExec: true,
				field.OtherRead: true, field.OtherWrite: false, field.OtherExec: false,
				field.Suid: false, field.Sgid: false,
			}
			for f, bit := range want {
				assert.Equal(t, bit, r.Value(f).Bool(), f.String())
			}
		}},
		{"TypeFlags", func(t *testing.T) {
			r := NewRecord(NewEntry(script, nil), nil, nop)
			assert.True(t, r.Value(field.IsFile).Bool())
			assert.False(t, r.Value(field.IsDir).Bool())
			assert.False(t, r.Value(field.IsSymlink).Bool())

			d := NewRecord(NewEntry(dir, nil), nil, nop)
			assert.True(t, d.Value(field.IsDir).Bool())
			assert.Equal(t, "false", d.Text(field.IsShebang))
		}},
		{"Symlink", func(t *testing.T) {
			link := filepath.Join(dir, "link")
			if err := os.Symlink(script, link); err != nil {
				t.Skipf("symlinks unavailable: %v", err)
			}
			r := NewRecord(NewEntry(link, nil), nil, nop)
			assert.True(t, r.Value(field.IsSymlink).Bool())
			assert.False(t, r.Value(field.IsFile).Bool())
		}},
		{"Hidden", func(t *testing.T) {
			assert.True(t, NewRecord(NewEntry(hidden, nil), nil, nop).Value(field.IsHidden).Bool())
			assert.False(t, NewRecord(NewEntry(script, nil), nil, nop).Value(field.IsHidden).Bool())
		}},
		{"Shebang", func(t *testing.T) {
			assert.True(t, NewRecord(NewEntry(script, nil), nil, nop).Value(field.IsShebang).Bool())
			assert.False(t, NewRecord(NewEntry(hidden, nil), nil, nop).Value(field.IsShebang).Bool())
		}},
		{"Sha1", func(t *testing.T) {
			r := NewRecord(NewEntry(hidden, nil), nil, nop)
			want, err := Checksum(hidden, "sha1")
			require.NoError(t, err)
			assert.Equal(t, want, r.Text(field.Sha1))
			assert.True(t, NewRecord(NewEntry(dir, nil), nil, nop).Value(field.Sha1).IsEmpty())
		}},
		{"Times", func(t *testing.T) {
			r := NewRecord(NewEntry(script, nil), nil, nop)
			mod := r.Value(field.Modified)
			assert.Equal(t, variant.DateTime, mod.Kind())
			got, ok := mod.DateTime()
			require.True(t, ok)
			assert.WithinDuration(t, time.Now(), got, time.Hour)
			_, err := time.ParseInLocation(variant.DatetimeLayout, r.Text(field.Modified), time.Local)
			assert.NoError(t, err)
		}},
		{"Categories", func(t *testing.T) {
			r := NewRecord(NewEntry(picture, nil), nil, nop)
			assert.True(t, r.Value(field.IsImage).Bool())
			assert.False(t, r.Value(field.IsAudio).Bool())
			assert.False(t, NewRecord(NewEntry(script, nil), nil, nop).Value(field.IsImage).Bool())
			assert.True(t, NewRecord(NewEntry(script, nil), nil, nop).Value(field.IsSource).Bool())
		}},
		{"ImageDimensions", func(t *testing.T) {
			r := NewRecord(NewEntry(picture, nil), nil, nop)
			assert.Equal(t, "3", r.Text(field.Width))
			assert.Equal(t, "2", r.Text(field.Height))
			// png carries no exif block
			assert.True(t, r.Value(field.ExifMake).IsEmpty())
			assert.True(t, r.Value(field.Bitrate).IsEmpty())
		}},
		{"MediaOnNonMedia", func(t *testing.T) {
			r := NewRecord(NewEntry(script, nil), nil, nop)
			assert.True(t, r.Value(field.Width).IsEmpty())
			assert.True(t, r.Value(field.Title).IsEmpty())
			assert.True(t, r.Value(field.ExifDateTime).IsEmpty())
		}},
		{"Missing", func(t *testing.T) {
			r := NewRecord(NewEntry(filepath.Join(dir, "gone"), nil), nil, nop)
			assert.Equal(t, "gone", r.Text(field.Name))
			assert.True(t, r.Value(field.Size).IsEmpty())
			assert.True(t, r.Value(field.Modified).IsEmpty())
			assert.Nil(t, r.Stat())
		}},
		{"ArchiveMember", func(t *testing.T) {
			when := time.Date(2021, 3, 4, 5, 6, 7, 0, time.Local)
			info := &Info{Name: "inner.txt", Path: "bundle.zip/docs/inner.txt", Size: 2048, Mode: 0o644, Modified: when}
			r := NewRecord(nil, info, nop)
			assert.Equal(t, "inner.txt", r.Text(field.Name))
			assert.Equal(t, "bundle.zip/docs/inner.txt", r.Text(field.Path))
			assert.Equal(t, "2048", r.Text(field.Size))
			assert.Equal(t, "2021-03-04 05:06:07", r.Text(field.Modified))
			assert.True(t, r.Value(field.IsFile).Bool())
			assert.True(t, r.Value(field.IsDoc).Bool())
			assert.True(t, r.Value(field.Sha1).IsEmpty())
			assert.True(t, r.Value(field.HasXattrs).IsEmpty())
			assert.True(t, r.Value(field.Uid).IsEmpty())

			dirInfo := NewRecord(nil, &Info{Name: "docs", Path: "bundle.zip/docs", IsDir: true}, nop)
			assert.True(t, dirInfo.Value(field.IsDir).Bool())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.test)
	}
}

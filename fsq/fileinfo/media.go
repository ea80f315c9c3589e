package fileinfo

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	audiotag "github.com/dhowden/tag"
)

// Media holds image dimensions and audio properties. Zero values mean the
// property could not be read.
type Media struct {
	Width   int
	Height  int
	Bitrate int // kbit/s
	Freq    int // Hz
	Title   string
	Artist  string
	Album   string
	Year    int
	Genre   string
}

// ExtractImage reads the image header at path.
func ExtractImage(path string) (*Media, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("unrecognised image %s: %w", path, err)
	}
	return &Media{Width: cfg.Width, Height: cfg.Height}, nil
}

// ExtractAudio reads tags and, for MPEG audio, the first frame header.
func ExtractAudio(path string) (*Media, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := &Media{}
	meta, tagErr := audiotag.ReadFrom(f)
	if tagErr == nil {
		m.Title = meta.Title()
		m.Artist = meta.Artist()
		m.Album = meta.Album()
		m.Year = meta.Year()
		m.Genre = meta.Genre()
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return m, err
	}
	bitrate, freq, frameErr := readMPEGFrame(bufio.NewReader(f))
	if frameErr == nil {
		m.Bitrate, m.Freq = bitrate, freq
	}

	if tagErr != nil && frameErr != nil {
		return nil, fmt.Errorf("no audio metadata in %s: %w", path, errors.Join(tagErr, frameErr))
	}
	return m, nil
}

var errNoFrame = errors.New("no mpeg frame header found")

// kbit/s, indexed [version group][layer][index]; version group 0 is MPEG-1.
var mpegBitrates = [2][3][16]int{
	{
		{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0},
		{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
	},
	{
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
	},
}

// Hz, indexed by the two version bits.
var mpegFreqs = map[uint32][3]int{
	3: {44100, 48000, 32000}, // MPEG-1
	2: {22050, 24000, 16000}, // MPEG-2
	0: {11025, 12000, 8000},  // MPEG-2.5
}

const maxFrameScan = 64 << 10

// readMPEGFrame skips an ID3v2 tag and returns bitrate and sampling rate of
// the first valid frame header.
func readMPEGFrame(r *bufio.Reader) (int, int, error) {
	if head, err := r.Peek(10); err == nil && string(head[:3]) == "ID3" {
		size := int(head[6]&0x7f)<<21 | int(head[7]&0x7f)<<14 | int(head[8]&0x7f)<<7 | int(head[9]&0x7f)
		if head[5]&0x10 != 0 {
			size += 10 // footer
		}
		if _, err := r.Discard(10 + size); err != nil {
			return 0, 0, err
		}
	}

	for scanned := 0; scanned < maxFrameScan; scanned++ {
		b, err := r.Peek(4)
		if err != nil {
			return 0, 0, errNoFrame
		}
		if bitrate, freq, ok := parseFrameHeader(binary.BigEndian.Uint32(b)); ok {
			return bitrate, freq, nil
		}
		if _, err := r.Discard(1); err != nil {
			return 0, 0, errNoFrame
		}
	}
	return 0, 0, errNoFrame
}

func parseFrameHeader(h uint32) (int, int, bool) {
	if h&0xFFE00000 != 0xFFE00000 {
		return 0, 0, false
	}
	version := (h >> 19) & 0x3
	layerBits := (h >> 17) & 0x3
	bitrateIdx := (h >> 12) & 0xF
	freqIdx := (h >> 10) & 0x3
	if version == 1 || layerBits == 0 || bitrateIdx == 0 || bitrateIdx == 0xF || freqIdx == 3 {
		return 0, 0, false
	}

	layer := 3 - int(layerBits) // 0 = Layer I
	group := 1
	if version == 3 {
		group = 0
	}
	return mpegBitrates[group][layer][bitrateIdx], mpegFreqs[version][freqIdx], true
}

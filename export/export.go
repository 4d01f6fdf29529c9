// Package export writes composited atlases as 8-bit grayscale PNG files.
//
// The encoded file carries gAMA and cHRM chunks describing a 1/2.2 gamma
// with sRGB primaries and a D65 white point, so viewers display the
// coverage values the way they appear on screen.
package export

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/gogpu/fontatlas"
)

// Sentinel errors for the export package.
var (
	// ErrInvalidDestinationPath is returned when the output path is empty,
	// names a directory, or lives in a directory that does not exist.
	ErrInvalidDestinationPath = errors.New("export: invalid destination path")

	// ErrWriteFailed is returned when encoding or writing the file fails.
	ErrWriteFailed = errors.New("export: write failed")

	// ErrEmptyAtlas is returned for an atlas with no pixels. PNG cannot
	// represent a zero-sized image.
	ErrEmptyAtlas = errors.New("export: atlas is empty")
)

// Gamma is the gAMA value written to every file: 1/2.2 scaled by 100000.
const Gamma = 45455

// chromaticities holds the cHRM values: white point, red, green and blue
// x/y coordinates scaled by 100000 (sRGB primaries, D65 white).
var chromaticities = [8]uint32{
	31270, 32900, // white
	64000, 33000, // red
	30000, 60000, // green
	15000, 6000, // blue
}

// Option configures encoding.
type Option func(*options)

type options struct {
	scale       int
	compression png.CompressionLevel
	metadata    bool
}

func defaultOptions() options {
	return options{
		scale:       1,
		compression: png.DefaultCompression,
		metadata:    true,
	}
}

// WithScale enlarges the image by an integer factor using nearest-neighbour
// sampling, for previewing small atlases. Factors below 1 are ignored.
func WithScale(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.scale = n
		}
	}
}

// WithCompression sets the PNG compression level.
func WithCompression(level png.CompressionLevel) Option {
	return func(o *options) {
		o.compression = level
	}
}

// WithoutColorMetadata omits the gAMA and cHRM chunks.
func WithoutColorMetadata() Option {
	return func(o *options) {
		o.metadata = false
	}
}

// Filename returns the default file name for an atlas rendered from the
// font stem: "<stem>-(w<cell width>-h<cell height>).png".
func Filename(stem string, info fontatlas.Info) string {
	return fmt.Sprintf("%s-(w%d-h%d).png", stem, info.CellWidth, info.CellHeight)
}

// WritePNG encodes atlas and writes it to path, replacing any existing file.
func WritePNG(path string, atlas *fontatlas.Atlas, opts ...Option) error {
	if err := checkDestination(path); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, atlas, opts...); err != nil {
		return err
	}
	// #nosec G306 -- atlas images are not sensitive
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, err)
	}

	fontatlas.Logger().Info("export: atlas written",
		slog.String("path", path),
		slog.Int("width", atlas.Width),
		slog.Int("height", atlas.Height),
		slog.Int("bytes", buf.Len()))
	return nil
}

// EncodePNG writes atlas to w as an 8-bit grayscale PNG.
func EncodePNG(w io.Writer, atlas *fontatlas.Atlas, opts ...Option) error {
	if atlas == nil || atlas.Width <= 0 || atlas.Height <= 0 {
		return ErrEmptyAtlas
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	img := atlas.Image()
	if o.scale > 1 {
		img = scaleNearest(img, o.scale)
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: o.compression}
	if err := enc.Encode(&buf, img); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	data := buf.Bytes()
	if o.metadata {
		data = insertAfterIHDR(data, gamaChunk(), chrmChunk())
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}

// checkDestination rejects paths that cannot name a new or existing file.
func checkDestination(path string) error {
	if strings.TrimSpace(path) == "" || strings.HasSuffix(path, string(filepath.Separator)) {
		return fmt.Errorf("%w: %q", ErrInvalidDestinationPath, path)
	}
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidDestinationPath, path)
	}
	dir := filepath.Dir(path)
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return fmt.Errorf("%w: directory %s does not exist", ErrInvalidDestinationPath, dir)
	}
	return nil
}

func scaleNearest(src *image.Gray, n int) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*n, b.Dy()*n))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// pngHeaderLen is the length of the PNG signature plus the IHDR chunk.
const pngHeaderLen = 8 + 4 + 4 + 13 + 4

// insertAfterIHDR splices ancillary chunks between IHDR and the image data,
// where gAMA and cHRM must appear.
func insertAfterIHDR(data []byte, chunks ...[]byte) []byte {
	if len(data) < pngHeaderLen || string(data[12:16]) != "IHDR" {
		return data
	}
	size := len(data)
	for _, c := range chunks {
		size += len(c)
	}
	out := make([]byte, 0, size)
	out = append(out, data[:pngHeaderLen]...)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return append(out, data[pngHeaderLen:]...)
}

func gamaChunk() []byte {
	return chunk("gAMA", binary.BigEndian.AppendUint32(nil, Gamma))
}

func chrmChunk() []byte {
	payload := make([]byte, 0, 4*len(chromaticities))
	for _, v := range chromaticities {
		payload = binary.BigEndian.AppendUint32(payload, v)
	}
	return chunk("cHRM", payload)
}

// chunk frames payload as a PNG chunk: length, type, data and CRC.
func chunk(typ string, payload []byte) []byte {
	b := make([]byte, 0, 12+len(payload))
	b = binary.BigEndian.AppendUint32(b, uint32(len(payload)))
	b = append(b, typ...)
	b = append(b, payload...)
	return binary.BigEndian.AppendUint32(b, crc32.ChecksumIEEE(b[4:]))
}

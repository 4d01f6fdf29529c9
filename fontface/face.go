package fontface

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"unicode"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/fontatlas"
	"github.com/gogpu/fontatlas/internal/cache"
	"github.com/gogpu/fontatlas/internal/parallel"
)

// Face is a loaded font ready for rasterization.
//
// Face is safe for concurrent use.
type Face struct {
	path string
	stem string
	name string

	font  *opentype.Font
	chars []rune

	pool   *parallel.WorkerPool
	cache  *cache.Cache[glyphKey, fontatlas.GlyphRaster]
	closed atomic.Bool
}

// glyphKey identifies a cached raster.
type glyphKey struct {
	r      rune
	height float64
}

// Load reads and parses the font file at path.
func Load(path string, opts ...Option) (*Face, error) {
	// #nosec G304 -- font path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Kind: ErrOpenFailed, Path: path, Err: err}
	}
	f, err := newFace(path, data, opts)
	if err != nil {
		return nil, err
	}
	fontatlas.Logger().Info("fontface: font loaded",
		slog.String("path", path),
		slog.String("name", f.name),
		slog.Int("chars", len(f.chars)))
	return f, nil
}

// LoadBytes parses font data held in memory. name is used as the path and
// stem of the face.
func LoadBytes(name string, data []byte, opts ...Option) (*Face, error) {
	return newFace(name, data, opts)
}

func newFace(path string, data []byte, opts []Option) (*Face, error) {
	if len(data) == 0 {
		return nil, &LoadError{Kind: ErrParseFailed, Path: path, Err: errEmptyData}
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, &LoadError{Kind: ErrParseFailed, Path: path, Err: err}
	}
	chars, err := enumerateChars(data)
	if err != nil {
		return nil, &LoadError{Kind: ErrParseFailed, Path: path, Err: err}
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Face{
		path:  path,
		stem:  stem,
		name:  familyName(parsed, stem),
		font:  parsed,
		chars: chars,
		pool:  parallel.NewWorkerPool(cfg.workers),
		cache: cache.New[glyphKey, fontatlas.GlyphRaster](cfg.cacheLimit),
	}, nil
}

// enumerateChars lists every character the font's cmap maps to a real
// glyph, sorted by code point.
func enumerateChars(data []byte) ([]rune, error) {
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var chars []rune
	it := face.Cmap.Iter()
	for it.Next() {
		r, gid := it.Char()
		if gid == 0 || r < 0 || r > unicode.MaxRune {
			continue
		}
		chars = append(chars, r)
	}
	slices.Sort(chars)
	return slices.Compact(chars), nil
}

// familyName returns the font family name, or fallback when the font has
// none.
func familyName(f *opentype.Font, fallback string) string {
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return fallback
}

// Path returns the path the face was loaded from.
func (f *Face) Path() string { return f.path }

// Stem returns the file name of the face without directory and extension.
func (f *Face) Stem() string { return f.stem }

// Name returns the font family name.
func (f *Face) Name() string { return f.name }

// Chars returns every character the font maps, sorted by code point.
// The returned slice is a copy.
func (f *Face) Chars() []rune {
	return slices.Clone(f.chars)
}

// Has reports whether the font maps r to a glyph.
func (f *Face) Has(r rune) bool {
	_, ok := slices.BinarySearch(f.chars, r)
	return ok
}

// LineMetrics returns the horizontal line metrics at pixelHeight.
func (f *Face) LineMetrics(pixelHeight float64) (fontatlas.LineMetrics, error) {
	if pixelHeight <= 0 {
		return fontatlas.LineMetrics{}, ErrInvalidHeight
	}
	var buf sfnt.Buffer
	m, err := f.font.Metrics(&buf, fixed.Int26_6(pixelHeight*64), font.HintingNone)
	if err != nil {
		return fontatlas.LineMetrics{}, err
	}
	return fontatlas.LineMetrics{
		Ascent:  fixedToFloat(m.Ascent),
		Descent: fixedToFloat(m.Descent),
		LineGap: max(fixedToFloat(m.Height-m.Ascent-m.Descent), 0),
	}, nil
}

// CacheStats returns the raster cache statistics.
func (f *Face) CacheStats() cache.Stats {
	return f.cache.Stats()
}

// Close stops the rasterization workers and drops cached rasters.
// Close is safe to call multiple times.
func (f *Face) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	f.pool.Close()
	f.cache.Clear()
	return nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

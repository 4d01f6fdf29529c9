package fontface

import (
	"context"
	"image"
	"log/slog"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/fontatlas"
)

// cancelCheckInterval is the number of glyphs a worker rasterizes between
// context checks.
const cancelCheckInterval = 32

// Rasterize renders chars at pixelHeight and returns their rasters in the
// order of chars. A nil chars rasterizes every character of Chars.
//
// Characters the font does not map are skipped. Raster pixel slices are
// shared with the face's cache and must not be modified.
//
// Rasterize returns ctx.Err() and no rasters when ctx is cancelled.
func (f *Face) Rasterize(ctx context.Context, chars []rune, pixelHeight float64) (fontatlas.Rasters, error) {
	if f.closed.Load() {
		return nil, ErrClosed
	}
	if pixelHeight <= 0 {
		return nil, ErrInvalidHeight
	}
	if chars == nil {
		chars = f.chars
	}

	out := make([]fontatlas.GlyphRaster, len(chars))
	found := make([]bool, len(chars))

	var (
		errMu    sync.Mutex
		firstErr error
	)
	setErr := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	err := f.pool.Range(ctx, len(chars), func(_, lo, hi int) {
		var face font.Face
		var buf sfnt.Buffer
		defer func() {
			if face != nil {
				_ = face.Close()
			}
		}()

		for i := lo; i < hi; i++ {
			if (i-lo)%cancelCheckInterval == 0 && ctx.Err() != nil {
				return
			}
			key := glyphKey{r: chars[i], height: pixelHeight}
			if g, ok := f.cache.Get(key); ok {
				out[i], found[i] = g, true
				continue
			}
			if gi, err := f.font.GlyphIndex(&buf, chars[i]); err != nil || gi == 0 {
				continue
			}
			if face == nil {
				var err error
				face, err = opentype.NewFace(f.font, &opentype.FaceOptions{
					Size:    pixelHeight,
					DPI:     72,
					Hinting: font.HintingNone,
				})
				if err != nil {
					setErr(err)
					return
				}
			}
			g, ok := rasterizeGlyph(face, chars[i])
			if !ok {
				continue
			}
			f.cache.Set(key, g)
			out[i], found[i] = g, true
		}
	})
	if err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	rs := make(fontatlas.Rasters, 0, len(chars))
	for i := range out {
		if found[i] {
			rs = append(rs, out[i])
		}
	}
	if skipped := len(chars) - len(rs); skipped > 0 {
		fontatlas.Logger().Debug("fontface: unmapped characters skipped",
			slog.String("font", f.name),
			slog.Int("skipped", skipped))
	}
	fontatlas.Logger().Debug("fontface: rasterized",
		slog.String("font", f.name),
		slog.Float64("height", pixelHeight),
		slog.Int("glyphs", len(rs)))
	return rs, nil
}

// rasterizeGlyph renders r with its pen at the origin. The mask is copied
// into a tightly packed buffer so Pixels has exactly Width*Height values.
func rasterizeGlyph(face font.Face, r rune) (fontatlas.GlyphRaster, bool) {
	dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return fontatlas.GlyphRaster{}, false
	}
	w, h := dr.Dx(), dr.Dy()
	m := fontatlas.Metrics{
		Width:    w,
		Height:   h,
		BearingX: dr.Min.X,
		BearingY: -dr.Max.Y,
	}
	if w <= 0 || h <= 0 {
		return fontatlas.GlyphRaster{Rune: r, Metrics: fontatlas.Metrics{BearingX: dr.Min.X}, Pixels: []byte{}}, true
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), mask, maskp, draw.Src)
	return fontatlas.GlyphRaster{Rune: r, Metrics: m, Pixels: dst.Pix}, true
}

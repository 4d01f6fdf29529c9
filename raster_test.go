package fontatlas

import (
	"errors"
	"testing"
)

// raster returns a w*h raster filled with v whose bottom edge sits
// bearingY pixels above the baseline.
func raster(r rune, w, h, bearingY int, v byte) GlyphRaster {
	pix := make([]byte, w*h)
	for i := range pix {
		pix[i] = v
	}
	return GlyphRaster{
		Rune:    r,
		Metrics: Metrics{Width: w, Height: h, BearingY: bearingY},
		Pixels:  pix,
	}
}

func TestNewGlyphRaster(t *testing.T) {
	g, err := NewGlyphRaster('x', Metrics{Width: 2, Height: 3}, make([]byte, 6))
	if err != nil {
		t.Fatalf("NewGlyphRaster() error = %v", err)
	}
	if g.Rune != 'x' || len(g.Pixels) != 6 {
		t.Errorf("NewGlyphRaster() = %+v", g)
	}

	if _, err := NewGlyphRaster('x', Metrics{Width: 2, Height: 3}, make([]byte, 5)); err == nil {
		t.Error("NewGlyphRaster() with short pixels should fail")
	}
	if _, err := NewGlyphRaster('x', Metrics{Width: -1, Height: 3}, nil); err == nil {
		t.Error("NewGlyphRaster() with negative width should fail")
	}
	if _, err := NewGlyphRaster(' ', Metrics{}, nil); err != nil {
		t.Errorf("NewGlyphRaster() for an empty glyph error = %v", err)
	}
}

func TestGlyphRaster_Property(t *testing.T) {
	g := GlyphRaster{
		Metrics: Metrics{Width: 3, Height: 2, BearingY: -1},
		Pixels:  []byte{255, 255, 255, 255, 255, 1},
	}
	tests := []struct {
		p    Property
		want uint64
	}{
		{PropertyNone, 0},
		{PropertyBrightness, 5*255 + 1},
		{PropertyWidth, 3},
		{PropertyHeight, 2},
	}
	for _, tt := range tests {
		t.Run(tt.p.String(), func(t *testing.T) {
			if got := g.Property(tt.p); got != tt.want {
				t.Errorf("Property(%v) = %d, want %d", tt.p, got, tt.want)
			}
		})
	}
	if got := g.Metrics.Top(); got != 1 {
		t.Errorf("Top() = %d, want 1", got)
	}
}

func TestParseProperty(t *testing.T) {
	for _, p := range Properties {
		got, err := ParseProperty(p.String())
		if err != nil || got != p {
			t.Errorf("ParseProperty(%q) = %v, %v", p.String(), got, err)
		}
	}
	if got, err := ParseProperty(""); err != nil || got != PropertyNone {
		t.Errorf("ParseProperty(\"\") = %v, %v", got, err)
	}

	_, err := ParseProperty("weight")
	var pe *ParseError
	if !errors.As(err, &pe) || pe.What != "property" {
		t.Errorf("ParseProperty(weight) error = %v, want *ParseError", err)
	}
}

package fontatlas

import (
	"fmt"
	"strings"
)

// Metrics holds the placement metrics of a glyph bitmap in pixels.
type Metrics struct {
	// Width and Height are the bitmap dimensions.
	Width, Height int

	// BearingX is the left edge of the bitmap relative to the pen origin.
	BearingX int

	// BearingY is the bottom edge of the bitmap relative to the baseline,
	// positive upward. A descender such as 'g' has a negative BearingY.
	BearingY int
}

// Top returns the distance from the baseline to the top edge of the bitmap.
func (m Metrics) Top() int {
	return m.BearingY + m.Height
}

// GlyphRaster is the coverage bitmap of a single glyph.
//
// Pixels holds Width*Height coverage values in row-major order,
// 0 meaning empty and 255 fully covered.
type GlyphRaster struct {
	// Rune is the character the bitmap was rasterized from.
	Rune rune

	Metrics Metrics
	Pixels  []byte
}

// NewGlyphRaster creates a raster and checks that pixels matches the metrics.
func NewGlyphRaster(r rune, m Metrics, pixels []byte) (GlyphRaster, error) {
	if m.Width < 0 || m.Height < 0 {
		return GlyphRaster{}, fmt.Errorf("fontatlas: negative raster size %dx%d", m.Width, m.Height)
	}
	if len(pixels) != m.Width*m.Height {
		return GlyphRaster{}, fmt.Errorf("fontatlas: raster %q has %d pixels, want %d",
			r, len(pixels), m.Width*m.Height)
	}
	return GlyphRaster{Rune: r, Metrics: m, Pixels: pixels}, nil
}

// Brightness returns the sum of all coverage values.
func (g *GlyphRaster) Brightness() uint64 {
	var sum uint64
	for _, v := range g.Pixels {
		sum += uint64(v)
	}
	return sum
}

// Property returns the scalar value of p for this raster.
// PropertyNone always yields 0.
func (g *GlyphRaster) Property(p Property) uint64 {
	switch p {
	case PropertyBrightness:
		return g.Brightness()
	case PropertyWidth:
		return uint64(g.Metrics.Width)
	case PropertyHeight:
		return uint64(g.Metrics.Height)
	default:
		return 0
	}
}

// Property selects a scalar derived from a raster, used to order or
// deduplicate a collection.
type Property int

const (
	// PropertyNone disables sorting or deduplication.
	PropertyNone Property = iota

	// PropertyBrightness is the sum of the coverage values.
	PropertyBrightness

	// PropertyWidth is the bitmap width.
	PropertyWidth

	// PropertyHeight is the bitmap height.
	PropertyHeight
)

// Properties lists the selectable properties in display order.
var Properties = []Property{PropertyNone, PropertyBrightness, PropertyWidth, PropertyHeight}

// String returns the display name of the property.
func (p Property) String() string {
	switch p {
	case PropertyNone:
		return "None"
	case PropertyBrightness:
		return "Brightness"
	case PropertyWidth:
		return "Width"
	case PropertyHeight:
		return "Height"
	default:
		return fmt.Sprintf("Property(%d)", int(p))
	}
}

// ParseProperty parses a property name, case-insensitively.
// The empty string parses as PropertyNone.
func ParseProperty(s string) (Property, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PropertyNone, nil
	case "brightness":
		return PropertyBrightness, nil
	case "width":
		return PropertyWidth, nil
	case "height":
		return PropertyHeight, nil
	default:
		return PropertyNone, &ParseError{What: "property", Input: s}
	}
}

package fontatlas

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Direction decides how glyph indices map to grid cells.
type Direction int

const (
	// LeftToRight fills rows first (row-major).
	LeftToRight Direction = iota

	// TopToBottom fills columns first (column-major).
	TopToBottom
)

// Directions lists the directions in display order.
var Directions = []Direction{LeftToRight, TopToBottom}

// String returns the display name of the direction.
func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "Left to right"
	case TopToBottom:
		return "Top to bottom"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses "ltr"/"left-to-right" or "ttb"/"top-to-bottom".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ltr", "left-to-right", "lefttoright":
		return LeftToRight, nil
	case "ttb", "top-to-bottom", "toptobottom":
		return TopToBottom, nil
	default:
		return LeftToRight, &ParseError{What: "direction", Input: s}
	}
}

// Alignment decides the vertical placement of a glyph inside its cell.
type Alignment int

const (
	// AlignBaseline puts every glyph on a common baseline.
	AlignBaseline Alignment = iota

	// AlignCenter centers every bitmap vertically, ignoring bearings.
	AlignCenter
)

// String returns the display name of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignBaseline:
		return "Baseline"
	case AlignCenter:
		return "Center"
	default:
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
}

// ParseAlignment parses "baseline" or "center".
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "baseline":
		return AlignBaseline, nil
	case "center", "centre":
		return AlignCenter, nil
	default:
		return AlignBaseline, &ParseError{What: "alignment", Input: s}
	}
}

// Padding insets every cell by a fixed number of pixels on each side.
type Padding struct {
	Left, Right, Up, Down int
}

// IsZero reports whether no padding is applied.
func (p Padding) IsZero() bool {
	return p == Padding{}
}

// String formats the padding as "left,right,up,down".
func (p Padding) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", p.Left, p.Right, p.Up, p.Down)
}

// ParsePadding parses "n" (all sides), "h,v" (left/right, up/down) or
// "left,right,up,down". The empty string parses as no padding.
func ParsePadding(s string) (Padding, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Padding{}, nil
	}
	parts := strings.Split(s, ",")
	vals := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v < 0 {
			return Padding{}, &ParseError{What: "padding", Input: s}
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		return Padding{vals[0], vals[0], vals[0], vals[0]}, nil
	case 2:
		return Padding{vals[0], vals[0], vals[1], vals[1]}, nil
	case 4:
		return Padding{vals[0], vals[1], vals[2], vals[3]}, nil
	default:
		return Padding{}, &ParseError{What: "padding", Input: s}
	}
}

// LineMetrics holds the font's horizontal line metrics in pixels.
// Ascent and Descent are both positive distances from the baseline.
type LineMetrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// IsZero reports whether no line metrics were supplied.
func (m LineMetrics) IsZero() bool {
	return m.Ascent == 0 && m.Descent == 0
}

// Settings is the complete render configuration. It is passed explicitly;
// nothing in the package reads global state.
type Settings struct {
	// RenderHeight is the rasterization height in pixels. The compositor
	// only uses it as the cell size of an empty collection.
	RenderHeight float64

	Layout    Layout
	Direction Direction
	Alignment Alignment
	Padding   Padding

	// SortBy orders the collection before layout; PropertyNone keeps font order.
	SortBy Property

	// DedupBy drops rasters repeating an earlier value; PropertyNone disables it.
	DedupBy Property

	// DedupExact drops rasters whose bitmap repeats an earlier one.
	DedupExact bool

	// CellWidth and CellHeight override the cell content size when positive.
	// By default the cell fits the largest bitmap.
	CellWidth, CellHeight int

	// LineMetrics, when set, provide the shared ascent for baseline
	// alignment. Otherwise the ascent is derived from the rasters.
	LineMetrics LineMetrics
}

// DefaultSettings returns the default render settings.
func DefaultSettings() Settings {
	return Settings{
		RenderHeight: 8,
		Layout:       Squarish(),
		Direction:    LeftToRight,
		Alignment:    AlignBaseline,
		SortBy:       PropertyBrightness,
		DedupBy:      PropertyBrightness,
		DedupExact:   true,
	}
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	if s.RenderHeight <= 0 {
		return &SettingsError{Field: "RenderHeight", Reason: "must be positive"}
	}
	if s.Layout.Kind < LayoutSquarish || s.Layout.Kind > LayoutCustom {
		return &SettingsError{Field: "Layout", Reason: "unknown layout"}
	}
	if s.Layout.Kind == LayoutCustom && (s.Layout.Cols < 0 || s.Layout.Rows < 0) {
		return &SettingsError{Field: "Layout", Reason: "custom grid must be non-negative"}
	}
	if s.Layout.Kind == LayoutCustom && s.Layout.Cols > 0 && s.Layout.Rows > math.MaxInt/s.Layout.Cols {
		return &SettingsError{Field: "Layout", Reason: "custom grid too large"}
	}
	if s.Direction != LeftToRight && s.Direction != TopToBottom {
		return &SettingsError{Field: "Direction", Reason: "unknown direction"}
	}
	if s.Alignment != AlignBaseline && s.Alignment != AlignCenter {
		return &SettingsError{Field: "Alignment", Reason: "unknown alignment"}
	}
	p := s.Padding
	if p.Left < 0 || p.Right < 0 || p.Up < 0 || p.Down < 0 {
		return &SettingsError{Field: "Padding", Reason: "must be non-negative"}
	}
	if s.CellWidth < 0 {
		return &SettingsError{Field: "CellWidth", Reason: "must be non-negative"}
	}
	if s.CellHeight < 0 {
		return &SettingsError{Field: "CellHeight", Reason: "must be non-negative"}
	}
	if s.SortBy < PropertyNone || s.SortBy > PropertyHeight {
		return &SettingsError{Field: "SortBy", Reason: "unknown property"}
	}
	if s.DedupBy < PropertyNone || s.DedupBy > PropertyHeight {
		return &SettingsError{Field: "DedupBy", Reason: "unknown property"}
	}
	return nil
}

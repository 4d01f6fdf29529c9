package fontatlas

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LayoutKind identifies the variant of a Layout.
type LayoutKind int

const (
	// LayoutSquarish approximates a square atlas in pixels.
	LayoutSquarish LayoutKind = iota

	// LayoutHorizontal places every glyph in a single row.
	LayoutHorizontal

	// LayoutVertical places every glyph in a single column.
	LayoutVertical

	// LayoutPacked picks a column count that minimizes empty trailing cells.
	LayoutPacked

	// LayoutCustom uses a caller-supplied grid.
	LayoutCustom
)

// Layout decides the shape of the cell grid.
//
// Layout is a tagged variant: Flipped is only meaningful for LayoutPacked,
// Cols and Rows only for LayoutCustom. Build values with Squarish,
// Horizontal, Vertical, Packed and Custom.
type Layout struct {
	Kind    LayoutKind
	Flipped bool
	Cols    int
	Rows    int
}

// Squarish returns the near-square layout.
func Squarish() Layout { return Layout{Kind: LayoutSquarish} }

// Horizontal returns the single-row layout.
func Horizontal() Layout { return Layout{Kind: LayoutHorizontal} }

// Vertical returns the single-column layout.
func Vertical() Layout { return Layout{Kind: LayoutVertical} }

// Packed returns the waste-minimizing layout. When flipped is set the
// resolved columns and rows are swapped.
func Packed(flipped bool) Layout { return Layout{Kind: LayoutPacked, Flipped: flipped} }

// Custom returns a fixed grid of cols by rows cells. The grid is not checked
// against the glyph count: glyphs beyond cols*rows are dropped.
func Custom(cols, rows int) Layout { return Layout{Kind: LayoutCustom, Cols: cols, Rows: rows} }

// Layouts lists the preset layouts in display order.
var Layouts = []Layout{Squarish(), Horizontal(), Vertical(), Packed(false), Packed(true)}

// String returns the display name of the layout.
func (l Layout) String() string {
	switch l.Kind {
	case LayoutSquarish:
		return "Squarish"
	case LayoutHorizontal:
		return "Horizontal"
	case LayoutVertical:
		return "Vertical"
	case LayoutPacked:
		if l.Flipped {
			return "Packed (flipped)"
		}
		return "Packed"
	case LayoutCustom:
		return fmt.Sprintf("Custom (%d %d)", l.Cols, l.Rows)
	default:
		return fmt.Sprintf("Layout(%d)", int(l.Kind))
	}
}

// ParseLayout parses a layout name. Accepted forms are "squarish" (or
// "square"), "horizontal", "vertical", "packed", "packed-flipped" and
// "custom:COLSxROWS".
func ParseLayout(s string) (Layout, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "squarish", "square":
		return Squarish(), nil
	case "horizontal":
		return Horizontal(), nil
	case "vertical":
		return Vertical(), nil
	case "packed":
		return Packed(false), nil
	case "packed-flipped", "packed(flipped)":
		return Packed(true), nil
	}
	if dims, ok := strings.CutPrefix(v, "custom:"); ok {
		c, r, found := strings.Cut(dims, "x")
		if found {
			cols, err1 := strconv.Atoi(c)
			rows, err2 := strconv.Atoi(r)
			if err1 == nil && err2 == nil && cols >= 0 && rows >= 0 {
				return Custom(cols, rows), nil
			}
		}
	}
	return Layout{}, &ParseError{What: "layout", Input: s}
}

// ResolveGrid returns the number of columns and rows for n cells of
// cellWidth by cellHeight pixels under layout l. It never divides by zero:
// with n == 0 every layout except Custom yields cols*rows == 0.
func ResolveGrid(n, cellWidth, cellHeight int, l Layout) (cols, rows int) {
	switch l.Kind {
	case LayoutHorizontal:
		return n, 1
	case LayoutVertical:
		return 1, n
	case LayoutCustom:
		return l.Cols, l.Rows
	case LayoutPacked:
		cols = packedColumns(n, cellWidth, cellHeight)
		rows = ceilDiv(n, cols)
		if l.Flipped {
			return rows, cols
		}
		return cols, rows
	default:
		cols = squarishColumns(n, cellWidth, cellHeight)
		return cols, ceilDiv(n, cols)
	}
}

// squarishColumns returns round(ceil(sqrt(total)) / cellWidth), at least 1.
func squarishColumns(n, cellWidth, cellHeight int) int {
	cw := max(cellWidth, 1)
	total := float64(cw) * float64(max(cellHeight, 0)) * float64(n)
	side := math.Ceil(math.Sqrt(total))
	return max(int(math.Round(side/float64(cw))), 1)
}

// packedColumns searches the candidate column counts [2, n/2] for those
// leaving the fewest empty cells in the last row, then picks the one
// closest to the square target. Candidates are visited from largest to
// smallest and only a strictly closer one replaces the incumbent, so ties
// go to the larger count. With no candidate the result is a single row.
func packedColumns(n, cellWidth, cellHeight int) int {
	if n <= 0 {
		return 0
	}
	minWaste := -1
	var best []int
	for d := n / 2; d >= 2; d-- {
		w := (d - n%d) % d
		switch {
		case minWaste < 0 || w < minWaste:
			minWaste = w
			best = append(best[:0], d)
		case w == minWaste:
			best = append(best, d)
		}
	}

	cw := max(cellWidth, 1)
	total := float64(cw) * float64(max(cellHeight, 0)) * float64(n)
	target := int(math.Round(math.Sqrt(total) / float64(cw)))

	cols, distance := n, n
	for _, d := range best {
		if dist := absDiff(target, d); dist < distance {
			cols, distance = d, dist
		}
	}
	return cols
}

// ceilDiv returns ceil(a/b) for non-negative a, and 0 when b is 0.
func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// floorDiv returns floor(a/b) for b > 0, also for negative a.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

package fontatlas

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"
)

// Atlas is the composited single-channel pixel buffer.
//
// Pix holds Width*Height coverage values in row-major order. An Atlas is
// not modified after Compose returns it.
type Atlas struct {
	Width  int
	Height int
	Pix    []byte
}

// At returns the coverage at (x, y), or 0 outside the atlas.
func (a *Atlas) At(x, y int) byte {
	if x < 0 || x >= a.Width || y < 0 || y >= a.Height {
		return 0
	}
	return a.Pix[y*a.Width+x]
}

// Image returns the atlas as an *image.Gray sharing the same pixels.
func (a *Atlas) Image() *image.Gray {
	return &image.Gray{
		Pix:    a.Pix,
		Stride: a.Width,
		Rect:   image.Rect(0, 0, a.Width, a.Height),
	}
}

// Info summarizes a composited atlas for display and reporting.
type Info struct {
	// CellWidth and CellHeight are the realized cell size, padding included.
	CellWidth, CellHeight int

	// Cols and Rows are the grid dimensions in cells.
	Cols, Rows int

	// CellFilled is the number of rasters actually placed.
	CellFilled int

	// Utilization is CellFilled over the grid capacity, from 0 to 1.
	Utilization float64

	Padding Padding

	// Ascent is the baseline position measured from the top of a cell's
	// content area. It is 0 with AlignCenter.
	Ascent int
}

// String returns a one-line summary.
func (i Info) String() string {
	return fmt.Sprintf("cell %dx%d, grid %dx%d, %d filled (%.0f%%), padding %s",
		i.CellWidth, i.CellHeight, i.Cols, i.Rows, i.CellFilled, i.Utilization*100, i.Padding)
}

// Grid is the resolved shape of an atlas.
type Grid struct {
	// CellWidth and CellHeight are the cell stride, padding included.
	CellWidth, CellHeight int

	// ContentWidth and ContentHeight are the area glyphs are drawn into.
	ContentWidth, ContentHeight int

	Cols, Rows int

	Padding Padding

	// Ascent is the baseline offset inside the content area.
	Ascent int
}

// Size returns the atlas dimensions in pixels.
func (g Grid) Size() (width, height int) {
	return g.Cols * g.CellWidth, g.Rows * g.CellHeight
}

// Capacity returns the number of cells.
func (g Grid) Capacity() int {
	return g.Cols * g.Rows
}

// Utilization returns the fraction of cells used by filled glyphs (0.0 to 1.0).
func (g Grid) Utilization(filled int) float64 {
	capacity := g.Capacity()
	if capacity <= 0 {
		return 0
	}
	return float64(min(max(filled, 0), capacity)) / float64(capacity)
}

// fits reports whether the capacity and the pixel area of g are
// representable as int.
func (g Grid) fits() bool {
	if g.CellWidth < 0 || g.CellHeight < 0 || g.Cols < 0 || g.Rows < 0 {
		return false
	}
	if !mulFits(g.Cols, g.Rows) || !mulFits(g.Cols, g.CellWidth) || !mulFits(g.Rows, g.CellHeight) {
		return false
	}
	width, height := g.Size()
	return mulFits(width, height)
}

// mulFits reports whether a*b does not overflow for non-negative a and b.
func mulFits(a, b int) bool {
	return a == 0 || b <= math.MaxInt/a
}

// Cell returns the column and row of the i-th glyph for direction d.
func (g Grid) Cell(i int, d Direction) (col, row int) {
	if d == TopToBottom {
		return i / g.Rows, i % g.Rows
	}
	return i % g.Cols, i / g.Cols
}

// Resolve computes the cell size and grid shape for rs under s without
// compositing anything.
func Resolve(rs Rasters, s Settings) Grid {
	maxW, maxH := 0, 0
	top, bottom := 0, 0
	for i := range rs {
		m := rs[i].Metrics
		maxW = max(maxW, m.Width)
		maxH = max(maxH, m.Height)
		top = max(top, m.Top())
		bottom = max(bottom, -m.BearingY)
	}
	if len(rs) == 0 {
		fallback := max(int(math.Ceil(s.RenderHeight)), 0)
		maxW, maxH = fallback, fallback
	}

	var ascent int
	contentH := maxH
	if s.Alignment == AlignBaseline {
		descent := bottom
		ascent = top
		if !s.LineMetrics.IsZero() {
			ascent = max(int(math.Ceil(s.LineMetrics.Ascent)), 0)
			descent = max(int(math.Ceil(s.LineMetrics.Descent)), 0)
		}
		if len(rs) > 0 {
			contentH = max(contentH, ascent+descent)
		}
	}

	contentW := maxW
	if s.CellWidth > 0 {
		contentW = s.CellWidth
	}
	if s.CellHeight > 0 {
		contentH = s.CellHeight
	}

	p := Padding{
		Left:  max(s.Padding.Left, 0),
		Right: max(s.Padding.Right, 0),
		Up:    max(s.Padding.Up, 0),
		Down:  max(s.Padding.Down, 0),
	}
	g := Grid{
		CellWidth:     contentW + p.Left + p.Right,
		CellHeight:    contentH + p.Up + p.Down,
		ContentWidth:  contentW,
		ContentHeight: contentH,
		Padding:       p,
		Ascent:        ascent,
	}
	cols, rows := ResolveGrid(len(rs), g.CellWidth, g.CellHeight, s.Layout)
	g.Cols, g.Rows = max(cols, 0), max(rows, 0)
	if !g.fits() {
		// A grid that cannot be addressed holds no cells.
		g.Cols, g.Rows = 0, 0
	}
	return g
}

// Compose lays out rs according to s and blits every raster into a fresh
// atlas. It is total: degenerate input yields an empty or minimal atlas.
//
// Only the first Cols*Rows rasters are placed. A grid whose capacity or
// pixel area overflows int resolves to zero cells. Pixels falling outside their
// cell's content area are discarded, so oversized glyphs are clipped rather
// than written into neighbouring cells.
//
// Compose does not sort or deduplicate; see Render.
func Compose(rs Rasters, s Settings) (*Atlas, Info) {
	a, info, _ := ComposeContext(context.Background(), rs, s)
	return a, info
}

// cancelCheckInterval is the number of glyphs blitted between context checks.
const cancelCheckInterval = 64

// ComposeContext is like Compose but stops early when ctx is cancelled.
// A cancelled composition returns a nil atlas and ctx.Err(); a partially
// filled buffer is never returned.
func ComposeContext(ctx context.Context, rs Rasters, s Settings) (*Atlas, Info, error) {
	g := Resolve(rs, s)
	width, height := g.Size()
	atlas := &Atlas{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height),
	}

	placed := min(len(rs), g.Capacity())
	log := Logger()
	log.Debug("fontatlas: grid resolved",
		slog.String("layout", s.Layout.String()),
		slog.Int("cols", g.Cols),
		slog.Int("rows", g.Rows),
		slog.Int("cell_width", g.CellWidth),
		slog.Int("cell_height", g.CellHeight))
	if placed < len(rs) {
		log.Debug("fontatlas: glyphs beyond grid capacity dropped",
			slog.Int("dropped", len(rs)-placed))
	}

	for i := range placed {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, Info{}, err
			}
		}
		col, row := g.Cell(i, s.Direction)
		blit(atlas, &rs[i], g, col, row, s.Alignment)
	}
	if err := ctx.Err(); err != nil {
		return nil, Info{}, err
	}

	info := Info{
		CellWidth:   g.CellWidth,
		CellHeight:  g.CellHeight,
		Cols:        g.Cols,
		Rows:        g.Rows,
		CellFilled:  placed,
		Utilization: g.Utilization(placed),
		Padding:     g.Padding,
		Ascent:      g.Ascent,
	}
	return atlas, info, nil
}

// blit copies one raster into its cell. Each source row is clipped to the
// cell content area and to the atlas, then copied as a single span.
func blit(a *Atlas, r *GlyphRaster, g Grid, col, row int, align Alignment) {
	m := r.Metrics
	if m.Width <= 0 || m.Height <= 0 {
		return
	}

	originX := col*g.CellWidth + g.Padding.Left
	originY := row*g.CellHeight + g.Padding.Up

	offX := floorDiv(g.ContentWidth-m.Width, 2)
	offY := verticalOffset(m, g, align)

	// Horizontal span of source columns that stays inside the cell.
	sx0 := max(0, -offX)
	sx1 := min(m.Width, g.ContentWidth-offX)
	// Also stay inside the atlas.
	sx1 = min(sx1, a.Width-(originX+offX))
	if sx0 >= sx1 {
		return
	}

	for sy := range m.Height {
		cy := offY + sy
		if cy < 0 || cy >= g.ContentHeight {
			continue
		}
		y := originY + cy
		if y < 0 || y >= a.Height {
			continue
		}
		src0 := sy*m.Width + sx0
		src1 := sy*m.Width + sx1
		if src1 > len(r.Pixels) {
			src1 = len(r.Pixels)
			if src0 >= src1 {
				return
			}
		}
		dst := y*a.Width + originX + offX + sx0
		copy(a.Pix[dst:dst+(src1-src0)], r.Pixels[src0:src1])
	}
}

// verticalOffset returns the top of the bitmap inside the content area,
// clamped so the bitmap starts within the cell.
func verticalOffset(m Metrics, g Grid, align Alignment) int {
	var off int
	if align == AlignCenter {
		off = floorDiv(g.ContentHeight-m.Height, 2)
	} else {
		off = g.Ascent - m.Top()
	}
	if m.Height > g.ContentHeight {
		return 0
	}
	return min(max(off, 0), g.ContentHeight-m.Height)
}

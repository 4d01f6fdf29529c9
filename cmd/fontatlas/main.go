// Command fontatlas rasterizes the glyphs of a font into a grayscale
// texture atlas and writes it as a PNG file.
//
// Usage:
//
//	fontatlas -font DejaVuSans.ttf -height 16 -layout packed -charset ascii
//
// The output file defaults to "<font stem>-(w<cell width>-h<cell height>).png".
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/runenames"

	"github.com/gogpu/fontatlas"
	"github.com/gogpu/fontatlas/export"
	"github.com/gogpu/fontatlas/fontface"
)

func main() {
	var (
		fontName  = flag.String("font", "", "font file path or installed font name (required)")
		height    = flag.Float64("height", 8, "render height in pixels")
		layout    = flag.String("layout", "squarish", "squarish, horizontal, vertical, packed, packed-flipped or custom:COLSxROWS")
		direction = flag.String("direction", "ltr", "fill direction: ltr or ttb")
		align     = flag.String("align", "baseline", "vertical alignment: baseline or center")
		sortBy    = flag.String("sort", "brightness", "sort property: none, brightness, width or height")
		dedupBy   = flag.String("dedup", "brightness", "dedup property: none, brightness, width or height")
		exact     = flag.Bool("exact", true, "drop glyphs with identical bitmaps")
		charset   = flag.String("charset", "all", "characters to rasterize: "+strings.Join(fontface.CharsetNames, ", ")+", range:U+XXXX-U+YYYY or chars:...")
		padding   = flag.String("padding", "", "cell padding: N, H,V or L,R,U,D")
		cell      = flag.String("cell", "", "fixed cell content size WxH (default fits the largest glyph)")
		output    = flag.String("o", "", "output file (default derived from the font name and cell size)")
		scale     = flag.Int("scale", 1, "nearest-neighbour scale factor of the written image")
		maxDim    = flag.Int("max-dim", fontatlas.MaxTextureDimension, "largest allowed atlas dimension, 0 disables the check")
		portable  = flag.Bool("portable", false, "limit the atlas to the texture size every GPU supports")
		force     = flag.Bool("force", false, "write the atlas even when it exceeds the maximum dimension")
		list      = flag.Bool("list", false, "list the glyphs placed in the atlas instead of writing it")
		verbose   = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	fontatlas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *fontName == "" {
		flag.Usage()
		os.Exit(2)
	}

	settings, err := buildSettings(*height, *layout, *direction, *align, *sortBy, *dedupBy, *padding, *cell)
	if err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}
	settings.DedupExact = *exact
	if err := settings.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	cs, err := fontface.ParseCharset(*charset)
	if err != nil {
		log.Fatalf("Invalid charset: %v", err)
	}

	face, err := fontface.Resolve(*fontName)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	defer face.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if settings.Alignment == fontatlas.AlignBaseline {
		lm, err := face.LineMetrics(settings.RenderHeight)
		if err != nil {
			log.Fatalf("Failed to read line metrics: %v", err)
		}
		settings.LineMetrics = lm
	}

	rs, err := face.Rasterize(ctx, cs.Runes(), settings.RenderHeight)
	if err != nil {
		log.Fatalf("Failed to rasterize %s: %v", face.Name(), err)
	}
	total := len(rs)
	for _, p := range fontatlas.Properties[1:] {
		log.Printf("%d duplicate(s) by %s", rs.CountDuplicates(p), p)
	}

	session := fontatlas.NewSession()
	res, err := session.Render(ctx, rs, settings)
	if err != nil {
		log.Fatalf("Render failed: %v", err)
	}
	atlas, info := res.Atlas, res.Info
	log.Printf("Rasterized %d of %d glyph(s) from %s at %gpx: %s",
		info.CellFilled, total, face.Name(), settings.RenderHeight, info)

	if *list {
		listGlyphs(res.Glyphs, settings, info)
		return
	}

	limit := *maxDim
	if *portable {
		limit = fontatlas.DefaultDeviceMaxDimension()
	}
	if err := atlas.CheckSize(limit); err != nil {
		if !*force {
			log.Fatalf("Not writing atlas: %v (lower -height or use fewer glyphs)", err)
		}
		fontatlas.Logger().Warn("writing oversized atlas", slog.String("reason", err.Error()))
	}

	path := *output
	if path == "" {
		path = export.Filename(face.Stem(), info)
	}
	if err := export.WritePNG(path, atlas, export.WithScale(*scale)); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Atlas saved to %s (%dx%d)\n", path, atlas.Width, atlas.Height)
}

func buildSettings(height float64, layout, direction, align, sortBy, dedupBy, padding, cell string) (fontatlas.Settings, error) {
	s := fontatlas.DefaultSettings()
	s.RenderHeight = height

	var errs []error
	var err error
	if s.Layout, err = fontatlas.ParseLayout(layout); err != nil {
		errs = append(errs, err)
	}
	if s.Direction, err = fontatlas.ParseDirection(direction); err != nil {
		errs = append(errs, err)
	}
	if s.Alignment, err = fontatlas.ParseAlignment(align); err != nil {
		errs = append(errs, err)
	}
	if s.SortBy, err = fontatlas.ParseProperty(sortBy); err != nil {
		errs = append(errs, err)
	}
	if s.DedupBy, err = fontatlas.ParseProperty(dedupBy); err != nil {
		errs = append(errs, err)
	}
	if s.Padding, err = fontatlas.ParsePadding(padding); err != nil {
		errs = append(errs, err)
	}
	if cell != "" {
		if s.CellWidth, s.CellHeight, err = parseSize(cell); err != nil {
			errs = append(errs, err)
		}
	}
	return s, errors.Join(errs...)
}

func parseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if ok {
		w, err = strconv.Atoi(ws)
		if err == nil {
			h, err = strconv.Atoi(hs)
		}
	}
	if !ok || err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid cell size %q, want WxH", s)
	}
	return w, h, nil
}

// listGlyphs prints the placed glyphs in atlas order with their cell.
func listGlyphs(rs fontatlas.Rasters, s fontatlas.Settings, info fontatlas.Info) {
	grid := fontatlas.Grid{Cols: info.Cols, Rows: info.Rows}
	for i := range rs {
		g := &rs[i]
		col, row := grid.Cell(i, s.Direction)
		name := runenames.Name(g.Rune)
		if name == "" {
			name = "<unnamed>"
		}
		fmt.Printf("%4d %4d  U+%04X  %-40s %3dx%-3d brightness %d\n",
			col, row, g.Rune, name, g.Metrics.Width, g.Metrics.Height, g.Brightness())
	}
	fmt.Printf("%d of %d cell(s) used, %.1f%% utilization\n",
		info.CellFilled, grid.Capacity(), info.Utilization*100)
}

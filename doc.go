// Package fontatlas packs rasterized font glyphs into a single grayscale atlas.
//
// # Overview
//
// A font face is rasterized into a collection of [GlyphRaster] values, one
// coverage bitmap per glyph. The collection can be reordered and filtered
// ([Rasters.SortBy], [Rasters.DedupBy], [Rasters.DedupExact]), a grid shape
// is chosen by a [Layout], and [Compose] blits every bitmap into its cell of
// one flat pixel buffer.
//
// # Quick Start
//
//	face, err := fontface.Load("DejaVuSansMono.ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rasters, err := face.Rasterize(ctx, nil, 16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s := fontatlas.DefaultSettings()
//	s.Layout = fontatlas.Packed(false)
//	atlas, info := fontatlas.Render(rasters, s)
//	if err := export.WritePNG(export.Filename(face.Stem(), info), atlas); err != nil {
//	    log.Fatal(err)
//	}
//
// # Layouts
//
// Horizontal and Vertical lay every glyph in one strip. Squarish aims for a
// square texture in pixels. Packed picks a column count that divides the
// glyph count with as few empty trailing cells as possible. Custom takes the
// caller's grid verbatim; glyphs beyond its capacity are dropped.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left of the atlas
//   - X increases right, Y increases down
//   - Glyph bearings follow font conventions: BearingY is measured upward
//     from the baseline to the bottom edge of the bitmap
//
// # Concurrency
//
// Compositing is synchronous and owns no shared state. Use [Session] when a
// presentation layer may start renders faster than they finish.
package fontatlas

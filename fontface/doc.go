// Package fontface loads TrueType and OpenType fonts and rasterizes their
// glyphs into coverage bitmaps for the fontatlas compositor.
//
// # Loading
//
// A Face is loaded from a file, from memory, or by system font name:
//
//	face, err := fontface.Load("fonts/Go-Regular.ttf")
//	face, err := fontface.LoadBytes("goregular", goregular.TTF)
//	face, err := fontface.Resolve("DejaVuSans")
//
// Load failures are *LoadError values that match ErrOpenFailed or
// ErrParseFailed with errors.Is.
//
// # Rasterizing
//
// Rasterize returns one fontatlas.GlyphRaster per requested character, in
// request order. A nil character list rasterizes every character the font
// maps, sorted by code point:
//
//	rs, err := face.Rasterize(ctx, nil, 16)
//
// Glyphs are rasterized in parallel. Every worker owns its own
// golang.org/x/image/font/opentype face, and results are cached per
// (character, height) so re-rendering with new layout settings does not
// rasterize again.
//
// # Charsets
//
// ParseCharset turns a charset description such as "ascii", "alnum" or
// "range:U+0400-U+04FF" into the character list passed to Rasterize.
//
// Face is safe for concurrent use. Call Close to stop its workers.
package fontface

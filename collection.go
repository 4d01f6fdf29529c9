package fontatlas

import (
	"cmp"
	"slices"
)

// Rasters is an ordered collection of glyph rasters.
//
// The initial order is the font's enumeration order. The operations below
// reorder or filter the collection in place; pixel data is never copied.
type Rasters []GlyphRaster

// SortBy sorts the collection by p in ascending order.
// The sort is stable: rasters with equal values keep their relative order.
// PropertyNone leaves the collection untouched.
func (rs Rasters) SortBy(p Property) {
	if p == PropertyNone {
		return
	}
	slices.SortStableFunc(rs, func(a, b GlyphRaster) int {
		return cmp.Compare(a.Property(p), b.Property(p))
	})
}

// DedupBy keeps the first raster, in current order, for every distinct
// value of p and drops the rest. Running it after SortBy changes which
// raster counts as first.
func (rs *Rasters) DedupBy(p Property) {
	if p == PropertyNone {
		return
	}
	seen := make(map[uint64]struct{}, len(*rs))
	*rs = retain(*rs, func(g *GlyphRaster) bool {
		v := g.Property(p)
		if _, ok := seen[v]; ok {
			return false
		}
		seen[v] = struct{}{}
		return true
	})
}

// DedupExact keeps the first raster for every distinct pixel content.
// Rasters with byte-identical bitmaps collapse into one even when their
// metrics differ.
func (rs *Rasters) DedupExact() {
	seen := make(map[string]struct{}, len(*rs))
	*rs = retain(*rs, func(g *GlyphRaster) bool {
		key := string(g.Pixels)
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
		return true
	})
}

// CountDuplicates returns how many rasters DedupBy(p) would drop.
func (rs Rasters) CountDuplicates(p Property) int {
	if p == PropertyNone {
		return 0
	}
	counts := make(map[uint64]int, len(rs))
	for i := range rs {
		counts[rs[i].Property(p)]++
	}
	dups := 0
	for _, n := range counts {
		dups += n - 1
	}
	return dups
}

// retain filters rs in place, preserving order, and clears the tail so
// dropped pixel slices can be collected.
func retain(rs Rasters, keep func(*GlyphRaster) bool) Rasters {
	n := 0
	for i := range rs {
		if keep(&rs[i]) {
			rs[n] = rs[i]
			n++
		}
	}
	clear(rs[n:])
	return rs[:n]
}

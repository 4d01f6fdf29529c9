package fontatlas

import (
	"slices"
	"testing"
)

func runes(rs Rasters) string {
	out := make([]rune, len(rs))
	for i := range rs {
		out[i] = rs[i].Rune
	}
	return string(out)
}

func TestRasters_SortByStable(t *testing.T) {
	rs := Rasters{
		raster('a', 1, 1, 0, 3),
		raster('b', 1, 1, 0, 1),
		raster('c', 1, 1, 0, 3),
		raster('d', 1, 1, 0, 2),
		raster('e', 1, 1, 0, 1),
	}
	rs.SortBy(PropertyBrightness)
	if got := runes(rs); got != "bedac" {
		t.Errorf("SortBy(Brightness) order = %q, want %q", got, "bedac")
	}
}

func TestRasters_SortByDimension(t *testing.T) {
	rs := Rasters{
		raster('w', 3, 1, 0, 1),
		raster('n', 1, 3, 0, 1),
		raster('m', 2, 2, 0, 1),
	}
	rs.SortBy(PropertyWidth)
	if got := runes(rs); got != "nmw" {
		t.Errorf("SortBy(Width) order = %q, want nmw", got)
	}
	rs.SortBy(PropertyHeight)
	if got := runes(rs); got != "wmn" {
		t.Errorf("SortBy(Height) order = %q, want wmn", got)
	}

	before := runes(rs)
	rs.SortBy(PropertyNone)
	if got := runes(rs); got != before {
		t.Errorf("SortBy(None) changed order to %q", got)
	}
}

func TestRasters_DedupBy(t *testing.T) {
	rs := Rasters{
		raster('A', 1, 1, 0, 1),
		raster('B', 1, 1, 0, 2),
		raster('C', 1, 1, 0, 1),
	}
	rs.DedupBy(PropertyBrightness)
	if got := runes(rs); got != "AB" {
		t.Errorf("DedupBy(Brightness) = %q, want AB", got)
	}

	rs = Rasters{raster('x', 2, 1, 0, 1), raster('y', 2, 3, 0, 1)}
	rs.DedupBy(PropertyNone)
	if len(rs) != 2 {
		t.Errorf("DedupBy(None) len = %d, want 2", len(rs))
	}
	rs.DedupBy(PropertyWidth)
	if got := runes(rs); got != "x" {
		t.Errorf("DedupBy(Width) = %q, want x", got)
	}
}

func TestRasters_DedupExact(t *testing.T) {
	l := raster('l', 1, 4, 0, 200)
	i := raster('i', 1, 4, 1, 200) // same bitmap, different metrics
	dot := raster('.', 1, 1, 0, 200)
	pipe := raster('|', 1, 4, 0, 199)

	rs := Rasters{l, dot, i, pipe}
	rs.DedupExact()
	if got := runes(rs); got != "l.|" {
		t.Errorf("DedupExact() = %q, want %q", got, "l.|")
	}
}

func TestRasters_SortThenDedupKeepsFirstInSortedOrder(t *testing.T) {
	rs := Rasters{
		raster('a', 2, 1, 0, 5), // width 2
		raster('b', 1, 1, 0, 9), // width 1
		raster('c', 1, 1, 0, 3), // width 1
	}
	rs.SortBy(PropertyBrightness)
	rs.DedupBy(PropertyWidth)
	if got := runes(rs); got != "ca" {
		t.Errorf("sorted dedup = %q, want ca", got)
	}
}

func TestRasters_CountDuplicates(t *testing.T) {
	rs := Rasters{
		raster('a', 1, 1, 0, 1),
		raster('b', 1, 1, 0, 1),
		raster('c', 1, 1, 0, 2),
		raster('d', 1, 1, 0, 1),
	}
	tests := []struct {
		p    Property
		want int
	}{
		{PropertyNone, 0},
		{PropertyBrightness, 2},
		{PropertyWidth, 3},
		{PropertyHeight, 3},
	}
	for _, tt := range tests {
		if got := rs.CountDuplicates(tt.p); got != tt.want {
			t.Errorf("CountDuplicates(%v) = %d, want %d", tt.p, got, tt.want)
		}
		cp := slices.Clone(rs)
		cp.DedupBy(tt.p)
		if len(rs)-len(cp) != tt.want {
			t.Errorf("DedupBy(%v) dropped %d, CountDuplicates says %d", tt.p, len(rs)-len(cp), tt.want)
		}
	}
}

func TestRasters_EmptyOperations(t *testing.T) {
	var rs Rasters
	rs.SortBy(PropertyBrightness)
	rs.DedupBy(PropertyBrightness)
	rs.DedupExact()
	if len(rs) != 0 || rs.CountDuplicates(PropertyWidth) != 0 {
		t.Errorf("operations on empty collection produced %d rasters", len(rs))
	}
}

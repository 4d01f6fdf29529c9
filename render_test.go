package fontatlas

import (
	"context"
	"errors"
	"testing"
)

func TestPrepare(t *testing.T) {
	rs := Rasters{
		raster('a', 1, 1, 0, 3),
		raster('b', 1, 1, 0, 1),
		raster('c', 3, 1, 0, 1), // brightness 3, different bitmap
		raster('d', 2, 1, 0, 1), // brightness 2
		raster('e', 1, 2, 0, 1), // same bitmap as d
	}

	s := DefaultSettings()
	s.DedupBy = PropertyNone
	p := append(Rasters(nil), rs...)
	Prepare(&p, s)
	if got := runes(p); got != "bdac" {
		t.Errorf("sort + exact dedup = %q, want bdac", got)
	}

	s = DefaultSettings()
	p = append(Rasters(nil), rs...)
	Prepare(&p, s)
	if got := runes(p); got != "bda" {
		t.Errorf("default preparation = %q, want bda", got)
	}

	s.SortBy, s.DedupBy, s.DedupExact = PropertyNone, PropertyNone, false
	p = append(Rasters(nil), rs...)
	Prepare(&p, s)
	if got := runes(p); got != "abcde" {
		t.Errorf("no-op preparation = %q, want abcde", got)
	}
}

func TestRender(t *testing.T) {
	rs := Rasters{raster('a', 2, 2, 0, 1), raster('b', 2, 2, 0, 1), raster('c', 1, 1, 0, 9)}
	a, info := Render(rs, DefaultSettings())
	if info.CellFilled != 2 {
		t.Errorf("CellFilled = %d, want 2 after deduplication", info.CellFilled)
	}
	if len(a.Pix) != a.Width*a.Height {
		t.Errorf("len(Pix) = %d, want %d", len(a.Pix), a.Width*a.Height)
	}
}

func TestRenderContext(t *testing.T) {
	rs := Rasters{raster('a', 1, 1, 0, 1)}
	a, info, err := RenderContext(context.Background(), rs, DefaultSettings())
	if err != nil || a == nil || info.CellFilled != 1 {
		t.Fatalf("RenderContext() = %v, %+v, %v", a, info, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := RenderContext(ctx, rs, DefaultSettings()); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderContext() with cancelled context = %v", err)
	}
}

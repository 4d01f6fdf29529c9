package fontatlas

import (
	"context"
	"log/slog"
)

// Prepare applies the ordering and filtering of s to rs in place:
// SortBy first, then DedupBy, then DedupExact.
func Prepare(rs *Rasters, s Settings) {
	before := len(*rs)
	rs.SortBy(s.SortBy)
	rs.DedupBy(s.DedupBy)
	if s.DedupExact {
		rs.DedupExact()
	}
	if dropped := before - len(*rs); dropped > 0 {
		Logger().Debug("fontatlas: duplicates removed",
			slog.Int("dropped", dropped),
			slog.Int("remaining", len(*rs)))
	}
}

// Render prepares rs and composites it. Render takes ownership of rs:
// the collection is reordered and filtered in place.
func Render(rs Rasters, s Settings) (*Atlas, Info) {
	Prepare(&rs, s)
	return Compose(rs, s)
}

// RenderContext is Render with cooperative cancellation.
func RenderContext(ctx context.Context, rs Rasters, s Settings) (*Atlas, Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, Info{}, err
	}
	Prepare(&rs, s)
	return ComposeContext(ctx, rs, s)
}

package fontatlas

import (
	"log/slog"

	"github.com/gogpu/gputypes"
)

// MaxTextureDimension is the largest width or height an atlas may have to
// be considered renderable by default.
const MaxTextureDimension = 16384

// Renderable reports whether the atlas fits MaxTextureDimension.
func (a *Atlas) Renderable() bool {
	return max(a.Width, a.Height) <= MaxTextureDimension
}

// CheckSize returns a *SizeExceededError when the atlas is wider or taller
// than maxDim. A non-positive maxDim disables the check.
//
// The check is advisory. Callers decide whether to skip display or export;
// the remedy is a smaller render height or fewer glyphs.
func (a *Atlas) CheckSize(maxDim int) error {
	if maxDim <= 0 || max(a.Width, a.Height) <= maxDim {
		return nil
	}
	Logger().Warn("fontatlas: atlas exceeds texture limit",
		slog.Int("width", a.Width),
		slog.Int("height", a.Height),
		slog.Int("max", maxDim))
	return &SizeExceededError{Width: a.Width, Height: a.Height, Max: maxDim}
}

// MaxDimensionFromLimits returns the largest 2D texture dimension allowed
// by a GPU device's limits.
func MaxDimensionFromLimits(l gputypes.Limits) int {
	return int(l.MaxTextureDimension2D)
}

// DefaultDeviceMaxDimension returns the 2D texture limit every WebGPU
// device is guaranteed to support. It is lower than MaxTextureDimension and
// suits atlases meant for portable GPU upload.
func DefaultDeviceMaxDimension() int {
	return MaxDimensionFromLimits(gputypes.DefaultLimits())
}

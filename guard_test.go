package fontatlas

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestAtlas_CheckSize(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		max    int
		exceed bool
	}{
		{"fits", 100, 100, 128, false},
		{"exact", 128, 1, 128, false},
		{"too wide", 129, 1, 128, true},
		{"too tall", 1, 129, 128, true},
		{"disabled", 1 << 20, 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Atlas{Width: tt.w, Height: tt.h}
			err := a.CheckSize(tt.max)
			if (err != nil) != tt.exceed {
				t.Fatalf("CheckSize(%d) = %v, exceed = %v", tt.max, err, tt.exceed)
			}
			if !tt.exceed {
				return
			}
			if !errors.Is(err, ErrSizeExceeded) {
				t.Errorf("error %v does not match ErrSizeExceeded", err)
			}
			var se *SizeExceededError
			if !errors.As(err, &se) || se.Width != tt.w || se.Height != tt.h || se.Max != tt.max {
				t.Errorf("error = %#v", err)
			}
		})
	}
}

func TestAtlas_Renderable(t *testing.T) {
	if !(&Atlas{Width: MaxTextureDimension, Height: 10}).Renderable() {
		t.Error("atlas at the limit should be renderable")
	}
	if (&Atlas{Width: 10, Height: MaxTextureDimension + 1}).Renderable() {
		t.Error("atlas over the limit should not be renderable")
	}
}

func TestAtlas_RenderableDoesNotLog(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if (&Atlas{Width: MaxTextureDimension + 1, Height: 1}).Renderable() {
		t.Fatal("atlas over the limit should not be renderable")
	}
	if buf.Len() != 0 {
		t.Errorf("Renderable logged: %s", buf.String())
	}

	_ = (&Atlas{Width: MaxTextureDimension + 1, Height: 1}).CheckSize(MaxTextureDimension)
	if buf.Len() == 0 {
		t.Error("CheckSize should warn about an oversized atlas")
	}
}

func TestMaxDimensionFromLimits(t *testing.T) {
	if got := MaxDimensionFromLimits(gputypes.Limits{MaxTextureDimension2D: 4096}); got != 4096 {
		t.Errorf("MaxDimensionFromLimits() = %d, want 4096", got)
	}
	d := DefaultDeviceMaxDimension()
	if d <= 0 || d > MaxTextureDimension {
		t.Errorf("DefaultDeviceMaxDimension() = %d, want within (0, %d]", d, MaxTextureDimension)
	}
}

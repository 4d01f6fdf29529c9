package fontatlas

import (
	"errors"
	"fmt"
)

// ErrSizeExceeded is reported by the size guard when an atlas is larger
// than the texture dimension a display or GPU can accept. It is advisory:
// the atlas itself is still valid and can be exported.
var ErrSizeExceeded = errors.New("fontatlas: texture too large")

// SizeExceededError describes an atlas that failed the size guard.
type SizeExceededError struct {
	Width, Height int
	Max           int
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("fontatlas: texture %dx%d exceeds maximum dimension %d", e.Width, e.Height, e.Max)
}

// Unwrap makes errors.Is(err, ErrSizeExceeded) hold.
func (e *SizeExceededError) Unwrap() error {
	return ErrSizeExceeded
}

// ParseError is returned when a textual setting cannot be parsed.
type ParseError struct {
	What  string
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fontatlas: invalid %s %q", e.What, e.Input)
}

// SettingsError represents a settings validation error.
type SettingsError struct {
	Field  string
	Reason string
}

func (e *SettingsError) Error() string {
	return "fontatlas: invalid settings." + e.Field + ": " + e.Reason
}

// ErrSuperseded is returned by Session.Render when a newer render started
// before this one finished. Its result is discarded.
var ErrSuperseded = errors.New("fontatlas: render superseded by a newer request")

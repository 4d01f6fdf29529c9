package fontface

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fontface package.
var (
	// ErrOpenFailed is returned when a font file cannot be read or found.
	ErrOpenFailed = errors.New("fontface: cannot open font")

	// ErrParseFailed is returned when font data is not a usable font.
	ErrParseFailed = errors.New("fontface: cannot parse font")

	// ErrInvalidHeight is returned by Rasterize for a non-positive height.
	ErrInvalidHeight = errors.New("fontface: pixel height must be positive")

	// ErrClosed is returned when a closed Face is used.
	ErrClosed = errors.New("fontface: face is closed")
)

// LoadError describes a failed font load.
//
// It matches its Kind (ErrOpenFailed or ErrParseFailed) and its underlying
// cause with errors.Is.
type LoadError struct {
	Kind error
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns the kind and the cause.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// CharsetError is returned when a charset description cannot be parsed.
type CharsetError struct {
	Input  string
	Reason string
}

func (e *CharsetError) Error() string {
	return fmt.Sprintf("fontface: invalid charset %q: %s", e.Input, e.Reason)
}

var errEmptyData = errors.New("empty font data")

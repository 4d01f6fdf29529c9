package fontatlas

import (
	"context"
	"errors"
	"sync"
)

// Result is a completed render published by a Session.
type Result struct {
	Atlas *Atlas
	Info  Info

	// Glyphs are the placed rasters in atlas order.
	Glyphs Rasters

	// Generation increases with every render started on the session.
	Generation uint64
}

// Session serializes renders triggered by a presentation layer, for
// example one render per settings change.
//
// Starting a render cancels the one in flight, and only the most recently
// started render can publish its result, so Current never goes backwards.
//
// Session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	current *Result
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Render cancels any in-flight render and renders rs with settings.
// The session takes ownership of rs.
//
// It returns ErrSuperseded when another render started meanwhile.
func (s *Session) Render(ctx context.Context, rs Rasters, settings Settings) (*Result, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	rctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	var (
		atlas *Atlas
		info  Info
		err   error
	)
	if err = rctx.Err(); err == nil {
		Prepare(&rs, settings)
		atlas, info, err = ComposeContext(rctx, rs, settings)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return nil, ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return nil, ErrSuperseded
		}
		return nil, err
	}
	s.current = &Result{Atlas: atlas, Info: info, Glyphs: rs[:info.CellFilled], Generation: gen}
	return s.current, nil
}

// Current returns the latest published result, or nil before the first
// render completes.
func (s *Session) Current() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Cancel stops the in-flight render, if any. The current result stays.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}

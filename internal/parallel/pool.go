// Package parallel runs glyph rasterization across a fixed set of workers.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by Range when the pool closes before every range
// was handed out.
var ErrClosed = errors.New("parallel: pool closed")

// WorkerPool is a pool of goroutines that rasterize glyph ranges.
//
// Work is handed out as contiguous index ranges, one queue per worker, so a
// worker can keep per-worker state (such as a font face that must not be
// shared) for the whole range.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func(worker int)
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(int), workers),
		done:       make(chan struct{}),
	}
	for i := range workers {
		p.workQueues[i] = make(chan func(int), 4)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

// worker runs queued work until the pool is closed.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	queue := p.workQueues[id]
	for {
		select {
		case <-p.done:
			for {
				select {
				case work := <-queue:
					work(id)
				default:
					return
				}
			}
		case work := <-queue:
			work(id)
		}
	}
}

// Range splits [0, n) into at most Workers() contiguous ranges and calls
// fn(worker, lo, hi) for each of them on the pool, waiting for all calls to
// return. Range stops handing out ranges once ctx is done and returns
// ctx.Err(); fn is expected to watch ctx itself for long ranges.
//
// If the pool is closed, the ranges run on the calling goroutine. When
// Close lands while ranges are still being handed out, Range returns
// ErrClosed and the remaining ranges are not run.
func (p *WorkerPool) Range(ctx context.Context, n int, fn func(worker, lo, hi int)) error {
	if err := ctx.Err(); err != nil || n <= 0 {
		return err
	}
	parts := min(p.workers, n)
	if !p.running.Load() {
		for i := range parts {
			lo, hi := Split(n, parts, i)
			fn(0, lo, hi)
		}
		return ctx.Err()
	}

	var wg sync.WaitGroup
	var err error
	for i := range parts {
		lo, hi := Split(n, parts, i)
		wg.Add(1)
		work := func(worker int) {
			defer wg.Done()
			fn(worker, lo, hi)
		}
		select {
		case p.workQueues[i] <- work:
		case <-p.done:
			wg.Done()
			err = ErrClosed
		case <-ctx.Done():
			wg.Done()
			err = ctx.Err()
		}
		if err != nil {
			break
		}
	}
	wg.Wait()
	if err != nil {
		return err
	}
	return ctx.Err()
}

// Split returns the i-th of parts contiguous ranges covering [0, n).
// The first n%parts ranges are one element longer.
func Split(n, parts, i int) (lo, hi int) {
	size, rem := n/parts, n%parts
	lo = i*size + min(i, rem)
	hi = lo + size
	if i < rem {
		hi++
	}
	return lo, hi
}

// Close stops the workers after the queued work has run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

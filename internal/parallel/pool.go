package parallel

import (
	"runtime"
	"sync"
)

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.Y1 - b.Y0
}

// Split divides rows [y0, y1) into bands of at most height rows.
// A non-positive height yields a single band.
func Split(y0, y1, height int) []Band {
	if y1 <= y0 {
		return nil
	}
	if height <= 0 {
		return []Band{{Y0: y0, Y1: y1}}
	}
	bands := make([]Band, 0, (y1-y0+height-1)/height)
	for y := y0; y < y1; y += height {
		bands = append(bands, Band{Y0: y, Y1: min(y+height, y1)})
	}
	return bands
}

// job is one band of a Run call.
type job struct {
	band Band
	fn   func(Band)
	wg   *sync.WaitGroup
}

// Pool is a fixed set of goroutines fed from a shared queue.
//
// Thread safety: Pool is safe for concurrent use. Concurrent Run calls
// share the workers.
type Pool struct {
	workers int
	jobs    chan job
	wg      sync.WaitGroup

	// mu orders submissions against Close: Run holds it shared while
	// queueing, Close holds it exclusively while closing the queue.
	mu     sync.RWMutex
	closed bool
}

// NewPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: workers,
		jobs:    make(chan job, max(workers*4, 8)),
	}
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		j.fn(j.band)
		j.wg.Done()
	}
}

// Run calls fn once per band and returns when all calls have finished.
// A single band, a single worker or a closed pool runs inline on the
// calling goroutine.
func (p *Pool) Run(bands []Band, fn func(Band)) {
	if len(bands) == 0 {
		return
	}

	p.mu.RLock()
	if len(bands) == 1 || p.workers == 1 || p.closed {
		p.mu.RUnlock()
		for _, b := range bands {
			fn(b)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(bands))
	for _, b := range bands {
		p.jobs <- job{band: b, fn: fn, wg: &wg}
	}
	p.mu.RUnlock()
	wg.Wait()
}

// Close stops the workers once every queued band has run.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *Pool) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return !p.closed
}

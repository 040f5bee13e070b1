// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Submit once the pool has been closed.
var ErrClosed = errors.New("pool: closed")

// Pool owns a set of reusable [Worker] goroutines and hands them out
// to run submitted functions, growing lazily up to a maximum and
// recycling idle workers rather than spawning one goroutine per job.
//
// Pool keeps exactly one mutex guarding both its active and unused
// worker sets, the same single-lock design the worker pool it is
// grounded on uses to avoid ordering bugs between acquiring and
// releasing workers.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	unused  []*Worker
	active  map[*Worker]struct{}
	max     int
	spawned int
	closed  bool
}

// New creates a Pool that keeps at least minThreads workers warm and
// never spawns more than maxThreads at once. It panics if minThreads is
// negative, maxThreads is less than 1, or minThreads exceeds
// maxThreads.
func New(minThreads, maxThreads int) *Pool {
	if minThreads < 0 || maxThreads < 1 || minThreads > maxThreads {
		panic("pool: invalid minThreads/maxThreads")
	}
	p := &Pool{
		active: make(map[*Worker]struct{}, maxThreads),
		max:    maxThreads,
	}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < minThreads; i++ {
		w := NewWorker()
		p.unused = append(p.unused, w)
		p.spawned++
	}
	return p
}

// Submit runs fn on a worker, blocking the caller until one is
// available (recycled or newly spawned up to the pool's maximum). It
// returns ErrClosed if the pool has been closed.
func (p *Pool) Submit(fn func()) error {
	w, err := p.acquire()
	if err != nil {
		return err
	}
	w.Execute(func() {
		fn()
		p.release(w)
	})
	return nil
}

// TrySubmit runs fn on a worker without blocking. It returns false if
// every spawned worker is busy and the pool is already at its maximum.
func (p *Pool) TrySubmit(fn func()) bool {
	w := p.tryGetUnusedThread()
	if w == nil {
		return false
	}
	w.Execute(func() {
		fn()
		p.release(w)
	})
	return true
}

func (p *Pool) acquire() (*Worker, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		if p.closed {
			return nil, ErrClosed
		}
		if w := p.takeUnusedLocked(); w != nil {
			return w, nil
		}
		p.cond.Wait()
	}
}

func (p *Pool) tryGetUnusedThread() *Worker {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	return p.takeUnusedLocked()
}

// takeUnusedLocked returns an idle worker, spawning one if under the
// pool's maximum and none is idle. Must be called with p.mu held.
func (p *Pool) takeUnusedLocked() *Worker {
	var w *Worker
	if n := len(p.unused); n > 0 {
		w = p.unused[n-1]
		p.unused = p.unused[:n-1]
	} else if p.spawned < p.max {
		w = NewWorker()
		p.spawned++
	} else {
		return nil
	}
	p.active[w] = struct{}{}
	return w
}

// release returns a worker to the idle set, waking one blocked
// acquirer if any.
func (p *Pool) release(w *Worker) {
	p.mu.Lock()
	delete(p.active, w)
	if !p.closed {
		p.unused = append(p.unused, w)
	}
	p.mu.Unlock()
	p.cond.Signal()
}

// Close marks the pool closed, rejecting further Submit calls, then
// joins every worker the pool currently owns — idle or still running
// its last job — before returning.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	unused := p.unused
	p.unused = nil
	active := make([]*Worker, 0, len(p.active))
	for w := range p.active {
		active = append(active, w)
	}
	p.cond.Broadcast()
	p.mu.Unlock()

	for _, w := range unused {
		w.Join()
	}
	for _, w := range active {
		w.Join()
	}
}

// Len returns the number of workers the pool has spawned so far
// (idle + active). It is intended for diagnostics.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.spawned
}

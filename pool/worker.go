// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pool

import "sync"

// workerState mirrors the reusable worker's lifecycle: a goroutine
// that is born, runs an indefinite sequence of submitted functions one
// at a time, and is explicitly joined rather than left to exit on its
// own.
type workerState int32

const (
	stateIdle workerState = iota
	stateRunning
	stateJoining
	stateDone
	stateJoined
)

// Worker is a single goroutine that can be handed functions to run one
// at a time, indefinitely, without being recreated between jobs. It
// holds at most two functions at once: the one currently running and
// one queued behind it, so a caller can submit the next job before the
// current one finishes without blocking on a channel send.
//
// Worker is the unit [Pool] manages; most callers should use Pool
// instead of creating Workers directly.
type Worker struct {
	mu        sync.Mutex
	cond      *sync.Cond
	state     workerState
	queued    func()
	hasQueued bool
}

// NewWorker creates a Worker and starts its backing goroutine.
func NewWorker() *Worker {
	w := &Worker{state: stateIdle}
	w.cond = sync.NewCond(&w.mu)
	go w.run()
	return w
}

func (w *Worker) run() {
	w.mu.Lock()
	for {
		for !w.hasQueued && w.state != stateJoining {
			w.cond.Wait()
		}
		if w.state == stateJoining {
			break
		}
		fn := w.queued
		w.queued = nil
		w.hasQueued = false
		w.state = stateRunning
		w.mu.Unlock()

		fn()

		w.mu.Lock()
		if w.state != stateJoining {
			w.state = stateIdle
		}
		w.cond.Broadcast()
	}
	w.state = stateDone
	w.cond.Broadcast()
	w.mu.Unlock()
}

// TryExecute hands fn to the worker without blocking. It returns false
// if the worker already has a job queued, or if the worker is being or
// has been joined.
func (w *Worker) TryExecute(fn func()) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.hasQueued || w.state == stateJoining || w.state == stateDone || w.state == stateJoined {
		return false
	}
	w.queued = fn
	w.hasQueued = true
	w.cond.Broadcast()
	return true
}

// Execute hands fn to the worker, blocking the caller until the
// worker's queue slot frees up. It reports false if the worker is
// being or has been joined before a slot became available.
func (w *Worker) Execute(fn func()) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.hasQueued && w.state != stateJoining && w.state != stateDone && w.state != stateJoined {
		w.cond.Wait()
	}
	if w.state == stateJoining || w.state == stateDone || w.state == stateJoined {
		return false
	}
	w.queued = fn
	w.hasQueued = true
	w.cond.Broadcast()
	return true
}

// Join stops the worker's goroutine after it finishes any job
// currently running, and waits for it to exit. Join is idempotent.
func (w *Worker) Join() {
	w.mu.Lock()
	if w.state == stateJoined {
		w.mu.Unlock()
		return
	}
	w.state = stateJoining
	w.cond.Broadcast()
	for w.state != stateDone {
		w.cond.Wait()
	}
	w.state = stateJoined
	w.mu.Unlock()
}

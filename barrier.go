// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gcl

import "sync"

// Barrier is a reusable rendezvous point for a fixed (but adjustable)
// number of goroutines. Unlike [Latch], a Barrier can be arrived at
// repeatedly: each time every participant has arrived, an optional
// completion hook runs once on one of the arriving goroutines, and the
// barrier resets — optionally with a different participant count for
// the next phase — before releasing everyone.
//
// A Barrier goes through two sub-phases internally on every arrival:
// waiting for the rest of the current phase's participants
// ("arriving"), then, once the phase completes, waiting for every
// other arriver to also be released ("leaving") before the barrier is
// safe to arrive at again. This two-step handoff is what lets a
// completion hook safely shrink or grow the participant count between
// phases without a racing late arrival seeing stale state.
type Barrier struct {
	mu    sync.Mutex
	idle  *sync.Cond // gates new arrivals until the previous phase's leavers are done
	ready *sync.Cond // wakes arrivers once the phase completes

	threadCount    int64 // participants expected this phase
	newThreadCount int64 // participants expected next phase, set by the completer
	numWaiting     int64 // arrivals registered this phase
	numToLeave     int64 // arrivers yet to finish leaving this phase

	completion func() int64 // optional; a positive return value becomes the next phase's threadCount
}

// NewBarrier creates a Barrier for n participants. completion may be
// nil, in which case every phase keeps the previous phase's participant
// count (n, less any participants removed by ArriveAndDrop). When
// non-nil, completion runs exactly once per phase, on the goroutine
// that happened to be the phase's last arriver; a positive return value
// becomes the next phase's expected participant count, and a
// non-positive one keeps the current count.
func NewBarrier(n int64, completion func() int64) *Barrier {
	if n < 0 {
		panic("gcl: barrier count must be >= 0")
	}
	b := &Barrier{threadCount: n, newThreadCount: n, completion: completion}
	b.idle = sync.NewCond(&b.mu)
	b.ready = sync.NewCond(&b.mu)
	return b
}

// Arrive blocks the calling goroutine until every participant of the
// current phase has also called Arrive (or ArriveAndDrop), runs the
// completion hook once per phase, and then releases everyone.
func (b *Barrier) Arrive() {
	b.mu.Lock()
	b.arriveLocked(0)
	b.mu.Unlock()
}

// ArriveAndDrop behaves like Arrive for the current phase, but reduces
// the next phase's participant count by one, after the completion hook
// (if any) has set it. The reduced count carries into later phases
// until a completion hook returns a positive count, which replaces it.
// It reports ErrInvalidArgument if the barrier has no participants left
// to drop.
func (b *Barrier) ArriveAndDrop() error {
	b.mu.Lock()
	if b.threadCount == 0 {
		b.mu.Unlock()
		return ErrInvalidArgument
	}
	b.arriveLocked(1)
	b.mu.Unlock()
	return nil
}

// arriveLocked runs the shared arrive/complete/leave protocol. drop is
// 1 when the caller is dropping out of future phases, 0 otherwise.
// Must be called with b.mu held.
func (b *Barrier) arriveLocked(drop int64) {
	for b.numToLeave != 0 {
		b.idle.Wait()
	}
	b.numWaiting++
	if b.numWaiting == b.threadCount {
		b.numToLeave = b.threadCount
		newCount := b.threadCount
		if b.completion != nil {
			if hookCount := b.completion(); hookCount > 0 {
				newCount = hookCount
			}
		}
		b.newThreadCount = newCount
		b.ready.Broadcast()
	} else {
		for b.numToLeave == 0 {
			b.ready.Wait()
		}
	}
	if drop != 0 {
		b.newThreadCount--
	}
	if b.numToLeave == 1 {
		b.threadCount = b.newThreadCount
		b.numWaiting = 0
		b.idle.Broadcast()
	}
	b.numToLeave--
}

// Phase returns the barrier's current participant count. It is
// intended for diagnostics, not control flow.
func (b *Barrier) Phase() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.threadCount
}

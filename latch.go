// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package gcl

import "sync"

// Latch is a single-use countdown synchronization point. A Latch is
// created with a count of arrivals it expects; CountDown decrements
// that count, and Wait blocks until it reaches zero. Once the count
// reaches zero it stays at zero: a Latch cannot be reset or reused, and
// overshooting the count with CountDown is a caller bug reported as
// ErrLogic rather than a race.
type Latch struct {
	mu      sync.Mutex
	cond    *sync.Cond
	count   int64
	waiting int64
}

// NewLatch creates a Latch expecting n arrivals. NewLatch panics if n
// is negative, the same precondition the original counter-based
// coordinator enforces at construction.
func NewLatch(n int64) *Latch {
	if n < 0 {
		panic("gcl: latch count must be >= 0")
	}
	l := &Latch{count: n}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// CountDown decrements the latch's count by n (default 1). Once the
// count reaches zero, every blocked and future Wait call returns
// immediately. CountDown returns ErrLogic if n is greater than the
// current count, leaving the count at zero rather than going negative.
func (l *Latch) CountDown(n ...int64) error {
	delta := int64(1)
	if len(n) > 0 {
		delta = n[0]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if delta > l.count {
		l.count = 0
		l.cond.Broadcast()
		return ErrLogic
	}
	l.count -= delta
	if l.count == 0 {
		l.cond.Broadcast()
	}
	return nil
}

// Wait blocks the calling goroutine until the latch's count reaches
// zero.
func (l *Latch) Wait() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.waiting++
	for l.count != 0 {
		l.cond.Wait()
	}
	l.waiting--
}

// TryWait reports whether the latch's count has already reached zero,
// without blocking.
func (l *Latch) TryWait() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count == 0
}

// CountDownAndWait atomically decrements the count by one and then
// waits for it to reach zero, useful when every arriver is also a
// waiter (the rendezvous pattern). It returns ErrLogic under the same
// condition as CountDown.
func (l *Latch) CountDownAndWait() error {
	l.mu.Lock()
	if l.count == 0 {
		l.mu.Unlock()
		return ErrLogic
	}
	l.count--
	if l.count == 0 {
		l.cond.Broadcast()
		l.mu.Unlock()
		return nil
	}
	l.waiting++
	for l.count != 0 {
		l.cond.Wait()
	}
	l.waiting--
	l.mu.Unlock()
	return nil
}

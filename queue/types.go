// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// Queue is the combined producer-consumer interface shared by both bounded
// queue implementations in this package: Bounded (lock-based) and LockFree
// (lock-free). Callers that only need one side of the queue should depend
// on Writer or Reader instead.
//
// Unlike a plain channel, a Queue distinguishes four outcomes per operation
// instead of two: success, the transient conditions Full/Empty, and the
// terminal condition Closed. Blocking operations (WaitPush/WaitPop) only
// ever return the Closed error; non-blocking operations (TryPush/TryPop)
// additionally return ErrFull/ErrEmpty and, for the lock-free
// implementation, the advisory ErrBusy.
type Queue[T any] interface {
	Writer[T]
	Reader[T]

	// Cap returns the queue's fixed capacity.
	Cap() int

	// Close marks the queue closed. Blocked and future WaitPush/WaitPop
	// calls return ErrClosed once the queue has been drained (for
	// WaitPop: once no more buffered elements remain). Close is
	// idempotent.
	Close()

	// IsClosed reports whether Close has been called.
	IsClosed() bool

	// IsEmpty reports whether the queue currently holds no elements.
	// The result may be stale immediately under concurrent use; it is
	// intended for diagnostics and tests, not control flow.
	IsEmpty() bool
}

// Writer is the producer half of a Queue.
type Writer[T any] interface {
	// Push blocks until elem is accepted or the queue is closed.
	// Equivalent to calling WaitPush.
	Push(elem T) error

	// TryPush attempts to enqueue elem without blocking. It returns
	// ErrFull if the queue has no free slot right now, ErrBusy if a
	// concurrent operation holds the slot this call would have used
	// (lock-free implementation only; never returned by Bounded), or
	// ErrClosed if the queue is closed.
	TryPush(elem T) error

	// WaitPush enqueues elem, blocking the calling goroutine until a
	// slot becomes free or the queue is closed. Returns ErrClosed if
	// the queue was, or became, closed before a slot was available.
	WaitPush(elem T) error
}

// Reader is the consumer half of a Queue.
type Reader[T any] interface {
	// Pop blocks until an element is available or the queue is closed
	// and drained. Equivalent to calling WaitPop.
	Pop() (T, error)

	// TryPop attempts to dequeue an element without blocking. It
	// returns ErrEmpty if no element is available right now, ErrBusy
	// if a concurrent operation holds the slot this call would have
	// used (lock-free implementation only), or ErrClosed once the
	// queue is closed and empty.
	TryPop() (T, error)

	// WaitPop dequeues an element, blocking the calling goroutine
	// until one is available or the queue is closed and drained.
	WaitPop() (T, error)
}

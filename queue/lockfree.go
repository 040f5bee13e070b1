// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// slot states, kept only as documentation of the three logical states a
// ring position passes through each lap: a slot starts Waiting for its
// producer, becomes Valid once written, and is never directly observed
// as Invalid by this implementation — Close() retires the whole queue
// rather than individual slots, so a closed queue's remaining Waiting
// slots are simply never reached.
const (
	slotWaiting int32 = iota
	slotValid
)

// lfSlot is one ring position. sequence encodes which of the two
// logical states the slot is in without a separate state field: a
// producer may claim the slot once sequence equals its reservation
// number (Waiting), and a consumer may claim it once sequence equals
// reservation+1 (Valid). This is the same tri-state discipline as a
// mutex-guarded waiting/valid/invalid tag, collapsed onto one atomic
// compare so the fast path needs no separate CAS-then-store pair.
type lfSlot[T any] struct {
	sequence atomix.Uint64
	data     T
	_        padShort
}

// LockFree is the lock-free bounded queue (Variant B). Producers and
// consumers reserve ring positions with compare-and-swap on independent
// head/tail counters, the same two-counter shape as an FAA-based MPMC
// ring, but gated per-slot by a sequence number rather than a
// cycle-tagged 2n-slot buffer: this queue needs only capacity physical
// slots.
//
// TryPush/TryPop are lock-free: a caller that loses a CAS race retries
// a bounded number of times and then reports ErrBusy rather than
// spinning forever. Push/Pop (and WaitPush/WaitPop) keep retrying with
// an [iox.Backoff] until they succeed or the queue is closed.
type LockFree[T any] struct {
	_        pad
	tail     atomix.Uint64
	_        pad
	head     atomix.Uint64
	_        pad
	closed   atomix.Bool
	_        pad
	buf      []lfSlot[T]
	capacity uint64
	mask     uint64
}

// NewLockFree creates a lock-free bounded queue. Capacity rounds up to
// the next power of 2, with a minimum of 2, so slot indexing can use a
// mask instead of a modulo.
func NewLockFree[T any](capacity int, opts ...Option[T]) (*LockFree[T], error) {
	if capacity < 1 {
		return nil, ErrInvalidArgument
	}
	n := uint64(roundToPow2(capacity))
	cfg, err := newConfig(capacity, opts)
	if err != nil {
		return nil, err
	}
	q := &LockFree[T]{
		buf:      make([]lfSlot[T], n),
		capacity: n,
		mask:     n - 1,
	}
	for i := range q.buf {
		q.buf[i].sequence.StoreRelaxed(uint64(i))
	}
	for _, v := range cfg.prefill {
		slot := &q.buf[q.tail.LoadRelaxed()&q.mask]
		slot.data = v
		slot.sequence.StoreRelaxed(q.tail.LoadRelaxed() + 1)
		q.tail.AddAcqRel(1)
	}
	return q, nil
}

func (q *LockFree[T]) Cap() int { return int(q.capacity) }

func (q *LockFree[T]) Push(elem T) error { return q.WaitPush(elem) }

func (q *LockFree[T]) Pop() (T, error) { return q.WaitPop() }

const busyRetries = 64

// TryPush attempts to reserve and write the next ring slot without
// blocking. It returns ErrFull if the queue has reached capacity,
// ErrBusy if busyRetries consecutive CAS attempts lost to contention,
// or ErrClosed if the queue is closed.
func (q *LockFree[T]) TryPush(elem T) error {
	if q.closed.LoadAcquire() {
		return ErrClosed
	}
	sw := spin.Wait{}
	for attempt := 0; attempt < busyRetries; attempt++ {
		tail := q.tail.LoadRelaxed()
		slot := &q.buf[tail&q.mask]
		seq := slot.sequence.LoadAcquire()
		switch diff := int64(seq) - int64(tail); {
		case diff == 0:
			if q.tail.CompareAndSwapAcqRel(tail, tail+1) {
				slot.data = elem
				slot.sequence.StoreRelease(tail + 1)
				return nil
			}
		case diff < 0:
			return ErrFull
		}
		sw.Once()
	}
	return ErrBusy
}

// WaitPush reserves and writes the next ring slot, backing off between
// attempts while the queue is full, until a slot frees up or the queue
// is closed.
func (q *LockFree[T]) WaitPush(elem T) error {
	bo := iox.Backoff{}
	for {
		err := q.TryPush(elem)
		switch {
		case err == nil:
			return nil
		case IsClosed(err):
			return err
		default:
			bo.Wait()
		}
	}
}

// TryPop attempts to reserve and read the next ring slot without
// blocking. It returns ErrEmpty if no element is available, ErrBusy if
// busyRetries consecutive CAS attempts lost to contention, or
// ErrClosed once the queue is closed and drained.
func (q *LockFree[T]) TryPop() (T, error) {
	var zero T
	sw := spin.Wait{}
	for attempt := 0; attempt < busyRetries; attempt++ {
		head := q.head.LoadRelaxed()
		slot := &q.buf[head&q.mask]
		seq := slot.sequence.LoadAcquire()
		switch diff := int64(seq) - int64(head+1); {
		case diff == 0:
			if q.head.CompareAndSwapAcqRel(head, head+1) {
				elem := slot.data
				slot.data = zero
				slot.sequence.StoreRelease(head + q.capacity)
				return elem, nil
			}
		case diff < 0:
			if q.closed.LoadAcquire() {
				return zero, ErrClosed
			}
			return zero, ErrEmpty
		}
		sw.Once()
	}
	return zero, ErrBusy
}

// WaitPop reserves and reads the next ring slot, backing off between
// attempts while the queue is empty, until an element is available or
// the queue is closed and drained.
func (q *LockFree[T]) WaitPop() (T, error) {
	bo := iox.Backoff{}
	for {
		elem, err := q.TryPop()
		switch {
		case err == nil:
			return elem, nil
		case IsClosed(err):
			return elem, err
		default:
			bo.Wait()
		}
	}
}

// Close marks the queue closed. Reservations already in flight
// complete normally; new pushes observe ErrClosed immediately, and
// pops continue to drain buffered elements until the ring is empty,
// at which point they also observe ErrClosed. Close is idempotent.
func (q *LockFree[T]) Close() {
	q.closed.StoreRelease(true)
}

func (q *LockFree[T]) IsClosed() bool {
	return q.closed.LoadAcquire()
}

func (q *LockFree[T]) IsEmpty() bool {
	return q.tail.LoadAcquire() == q.head.LoadAcquire()
}

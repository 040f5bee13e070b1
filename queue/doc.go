// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue provides bounded, multi-producer/multi-consumer FIFO
// queues with two interchangeable implementations behind one [Queue]
// interface: [Bounded] (mutex + condition variables) and [LockFree]
// (CAS-reserved ring slots, no locks on the fast path).
//
// # Quick start
//
//	q, err := queue.NewBounded[int](16)
//	if err != nil {
//	    // capacity < 1
//	}
//	if err := q.Push(42); err != nil {
//	    // queue closed
//	}
//	v, err := q.Pop()
//
// # Choosing an implementation
//
// Bounded and LockFree implement the identical [Queue] contract and can
// be swapped without touching call sites. As a rule of thumb:
//
//	Bounded   — simpler, cheaper under light contention, FIFO fairness
//	            comes for free from the mutex.
//	LockFree  — scales better under heavy multi-core contention; pays
//	            for it with CAS retries (ErrBusy) and no fairness
//	            guarantee across producers or consumers.
//
// # Non-blocking vs. blocking
//
// Every queue exposes both styles of every operation:
//
//	TryPush/TryPop  — never block; report ErrFull/ErrEmpty/ErrBusy so the
//	                  caller can retry with its own backoff policy, e.g.
//	                  [code.hybscloud.com/iox.Backoff].
//	WaitPush/WaitPop — block the calling goroutine until the operation
//	                  can proceed or the queue is closed.
//	Push/Pop        — aliases for WaitPush/WaitPop.
//
// # Graceful shutdown
//
// Close marks a queue closed: blocked producers wake with ErrClosed
// immediately, while blocked consumers keep draining buffered elements
// and only see ErrClosed once the queue is empty. This lets a shutdown
// sequence close every upstream queue and let downstream stages run dry
// naturally instead of discarding in-flight work.
//
//	producersDone.Wait()
//	q.Close()
//	// consumers keep popping until Pop returns queue.ErrClosed
//
// # Dependencies
//
// LockFree builds on [code.hybscloud.com/atomix] for ordered atomics and
// [code.hybscloud.com/spin] for its bounded CAS-retry loop, and its
// blocking operations use [code.hybscloud.com/iox.Backoff] to avoid
// hammering a full or empty queue. Bounded's blocking operations wait
// on condition variables instead.
package queue

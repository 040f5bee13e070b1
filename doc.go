// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package gcl provides goroutine coordination primitives — [Latch] and
// [Barrier] — and, in its subpackages, the building blocks assembled
// from them: bounded queues ([code.hybscloud.com/gcl/queue]), a worker
// pool ([code.hybscloud.com/gcl/pool]), a pipeline execution engine
// ([code.hybscloud.com/gcl/pipeline]), and a MapReduce driver
// ([code.hybscloud.com/gcl/mapreduce]).
//
// # Latch vs. Barrier
//
// Both count arrivals from multiple goroutines, but serve different
// shapes of synchronization:
//
//	Latch   — single-use. Count reaches zero once, then every Wait
//	          (past or future) returns immediately forever.
//	Barrier — reusable. Every phase, once all participants arrive, an
//	          optional completion hook runs and the barrier resets,
//	          optionally with a different participant count, before
//	          releasing everyone for the next phase.
//
// # Quick start
//
//	l := gcl.NewLatch(3)
//	for i := 0; i < 3; i++ {
//	    go func() {
//	        doWork()
//	        l.CountDown()
//	    }()
//	}
//	l.Wait() // returns once all three have called CountDown
//
//	b := gcl.NewBarrier(4, nil)
//	for i := 0; i < 4; i++ {
//	    go func() {
//	        for round := 0; round < 10; round++ {
//	            doRoundOfWork()
//	            b.Arrive() // blocks until all 4 finish this round
//	        }
//	    }()
//	}
package gcl

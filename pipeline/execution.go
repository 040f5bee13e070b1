// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"sync"
	"sync/atomic"

	"code.hybscloud.com/gcl"
	"code.hybscloud.com/gcl/pool"
)

// execution is the running state shared by every goroutine a Plan
// spawns: a start gate releasing them all together, an end barrier
// that counts their completions, and the first error any of them
// reported.
type execution struct {
	pl    *pool.Pool
	start *gcl.Latch
	end   *gcl.Barrier
	ended *gcl.Latch // opened by end's completion hook once every stage has arrived
	done  atomic.Bool

	mu  sync.Mutex
	err error
}

func (ex *execution) spawn(fn func()) {
	if err := ex.pl.Submit(func() {
		ex.start.Wait()
		fn()
		ex.end.Arrive()
	}); err != nil {
		ex.fail(err)
	}
}

func (ex *execution) fail(err error) {
	ex.mu.Lock()
	if ex.err == nil {
		ex.err = err
	}
	ex.mu.Unlock()
}

func (ex *execution) Err() error {
	ex.mu.Lock()
	defer ex.mu.Unlock()
	return ex.err
}

// Execution is a Plan in motion. Obtain one from Execute.
type Execution struct {
	state *execution
}

// Execute runs plan on pl. It submits the terminal Consume/To stage's
// goroutine to the pool and then opens the start gate; the goroutine
// behind each Pipe thread point is submitted when the stage downstream
// of it starts running.
//
// pl must have enough capacity for every stage the plan spawns (one
// per Pipe call, plus one for the terminal Consume/To); with an
// undersized pool, a running stage blocks forever in the pool's Submit
// waiting for a worker for its upstream thread point.
func Execute(p *Plan, pl *pool.Pool) *Execution {
	ex := &execution{pl: pl}
	ex.start = gcl.NewLatch(1)
	ex.ended = gcl.NewLatch(1)
	ex.end = gcl.NewBarrier(int64(p.stages), func() int64 {
		ex.done.Store(true)
		_ = ex.ended.CountDown()
		return 1
	})
	p.build(ex)
	_ = ex.start.CountDown()
	return &Execution{state: ex}
}

// Wait blocks until every stage of the pipeline has finished — either
// by exhausting its input or by a failure propagating down the chain
// — and returns the first error any stage reported, or nil.
//
// Internally Wait first blocks until the completion barrier's hook
// reports that every stage has arrived, then performs one more arrival
// at the barrier, which the hook has shrunk to one participant; that
// arrival returns only once every stage has also left the barrier.
func (e *Execution) Wait() error {
	e.state.ended.Wait()
	e.state.end.Arrive()
	return e.state.Err()
}

// IsDone reports whether every stage has finished. Like [gcl.Barrier],
// it is intended for diagnostics — Wait is the correct way to
// synchronize with completion.
func (e *Execution) IsDone() bool {
	return e.state.done.Load()
}

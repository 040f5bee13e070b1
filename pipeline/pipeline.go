// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"errors"

	"code.hybscloud.com/gcl/queue"
)

// pull retrieves the next value of a fused stage chain. ok is false on
// clean exhaustion (upstream ran out); a non-nil err is a failure that
// should tear the whole pipeline down.
type pull[T any] func() (T, bool, error)

// activate instantiates a Stage's chain against a running Execution,
// spawning a goroutine for every explicit thread point (see Pipe) it
// contains and returning a pull function the next stage downstream
// calls directly. Everything between two thread points runs as plain
// function calls within one goroutine — stage fusion, the same
// optimization a filter_chain applies to adjacent computational
// filters.
type activate[T any] func(ex *execution) pull[T]

// Stage is one point in a pipeline under construction. It is generic
// over the type of value it produces; Transform, Expand, and Pipe each
// return a new Stage wrapping the previous one.
type Stage[T any] struct {
	stages *int // shared goroutine count across the whole chain
	act    activate[T]
}

// Reader is the minimal interface From reads an external queue
// through; [code.hybscloud.com/gcl/queue.Bounded] and
// [code.hybscloud.com/gcl/queue.LockFree] both satisfy it.
type Reader[T any] interface {
	Pop() (T, error)
}

// Writer is the minimal interface To sinks push into.
type Writer[T any] interface {
	Push(elem T) error
}

// Sink is a Writer that can also be closed once the pipeline has
// finished writing to it, so its own consumer observes end-of-stream.
type Sink[T any] interface {
	Writer[T]
	Close()
}

// Produce starts a pipeline from a generator function. fn should
// return (zero-value, false) once exhausted.
func Produce[T any](fn func() (T, bool)) *Stage[T] {
	stages := new(int)
	*stages = 1
	return &Stage[T]{
		stages: stages,
		act: func(ex *execution) pull[T] {
			return func() (T, bool, error) {
				v, ok := fn()
				return v, ok, nil
			}
		},
	}
}

// From starts a pipeline by reading an existing queue until it closes.
func From[T any](q Reader[T]) *Stage[T] {
	stages := new(int)
	*stages = 1
	return &Stage[T]{
		stages: stages,
		act: func(ex *execution) pull[T] {
			return func() (T, bool, error) {
				v, err := q.Pop()
				if err != nil {
					var zero T
					if errors.Is(err, queue.ErrClosed) {
						return zero, false, nil
					}
					return zero, false, err
				}
				return v, true, nil
			}
		},
	}
}

// Transform applies fn to every value, fusing into the same goroutine
// as its upstream stage unless a Pipe call sits between them.
func Transform[T, U any](s *Stage[T], fn func(T) (U, error)) *Stage[U] {
	return &Stage[U]{
		stages: s.stages,
		act: func(ex *execution) pull[U] {
			upstream := s.act(ex)
			return func() (U, bool, error) {
				v, ok, err := upstream()
				var zero U
				if err != nil || !ok {
					return zero, ok, err
				}
				out, err := fn(v)
				if err != nil {
					return zero, false, err
				}
				return out, true, nil
			}
		},
	}
}

// Expand applies fn to every value, letting it emit zero or more
// downstream values through the callback it is given before the next
// upstream value is pulled. This is the pipeline's 1:N stage shape.
func Expand[T, U any](s *Stage[T], fn func(T, func(U) error) error) *Stage[U] {
	return &Stage[U]{
		stages: s.stages,
		act: func(ex *execution) pull[U] {
			upstream := s.act(ex)
			var buf []U
			var i int
			return func() (U, bool, error) {
				var zero U
				for {
					if i < len(buf) {
						v := buf[i]
						i++
						return v, true, nil
					}
					v, ok, err := upstream()
					if err != nil {
						return zero, false, err
					}
					if !ok {
						return zero, false, nil
					}
					buf = buf[:0]
					i = 0
					if err := fn(v, func(u U) error {
						buf = append(buf, u)
						return nil
					}); err != nil {
						return zero, false, err
					}
				}
			}
		},
	}
}

// Pipe inserts a thread point: everything upstream of this call runs
// in its own goroutine, writing into a queue of the given capacity,
// instead of fusing into whatever stage eventually reads it. Use Pipe
// where independent backpressure between two parts of the pipeline
// matters — for example, between a slow producer and a fast consumer,
// or to parallelize a CPU-bound stage against the rest of the chain.
func Pipe[T any](s *Stage[T], capacity int) *Stage[T] {
	*s.stages++
	upstreamAct := s.act
	return &Stage[T]{
		stages: s.stages,
		act: func(ex *execution) pull[T] {
			q, err := queue.NewBounded[T](capacity)
			if err != nil {
				panic(err) // only a capacity below 1 is rejected
			}
			ex.spawn(func() {
				upstream := upstreamAct(ex)
				for {
					v, ok, err := upstream()
					if err != nil {
						ex.fail(err)
						q.Close()
						return
					}
					if !ok {
						q.Close()
						return
					}
					if err := q.Push(v); err != nil {
						return
					}
				}
			})
			return func() (T, bool, error) {
				v, err := q.Pop()
				if err != nil {
					var zero T
					return zero, false, ex.Err()
				}
				return v, true, nil
			}
		},
	}
}

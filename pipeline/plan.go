// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pipeline

// Plan is a fully wired, not-yet-running pipeline: a chain of Stages
// terminated by a Consume or To call. Pass it to Execute to run it.
type Plan struct {
	stages int
	build  func(ex *execution)
}

// Consume terminates the pipeline with a function called once per
// final value. fn's error, if any, aborts the pipeline.
func Consume[T any](s *Stage[T], fn func(T) error) *Plan {
	return &Plan{
		stages: *s.stages,
		build: func(ex *execution) {
			ex.spawn(func() {
				upstream := s.act(ex)
				for {
					v, ok, err := upstream()
					if err != nil {
						ex.fail(err)
						return
					}
					if !ok {
						return
					}
					if err := fn(v); err != nil {
						ex.fail(err)
						return
					}
				}
			})
		},
	}
}

// To terminates the pipeline by pushing every final value into q,
// closing q once the pipeline is exhausted or fails.
func To[T any](s *Stage[T], q Sink[T]) *Plan {
	return &Plan{
		stages: *s.stages,
		build: func(ex *execution) {
			ex.spawn(func() {
				defer q.Close()
				upstream := s.act(ex)
				for {
					v, ok, err := upstream()
					if err != nil {
						ex.fail(err)
						return
					}
					if !ok {
						return
					}
					if err := q.Push(v); err != nil {
						return
					}
				}
			})
		},
	}
}

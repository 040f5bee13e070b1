// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pipeline builds multi-stage data pipelines out of
// [code.hybscloud.com/gcl/pool] workers and
// [code.hybscloud.com/gcl/queue] queues, fusing adjacent stages into a
// single goroutine by default and forking a new one only where the
// plan explicitly asks for a thread point (see Pipe).
//
// # Quick start
//
//	nums := []int{1, 2, 3}
//	i := 0
//	plan := pipeline.Consume(
//	    pipeline.Expand(
//	        pipeline.Produce(func() (int, bool) {
//	            if i >= len(nums) {
//	                return 0, false
//	            }
//	            v := nums[i]
//	            i++
//	            return v, true
//	        }),
//	        func(n int, emit func(int) error) error {
//	            for k := 0; k < n; k++ {
//	                if err := emit(n); err != nil {
//	                    return err
//	                }
//	            }
//	            return nil
//	        },
//	    ),
//	    func(n int) error { fmt.Println(n); return nil },
//	)
//	p := pool.New(1, 4)
//	defer p.Close()
//	exec := pipeline.Execute(plan, p)
//	if err := exec.Wait(); err != nil {
//	    // a stage failed
//	}
//
// The Expand stage above turns {1, 2, 3} into {1, 2, 2, 3, 3, 3}.
//
// # Fusion and thread points
//
// Produce/Transform/Expand compose by direct function calls within one
// goroutine until a Pipe call inserts an explicit queue boundary. A
// plan with no Pipe calls runs entirely on the one goroutine its
// terminal Consume or To spawns; each Pipe adds one more.
package pipeline

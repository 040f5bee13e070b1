// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pool provides a bounded pool of reusable worker goroutines
// ([Worker]) managed by [Pool], so submitting work does not pay for a
// new goroutine per job and does not leak goroutines when work stops.
//
// # Quick start
//
//	p := pool.New(2, 8) // keep 2 warm, grow up to 8
//	defer p.Close()
//
//	if err := p.Submit(func() { doWork() }); err != nil {
//	    // pool closed
//	}
//
// Submit blocks until a worker is available, spawning a new one if the
// pool is under its maximum; TrySubmit never blocks and reports
// failure instead. Close stops accepting new work and joins every
// worker the pool has spawned, waiting for in-flight jobs to finish.
package pool

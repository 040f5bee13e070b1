// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// config holds the construction-time settings shared by Bounded and
// LockFree. It is populated by Option functions, a collapsed
// alternative to a fluent Builder that fits this package's single
// Variant A / Variant B split.
type config[T any] struct {
	capacity int
	prefill  []T
}

// Option configures a queue at construction time.
type Option[T any] func(*config[T])

// WithPrefill seeds the queue with elems before it is returned to the
// caller, in order, so the first Pop observes elems[0]. It returns
// ErrInvalidArgument from the constructor if len(elems) exceeds the
// requested capacity.
func WithPrefill[T any](elems []T) Option[T] {
	return func(c *config[T]) {
		c.prefill = elems
	}
}

func newConfig[T any](capacity int, opts []Option[T]) (config[T], error) {
	c := config[T]{capacity: capacity}
	for _, opt := range opts {
		opt(&c)
	}
	if len(c.prefill) > capacity {
		return c, ErrInvalidArgument
	}
	return c, nil
}

// roundToPow2 rounds n up to the next power of 2, with a minimum of 2.
// Used by LockFree, whose mask-based slot indexing requires a power-of-2
// capacity; Bounded has no such constraint and uses capacity directly.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// pad is cache line padding to prevent false sharing between
// independently-modified fields of the lock-free queue.
type pad [64]byte

// padShort is padding to fill a cache line after an 8-byte field.
type padShort [64 - 8]byte

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"errors"
	"sync"
	"testing"

	"code.hybscloud.com/gcl/queue"
)

func TestLockFreeBasic(t *testing.T) {
	q, err := queue.NewLockFree[int](4)
	if err != nil {
		t.Fatalf("NewLockFree: %v", err)
	}
	// capacity rounds up to the next power of 2; 4 is already one.
	if q.Cap() != 4 {
		t.Fatalf("Cap() = %d, want 4", q.Cap())
	}
	for i := 0; i < 4; i++ {
		if err := q.TryPush(i); err != nil {
			t.Fatalf("TryPush(%d): %v", i, err)
		}
	}
	if err := q.TryPush(99); !errors.Is(err, queue.ErrFull) {
		t.Fatalf("TryPush on full queue: got %v, want ErrFull", err)
	}
	for i := 0; i < 4; i++ {
		v, err := q.TryPop()
		if err != nil {
			t.Fatalf("TryPop: %v", err)
		}
		if v != i {
			t.Fatalf("TryPop() = %d, want %d (FIFO order)", v, i)
		}
	}
	if _, err := q.TryPop(); !errors.Is(err, queue.ErrEmpty) {
		t.Fatalf("TryPop on empty queue: got %v, want ErrEmpty", err)
	}
}

func TestLockFreeCapacityRoundsUp(t *testing.T) {
	q, err := queue.NewLockFree[int](5)
	if err != nil {
		t.Fatalf("NewLockFree: %v", err)
	}
	if q.Cap() != 8 {
		t.Fatalf("Cap() = %d, want 8 (5 rounds up to next pow2)", q.Cap())
	}
}

func TestLockFreeCloseDrainsThenErrClosed(t *testing.T) {
	q, _ := queue.NewLockFree[int](4, queue.WithPrefill([]int{1, 2}))
	q.Close()
	if v, err := q.Pop(); err != nil || v != 1 {
		t.Fatalf("Pop after Close, buffered: got (%d, %v), want (1, nil)", v, err)
	}
	if v, err := q.Pop(); err != nil || v != 2 {
		t.Fatalf("Pop after Close, buffered: got (%d, %v), want (2, nil)", v, err)
	}
	if _, err := q.Pop(); !errors.Is(err, queue.ErrClosed) {
		t.Fatalf("Pop after drain: got %v, want ErrClosed", err)
	}
	if err := q.Push(3); !errors.Is(err, queue.ErrClosed) {
		t.Fatalf("Push after Close: got %v, want ErrClosed", err)
	}
}

// TestLockFreeMergeSequences merges a stream of positive integers
// produced by one goroutine and a stream of negative integers produced
// by another into a single lock-free queue, then checks both
// sub-sequences retained their relative order on the consumer side —
// the merge scenario the lock-free queue's invariants describe.
func TestLockFreeMergeSequences(t *testing.T) {
	if queue.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}
	const n = 500
	q, _ := queue.NewLockFree[int](64)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 1; i <= n; i++ {
			for q.Push(i) != nil {
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 1; i <= n; i++ {
			for q.Push(-i) != nil {
			}
		}
	}()
	go func() {
		wg.Wait()
		q.Close()
	}()

	var positives, negatives []int
	for {
		v, err := q.Pop()
		if errors.Is(err, queue.ErrClosed) {
			break
		}
		if err != nil {
			t.Fatalf("Pop: %v", err)
		}
		if v > 0 {
			positives = append(positives, v)
		} else {
			negatives = append(negatives, v)
		}
	}

	if len(positives) != n || len(negatives) != n {
		t.Fatalf("got %d positives, %d negatives, want %d each", len(positives), len(negatives), n)
	}
	for i, v := range positives {
		if v != i+1 {
			t.Fatalf("positives[%d] = %d, want %d (producer order violated)", i, v, i+1)
		}
	}
	for i, v := range negatives {
		if v != -(i + 1) {
			t.Fatalf("negatives[%d] = %d, want %d (producer order violated)", i, v, -(i + 1))
		}
	}
}

// TestLockFreeConservation checks that every item pushed by many
// producers is popped exactly once by many consumers under contention.
func TestLockFreeConservation(t *testing.T) {
	if queue.RaceEnabled {
		t.Skip("skip: lock-free algorithm uses cross-variable memory ordering")
	}
	const producers, perProducer = 8, 500
	q, _ := queue.NewLockFree[int](32)

	var pwg sync.WaitGroup
	for p := 0; p < producers; p++ {
		pwg.Add(1)
		go func(base int) {
			defer pwg.Done()
			for i := 0; i < perProducer; i++ {
				_ = q.Push(base*perProducer + i)
			}
		}(p)
	}
	go func() {
		pwg.Wait()
		q.Close()
	}()

	var mu sync.Mutex
	seen := make(map[int]int)
	var cwg sync.WaitGroup
	for c := 0; c < 8; c++ {
		cwg.Add(1)
		go func() {
			defer cwg.Done()
			for {
				v, err := q.Pop()
				if errors.Is(err, queue.ErrClosed) {
					return
				}
				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}()
	}
	cwg.Wait()

	if len(seen) != producers*perProducer {
		t.Fatalf("saw %d distinct elements, want %d", len(seen), producers*perProducer)
	}
	for v, count := range seen {
		if count != 1 {
			t.Fatalf("element %d seen %d times, want 1", v, count)
		}
	}
}

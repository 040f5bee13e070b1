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

func TestBoundedBasic(t *testing.T) {
	q, err := queue.NewBounded[int](4)
	if err != nil {
		t.Fatalf("NewBounded: %v", err)
	}
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

func TestBoundedInvalidCapacity(t *testing.T) {
	if _, err := queue.NewBounded[int](0); !errors.Is(err, queue.ErrInvalidArgument) {
		t.Fatalf("NewBounded(0): got %v, want ErrInvalidArgument", err)
	}
}

func TestBoundedPrefillTooLarge(t *testing.T) {
	_, err := queue.NewBounded[int](2, queue.WithPrefill([]int{1, 2, 3}))
	if !errors.Is(err, queue.ErrInvalidArgument) {
		t.Fatalf("NewBounded with oversized prefill: got %v, want ErrInvalidArgument", err)
	}
}

func TestBoundedCloseDrainsThenErrClosed(t *testing.T) {
	q, _ := queue.NewBounded[int](4, queue.WithPrefill([]int{1, 2}))
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

// TestBoundedFIFOConcurrent pushes 1..1000 from one producer and checks
// a single consumer observes them in order, the scenario described for
// the lock-based queue's FIFO ordering property.
func TestBoundedFIFOConcurrent(t *testing.T) {
	const n = 1000
	q, _ := queue.NewBounded[int](8)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= n; i++ {
			if err := q.Push(i); err != nil {
				t.Errorf("Push(%d): %v", i, err)
				return
			}
		}
		q.Close()
	}()

	got := make([]int, 0, n)
	for {
		v, err := q.Pop()
		if errors.Is(err, queue.ErrClosed) {
			break
		}
		if err != nil {
			t.Fatalf("Pop: %v", err)
		}
		got = append(got, v)
	}
	wg.Wait()

	if len(got) != n {
		t.Fatalf("received %d elements, want %d", len(got), n)
	}
	for i, v := range got {
		if v != i+1 {
			t.Fatalf("got[%d] = %d, want %d (FIFO order violated)", i, v, i+1)
		}
	}
}

// TestBoundedConservation checks that every item pushed by many
// producers is popped exactly once by many consumers.
func TestBoundedConservation(t *testing.T) {
	if queue.RaceEnabled || testing.Short() {
		t.Skip("skip: stress test")
	}
	const producers, perProducer = 8, 200
	q, _ := queue.NewBounded[int](16)

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
	for c := 0; c < 4; c++ {
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

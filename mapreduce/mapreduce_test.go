// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mapreduce_test

import (
	"context"
	"errors"
	"testing"

	"code.hybscloud.com/gcl/mapreduce"
	"code.hybscloud.com/gcl/pool"
)

type modMapper struct{}

func (modMapper) Map(x int, emit func(int, int)) error {
	emit(x%10, x)
	return nil
}

type avgReducer struct{}

func (avgReducer) Reduce(key int, values []int, emit func(float64) error) error {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return emit(float64(sum) / float64(len(values)))
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// TestMapReduceAveraging reproduces the averaging scenario: input
// integers grouped by x mod 10, mapper emits (x mod 10, x), reducer
// outputs (key, mean(values)).
func TestMapReduceAveraging(t *testing.T) {
	var input []int
	input = append(input, 10)
	input = append(input, 12, 12, 22, 22)
	input = append(input, repeat(103, 20)...)
	input = append(input, repeat(1004, 20)...)
	input = append(input, repeat(2004, 20)...)
	input = append(input, repeat(4004, 40)...)
	input = append(input, repeat(1005, 40)...)
	input = append(input, repeat(1015, 40)...)
	input = append(input, repeat(1025, 40)...)
	input = append(input, repeat(1035, 40)...)
	input = append(input, repeat(1045, 40)...)

	p := pool.New(2, 8)
	defer p.Close()
	out := mapreduce.NewMapSink[int, float64]()
	job := mapreduce.New(mapreduce.Options[int, int, int, float64]{
		Mappers:  4,
		Reducers: 3,
		Shards:   10,
		Pool:     p,
		NewMapper: func() mapreduce.Mapper[int, int, int] {
			return modMapper{}
		},
		NewReducer: func() mapreduce.Reducer[int, int, float64] {
			return avgReducer{}
		},
		Output: out,
	})
	if err := job.Run(context.Background(), input); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := map[int]float64{
		0: 10.0,
		2: 17.0,
		3: 103.0,
		4: 2754.0,
		5: 1025.0,
	}
	got := out.Snapshot()
	for k, wantV := range want {
		gotV, ok := got[k]
		if !ok {
			t.Fatalf("key %d missing from output", k)
		}
		if gotV != wantV {
			t.Fatalf("key %d: got %v, want %v", k, gotV, wantV)
		}
	}
}

var errBoom = errors.New("boom")

type errMapper struct{}

func (errMapper) Map(x int, emit func(int, int)) error {
	if x == 3 {
		return errBoom
	}
	emit(x, x)
	return nil
}

type passReducer struct{}

func (passReducer) Reduce(key int, values []int, emit func(int) error) error {
	return emit(values[0])
}

func TestMapReducePropagatesMapperError(t *testing.T) {
	p := pool.New(2, 4)
	defer p.Close()
	out := mapreduce.NewMapSink[int, int]()
	job := mapreduce.New(mapreduce.Options[int, int, int, int]{
		Mappers:  2,
		Reducers: 2,
		Shards:   4,
		Pool:     p,
		NewMapper: func() mapreduce.Mapper[int, int, int] {
			return errMapper{}
		},
		NewReducer: func() mapreduce.Reducer[int, int, int] {
			return passReducer{}
		},
		Output: out,
	})
	err := job.Run(context.Background(), []int{1, 2, 3, 4})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Run: got %v, want %v", err, errBoom)
	}
}

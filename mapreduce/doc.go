// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mapreduce runs a two-phase map/reduce computation over a
// [code.hybscloud.com/gcl/pool.Pool], synchronized by
// [code.hybscloud.com/gcl.Latch]: a map phase partitions the input
// across mapper workers, a shuffle step merges and shards their local
// results, and a reduce phase drains the shards with reducer workers.
//
// # Quick start
//
//	type wordMapper struct{}
//	func (wordMapper) Map(line string, emit func(string, int)) error {
//	    for _, w := range strings.Fields(line) {
//	        emit(w, 1)
//	    }
//	    return nil
//	}
//
//	type sumReducer struct{}
//	func (sumReducer) Reduce(word string, counts []int, emit func(int) error) error {
//	    total := 0
//	    for _, c := range counts {
//	        total += c
//	    }
//	    return emit(total)
//	}
//
//	out := mapreduce.NewMapSink[string, int]()
//	job := mapreduce.New(mapreduce.Options[string, string, int, int]{
//	    Mappers: 4, Reducers: 2, Shards: 8,
//	    Pool:       pool.New(2, 8),
//	    NewMapper:  func() mapreduce.Mapper[string, string, int] { return wordMapper{} },
//	    NewReducer: func() mapreduce.Reducer[string, int, int] { return sumReducer{} },
//	    Output:     out,
//	})
//	if err := job.Run(context.Background(), lines); err != nil {
//	    // a mapper or reducer failed
//	}
//	counts := out.Snapshot()
package mapreduce

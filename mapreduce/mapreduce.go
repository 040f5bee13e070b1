// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mapreduce

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"code.hybscloud.com/gcl"
	"code.hybscloud.com/gcl/pool"
	"code.hybscloud.com/gcl/queue"
)

// Mapper transforms one input item into zero or more key/value pairs,
// emitted through the callback it is given. A Job creates one Mapper
// per mapper worker via Options.NewMapper, so a stateful Mapper does
// not need to guard its own state against concurrent callers.
type Mapper[I, K comparable, V any] interface {
	Map(item I, emit func(K, V)) error
}

// Reducer turns one key and all of the values mapped to it into zero
// or more outputs, emitted through the callback it is given. A Job
// creates one Reducer per reducer worker via Options.NewReducer.
type Reducer[K comparable, V, O any] interface {
	Reduce(key K, values []V, emit func(O) error) error
}

// Sink receives a Job's final (key, output) pairs. [NewMapSink]
// provides a thread-safe map-backed implementation.
type Sink[K comparable, O any] interface {
	Put(key K, val O)
}

// Options configures a Job.
type Options[I, K comparable, V, O any] struct {
	// Mappers is the number of mapper workers; the input is split
	// into this many contiguous shares. Must be >= 1.
	Mappers int
	// Reducers is the number of reducer workers run concurrently
	// against the Shards shard tasks. Must be >= 1 and <= Shards.
	Reducers int
	// Shards is the number of shard buckets the shuffle phase groups
	// keys into before handing them to reducers. Must be >= 1.
	Shards int

	Pool *pool.Pool

	NewMapper  func() Mapper[I, K, V]
	NewReducer func() Reducer[K, V, O]
	Output     Sink[K, O]

	// ShardFunc assigns a key to a shard in [0, numShards). Defaults
	// to an FNV-1a hash of fmt.Sprintf("%v", key) mod numShards if
	// nil.
	ShardFunc func(key K, numShards int) int

	// Combiner, if set, runs once per mapper on that mapper's local
	// output for a key before the shuffle phase merges across
	// mappers, the same role a Reduce-like pre-aggregation step plays
	// in reducing shuffle volume for commutative reductions.
	Combiner func(key K, values []V) []V
}

// Job runs a two-phase map/reduce computation: Mappers workers map the
// input in parallel into per-worker (key -> values) tables, those
// tables are merged and partitioned into Shards buckets, and Reducers
// workers reduce each bucket's keys into Options.Output.
type Job[I, K comparable, V, O any] struct {
	opts Options[I, K, V, O]
}

// New creates a Job. It panics if Options is missing a required field
// or has Reducers > Shards.
func New[I, K comparable, V, O any](opts Options[I, K, V, O]) *Job[I, K, V, O] {
	switch {
	case opts.Mappers < 1, opts.Reducers < 1, opts.Shards < 1:
		panic("mapreduce: Mappers, Reducers, and Shards must all be >= 1")
	case opts.Reducers > opts.Shards:
		panic("mapreduce: Reducers must not exceed Shards")
	case opts.Pool == nil, opts.NewMapper == nil, opts.NewReducer == nil, opts.Output == nil:
		panic("mapreduce: Pool, NewMapper, NewReducer, and Output are required")
	}
	if opts.ShardFunc == nil {
		opts.ShardFunc = defaultShard[K]
	}
	return &Job[I, K, V, O]{opts: opts}
}

func defaultShard[K comparable](key K, numShards int) int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%v", key)))
	return int(h.Sum64() % uint64(numShards))
}

type shardTask[K comparable, V any] struct {
	data map[K][]V
}

// Run maps input, shuffles the results into Shards buckets, and
// reduces each bucket, writing every (key, output) pair to
// Options.Output. Run returns the first error any mapper or reducer
// reported; ctx is checked before each input item is mapped and before
// each key is reduced, so a cancellation stops the job promptly rather
// than instantly
// — matching the "exception silently ends a worker's loop, the
// completion latch still counts down" behavior of the two-phase
// protocol this is grounded on.
func (j *Job[I, K, V, O]) Run(ctx context.Context, input []I) error {
	var errMu sync.Mutex
	var firstErr error
	fail := func(err error) {
		if err == nil {
			return
		}
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	mapped := j.mapPhase(ctx, input, fail)
	buckets := j.shuffle(mapped)
	j.reducePhase(ctx, buckets, fail)

	errMu.Lock()
	defer errMu.Unlock()
	return firstErr
}

// mapPhase splits input across Options.Mappers workers, each with its
// own Mapper instance, and returns one local (key -> values) table per
// worker once every worker has finished. A [gcl.Latch] sized to the
// worker count is the join mechanism, the same role countdown_latch
// plays for the mapper phase this is grounded on.
func (j *Job[I, K, V, O]) mapPhase(ctx context.Context, input []I, fail func(error)) []map[K][]V {
	n := j.opts.Mappers
	tables := make([]map[K][]V, n)
	done := gcl.NewLatch(int64(n))

	share := (len(input) + n - 1) / n
	if share == 0 {
		share = 1
	}
	for w := 0; w < n; w++ {
		w := w
		start := w * share
		end := start + share
		if start > len(input) {
			start = len(input)
		}
		if end > len(input) {
			end = len(input)
		}
		items := input[start:end]
		err := j.opts.Pool.Submit(func() {
			defer done.CountDown()
			mapper := j.opts.NewMapper()
			local := make(map[K][]V)
			for _, item := range items {
				if ctx.Err() != nil {
					return
				}
				if err := mapper.Map(item, func(k K, v V) {
					local[k] = append(local[k], v)
				}); err != nil {
					fail(err)
					return
				}
			}
			if j.opts.Combiner != nil {
				for k, vs := range local {
					local[k] = j.opts.Combiner(k, vs)
				}
			}
			tables[w] = local
		})
		if err != nil {
			fail(err)
			done.CountDown()
		}
	}
	done.Wait()
	return tables
}

// shuffle merges every mapper's local table into Options.Shards
// buckets keyed by Options.ShardFunc.
func (j *Job[I, K, V, O]) shuffle(tables []map[K][]V) []shardTask[K, V] {
	buckets := make([]map[K][]V, j.opts.Shards)
	for i := range buckets {
		buckets[i] = make(map[K][]V)
	}
	for _, table := range tables {
		for k, vs := range table {
			shard := j.opts.ShardFunc(k, j.opts.Shards) % j.opts.Shards
			buckets[shard][k] = append(buckets[shard][k], vs...)
		}
	}
	tasks := make([]shardTask[K, V], 0, j.opts.Shards)
	for _, b := range buckets {
		if len(b) > 0 {
			tasks = append(tasks, shardTask[K, V]{data: b})
		}
	}
	return tasks
}

// reducePhase pushes every non-empty shard bucket onto a bounded queue
// sized to the shard count and leases Options.Reducers workers to
// drain it, each running its own Reducer instance. A [gcl.Latch] sized
// to the worker count joins the phase, mirroring mapPhase.
func (j *Job[I, K, V, O]) reducePhase(ctx context.Context, tasks []shardTask[K, V], fail func(error)) {
	q, err := queue.NewBounded[shardTask[K, V]](j.opts.Shards)
	if err != nil {
		fail(err)
		return
	}
	for _, task := range tasks {
		_ = q.Push(task)
	}
	q.Close()

	n := j.opts.Reducers
	done := gcl.NewLatch(int64(n))
	for w := 0; w < n; w++ {
		err := j.opts.Pool.Submit(func() {
			defer done.CountDown()
			reducer := j.opts.NewReducer()
			for {
				task, err := q.Pop()
				if err != nil {
					return
				}
				for k, vs := range task.data {
					if ctx.Err() != nil {
						return
					}
					if err := reducer.Reduce(k, vs, func(out O) error {
						j.opts.Output.Put(k, out)
						return nil
					}); err != nil {
						fail(err)
						return
					}
				}
			}
		})
		if err != nil {
			fail(err)
			done.CountDown()
		}
	}
	done.Wait()
}

package parallel

import (
	"context"
	"math/rand/v2"
	"slices"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

type sourceCase struct {
	name string
	make func([]int) Source[int]
}

var sourceCases = []sourceCase{
	{"slice", Slice[int]},
	{"seq", func(xs []int) Source[int] { return Seq(slices.Values(xs)) }},
	{"iterator", func(xs []int) Source[int] { return FromIterator(IteratorOf(xs)) }},
}

type optionCase struct {
	name string
	opts []Option
}

var optionCases = []optionCase{
	{"default", nil},
	{"concurrency=1", []Option{WithConcurrency(1)}},
	{"concurrency=3", []Option{WithConcurrency(3)}},
	{"concurrency=16", []Option{WithConcurrency(16)}},
	{"segment=1", []Option{WithSegmentLength(1)}},
	{"segment=7", []Option{WithSegmentLength(7)}},
	{"segment=1000", []Option{WithSegmentLength(1000)}},
	{"segment=3,concurrency=2", []Option{WithSegmentLength(3), WithConcurrency(2)}},
}

var sizes = []int{0, 1, 2, 10, 97, 1000}

// forEachCase runs fn for every source kind, option set and size.
func forEachCase(t *testing.T, fn func(t *testing.T, xs []int, src Source[int], opts []Option)) {
	t.Helper()
	rng := rand.New(rand.NewPCG(7, 11))
	for _, sc := range sourceCases {
		for _, oc := range optionCases {
			for _, n := range sizes {
				xs := randomInts(rng, n)
				t.Run(sc.name+"/"+oc.name+"/"+strconv.Itoa(n), func(t *testing.T) {
					fn(t, xs, sc.make(xs), oc.opts)
				})
			}
		}
	}
}

func randomInts(rng *rand.Rand, n int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = rng.IntN(1000) - 500
	}
	return xs
}

func ints(n int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = i
	}
	return xs
}

func isEven(n int) bool { return n%2 == 0 }

// jitter sleeps for a random few microseconds to shuffle task completion.
func jitter() {
	time.Sleep(time.Duration(rand.IntN(200)) * time.Microsecond)
}

// within fails the test if fn does not return before the deadline. It
// guards liveness tests against hanging.
func within[T any](t *testing.T, d time.Duration, fn func() T) T {
	t.Helper()
	done := make(chan T, 1)
	go func() { done <- fn() }()
	select {
	case v := <-done:
		return v
	case <-time.After(d):
		t.Fatalf("call did not resolve within %v", d)
		panic("unreachable")
	}
}

// blocker blocks callbacks until the test ends.
func blocker(t *testing.T) <-chan struct{} {
	t.Helper()
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	return release
}

// testEngine returns an engine with a fixed parallelism so budgets do not
// depend on the host.
func testEngine(t *testing.T, opts ...EngineOption) *Engine {
	t.Helper()
	e, err := New(Config{Parallelism: 4, SegmentLength: 10, MaxInFlight: 4}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

type failingIterator struct {
	items  []int
	failAt int
	pos    int
	closed atomic.Bool
}

func (it *failingIterator) Next(ctx context.Context) (int, bool, error) {
	if it.pos == it.failAt {
		return 0, false, errSourceBoom
	}
	if it.pos >= len(it.items) {
		return 0, false, nil
	}
	v := it.items[it.pos]
	it.pos++
	return v, true, nil
}

func (it *failingIterator) Close() error {
	it.closed.Store(true)
	return nil
}

// countingCallback counts how often the wrapped callback runs.
type countingCallback struct {
	n atomic.Int64
}

func (c *countingCallback) wrap(pred func(int) bool) func(int) bool {
	return func(v int) bool {
		c.n.Add(1)
		return pred(v)
	}
}

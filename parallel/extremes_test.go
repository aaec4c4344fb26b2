package parallel

import (
	"context"
	"maps"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"
)

// extremeOptions returns option sets at and beyond the source size n.
func extremeOptions(n int) []optionCase {
	at := max(n, 1)
	return []optionCase{
		{"concurrency=n", []Option{WithConcurrency(at)}},
		{"concurrency=n+1", []Option{WithConcurrency(at + 1)}},
		{"concurrency=max", []Option{WithConcurrency(math.MaxInt)}},
		{"segment=n", []Option{WithSegmentLength(at)}},
		{"segment=n+1", []Option{WithSegmentLength(at + 1)}},
		{"segment=max", []Option{WithSegmentLength(math.MaxInt)}},
		{"both=max", []Option{WithConcurrency(math.MaxInt), WithSegmentLength(math.MaxInt)}},
		{"segment=max,concurrency=1", []Option{WithConcurrency(1), WithSegmentLength(math.MaxInt)}},
	}
}

func TestExtremeOptionsMatchSequential(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(3, 5))
	positive := func(n int) bool { return n > 0 }
	double := func(n int) int { return n * 2 }
	evenHalf := func(n int) (int, bool) { return n / 2, n%2 == 0 }
	pair := func(n int) []int { return []int{n, -n} }
	add := func(a, b int) int { return a + b }

	for _, sc := range sourceCases {
		for _, n := range sizes {
			xs := randomInts(rng, n)
			for _, oc := range extremeOptions(n) {
				t.Run(sc.name+"/"+oc.name+"/"+strconv.Itoa(n), func(t *testing.T) {
					src := func() Source[int] { return sc.make(xs) }
					opts := oc.opts

					if got, err := All(ctx, src(), positive, opts...); err != nil || got != !slices.ContainsFunc(xs, func(x int) bool { return !positive(x) }) {
						t.Errorf("All = %v, %v", got, err)
					}
					if got, err := Any(ctx, src(), positive, opts...); err != nil || got != slices.ContainsFunc(xs, positive) {
						t.Errorf("Any = %v, %v", got, err)
					}

					var count, sum int
					var mapped, filtered, flat, halves []int
					for _, x := range xs {
						sum += x
						mapped = append(mapped, double(x))
						flat = append(flat, pair(x)...)
						if positive(x) {
							count++
							filtered = append(filtered, x)
						}
						if v, ok := evenHalf(x); ok {
							halves = append(halves, v)
						}
					}
					if got, err := Count(ctx, src(), positive, opts...); err != nil || got != count {
						t.Errorf("Count = %d, %v; want %d", got, err, count)
					}
					if got, err := Sum(ctx, src(), opts...); err != nil || got != sum {
						t.Errorf("Sum = %d, %v; want %d", got, err, sum)
					}
					if got, err := Fold(ctx, src(), 0, add, opts...); err != nil || got != sum {
						t.Errorf("Fold = %d, %v; want %d", got, err, sum)
					}
					if got, err := Map(ctx, src(), double, opts...); err != nil || !slices.Equal(got, mapped) {
						t.Errorf("Map = %v, %v", got, err)
					}
					if got, err := Filter(ctx, src(), positive, opts...); err != nil || !slices.Equal(got, filtered) {
						t.Errorf("Filter = %v, %v", got, err)
					}
					if got, err := FlatMap(ctx, src(), pair, opts...); err != nil || !slices.Equal(got, flat) {
						t.Errorf("FlatMap = %v, %v", got, err)
					}
					if got, err := MapNotNull(ctx, src(), evenHalf, opts...); err != nil || !slices.Equal(got, halves) {
						t.Errorf("MapNotNull = %v, %v", got, err)
					}

					lo, hi, ok, err := MinMaxOrNull(ctx, src(), opts...)
					if err != nil || ok != (n > 0) || (ok && (lo != slices.Min(xs) || hi != slices.Max(xs))) {
						t.Errorf("MinMaxOrNull = %d, %d, %v, %v", lo, hi, ok, err)
					}
					if n > 0 {
						if got, err := Min(ctx, src(), opts...); err != nil || got != slices.Min(xs) {
							t.Errorf("Min = %d, %v", got, err)
						}
						if got, err := Max(ctx, src(), opts...); err != nil || got != slices.Max(xs) {
							t.Errorf("Max = %d, %v", got, err)
						}
					}

					first := slices.IndexFunc(xs, positive)
					got, found, err := FirstOrNull(ctx, src(), positive, opts...)
					if err != nil || found != (first >= 0) || (found && got != xs[first]) {
						t.Errorf("FirstOrNull = %d, %v, %v; want index %d", got, found, err, first)
					}
					last := -1
					for i, x := range slices.Backward(xs) {
						if positive(x) {
							last = i
							break
						}
					}
					got, found, err = LastOrNull(ctx, src(), positive, opts...)
					if err != nil || found != (last >= 0) || (found && got != xs[last]) {
						t.Errorf("LastOrNull = %d, %v, %v; want index %d", got, found, err, last)
					}

					want := map[int]int{}
					for _, x := range xs {
						want[x] = double(x)
					}
					if got, err := AssociateWith(ctx, src(), double, opts...); err != nil || !maps.Equal(got, want) {
						t.Errorf("AssociateWith = %v, %v", got, err)
					}
				})
			}
		}
	}
}

func TestLastOrNullMaxSegmentLength(t *testing.T) {
	got, ok, err := LastOrNull(context.Background(), Slice([]int{1, 2}), func(n int) bool { return n > 0 },
		WithSegmentLength(math.MaxInt))
	if err != nil || !ok || got != 2 {
		t.Errorf("LastOrNull = %d, %v, %v; want 2", got, ok, err)
	}
}

func TestMaxConcurrency(t *testing.T) {
	ctx := context.Background()
	got, ok, err := FirstOrNull(ctx, Slice(ints(50)), func(n int) bool { return n == 17 }, WithConcurrency(math.MaxInt))
	if err != nil || !ok || got != 17 {
		t.Errorf("FirstOrNull = %d, %v, %v; want 17", got, ok, err)
	}
	mapped, err := Map(ctx, Seq(slices.Values(ints(50))), func(n int) int { return n + 1 }, WithConcurrency(math.MaxInt))
	if err != nil || len(mapped) != 50 || mapped[49] != 50 {
		t.Errorf("Map = %v, %v", mapped, err)
	}
	first, ok, err := FirstOrNull(ctx, Seq(slices.Values(ints(50))), func(n int) bool { return n == 40 }, WithConcurrency(math.MaxInt))
	if err != nil || !ok || first != 40 {
		t.Errorf("FirstOrNull(unsized) = %d, %v, %v; want 40", first, ok, err)
	}
}

package parallel

import (
	"cmp"
	"context"
	stderrors "errors"
	"math"
	"slices"
	"testing"
)

func TestMaxEmptyScenario(t *testing.T) {
	ctx := context.Background()
	if _, err := Max(ctx, Slice([]int{})); !stderrors.Is(err, ErrEmptyInput) {
		t.Errorf("Max(empty) error = %v, want ErrEmptyInput", err)
	}
	v, ok, err := MaxOrNull(ctx, Slice([]int{}))
	if err != nil || ok {
		t.Errorf("MaxOrNull(empty) = %v, %v, %v; want absent", v, ok, err)
	}
	if _, err := Min(ctx, Seq(slices.Values([]int{}))); !stderrors.Is(err, ErrEmptyInput) {
		t.Errorf("Min(empty seq) error = %v, want ErrEmptyInput", err)
	}
	if _, ok, err := MinOrNull(ctx, Slice([]float64{})); ok || err != nil {
		t.Errorf("MinOrNull(empty) = %v, %v", ok, err)
	}
}

func TestMinMaxMatchSequential(t *testing.T) {
	ctx := context.Background()
	forEachCase(t, func(t *testing.T, xs []int, src Source[int], opts []Option) {
		lo, hi, ok, err := MinMaxOrNull(ctx, src, opts...)
		if err != nil {
			t.Fatalf("MinMaxOrNull: %v", err)
		}
		if ok != (len(xs) > 0) {
			t.Fatalf("ok = %v for %d elements", ok, len(xs))
		}
		if ok && (lo != slices.Min(xs) || hi != slices.Max(xs)) {
			t.Errorf("MinMax = (%d, %d), want (%d, %d)", lo, hi, slices.Min(xs), slices.Max(xs))
		}
	})
	xs := []int{5, -3, 9, 0}
	for _, oc := range optionCases {
		if v, err := Min(ctx, Slice(xs), oc.opts...); err != nil || v != -3 {
			t.Errorf("%s: Min = %d, %v", oc.name, v, err)
		}
		if v, err := Max(ctx, Slice(xs), oc.opts...); err != nil || v != 9 {
			t.Errorf("%s: Max = %d, %v", oc.name, v, err)
		}
	}
}

func TestMinMaxEmpty(t *testing.T) {
	if _, _, err := MinMax(context.Background(), Slice([]int{})); !stderrors.Is(err, ErrEmptyInput) {
		t.Errorf("MinMax(empty) error = %v", err)
	}
}

func TestMinPropagatesNaN(t *testing.T) {
	xs := []float64{1, 2, math.NaN(), 0, 5}
	for _, oc := range optionCases {
		v, err := Min(context.Background(), Slice(xs), oc.opts...)
		if err != nil || !math.IsNaN(v) {
			t.Errorf("%s: Min = %v, %v; want NaN", oc.name, v, err)
		}
	}
}

type scored struct {
	id    int
	score int
}

// tied has two minimal and two maximal scores; the lower id must win.
var tied = []scored{{0, 5}, {1, 1}, {2, 9}, {3, 1}, {4, 9}, {5, 4}}

func TestByTiesKeepLowestIndex(t *testing.T) {
	ctx := context.Background()
	score := func(s scored) int { return s.score }
	for _, oc := range optionCases {
		lo, err := MinBy(ctx, Slice(tied), score, oc.opts...)
		if err != nil || lo.id != 1 {
			t.Errorf("%s: MinBy = %+v, %v; want id 1", oc.name, lo, err)
		}
		hi, err := MaxBy(ctx, Slice(tied), score, oc.opts...)
		if err != nil || hi.id != 2 {
			t.Errorf("%s: MaxBy = %+v, %v; want id 2", oc.name, hi, err)
		}
	}
}

func TestFuncTiesKeepLowestIndex(t *testing.T) {
	ctx := context.Background()
	byScore := func(a, b scored) int { return cmp.Compare(a.score, b.score) }
	for _, oc := range optionCases {
		lo, err := MinFunc(ctx, Slice(tied), byScore, oc.opts...)
		if err != nil || lo != slices.MinFunc(tied, byScore) {
			t.Errorf("%s: MinFunc = %+v, %v", oc.name, lo, err)
		}
		hi, err := MaxFunc(ctx, Slice(tied), byScore, oc.opts...)
		if err != nil || hi != slices.MaxFunc(tied, byScore) {
			t.Errorf("%s: MaxFunc = %+v, %v", oc.name, hi, err)
		}
	}
	if _, err := MinFunc(ctx, Slice([]scored{}), byScore); !stderrors.Is(err, ErrEmptyInput) {
		t.Errorf("MinFunc(empty) error = %v", err)
	}
}

func TestByOrNull(t *testing.T) {
	ctx := context.Background()
	if _, ok, err := MinByOrNull(ctx, Slice([]scored{}), func(s scored) int { return s.score }); ok || err != nil {
		t.Errorf("MinByOrNull(empty) = %v, %v", ok, err)
	}
	v, ok, err := MaxByOrNull(ctx, Seq(slices.Values(tied)), func(s scored) int { return s.score })
	if err != nil || !ok || v.id != 2 {
		t.Errorf("MaxByOrNull = %+v, %v, %v", v, ok, err)
	}
	if _, err := MaxBy(ctx, Slice([]scored{}), func(s scored) int { return s.score }); !stderrors.Is(err, ErrEmptyInput) {
		t.Errorf("MaxBy(empty) error = %v", err)
	}
}

func TestOf(t *testing.T) {
	ctx := context.Background()
	words := []string{"kiwi", "fig", "banana", "plum"}
	length := func(s string) int { return len(s) }

	if v, err := MinOf(ctx, Slice(words), length); err != nil || v != 3 {
		t.Errorf("MinOf = %d, %v", v, err)
	}
	if v, err := MaxOf(ctx, Slice(words), length, WithSegmentLength(1)); err != nil || v != 6 {
		t.Errorf("MaxOf = %d, %v", v, err)
	}
	if _, ok, err := MinOfOrNull(ctx, Slice([]string{}), length); ok || err != nil {
		t.Errorf("MinOfOrNull(empty) = %v, %v", ok, err)
	}
	if v, ok, err := MaxOfOrNull(ctx, Seq(slices.Values(words)), length); err != nil || !ok || v != 6 {
		t.Errorf("MaxOfOrNull = %d, %v, %v", v, ok, err)
	}
	if _, err := MaxOf(ctx, Slice([]string{}), length); !stderrors.Is(err, ErrEmptyInput) {
		t.Errorf("MaxOf(empty) error = %v", err)
	}
}

func TestMinByCallbackPanic(t *testing.T) {
	_, err := MinBy(context.Background(), Slice(ints(10)), func(n int) int {
		if n == 7 {
			panic("key")
		}
		return n
	})
	if !stderrors.Is(err, ErrCallbackFailed) {
		t.Errorf("expected callback failure, got %v", err)
	}
}

func TestMinMaxByTiesKeepLowestIndex(t *testing.T) {
	ctx := context.Background()
	score := func(s scored) int { return s.score }
	for _, oc := range optionCases {
		lo, hi, err := MinMaxBy(ctx, Slice(tied), score, oc.opts...)
		if err != nil || lo.id != 1 || hi.id != 2 {
			t.Errorf("%s: MinMaxBy = %+v, %+v, %v; want ids 1 and 2", oc.name, lo, hi, err)
		}
		lo, hi, ok, err := MinMaxByOrNull(ctx, Seq(slices.Values(tied)), score, oc.opts...)
		if err != nil || !ok || lo.id != 1 || hi.id != 2 {
			t.Errorf("%s: MinMaxByOrNull = %+v, %+v, %v, %v", oc.name, lo, hi, ok, err)
		}
	}
	if _, _, err := MinMaxBy(ctx, Slice([]scored{}), score); !stderrors.Is(err, ErrEmptyInput) {
		t.Errorf("MinMaxBy(empty) error = %v", err)
	}
	if _, _, ok, err := MinMaxByOrNull(ctx, Slice([]scored{}), score); ok || err != nil {
		t.Errorf("MinMaxByOrNull(empty) = %v, %v", ok, err)
	}
}

func TestMinMaxOfMatchSequential(t *testing.T) {
	ctx := context.Background()
	square := func(n int) int { return n * n }
	forEachCase(t, func(t *testing.T, xs []int, src Source[int], opts []Option) {
		lo, hi, ok, err := MinMaxOfOrNull(ctx, src, square, opts...)
		if err != nil {
			t.Fatalf("MinMaxOfOrNull: %v", err)
		}
		if ok != (len(xs) > 0) {
			t.Fatalf("ok = %v for %d elements", ok, len(xs))
		}
		if !ok {
			return
		}
		squares := make([]int, len(xs))
		for i, x := range xs {
			squares[i] = square(x)
		}
		if lo != slices.Min(squares) || hi != slices.Max(squares) {
			t.Errorf("MinMaxOf = (%d, %d), want (%d, %d)", lo, hi, slices.Min(squares), slices.Max(squares))
		}
	})
	words := []string{"kiwi", "fig", "banana", "plum"}
	lo, hi, err := MinMaxOf(ctx, Slice(words), func(s string) int { return len(s) }, WithSegmentLength(1))
	if err != nil || lo != 3 || hi != 6 {
		t.Errorf("MinMaxOf = %d, %d, %v", lo, hi, err)
	}
	if _, _, err := MinMaxOf(ctx, Slice([]string{}), func(s string) int { return len(s) }); !stderrors.Is(err, ErrEmptyInput) {
		t.Errorf("MinMaxOf(empty) error = %v", err)
	}
}

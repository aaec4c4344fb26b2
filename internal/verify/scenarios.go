package verify

import (
	"context"
	"slices"

	"github.com/kbukum/gopar/errors"
	"github.com/kbukum/gopar/parallel"
)

func isEven(n int) bool { return n%2 == 0 }

func scenarios() []Check {
	return []Check{
		{Name: "all-even", Family: FamilyScenario, Run: allEven},
		{Name: "all-odd-one-out", Family: FamilyScenario, Run: allOddOneOut},
		{Name: "sum-1-to-100", Family: FamilyScenario, Run: sumOneToHundred},
		{Name: "first-over-ten", Family: FamilyScenario, Run: firstOverTen},
		{Name: "filter-every-third-index", Family: FamilyScenario, Run: filterEveryThirdIndex},
		{Name: "max-empty", Family: FamilyScenario, Run: maxEmpty},
	}
}

func allEven(ctx context.Context, in Input) error {
	got, err := parallel.All(ctx, parallel.Slice([]int{2, 4, 6, 8}), isEven, in.Opts...)
	if err != nil {
		return err
	}
	if !got {
		return mismatch("All([2 4 6 8], even)", got, true)
	}
	return nil
}

func allOddOneOut(ctx context.Context, in Input) error {
	got, err := parallel.All(ctx, parallel.Slice([]int{2, 4, 5, 8}), isEven, in.Opts...)
	if err != nil {
		return err
	}
	if got {
		return mismatch("All([2 4 5 8], even)", got, false)
	}
	return nil
}

func sumOneToHundred(ctx context.Context, in Input) error {
	xs := make([]int, 100)
	for i := range xs {
		xs[i] = i + 1
	}
	got, err := parallel.Sum(ctx, parallel.Slice(xs), append([]parallel.Option{parallel.WithConcurrency(4)}, in.Opts...)...)
	if err != nil {
		return err
	}
	if got != 5050 {
		return mismatch("Sum(1..100)", got, 5050)
	}
	return nil
}

func firstOverTen(ctx context.Context, in Input) error {
	xs := []int{3, 7, 11, 20, 50}
	for c := 1; c <= len(xs); c++ {
		got, ok, err := parallel.FirstOrNull(ctx, parallel.Slice(xs), func(n int) bool { return n > 10 },
			append([]parallel.Option{parallel.WithConcurrency(c)}, in.Opts...)...)
		if err != nil {
			return err
		}
		if !ok || got != 11 {
			return mismatch("FirstOrNull(>10) with concurrency "+itoa(c), got, 11)
		}
	}
	return nil
}

func filterEveryThirdIndex(ctx context.Context, in Input) error {
	xs := make([]int, 1000)
	var want []int
	for i := range xs {
		xs[i] = i
		if i%3 == 0 {
			want = append(want, i)
		}
	}
	for _, length := range []int{1, 2, 10, 33, 1000} {
		got, err := parallel.FilterIndexed(ctx, parallel.Slice(xs), func(i, _ int) bool { return i%3 == 0 },
			append([]parallel.Option{parallel.WithSegmentLength(length)}, in.Opts...)...)
		if err != nil {
			return err
		}
		if !slices.Equal(got, want) {
			return mismatch("FilterIndexed(i%3==0) with segment length "+itoa(length), len(got), len(want))
		}
	}
	return nil
}

func maxEmpty(ctx context.Context, in Input) error {
	_, err := parallel.Max(ctx, parallel.Slice([]int{}), in.Opts...)
	if !errors.IsCode(err, errors.ErrCodeEmptyInput) {
		return mismatch("Max([]) error", err, errors.ErrCodeEmptyInput)
	}
	v, ok, err := parallel.MaxOrNull(ctx, parallel.Slice([]int{}), in.Opts...)
	if err != nil {
		return err
	}
	if ok {
		return mismatch("MaxOrNull([])", v, "absent")
	}
	return nil
}

package verify

import (
	"context"
	"slices"
	"strconv"

	"github.com/kbukum/gopar/parallel"
)

func itoa(n int) string { return strconv.Itoa(n) }

func properties() []Check {
	return []Check{
		{Name: "filter-order", Family: FamilyProperty, Run: filterOrder},
		{Name: "map-indexed-order", Family: FamilyProperty, Run: mapIndexedOrder},
		{Name: "flat-map-order", Family: FamilyProperty, Run: flatMapOrder},
		{Name: "sum", Family: FamilyProperty, Run: sum},
		{Name: "count", Family: FamilyProperty, Run: count},
		{Name: "min-max", Family: FamilyProperty, Run: minMax},
		{Name: "any-all-none", Family: FamilyProperty, Run: anyAllNone},
		{Name: "find-lowest-index", Family: FamilyProperty, Run: findLowestIndex},
		{Name: "last-highest-index", Family: FamilyProperty, Run: lastHighestIndex},
		{Name: "associate-last-wins", Family: FamilyProperty, Run: associateLastWins},
	}
}

func divisibleBy(k int) func(int) bool {
	return func(n int) bool { return n%k == 0 }
}

func filterOrder(ctx context.Context, in Input) error {
	pred := divisibleBy(3)
	want := slices.DeleteFunc(slices.Clone(in.Data), func(n int) bool { return !pred(n) })
	for name, mk := range cases(in) {
		src, opts := mk()
		got, err := parallel.Filter(ctx, src, pred, opts...)
		if err != nil {
			return err
		}
		if !slices.Equal(got, want) {
			return mismatch(name+" Filter length", len(got), len(want))
		}
	}
	return nil
}

func mapIndexedOrder(ctx context.Context, in Input) error {
	fn := func(i, n int) int { return i*7 + n }
	want := make([]int, len(in.Data))
	for i, n := range in.Data {
		want[i] = fn(i, n)
	}
	for name, mk := range cases(in) {
		src, opts := mk()
		got, err := parallel.MapIndexed(ctx, src, fn, opts...)
		if err != nil {
			return err
		}
		if !slices.Equal(got, want) {
			return mismatch(name+" MapIndexed", "different order", "sequential order")
		}
	}
	return nil
}

func flatMapOrder(ctx context.Context, in Input) error {
	fn := func(n int) []int {
		if n < 0 {
			return nil
		}
		return []int{n, -n}
	}
	var want []int
	for _, n := range in.Data {
		want = append(want, fn(n)...)
	}
	for name, mk := range cases(in) {
		src, opts := mk()
		got, err := parallel.FlatMap(ctx, src, fn, opts...)
		if err != nil {
			return err
		}
		if !slices.Equal(got, want) {
			return mismatch(name+" FlatMap length", len(got), len(want))
		}
	}
	return nil
}

func sum(ctx context.Context, in Input) error {
	var want int
	for _, n := range in.Data {
		want += n
	}
	for name, mk := range cases(in) {
		src, opts := mk()
		got, err := parallel.Sum(ctx, src, opts...)
		if err != nil {
			return err
		}
		if got != want {
			return mismatch(name+" Sum", got, want)
		}
	}
	return nil
}

func count(ctx context.Context, in Input) error {
	pred := divisibleBy(5)
	var want int
	for _, n := range in.Data {
		if pred(n) {
			want++
		}
	}
	for name, mk := range cases(in) {
		src, opts := mk()
		got, err := parallel.Count(ctx, src, pred, opts...)
		if err != nil {
			return err
		}
		if got != want {
			return mismatch(name+" Count", got, want)
		}
	}
	return nil
}

func minMax(ctx context.Context, in Input) error {
	for name, mk := range cases(in) {
		src, opts := mk()
		lo, hi, ok, err := parallel.MinMaxOrNull(ctx, src, opts...)
		if err != nil {
			return err
		}
		if ok != (len(in.Data) > 0) {
			return mismatch(name+" MinMaxOrNull present", ok, len(in.Data) > 0)
		}
		if ok && (lo != slices.Min(in.Data) || hi != slices.Max(in.Data)) {
			return mismatch(name+" MinMax", [2]int{lo, hi}, [2]int{slices.Min(in.Data), slices.Max(in.Data)})
		}
	}
	return nil
}

func anyAllNone(ctx context.Context, in Input) error {
	for _, k := range []int{2, 97, len(in.Data)*4 + 1} {
		pred := divisibleBy(k)
		wantAny := slices.ContainsFunc(in.Data, pred)
		wantAll := !slices.ContainsFunc(in.Data, func(n int) bool { return !pred(n) })
		for name, mk := range cases(in) {
			src, opts := mk()
			gotAny, err := parallel.Any(ctx, src, pred, opts...)
			if err != nil {
				return err
			}
			src, opts = mk()
			gotAll, err := parallel.All(ctx, src, pred, opts...)
			if err != nil {
				return err
			}
			src, opts = mk()
			gotNone, err := parallel.None(ctx, src, pred, opts...)
			if err != nil {
				return err
			}
			if gotAny != wantAny || gotAll != wantAll || gotNone != !wantAny {
				return mismatch(name+" Any/All/None divisible by "+itoa(k),
					[3]bool{gotAny, gotAll, gotNone}, [3]bool{wantAny, wantAll, !wantAny})
			}
		}
	}
	return nil
}

func findLowestIndex(ctx context.Context, in Input) error {
	pred := divisibleBy(11)
	i := slices.IndexFunc(in.Data, pred)
	for name, mk := range cases(in) {
		src, opts := mk()
		got, ok, err := parallel.Find(ctx, src, pred, opts...)
		if err != nil {
			return err
		}
		if ok != (i >= 0) || (ok && got != in.Data[i]) {
			return mismatch(name+" Find", got, "lowest-index match")
		}
	}
	return nil
}

func lastHighestIndex(ctx context.Context, in Input) error {
	pred := divisibleBy(13)
	i := -1
	for j := len(in.Data) - 1; j >= 0; j-- {
		if pred(in.Data[j]) {
			i = j
			break
		}
	}
	for name, mk := range cases(in) {
		src, opts := mk()
		got, ok, err := parallel.LastOrNull(ctx, src, pred, opts...)
		if err != nil {
			return err
		}
		if ok != (i >= 0) || (ok && got != in.Data[i]) {
			return mismatch(name+" LastOrNull", got, "highest-index match")
		}
	}
	return nil
}

func associateLastWins(ctx context.Context, in Input) error {
	type pair struct{ index, value int }
	pairs := make([]pair, len(in.Data))
	want := map[int]int{}
	for i, n := range in.Data {
		pairs[i] = pair{i, n}
		want[n%17] = i
	}
	for _, v := range Variants {
		got, err := parallel.Associate(ctx, parallel.Slice(pairs), func(p pair) (int, int) {
			return p.value % 17, p.index
		}, slices.Concat(v.Opts, in.Opts)...)
		if err != nil {
			return err
		}
		for k, idx := range want {
			if got[k] != idx {
				return mismatch(v.Name+" Associate key "+itoa(k), got[k], idx)
			}
		}
		if len(got) != len(want) {
			return mismatch(v.Name+" Associate size", len(got), len(want))
		}
	}
	return nil
}

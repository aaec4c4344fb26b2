package parallel_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/kbukum/gopar/parallel"
)

func ExampleAll() {
	ctx := context.Background()
	nums := parallel.Slice([]int{2, 4, 6, 8})

	even, err := parallel.All(ctx, nums, func(n int) bool { return n%2 == 0 })
	fmt.Println(even, err)
	// Output: true <nil>
}

func ExampleFilterIndexed() {
	ctx := context.Background()
	src := parallel.Slice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9})

	kept, _ := parallel.FilterIndexed(ctx, src, func(i, n int) bool {
		return i%3 == 0 && n > 1
	}, parallel.WithConcurrency(3))
	fmt.Println(kept)
	// Output: [4 7]
}

func ExampleFirstOrNull() {
	ctx := context.Background()
	src := parallel.Seq(slices.Values([]string{"7", "x", "42", "y"}))

	v, ok, _ := parallel.FirstOrNull(ctx, src, func(s string) bool {
		_, err := strconv.Atoi(s)
		return err != nil
	})
	fmt.Println(v, ok)
	// Output: x true
}

func ExampleSum() {
	ctx := context.Background()
	total, _ := parallel.Sum(ctx, parallel.Slice([]float64{1.5, 2.5, 3}))
	fmt.Println(total)
	// Output: 7
}

func ExampleMax_empty() {
	_, err := parallel.Max(context.Background(), parallel.Slice([]int{}))
	fmt.Println(errors.Is(err, parallel.ErrEmptyInput))
	// Output: true
}

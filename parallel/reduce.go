package parallel

import "context"

// Sum adds every element. It is zero for an empty source.
func Sum[T Number](ctx context.Context, src Source[T], opts ...Option) (T, error) {
	return sumOf(ctx, "Sum", src, func(v T) T { return v }, opts)
}

// SumOf adds selector(v) over every element.
func SumOf[T any, N Number](ctx context.Context, src Source[T], selector func(T) N, opts ...Option) (N, error) {
	return sumOf(ctx, "SumOf", src, selector, opts)
}

func sumOf[T any, N Number](ctx context.Context, op string, src Source[T], selector func(T) N, opts []Option) (sum N, err error) {
	c, err := begin(ctx, op, src, partition, opts)
	if err != nil {
		return 0, err
	}
	defer c.end(&err)

	results := fork(c, src, func(_ context.Context, seg Segment[T]) (N, error) {
		var partial N
		err := scan(c, seg, func(_ int, v T) (bool, error) {
			partial += selector(v)
			return false, nil
		})
		return partial, err
	})
	total, _, err := reduce(c, results, infallible(func(a, b N) N { return a + b }))
	if err != nil {
		return 0, err
	}
	return total, nil
}

// SumAddable adds elements that implement Addable, starting every segment
// from zero. zero must be neutral for Add.
func SumAddable[T Addable[T]](ctx context.Context, src Source[T], zero T, opts ...Option) (T, error) {
	add := func(_ context.Context, acc T, _ int, v T) (T, error) { return acc.Add(v), nil }
	return fold(ctx, "SumAddable", src, zero, add, add, opts)
}

// Fold folds every segment from identity with op and then combines the
// segment results with op in segment order. op must be associative and
// identity neutral for it; under that contract the result equals a
// sequential left fold. It returns identity for an empty source.
func Fold[T any](ctx context.Context, src Source[T], identity T, op func(acc, v T) T, opts ...Option) (T, error) {
	step := func(_ context.Context, acc T, _ int, v T) (T, error) { return op(acc, v), nil }
	return fold(ctx, "Fold", src, identity, step, step, opts)
}

// TryFold is Fold with an operation that can fail.
func TryFold[T any](ctx context.Context, src Source[T], identity T, op func(ctx context.Context, acc, v T) (T, error), opts ...Option) (T, error) {
	step := func(ctx context.Context, acc T, _ int, v T) (T, error) { return op(ctx, acc, v) }
	return fold(ctx, "TryFold", src, identity, step, step, opts)
}

// FoldOf folds extract(v) into an accumulator of another type. Segment
// results are combined with op, so the same contract as Fold applies to op
// and identity.
func FoldOf[T, R any](ctx context.Context, src Source[T], identity R, extract func(T) R, op func(acc, v R) R, opts ...Option) (R, error) {
	return fold(ctx, "FoldOf", src, identity,
		func(_ context.Context, acc R, _ int, v T) (R, error) { return op(acc, extract(v)), nil },
		func(_ context.Context, acc R, _ int, part R) (R, error) { return op(acc, part), nil },
		opts)
}

// TryFoldOf is FoldOf with an extractor and operation that can fail.
func TryFoldOf[T, R any](ctx context.Context, src Source[T], identity R, extract func(context.Context, T) (R, error), op func(ctx context.Context, acc, v R) (R, error), opts ...Option) (R, error) {
	return fold(ctx, "TryFoldOf", src, identity,
		func(ctx context.Context, acc R, _ int, v T) (R, error) {
			r, err := extract(ctx, v)
			if err != nil {
				return acc, err
			}
			return op(ctx, acc, r)
		},
		func(ctx context.Context, acc R, _ int, part R) (R, error) { return op(ctx, acc, part) },
		opts)
}

// FoldIndexed is Fold with the source index passed to op. A segment result
// is combined with op at the index of the segment's first element.
func FoldIndexed[T any](ctx context.Context, src Source[T], identity T, op func(i int, acc, v T) T, opts ...Option) (T, error) {
	step := func(_ context.Context, acc T, i int, v T) (T, error) { return op(i, acc, v), nil }
	return fold(ctx, "FoldIndexed", src, identity, step, step, opts)
}

// foldStep folds one element, or one segment result at its offset, into acc.
type foldStep[T, R any] func(ctx context.Context, acc R, i int, v T) (R, error)

// partial is a segment result with the source index it starts at.
type partial[R any] struct {
	offset int
	value  R
}

func fold[T, R any](ctx context.Context, op string, src Source[T], identity R, step foldStep[T, R], merge foldStep[R, R], opts []Option) (result R, err error) {
	c, err := begin(ctx, op, src, partition, opts)
	if err != nil {
		return identity, err
	}
	defer c.end(&err)

	results := fork(c, src, func(ctx context.Context, seg Segment[T]) (partial[R], error) {
		acc := identity
		err := scan(c, seg, func(i int, v T) (bool, error) {
			var err error
			acc, err = step(ctx, acc, i, v)
			return false, err
		})
		return partial[R]{offset: seg.Offset, value: acc}, err
	})
	acc, ok, err := reduce(c, results, func(a, b partial[R]) (partial[R], error) {
		v, err := merge(c.ctx(), a.value, b.offset, b.value)
		return partial[R]{offset: a.offset, value: v}, err
	})
	switch {
	case err != nil:
		var zero R
		return zero, err
	case !ok:
		return identity, nil
	}
	return acc.value, nil
}

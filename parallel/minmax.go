package parallel

import (
	"cmp"
	"context"
	"slices"

	"github.com/kbukum/gopar/errors"
)

// Min returns the smallest element, or ErrEmptyInput for an empty source.
// Floating-point NaNs propagate as in slices.Min.
func Min[T cmp.Ordered](ctx context.Context, src Source[T], opts ...Option) (T, error) {
	v, _, err := ordered(ctx, "Min", src, slices.Min[[]T], minOf[T], true, opts)
	return v, err
}

// Max returns the largest element, or ErrEmptyInput for an empty source.
func Max[T cmp.Ordered](ctx context.Context, src Source[T], opts ...Option) (T, error) {
	v, _, err := ordered(ctx, "Max", src, slices.Max[[]T], maxOf[T], true, opts)
	return v, err
}

// MinOrNull is Min reporting an empty source as ok == false.
func MinOrNull[T cmp.Ordered](ctx context.Context, src Source[T], opts ...Option) (T, bool, error) {
	return ordered(ctx, "MinOrNull", src, slices.Min[[]T], minOf[T], false, opts)
}

// MaxOrNull is Max reporting an empty source as ok == false.
func MaxOrNull[T cmp.Ordered](ctx context.Context, src Source[T], opts ...Option) (T, bool, error) {
	return ordered(ctx, "MaxOrNull", src, slices.Max[[]T], maxOf[T], false, opts)
}

func minOf[T cmp.Ordered](a, b T) T { return min(a, b) }
func maxOf[T cmp.Ordered](a, b T) T { return max(a, b) }

func ordered[T cmp.Ordered](ctx context.Context, op string, src Source[T], pick func([]T) T, combine func(a, b T) T, must bool, opts []Option) (v T, ok bool, err error) {
	c, err := begin(ctx, op, src, partition, opts)
	if err != nil {
		return v, false, err
	}
	defer c.end(&err)

	results := fork(c, src, func(_ context.Context, seg Segment[T]) (T, error) {
		return pick(seg.Items), nil
	})
	return settle[T](op, must)(reduce(c, results, infallible(combine)))
}

// MinFunc returns the first element that is minimal under compare.
func MinFunc[T any](ctx context.Context, src Source[T], compare func(a, b T) int, opts ...Option) (T, error) {
	v, _, err := extremum(ctx, "MinFunc", src, compare, -1, true, opts)
	return v, err
}

// MaxFunc returns the first element that is maximal under compare.
func MaxFunc[T any](ctx context.Context, src Source[T], compare func(a, b T) int, opts ...Option) (T, error) {
	v, _, err := extremum(ctx, "MaxFunc", src, compare, 1, true, opts)
	return v, err
}

// extremum keeps the element whose comparison against the current best has
// the sign of want, so ties keep the lowest index.
func extremum[T any](ctx context.Context, op string, src Source[T], compare func(a, b T) int, want int, must bool, opts []Option) (v T, ok bool, err error) {
	c, err := begin(ctx, op, src, partition, opts)
	if err != nil {
		return v, false, err
	}
	defer c.end(&err)

	better := func(a, b T) T {
		if compare(b, a)*want > 0 {
			return b
		}
		return a
	}
	results := fork(c, src, func(_ context.Context, seg Segment[T]) (T, error) {
		best := seg.Items[0]
		err := scan(c, Segment[T]{Offset: seg.Offset + 1, Items: seg.Items[1:]}, func(_ int, v T) (bool, error) {
			best = better(best, v)
			return false, nil
		})
		return best, err
	})
	return settle[T](op, must)(reduce(c, results, infallible(better)))
}

// keyed pairs an element with its selector key.
type keyed[T any, K cmp.Ordered] struct {
	elem T
	key  K
}

// MinBy returns the first element with the smallest key.
func MinBy[T any, K cmp.Ordered](ctx context.Context, src Source[T], key func(T) K, opts ...Option) (T, error) {
	v, _, err := by(ctx, "MinBy", src, key, -1, true, opts)
	return v, err
}

// MaxBy returns the first element with the largest key.
func MaxBy[T any, K cmp.Ordered](ctx context.Context, src Source[T], key func(T) K, opts ...Option) (T, error) {
	v, _, err := by(ctx, "MaxBy", src, key, 1, true, opts)
	return v, err
}

// MinByOrNull is MinBy reporting an empty source as ok == false.
func MinByOrNull[T any, K cmp.Ordered](ctx context.Context, src Source[T], key func(T) K, opts ...Option) (T, bool, error) {
	return by(ctx, "MinByOrNull", src, key, -1, false, opts)
}

// MaxByOrNull is MaxBy reporting an empty source as ok == false.
func MaxByOrNull[T any, K cmp.Ordered](ctx context.Context, src Source[T], key func(T) K, opts ...Option) (T, bool, error) {
	return by(ctx, "MaxByOrNull", src, key, 1, false, opts)
}

func by[T any, K cmp.Ordered](ctx context.Context, op string, src Source[T], key func(T) K, want int, must bool, opts []Option) (v T, ok bool, err error) {
	c, err := begin(ctx, op, src, partition, opts)
	if err != nil {
		return v, false, err
	}
	defer c.end(&err)

	better := func(a, b keyed[T, K]) keyed[T, K] {
		if cmp.Compare(b.key, a.key)*want > 0 {
			return b
		}
		return a
	}
	results := fork(c, src, func(_ context.Context, seg Segment[T]) (keyed[T, K], error) {
		var best keyed[T, K]
		err := scan(c, seg, func(i int, v T) (bool, error) {
			cur := keyed[T, K]{elem: v, key: key(v)}
			if i == seg.Offset {
				best = cur
			} else {
				best = better(best, cur)
			}
			return false, nil
		})
		return best, err
	})
	best, ok, err := reduce(c, results, infallible(better))
	return settle[T](op, must)(best.elem, ok, err)
}

// MinOf returns the smallest selector(v), or ErrEmptyInput for an empty
// source.
func MinOf[T any, K cmp.Ordered](ctx context.Context, src Source[T], selector func(T) K, opts ...Option) (K, error) {
	v, _, err := selected(ctx, "MinOf", src, selector, minOf[K], true, opts)
	return v, err
}

// MaxOf returns the largest selector(v), or ErrEmptyInput for an empty
// source.
func MaxOf[T any, K cmp.Ordered](ctx context.Context, src Source[T], selector func(T) K, opts ...Option) (K, error) {
	v, _, err := selected(ctx, "MaxOf", src, selector, maxOf[K], true, opts)
	return v, err
}

// MinOfOrNull is MinOf reporting an empty source as ok == false.
func MinOfOrNull[T any, K cmp.Ordered](ctx context.Context, src Source[T], selector func(T) K, opts ...Option) (K, bool, error) {
	return selected(ctx, "MinOfOrNull", src, selector, minOf[K], false, opts)
}

// MaxOfOrNull is MaxOf reporting an empty source as ok == false.
func MaxOfOrNull[T any, K cmp.Ordered](ctx context.Context, src Source[T], selector func(T) K, opts ...Option) (K, bool, error) {
	return selected(ctx, "MaxOfOrNull", src, selector, maxOf[K], false, opts)
}

func selected[T any, K cmp.Ordered](ctx context.Context, op string, src Source[T], selector func(T) K, combine func(a, b K) K, must bool, opts []Option) (v K, ok bool, err error) {
	c, err := begin(ctx, op, src, partition, opts)
	if err != nil {
		return v, false, err
	}
	defer c.end(&err)

	results := fork(c, src, func(_ context.Context, seg Segment[T]) (K, error) {
		var best K
		err := scan(c, seg, func(i int, v T) (bool, error) {
			if k := selector(v); i == seg.Offset {
				best = k
			} else {
				best = combine(best, k)
			}
			return false, nil
		})
		return best, err
	})
	return settle[K](op, must)(reduce(c, results, infallible(combine)))
}

// bounds is the smallest and largest element of a segment.
type bounds[T cmp.Ordered] struct {
	lo, hi T
}

// MinMax returns the smallest and largest element in one pass, or
// ErrEmptyInput for an empty source.
func MinMax[T cmp.Ordered](ctx context.Context, src Source[T], opts ...Option) (lo, hi T, err error) {
	lo, hi, _, err = minMax(ctx, "MinMax", src, true, opts)
	return lo, hi, err
}

// MinMaxOrNull is MinMax reporting an empty source as ok == false.
func MinMaxOrNull[T cmp.Ordered](ctx context.Context, src Source[T], opts ...Option) (lo, hi T, ok bool, err error) {
	return minMax(ctx, "MinMaxOrNull", src, false, opts)
}

func minMax[T cmp.Ordered](ctx context.Context, op string, src Source[T], must bool, opts []Option) (lo, hi T, ok bool, err error) {
	c, err := begin(ctx, op, src, partition, opts)
	if err != nil {
		return lo, hi, false, err
	}
	defer c.end(&err)

	results := fork(c, src, func(_ context.Context, seg Segment[T]) (bounds[T], error) {
		return bounds[T]{lo: slices.Min(seg.Items), hi: slices.Max(seg.Items)}, nil
	})
	b, ok, err := settle[bounds[T]](op, must)(reduce(c, results, infallible(func(a, b bounds[T]) bounds[T] {
		return bounds[T]{lo: min(a.lo, b.lo), hi: max(a.hi, b.hi)}
	})))
	return b.lo, b.hi, ok, err
}

// MinMaxBy returns the first element with the smallest key and the first
// element with the largest key, or ErrEmptyInput for an empty source.
func MinMaxBy[T any, K cmp.Ordered](ctx context.Context, src Source[T], key func(T) K, opts ...Option) (lo, hi T, err error) {
	r, _, err := minMaxBy(ctx, "MinMaxBy", src, key, true, opts)
	return r.lo.elem, r.hi.elem, err
}

// MinMaxByOrNull is MinMaxBy reporting an empty source as ok == false.
func MinMaxByOrNull[T any, K cmp.Ordered](ctx context.Context, src Source[T], key func(T) K, opts ...Option) (lo, hi T, ok bool, err error) {
	r, ok, err := minMaxBy(ctx, "MinMaxByOrNull", src, key, false, opts)
	return r.lo.elem, r.hi.elem, ok, err
}

// MinMaxOf returns the smallest and largest selector(v), or ErrEmptyInput
// for an empty source.
func MinMaxOf[T any, K cmp.Ordered](ctx context.Context, src Source[T], selector func(T) K, opts ...Option) (lo, hi K, err error) {
	r, _, err := minMaxBy(ctx, "MinMaxOf", src, selector, true, opts)
	return r.lo.key, r.hi.key, err
}

// MinMaxOfOrNull is MinMaxOf reporting an empty source as ok == false.
func MinMaxOfOrNull[T any, K cmp.Ordered](ctx context.Context, src Source[T], selector func(T) K, opts ...Option) (lo, hi K, ok bool, err error) {
	r, ok, err := minMaxBy(ctx, "MinMaxOfOrNull", src, selector, false, opts)
	return r.lo.key, r.hi.key, ok, err
}

// keyedBounds is the first smallest-key and first largest-key element of
// a segment.
type keyedBounds[T any, K cmp.Ordered] struct {
	lo, hi keyed[T, K]
}

func minMaxBy[T any, K cmp.Ordered](ctx context.Context, op string, src Source[T], key func(T) K, must bool, opts []Option) (r keyedBounds[T, K], ok bool, err error) {
	c, err := begin(ctx, op, src, partition, opts)
	if err != nil {
		return r, false, err
	}
	defer c.end(&err)

	widen := func(a, b keyedBounds[T, K]) keyedBounds[T, K] {
		if cmp.Compare(b.lo.key, a.lo.key) < 0 {
			a.lo = b.lo
		}
		if cmp.Compare(b.hi.key, a.hi.key) > 0 {
			a.hi = b.hi
		}
		return a
	}
	results := fork(c, src, func(_ context.Context, seg Segment[T]) (keyedBounds[T, K], error) {
		var best keyedBounds[T, K]
		err := scan(c, seg, func(i int, v T) (bool, error) {
			cur := keyed[T, K]{elem: v, key: key(v)}
			if i == seg.Offset {
				best = keyedBounds[T, K]{lo: cur, hi: cur}
			} else {
				best = widen(best, keyedBounds[T, K]{lo: cur, hi: cur})
			}
			return false, nil
		})
		return best, err
	})
	return settle[keyedBounds[T, K]](op, must)(reduce(c, results, infallible(widen)))
}

// settle turns an empty reduction into ErrEmptyInput when a value is
// required.
func settle[R any](op string, must bool) func(R, bool, error) (R, bool, error) {
	return func(v R, ok bool, err error) (R, bool, error) {
		if err == nil && !ok && must {
			err = errors.EmptyInput(op)
		}
		return v, ok, err
	}
}

package parallel

import "context"

// Map returns fn(v) for every element, in source order.
func Map[T, R any](ctx context.Context, src Source[T], fn func(T) R, opts ...Option) ([]R, error) {
	return transform(ctx, "Map", src, func(_ context.Context, _ int, v T, out []R) ([]R, error) {
		return append(out, fn(v)), nil
	}, opts)
}

// TryMap is Map with a transform that can fail.
func TryMap[T, R any](ctx context.Context, src Source[T], fn func(context.Context, T) (R, error), opts ...Option) ([]R, error) {
	return transform(ctx, "TryMap", src, func(ctx context.Context, _ int, v T, out []R) ([]R, error) {
		r, err := fn(ctx, v)
		if err != nil {
			return out, err
		}
		return append(out, r), nil
	}, opts)
}

// MapIndexed is Map with the source index of each element.
func MapIndexed[T, R any](ctx context.Context, src Source[T], fn func(int, T) R, opts ...Option) ([]R, error) {
	return transform(ctx, "MapIndexed", src, func(_ context.Context, i int, v T, out []R) ([]R, error) {
		return append(out, fn(i, v)), nil
	}, opts)
}

// MapNotNull keeps fn(v) for the elements where fn reports ok.
func MapNotNull[T, R any](ctx context.Context, src Source[T], fn func(T) (R, bool), opts ...Option) ([]R, error) {
	return transform(ctx, "MapNotNull", src, func(_ context.Context, _ int, v T, out []R) ([]R, error) {
		if r, ok := fn(v); ok {
			out = append(out, r)
		}
		return out, nil
	}, opts)
}

// MapIndexedNotNull is MapNotNull with the source index of each element.
func MapIndexedNotNull[T, R any](ctx context.Context, src Source[T], fn func(int, T) (R, bool), opts ...Option) ([]R, error) {
	return transform(ctx, "MapIndexedNotNull", src, func(_ context.Context, i int, v T, out []R) ([]R, error) {
		if r, ok := fn(i, v); ok {
			out = append(out, r)
		}
		return out, nil
	}, opts)
}

// Filter returns the elements satisfying pred, in source order.
func Filter[T any](ctx context.Context, src Source[T], pred func(T) bool, opts ...Option) ([]T, error) {
	return filter(ctx, "Filter", src, func(_ context.Context, _ int, v T) (bool, error) {
		return pred(v), nil
	}, opts)
}

// TryFilter is Filter with a predicate that can fail.
func TryFilter[T any](ctx context.Context, src Source[T], pred func(context.Context, T) (bool, error), opts ...Option) ([]T, error) {
	return filter(ctx, "TryFilter", src, func(ctx context.Context, _ int, v T) (bool, error) {
		return pred(ctx, v)
	}, opts)
}

// FilterNot returns the elements not satisfying pred.
func FilterNot[T any](ctx context.Context, src Source[T], pred func(T) bool, opts ...Option) ([]T, error) {
	return filter(ctx, "FilterNot", src, func(_ context.Context, _ int, v T) (bool, error) {
		return !pred(v), nil
	}, opts)
}

// FilterIndexed is Filter with the source index of each element.
func FilterIndexed[T any](ctx context.Context, src Source[T], pred func(int, T) bool, opts ...Option) ([]T, error) {
	return filter(ctx, "FilterIndexed", src, func(_ context.Context, i int, v T) (bool, error) {
		return pred(i, v), nil
	}, opts)
}

// FilterNotNil returns the non-nil pointers of src.
func FilterNotNil[T any](ctx context.Context, src Source[*T], opts ...Option) ([]*T, error) {
	return filter(ctx, "FilterNotNil", src, func(_ context.Context, _ int, v *T) (bool, error) {
		return v != nil, nil
	}, opts)
}

func filter[T any](ctx context.Context, op string, src Source[T], keep func(context.Context, int, T) (bool, error), opts []Option) ([]T, error) {
	return transform(ctx, op, src, func(ctx context.Context, i int, v T, out []T) ([]T, error) {
		ok, err := keep(ctx, i, v)
		if ok && err == nil {
			out = append(out, v)
		}
		return out, err
	}, opts)
}

// FlatMap concatenates fn(v) over every element, in source order.
func FlatMap[T, R any](ctx context.Context, src Source[T], fn func(T) []R, opts ...Option) ([]R, error) {
	return transform(ctx, "FlatMap", src, func(_ context.Context, _ int, v T, out []R) ([]R, error) {
		return append(out, fn(v)...), nil
	}, opts)
}

// FlatMapIndexed is FlatMap with the source index of each element.
func FlatMapIndexed[T, R any](ctx context.Context, src Source[T], fn func(int, T) []R, opts ...Option) ([]R, error) {
	return transform(ctx, "FlatMapIndexed", src, func(_ context.Context, i int, v T, out []R) ([]R, error) {
		return append(out, fn(i, v)...), nil
	}, opts)
}

// transform runs step over every element of each segment, appending to a
// segment-local slice, and joins the slices in segment order.
func transform[T, R any](ctx context.Context, op string, src Source[T], step func(ctx context.Context, i int, v T, out []R) ([]R, error), opts []Option) (out []R, err error) {
	c, err := begin(ctx, op, src, partition, opts)
	if err != nil {
		return nil, err
	}
	defer c.end(&err)

	results := fork(c, src, func(ctx context.Context, seg Segment[T]) ([]R, error) {
		part := make([]R, 0, len(seg.Items))
		err := scan(c, seg, func(i int, v T) (bool, error) {
			var err error
			part, err = step(ctx, i, v, part)
			return false, err
		})
		return part, err
	})
	parts, err := gather(c, results)
	if err != nil {
		return nil, err
	}
	return concat(parts), nil
}

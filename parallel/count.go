package parallel

import "context"

// Count returns the number of elements satisfying pred. A nil pred counts
// every element.
func Count[T any](ctx context.Context, src Source[T], pred func(T) bool, opts ...Option) (int, error) {
	if pred == nil {
		pred = func(T) bool { return true }
	}
	return count(ctx, "Count", src, lift(pred), opts)
}

// TryCount is Count with a predicate that can fail.
func TryCount[T any](ctx context.Context, src Source[T], pred func(context.Context, T) (bool, error), opts ...Option) (int, error) {
	return count(ctx, "TryCount", src, pred, opts)
}

func count[T any](ctx context.Context, op string, src Source[T], pred func(context.Context, T) (bool, error), opts []Option) (n int, err error) {
	c, err := begin(ctx, op, src, partition, opts)
	if err != nil {
		return 0, err
	}
	defer c.end(&err)

	results := fork(c, src, func(ctx context.Context, seg Segment[T]) (int, error) {
		matched := 0
		err := scan(c, seg, func(_ int, v T) (bool, error) {
			ok, err := pred(ctx, v)
			if ok {
				matched++
			}
			return false, err
		})
		return matched, err
	})
	total, _, err := reduce(c, results, infallible(func(a, b int) int { return a + b }))
	if err != nil {
		return 0, err
	}
	return total, nil
}

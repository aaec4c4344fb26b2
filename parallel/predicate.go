package parallel

import "context"

// All reports whether every element satisfies pred. It is true for an
// empty source and resolves as soon as any task finds a counterexample.
func All[T any](ctx context.Context, src Source[T], pred func(T) bool, opts ...Option) (bool, error) {
	found, err := exists(ctx, "All", src, lift(pred), false, opts)
	return err == nil && !found, err
}

// Any reports whether some element satisfies pred. It is false for an
// empty source and resolves as soon as any task finds a match.
func Any[T any](ctx context.Context, src Source[T], pred func(T) bool, opts ...Option) (bool, error) {
	return exists(ctx, "Any", src, lift(pred), true, opts)
}

// None reports whether no element satisfies pred.
func None[T any](ctx context.Context, src Source[T], pred func(T) bool, opts ...Option) (bool, error) {
	found, err := exists(ctx, "None", src, lift(pred), true, opts)
	return err == nil && !found, err
}

// TryAll is All with a predicate that can fail. The first failure cancels
// the call and is returned as ErrCallbackFailed.
func TryAll[T any](ctx context.Context, src Source[T], pred func(context.Context, T) (bool, error), opts ...Option) (bool, error) {
	found, err := exists(ctx, "TryAll", src, pred, false, opts)
	return err == nil && !found, err
}

// TryAny is Any with a predicate that can fail.
func TryAny[T any](ctx context.Context, src Source[T], pred func(context.Context, T) (bool, error), opts ...Option) (bool, error) {
	return exists(ctx, "TryAny", src, pred, true, opts)
}

// TryNone is None with a predicate that can fail.
func TryNone[T any](ctx context.Context, src Source[T], pred func(context.Context, T) (bool, error), opts ...Option) (bool, error) {
	found, err := exists(ctx, "TryNone", src, pred, true, opts)
	return err == nil && !found, err
}

// exists reports whether some element has pred(v) == want. The task that
// finds one short-circuits the call.
func exists[T any](ctx context.Context, op string, src Source[T], pred func(context.Context, T) (bool, error), want bool, opts []Option) (found bool, err error) {
	c, err := begin(ctx, op, src, partition, opts)
	if err != nil {
		return false, err
	}
	defer c.end(&err)

	results := fork(c, src, func(ctx context.Context, seg Segment[T]) (struct{}, error) {
		return struct{}{}, scan(c, seg, func(_ int, v T) (bool, error) {
			ok, err := pred(ctx, v)
			if err != nil || ok != want {
				return false, err
			}
			_ = c.shortCircuit(seg.Index)
			return true, nil
		})
	})
	if err := collect(c, results, nil); err != nil {
		if err == errShortCircuit {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// lift adapts a plain callback to the context-aware form.
func lift[T, R any](fn func(T) R) func(context.Context, T) (R, error) {
	return func(_ context.Context, v T) (R, error) {
		return fn(v), nil
	}
}

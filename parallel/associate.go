package parallel

import "context"

// pair is one key-value entry produced by a segment.
type pair[K comparable, V any] struct {
	key   K
	value V
}

// Associate builds a map from the key-value pairs fn returns. Pairs are
// applied in source order, so a later duplicate key overwrites an earlier
// one.
func Associate[T any, K comparable, V any](ctx context.Context, src Source[T], fn func(T) (K, V), opts ...Option) (map[K]V, error) {
	return associate(ctx, "Associate", src, fn, opts)
}

// AssociateBy maps key(v) to v for every element. The last element with a
// given key wins.
func AssociateBy[T any, K comparable](ctx context.Context, src Source[T], key func(T) K, opts ...Option) (map[K]T, error) {
	return associate(ctx, "AssociateBy", src, func(v T) (K, T) { return key(v), v }, opts)
}

// AssociateWith maps every element to fn(element).
func AssociateWith[K comparable, V any](ctx context.Context, src Source[K], fn func(K) V, opts ...Option) (map[K]V, error) {
	return associate(ctx, "AssociateWith", src, func(k K) (K, V) { return k, fn(k) }, opts)
}

func associate[T any, K comparable, V any](ctx context.Context, op string, src Source[T], fn func(T) (K, V), opts []Option) (map[K]V, error) {
	pairs, err := transform(ctx, op, src, func(_ context.Context, _ int, v T, out []pair[K, V]) ([]pair[K, V], error) {
		k, val := fn(v)
		return append(out, pair[K, V]{key: k, value: val}), nil
	}, opts)
	if err != nil {
		return nil, err
	}
	m := make(map[K]V, len(pairs))
	for _, p := range pairs {
		m[p.key] = p.value
	}
	return m, nil
}

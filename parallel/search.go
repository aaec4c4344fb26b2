package parallel

import (
	"context"
	"iter"

	"github.com/kbukum/gopar/errors"
)

// hit is what a search task found in its segment. err holds a callback
// failure when the wave decides the failure in index order.
type hit[R any] struct {
	value R
	found bool
	err   error
}

// First returns the first element satisfying pred. It fails with
// ErrEmptyInput for an empty source and ErrNoMatch when nothing matches.
func First[T any](ctx context.Context, src Source[T], pred func(T) bool, opts ...Option) (T, error) {
	v, _, err := searchFirst(ctx, "First", src, matching(lift(pred)), true, opts)
	return v, err
}

// FirstOrNull returns the first element satisfying pred, with ok == false
// when there is none.
//
// Elements are tested in waves of the call width. Within a wave the slots
// are consulted in source order, so the lowest matching index wins however
// the tasks finish, and no later wave starts once a match is known. A
// callback failure fails the call only when no lower index matched.
func FirstOrNull[T any](ctx context.Context, src Source[T], pred func(T) bool, opts ...Option) (T, bool, error) {
	return searchFirst(ctx, "FirstOrNull", src, matching(lift(pred)), false, opts)
}

// Find is FirstOrNull.
func Find[T any](ctx context.Context, src Source[T], pred func(T) bool, opts ...Option) (T, bool, error) {
	return searchFirst(ctx, "Find", src, matching(lift(pred)), false, opts)
}

// TryFirstOrNull is FirstOrNull with a predicate that can fail.
func TryFirstOrNull[T any](ctx context.Context, src Source[T], pred func(context.Context, T) (bool, error), opts ...Option) (T, bool, error) {
	return searchFirst(ctx, "TryFirstOrNull", src, matching(pred), false, opts)
}

// FirstNotNullOf returns the first fn(v) that reports ok. It fails with
// ErrEmptyInput for an empty source and ErrNoMatch when fn never reports ok.
func FirstNotNullOf[T, R any](ctx context.Context, src Source[T], fn func(T) (R, bool), opts ...Option) (R, error) {
	v, _, err := searchFirst(ctx, "FirstNotNullOf", src, notNull(fn), true, opts)
	return v, err
}

// FirstNotNullOfOrNull is FirstNotNullOf reporting no result as ok == false.
func FirstNotNullOfOrNull[T, R any](ctx context.Context, src Source[T], fn func(T) (R, bool), opts ...Option) (R, bool, error) {
	return searchFirst(ctx, "FirstNotNullOfOrNull", src, notNull(fn), false, opts)
}

// Last returns the last element satisfying pred. It fails with
// ErrEmptyInput for an empty source and ErrNoMatch when nothing matches.
func Last[T any](ctx context.Context, src Source[T], pred func(T) bool, opts ...Option) (T, error) {
	v, _, err := searchLast(ctx, "Last", src, matching(lift(pred)), true, opts)
	return v, err
}

// LastOrNull returns the last element satisfying pred, with ok == false
// when there is none. Every segment is scanned from its end; on a sized
// source the call resolves once the highest match is known.
func LastOrNull[T any](ctx context.Context, src Source[T], pred func(T) bool, opts ...Option) (T, bool, error) {
	return searchLast(ctx, "LastOrNull", src, matching(lift(pred)), false, opts)
}

// LastNotNullOf returns the last fn(v) that reports ok.
func LastNotNullOf[T, R any](ctx context.Context, src Source[T], fn func(T) (R, bool), opts ...Option) (R, error) {
	v, _, err := searchLast(ctx, "LastNotNullOf", src, notNull(fn), true, opts)
	return v, err
}

// LastNotNullOfOrNull is LastNotNullOf reporting no result as ok == false.
func LastNotNullOfOrNull[T, R any](ctx context.Context, src Source[T], fn func(T) (R, bool), opts ...Option) (R, bool, error) {
	return searchLast(ctx, "LastNotNullOfOrNull", src, notNull(fn), false, opts)
}

// finder tests one element and returns the value to report for it.
type finder[T, R any] func(ctx context.Context, v T) (R, bool, error)

func matching[T any](pred func(context.Context, T) (bool, error)) finder[T, T] {
	return func(ctx context.Context, v T) (T, bool, error) {
		ok, err := pred(ctx, v)
		return v, ok, err
	}
}

func notNull[T, R any](fn func(T) (R, bool)) finder[T, R] {
	return func(_ context.Context, v T) (R, bool, error) {
		r, ok := fn(v)
		return r, ok, nil
	}
}

// searcher scans one segment with p and reports the first hit in the
// direction of walk.
func searcher[T, R any](c *call, p finder[T, R], walk func(*call, Segment[T], func(int, T) (bool, error)) error) segmentFunc[T, hit[R]] {
	return func(ctx context.Context, seg Segment[T]) (hit[R], error) {
		var h hit[R]
		err := walk(c, seg, func(_ int, v T) (bool, error) {
			r, ok, err := p(ctx, v)
			if err != nil || !ok {
				return false, err
			}
			h = hit[R]{value: r, found: true}
			return true, nil
		})
		return h, err
	}
}

func searchFirst[T, R any](ctx context.Context, op string, src Source[T], p finder[T, R], must bool, opts []Option) (v R, ok bool, err error) {
	c, err := begin(ctx, op, src, waves, opts)
	if err != nil {
		return v, false, err
	}
	defer c.end(&err)

	next, stop := iter.Pull2(segments(c.ctx(), src, c.budget.SegmentLength))
	defer stop()

	task := deferred(searcher(c, p, scan[T]))
	seen := false
	for {
		wave, err := pullWave(next, c.budget.Width)
		if err != nil {
			return v, false, c.sourceFailed(err)
		}
		if len(wave) == 0 {
			break
		}
		seen = true

		h, err := searchWave(c, wave, task)
		if err != nil {
			return v, false, err
		}
		if h.found {
			if err := c.shortCircuit(h.segment); err != nil {
				return v, false, err
			}
			return h.value, true, nil
		}
	}

	switch {
	case !must:
		return v, false, nil
	case !seen:
		return v, false, errors.EmptyInput(op)
	default:
		return v, false, errors.NoMatch(op)
	}
}

// pullWave takes up to width segments from next.
func pullWave[T any](next func() (Segment[T], error, bool), width int) ([]Segment[T], error) {
	wave := make([]Segment[T], 0, bufferSize(width))
	for len(wave) < width {
		seg, err, ok := next()
		if !ok {
			break
		}
		if err != nil {
			return nil, err
		}
		wave = append(wave, seg)
	}
	return wave, nil
}

// deferred keeps callback failures and panics in the hit instead of
// failing the call, so searchWave can rank them by slot.
func deferred[T, R any](task segmentFunc[T, hit[R]]) segmentFunc[T, hit[R]] {
	return func(ctx context.Context, seg Segment[T]) (h hit[R], err error) {
		defer func() {
			if r := recover(); r != nil {
				h, err = hit[R]{err: newPanicError(r)}, nil
			}
		}()
		h, err = task(ctx, seg)
		if err != nil && err != errAbandoned {
			h, err = hit[R]{err: err}, nil
		}
		return h, err
	}
}

// waveHit is the deciding hit of a wave and the segment it came from.
type waveHit[R any] struct {
	hit[R]
	segment int
}

// searchWave runs one wave and returns the hit of the lowest slot that
// has one. Slots are consulted in index order as soon as every lower slot
// has settled: the first slot with a match or a failure decides the wave,
// and whatever higher slots report is ignored.
func searchWave[T, R any](c *call, wave []Segment[T], task segmentFunc[T, hit[R]]) (waveHit[R], error) {
	results := dispatch(c, each(wave), len(wave), task)
	base := wave[0].Index
	settled := make([]bool, len(wave))
	hits := make([]hit[R], len(wave))
	cursor := 0
	err := collect(c, results, func(o outcome[hit[R]]) bool {
		k := o.index - base
		settled[k], hits[k] = true, o.value
		for ; cursor < len(wave) && settled[cursor]; cursor++ {
			if hits[cursor].found || hits[cursor].err != nil {
				return true
			}
		}
		return false
	})
	if err != nil || cursor == len(wave) {
		return waveHit[R]{}, err
	}
	h := waveHit[R]{hit: hits[cursor], segment: wave[cursor].Index}
	if h.err != nil {
		c.fail(h.segment, h.err)
		return waveHit[R]{}, c.ctrl.err()
	}
	return h, nil
}

func each[T any](segs []Segment[T]) iter.Seq2[Segment[T], error] {
	return func(yield func(Segment[T], error) bool) {
		for _, seg := range segs {
			if !yield(seg, nil) {
				return
			}
		}
	}
}

func searchLast[T, R any](ctx context.Context, op string, src Source[T], p finder[T, R], must bool, opts []Option) (v R, ok bool, err error) {
	c, err := begin(ctx, op, src, partition, opts)
	if err != nil {
		return v, false, err
	}
	defer c.end(&err)

	results := fork(c, src, searcher(c, p, scanBackward[T]))
	hits := make(map[int]hit[R])
	// cursor walks down from the last segment once the total is known.
	cursor := c.budget.Segments - 1
	err = collect(c, results, func(o outcome[hit[R]]) bool {
		hits[o.index] = o.value
		for ; cursor >= 0; cursor-- {
			h, settled := hits[cursor]
			if !settled {
				return false
			}
			if h.found {
				return true
			}
		}
		return false
	})
	if err != nil {
		return v, false, err
	}

	if !c.budget.Sized {
		cursor = len(hits) - 1
		for cursor >= 0 && !hits[cursor].found {
			cursor--
		}
	}
	if cursor >= 0 {
		if c.budget.Sized {
			if err := c.shortCircuit(cursor); err != nil {
				return v, false, err
			}
		}
		return hits[cursor].value, true, nil
	}

	switch {
	case !must:
		return v, false, nil
	case len(hits) == 0:
		return v, false, errors.EmptyInput(op)
	default:
		return v, false, errors.NoMatch(op)
	}
}

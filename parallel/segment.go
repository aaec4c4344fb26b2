package parallel

import (
	"context"
	"iter"
	"math/bits"
)

// Segment is a contiguous run of source elements handled by one task.
// Index is the segment position and Offset the source index of Items[0].
type Segment[T any] struct {
	Index  int
	Offset int
	Items  []T
}

// Budget is how one call splits and schedules its source.
type Budget struct {
	// Width is the number of segments intended to run at once.
	Width int
	// SegmentLength is the number of elements per segment; the last segment
	// of a source may be shorter.
	SegmentLength int
	// Segments is the segment count, or -1 when the source is unsized.
	Segments int
	// Sized reports whether the source length was known up front.
	Sized bool
	// Bounded makes the dispatcher wait for one of Width slots before
	// launching the next segment.
	Bounded bool
}

type planMode int

const (
	// partition dispatches every segment as soon as it is formed.
	partition planMode = iota
	// waves dispatches Width single-element segments at a time.
	waves
)

// plan derives the budget for one call from the engine config and the call
// options.
func (cfg Config) plan(n int, sized bool, mode planMode, o callOptions) Budget {
	if mode == waves {
		return cfg.planWaves(n, sized, o)
	}
	if !sized {
		b := Budget{SegmentLength: cfg.SegmentLength, Width: cfg.MaxInFlight, Segments: -1, Bounded: true}
		if o.segmentLength > 0 {
			b.SegmentLength = o.segmentLength
		}
		if o.concurrency > 0 {
			b.Width = o.concurrency
		}
		return b
	}

	b := Budget{Sized: true}
	switch {
	case o.segmentLength > 0:
		b.SegmentLength = o.segmentLength
	case o.concurrency > 0:
		b.SegmentLength = ceilDiv(n, o.concurrency)
	default:
		b.SegmentLength = ceilDiv(n, defaultWidth(n, cfg.Parallelism))
	}
	b.SegmentLength = min(max(b.SegmentLength, 1), max(n, 1))
	b.Segments = ceilDiv(n, b.SegmentLength)
	b.Width = b.Segments
	if o.segmentLength > 0 && o.concurrency > 0 && o.concurrency < b.Segments {
		b.Width = o.concurrency
		b.Bounded = true
	}
	return b
}

func (cfg Config) planWaves(n int, sized bool, o callOptions) Budget {
	b := Budget{SegmentLength: 1, Segments: -1, Sized: sized}
	if o.segmentLength > 0 {
		b.SegmentLength = o.segmentLength
	}
	switch {
	case o.concurrency > 0:
		b.Width = o.concurrency
	case sized:
		b.Width = defaultWidth(n, cfg.Parallelism)
	default:
		b.Width = cfg.Parallelism
	}
	if sized {
		b.SegmentLength = min(b.SegmentLength, max(n, 1))
		b.Segments = ceilDiv(n, b.SegmentLength)
		b.Width = min(b.Width, max(b.Segments, 1))
	}
	return b
}

// defaultWidth is floor(log2 n) capped by parallelism, and at least 1.
func defaultWidth(n, parallelism int) int {
	return max(1, min(bits.Len(uint(n))-1, parallelism))
}

func ceilDiv(n, d int) int {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}

// bufferLimit caps buffers sized from a caller-chosen width or length.
// Larger buffers only grow on demand.
const bufferLimit = 1 << 10

func bufferSize(n int) int {
	return min(max(n, 1), bufferLimit)
}

// segments yields the source as consecutive segments of the given length.
// Sized sources are sliced in place; unsized sources are pulled into fresh
// batches, and an iterator source is closed once the sequence stops.
func segments[T any](ctx context.Context, src Source[T], length int) iter.Seq2[Segment[T], error] {
	if src.sized {
		return chunks(src.items, length)
	}
	return func(yield func(Segment[T], error) bool) {
		defer src.close()
		batch := make([]T, 0, bufferSize(length))
		index, offset := 0, 0
		for v, err := range src.elements(ctx) {
			if err != nil {
				yield(Segment[T]{Index: index, Offset: offset + len(batch)}, err)
				return
			}
			batch = append(batch, v)
			if len(batch) < length {
				continue
			}
			if !yield(Segment[T]{Index: index, Offset: offset, Items: batch}, nil) {
				return
			}
			index++
			offset += len(batch)
			batch = make([]T, 0, bufferSize(length))
		}
		if len(batch) > 0 {
			yield(Segment[T]{Index: index, Offset: offset, Items: batch}, nil)
		}
	}
}

func chunks[T any](items []T, length int) iter.Seq2[Segment[T], error] {
	return func(yield func(Segment[T], error) bool) {
		for index, lo := 0, 0; lo < len(items); index++ {
			hi := lo + min(length, len(items)-lo)
			if !yield(Segment[T]{Index: index, Offset: lo, Items: items[lo:hi:hi]}, nil) {
				return
			}
			lo = hi
		}
	}
}

// elements adapts an unsized source to a single pull loop. The zero Source
// is empty.
func (s Source[T]) elements(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		switch {
		case s.seq != nil:
			for v := range s.seq {
				if !yield(v, nil) {
					return
				}
			}
		case s.it != nil:
			for {
				v, ok, err := s.it.Next(ctx)
				if err != nil {
					yield(v, err)
					return
				}
				if !ok || !yield(v, nil) {
					return
				}
			}
		}
	}
}

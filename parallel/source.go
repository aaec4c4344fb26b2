package parallel

import (
	"context"
	"iter"
)

// Iterator is a pull-based source of values. Next returns (zero, false, nil)
// once exhausted. An iterator is consumed by at most one call, which closes
// it when the call resolves.
type Iterator[T any] interface {
	Next(ctx context.Context) (T, bool, error)
	Close() error
}

// Source is the read-only input of an aggregate call. A sized source has a
// known length up front; an unsized source is pulled once, in order.
type Source[T any] struct {
	items []T
	seq   iter.Seq[T]
	it    Iterator[T]
	sized bool
}

// Slice returns a sized source over xs. The slice is never modified.
func Slice[T any](xs []T) Source[T] {
	return Source[T]{items: xs, sized: true}
}

// Seq returns an unsized source over seq. The sequence is ranged over once.
func Seq[T any](seq iter.Seq[T]) Source[T] {
	return Source[T]{seq: seq}
}

// FromIterator returns an unsized source over it. An error from Next fails
// the call with ErrSourceFailed.
func FromIterator[T any](it Iterator[T]) Source[T] {
	return Source[T]{it: it}
}

// Len returns the number of elements and true for sized sources.
func (s Source[T]) Len() (int, bool) {
	if !s.sized {
		return 0, false
	}
	return len(s.items), true
}

// Sized reports whether the length of the source is known up front.
func (s Source[T]) Sized() bool { return s.sized }

// close releases an iterator-backed source.
func (s Source[T]) close() error {
	if s.it != nil {
		return s.it.Close()
	}
	return nil
}

// sliceIterator is the Iterator over an in-memory slice.
type sliceIterator[T any] struct {
	items []T
	pos   int
}

// IteratorOf returns an Iterator over xs, mostly useful for tests and for
// adapting in-memory data to code written against Iterator.
func IteratorOf[T any](xs []T) Iterator[T] {
	return &sliceIterator[T]{items: xs}
}

func (it *sliceIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	if it.pos >= len(it.items) {
		return zero, false, nil
	}
	v := it.items[it.pos]
	it.pos++
	return v, true, nil
}

func (it *sliceIterator[T]) Close() error { return nil }

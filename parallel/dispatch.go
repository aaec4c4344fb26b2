package parallel

import (
	"context"
	"iter"
	"runtime/debug"
	"sync"
)

// outcome is the settled result of one segment task.
type outcome[R any] struct {
	index   int
	offset  int
	value   R
	skipped bool
	err     error
}

// segmentFunc computes the partial result of one segment.
type segmentFunc[T, R any] func(ctx context.Context, seg Segment[T]) (R, error)

// fork segments src by the call budget and dispatches every segment.
func fork[T, R any](c *call, src Source[T], fn segmentFunc[T, R]) <-chan outcome[R] {
	capacity := c.budget.Width
	if c.budget.Segments >= 0 && !c.budget.Bounded {
		capacity = c.budget.Segments
	}
	return dispatch(c, segments(c.ctx(), src, c.budget.SegmentLength), capacity, fn)
}

// dispatch launches one task per segment as the sequence yields them and
// returns the channel their outcomes are delivered on. The channel is
// closed once the sequence stops and every launched task has settled.
// Nothing new is launched after the call is cancelled. With a bulkhead the
// feeder blocks until a slot is free.
func dispatch[T, R any](c *call, segs iter.Seq2[Segment[T], error], capacity int, fn segmentFunc[T, R]) <-chan outcome[R] {
	results := make(chan outcome[R], bufferSize(capacity))
	ctx := c.ctx()

	var wg sync.WaitGroup
	go func() {
		defer func() {
			if r := recover(); r != nil {
				c.sourceFailed(newPanicError(r))
			}
			wg.Wait()
			close(results)
		}()
		for seg, err := range segs {
			if c.ctrl.cancelled() {
				return
			}
			if err != nil {
				c.sourceFailed(err)
				return
			}
			wg.Add(1)
			task := func() {
				defer wg.Done()
				runTask(c, seg, fn, results)
			}
			c.dispatched.Add(1)
			if c.bulkhead == nil {
				go task()
				continue
			}
			if err := c.bulkhead.Go(ctx, task); err != nil {
				c.dispatched.Add(-1)
				wg.Done()
				return
			}
		}
	}()
	return results
}

// runTask runs fn over one segment and delivers its outcome. A task that
// starts after the call was cancelled is skipped.
func runTask[T, R any](c *call, seg Segment[T], fn segmentFunc[T, R], results chan<- outcome[R]) {
	ctx := c.ctx()
	o := outcome[R]{index: seg.Index, offset: seg.Offset}
	if c.ctrl.cancelled() {
		c.skipped.Add(1)
		o.skipped = true
		deliver(ctx, results, o)
		return
	}

	c.metrics.RecordTaskStart(ctx, c.name)
	defer c.metrics.RecordTaskEnd(ctx, c.name)

	o.value, o.err = protect(c, ctx, seg, fn)
	deliver(ctx, results, o)
}

// protect runs fn, turning a callback error or panic into the call failure.
func protect[T, R any](c *call, ctx context.Context, seg Segment[T], fn segmentFunc[T, R]) (v R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = c.fail(seg.Index, newPanicError(r))
		}
	}()
	v, err = fn(ctx, seg)
	if err != nil && err != errAbandoned {
		err = c.fail(seg.Index, err)
	}
	return v, err
}

// deliver sends o unless the call is already decided.
func deliver[R any](ctx context.Context, results chan<- outcome[R], o outcome[R]) {
	select {
	case results <- o:
	case <-ctx.Done():
	}
}

func newPanicError(r any) *PanicError {
	return &PanicError{Value: r, Stack: debug.Stack()}
}

// scan visits the elements of seg in order until visit stops or fails. It
// checks for cancellation before every element and returns errAbandoned
// once the call is decided. Errors are tagged with the element index.
func scan[T any](c *call, seg Segment[T], visit func(i int, v T) (stop bool, err error)) error {
	for k, v := range seg.Items {
		if c.ctrl.cancelled() {
			return errAbandoned
		}
		i := seg.Offset + k
		stop, err := visit(i, v)
		if err != nil {
			return &elementError{index: i, err: err}
		}
		if stop {
			return nil
		}
	}
	return nil
}

// scanBackward is scan from the last element of seg to the first.
func scanBackward[T any](c *call, seg Segment[T], visit func(i int, v T) (stop bool, err error)) error {
	for k := len(seg.Items) - 1; k >= 0; k-- {
		if c.ctrl.cancelled() {
			return errAbandoned
		}
		i := seg.Offset + k
		stop, err := visit(i, seg.Items[k])
		if err != nil {
			return &elementError{index: i, err: err}
		}
		if stop {
			return nil
		}
	}
	return nil
}

package parallel

import "slices"

// collect hands settled outcomes to visit in completion order. It returns
// nil once every task has settled or visit asks to stop, and the call's
// terminal error as soon as the call is cancelled. A nil visit only waits.
func collect[R any](c *call, results <-chan outcome[R], visit func(outcome[R]) (stop bool)) error {
	done := c.ctx().Done()
	for {
		select {
		case o, ok := <-results:
			if !ok {
				if c.ctx().Err() != nil {
					return c.ctrl.err()
				}
				return nil
			}
			if o.skipped || o.err != nil {
				return c.ctrl.err()
			}
			if visit != nil && visit(o) {
				return nil
			}
		case <-done:
			return c.ctrl.err()
		}
	}
}

// gather returns the partial results indexed by segment.
func gather[R any](c *call, results <-chan outcome[R]) ([]R, error) {
	parts := make([]R, max(c.budget.Segments, 0))
	err := collect(c, results, func(o outcome[R]) bool {
		if o.index >= len(parts) {
			parts = append(parts, make([]R, o.index-len(parts)+1)...)
		}
		parts[o.index] = o.value
		return false
	})
	return parts, err
}

// concat joins per-segment slices in segment order. The result is never nil.
func concat[R any](parts [][]R) []R {
	out := slices.Concat(parts...)
	if out == nil {
		out = []R{}
	}
	return out
}

// reduce folds partial results in segment order. Outcomes that arrive
// early wait until every lower segment has been folded, so combine only
// needs to be associative. ok is false when there were no segments.
func reduce[R any](c *call, results <-chan outcome[R], combine func(acc, next R) (R, error)) (acc R, ok bool, err error) {
	pending := make(map[int]R)
	next := 0
	var combineErr error
	err = collect(c, results, func(o outcome[R]) bool {
		pending[o.index] = o.value
		for {
			v, found := pending[next]
			if !found {
				return false
			}
			delete(pending, next)
			if next == 0 {
				acc = v
			} else if acc, combineErr = guard(c, next, func() (R, error) { return combine(acc, v) }); combineErr != nil {
				return true
			}
			next++
		}
	})
	if combineErr != nil {
		return acc, false, combineErr
	}
	return acc, next > 0, err
}

// infallible adapts a plain combiner for reduce.
func infallible[R any](combine func(a, b R) R) func(a, b R) (R, error) {
	return func(a, b R) (R, error) { return combine(a, b), nil }
}

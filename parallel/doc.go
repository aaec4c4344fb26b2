// Package parallel runs collection operations over segments of a source
// in parallel while keeping the results of the sequential versions.
//
// A call splits its Source into segments, runs one task per segment and
// combines the per-segment results:
//
//   - All, Any, None: the first decisive element resolves the call.
//   - Count, Sum, SumOf, Fold: partial results are folded in segment order.
//   - Min, Max and their By, Of and Func forms: ties keep the lowest index.
//   - Map, Filter, FlatMap and friends: segment results are joined in
//     source order, never in completion order.
//   - First, Find, FirstNotNullOf: elements are tested in waves and the
//     lowest matching index wins.
//   - Last, LastNotNullOf: the highest matching index wins.
//   - Associate, AssociateBy, AssociateWith: later keys overwrite earlier
//     ones, as in a sequential build.
//
// # Sources
//
// Slice is sized: by default it is split into floor(log2 n) segments,
// capped by Config.Parallelism. Seq and FromIterator are unsized: they are
// pulled into batches of Config.SegmentLength, with at most
// Config.MaxInFlight tasks running at once; the pull blocks while every
// slot is busy.
//
// # Cancellation
//
// Every call owns a cancellation signal. A short-circuit, a callback
// failure or the caller's context ends the call; tasks check the signal
// between elements and tasks that have not started are skipped. Callbacks
// are assumed free of side effects, so a task may finish the element it
// is on after the call returned.
//
// # Errors
//
// Errors are *errors.AppError values matched with errors.Is against
// ErrEmptyInput, ErrNoMatch, ErrCallbackFailed and ErrSourceFailed. A
// cancelled caller context is returned as ctx.Err().
//
// # Usage
//
//	ok, err := parallel.All(ctx, parallel.Slice(xs), isEven)
//
//	evens, err := parallel.Filter(ctx, parallel.Slice(xs), isEven,
//	    parallel.WithConcurrency(4))
//
//	engine, err := parallel.New(parallel.Config{Parallelism: 8},
//	    parallel.WithLogger(log), parallel.WithMetrics(metrics))
//	total, err := parallel.Sum(ctx, parallel.Slice(xs), parallel.WithEngine(engine))
package parallel

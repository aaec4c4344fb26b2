package parallel

import (
	"cmp"
	"context"
	stderrors "errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/gopar/errors"
	"github.com/kbukum/gopar/logger"
	"github.com/kbukum/gopar/observability"
	"github.com/kbukum/gopar/resilience"
)

// Call outcomes recorded on spans, metrics and logs.
const (
	OutcomeOK           = "ok"
	OutcomeShortCircuit = "short_circuit"
	OutcomeEmpty        = "empty"
	OutcomeNoMatch      = "no_match"
	OutcomeFailed       = "failed"
	OutcomeCancelled    = "cancelled"
)

// PanicError is the cause of ErrCallbackFailed when a callback panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("callback panicked: %v", e.Value)
}

// elementError tags a callback error with the source index it failed on.
type elementError struct {
	index int
	err   error
}

func (e *elementError) Error() string { return e.err.Error() }
func (e *elementError) Unwrap() error { return e.err }

// call is the state of one aggregate call. It owns the budget, the
// controller and the bulkhead; none of them outlive the call.
type call struct {
	op       string
	name     string
	id       string
	budget   Budget
	ctrl     *controller
	bulkhead *resilience.Bulkhead
	log      *logger.Logger
	metrics  *observability.EngineMetrics
	scope    *observability.CallScope

	dispatched atomic.Int64
	skipped    atomic.Int64
}

// begin validates the options, plans the budget and starts the call span.
// The source is closed if the call cannot start.
func begin[T any](ctx context.Context, op string, src Source[T], mode planMode, opts []Option) (*call, error) {
	o, err := applyOptions(opts)
	if err != nil {
		_ = src.close()
		return nil, err
	}
	e := o.engine
	if e == nil {
		e = Default()
	}

	n, sized := src.Len()
	c := &call{
		op:      op,
		name:    cmp.Or(o.name, op),
		id:      uuid.NewString(),
		budget:  e.cfg.plan(n, sized, mode, o),
		log:     e.log,
		metrics: e.metrics,
	}

	ctx = logger.ContextWithCallID(ctx, c.id)
	ctx, c.scope = observability.StartCall(ctx, e.tracer, e.metrics, c.name, c.id)
	c.scope.Annotate(
		attribute.Bool(observability.AttrSized, c.budget.Sized),
		attribute.Int(observability.AttrWidth, c.budget.Width),
		attribute.Int(observability.AttrSegmentLength, c.budget.SegmentLength),
	)
	c.ctrl = newController(ctx)

	if c.budget.Bounded {
		c.bulkhead = resilience.NewBulkhead(resilience.BulkheadConfig{
			Name:          c.name,
			MaxConcurrent: c.budget.Width,
			MaxWait:       resilience.WaitForever,
			OnAcquire:     func(name string) { c.metrics.RecordSlotAcquired(ctx, name) },
			OnRelease:     func(name string) { c.metrics.RecordSlotReleased(ctx, name) },
			OnReject:      func(name string) { c.metrics.RecordSlotRejected(ctx, name) },
		})
	}

	if c.log.DebugEnabled() {
		c.log.Debug("call started", logger.Fields(
			logger.FieldOperation, c.name,
			logger.FieldCallID, c.id,
			logger.FieldSized, c.budget.Sized,
			logger.FieldWidth, c.budget.Width,
			logger.FieldSegmentLength, c.budget.SegmentLength,
			logger.FieldSegments, c.budget.Segments,
		))
	}
	return c, nil
}

// ctx is the context tasks and try-callbacks run under. It is cancelled as
// soon as the call is decided.
func (c *call) ctx() context.Context {
	return c.ctrl.ctx
}

// end resolves the call and records how it ended. It is deferred by every
// family with a pointer to the named error result.
func (c *call) end(errp *error) {
	err := *errp
	outcome := c.outcome(err)
	c.ctrl.resolve()

	stats := observability.CallStats{
		Segments: int(c.dispatched.Load()),
		Skipped:  int(c.skipped.Load()),
	}
	var spanErr error
	if outcome == OutcomeFailed || outcome == OutcomeCancelled {
		spanErr = err
	}
	c.scope.End(c.ctrl.parent, outcome, stats, spanErr)

	fields := logger.Fields(
		logger.FieldOperation, c.name,
		logger.FieldCallID, c.id,
		logger.FieldOutcome, outcome,
		logger.FieldSegments, stats.Segments,
		logger.FieldSkipped, stats.Skipped,
		logger.FieldDuration, c.scope.Duration().Milliseconds(),
	)
	switch {
	case outcome == OutcomeFailed:
		c.log.Warn("call failed", logger.MergeWithError(fields, err))
	case c.log.DebugEnabled():
		c.log.Debug("call resolved", fields)
	}
}

func (c *call) outcome(err error) string {
	switch {
	case err == nil && c.ctrl.shortCircuited():
		return OutcomeShortCircuit
	case err == nil:
		return OutcomeOK
	case errors.IsCode(err, errors.ErrCodeEmptyInput):
		return OutcomeEmpty
	case errors.IsCode(err, errors.ErrCodeNoMatch):
		return OutcomeNoMatch
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return OutcomeCancelled
	default:
		return OutcomeFailed
	}
}

// shortCircuit fixes a result decided by the given segment before every
// segment ran. It returns the winning terminal error if another cause got
// there first.
func (c *call) shortCircuit(segment int) error {
	if err := c.ctrl.claim(); err != nil {
		return err
	}
	c.scope.Event(observability.EventShortCircuit, attribute.Int(observability.AttrSegmentIndex, segment))
	return nil
}

// fail turns a callback error or panic from the given segment into the
// call's CallbackFailed error and cancels the call with it. The first
// failure wins; later ones are returned but not recorded.
func (c *call) fail(segment int, err error) error {
	appErr := errors.CallbackFailed(c.op, err).WithDetail(logger.FieldSegmentIndex, segment)
	var ee *elementError
	if stderrors.As(err, &ee) {
		appErr.Cause = ee.err
		appErr.WithDetail(logger.FieldElementIndex, ee.index)
	}
	c.ctrl.trip(appErr)
	return appErr
}

// sourceFailed cancels the call with an error from an unsized source.
func (c *call) sourceFailed(err error) error {
	appErr := errors.SourceFailed(c.op, err)
	c.ctrl.trip(appErr)
	return c.ctrl.err()
}

// guard runs fn on the aggregator goroutine, converting an error or panic
// into the call failure for the given segment.
func guard[R any](c *call, segment int, fn func() (R, error)) (v R, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.fail(segment, newPanicError(r))
			err = c.ctrl.err()
		}
	}()
	v, err = fn()
	if err != nil {
		c.fail(segment, err)
		err = c.ctrl.err()
	}
	return v, err
}

package parallel

import (
	"context"
	stderrors "errors"
	"sync/atomic"

	"github.com/kbukum/gopar/errors"
)

// State is the lifecycle of one aggregate call.
type State int32

const (
	// StateRunning means no terminal condition has been observed.
	StateRunning State = iota
	// StateCancelling means the call context is cancelled and tasks are
	// abandoning their segments.
	StateCancelling
	// StateResolved means the result is fixed.
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCancelling:
		return "cancelling"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

var (
	// errShortCircuit is the cause recorded when the result was decided
	// before every segment ran. Families map it to a successful result.
	errShortCircuit = stderrors.New("parallel: short-circuit")
	// errResolved cancels whatever is still running after a call returns.
	errResolved = stderrors.New("parallel: call resolved")
	// errAbandoned is returned by a task that stopped at a safe point.
	errAbandoned = stderrors.New("parallel: segment abandoned")
)

// controller is the cancellation signal shared by the tasks of one call.
// Invariant: state != StateRunning implies ctx is done.
type controller struct {
	parent context.Context
	ctx    context.Context
	cancel context.CancelCauseFunc
	state  atomic.Int32
	stop   func() bool
}

func newController(parent context.Context) *controller {
	ctx, cancel := context.WithCancelCause(parent)
	c := &controller{parent: parent, ctx: ctx, cancel: cancel}
	c.stop = context.AfterFunc(ctx, func() {
		c.state.CompareAndSwap(int32(StateRunning), int32(StateCancelling))
	})
	return c
}

// State returns the current state.
func (c *controller) State() State {
	return State(c.state.Load())
}

// cancelled is the safe-point check made by tasks between elements.
func (c *controller) cancelled() bool {
	return c.state.Load() != int32(StateRunning)
}

// trip cancels the call with cause. Only the first cause is kept; trip
// reports whether cause is it.
func (c *controller) trip(cause error) bool {
	c.cancel(cause)
	c.state.CompareAndSwap(int32(StateRunning), int32(StateCancelling))
	return context.Cause(c.ctx) == cause
}

// claim fixes a short-circuit result decided by the aggregator. It returns
// the winning terminal error if another cause got there first.
func (c *controller) claim() error {
	if c.trip(errShortCircuit) {
		return nil
	}
	return c.err()
}

// resolve marks the result as fixed and releases everything still waiting
// on the call context.
func (c *controller) resolve() {
	c.cancel(errResolved)
	c.state.Store(int32(StateResolved))
	c.stop()
}

// shortCircuited reports whether the call ended through a short-circuit.
func (c *controller) shortCircuited() bool {
	return context.Cause(c.ctx) == errShortCircuit
}

// err blocks until the call context is done and maps its cause to the
// error the call returns. A caller cancellation surfaces as the caller's
// ctx.Err().
func (c *controller) err() error {
	<-c.ctx.Done()
	cause := context.Cause(c.ctx)
	if cause == errShortCircuit || cause == errResolved {
		return cause
	}
	if _, ok := errors.AsAppError(cause); ok {
		return cause
	}
	if err := c.parent.Err(); err != nil {
		return err
	}
	return cause
}

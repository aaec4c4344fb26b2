package parallel

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/kbukum/gopar/errors"
)

func TestControllerTrip(t *testing.T) {
	c := newController(context.Background())
	if c.State() != StateRunning || c.cancelled() {
		t.Fatalf("new controller in state %v", c.State())
	}

	failure := errors.CallbackFailed("Map", stderrors.New("boom"))
	if !c.trip(failure) {
		t.Fatal("first trip should win")
	}
	if c.State() != StateCancelling || !c.cancelled() {
		t.Errorf("expected cancelling, got %v", c.State())
	}
	if c.trip(errShortCircuit) {
		t.Error("second trip should lose")
	}
	if err := c.err(); err != failure {
		t.Errorf("err() = %v, want the first cause", err)
	}
	if err := c.claim(); err != failure {
		t.Errorf("claim() = %v, want the failure", err)
	}

	c.resolve()
	if c.State() != StateResolved {
		t.Errorf("expected resolved, got %v", c.State())
	}
}

func TestControllerShortCircuit(t *testing.T) {
	c := newController(context.Background())
	if err := c.claim(); err != nil {
		t.Fatalf("claim() = %v", err)
	}
	if !c.shortCircuited() {
		t.Error("expected short-circuit cause")
	}
	if err := c.err(); err != errShortCircuit {
		t.Errorf("err() = %v, want errShortCircuit", err)
	}
}

func TestControllerParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	c := newController(parent)
	cancel()

	deadline := time.Now().Add(time.Second)
	for !c.cancelled() {
		if time.Now().After(deadline) {
			t.Fatal("controller did not observe parent cancellation")
		}
		time.Sleep(time.Millisecond)
	}
	if err := c.err(); err != context.Canceled {
		t.Errorf("err() = %v, want context.Canceled", err)
	}
	if c.trip(errShortCircuit) {
		t.Error("trip after parent cancellation should lose")
	}
}

func TestControllerResolveReleasesContext(t *testing.T) {
	c := newController(context.Background())
	c.resolve()
	select {
	case <-c.ctx.Done():
	default:
		t.Fatal("resolve should cancel the call context")
	}
	if context.Cause(c.ctx) != errResolved {
		t.Errorf("cause = %v", context.Cause(c.ctx))
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateRunning:    "running",
		StateCancelling: "cancelling",
		StateResolved:   "resolved",
		State(42):       "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}

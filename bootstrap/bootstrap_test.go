package bootstrap

import (
	"context"
	stderrors "errors"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/kbukum/gopar/config"
	"github.com/kbukum/gopar/logger"
)

type testConfig struct {
	config.ServiceConfig
}

func newTestConfig(name, version string) *testConfig {
	return &testConfig{
		ServiceConfig: config.ServiceConfig{
			Name:        name,
			Version:     version,
			Environment: "development",
		},
	}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(newTestConfig("test-svc", "1.0.0"), WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	if app.Name != "test-svc" || app.Version != "1.0.0" {
		t.Errorf("unexpected app identity %q %q", app.Name, app.Version)
	}
	if app.Cfg.Logging.Level != "info" {
		t.Errorf("expected defaults applied to the config, got level %q", app.Cfg.Logging.Level)
	}
}

func TestNewAppInitializesGlobalLogger(t *testing.T) {
	cfg := newTestConfig("logged-svc", "")
	cfg.Logging.Output = "discard"
	app, err := NewApp(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if app.Logger != logger.GetGlobalLogger() {
		t.Error("expected the app to use the global logger")
	}
}

func TestNewAppValidationError(t *testing.T) {
	_, err := NewApp(&testConfig{})
	if err == nil {
		t.Fatal("expected validation error for missing name")
	}
	if !strings.Contains(err.Error(), "config validation") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestRunTaskHookOrder(t *testing.T) {
	app, _ := NewApp(newTestConfig("svc", ""), WithLogger(logger.Nop()))
	var order []string
	record := func(name string) Hook {
		return func(context.Context) error {
			order = append(order, name)
			return nil
		}
	}
	app.OnStart(record("start"))
	app.OnStop(record("stop-1"), record("stop-2"))

	err := app.RunTask(context.Background(), func(context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "start,task,stop-2,stop-1"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
}

func TestRunTaskErrors(t *testing.T) {
	taskErr := stderrors.New("task")
	stopErr := stderrors.New("stop")

	t.Run("task error wins", func(t *testing.T) {
		app, _ := NewApp(newTestConfig("svc", ""), WithLogger(logger.Nop()))
		app.OnStop(func(context.Context) error { return stopErr })
		err := app.RunTask(context.Background(), func(context.Context) error { return taskErr })
		if !stderrors.Is(err, taskErr) || stderrors.Is(err, stopErr) {
			t.Errorf("expected the task error only, got %v", err)
		}
	})

	t.Run("stop error reported", func(t *testing.T) {
		app, _ := NewApp(newTestConfig("svc", ""), WithLogger(logger.Nop()))
		stopped := false
		app.OnStop(func(context.Context) error { stopped = true; return nil })
		app.OnStop(func(context.Context) error { return stopErr })
		err := app.RunTask(context.Background(), func(context.Context) error { return nil })
		if !stderrors.Is(err, stopErr) {
			t.Errorf("expected stop error, got %v", err)
		}
		if !stopped {
			t.Error("every stop hook should run")
		}
	})

	t.Run("start error skips task", func(t *testing.T) {
		app, _ := NewApp(newTestConfig("svc", ""), WithLogger(logger.Nop()))
		app.OnStart(func(context.Context) error { return stderrors.New("boom") })
		stopped := false
		app.OnStop(func(context.Context) error { stopped = true; return nil })
		ran := false
		err := app.RunTask(context.Background(), func(context.Context) error { ran = true; return nil })
		if err == nil || ran {
			t.Errorf("expected start failure without running the task, got %v ran=%v", err, ran)
		}
		if !stopped {
			t.Error("stop hooks should run after a start failure")
		}
	})
}

func TestRunTaskCancelledBySignal(t *testing.T) {
	app, _ := NewApp(newTestConfig("svc", ""), WithLogger(logger.Nop()))
	app.signals = []os.Signal{syscall.SIGUSR1}

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		if err := syscall.Kill(os.Getpid(), syscall.SIGUSR1); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(5 * time.Second):
			return stderrors.New("task was not cancelled")
		}
	})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGracefulTimeoutBoundsStopHooks(t *testing.T) {
	app, _ := NewApp(newTestConfig("svc", ""), WithLogger(logger.Nop()), WithGracefulTimeout(10*time.Millisecond))
	app.OnStop(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	err := app.RunTask(context.Background(), func(context.Context) error { return nil })
	if !stderrors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

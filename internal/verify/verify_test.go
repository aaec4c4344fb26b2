package verify

import (
	"context"
	stderrors "errors"
	"slices"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/gopar/errors"
	"github.com/kbukum/gopar/logger"
	"github.com/kbukum/gopar/parallel"
)

func newRunner(t *testing.T, size int) *Runner {
	t.Helper()
	e, err := parallel.New(parallel.Config{Parallelism: 4})
	if err != nil {
		t.Fatal(err)
	}
	return &Runner{Engine: e, Log: logger.Nop(), Size: size, Seed: 42}
}

func TestCatalogPasses(t *testing.T) {
	for _, size := range []int{0, 1, 257} {
		report, err := newRunner(t, size).Run(context.Background(), Catalog())
		if err != nil {
			t.Fatal(err)
		}
		if len(report.Results) != len(Catalog()) {
			t.Fatalf("expected %d results, got %d", len(Catalog()), len(report.Results))
		}
		for _, res := range report.Results {
			if res.Status != StatusPass {
				t.Errorf("size %d: %s failed: %s", size, res.Name, res.Error)
			}
		}
	}
}

func TestCatalogNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Catalog() {
		if seen[c.Name] {
			t.Errorf("duplicate check %q", c.Name)
		}
		seen[c.Name] = true
	}
}

func TestRunReportsFailures(t *testing.T) {
	checks := []Check{
		{Name: "ok", Family: FamilyScenario, Run: func(context.Context, Input) error { return nil }},
		{Name: "broken", Family: FamilyProperty, Run: func(context.Context, Input) error {
			return mismatch("answer", 41, 42)
		}},
	}
	report, err := newRunner(t, 10).Run(context.Background(), checks)
	if err != nil {
		t.Fatal(err)
	}
	if report.Failed() != 1 || report.Results[1].Status != StatusFail {
		t.Fatalf("unexpected results %+v", report.Results)
	}
	if report.Results[1].Error != "answer: got 41, want 42" {
		t.Errorf("unexpected error text %q", report.Results[1].Error)
	}
	s := report.Summary()
	if s.Passed != 1 || s.Failed != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
	rows := report.Rows()
	if !rows[1].Failed || rows[1].Cells[0] != FamilyProperty {
		t.Errorf("unexpected row %+v", rows[1])
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newRunner(t, 10).Run(ctx, Catalog())
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	all := Catalog()
	got, err := Select(all, []string{"sum", "max-empty"})
	if err != nil {
		t.Fatal(err)
	}
	names := []string{got[0].Name, got[1].Name}
	if !slices.Equal(names, []string{"max-empty", "sum"}) {
		t.Errorf("expected catalog order, got %v", names)
	}

	if got, _ := Select(all, nil); len(got) != len(all) {
		t.Error("an empty selection should keep every check")
	}

	_, err = Select(all, []string{"sum", "nope"})
	if !errors.IsCode(err, errors.ErrCodeInvalidInput) || !strings.Contains(err.Error(), "nope") {
		t.Errorf("expected invalid input naming the check, got %v", err)
	}
}

func TestRandomDataIsSeeded(t *testing.T) {
	a, b := RandomData(100, 7), RandomData(100, 7)
	if !slices.Equal(a, b) {
		t.Error("same seed should give the same data")
	}
	if slices.Equal(a, RandomData(100, 8)) {
		t.Error("different seeds should give different data")
	}
	for _, n := range a {
		if n < -100 || n > 100 {
			t.Fatalf("value %d out of range", n)
		}
	}
}

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func TestRunTracesFailedChecks(t *testing.T) {
	recorder := recordSpans(t)
	checks := []Check{
		{Name: "ok", Family: FamilyScenario, Run: func(context.Context, Input) error { return nil }},
		{Name: "broken", Family: FamilyScenario, Run: func(context.Context, Input) error {
			return mismatch("answer", 1, 2)
		}},
	}
	if _, err := newRunner(t, 10).Run(context.Background(), checks); err != nil {
		t.Fatal(err)
	}

	var run, call sdktrace.ReadOnlySpan
	for _, span := range recorder.Ended() {
		switch span.Name() {
		case "verify.run":
			run = span
		case "parallel.verify":
			call = span
		}
	}
	if run == nil || call == nil {
		t.Fatalf("expected run and call spans, got %d spans", len(recorder.Ended()))
	}
	if call.Parent().SpanID() != run.SpanContext().SpanID() {
		t.Error("the call span should be a child of the run span")
	}
	var failed int64 = -1
	for _, kv := range run.Attributes() {
		if kv.Key == "verify.failed" {
			failed = kv.Value.AsInt64()
		}
	}
	if failed != 1 {
		t.Errorf("verify.failed = %d, want 1", failed)
	}
	var events []string
	for _, ev := range call.Events() {
		if ev.Name == EventCheckFailed {
			for _, kv := range ev.Attributes {
				events = append(events, kv.Value.AsString())
			}
		}
	}
	if !slices.Equal(events, []string{"broken"}) {
		t.Errorf("check_failed events = %v", events)
	}
}

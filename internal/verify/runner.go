package verify

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/gopar/internal/output"
	"github.com/kbukum/gopar/logger"
	"github.com/kbukum/gopar/observability"
	"github.com/kbukum/gopar/parallel"
)

// EventCheckFailed is added to the enclosing call span for every failed
// check.
const EventCheckFailed = "check_failed"

// Result statuses.
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// Result is the outcome of one check.
type Result struct {
	Name     string        `json:"name" yaml:"name"`
	Family   string        `json:"family" yaml:"family"`
	Status   string        `json:"status" yaml:"status"`
	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report collects the results of a verify run.
type Report struct {
	Seed    uint64        `json:"seed" yaml:"seed"`
	Size    int           `json:"size" yaml:"size"`
	Results []Result      `json:"results" yaml:"results"`
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
}

// Failed reports the number of failed checks.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusFail {
			n++
		}
	}
	return n
}

// Columns implements output.Tabular.
func (r *Report) Columns() []string {
	return []string{"FAMILY", "DURATION", "ERROR"}
}

// Rows implements output.Tabular.
func (r *Report) Rows() []output.Row {
	rows := make([]output.Row, len(r.Results))
	for i, res := range r.Results {
		rows[i] = output.Row{
			Name:   res.Name,
			Status: res.Status,
			Failed: res.Status == StatusFail,
			Cells:  []string{res.Family, res.Duration.Round(time.Microsecond).String(), res.Error},
		}
	}
	return rows
}

// Summary implements output.Tabular.
func (r *Report) Summary() output.Summary {
	failed := r.Failed()
	return output.Summary{Passed: len(r.Results) - failed, Failed: failed, Elapsed: r.Elapsed}
}

// Runner runs checks on one engine.
type Runner struct {
	Engine *parallel.Engine
	Log    *logger.Logger
	Size   int
	Seed   uint64
}

// Run runs the checks concurrently and reports them in the given order. A
// failing check is a failed Result; Run itself fails only when ctx ends.
func (r *Runner) Run(ctx context.Context, checks []Check) (*Report, error) {
	ctx, span := observability.StartSpan(ctx, "verify.run")
	defer span.End()
	observability.SetSpanAttribute(ctx, "verify.size", r.Size)
	observability.SetSpanAttribute(ctx, "verify.seed", int64(r.Seed))

	start := time.Now()
	in := Input{
		Data: RandomData(r.Size, r.Seed),
		Opts: []parallel.Option{parallel.WithEngine(r.Engine)},
	}

	results, err := parallel.TryMap(ctx, parallel.Slice(checks), func(ctx context.Context, c Check) (Result, error) {
		return r.runOne(ctx, c, in), ctx.Err()
	}, parallel.WithEngine(r.Engine), parallel.WithSegmentLength(1), parallel.WithName("verify"))
	if err != nil {
		observability.SetSpanError(ctx, err)
		return nil, err
	}

	report := &Report{
		Seed:    r.Seed,
		Size:    r.Size,
		Results: results,
		Elapsed: time.Since(start),
	}
	observability.SetSpanAttribute(ctx, "verify.failed", report.Failed())
	return report, nil
}

func (r *Runner) runOne(ctx context.Context, c Check, in Input) Result {
	start := time.Now()
	err := c.Run(ctx, in)
	res := Result{
		Name:     c.Name,
		Family:   c.Family,
		Status:   StatusPass,
		Duration: time.Since(start),
	}
	if err != nil {
		res.Status = StatusFail
		res.Error = err.Error()
		r.Log.Warn("check failed", logger.Fields("check", c.Name, logger.FieldError, res.Error))
		if scope := observability.CallScopeFromContext(ctx); scope != nil {
			scope.Event(EventCheckFailed, attribute.String("check", c.Name))
		}
	} else {
		r.Log.Debug("check passed", logger.MergeWithDuration(logger.Fields("check", c.Name), res.Duration))
	}
	return res
}

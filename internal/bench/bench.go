// Package bench times engine calls against their sequential equivalents.
package bench

import (
	"context"
	"fmt"
	"hash/fnv"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/kbukum/gopar/errors"
	"github.com/kbukum/gopar/internal/output"
	"github.com/kbukum/gopar/logger"
	"github.com/kbukum/gopar/observability"
	"github.com/kbukum/gopar/parallel"
)

// Op is one benchmarked operation. Both sides compute the same answer;
// Parallel returns it for comparison with Sequential.
type Op struct {
	Name       string
	Sequential func(xs []int) int
	Parallel   func(ctx context.Context, xs []int, opts ...parallel.Option) (int, error)
}

// work is a deterministic CPU-bound step so callbacks cost more than the
// engine's bookkeeping.
func work(n int) int {
	h := fnv.New64a()
	var buf [20]byte
	for range 32 {
		h.Write(strconv.AppendInt(buf[:0], int64(n), 10))
	}
	return int(h.Sum64() % 1024)
}

func heavy(n int) bool { return work(n) == 1023 }

var ops = []Op{
	{
		Name: "sum",
		Sequential: func(xs []int) int {
			total := 0
			for _, n := range xs {
				total += work(n)
			}
			return total
		},
		Parallel: func(ctx context.Context, xs []int, opts ...parallel.Option) (int, error) {
			return parallel.SumOf(ctx, parallel.Slice(xs), work, opts...)
		},
	},
	{
		Name: "count",
		Sequential: func(xs []int) int {
			n := 0
			for _, x := range xs {
				if heavy(x) {
					n++
				}
			}
			return n
		},
		Parallel: func(ctx context.Context, xs []int, opts ...parallel.Option) (int, error) {
			return parallel.Count(ctx, parallel.Slice(xs), heavy, opts...)
		},
	},
	{
		Name: "filter",
		Sequential: func(xs []int) int {
			var kept []int
			for _, x := range xs {
				if work(x)%2 == 0 {
					kept = append(kept, x)
				}
			}
			return len(kept)
		},
		Parallel: func(ctx context.Context, xs []int, opts ...parallel.Option) (int, error) {
			kept, err := parallel.Filter(ctx, parallel.Slice(xs), func(x int) bool { return work(x)%2 == 0 }, opts...)
			return len(kept), err
		},
	},
	{
		Name: "map",
		Sequential: func(xs []int) int {
			out := make([]int, len(xs))
			for i, x := range xs {
				out[i] = work(x)
			}
			return out[len(out)-1]
		},
		Parallel: func(ctx context.Context, xs []int, opts ...parallel.Option) (int, error) {
			out, err := parallel.Map(ctx, parallel.Slice(xs), work, opts...)
			if err != nil {
				return 0, err
			}
			return out[len(out)-1], nil
		},
	},
	{
		Name: "max",
		Sequential: func(xs []int) int {
			best := work(xs[0])
			for _, x := range xs[1:] {
				best = max(best, work(x))
			}
			return best
		},
		Parallel: func(ctx context.Context, xs []int, opts ...parallel.Option) (int, error) {
			return parallel.MaxOf(ctx, parallel.Slice(xs), work, opts...)
		},
	},
	{
		Name: "any",
		Sequential: func(xs []int) int {
			if slices.ContainsFunc(xs, func(x int) bool { return work(x) > 1023 }) {
				return 1
			}
			return 0
		},
		Parallel: func(ctx context.Context, xs []int, opts ...parallel.Option) (int, error) {
			found, err := parallel.Any(ctx, parallel.Slice(xs), func(x int) bool { return work(x) > 1023 }, opts...)
			if found {
				return 1, err
			}
			return 0, err
		},
	},
	{
		Name: "first",
		Sequential: func(xs []int) int {
			target := xs[len(xs)*3/4]
			return xs[slices.IndexFunc(xs, func(x int) bool { return work(x) == work(target) })]
		},
		Parallel: func(ctx context.Context, xs []int, opts ...parallel.Option) (int, error) {
			target := work(xs[len(xs)*3/4])
			return parallel.First(ctx, parallel.Slice(xs), func(x int) bool { return work(x) == target }, opts...)
		},
	},
}

// Names lists the available operations.
func Names() []string {
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}

// Select returns the named operations in catalog order. "all" or an empty
// list selects every operation.
func Select(names []string) ([]Op, error) {
	if len(names) == 0 || slices.Contains(names, "all") {
		return ops, nil
	}
	var unknown []string
	for _, n := range names {
		if !slices.Contains(Names(), n) {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return nil, errors.InvalidInput("ops", fmt.Sprintf("unknown ops %s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(Names(), ", ")))
	}
	return slices.DeleteFunc(slices.Clone(ops), func(op Op) bool {
		return !slices.Contains(names, op.Name)
	}), nil
}

// Result is the timing of one operation. Durations are the best of the
// measured rounds.
type Result struct {
	Name       string        `json:"name" yaml:"name"`
	Sequential time.Duration `json:"sequential_ns" yaml:"sequential_ns"`
	Parallel   time.Duration `json:"parallel_ns" yaml:"parallel_ns"`
	Speedup    float64       `json:"speedup" yaml:"speedup"`
	Error      string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report collects the results of a bench run.
type Report struct {
	Size    int           `json:"size" yaml:"size"`
	Rounds  int           `json:"rounds" yaml:"rounds"`
	Width   int           `json:"parallelism" yaml:"parallelism"`
	Results []Result      `json:"results" yaml:"results"`
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
}

// Columns implements output.Tabular.
func (r *Report) Columns() []string {
	return []string{"SEQUENTIAL", "PARALLEL", "SPEEDUP"}
}

// Rows implements output.Tabular.
func (r *Report) Rows() []output.Row {
	rows := make([]output.Row, len(r.Results))
	for i, res := range r.Results {
		row := output.Row{
			Name:   res.Name,
			Status: "ok",
			Cells: []string{
				res.Sequential.Round(time.Microsecond).String(),
				res.Parallel.Round(time.Microsecond).String(),
				fmt.Sprintf("%.2fx", res.Speedup),
			},
		}
		if res.Error != "" {
			row.Status, row.Failed = res.Error, true
		}
		rows[i] = row
	}
	return rows
}

// Summary implements output.Tabular.
func (r *Report) Summary() output.Summary {
	s := output.Summary{Elapsed: r.Elapsed}
	for _, res := range r.Results {
		if res.Error != "" {
			s.Failed++
		} else {
			s.Passed++
		}
	}
	return s
}

// Runner times operations on one engine.
type Runner struct {
	Engine *parallel.Engine
	Log    *logger.Logger
	Size   int
	Rounds int
}

// Run measures each operation in turn. Operations are not run
// concurrently with each other so timings do not interfere.
func (r *Runner) Run(ctx context.Context, selected []Op) (*Report, error) {
	ctx, span := observability.StartSpan(ctx, "bench.run")
	defer span.End()

	start := time.Now()
	xs := make([]int, max(r.Size, 1))
	for i := range xs {
		xs[i] = i
	}
	rounds := max(r.Rounds, 1)
	observability.SetSpanAttribute(ctx, "bench.size", len(xs))
	observability.SetSpanAttribute(ctx, "bench.rounds", rounds)

	report := &Report{Size: len(xs), Rounds: rounds, Width: r.Engine.Config().Parallelism}
	for _, op := range selected {
		if err := ctx.Err(); err != nil {
			observability.SetSpanError(ctx, err)
			return nil, err
		}
		res := r.measure(ctx, op, xs, rounds)
		r.Log.Debug("op measured", logger.Fields("op", op.Name, "speedup", res.Speedup))
		report.Results = append(report.Results, res)
	}
	report.Elapsed = time.Since(start)
	observability.SetSpanAttribute(ctx, "bench.failed", report.Summary().Failed)
	return report, nil
}

func (r *Runner) measure(ctx context.Context, op Op, xs []int, rounds int) Result {
	res := Result{Name: op.Name}
	var want int
	for i := range rounds {
		t0 := time.Now()
		want = op.Sequential(xs)
		if d := time.Since(t0); i == 0 || d < res.Sequential {
			res.Sequential = d
		}
	}
	for i := range rounds {
		t0 := time.Now()
		got, err := op.Parallel(ctx, xs, parallel.WithEngine(r.Engine), parallel.WithName("bench."+op.Name))
		d := time.Since(t0)
		if err != nil {
			res.Error = err.Error()
			return res
		}
		if got != want {
			res.Error = fmt.Sprintf("mismatch: got %d, want %d", got, want)
			return res
		}
		if i == 0 || d < res.Parallel {
			res.Parallel = d
		}
	}
	if res.Parallel > 0 {
		res.Speedup = float64(res.Sequential) / float64(res.Parallel)
	}
	return res
}

package verify

import (
	"context"
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/kbukum/gopar/errors"
	"github.com/kbukum/gopar/parallel"
)

// Check families.
const (
	FamilyScenario = "scenario"
	FamilyProperty = "property"
)

// Input is what a check runs on.
type Input struct {
	// Data is seeded random data for property checks.
	Data []int
	// Opts carries the engine every call must run on.
	Opts []parallel.Option
}

// Check is one named verification.
type Check struct {
	Name   string
	Family string
	Run    func(ctx context.Context, in Input) error
}

// Variant is one way of calling the engine in a property check.
type Variant struct {
	Name string
	Opts []parallel.Option
}

// Variants are the option sets every property check runs with.
var Variants = []Variant{
	{"default", nil},
	{"concurrency=1", []parallel.Option{parallel.WithConcurrency(1)}},
	{"concurrency=3", []parallel.Option{parallel.WithConcurrency(3)}},
	{"concurrency=64", []parallel.Option{parallel.WithConcurrency(64)}},
	{"segment=1", []parallel.Option{parallel.WithSegmentLength(1)}},
	{"segment=7", []parallel.Option{parallel.WithSegmentLength(7)}},
	{"segment=7,concurrency=2", []parallel.Option{parallel.WithSegmentLength(7), parallel.WithConcurrency(2)}},
}

type sourceKind struct {
	name string
	make func([]int) parallel.Source[int]
}

var sourceKinds = []sourceKind{
	{"slice", parallel.Slice[int]},
	{"seq", func(xs []int) parallel.Source[int] { return parallel.Seq(slices.Values(xs)) }},
	{"iterator", func(xs []int) parallel.Source[int] { return parallel.FromIterator(parallel.IteratorOf(xs)) }},
}

// cases yields every source kind and variant with the input options
// appended last.
func cases(in Input) iter.Seq2[string, func() (parallel.Source[int], []parallel.Option)] {
	return func(yield func(string, func() (parallel.Source[int], []parallel.Option)) bool) {
		for _, sk := range sourceKinds {
			for _, v := range Variants {
				name := sk.name + "/" + v.Name
				mk := func() (parallel.Source[int], []parallel.Option) {
					return sk.make(in.Data), slices.Concat(v.Opts, in.Opts)
				}
				if !yield(name, mk) {
					return
				}
			}
		}
	}
}

func mismatch(what string, got, want any) error {
	return fmt.Errorf("%s: got %v, want %v", what, got, want)
}

// Catalog returns every check in a stable order.
func Catalog() []Check {
	return slices.Concat(scenarios(), properties())
}

// Select returns the checks whose names are listed, in catalog order. An
// empty list selects everything.
func Select(checks []Check, names []string) ([]Check, error) {
	if len(names) == 0 {
		return checks, nil
	}
	var unknown []string
	for _, n := range names {
		if !slices.ContainsFunc(checks, func(c Check) bool { return c.Name == n }) {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return nil, errors.InvalidInput("checks", "unknown checks: "+strings.Join(unknown, ", "))
	}
	return slices.DeleteFunc(slices.Clone(checks), func(c Check) bool {
		return !slices.Contains(names, c.Name)
	}), nil
}

// RandomData returns n values in [-n, n) drawn from a PCG seeded by seed.
func RandomData(n int, seed uint64) []int {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]int, n)
	for i := range out {
		out[i] = r.IntN(2*n+1) - n
	}
	return out
}

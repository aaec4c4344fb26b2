package parallel

import "github.com/kbukum/gopar/validation"

// Option configures one aggregate call.
type Option func(*callOptions)

type callOptions struct {
	engine           *Engine
	name             string
	concurrency      int
	segmentLength    int
	setConcurrency   bool
	setSegmentLength bool
}

// WithEngine runs the call on e instead of the default engine.
func WithEngine(e *Engine) Option {
	return func(o *callOptions) { o.engine = e }
}

// WithConcurrency sets the call width. On a sized source it fixes the
// segment count, on an unsized source it bounds the running tasks, and for
// First searches it is the wave width.
func WithConcurrency(n int) Option {
	return func(o *callOptions) {
		o.concurrency = n
		o.setConcurrency = true
	}
}

// WithSegmentLength sets the number of elements per segment.
func WithSegmentLength(n int) Option {
	return func(o *callOptions) {
		o.segmentLength = n
		o.setSegmentLength = true
	}
}

// WithName overrides the operation name used in spans, metrics and logs.
func WithName(name string) Option {
	return func(o *callOptions) { o.name = name }
}

func applyOptions(opts []Option) (callOptions, error) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	v := validation.New()
	if o.setConcurrency {
		v.Min("concurrency", o.concurrency, 1)
	}
	if o.setSegmentLength {
		v.Min("segment_length", o.segmentLength, 1)
	}
	return o, v.Err()
}

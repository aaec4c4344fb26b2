package parallel

import (
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/gopar/logger"
	"github.com/kbukum/gopar/observability"
)

// Engine carries the defaults and telemetry shared by aggregate calls.
// An Engine is safe for concurrent use; every call gets its own budget and
// cancellation signal.
type Engine struct {
	cfg     Config
	log     *logger.Logger
	metrics *observability.EngineMetrics
	tracer  trace.Tracer
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine logger. Calls log at debug level.
func WithLogger(l *logger.Logger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// WithMetrics records call and task metrics on m.
func WithMetrics(m *observability.EngineMetrics) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// WithTracer starts call spans on t instead of the global provider.
func WithTracer(t trace.Tracer) EngineOption {
	return func(e *Engine) { e.tracer = t }
}

// New creates an Engine from cfg after applying defaults.
func New(cfg Config, opts ...EngineOption) (*Engine, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Get("parallel")
	}
	return e, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

var defaultEngine atomic.Pointer[Engine]

// Default returns the process-wide engine used by calls without WithEngine.
// It is created from DefaultConfig on first use.
func Default() *Engine {
	if e := defaultEngine.Load(); e != nil {
		return e
	}
	e, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	if defaultEngine.CompareAndSwap(nil, e) {
		return e
	}
	return defaultEngine.Load()
}

// SetDefault replaces the process-wide engine. A nil engine restores the
// lazily created default.
func SetDefault(e *Engine) {
	defaultEngine.Store(e)
}

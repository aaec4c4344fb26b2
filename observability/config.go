package observability

import (
	"context"
	stderrors "errors"
	"time"
)

// Config configures OTLP export for a binary.
type Config struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true,omitempty,hostname_port"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults fills unset export settings.
func (c *Config) ApplyDefaults() {
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// ShutdownFunc flushes and stops the providers started by Init.
type ShutdownFunc func(context.Context) error

// Init starts the tracer and meter providers when export is enabled. The
// returned ShutdownFunc is always non-nil.
func Init(ctx context.Context, cfg Config, serviceName, serviceVersion, environment string) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	tc := DefaultTracerConfig(serviceName)
	tc.ServiceVersion = serviceVersion
	tc.Environment = environment
	tc.Endpoint = cfg.Endpoint
	tc.Insecure = cfg.Insecure
	tc.SampleRate = cfg.SampleRate
	tp, err := InitTracer(ctx, &tc)
	if err != nil {
		return nil, err
	}

	mc := DefaultMeterConfig(serviceName)
	mc.ServiceVersion = serviceVersion
	mc.Environment = environment
	mc.Endpoint = cfg.Endpoint
	mc.Insecure = cfg.Insecure
	if cfg.Interval > 0 {
		mc.Interval = cfg.Interval
	}
	mp, err := InitMeter(ctx, &mc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func(ctx context.Context) error {
		return stderrors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

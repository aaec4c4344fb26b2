package parallel

import (
	"runtime"

	"github.com/kbukum/gopar/validation"
)

// DefaultSegmentLength is the batch size used for unsized sources.
const DefaultSegmentLength = 10

// Config holds the engine-wide defaults. Calls can narrow them with
// WithConcurrency and WithSegmentLength.
type Config struct {
	// Parallelism caps the default width of sized sources and search waves.
	Parallelism int `yaml:"parallelism" mapstructure:"parallelism" validate:"min=1"`
	// SegmentLength is the batch size for unsized sources.
	SegmentLength int `yaml:"segment_length" mapstructure:"segment_length" validate:"min=1"`
	// MaxInFlight bounds the running tasks of a call over an unsized source.
	MaxInFlight int `yaml:"max_in_flight" mapstructure:"max_in_flight" validate:"min=1"`
}

// DefaultConfig returns a Config sized to the host.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero fields. Parallelism defaults to GOMAXPROCS and
// MaxInFlight to Parallelism.
func (c *Config) ApplyDefaults() {
	if c.Parallelism == 0 {
		c.Parallelism = runtime.GOMAXPROCS(0)
	}
	if c.SegmentLength == 0 {
		c.SegmentLength = DefaultSegmentLength
	}
	if c.MaxInFlight == 0 {
		c.MaxInFlight = c.Parallelism
	}
}

// Validate checks the config.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

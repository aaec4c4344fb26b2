package cli

import (
	"cmp"
	"fmt"

	"github.com/kbukum/gopar/config"
	"github.com/kbukum/gopar/internal/output"
	"github.com/kbukum/gopar/observability"
	"github.com/kbukum/gopar/parallel"
	"github.com/kbukum/gopar/validation"
)

// Config is the parbench configuration, loaded from flags, PARBENCH_*
// environment variables, .env files and parbench.yml.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Parallel             parallel.Config      `yaml:"parallel" mapstructure:"parallel"`
	Observability        observability.Config `yaml:"observability" mapstructure:"observability"`
	Output               string               `yaml:"output" mapstructure:"output"`
	NoColor              bool                 `yaml:"no_color" mapstructure:"no_color"`
}

// ApplyDefaults fills unset fields. Setting an OTLP endpoint enables
// export.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Parallel.ApplyDefaults()
	if c.Observability.Endpoint != "" {
		c.Observability.Enabled = true
	}
	c.Observability.ApplyDefaults()
	c.Output = cmp.Or(c.Output, string(output.FormatTable))
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Parallel.Validate(); err != nil {
		return fmt.Errorf("parallel: %w", err)
	}
	if err := validation.Validate(&c.Observability); err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	return validation.New().OneOf("output", c.Output, output.Formats).Err()
}

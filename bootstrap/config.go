package bootstrap

import (
	"github.com/kbukum/gopar/config"
)

// Config is the constraint for application configuration types. Any struct
// embedding config.ServiceConfig satisfies it through promoted methods once
// it overrides ApplyDefaults and Validate for its own fields.
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Parallel parallel.Config `yaml:"parallel" mapstructure:"parallel"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}

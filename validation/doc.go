// Package validation validates gopar configuration and call options.
//
// Struct tag validation (go-playground/validator) checks configuration
// structs; the fluent Validator collects errors for values that have no
// tags. Both report a single INVALID_INPUT AppError listing every field.
//
// # Struct Tag Validation
//
//	type Config struct {
//	    Parallelism int `yaml:"parallelism" validate:"min=1"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	err := validation.New().Min("concurrency", c, 1).Err()
package validation

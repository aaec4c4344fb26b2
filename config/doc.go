// Package config loads configuration for gopar binaries.
//
// It uses Viper to merge, from highest precedence down: flags bound on the
// caller's viper instance, environment variables, a .env file (godotenv),
// a YAML config file and registered defaults.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.Load("parbench", &cfg, config.WithEnvPrefix("PARBENCH"))
//
// With the PARBENCH prefix, PARBENCH_PARALLEL_SEGMENT_LENGTH addresses the
// parallel.segment_length key.
package config

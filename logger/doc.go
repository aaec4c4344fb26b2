// Package logger provides structured logging for gopar using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers. The parallel engine logs through a
// component logger named "parallel" unless an explicit logger is injected.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("parallel")
//	log.Debug("call resolved", logger.Fields(logger.FieldOperation, "Any"))
package logger

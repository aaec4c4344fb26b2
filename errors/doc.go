// Package errors provides the structured error type returned by gopar
// aggregate operations. Every AppError carries a machine-readable code and
// optional details; AppError.Is matches by code so package-level sentinels
// work with the standard errors.Is.
package errors

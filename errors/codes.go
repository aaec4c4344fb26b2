package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors
const (
	// ErrCodeEmptyInput indicates a reduction or search ran over zero elements.
	ErrCodeEmptyInput ErrorCode = "EMPTY_INPUT"
	// ErrCodeNoMatch indicates a search exhausted the sequence without a match.
	ErrCodeNoMatch ErrorCode = "NO_MATCH"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the configuration or options are invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Execution errors
const (
	// ErrCodeCallbackFailed indicates a caller-supplied callback failed.
	ErrCodeCallbackFailed ErrorCode = "CALLBACK_FAILED"
	// ErrCodeSourceFailed indicates an unsized source failed while being read.
	ErrCodeSourceFailed ErrorCode = "SOURCE_FAILED"
	// ErrCodeInternal indicates an internal engine error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

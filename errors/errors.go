package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type surfaced by aggregate operations.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError with the same code, so sentinel
// values can be matched with errors.Is regardless of details or cause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err carries an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// --- Engine error constructors ---

// EmptyInput creates an error for a reduction or search over zero elements.
func EmptyInput(operation string) *AppError {
	return &AppError{
		Code: ErrCodeEmptyInput, Message: "Sequence contains no elements.",
		Details: map[string]any{"operation": operation},
	}
}

// NoMatch creates an error for a search that exhausted every element
// without finding a match.
func NoMatch(operation string) *AppError {
	return &AppError{
		Code: ErrCodeNoMatch, Message: "Sequence contains no element matching the predicate.",
		Details: map[string]any{"operation": operation},
	}
}

// CallbackFailed creates an error for a callback that returned an error or
// panicked while processing a segment.
func CallbackFailed(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeCallbackFailed, Message: fmt.Sprintf("The %s callback failed.", operation),
		Details: map[string]any{"operation": operation}, Cause: cause,
	}
}

// SourceFailed creates an error for a source iterator that failed while
// segments were being pulled from it.
func SourceFailed(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeSourceFailed, Message: "The source failed while being read.",
		Details: map[string]any{"operation": operation}, Cause: cause,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// Internal creates a new AppError for an unexpected engine failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}

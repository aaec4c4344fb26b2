package parallel

import "github.com/kbukum/gopar/errors"

// Sentinels for errors.Is. Returned errors carry the operation name and,
// for callback failures, the segment and element index in Details.
var (
	// ErrEmptyInput is returned by Min, Max, First and the other operations
	// that need at least one element.
	ErrEmptyInput = errors.New(errors.ErrCodeEmptyInput, "empty input")
	// ErrNoMatch is returned by First, Last and their NotNullOf forms when
	// no element matches.
	ErrNoMatch = errors.New(errors.ErrCodeNoMatch, "no match")
	// ErrCallbackFailed wraps the first error returned by, or panic raised
	// in, a callback.
	ErrCallbackFailed = errors.New(errors.ErrCodeCallbackFailed, "callback failed")
	// ErrSourceFailed wraps an error from an Iterator source.
	ErrSourceFailed = errors.New(errors.ErrCodeSourceFailed, "source failed")
	// ErrInvalidOptions is returned for invalid call options or config.
	ErrInvalidOptions = errors.New(errors.ErrCodeInvalidInput, "invalid options")
)

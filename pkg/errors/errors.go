package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes, grouped by the failure taxonomy: usage, input,
// configuration, and I/O.
const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Usage errors: bad arguments, reported with a remediation hint,
	// no side effects
	ErrUsageInvalidFlag     ErrorCode = "USAGE_INVALID_FLAG"
	ErrUsageBadLockCode     ErrorCode = "USAGE_BAD_LOCK_CODE"
	ErrUsageFilterAmbiguous ErrorCode = "USAGE_FILTER_AMBIGUOUS"
	ErrUsageFilterUnknown   ErrorCode = "USAGE_FILTER_UNKNOWN"

	// Input errors: the document itself is unusable
	ErrInputNotFound       ErrorCode = "INPUT_NOT_FOUND"
	ErrInputParse          ErrorCode = "INPUT_PARSE"
	ErrInputNotADocument   ErrorCode = "INPUT_NOT_A_DOCUMENT"
	ErrInputBadVersion     ErrorCode = "INPUT_BAD_VERSION"
	ErrInputNoOwnedEntity  ErrorCode = "INPUT_NO_OWNED_ENTITY"
	ErrInputOutputMissing  ErrorCode = "INPUT_OUTPUT_MISSING"
	ErrInputOutputConflict ErrorCode = "INPUT_OUTPUT_CONFLICT"

	// Configuration errors: the settings collection cannot be used
	ErrConfigLoad        ErrorCode = "CONFIG_LOAD"
	ErrConfigParse       ErrorCode = "CONFIG_PARSE"
	ErrConfigVersion     ErrorCode = "CONFIG_VERSION"
	ErrConfigEmpty       ErrorCode = "CONFIG_EMPTY"
	ErrConfigDuplicateID ErrorCode = "CONFIG_DUPLICATE_ID"

	// I/O errors: the commit protocol failed
	ErrFileCreate ErrorCode = "FILE_CREATE"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrFileDelete ErrorCode = "FILE_DELETE"
	ErrFileMove   ErrorCode = "FILE_MOVE"
	ErrFileExists ErrorCode = "FILE_EXISTS"
)

// CleanerError represents a structured error with code and details
type CleanerError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CleanerError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CleanerError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CleanerError) Is(target error) bool {
	var targetErr *CleanerError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CleanerError with the given code and message
func New(code ErrorCode, message string) *CleanerError {
	return &CleanerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CleanerError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CleanerError {
	return &CleanerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CleanerError
func Wrap(err error, code ErrorCode, message string) *CleanerError {
	if err == nil {
		return nil
	}
	return &CleanerError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CleanerError {
	if err == nil {
		return nil
	}
	return &CleanerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CleanerError) WithDetail(key string, value interface{}) *CleanerError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsCode checks whether err carries the given code anywhere in its chain
func IsCode(err error, code ErrorCode) bool {
	var ce *CleanerError
	for errors.As(err, &ce) {
		if ce.Code == code {
			return true
		}
		err = ce.Wrapped
		if err == nil {
			return false
		}
	}
	return false
}

// Hint returns the remediation hint for an error code, or an empty string
// when there is nothing actionable to suggest.
func Hint(err error) string {
	var ce *CleanerError
	if !errors.As(err, &ce) {
		return ""
	}
	switch ce.Code {
	case ErrConfigLoad, ErrConfigParse, ErrConfigVersion, ErrConfigEmpty, ErrConfigDuplicateID:
		return "regenerate the settings file with 'cpcleaner init-settings'"
	case ErrUsageFilterAmbiguous, ErrUsageFilterUnknown:
		return "filter ids are case-sensitive; run 'cpcleaner get-info' on the settings file or regenerate it with 'cpcleaner init-settings'"
	case ErrUsageBadLockCode:
		return "lock codes must be exactly four decimal digits, e.g. --lock-code 1234"
	case ErrFileExists:
		return "pass --overwrite to replace existing output files"
	}
	return ""
}

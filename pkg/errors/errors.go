package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Configuration errors
	ErrConfigLoad        ErrorCode = "CONFIG_LOAD"
	ErrConfigInvalid     ErrorCode = "CONFIG_INVALID"
	ErrOverlayNotFound   ErrorCode = "OVERLAY_NOT_FOUND"
	ErrManifestNotFound  ErrorCode = "MANIFEST_NOT_FOUND"
	ErrManifestMalformed ErrorCode = "MANIFEST_MALFORMED"

	// Overlay source errors
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"
	ErrTargetNotFound ErrorCode = "TARGET_NOT_FOUND"
	ErrInvalidJSON    ErrorCode = "INVALID_JSON"

	// Patch errors
	ErrPatchFailed ErrorCode = "PATCH_FAILED"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// configurationCodes are reported to the user as configuration problems
// rather than unexpected failures.
var configurationCodes = map[ErrorCode]bool{
	ErrConfigLoad:        true,
	ErrConfigInvalid:     true,
	ErrOverlayNotFound:   true,
	ErrManifestNotFound:  true,
	ErrManifestMalformed: true,
	ErrSourceNotFound:    true,
	ErrTargetNotFound:    true,
	ErrInvalidJSON:       true,
}

// OverlayError represents a structured error with code and details
type OverlayError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *OverlayError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *OverlayError) Unwrap() error {
	return e.Wrapped
}

// Is matches any OverlayError carrying the same code
func (e *OverlayError) Is(target error) bool {
	var targetErr *OverlayError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new OverlayError with the given code and message
func New(code ErrorCode, message string) *OverlayError {
	return &OverlayError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new OverlayError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *OverlayError {
	return &OverlayError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an OverlayError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *OverlayError {
	if err == nil {
		return nil
	}
	return &OverlayError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *OverlayError {
	if err == nil {
		return nil
	}
	return &OverlayError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *OverlayError) WithDetail(key string, value interface{}) *OverlayError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var overlayErr *OverlayError
	if errors.As(err, &overlayErr) {
		return overlayErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an OverlayError
func GetErrorCode(err error) ErrorCode {
	var overlayErr *OverlayError
	if errors.As(err, &overlayErr) {
		return overlayErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an OverlayError
func GetErrorDetails(err error) map[string]interface{} {
	var overlayErr *OverlayError
	if errors.As(err, &overlayErr) {
		return overlayErr.Details
	}
	return nil
}

// IsConfigurationError reports whether err should be presented as a
// configuration problem (missing overlay, manifest or source, bad JSON).
// The outermost OverlayError in the chain decides.
func IsConfigurationError(err error) bool {
	var overlayErr *OverlayError
	if errors.As(err, &overlayErr) {
		return configurationCodes[overlayErr.Code]
	}
	return false
}

// IsNotExist reports whether err, or anything it wraps, is fs.ErrNotExist
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// Message renders err for people: the messages of the chain joined by
// ": ", without error codes
func Message(err error) string {
	overlayErr, ok := err.(*OverlayError)
	if !ok {
		return err.Error()
	}
	if overlayErr.Wrapped == nil {
		return overlayErr.Message
	}
	return overlayErr.Message + ": " + Message(overlayErr.Wrapped)
}

package userconfig

import (
	"errors"
	"fmt"
)

// Common errors for application and user-configuration operations.
var (
	// Application errors
	ErrAppNotFound         = errors.New("application not found")
	ErrAppSettingsNotFound = errors.New("main application settings not found")

	// User errors
	ErrUserNotFound    = errors.New("user does not exist")
	ErrUserNotInTenant = errors.New("user does not exist in tenant")
	ErrUserNameTaken   = errors.New("user already exists")
	ErrMaxUsersReached = errors.New("max number of users reached")

	// File store errors
	ErrFileNotFound = errors.New("file not found")
)

// ValidationError reports a structurally invalid user-configuration payload.
// It is always detected before any upstream mutation is attempted.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Detail
}

// NewValidationError creates a ValidationError with a formatted detail message.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UpstreamError wraps a failure raised by the directory client or the file
// store during an operation. It is not retried and not classified further;
// effects already committed upstream are not compensated.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream failure during %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps err as an UpstreamError for the named operation.
func NewUpstreamError(op string, err error) *UpstreamError {
	return &UpstreamError{Op: op, Err: err}
}

// IsUpstream reports whether err is an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

package errors

import (
	stderrors "errors"
	"fmt"

	"hrdash/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of an inner AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetCode returns the outermost AppError code, or "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// Predefined error codes
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeDataUnavailable  = "DATA_UNAVAILABLE"
	CodeEmptySelection   = "EMPTY_SELECTION"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeUnsupportedChart = "UNSUPPORTED_CHART"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// DataUnavailable marks a fatal load failure. The cause chain always contains
// core.ErrDataUnavailable so callers can match it with errors.Is.
func DataUnavailable(message string, cause error) *AppError {
	if cause == nil {
		cause = core.ErrDataUnavailable
	} else if !stderrors.Is(cause, core.ErrDataUnavailable) {
		cause = fmt.Errorf("%w: %w", core.ErrDataUnavailable, cause)
	}
	return &AppError{
		Code:    CodeDataUnavailable,
		Message: message,
		Cause:   cause,
	}
}

func EmptySelection() *AppError {
	return &AppError{
		Code:    CodeEmptySelection,
		Message: "filter selection matched no rows",
		Cause:   core.ErrEmptySelection,
	}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func UnsupportedChart(kind string) *AppError {
	return &AppError{
		Code:    CodeUnsupportedChart,
		Message: fmt.Sprintf("chart kind %q cannot be rendered server-side", kind),
		Cause:   core.ErrUnsupportedChart,
	}
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

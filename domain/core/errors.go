package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Load errors
	ErrDataUnavailable = errors.New("employee data unavailable")
	ErrMissingColumn   = fmt.Errorf("%w: required column missing", ErrDataUnavailable)
	ErrNoRows          = fmt.Errorf("%w: no data rows", ErrDataUnavailable)
	ErrNonNumeric      = fmt.Errorf("%w: numeric column holds non-numeric values", ErrDataUnavailable)

	// Render errors
	ErrEmptySelection   = errors.New("no rows match the current filter selection")
	ErrUnknownChart     = errors.New("unknown chart")
	ErrUnsupportedChart = errors.New("chart kind not renderable")
)

// Error constructors with context
func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

func NewNonNumericError(column string, row int, value string) error {
	return fmt.Errorf("%w: %s row %d value %q", ErrNonNumeric, column, row, value)
}

func NewUnknownChartError(id string) error {
	return fmt.Errorf("%w: %s", ErrUnknownChart, id)
}

// Error checking helpers
func IsDataUnavailable(err error) bool {
	return errors.Is(err, ErrDataUnavailable)
}

func IsEmptySelection(err error) bool {
	return errors.Is(err, ErrEmptySelection)
}

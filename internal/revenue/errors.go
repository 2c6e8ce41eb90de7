package revenue

import (
	"errors"
	"fmt"
)

// DivisionByZeroError reports a zero divisor such as zero daily capacity
// or a zero investment base for ROI.
type DivisionByZeroError struct {
	Quantity string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero: %s is 0", e.Quantity)
}

// InvalidParameterError reports an input outside its meaningful range.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

// IsDivisionByZero reports whether err wraps a DivisionByZeroError.
func IsDivisionByZero(err error) bool {
	var dz *DivisionByZeroError
	return errors.As(err, &dz)
}

// IsInvalidParameter reports whether err wraps an InvalidParameterError.
func IsInvalidParameter(err error) bool {
	var ip *InvalidParameterError
	return errors.As(err, &ip)
}

func invalid(field string, v float64, reason string) error {
	return &InvalidParameterError{Field: field, Value: v, Reason: reason}
}

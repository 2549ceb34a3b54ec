package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate            = errors.New("invalid date")
	ErrInvalidObservationType = errors.New("invalid observation type")
	ErrPeakNotEligible        = errors.New("peak day can only be marked on clear or creamy observations")
)

// InvalidDateError reports a value that is not a YYYY-MM-DD calendar date.
type InvalidDateError struct {
	Value string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: want YYYY-MM-DD", e.Value)
}

func (e *InvalidDateError) Is(target error) bool { return target == ErrInvalidDate }
func (e *InvalidDateError) Unwrap() error        { return e.Err }

// InvalidObservationTypeError reports a type outside the closed set.
type InvalidObservationTypeError struct {
	Value string
}

func (e *InvalidObservationTypeError) Error() string {
	return fmt.Sprintf("invalid observation type %q: want one of %s", e.Value, typeNames())
}

func (e *InvalidObservationTypeError) Is(target error) bool {
	return target == ErrInvalidObservationType
}

/*
errors.go - Sentinel errors for the calculation engine

PURPOSE:
  The engine is a set of total functions over valid inputs, so the only
  failure modes are malformed inputs caught at the entry points. Callers
  match with errors.Is(); the HTTP layer maps client errors to 400.
*/
package worktime

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when a period or leave range ends before
	// it starts. Failing fast here avoids silently negative day counts.
	ErrInvalidRange = errors.New("invalid range: end before start")

	// ErrInvalidTimestamp is returned for zero-value timestamps. Rejecting
	// them at construction time guarantees the engine never produces a
	// nonsensical duration downstream.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrUnknownLeaveType is returned for a leave type outside the enumeration.
	ErrUnknownLeaveType = errors.New("unknown leave type")

	// ErrReasonRequired is returned when a leave of type "other" carries no reason.
	ErrReasonRequired = errors.New("reason required for leave type \"other\"")

	// ErrInvalidRules is returned when the calculation rules are malformed.
	ErrInvalidRules = errors.New("invalid calculation rules")
)

// RulesError reports which rule field is malformed.
type RulesError struct {
	Field  string
	Detail string
}

func (e *RulesError) Error() string {
	return fmt.Sprintf("invalid calculation rules: %s: %s", e.Field, e.Detail)
}

func (e *RulesError) Unwrap() error { return ErrInvalidRules }

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidTimestamp) ||
		errors.Is(err, ErrUnknownLeaveType) ||
		errors.Is(err, ErrReasonRequired)
}

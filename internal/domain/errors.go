package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound covers lookup misses for any aggregate
var ErrNotFound = errors.New("not found")

// ValidationError is a bad input shape or range, surfaced as 400 with a
// stable title/message pair.
type ValidationError struct {
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

// NotAllowedError is a precondition failure: snapshot/agreement mismatch,
// reward-hour ceiling breach, state-machine violations. Surfaced as 403.
type NotAllowedError struct {
	Title   string
	Message string
}

func (e *NotAllowedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

// CardDeclinedError is a gateway-reported card failure. Safe to show the
// renter. Surfaced as 402.
type CardDeclinedError struct {
	DeclineCode string
	Message     string
}

func (e *CardDeclinedError) Error() string {
	if e.DeclineCode != "" {
		return fmt.Sprintf("card declined (%s): %s", e.DeclineCode, e.Message)
	}
	return fmt.Sprintf("card declined: %s", e.Message)
}

// GatewayError is a transient or opaque payment gateway failure. Retry
// worthy; internals must not leak to the client.
type GatewayError struct {
	Operation string
	Err       error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %v", e.Operation, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// PlanDateParseError indicates a malformed stored plan-renewal date.
// This is data corruption and fatal for the request.
type PlanDateParseError struct {
	RenterID int64
	Value    string
	Err      error
}

func (e *PlanDateParseError) Error() string {
	return fmt.Sprintf("malformed plan renewal date %q for renter %d: %v", e.Value, e.RenterID, e.Err)
}

func (e *PlanDateParseError) Unwrap() error { return e.Err }

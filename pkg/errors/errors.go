// Package errors holds the error taxonomy shared by the service and HTTP layers.
// Service errors wrap one of these kinds so the boundary can map them with errors.Is.
package errors

import "errors"

var (
	// ErrNotFound mentor, request or window absent
	ErrNotFound = errors.New("not found")
	// ErrInvalidRange malformed day or time bounds
	ErrInvalidRange = errors.New("invalid range")
	// ErrNoAvailability requested call time is outside every window
	ErrNoAvailability = errors.New("no availability")
	// ErrSlotTaken another active request occupies the call time
	ErrSlotTaken = errors.New("slot taken")
	// ErrInvalidTransition request state machine violation
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrUpstreamUnavailable external profile service failed
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrConflict uniqueness violation outside the booking flow
	ErrConflict = errors.New("conflict")
)

// ErrOptimisticLock the row was changed by another operation
var ErrOptimisticLock = errors.New("record was modified concurrently")

// IsDomain reports whether err belongs to the recoverable taxonomy above.
// Anything else is treated as an infrastructure failure at the boundary.
func IsDomain(err error) bool {
	for _, kind := range []error{
		ErrNotFound, ErrInvalidRange, ErrNoAvailability, ErrSlotTaken,
		ErrInvalidTransition, ErrUpstreamUnavailable, ErrConflict,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

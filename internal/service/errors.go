package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	pkgerrors "github.com/mlcinall/mentor-service/pkg/errors"
)

// ── Business errors ──
// Each wraps a taxonomy kind from pkg/errors so handlers can map it with errors.Is.

var (
	ErrMentorNotFound   = fmt.Errorf("mentor %w", pkgerrors.ErrNotFound)
	ErrRequestNotFound  = fmt.Errorf("request %w", pkgerrors.ErrNotFound)
	ErrFavoriteNotFound = fmt.Errorf("favorite %w", pkgerrors.ErrNotFound)

	ErrInvalidDay       = fmt.Errorf("%w: day_of_week must be within 0-6", pkgerrors.ErrInvalidRange)
	ErrInvalidClock     = fmt.Errorf("%w: time must be HH:MM or HH:MM:SS", pkgerrors.ErrInvalidRange)
	ErrInvalidWindow    = fmt.Errorf("%w: start_time must be before end_time", pkgerrors.ErrInvalidRange)
	ErrCallTimeRequired = fmt.Errorf("%w: call_time is required for calls", pkgerrors.ErrInvalidRange)
	ErrInvalidCallType  = fmt.Errorf("%w: unknown call_type", pkgerrors.ErrInvalidRange)

	ErrNoAvailability = fmt.Errorf("%w: mentor has no window at the requested time", pkgerrors.ErrNoAvailability)
	ErrSlotTaken      = fmt.Errorf("%w: another request already holds this time", pkgerrors.ErrSlotTaken)

	ErrNotPending  = fmt.Errorf("%w: request is not pending", pkgerrors.ErrInvalidTransition)
	ErrNotAccepted = fmt.Errorf("%w: request is not accepted", pkgerrors.ErrInvalidTransition)
	ErrBadDecision = fmt.Errorf("%w: decision must be accept or reject", pkgerrors.ErrInvalidTransition)

	ErrMentorExists = fmt.Errorf("%w: mentor already registered", pkgerrors.ErrConflict)
)

// notFound maps gorm's missing-row error to kind and passes everything else through.
func notFound(err, kind error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return kind
	}
	return err
}

package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mlcinall/mentor-service/internal/dto"
	"github.com/mlcinall/mentor-service/internal/model"
	"github.com/mlcinall/mentor-service/internal/repository"
	"github.com/mlcinall/mentor-service/internal/slot"
	pkgerrors "github.com/mlcinall/mentor-service/pkg/errors"
)

// BookingService drives the request lifecycle:
//
//	pending → accepted | rejected
//	accepted → cancelled
//
// Accepting a call removes its 30-minute slot from the mentor's availability,
// cancelling it gives the slot back. Rejecting only does so when carveOnReject is set.
type BookingService interface {
	Submit(ctx context.Context, guestID string, req *dto.SubmitRequest) (*dto.RequestResponse, error)
	Respond(ctx context.Context, mentorID, requestID string, decision model.ResponseStatus) (*dto.RequestResponse, error)
	Cancel(ctx context.Context, mentorID, requestID string) (*dto.RequestResponse, error)
	Get(ctx context.Context, requestID string) (*dto.RequestResponse, error)
	ListByGuest(ctx context.Context, guestID string) ([]dto.RequestResponse, error)
}

type bookingService struct {
	repo          *repository.Repository
	locker        MentorLocker
	carveOnReject bool
	logger        *zap.Logger
}

// NewBookingService creates a BookingService
func NewBookingService(repo *repository.Repository, locker MentorLocker, carveOnReject bool, logger *zap.Logger) BookingService {
	return &bookingService{repo: repo, locker: locker, carveOnReject: carveOnReject, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *bookingService) Submit(ctx context.Context, guestID string, req *dto.SubmitRequest) (*dto.RequestResponse, error) {
	if req.CallType == nil {
		return nil, ErrInvalidCallType
	}
	kind := model.CallType(*req.CallType)
	if kind != model.CallTypeCall && kind != model.CallTypeMessage {
		return nil, ErrInvalidCallType
	}

	if _, err := s.repo.Mentor.GetByID(ctx, req.MentorID); err != nil {
		return nil, notFound(err, ErrMentorNotFound)
	}

	request := &model.Request{
		CallType:    kind,
		MentorID:    req.MentorID,
		GuestID:     guestID,
		Description: req.Description,
	}

	if kind == model.CallTypeMessage {
		if err := s.repo.Request.Create(ctx, request); err != nil {
			s.logger.Error("create message request failed", zap.Error(err))
			return nil, err
		}
		return toRequestResponse(request), nil
	}

	if req.CallTime == nil {
		return nil, ErrCallTimeRequired
	}
	at := wallClock(*req.CallTime)
	request.CallTime = &at

	unlock, err := s.locker.Lock(ctx, req.MentorID)
	if err != nil {
		s.logger.Error("acquire mentor lock failed", zap.String("mentor_id", req.MentorID), zap.Error(err))
		return nil, err
	}
	defer unlock()

	available, err := s.isAvailable(ctx, req.MentorID, at)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrNoAvailability
	}

	if _, err := s.repo.Request.FindActiveAt(ctx, req.MentorID, at); err == nil {
		return nil, ErrSlotTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check active request failed", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Request.Create(ctx, request); err != nil {
		// another process won the race; the partial unique index caught it
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		s.logger.Error("create call request failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("call requested",
		zap.String("request_id", request.RequestID),
		zap.String("mentor_id", request.MentorID),
		zap.Time("call_time", at),
	)
	return toRequestResponse(request), nil
}

// isAvailable reports whether any window of the mentor contains at.
func (s *bookingService) isAvailable(ctx context.Context, mentorID string, at time.Time) (bool, error) {
	windows, err := s.repo.TimeWindow.ListByMentorAndDay(ctx, mentorID, slot.Weekday(at))
	if err != nil {
		s.logger.Error("list windows failed", zap.String("mentor_id", mentorID), zap.Error(err))
		return false, err
	}
	for i := range windows {
		w, err := toSlotWindow(&windows[i])
		if err != nil {
			continue
		}
		if w.Contains(at) {
			return true, nil
		}
	}
	return false, nil
}

// ────────────────────── Respond ──────────────────────

func (s *bookingService) Respond(ctx context.Context, mentorID, requestID string, decision model.ResponseStatus) (*dto.RequestResponse, error) {
	if decision != model.ResponseAccepted && decision != model.ResponseRejected {
		return nil, ErrBadDecision
	}

	request, err := s.loadOwned(ctx, mentorID, requestID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, mentorID)
	if err != nil {
		s.logger.Error("acquire mentor lock failed", zap.String("mentor_id", mentorID), zap.Error(err))
		return nil, err
	}
	defer unlock()

	// the status change and the window carve commit together, so a failed
	// carve leaves the request pending and the call can be answered again
	carve := decision == model.ResponseAccepted || s.carveOnReject
	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.transition(ctx, tx, request, model.ResponsePending, decision, ErrNotPending); err != nil {
			return err
		}
		if carve && request.CallType == model.CallTypeCall && request.CallTime != nil {
			if err := s.carve(ctx, tx, mentorID, *request.CallTime); err != nil {
				s.logger.Error("carve window failed",
					zap.String("request_id", requestID),
					zap.String("mentor_id", mentorID),
					zap.Error(err),
				)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	request.Response = decision

	s.logger.Info("request answered",
		zap.String("request_id", requestID),
		zap.String("mentor_id", mentorID),
		zap.Stringer("response", decision),
	)
	return toRequestResponse(request), nil
}

// carve removes the booked slot at from the window that covers it.
func (s *bookingService) carve(ctx context.Context, repo *repository.Repository, mentorID string, at time.Time) error {
	booking := slot.BookingAt(at)
	windows, err := repo.TimeWindow.ListByMentorAndDay(ctx, mentorID, booking.Day)
	if err != nil {
		return err
	}

	for i := range windows {
		w, err := toSlotWindow(&windows[i])
		if err != nil {
			continue
		}
		pieces, ok := slot.CarveOut(w, booking)
		if !ok {
			continue
		}
		replacements := make([]model.TimeWindow, 0, len(pieces))
		for _, p := range pieces {
			replacements = append(replacements, newWindowModel(mentorID, p))
		}
		return repo.TimeWindow.Replace(ctx, &windows[i], replacements)
	}

	// e.g. a call placed exactly at closing time, or a window already reshaped
	s.logger.Warn("booked slot not covered by any window",
		zap.String("mentor_id", mentorID),
		zap.Time("call_time", at),
	)
	return nil
}

// ────────────────────── Cancel ──────────────────────

func (s *bookingService) Cancel(ctx context.Context, mentorID, requestID string) (*dto.RequestResponse, error) {
	request, err := s.loadOwned(ctx, mentorID, requestID)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, mentorID)
	if err != nil {
		s.logger.Error("acquire mentor lock failed", zap.String("mentor_id", mentorID), zap.Error(err))
		return nil, err
	}
	defer unlock()

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.transition(ctx, tx, request, model.ResponseAccepted, model.ResponseCancelled, ErrNotAccepted); err != nil {
			return err
		}
		if request.CallType != model.CallTypeCall || request.CallTime == nil {
			return nil
		}
		restored, ok := slot.Restore(*request.CallTime)
		if !ok {
			s.logger.Warn("cancelled slot runs past midnight, not restored",
				zap.String("request_id", requestID),
				zap.Time("call_time", *request.CallTime),
			)
			return nil
		}
		window := newWindowModel(mentorID, restored)
		if err := tx.TimeWindow.Create(ctx, &window); err != nil {
			s.logger.Error("restore window failed", zap.String("request_id", requestID), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	request.Response = model.ResponseCancelled

	s.logger.Info("request cancelled", zap.String("request_id", requestID), zap.String("mentor_id", mentorID))
	return toRequestResponse(request), nil
}

// ────────────────────── helpers ──────────────────────

// loadOwned fetches a request and checks it belongs to mentorID.
func (s *bookingService) loadOwned(ctx context.Context, mentorID, requestID string) (*model.Request, error) {
	if _, err := s.repo.Mentor.GetByID(ctx, mentorID); err != nil {
		return nil, notFound(err, ErrMentorNotFound)
	}
	request, err := s.repo.Request.GetByID(ctx, requestID)
	if err != nil {
		return nil, notFound(err, ErrRequestNotFound)
	}
	if request.MentorID != mentorID {
		return nil, ErrRequestNotFound
	}
	return request, nil
}

// transition moves request from → to with a conditional update. A status
// that differs from `from`, before or during the update, yields invalid.
// request itself is left untouched until the caller's transaction commits.
func (s *bookingService) transition(ctx context.Context, repo *repository.Repository, request *model.Request, from, to model.ResponseStatus, invalid error) error {
	if request.Response != from {
		return invalid
	}
	if err := repo.Request.UpdateResponse(ctx, request.RequestID, from, to); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return invalid
		}
		s.logger.Error("update response failed", zap.String("request_id", request.RequestID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Queries ──────────────────────

func (s *bookingService) Get(ctx context.Context, requestID string) (*dto.RequestResponse, error) {
	request, err := s.repo.Request.GetByID(ctx, requestID)
	if err != nil {
		return nil, notFound(err, ErrRequestNotFound)
	}
	return toRequestResponse(request), nil
}

func (s *bookingService) ListByGuest(ctx context.Context, guestID string) ([]dto.RequestResponse, error) {
	requests, err := s.repo.Request.ListByGuest(ctx, guestID)
	if err != nil {
		s.logger.Error("list guest requests failed", zap.String("guest_id", guestID), zap.Error(err))
		return nil, err
	}
	return toRequestResponses(requests), nil
}

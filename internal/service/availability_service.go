package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mlcinall/mentor-service/internal/dto"
	"github.com/mlcinall/mentor-service/internal/repository"
	"github.com/mlcinall/mentor-service/internal/slot"
)

// AvailabilityService manages a mentor's recurring weekly windows.
type AvailabilityService interface {
	// Publish merges the window into every window it touches, or inserts it
	// when it touches none. It returns the id of the last affected window.
	Publish(ctx context.Context, mentorID string, req *dto.PublishWindowRequest) (*dto.PublishWindowResponse, error)
	ListWindows(ctx context.Context, mentorID string) ([]dto.TimeWindowResponse, error)
	// CallableTimes concatenates the 30-minute slots of the day's windows in store order.
	// The result is not deduplicated: adjacent windows (e.g. after a cancelled call is
	// restored) both list their shared boundary instant.
	CallableTimes(ctx context.Context, mentorID string, day int) (*dto.CallableTimesResponse, error)
}

type availabilityService struct {
	repo   *repository.Repository
	locker MentorLocker
	logger *zap.Logger
}

// NewAvailabilityService creates an AvailabilityService
func NewAvailabilityService(repo *repository.Repository, locker MentorLocker, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, locker: locker, logger: logger}
}

// ────────────────────── Publish ──────────────────────

func (s *availabilityService) Publish(ctx context.Context, mentorID string, req *dto.PublishWindowRequest) (*dto.PublishWindowResponse, error) {
	candidate, err := parseWindow(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Mentor.GetByID(ctx, mentorID); err != nil {
		return nil, notFound(err, ErrMentorNotFound)
	}

	unlock, err := s.locker.Lock(ctx, mentorID)
	if err != nil {
		s.logger.Error("acquire mentor lock failed", zap.String("mentor_id", mentorID), zap.Error(err))
		return nil, err
	}
	defer unlock()

	windows, err := s.repo.TimeWindow.ListByMentorAndDay(ctx, mentorID, candidate.Day)
	if err != nil {
		s.logger.Error("list windows failed", zap.String("mentor_id", mentorID), zap.Error(err))
		return nil, err
	}

	var affected string
	for i := range windows {
		row := &windows[i]
		existing, err := toSlotWindow(row)
		if err != nil {
			s.logger.Warn("skipping unparsable window", zap.String("time_window_id", row.TimeWindowID), zap.Error(err))
			continue
		}
		if !existing.Touches(candidate) {
			continue
		}

		merged := existing.Extend(candidate)
		if merged != existing {
			row.StartTime = merged.Start.String()
			row.EndTime = merged.End.String()
			if err := s.repo.TimeWindow.Update(ctx, row); err != nil {
				s.logger.Error("extend window failed", zap.String("time_window_id", row.TimeWindowID), zap.Error(err))
				return nil, err
			}
		}
		affected = row.TimeWindowID
	}

	if affected == "" {
		created := newWindowModel(mentorID, candidate)
		if err := s.repo.TimeWindow.Create(ctx, &created); err != nil {
			s.logger.Error("create window failed", zap.String("mentor_id", mentorID), zap.Error(err))
			return nil, err
		}
		affected = created.TimeWindowID
	}

	s.logger.Info("availability published",
		zap.String("mentor_id", mentorID),
		zap.Int("day", candidate.Day),
		zap.Stringer("start", candidate.Start),
		zap.Stringer("end", candidate.End),
		zap.String("time_window_id", affected),
	)
	return &dto.PublishWindowResponse{TimeWindowID: affected}, nil
}

func parseWindow(req *dto.PublishWindowRequest) (slot.Window, error) {
	if req.DayOfWeek == nil || !slot.ValidDay(*req.DayOfWeek) {
		return slot.Window{}, ErrInvalidDay
	}
	start, err := slot.ParseClock(req.StartTime)
	if err != nil {
		return slot.Window{}, ErrInvalidClock
	}
	end, err := slot.ParseClock(req.EndTime)
	if err != nil {
		return slot.Window{}, ErrInvalidClock
	}
	w := slot.Window{Day: *req.DayOfWeek, Start: start, End: end}
	if !w.Valid() {
		return slot.Window{}, ErrInvalidWindow
	}
	return w, nil
}

// ────────────────────── Queries ──────────────────────

func (s *availabilityService) ListWindows(ctx context.Context, mentorID string) ([]dto.TimeWindowResponse, error) {
	if _, err := s.repo.Mentor.GetByID(ctx, mentorID); err != nil {
		return nil, notFound(err, ErrMentorNotFound)
	}

	windows, err := s.repo.TimeWindow.ListByMentor(ctx, mentorID)
	if err != nil {
		s.logger.Error("list windows failed", zap.String("mentor_id", mentorID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.TimeWindowResponse, 0, len(windows))
	for i := range windows {
		result = append(result, toWindowResponse(&windows[i]))
	}
	return result, nil
}

func (s *availabilityService) CallableTimes(ctx context.Context, mentorID string, day int) (*dto.CallableTimesResponse, error) {
	if !slot.ValidDay(day) {
		return nil, ErrInvalidDay
	}
	if _, err := s.repo.Mentor.GetByID(ctx, mentorID); err != nil {
		return nil, notFound(err, ErrMentorNotFound)
	}

	windows, err := s.repo.TimeWindow.ListByMentorAndDay(ctx, mentorID, day)
	if err != nil {
		s.logger.Error("list windows failed", zap.String("mentor_id", mentorID), zap.Error(err))
		return nil, err
	}

	times := make([]string, 0)
	for i := range windows {
		w, err := toSlotWindow(&windows[i])
		if err != nil {
			s.logger.Warn("skipping unparsable window", zap.String("time_window_id", windows[i].TimeWindowID), zap.Error(err))
			continue
		}
		for c := range w.Slots() {
			times = append(times, c.String()[:5])
		}
	}
	return &dto.CallableTimesResponse{Day: day, Times: times}, nil
}

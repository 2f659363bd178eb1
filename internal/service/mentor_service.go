package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mlcinall/mentor-service/internal/dto"
	"github.com/mlcinall/mentor-service/internal/model"
	"github.com/mlcinall/mentor-service/internal/repository"
)

// MentorService mentor registration, profile and inbox queries
type MentorService interface {
	Register(ctx context.Context, req *dto.CreateMentorRequest) (*dto.MentorResponse, error)
	GetByID(ctx context.Context, id string) (*dto.MentorResponse, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*dto.MentorResponse, error)
	List(ctx context.Context, req *dto.MentorSearchRequest) ([]dto.MentorResponse, error)
	UpdateInfo(ctx context.Context, id string, req *dto.UpdateMentorInfoRequest) (*dto.MentorResponse, error)
	// Sync refreshes name, handle, about and specification from the profile service.
	Sync(ctx context.Context, id string, req *dto.SyncMentorRequest) (*dto.MentorResponse, error)
	CountPending(ctx context.Context, id string) (*dto.PendingCountResponse, error)
	ListPending(ctx context.Context, id string) ([]dto.RequestResponse, error)
}

type mentorService struct {
	repo     *repository.Repository
	profiles ProfileLookup
	logger   *zap.Logger
}

// NewMentorService creates a MentorService
func NewMentorService(repo *repository.Repository, profiles ProfileLookup, logger *zap.Logger) MentorService {
	return &mentorService{repo: repo, profiles: profiles, logger: logger}
}

// ────────────────────── Register ──────────────────────

func (s *mentorService) Register(ctx context.Context, req *dto.CreateMentorRequest) (*dto.MentorResponse, error) {
	mentor := &model.Mentor{
		MentorID:      req.ID,
		TelegramID:    req.TelegramID,
		Name:          req.Name,
		Info:          req.Info,
		Specification: req.Specification,
	}
	if err := s.repo.Mentor.Create(ctx, mentor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMentorExists
		}
		s.logger.Error("create mentor failed", zap.String("telegram_id", req.TelegramID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("mentor registered", zap.String("mentor_id", mentor.MentorID), zap.String("telegram_id", mentor.TelegramID))
	return toMentorResponse(mentor), nil
}

// ────────────────────── Queries ──────────────────────

func (s *mentorService) GetByID(ctx context.Context, id string) (*dto.MentorResponse, error) {
	mentor, err := s.repo.Mentor.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrMentorNotFound)
	}
	return toMentorResponse(mentor), nil
}

func (s *mentorService) GetByTelegramID(ctx context.Context, telegramID string) (*dto.MentorResponse, error) {
	mentor, err := s.repo.Mentor.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, notFound(err, ErrMentorNotFound)
	}
	return toMentorResponse(mentor), nil
}

func (s *mentorService) List(ctx context.Context, req *dto.MentorSearchRequest) ([]dto.MentorResponse, error) {
	var (
		mentors []model.Mentor
		err     error
	)
	switch {
	case req != nil && req.Name != "":
		mentors, err = s.repo.Mentor.SearchByName(ctx, req.Name)
	case req != nil && req.Specification != "":
		mentors, err = s.repo.Mentor.SearchBySpecification(ctx, req.Specification)
	default:
		mentors, err = s.repo.Mentor.List(ctx)
	}
	if err != nil {
		s.logger.Error("list mentors failed", zap.Error(err))
		return nil, err
	}
	return toMentorResponses(mentors), nil
}

// ────────────────────── Update ──────────────────────

func (s *mentorService) UpdateInfo(ctx context.Context, id string, req *dto.UpdateMentorInfoRequest) (*dto.MentorResponse, error) {
	if err := s.repo.Mentor.UpdateInfo(ctx, id, req.Info); err != nil {
		return nil, notFound(err, ErrMentorNotFound)
	}
	s.logger.Info("mentor info updated", zap.String("mentor_id", id))
	return s.GetByID(ctx, id)
}

func (s *mentorService) Sync(ctx context.Context, id string, req *dto.SyncMentorRequest) (*dto.MentorResponse, error) {
	mentor, err := s.repo.Mentor.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrMentorNotFound)
	}

	p, err := s.profiles.Fetch(ctx, req.ExternalUserID)
	if err != nil {
		s.logger.Warn("profile sync failed",
			zap.String("mentor_id", id),
			zap.String("external_user_id", req.ExternalUserID),
			zap.Error(err),
		)
		return nil, err
	}

	// empty upstream fields keep the stored value
	if p.About != "" {
		mentor.About = &p.About
	}
	if p.Specification != "" {
		mentor.Specification = &p.Specification
	}
	if p.Name != "" {
		mentor.Name = p.Name
	}
	if p.Telegram != "" {
		mentor.TelegramID = p.Telegram
	}

	if err := s.repo.Mentor.UpdateProfile(ctx, mentor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMentorExists
		}
		s.logger.Error("update mentor profile failed", zap.String("mentor_id", id), zap.Error(err))
		return nil, notFound(err, ErrMentorNotFound)
	}

	s.logger.Info("mentor synced from profile",
		zap.String("mentor_id", id),
		zap.String("external_user_id", req.ExternalUserID),
	)
	return toMentorResponse(mentor), nil
}

// ────────────────────── Inbox ──────────────────────

func (s *mentorService) CountPending(ctx context.Context, id string) (*dto.PendingCountResponse, error) {
	if _, err := s.repo.Mentor.GetByID(ctx, id); err != nil {
		return nil, notFound(err, ErrMentorNotFound)
	}
	counts, err := s.repo.Request.CountPendingByMentor(ctx, id)
	if err != nil {
		s.logger.Error("count pending requests failed", zap.String("mentor_id", id), zap.Error(err))
		return nil, err
	}
	return &dto.PendingCountResponse{CallRequests: counts.Calls, MessageRequests: counts.Messages}, nil
}

func (s *mentorService) ListPending(ctx context.Context, id string) ([]dto.RequestResponse, error) {
	if _, err := s.repo.Mentor.GetByID(ctx, id); err != nil {
		return nil, notFound(err, ErrMentorNotFound)
	}
	requests, err := s.repo.Request.ListPendingByMentor(ctx, id)
	if err != nil {
		s.logger.Error("list pending requests failed", zap.String("mentor_id", id), zap.Error(err))
		return nil, err
	}
	return toRequestResponses(requests), nil
}

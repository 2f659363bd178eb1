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

// FavoriteService a student's bookmarked mentors
type FavoriteService interface {
	// Add is idempotent: adding the same mentor twice returns the existing entry.
	Add(ctx context.Context, userID, mentorID string) (*dto.FavoriteResponse, error)
	Remove(ctx context.Context, userID, mentorID string) error
	List(ctx context.Context, userID string) ([]dto.FavoriteResponse, error)
}

type favoriteService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewFavoriteService creates a FavoriteService
func NewFavoriteService(repo *repository.Repository, logger *zap.Logger) FavoriteService {
	return &favoriteService{repo: repo, logger: logger}
}

func (s *favoriteService) Add(ctx context.Context, userID, mentorID string) (*dto.FavoriteResponse, error) {
	mentor, err := s.repo.Mentor.GetByID(ctx, mentorID)
	if err != nil {
		return nil, notFound(err, ErrMentorNotFound)
	}

	if existing, err := s.repo.Favorite.Get(ctx, userID, mentorID); err == nil {
		existing.Mentor = mentor
		return toFavoriteResponse(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	favorite := &model.FavoriteMentor{UserID: userID, MentorID: mentorID}
	if err := s.repo.Favorite.Create(ctx, favorite); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, getErr := s.repo.Favorite.Get(ctx, userID, mentorID)
			if getErr != nil {
				return nil, getErr
			}
			favorite = existing
		} else {
			s.logger.Error("add favorite failed", zap.String("user_id", userID), zap.Error(err))
			return nil, err
		}
	}
	favorite.Mentor = mentor

	s.logger.Info("favorite added", zap.String("user_id", userID), zap.String("mentor_id", mentorID))
	return toFavoriteResponse(favorite), nil
}

func (s *favoriteService) Remove(ctx context.Context, userID, mentorID string) error {
	if _, err := s.repo.Mentor.GetByID(ctx, mentorID); err != nil {
		return notFound(err, ErrMentorNotFound)
	}
	if err := s.repo.Favorite.Delete(ctx, userID, mentorID); err != nil {
		return notFound(err, ErrFavoriteNotFound)
	}
	s.logger.Info("favorite removed", zap.String("user_id", userID), zap.String("mentor_id", mentorID))
	return nil
}

func (s *favoriteService) List(ctx context.Context, userID string) ([]dto.FavoriteResponse, error) {
	favorites, err := s.repo.Favorite.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list favorites failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		result = append(result, *toFavoriteResponse(&favorites[i]))
	}
	return result, nil
}

func toFavoriteResponse(f *model.FavoriteMentor) *dto.FavoriteResponse {
	resp := &dto.FavoriteResponse{
		ID:        f.FavoriteID,
		MentorID:  f.MentorID,
		CreatedAt: f.CreatedAt.Format(timestampLayout),
	}
	if f.Mentor != nil {
		resp.Mentor = toMentorResponse(f.Mentor)
	}
	return resp
}

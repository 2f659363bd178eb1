package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mlcinall/mentor-service/internal/model"
)

// FavoriteRepository favorite mentor data access
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *model.FavoriteMentor) error
	Get(ctx context.Context, userID, mentorID string) (*model.FavoriteMentor, error)
	ListByUser(ctx context.Context, userID string) ([]model.FavoriteMentor, error)
	Delete(ctx context.Context, userID, mentorID string) error
}

type favoriteRepo struct {
	db *gorm.DB
}

// NewFavoriteRepo creates a FavoriteRepository
func NewFavoriteRepo(db *gorm.DB) FavoriteRepository {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Create(ctx context.Context, favorite *model.FavoriteMentor) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *favoriteRepo) Get(ctx context.Context, userID, mentorID string) (*model.FavoriteMentor, error) {
	var favorite model.FavoriteMentor
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND mentor_id = ?", userID, mentorID).
		First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepo) ListByUser(ctx context.Context, userID string) ([]model.FavoriteMentor, error) {
	var favorites []model.FavoriteMentor
	err := r.db.WithContext(ctx).
		Preload("Mentor").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&favorites).Error
	return favorites, err
}

func (r *favoriteRepo) Delete(ctx context.Context, userID, mentorID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND mentor_id = ?", userID, mentorID).
		Delete(&model.FavoriteMentor{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

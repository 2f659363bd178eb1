package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mlcinall/mentor-service/internal/model"
	pkgerrors "github.com/mlcinall/mentor-service/pkg/errors"
)

// TimeWindowRepository weekly availability data access
type TimeWindowRepository interface {
	Create(ctx context.Context, window *model.TimeWindow) error
	GetByID(ctx context.Context, id string) (*model.TimeWindow, error)
	// ListByMentor returns windows ordered by day then start time.
	ListByMentor(ctx context.Context, mentorID string) ([]model.TimeWindow, error)
	ListByMentorAndDay(ctx context.Context, mentorID string, day int) ([]model.TimeWindow, error)
	// Update writes new bounds guarded by the version column.
	Update(ctx context.Context, window *model.TimeWindow) error
	Delete(ctx context.Context, id string) error
	// Replace deletes window and inserts replacements in one transaction.
	Replace(ctx context.Context, window *model.TimeWindow, replacements []model.TimeWindow) error
}

type timeWindowRepo struct {
	db *gorm.DB
}

// NewTimeWindowRepo creates a TimeWindowRepository
func NewTimeWindowRepo(db *gorm.DB) TimeWindowRepository {
	return &timeWindowRepo{db: db}
}

func (r *timeWindowRepo) Create(ctx context.Context, window *model.TimeWindow) error {
	return r.db.WithContext(ctx).Create(window).Error
}

func (r *timeWindowRepo) GetByID(ctx context.Context, id string) (*model.TimeWindow, error) {
	var window model.TimeWindow
	err := r.db.WithContext(ctx).
		Where("time_window_id = ?", id).
		First(&window).Error
	if err != nil {
		return nil, err
	}
	return &window, nil
}

func (r *timeWindowRepo) ListByMentor(ctx context.Context, mentorID string) ([]model.TimeWindow, error) {
	var windows []model.TimeWindow
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&windows).Error
	return windows, err
}

func (r *timeWindowRepo) ListByMentorAndDay(ctx context.Context, mentorID string, day int) ([]model.TimeWindow, error) {
	var windows []model.TimeWindow
	err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND day_of_week = ?", mentorID, day).
		Order("start_time ASC").
		Find(&windows).Error
	return windows, err
}

func (r *timeWindowRepo) Update(ctx context.Context, window *model.TimeWindow) error {
	oldVersion := window.Version
	result := r.db.WithContext(ctx).
		Model(&model.TimeWindow{}).
		Where("time_window_id = ? AND version = ?", window.TimeWindowID, oldVersion).
		Updates(map[string]interface{}{
			"start_time": window.StartTime,
			"end_time":   window.EndTime,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	window.Version = oldVersion + 1
	return nil
}

func (r *timeWindowRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("time_window_id = ?", id).
		Delete(&model.TimeWindow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *timeWindowRepo) Replace(ctx context.Context, window *model.TimeWindow, replacements []model.TimeWindow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("time_window_id = ? AND version = ?", window.TimeWindowID, window.Version).
			Delete(&model.TimeWindow{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pkgerrors.ErrOptimisticLock
		}
		if len(replacements) > 0 {
			if err := tx.Create(&replacements).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

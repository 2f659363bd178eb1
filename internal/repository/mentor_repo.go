package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mlcinall/mentor-service/internal/model"
)

// MentorRepository mentor data access
type MentorRepository interface {
	Create(ctx context.Context, mentor *model.Mentor) error
	GetByID(ctx context.Context, id string) (*model.Mentor, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*model.Mentor, error)
	List(ctx context.Context) ([]model.Mentor, error)
	SearchByName(ctx context.Context, query string) ([]model.Mentor, error)
	SearchBySpecification(ctx context.Context, query string) ([]model.Mentor, error)
	UpdateInfo(ctx context.Context, id, info string) error
	// UpdateProfile overwrites the fields mirrored from the profile service.
	UpdateProfile(ctx context.Context, mentor *model.Mentor) error
}

type mentorRepo struct {
	db *gorm.DB
}

// NewMentorRepo creates a MentorRepository
func NewMentorRepo(db *gorm.DB) MentorRepository {
	return &mentorRepo{db: db}
}

func (r *mentorRepo) Create(ctx context.Context, mentor *model.Mentor) error {
	return r.db.WithContext(ctx).Create(mentor).Error
}

func (r *mentorRepo) GetByID(ctx context.Context, id string) (*model.Mentor, error) {
	var mentor model.Mentor
	err := r.db.WithContext(ctx).
		Where("mentor_id = ?", id).
		First(&mentor).Error
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *mentorRepo) GetByTelegramID(ctx context.Context, telegramID string) (*model.Mentor, error) {
	var mentor model.Mentor
	err := r.db.WithContext(ctx).
		Where("telegram_id = ?", telegramID).
		First(&mentor).Error
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *mentorRepo) List(ctx context.Context) ([]model.Mentor, error) {
	var mentors []model.Mentor
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&mentors).Error
	return mentors, err
}

func (r *mentorRepo) SearchByName(ctx context.Context, query string) ([]model.Mentor, error) {
	return r.search(ctx, "name", query)
}

func (r *mentorRepo) SearchBySpecification(ctx context.Context, query string) ([]model.Mentor, error) {
	return r.search(ctx, "specification", query)
}

// search matches a case-insensitive substring; column is never user input.
func (r *mentorRepo) search(ctx context.Context, column, query string) ([]model.Mentor, error) {
	var mentors []model.Mentor
	err := r.db.WithContext(ctx).
		Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(query)+"%").
		Order("name ASC").
		Find(&mentors).Error
	return mentors, err
}

func (r *mentorRepo) UpdateInfo(ctx context.Context, id, info string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Mentor{}).
		Where("mentor_id = ?", id).
		Update("info", info)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mentorRepo) UpdateProfile(ctx context.Context, mentor *model.Mentor) error {
	result := r.db.WithContext(ctx).
		Model(&model.Mentor{}).
		Where("mentor_id = ?", mentor.MentorID).
		Updates(map[string]interface{}{
			"name":          mentor.Name,
			"telegram_id":   mentor.TelegramID,
			"about":         mentor.About,
			"specification": mentor.Specification,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

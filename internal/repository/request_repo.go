package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mlcinall/mentor-service/internal/model"
	pkgerrors "github.com/mlcinall/mentor-service/pkg/errors"
)

// PendingCounts pending requests of a mentor split by kind
type PendingCounts struct {
	Calls    int64
	Messages int64
}

// RequestRepository request data access
type RequestRepository interface {
	Create(ctx context.Context, request *model.Request) error
	GetByID(ctx context.Context, id string) (*model.Request, error)
	ListPendingByMentor(ctx context.Context, mentorID string) ([]model.Request, error)
	ListByGuest(ctx context.Context, guestID string) ([]model.Request, error)
	ListAcceptedCalls(ctx context.Context, mentorID string) ([]model.Request, error)
	CountPendingByMentor(ctx context.Context, mentorID string) (PendingCounts, error)
	// FindActiveAt returns the pending or accepted call of mentor at callTime.
	FindActiveAt(ctx context.Context, mentorID string, callTime time.Time) (*model.Request, error)
	// UpdateResponse moves a request from one status to another; ErrOptimisticLock
	// when the stored status is no longer from.
	UpdateResponse(ctx context.Context, id string, from, to model.ResponseStatus) error
}

type requestRepo struct {
	db *gorm.DB
}

// NewRequestRepo creates a RequestRepository
func NewRequestRepo(db *gorm.DB) RequestRepository {
	return &requestRepo{db: db}
}

func (r *requestRepo) Create(ctx context.Context, request *model.Request) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *requestRepo) GetByID(ctx context.Context, id string) (*model.Request, error) {
	var request model.Request
	err := r.db.WithContext(ctx).
		Where("request_id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepo) ListPendingByMentor(ctx context.Context, mentorID string) ([]model.Request, error) {
	var requests []model.Request
	err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND response = ?", mentorID, model.ResponsePending).
		Order("time_sent ASC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepo) ListByGuest(ctx context.Context, guestID string) ([]model.Request, error) {
	var requests []model.Request
	err := r.db.WithContext(ctx).
		Where("guest_id = ?", guestID).
		Order("time_sent DESC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepo) ListAcceptedCalls(ctx context.Context, mentorID string) ([]model.Request, error) {
	var requests []model.Request
	err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND call_type = ? AND response = ? AND call_time IS NOT NULL",
			mentorID, model.CallTypeCall, model.ResponseAccepted).
		Order("call_time ASC").
		Find(&requests).Error
	return requests, err
}

func (r *requestRepo) CountPendingByMentor(ctx context.Context, mentorID string) (PendingCounts, error) {
	var rows []struct {
		CallType model.CallType
		Total    int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Request{}).
		Select("call_type, COUNT(*) AS total").
		Where("mentor_id = ? AND response = ?", mentorID, model.ResponsePending).
		Group("call_type").
		Scan(&rows).Error
	if err != nil {
		return PendingCounts{}, err
	}

	var counts PendingCounts
	for _, row := range rows {
		switch row.CallType {
		case model.CallTypeCall:
			counts.Calls = row.Total
		case model.CallTypeMessage:
			counts.Messages = row.Total
		}
	}
	return counts, nil
}

func (r *requestRepo) FindActiveAt(ctx context.Context, mentorID string, callTime time.Time) (*model.Request, error) {
	var request model.Request
	err := r.db.WithContext(ctx).
		Where("mentor_id = ? AND call_time = ? AND response IN ?",
			mentorID, callTime, []model.ResponseStatus{model.ResponsePending, model.ResponseAccepted}).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepo) UpdateResponse(ctx context.Context, id string, from, to model.ResponseStatus) error {
	result := r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("request_id = ? AND response = ?", id, from).
		Update("response", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

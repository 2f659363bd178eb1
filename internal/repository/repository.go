package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every store behind one handle.
type Repository struct {
	Mentor     MentorRepository
	TimeWindow TimeWindowRepository
	Request    RequestRepository
	Favorite   FavoriteRepository

	db *gorm.DB
}

// NewRepository builds the gorm-backed stores.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Mentor:     NewMentorRepo(db),
		TimeWindow: NewTimeWindowRepo(db),
		Request:    NewRequestRepo(db),
		Favorite:   NewFavoriteRepo(db),
		db:         db,
	}
}

// Transaction runs fn against stores bound to one database transaction;
// any error from fn rolls every write back. A Repository assembled from
// non-gorm stores has no transaction to open and runs fn directly.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/mlcinall/mentor-service/config"
	"github.com/mlcinall/mentor-service/internal/repository"
	"github.com/mlcinall/mentor-service/pkg/profile"
)

// MentorLocker serializes availability and booking mutations of one mentor.
// The returned func releases the lock.
type MentorLocker interface {
	Lock(ctx context.Context, mentorID string) (func(), error)
}

// ProfileLookup reads a mentor's public profile from the profile service.
type ProfileLookup interface {
	Fetch(ctx context.Context, externalID string) (*profile.Profile, error)
}

// Service aggregates every business service.
type Service struct {
	Mentor       MentorService
	Availability AvailabilityService
	Booking      BookingService
	Favorite     FavoriteService
	Export       ExportService
}

// NewService wires the services over one repository set.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	locker MentorLocker,
	profiles ProfileLookup,
	logger *zap.Logger,
) *Service {
	return &Service{
		Mentor:       NewMentorService(repo, profiles, logger),
		Availability: NewAvailabilityService(repo, locker, logger),
		Booking:      NewBookingService(repo, locker, cfg.Booking.CarveOnReject, logger),
		Favorite:     NewFavoriteService(repo, logger),
		Export:       NewExportService(repo, logger),
	}
}

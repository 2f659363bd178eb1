package handler

import "github.com/mlcinall/mentor-service/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Mentor       *MentorHandler
	Availability *AvailabilityHandler
	Request      *RequestHandler
	Favorite     *FavoriteHandler
	Export       *ExportHandler
}

// NewHandler creates the handler set over svc.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Mentor:       NewMentorHandler(svc.Mentor),
		Availability: NewAvailabilityHandler(svc.Availability),
		Request:      NewRequestHandler(svc.Booking),
		Favorite:     NewFavoriteHandler(svc.Favorite),
		Export:       NewExportHandler(svc.Export),
	}
}

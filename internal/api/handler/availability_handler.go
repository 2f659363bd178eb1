package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mlcinall/mentor-service/internal/dto"
	"github.com/mlcinall/mentor-service/internal/service"
	"github.com/mlcinall/mentor-service/pkg/response"
)

// AvailabilityHandler weekly window endpoints
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

// NewAvailabilityHandler creates an AvailabilityHandler
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

// Publish adds a window, extending the windows it touches
// POST /api/v1/mentors/:id/windows
func (h *AvailabilityHandler) Publish(c *gin.Context) {
	var req dto.PublishWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, codeInvalidRange, "day_of_week must be 0-6 and times HH:MM[:SS]")
		return
	}

	result, err := h.availabilitySvc.Publish(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// ListWindows all windows of a mentor, by day then start
// GET /api/v1/mentors/:id/windows
func (h *AvailabilityHandler) ListWindows(c *gin.Context) {
	windows, err := h.availabilitySvc.ListWindows(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"list": windows})
}

// CallableTimes bookable 30-minute start times of one weekday
// GET /api/v1/mentors/:id/callable-times?day=0
func (h *AvailabilityHandler) CallableTimes(c *gin.Context) {
	var req dto.CallableTimesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, codeInvalidRange, "day must be within 0-6")
		return
	}

	times, err := h.availabilitySvc.CallableTimes(c.Request.Context(), c.Param("id"), *req.Day)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, times)
}

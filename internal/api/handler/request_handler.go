package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mlcinall/mentor-service/internal/api/middleware"
	"github.com/mlcinall/mentor-service/internal/dto"
	"github.com/mlcinall/mentor-service/internal/model"
	"github.com/mlcinall/mentor-service/internal/service"
	"github.com/mlcinall/mentor-service/pkg/response"
)

// RequestHandler call and message request endpoints
type RequestHandler struct {
	bookingSvc service.BookingService
}

// NewRequestHandler creates a RequestHandler
func NewRequestHandler(bookingSvc service.BookingService) *RequestHandler {
	return &RequestHandler{bookingSvc: bookingSvc}
}

// Submit a student's request to a mentor
// POST /api/v1/requests
func (h *RequestHandler) Submit(c *gin.Context) {
	var req dto.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid parameters")
		return
	}

	guestID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.bookingSvc.Submit(c.Request.Context(), guestID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, result)
}

// Respond accepts or rejects a pending request
// POST /api/v1/mentors/:id/requests/:rid/respond
func (h *RequestHandler) Respond(c *gin.Context) {
	var req dto.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "response must be 1 (accept) or -1 (reject)")
		return
	}

	result, err := h.bookingSvc.Respond(c.Request.Context(), c.Param("id"), c.Param("rid"), model.ResponseStatus(*req.Response))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// Cancel withdraws an accepted request
// POST /api/v1/mentors/:id/requests/:rid/cancel
func (h *RequestHandler) Cancel(c *gin.Context) {
	result, err := h.bookingSvc.Cancel(c.Request.Context(), c.Param("id"), c.Param("rid"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// GetRequest request details, visible to its guest and its mentor
// GET /api/v1/requests/:id
func (h *RequestHandler) GetRequest(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.bookingSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if role != middleware.RoleAdmin && callerID != result.GuestID && callerID != result.MentorID {
		handleServiceError(c, service.ErrRequestNotFound)
		return
	}
	response.OK(c, result)
}

// ListMine the caller's own submitted requests
// GET /api/v1/requests/me
func (h *RequestHandler) ListMine(c *gin.Context) {
	guestID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	requests, err := h.bookingSvc.ListByGuest(c.Request.Context(), guestID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"list": requests})
}

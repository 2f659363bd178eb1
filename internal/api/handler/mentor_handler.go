package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mlcinall/mentor-service/internal/dto"
	"github.com/mlcinall/mentor-service/internal/service"
	"github.com/mlcinall/mentor-service/pkg/response"
)

// MentorHandler mentor profile and inbox endpoints
type MentorHandler struct {
	mentorSvc service.MentorService
}

// NewMentorHandler creates a MentorHandler
func NewMentorHandler(mentorSvc service.MentorService) *MentorHandler {
	return &MentorHandler{mentorSvc: mentorSvc}
}

// ListMentors lists mentors, optionally filtered by name or specification
// GET /api/v1/mentors?name=&specification=
func (h *MentorHandler) ListMentors(c *gin.Context) {
	var req dto.MentorSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid parameters")
		return
	}

	mentors, err := h.mentorSvc.List(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"list": mentors})
}

// Register creates the caller's mentor profile
// POST /api/v1/mentors
func (h *MentorHandler) Register(c *gin.Context) {
	var req dto.CreateMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	req.ID = callerID

	mentor, err := h.mentorSvc.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.Created(c, mentor)
}

// GetMentor mentor details
// GET /api/v1/mentors/:id
func (h *MentorHandler) GetMentor(c *gin.Context) {
	mentor, err := h.mentorSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, mentor)
}

// GetByTelegram mentor by external handle
// GET /api/v1/mentors/telegram/:handle
func (h *MentorHandler) GetByTelegram(c *gin.Context) {
	mentor, err := h.mentorSvc.GetByTelegramID(c.Request.Context(), c.Param("handle"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, mentor)
}

// UpdateInfo replaces the markdown bio
// PUT /api/v1/mentors/:id/info
func (h *MentorHandler) UpdateInfo(c *gin.Context) {
	var req dto.UpdateMentorInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid parameters")
		return
	}

	mentor, err := h.mentorSvc.UpdateInfo(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, mentor)
}

// Sync pulls profile fields from the profile service
// POST /api/v1/mentors/:id/sync
func (h *MentorHandler) Sync(c *gin.Context) {
	var req dto.SyncMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid parameters")
		return
	}

	mentor, err := h.mentorSvc.Sync(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, mentor)
}

// CountPending pending call and message requests
// GET /api/v1/mentors/:id/requests/count
func (h *MentorHandler) CountPending(c *gin.Context) {
	counts, err := h.mentorSvc.CountPending(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, counts)
}

// ListPending the mentor's pending requests
// GET /api/v1/mentors/:id/requests/pending
func (h *MentorHandler) ListPending(c *gin.Context) {
	requests, err := h.mentorSvc.ListPending(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"list": requests})
}

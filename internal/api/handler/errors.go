package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mlcinall/mentor-service/internal/service"
	pkgerrors "github.com/mlcinall/mentor-service/pkg/errors"
	"github.com/mlcinall/mentor-service/pkg/response"
)

// Stable business codes for the error taxonomy.
const (
	codeNotFound            = 20001
	codeInvalidRange        = 20002
	codeNoAvailability      = 20003
	codeSlotTaken           = 20004
	codeInvalidTransition   = 20005
	codeUpstreamUnavailable = 20006
	codeConflict            = 20007
)

// handleServiceError maps a service error onto the response envelope.
// Anything outside the taxonomy is a store or lock failure: 503, retryable.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, codeNotFound, err.Error())
	case errors.Is(err, pkgerrors.ErrInvalidRange):
		response.BadRequest(c, codeInvalidRange, err.Error())
	case errors.Is(err, pkgerrors.ErrNoAvailability):
		response.Conflict(c, codeNoAvailability, err.Error())
	case errors.Is(err, pkgerrors.ErrSlotTaken):
		response.Conflict(c, codeSlotTaken, err.Error())
	case errors.Is(err, pkgerrors.ErrInvalidTransition):
		response.Conflict(c, codeInvalidTransition, err.Error())
	case errors.Is(err, pkgerrors.ErrUpstreamUnavailable):
		response.FailedDependency(c, codeUpstreamUnavailable, "profile service unavailable")
	case errors.Is(err, pkgerrors.ErrConflict):
		response.Conflict(c, codeConflict, err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		_ = c.Error(err)
		response.InternalError(c)
	default:
		_ = c.Error(err)
		response.ServiceUnavailable(c)
	}
}

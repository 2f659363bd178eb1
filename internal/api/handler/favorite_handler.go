package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/mlcinall/mentor-service/internal/service"
	"github.com/mlcinall/mentor-service/pkg/response"
)

// FavoriteHandler the caller's bookmarked mentors
type FavoriteHandler struct {
	favoriteSvc service.FavoriteService
}

// NewFavoriteHandler creates a FavoriteHandler
func NewFavoriteHandler(favoriteSvc service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteSvc: favoriteSvc}
}

// ListFavorites GET /api/v1/favorites
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	favorites, err := h.favoriteSvc.List(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, gin.H{"list": favorites})
}

// AddFavorite POST /api/v1/favorites/:mentor_id
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	favorite, err := h.favoriteSvc.Add(c.Request.Context(), userID, c.Param("mentor_id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, favorite)
}

// RemoveFavorite DELETE /api/v1/favorites/:mentor_id
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.favoriteSvc.Remove(c.Request.Context(), userID, c.Param("mentor_id")); err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, nil)
}

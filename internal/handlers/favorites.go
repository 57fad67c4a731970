package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zetflix/zetflix-api/internal/database"
	"github.com/zetflix/zetflix-api/internal/models"
)

func (h *Handler) handleListFavorites(c *gin.Context) {
	favorites, err := h.services.DB.ListFavorites(userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

func (h *Handler) handleAddFavorite(c *gin.Context) {
	var req models.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	favorite := &models.Favorite{
		ID:          database.FavoriteKey(userID(c), req.MediaID, req.MediaType),
		UserID:      userID(c),
		MediaID:     req.MediaID,
		MediaType:   req.MediaType,
		MediaTitle:  req.MediaTitle,
		MediaPoster: req.MediaPoster,
		MediaRate:   req.MediaRate,
		CreatedAt:   time.Now(),
	}
	if err := h.services.DB.UpsertFavorite(favorite); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"favorite": favorite})
}

func (h *Handler) handleRemoveFavorite(c *gin.Context) {
	favoriteID := c.Param("favoriteId")

	favorite, err := h.services.DB.GetFavorite(favoriteID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if favorite == nil || favorite.UserID != userID(c) {
		c.JSON(http.StatusNotFound, gin.H{"message": "favorite not found"})
		return
	}

	if err := h.services.DB.DeleteFavorite(favoriteID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zetflix/zetflix-api/internal/constants"
	"github.com/zetflix/zetflix-api/internal/models"
)

func (h *Handler) handleRecordWatchEvent(c *gin.Context) {
	var req models.WatchEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.WatchDuration < 0 {
		badRequest(c, "watchDuration must not be negative")
		return
	}

	resp, err := h.services.WatchHistory.RecordEvent(userID(c), &req, c.GetHeader("User-Agent"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) handleRecentWatchHistory(c *gin.Context) {
	entries, err := h.services.WatchHistory.RecentHistory(userID(c), constants.RecentHistoryLimit)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if entries == nil {
		entries = []models.WatchHistoryEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"watchHistory": entries})
}

func (h *Handler) handleClearWatchHistory(c *gin.Context) {
	if err := h.services.WatchHistory.ClearHistory(userID(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Watch history cleared"})
}

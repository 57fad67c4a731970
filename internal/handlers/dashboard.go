package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zetflix/zetflix-api/internal/models"
)

func (h *Handler) handleDashboard(c *gin.Context) {
	resp, err := h.services.Dashboard.Build(c.Request.Context(), userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleCheckNewEpisodes(c *gin.Context) {
	resp, err := h.services.Ongoing.CheckForNewEpisodes(userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleMarkEpisodeNotificationSeen(c *gin.Context) {
	var req models.MarkSeenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if err := h.services.Ongoing.MarkNotificationSeen(userID(c), req.MediaID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as seen"})
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zetflix/zetflix-api/internal/models"
)

func (h *Handler) handleListReviews(c *gin.Context) {
	reviews, err := h.services.DB.ListReviews(userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *Handler) handleAddReview(c *gin.Context) {
	var req models.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	review := &models.Review{
		ID:          uuid.NewString(),
		UserID:      userID(c),
		MediaID:     req.MediaID,
		MediaType:   req.MediaType,
		MediaTitle:  req.MediaTitle,
		MediaPoster: req.MediaPoster,
		Content:     req.Content,
		CreatedAt:   time.Now(),
	}
	if err := h.services.DB.AddReview(review); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

func (h *Handler) handleRemoveReview(c *gin.Context) {
	reviewID := c.Param("reviewId")

	review, err := h.services.DB.GetReview(reviewID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if review == nil || review.UserID != userID(c) {
		c.JSON(http.StatusNotFound, gin.H{"message": "review not found"})
		return
	}

	if err := h.services.DB.DeleteReview(reviewID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review removed"})
}

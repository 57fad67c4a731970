// Package handlers implements the HTTP request handlers for the streaming API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zetflix/zetflix-api/internal/config"
	apperrors "github.com/zetflix/zetflix-api/internal/errors"
	"github.com/zetflix/zetflix-api/internal/middleware"
	"github.com/zetflix/zetflix-api/internal/services"
)

// Handler handles HTTP requests for the streaming API.
type Handler struct {
	services *services.Container
	config   *config.Config
}

// New creates a new Handler with the provided services and configuration.
func New(services *services.Container, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.handleHealth)

	user := r.Group("/user")
	user.POST("/signup", h.handleSignup)
	user.POST("/signin", h.handleSignin)

	authed := user.Group("", middleware.RequireAuth(h.services.Auth))
	authed.PUT("/update-password", h.handleUpdatePassword)
	authed.GET("/info", h.handleUserInfo)
	authed.PUT("/profile", h.handleUpdateProfile)
	authed.PUT("/mark-first-login-complete", h.handleMarkFirstLoginComplete)

	authed.GET("/dashboard", h.handleDashboard)
	authed.GET("/check-new-episodes", h.handleCheckNewEpisodes)
	authed.PUT("/mark-episode-notification-seen", h.handleMarkEpisodeNotificationSeen)

	authed.POST("/watch-history", h.handleRecordWatchEvent)
	authed.GET("/watch-history", h.handleRecentWatchHistory)
	authed.DELETE("/watch-history", h.handleClearWatchHistory)

	authed.GET("/favorites", h.handleListFavorites)
	authed.POST("/favorites", h.handleAddFavorite)
	authed.DELETE("/favorites/:favoriteId", h.handleRemoveFavorite)

	reviews := r.Group("/reviews", middleware.RequireAuth(h.services.Auth))
	reviews.GET("", h.handleListReviews)
	reviews.POST("", h.handleAddReview)
	reviews.DELETE("/:reviewId", h.handleRemoveReview)
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// userID returns the authenticated caller's ID set by the auth middleware.
func userID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}

// respondError maps typed errors onto HTTP statuses with the uniform
// {"message": ...} envelope. Unclassified errors become an opaque 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			c.JSON(http.StatusBadRequest, gin.H{"message": appErr.Message})
			return
		case apperrors.ErrorTypeUnauthorized:
			c.JSON(http.StatusUnauthorized, gin.H{"message": appErr.Message})
			return
		case apperrors.ErrorTypeNotFound:
			c.JSON(http.StatusNotFound, gin.H{"message": appErr.Message})
			return
		}
	}

	h.services.Logger.Errorf("[Handler] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

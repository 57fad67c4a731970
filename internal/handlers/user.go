package handlers

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zetflix/zetflix-api/internal/constants"
	"github.com/zetflix/zetflix-api/internal/models"
)

func (h *Handler) handleSignup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	existing, err := h.services.DB.GetUserByUsername(req.Username)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if existing != nil {
		badRequest(c, "username already used")
		return
	}

	hash, salt, err := h.services.Auth.HashPassword(req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		Email:        fmt.Sprintf("%s@movieapp.local", req.Username),
		PasswordHash: hash,
		Salt:         salt,
		AuthProvider: "local",
		IsFirstLogin: true,
		MonthlyStats: models.MonthlyStats{CurrentMonth: now.Format(constants.MonthKeyFormat)},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.services.DB.CreateUser(user); err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.services.Auth.GenerateToken(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.services.Logger.Infof("[Handler] user %s signed up", user.Username)
	c.JSON(http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

func (h *Handler) handleSignin(c *gin.Context) {
	var req models.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	user, err := h.services.DB.GetUserByUsername(req.Username)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if user == nil {
		badRequest(c, "user not exist")
		return
	}

	if !h.services.Auth.VerifyPassword(req.Password, user.Salt, user.PasswordHash) {
		badRequest(c, "wrong password")
		return
	}

	now := time.Now()
	hoursSinceCreation := math.Round(now.Sub(user.CreatedAt).Hours()*10) / 10
	greeting := user.IsFirstLogin && hoursSinceCreation <= float64(constants.FirstLoginGreetingHours)

	if err := h.services.DB.MutateUser(user.ID, func(stored *models.User) error {
		stored.LastLoginDate = now
		return nil
	}); err != nil {
		h.respondError(c, err)
		return
	}
	user.LastLoginDate = now

	token, err := h.services.Auth.GenerateToken(user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{
		Token:                       token,
		User:                        user,
		ShouldShowFirstTimeGreeting: greeting,
		HoursSinceCreation:          hoursSinceCreation,
	})
}

func (h *Handler) handleUpdatePassword(c *gin.Context) {
	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	user, err := h.services.DB.GetUser(userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	if !h.services.Auth.VerifyPassword(req.Password, user.Salt, user.PasswordHash) {
		badRequest(c, "wrong password")
		return
	}

	hash, salt, err := h.services.Auth.HashPassword(req.NewPassword)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.services.DB.MutateUser(user.ID, func(stored *models.User) error {
		stored.PasswordHash = hash
		stored.Salt = salt
		stored.UpdatedAt = time.Now()
		return nil
	}); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *Handler) handleUserInfo(c *gin.Context) {
	user, err := h.services.DB.GetUser(userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) handleUpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	var updated *models.User
	err := h.services.DB.MutateUser(userID(c), func(stored *models.User) error {
		if req.DisplayName != nil {
			stored.DisplayName = *req.DisplayName
		}
		if req.ProfileImage != nil {
			stored.ProfileImage = *req.ProfileImage
		}
		if req.ProfileImagePath != nil {
			stored.ProfileImagePath = *req.ProfileImagePath
		}
		stored.UpdatedAt = time.Now()
		updated = stored
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": updated})
}

func (h *Handler) handleMarkFirstLoginComplete(c *gin.Context) {
	err := h.services.DB.MutateUser(userID(c), func(stored *models.User) error {
		stored.IsFirstLogin = false
		return nil
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "First login marked complete"})
}

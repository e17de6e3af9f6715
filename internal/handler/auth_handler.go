package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/shoplane/shoplane-api/internal/middleware"
	"github.com/shoplane/shoplane-api/internal/service"
	"github.com/shoplane/shoplane-api/internal/utils"
)

// AuthHandler handles registration, login, and profile endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, 400, errInvalidBody)
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, utils.ErrEmailExists) {
			abortWithError(c, 400, err)
			return
		}
		abortWithError(c, 0, err)
		return
	}

	c.JSON(201, gin.H{"user": user, "token": token})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, 400, errInvalidBody)
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidCredentials) {
			abortWithError(c, 401, err)
			return
		}
		abortWithError(c, 0, err)
		return
	}

	c.JSON(200, gin.H{"user": user, "token": token})
}

// GetProfile handles GET /api/users/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, utils.ErrUserNotFound) {
			abortWithError(c, 404, err)
			return
		}
		abortWithError(c, 0, err)
		return
	}
	c.JSON(200, user)
}

// UpdateProfile handles PUT /api/users/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, 400, errInvalidBody)
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		if errors.Is(err, utils.ErrEmailExists) {
			abortWithError(c, 400, err)
			return
		}
		if errors.Is(err, utils.ErrUserNotFound) {
			abortWithError(c, 404, err)
			return
		}
		abortWithError(c, 0, err)
		return
	}
	c.JSON(200, user)
}

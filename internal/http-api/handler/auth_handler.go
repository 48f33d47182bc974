package handler

import (
	"errors"
	"net/http"

	"mediahub/internal/http-api/dto"
	"mediahub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes mounts the sign-up and token endpoints; extra is for the
// per-IP rate limiter.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, extra ...gin.HandlerFunc) {
	auth := rg.Group("/auth", extra...)
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/token", h.Token)
	}
}

// Signup registers a passwordless account and triggers the confirmation
// email. The response echoes the validated fields only.
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": dto.FieldErrors(err)})
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservedName), errors.Is(err, service.ErrInvalidUsername),
			errors.Is(err, service.ErrNameInUse):
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"username": err.Error()}})
		case errors.Is(err, service.ErrEmailInUse):
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": err.Error()}})
		case errors.Is(err, service.ErrIdentityInUse):
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"username": err.Error(), "email": err.Error()}})
		default:
			handleServiceError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.SignupResponse{
		Username: user.Username,
		Email:    user.Email,
	})
}

// Token exchanges a confirmation code for an access token.
// POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": dto.FieldErrors(err)})
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

package api

import (
	"errors"
	"time"

	"github.com/smartpot-labs/smartpot-api/internal/http/response"
	"github.com/smartpot-labs/smartpot-api/internal/i18n"
	"github.com/smartpot-labs/smartpot-api/internal/models"
	"github.com/smartpot-labs/smartpot-api/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest signup payload.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account. New accounts start logged out.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	user, err := h.AuthService.Register(req.FullName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "error.invalid_email", nil)
		case errors.Is(err, service.ErrEmailExists):
			respondError(c, response.CodeConflict, "error.email_exists", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondWeakPassword(c, err)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Created(c, userResponse(user))
}

// LoginRequest login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and opens a session.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	user, accessToken, refreshToken, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, sessionResponse(user, accessToken, refreshToken, expiresAt))
}

// Logout closes the session and blacklists the presented access token.
func (h *Handler) Logout(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.AuthService.Logout(user, currentToken(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyRevoked):
			respondError(c, response.CodeConflict, "error.already_revoked", nil)
		case errors.Is(err, service.ErrTokenMismatch):
			respondError(c, response.CodeForbidden, "error.token_mismatch", nil)
		case errors.Is(err, service.ErrTokenExpired):
			respondError(c, response.CodeUnauthorized, "error.token_expired", nil)
		case errors.Is(err, service.ErrTokenInvalid):
			respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, gin.H{"logged_out": true})
}

// RefreshRequest token refresh payload.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh exchanges a refresh token for a fresh session pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	user, accessToken, refreshToken, expiresAt, err := h.AuthService.Refresh(req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			respondError(c, response.CodeUnauthorized, "error.token_expired", nil)
		case errors.Is(err, service.ErrTokenRevoked):
			respondError(c, response.CodeUnauthorized, "error.token_revoked", nil)
		case errors.Is(err, service.ErrUserInactive):
			respondError(c, response.CodeBadRequest, "error.inactive_user", nil)
		case errors.Is(err, service.ErrTokenInvalid):
			respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, sessionResponse(user, accessToken, refreshToken, expiresAt))
}

// ForgotPasswordRequest reset request payload.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword emails a reset link carrying a reset token.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	if err := h.AuthService.ForgotPassword(req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "error.invalid_email", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, gin.H{"sent": true})
}

// ResetPasswordRequest reset confirmation payload.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetPassword sets a new password from a reset token.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	user, err := h.AuthService.ResetPassword(req.Token, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			respondError(c, response.CodeUnauthorized, "error.token_expired", nil)
		case errors.Is(err, service.ErrTokenInvalid):
			respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		case errors.Is(err, service.ErrUserInactive):
			respondError(c, response.CodeBadRequest, "error.inactive_user", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondWeakPassword(c, err)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, gin.H{"reset": true, "email": user.Email})
}

func respondWeakPassword(c *gin.Context, err error) {
	locale := i18n.ResolveLocale(c)
	if perr, ok := err.(interface {
		Key() string
		Args() []interface{}
	}); ok {
		msg := i18n.Sprintf(locale, perr.Key(), perr.Args()...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	respondError(c, response.CodeBadRequest, "error.weak_password", nil)
}

func userResponse(user *models.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"full_name": user.FullName,
		"email":     user.Email,
		"is_active": user.IsActive,
		"language":  user.Language,
		"timezone":  user.Timezone,
	}
}

func sessionResponse(user *models.User, accessToken, refreshToken string, expiresAt time.Time) gin.H {
	return gin.H{
		"user":          userResponse(user),
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "bearer",
		"expires_at":    expiresAt.Format(time.RFC3339),
	}
}

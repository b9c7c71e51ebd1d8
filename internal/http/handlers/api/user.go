package api

import (
	"errors"

	"github.com/smartpot-labs/smartpot-api/internal/http/response"
	"github.com/smartpot-labs/smartpot-api/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCurrentUser returns the authenticated user's profile.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	response.Success(c, userResponse(user))
}

// UpdateTimezoneRequest timezone change payload.
type UpdateTimezoneRequest struct {
	Timezone string `json:"timezone" binding:"required"`
}

// UpdateTimezone sets the user's IANA timezone. Spaces in the zone name
// are accepted and folded to underscores.
func (h *Handler) UpdateTimezone(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateTimezoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	if err := h.UserService.SetTimezone(user, req.Timezone); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTimezone):
			respondError(c, response.CodeBadRequest, "error.invalid_timezone", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, userResponse(user))
}

// UpdateLanguageRequest language change payload.
type UpdateLanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

// UpdateLanguage sets the user's interface language.
func (h *Handler) UpdateLanguage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	if err := h.UserService.SetLanguage(user, req.Language); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidLanguage):
			respondError(c, response.CodeBadRequest, "error.invalid_language", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, userResponse(user))
}

// UpdateFullNameRequest display name change payload.
type UpdateFullNameRequest struct {
	FullName string `json:"full_name" binding:"required"`
}

// UpdateFullName sets the user's display name.
func (h *Handler) UpdateFullName(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateFullNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	if err := h.UserService.SetFullName(user, req.FullName); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, userResponse(user))
}

// DeleteAccountRequest account removal payload.
type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

// DeleteAccount removes the account together with its devices and plants.
// The current access token is blacklisted on the way out.
func (h *Handler) DeleteAccount(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	if err := h.UserService.DeleteAccount(user, req.Password, currentToken(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPassword):
			respondError(c, response.CodeBadRequest, "error.invalid_password", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

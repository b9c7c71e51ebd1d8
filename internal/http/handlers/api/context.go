package api

import (
	"github.com/smartpot-labs/smartpot-api/internal/http/response"
	"github.com/smartpot-labs/smartpot-api/internal/models"

	"github.com/gin-gonic/gin"
)

// Context keys mirrored from the bearer middleware.
const (
	contextUserKey  = "current_user"
	contextTokenKey = "access_token"
)

func currentUser(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		return nil, false
	}
	user, ok := value.(*models.User)
	if !ok || user == nil {
		respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		return nil, false
	}
	return user, true
}

func currentToken(c *gin.Context) string {
	value, ok := c.Get(contextTokenKey)
	if !ok {
		return ""
	}
	token, ok := value.(string)
	if !ok {
		return ""
	}
	return token
}

package api

import "github.com/smartpot-labs/smartpot-api/internal/provider"

// Handler serves the pot owner and device facing API.
type Handler struct {
	*provider.Container
}

// New creates the API handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

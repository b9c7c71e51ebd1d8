package api

import (
	"errors"
	"strings"

	"github.com/smartpot-labs/smartpot-api/internal/http/response"
	"github.com/smartpot-labs/smartpot-api/internal/service"

	"github.com/gin-gonic/gin"
)

const deviceTokenHeader = "X-Device-Token"

// IngestReadingRequest sensor sample payload. The token may come from
// the X-Device-Token header or the body; pots with tiny HTTP stacks
// tend to prefer the body.
type IngestReadingRequest struct {
	DeviceToken string  `json:"device_token"`
	Humidity    float64 `json:"humidity"`
	Lux         float64 `json:"lux"`
	Temperature float64 `json:"temperature"`
}

// IngestReading accepts a sample from a paired pot, refreshes the plant
// snapshot and appends to the history.
func (h *Handler) IngestReading(c *gin.Context) {
	var req IngestReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	token := strings.TrimSpace(c.GetHeader(deviceTokenHeader))
	if token == "" {
		token = strings.TrimSpace(req.DeviceToken)
	}
	device, err := h.DeviceService.AuthenticateDevice(token)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "error.invalid_credentials", nil)
		return
	}

	plant, err := h.PlantService.IngestReading(device, req.Humidity, req.Lux, req.Temperature)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReadingOutOfRange):
			respondError(c, response.CodeBadRequest, "error.reading_out_of_range", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, gin.H{
		"plant_id":     plant.ID,
		"humidity":     plant.Humidity,
		"lux":          plant.Lux,
		"temperature":  plant.Temperature,
		"last_updated": plant.LastUpdated,
	})
}

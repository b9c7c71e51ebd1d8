package api

import (
	"errors"

	"github.com/smartpot-labs/smartpot-api/internal/http/response"
	"github.com/smartpot-labs/smartpot-api/internal/models"
	"github.com/smartpot-labs/smartpot-api/internal/service"

	"github.com/gin-gonic/gin"
)

// UpsertThresholdRequest alert range payload.
type UpsertThresholdRequest struct {
	SensorName string  `json:"sensor_name" binding:"required"`
	MinValue   float64 `json:"min_value"`
	MaxValue   float64 `json:"max_value"`
}

// UpsertThreshold sets the alert range for one sensor of a plant.
// Writing the same sensor again overwrites the previous range.
func (h *Handler) UpsertThreshold(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	plantID, ok := plantIDParam(c)
	if !ok {
		return
	}

	var req UpsertThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	threshold, err := h.ThresholdService.Upsert(user, plantID, req.SensorName, req.MinValue, req.MaxValue)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSensorName):
			respondError(c, response.CodeBadRequest, "error.invalid_sensor_name", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.not_found", nil)
		case errors.Is(err, service.ErrForbidden):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, thresholdResponse(threshold))
}

// ListPlantThresholds lists the alert ranges of a plant.
func (h *Handler) ListPlantThresholds(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	plantID, ok := plantIDParam(c)
	if !ok {
		return
	}

	thresholds, err := h.ThresholdService.ListForPlant(user, plantID)
	if err != nil {
		respondPlantError(c, err)
		return
	}

	items := make([]gin.H, 0, len(thresholds))
	for i := range thresholds {
		items = append(items, thresholdResponse(&thresholds[i]))
	}
	response.Success(c, items)
}

// GetThreshold returns the alert range of one sensor of a plant.
func (h *Handler) GetThreshold(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	plantID, ok := plantIDParam(c)
	if !ok {
		return
	}

	threshold, err := h.ThresholdService.Get(user, plantID, c.Param("sensor"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSensorName):
			respondError(c, response.CodeBadRequest, "error.invalid_sensor_name", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.not_found", nil)
		case errors.Is(err, service.ErrForbidden):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, thresholdResponse(threshold))
}

// ListMyThresholds lists alert ranges across all of the user's plants.
func (h *Handler) ListMyThresholds(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	thresholds, err := h.ThresholdService.ListForUser(user)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	items := make([]gin.H, 0, len(thresholds))
	for i := range thresholds {
		items = append(items, thresholdResponse(&thresholds[i]))
	}
	response.Success(c, items)
}

func thresholdResponse(threshold *models.SensorThreshold) gin.H {
	return gin.H{
		"id":           threshold.ID,
		"plant_id":     threshold.PlantID,
		"sensor_name":  threshold.SensorName,
		"min_value":    threshold.MinValue,
		"max_value":    threshold.MaxValue,
		"last_updated": threshold.LastUpdated,
	}
}

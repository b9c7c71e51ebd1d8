package api

import (
	"errors"
	"strconv"

	handlershared "github.com/smartpot-labs/smartpot-api/internal/http/handlers/shared"
	"github.com/smartpot-labs/smartpot-api/internal/http/response"
	"github.com/smartpot-labs/smartpot-api/internal/models"
	"github.com/smartpot-labs/smartpot-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePlantRequest plant creation payload.
type CreatePlantRequest struct {
	Name     string `json:"name" binding:"required"`
	ImgSrc   string `json:"imgsrc"`
	DeviceID string `json:"device_id" binding:"required"`
}

// CreatePlant creates a plant and links it to one of the user's devices.
func (h *Handler) CreatePlant(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreatePlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	plant, err := h.PlantService.Create(user, req.Name, req.ImgSrc, req.DeviceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.not_found", nil)
		case errors.Is(err, service.ErrDeviceLinked):
			respondError(c, response.CodeConflict, "error.device_linked", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Created(c, plantResponse(plant))
}

// ListPlants lists the user's plants with their latest readings.
func (h *Handler) ListPlants(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	plants, err := h.PlantService.ListForUser(user)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	items := make([]gin.H, 0, len(plants))
	for i := range plants {
		items = append(items, plantResponse(&plants[i]))
	}
	response.Success(c, items)
}

// GetPlant returns one of the user's plants.
func (h *Handler) GetPlant(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	plantID, ok := plantIDParam(c)
	if !ok {
		return
	}

	plant, err := h.PlantService.GetForUser(user, plantID)
	if err != nil {
		respondPlantError(c, err)
		return
	}

	response.Success(c, plantResponse(plant))
}

// RenamePlantRequest rename payload.
type RenamePlantRequest struct {
	Name string `json:"name" binding:"required"`
}

// RenamePlant changes a plant's display name.
func (h *Handler) RenamePlant(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	plantID, ok := plantIDParam(c)
	if !ok {
		return
	}

	var req RenamePlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	plant, err := h.PlantService.Rename(user, plantID, req.Name)
	if err != nil {
		respondPlantError(c, err)
		return
	}

	response.Success(c, plantResponse(plant))
}

// DeletePlant removes a plant and its history.
func (h *Handler) DeletePlant(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	plantID, ok := plantIDParam(c)
	if !ok {
		return
	}

	if err := h.PlantService.Delete(user, plantID); err != nil {
		respondPlantError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// GetPlantReadings pages through a plant's reading history, newest first.
func (h *Handler) GetPlantReadings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	plantID, ok := plantIDParam(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	readings, total, err := h.PlantService.History(user, plantID, page, pageSize)
	if err != nil {
		respondPlantError(c, err)
		return
	}

	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	response.SuccessWithPage(c, readings, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

func plantIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return 0, false
	}
	return uint(id), true
}

func respondPlantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.not_found", nil)
	case errors.Is(err, service.ErrForbidden):
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}

func plantResponse(plant *models.Plant) gin.H {
	return gin.H{
		"id":           plant.ID,
		"name":         plant.Name,
		"imgsrc":       plant.ImgSrc,
		"humidity":     plant.Humidity,
		"lux":          plant.Lux,
		"temperature":  plant.Temperature,
		"last_updated": plant.LastUpdated,
		"device_id":    plant.DeviceID,
		"created_at":   plant.CreatedAt,
	}
}

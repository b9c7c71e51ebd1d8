package api

import (
	"errors"

	"github.com/smartpot-labs/smartpot-api/internal/http/response"
	"github.com/smartpot-labs/smartpot-api/internal/models"
	"github.com/smartpot-labs/smartpot-api/internal/service"

	"github.com/gin-gonic/gin"
)

// PairDeviceRequest pairing payload.
type PairDeviceRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// PairDevice registers a pot device and issues its upload token. The
// token is returned once here and mailed to the owner when possible.
func (h *Handler) PairDevice(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req PairDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	device, emailed, err := h.DeviceService.Pair(user, req.Name, req.Type)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDeviceType):
			respondError(c, response.CodeBadRequest, "error.invalid_device_type", nil)
		case errors.Is(err, service.ErrDeviceNameExists):
			respondError(c, response.CodeConflict, "error.device_name_exists", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	payload := deviceResponse(device)
	payload["device_token"] = device.DeviceToken
	payload["token_emailed"] = emailed
	response.Created(c, payload)
}

// ListDevices lists the user's paired devices.
func (h *Handler) ListDevices(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	devices, err := h.DeviceService.ListForUser(user)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	items := make([]gin.H, 0, len(devices))
	for i := range devices {
		items = append(items, deviceResponse(&devices[i]))
	}
	response.Success(c, items)
}

// GetDevice returns one of the user's devices.
func (h *Handler) GetDevice(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	device, err := h.DeviceService.GetForUser(user, c.Param("id"))
	if err != nil {
		respondDeviceError(c, err)
		return
	}

	response.Success(c, deviceResponse(device))
}

// DeleteDevice unpairs a device. A plant linked to it is removed too.
func (h *Handler) DeleteDevice(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.DeviceService.Delete(user, c.Param("id")); err != nil {
		respondDeviceError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

func respondDeviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.not_found", nil)
	case errors.Is(err, service.ErrForbidden):
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}

func deviceResponse(device *models.Device) gin.H {
	return gin.H{
		"id":         device.ID,
		"name":       device.Name,
		"type":       device.Type,
		"created_at": device.CreatedAt,
	}
}

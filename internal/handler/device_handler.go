package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidstreamhq/vidstream/internal/model"
	"github.com/vidstreamhq/vidstream/internal/service"
)

// DeviceHandler handles device registry endpoints
type DeviceHandler struct {
	deviceService *service.DeviceService
}

func NewDeviceHandler(deviceService *service.DeviceService) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService}
}

// RegisterDevice godoc
// @Summary Register a device for the authenticated user
// @Tags Devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.RegisterDeviceRequest true "Register request"
// @Success 201 {object} model.Device
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /devices [post]
func (h *DeviceHandler) RegisterDevice(c *gin.Context) {
	var req model.RegisterDeviceRequest
	if !bindJSON(c, &req) {
		return
	}

	device, err := h.deviceService.RegisterDevice(currentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, device)
}

// ListDevices godoc
// @Summary List the authenticated user's devices
// @Tags Devices
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Device
// @Router /devices [get]
func (h *DeviceHandler) ListDevices(c *gin.Context) {
	devices, err := h.deviceService.GetUserDevices(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, devices)
}

// GetDevice godoc
// @Summary Get a device by primary id
// @Tags Devices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Device primary id"
// @Success 200 {object} model.Device
// @Failure 404 {object} model.ErrorResponse
// @Router /devices/{id} [get]
func (h *DeviceHandler) GetDevice(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	device, err := h.deviceService.GetDevice(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, device)
}

// GetDeviceByDeviceID godoc
// @Summary Get a device by its client-generated identifier
// @Tags Devices
// @Produce json
// @Security BearerAuth
// @Param deviceId path string true "Client device identifier"
// @Success 200 {object} model.Device
// @Failure 404 {object} model.ErrorResponse
// @Router /devices/by-device-id/{deviceId} [get]
func (h *DeviceHandler) GetDeviceByDeviceID(c *gin.Context) {
	device, err := h.deviceService.GetDeviceByDeviceID(c.Param("deviceId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, device)
}

// UpdateDevice godoc
// @Summary Update a device
// @Tags Devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Device primary id"
// @Param body body model.UpdateDeviceRequest true "Update request"
// @Success 200 {object} model.Device
// @Failure 404 {object} model.ErrorResponse
// @Router /devices/{id} [patch]
func (h *DeviceHandler) UpdateDevice(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req model.UpdateDeviceRequest
	if !bindJSON(c, &req) {
		return
	}

	device, err := h.deviceService.UpdateDevice(id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, device)
}

// RemoveDevice godoc
// @Summary Remove a device
// @Tags Devices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Device primary id"
// @Success 200 {object} model.DeletedResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /devices/{id} [delete]
func (h *DeviceHandler) RemoveDevice(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.deviceService.RemoveDevice(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.DeletedResponse{Deleted: deleted})
}

// RemoveAllDevices godoc
// @Summary Remove all of the authenticated user's devices
// @Tags Devices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CountResponse
// @Router /devices [delete]
func (h *DeviceHandler) RemoveAllDevices(c *gin.Context) {
	count, err := h.deviceService.RemoveAllUserDevices(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.CountResponse{Count: count})
}

// ActiveDeviceCount godoc
// @Summary Count the authenticated user's devices active in the last 30 days
// @Tags Devices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CountResponse
// @Router /devices/active-count [get]
func (h *DeviceHandler) ActiveDeviceCount(c *gin.Context) {
	count, err := h.deviceService.GetActiveDeviceCount(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.CountResponse{Count: count})
}

// ValidateOwnership godoc
// @Summary Check that a device belongs to the authenticated user
// @Tags Devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.ValidateOwnershipRequest true "Device identifier"
// @Success 200 {object} model.ValidateOwnershipResponse
// @Router /devices/validate-ownership [post]
func (h *DeviceHandler) ValidateOwnership(c *gin.Context) {
	var req model.ValidateOwnershipRequest
	if !bindJSON(c, &req) {
		return
	}

	valid, err := h.deviceService.ValidateDeviceOwnership(req.DeviceID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ValidateOwnershipResponse{Valid: valid})
}

package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vidstreamhq/vidstream/internal/apperr"
	"github.com/vidstreamhq/vidstream/internal/model"
	"github.com/vidstreamhq/vidstream/internal/repository"
	"gorm.io/gorm"
)

const (
	maxDevicesPerUser = 5
	// activeDeviceWindow is how recently a device must have been seen to
	// count as active.
	activeDeviceWindow = 30 * 24 * time.Hour
)

// DeviceService enforces device identity uniqueness and the per-user
// device-count limit.
type DeviceService struct {
	deviceRepo repository.DeviceRepository
}

func NewDeviceService(deviceRepo repository.DeviceRepository) *DeviceService {
	return &DeviceService{deviceRepo: deviceRepo}
}

// RegisterDevice creates a device for the user. The deviceId must be unused
// by any user, and the user must hold fewer than the device cap.
func (s *DeviceService) RegisterDevice(userID uuid.UUID, req model.RegisterDeviceRequest) (*model.Device, error) {
	_, err := s.deviceRepo.FindByDeviceID(req.DeviceID)
	if err == nil {
		return nil, apperr.Conflict("device is already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	devices, err := s.deviceRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(devices) >= maxDevicesPerUser {
		return nil, apperr.LimitExceeded("device limit reached (max %d per user)", maxDevicesPerUser)
	}

	device := &model.Device{
		UserID:       userID,
		DeviceID:     req.DeviceID,
		DeviceName:   req.DeviceName,
		DeviceType:   req.DeviceType,
		LastActiveAt: time.Now(),
	}
	if err := s.deviceRepo.Create(device); err != nil {
		return nil, err
	}
	return device, nil
}

// GetDevice finds a device by its primary id
func (s *DeviceService) GetDevice(id uuid.UUID) (*model.Device, error) {
	device, err := s.deviceRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("device not found")
		}
		return nil, err
	}
	return device, nil
}

// GetDeviceByDeviceID finds a device by its client-generated identifier
func (s *DeviceService) GetDeviceByDeviceID(deviceID string) (*model.Device, error) {
	device, err := s.deviceRepo.FindByDeviceID(deviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("device not found")
		}
		return nil, err
	}
	return device, nil
}

// GetUserDevices lists devices for a user, most recently active first
func (s *DeviceService) GetUserDevices(userID uuid.UUID) ([]model.Device, error) {
	return s.deviceRepo.FindByUserID(userID)
}

// UpdateDevice applies a partial update. The repository refreshes
// lastActiveAt on every update.
func (s *DeviceService) UpdateDevice(id uuid.UUID, req model.UpdateDeviceRequest) (*model.Device, error) {
	if _, err := s.GetDevice(id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.DeviceName != nil {
		updates["device_name"] = *req.DeviceName
	}
	if req.DeviceType != nil {
		updates["device_type"] = *req.DeviceType
	}
	return s.deviceRepo.Update(id, updates)
}

// TouchDevice refreshes the device's lastActiveAt
func (s *DeviceService) TouchDevice(id uuid.UUID) error {
	return s.deviceRepo.Touch(id)
}

// RemoveDevice deletes a device
func (s *DeviceService) RemoveDevice(id uuid.UUID) (bool, error) {
	if _, err := s.GetDevice(id); err != nil {
		return false, err
	}
	return s.deviceRepo.Delete(id)
}

// RemoveAllUserDevices deletes every device owned by the user and returns
// how many were removed
func (s *DeviceService) RemoveAllUserDevices(userID uuid.UUID) (int64, error) {
	return s.deviceRepo.DeleteByUserID(userID)
}

// GetActiveDeviceCount counts devices seen within the last 30 days
func (s *DeviceService) GetActiveDeviceCount(userID uuid.UUID) (int64, error) {
	return s.deviceRepo.CountActiveSince(userID, time.Now().Add(-activeDeviceWindow))
}

// ValidateDeviceOwnership reports whether the device exists and belongs to
// the user. An absent or mismatched device is false, not an error.
func (s *DeviceService) ValidateDeviceOwnership(deviceID string, userID uuid.UUID) (bool, error) {
	device, err := s.deviceRepo.FindByDeviceID(deviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return device.UserID == userID, nil
}

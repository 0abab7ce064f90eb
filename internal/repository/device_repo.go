package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/vidstreamhq/vidstream/internal/model"
	"gorm.io/gorm"
)

// DeviceRepository abstracts device persistence
type DeviceRepository interface {
	Create(device *model.Device) error
	FindByID(id uuid.UUID) (*model.Device, error)
	FindByDeviceID(deviceID string) (*model.Device, error)
	FindByUserID(userID uuid.UUID) ([]model.Device, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*model.Device, error)
	Touch(id uuid.UUID) error
	Delete(id uuid.UUID) (bool, error)
	DeleteByUserID(userID uuid.UUID) (int64, error)
	CountActiveSince(userID uuid.UUID, since time.Time) (int64, error)
}

type deviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{db: db}
}

func (r *deviceRepository) Create(device *model.Device) error {
	return r.db.Create(device).Error
}

func (r *deviceRepository) FindByID(id uuid.UUID) (*model.Device, error) {
	var device model.Device
	if err := r.db.Where("id = ?", id).First(&device).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) FindByDeviceID(deviceID string) (*model.Device, error) {
	var device model.Device
	if err := r.db.Where("device_id = ?", deviceID).First(&device).Error; err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) FindByUserID(userID uuid.UUID) ([]model.Device, error) {
	var devices []model.Device
	err := r.db.Where("user_id = ?", userID).Order("last_active_at DESC").Find(&devices).Error
	return devices, err
}

// Update applies the given columns and always refreshes last_active_at
func (r *deviceRepository) Update(id uuid.UUID, updates map[string]interface{}) (*model.Device, error) {
	updates["last_active_at"] = time.Now()
	if err := r.db.Model(&model.Device{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

// Touch refreshes last_active_at only
func (r *deviceRepository) Touch(id uuid.UUID) error {
	return r.db.Model(&model.Device{}).
		Where("id = ?", id).
		Update("last_active_at", time.Now()).Error
}

func (r *deviceRepository) Delete(id uuid.UUID) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&model.Device{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *deviceRepository) DeleteByUserID(userID uuid.UUID) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&model.Device{})
	return result.RowsAffected, result.Error
}

func (r *deviceRepository) CountActiveSince(userID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Device{}).
		Where("user_id = ? AND last_active_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/vidstreamhq/vidstream/internal/model"
	"gorm.io/gorm"
)

// SessionRepository abstracts session persistence
type SessionRepository interface {
	Create(session *model.Session) error
	FindByID(id uuid.UUID) (*model.Session, error)
	FindByToken(token string) (*model.Session, error)
	FindByDeviceID(deviceID uuid.UUID) ([]model.Session, error)
	Deactivate(id uuid.UUID) (*model.Session, error)
	DeactivateByDeviceID(deviceID uuid.UUID) (int64, error)
	DeleteExpired(before time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) FindByID(id uuid.UUID) (*model.Session, error) {
	var session model.Session
	if err := r.db.Preload("Device").Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByToken(token string) (*model.Session, error) {
	var session model.Session
	if err := r.db.Preload("Device").Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByDeviceID(deviceID uuid.UUID) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.Where("device_id = ?", deviceID).Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) Deactivate(id uuid.UUID) (*model.Session, error) {
	if err := r.db.Model(&model.Session{}).
		Where("id = ?", id).
		Update("is_active", false).Error; err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

func (r *sessionRepository) DeactivateByDeviceID(deviceID uuid.UUID) (int64, error) {
	result := r.db.Model(&model.Session{}).
		Where("device_id = ? AND is_active = ?", deviceID, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *sessionRepository) DeleteExpired(before time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", before).Delete(&model.Session{})
	return result.RowsAffected, result.Error
}

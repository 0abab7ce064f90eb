package repository

import (
	"github.com/google/uuid"
	"github.com/vidstreamhq/vidstream/internal/model"
	"gorm.io/gorm"
)

// ProfileRepository abstracts profile persistence
type ProfileRepository interface {
	Create(profile *model.Profile) error
	FindByID(id uuid.UUID) (*model.Profile, error)
	FindByUserID(userID uuid.UUID) ([]model.Profile, error)
	CountByUserID(userID uuid.UUID) (int64, error)
	ExistsByUserIDAndName(userID uuid.UUID, name string) (bool, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*model.Profile, error)
	Delete(id uuid.UUID) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *model.Profile) error {
	return r.db.Create(profile).Error
}

func (r *profileRepository) FindByID(id uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByUserID(userID uuid.UUID) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) CountByUserID(userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Profile{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *profileRepository) ExistsByUserIDAndName(userID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Profile{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error
	return count > 0, err
}

func (r *profileRepository) Update(id uuid.UUID, updates map[string]interface{}) (*model.Profile, error) {
	if err := r.db.Model(&model.Profile{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(id)
}

func (r *profileRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&model.Profile{}).Error
}

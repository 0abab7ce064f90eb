package service_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/vidstreamhq/vidstream/internal/model"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the contract of the gorm
// adapters, including gorm.ErrRecordNotFound on misses.

// ========== users ==========

type memoryUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[uuid.UUID]*model.User{}}
}

func (m *memoryUserRepo) Create(user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memoryUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memoryUserRepo) FindByIDWithProfiles(id uuid.UUID) (*model.User, error) {
	return m.FindByID(id)
}

func (m *memoryUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) ExistsByEmail(email string) (bool, error) {
	_, err := m.FindByEmail(email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memoryUserRepo) Update(id uuid.UUID, updates map[string]interface{}) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := updates["is_active"]; ok {
		user.IsActive = v.(bool)
	}
	user.UpdatedAt = time.Now()
	return m.FindByID(id)
}

func (m *memoryUserRepo) Delete(id uuid.UUID) error {
	delete(m.users, id)
	return nil
}

// ========== profiles ==========

type memoryProfileRepo struct {
	profiles map[uuid.UUID]*model.Profile
}

func newMemoryProfileRepo() *memoryProfileRepo {
	return &memoryProfileRepo{profiles: map[uuid.UUID]*model.Profile{}}
}

func (m *memoryProfileRepo) Create(profile *model.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	stored := *profile
	m.profiles[profile.ID] = &stored
	return nil
}

func (m *memoryProfileRepo) FindByID(id uuid.UUID) (*model.Profile, error) {
	profile, ok := m.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *profile
	return &copied, nil
}

func (m *memoryProfileRepo) FindByUserID(userID uuid.UUID) ([]model.Profile, error) {
	var out []model.Profile
	for _, profile := range m.profiles {
		if profile.UserID == userID {
			out = append(out, *profile)
		}
	}
	return out, nil
}

func (m *memoryProfileRepo) CountByUserID(userID uuid.UUID) (int64, error) {
	profiles, _ := m.FindByUserID(userID)
	return int64(len(profiles)), nil
}

func (m *memoryProfileRepo) ExistsByUserIDAndName(userID uuid.UUID, name string) (bool, error) {
	for _, profile := range m.profiles {
		if profile.UserID == userID && profile.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryProfileRepo) Update(id uuid.UUID, updates map[string]interface{}) (*model.Profile, error) {
	profile, ok := m.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := updates["name"]; ok {
		profile.Name = v.(string)
	}
	if v, ok := updates["avatar_url"]; ok {
		url := v.(string)
		profile.AvatarURL = &url
	}
	if v, ok := updates["pin"]; ok {
		pin := v.(string)
		profile.PIN = &pin
	}
	if v, ok := updates["is_kids"]; ok {
		profile.IsKids = v.(bool)
	}
	if v, ok := updates["language"]; ok {
		profile.Language = v.(string)
	}
	if v, ok := updates["maturity_rating"]; ok {
		profile.MaturityRating = v.(string)
	}
	profile.UpdatedAt = time.Now()
	return m.FindByID(id)
}

func (m *memoryProfileRepo) Delete(id uuid.UUID) error {
	delete(m.profiles, id)
	return nil
}

// ========== devices ==========

type memoryDeviceRepo struct {
	devices map[uuid.UUID]*model.Device
}

func newMemoryDeviceRepo() *memoryDeviceRepo {
	return &memoryDeviceRepo{devices: map[uuid.UUID]*model.Device{}}
}

func (m *memoryDeviceRepo) Create(device *model.Device) error {
	if device.ID == uuid.Nil {
		device.ID = uuid.New()
	}
	device.CreatedAt = time.Now()
	stored := *device
	m.devices[device.ID] = &stored
	return nil
}

func (m *memoryDeviceRepo) FindByID(id uuid.UUID) (*model.Device, error) {
	device, ok := m.devices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *device
	return &copied, nil
}

func (m *memoryDeviceRepo) FindByDeviceID(deviceID string) (*model.Device, error) {
	for _, device := range m.devices {
		if device.DeviceID == deviceID {
			copied := *device
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryDeviceRepo) FindByUserID(userID uuid.UUID) ([]model.Device, error) {
	var out []model.Device
	for _, device := range m.devices {
		if device.UserID == userID {
			out = append(out, *device)
		}
	}
	return out, nil
}

func (m *memoryDeviceRepo) Update(id uuid.UUID, updates map[string]interface{}) (*model.Device, error) {
	device, ok := m.devices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := updates["device_name"]; ok {
		device.DeviceName = v.(string)
	}
	if v, ok := updates["device_type"]; ok {
		deviceType := v.(string)
		device.DeviceType = &deviceType
	}
	device.LastActiveAt = time.Now()
	return m.FindByID(id)
}

func (m *memoryDeviceRepo) Touch(id uuid.UUID) error {
	device, ok := m.devices[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	device.LastActiveAt = time.Now()
	return nil
}

func (m *memoryDeviceRepo) Delete(id uuid.UUID) (bool, error) {
	if _, ok := m.devices[id]; !ok {
		return false, nil
	}
	delete(m.devices, id)
	return true, nil
}

func (m *memoryDeviceRepo) DeleteByUserID(userID uuid.UUID) (int64, error) {
	var count int64
	for id, device := range m.devices {
		if device.UserID == userID {
			delete(m.devices, id)
			count++
		}
	}
	return count, nil
}

func (m *memoryDeviceRepo) CountActiveSince(userID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	for _, device := range m.devices {
		if device.UserID == userID && !device.LastActiveAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// ========== sessions ==========

type memorySessionRepo struct {
	sessions map[uuid.UUID]*model.Session
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: map[uuid.UUID]*model.Session{}}
}

func (m *memorySessionRepo) Create(session *model.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	session.CreatedAt = time.Now()
	stored := *session
	m.sessions[session.ID] = &stored
	return nil
}

func (m *memorySessionRepo) FindByID(id uuid.UUID) (*model.Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *session
	return &copied, nil
}

func (m *memorySessionRepo) FindByToken(token string) (*model.Session, error) {
	for _, session := range m.sessions {
		if session.Token == token {
			copied := *session
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memorySessionRepo) FindByDeviceID(deviceID uuid.UUID) ([]model.Session, error) {
	var out []model.Session
	for _, session := range m.sessions {
		if session.DeviceID == deviceID {
			out = append(out, *session)
		}
	}
	return out, nil
}

func (m *memorySessionRepo) Deactivate(id uuid.UUID) (*model.Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	session.IsActive = false
	return m.FindByID(id)
}

func (m *memorySessionRepo) DeactivateByDeviceID(deviceID uuid.UUID) (int64, error) {
	var count int64
	for _, session := range m.sessions {
		if session.DeviceID == deviceID && session.IsActive {
			session.IsActive = false
			count++
		}
	}
	return count, nil
}

func (m *memorySessionRepo) DeleteExpired(before time.Time) (int64, error) {
	var count int64
	for id, session := range m.sessions {
		if session.ExpiresAt.Before(before) {
			delete(m.sessions, id)
			count++
		}
	}
	return count, nil
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Device represents a registered playback device. DeviceID is the
// client-generated identifier and is globally unique across all users.
type Device struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID `json:"user_id" gorm:"not null;index"`
	DeviceID     string    `json:"device_id" gorm:"uniqueIndex;not null;size:255"`
	DeviceName   string    `json:"device_name" gorm:"not null;size:100"`
	DeviceType   *string   `json:"device_type,omitempty" gorm:"size:50"` // tv, mobile, web, ...
	LastActiveAt time.Time `json:"last_active_at"`
	CreatedAt    time.Time `json:"created_at"`
}

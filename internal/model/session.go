package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is a playback session bound to a device. A session counts as
// active when IsActive is set and it has not expired; the predicate is
// recomputed on read, never stored.
type Session struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DeviceID  uuid.UUID `json:"device_id" gorm:"not null;index"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null;size:512"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	Device    *Device   `json:"device,omitempty" gorm:"foreignKey:DeviceID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// ActiveAt reports whether the session counts as active at the given time
func (s *Session) ActiveAt(now time.Time) bool {
	return s.IsActive && s.ExpiresAt.After(now)
}

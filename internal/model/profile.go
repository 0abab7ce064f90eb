package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultProfileName is the name given to the profile auto-created at registration
const DefaultProfileName = "기본 프로필"

// maturityRatings is the content rating ladder, most permissive first
var maturityRatings = []string{"ALL", "7+", "13+", "16+", "18+"}

// Profile is a viewing profile under a user account. The PIN, when set,
// gates access to the profile and is stored bcrypt-hashed.
type Profile struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID `json:"user_id" gorm:"not null;index;uniqueIndex:idx_profiles_user_name,priority:1"`
	Name           string    `json:"name" gorm:"not null;size:100;uniqueIndex:idx_profiles_user_name,priority:2"`
	AvatarURL      *string   `json:"avatar_url,omitempty" gorm:"size:500"`
	PIN            *string   `json:"-" gorm:"column:pin;size:255"`
	IsKids         bool      `json:"is_kids" gorm:"not null;default:false"`
	Language       string    `json:"language" gorm:"not null;size:10;default:'ko'"`
	MaturityRating string    `json:"maturity_rating" gorm:"not null;size:10;default:'ALL'"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasPIN reports whether the profile is PIN-gated
func (p *Profile) HasPIN() bool {
	return p.PIN != nil && *p.PIN != ""
}

// IsAdultProfile reports whether the profile is not a kids profile
func (p *Profile) IsAdultProfile() bool {
	return !p.IsKids
}

// CanWatch reports whether content with the given rating is allowed for
// this profile.
func (p *Profile) CanWatch(contentRating string) bool {
	return ratingIndex(p.MaturityRating) >= ratingIndex(contentRating)
}

func ratingIndex(rating string) int {
	for i, r := range maturityRatings {
		if r == rating {
			return i
		}
	}
	return -1
}

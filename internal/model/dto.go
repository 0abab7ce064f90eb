package model

import (
	"time"

	"github.com/google/uuid"
)

// ========== Auth DTOs ==========

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type RegisterWithProfileRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	ProfileName string `json:"profile_name" binding:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	DeviceID string `json:"device_id" binding:"omitempty,max=255"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"` // access token TTL in seconds
}

// ========== User DTOs ==========

type UpdateUserRequest struct {
	IsActive *bool `json:"is_active"`
}

// ========== Profile DTOs ==========

type CreateProfileRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	AvatarURL      *string `json:"avatar_url" binding:"omitempty,max=500"`
	PIN            *string `json:"pin" binding:"omitempty,len=4,numeric"`
	IsKids         *bool   `json:"is_kids"`
	Language       *string `json:"language" binding:"omitempty,max=10"`
	MaturityRating *string `json:"maturity_rating" binding:"omitempty,oneof=ALL 7+ 13+ 16+ 18+"`
}

type UpdateProfileRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=1,max=100"`
	AvatarURL      *string `json:"avatar_url" binding:"omitempty,max=500"`
	PIN            *string `json:"pin" binding:"omitempty,len=4,numeric"`
	IsKids         *bool   `json:"is_kids"`
	Language       *string `json:"language" binding:"omitempty,max=10"`
	MaturityRating *string `json:"maturity_rating" binding:"omitempty,oneof=ALL 7+ 13+ 16+ 18+"`
}

type ValidatePinRequest struct {
	PIN string `json:"pin" binding:"required"`
}

type ValidatePinResponse struct {
	Valid bool `json:"valid"`
}

// ========== Device DTOs ==========

type RegisterDeviceRequest struct {
	DeviceID   string  `json:"device_id" binding:"required,max=255"`
	DeviceName string  `json:"device_name" binding:"required,min=1,max=100"`
	DeviceType *string `json:"device_type" binding:"omitempty,max=50"`
}

type UpdateDeviceRequest struct {
	DeviceName *string `json:"device_name" binding:"omitempty,min=1,max=100"`
	DeviceType *string `json:"device_type" binding:"omitempty,max=50"`
}

type ValidateOwnershipRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
}

type ValidateOwnershipResponse struct {
	Valid bool `json:"valid"`
}

// ========== Session DTOs ==========

type CreateSessionRequest struct {
	DeviceID  uuid.UUID `json:"device_id" binding:"required"`
	Token     string    `json:"token" binding:"required,max=512"`
	ExpiresAt time.Time `json:"expires_at" binding:"required"`
}

type ValidateSessionRequest struct {
	Token string `json:"token" binding:"required"`
}

type ValidateSessionResponse struct {
	Valid   bool     `json:"valid"`
	Session *Session `json:"session,omitempty"`
}

// ========== Shared DTOs ==========

type CountResponse struct {
	Count int64 `json:"count"`
}

type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

// FieldViolation describes a single failed validation rule on a request field
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string           `json:"error"`
	Message string           `json:"message,omitempty"`
	Fields  []FieldViolation `json:"fields,omitempty"`
}

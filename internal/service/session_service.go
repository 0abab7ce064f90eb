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

const maxConcurrentSessions = 3

// SessionService enforces the per-device concurrent-session limit and the
// active-session predicate. Device existence is confirmed through the
// DeviceService.
type SessionService struct {
	sessionRepo repository.SessionRepository
	devices     *DeviceService
}

func NewSessionService(sessionRepo repository.SessionRepository, devices *DeviceService) *SessionService {
	return &SessionService{sessionRepo: sessionRepo, devices: devices}
}

// CreateSession persists a session for the device. Sessions that are
// expired or deactivated do not count toward the concurrency cap.
func (s *SessionService) CreateSession(req model.CreateSessionRequest) (*model.Session, error) {
	if _, err := s.devices.GetDevice(req.DeviceID); err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.FindByDeviceID(req.DeviceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	active := 0
	for i := range sessions {
		if sessions[i].ActiveAt(now) {
			active++
		}
	}
	if active >= maxConcurrentSessions {
		return nil, apperr.LimitExceeded("session limit reached (max %d per device)", maxConcurrentSessions)
	}

	session := &model.Session{
		DeviceID:  req.DeviceID,
		Token:     req.Token,
		ExpiresAt: req.ExpiresAt,
		IsActive:  true,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession finds a session by id
func (s *SessionService) GetSession(id uuid.UUID) (*model.Session, error) {
	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session not found")
		}
		return nil, err
	}
	return session, nil
}

// GetSessionByToken finds a session by its token
func (s *SessionService) GetSessionByToken(token string) (*model.Session, error) {
	session, err := s.sessionRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("session not found")
		}
		return nil, err
	}
	return session, nil
}

// GetDeviceSessions lists all sessions for a device, newest first
func (s *SessionService) GetDeviceSessions(deviceID uuid.UUID) ([]model.Session, error) {
	return s.sessionRepo.FindByDeviceID(deviceID)
}

// ValidateSession checks a token against the active-session predicate.
// Unknown, deactivated and expired tokens all yield {valid:false}, never an
// error. A valid check refreshes the owning device's lastActiveAt.
func (s *SessionService) ValidateSession(token string) (*model.ValidateSessionResponse, error) {
	session, err := s.sessionRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.ValidateSessionResponse{Valid: false}, nil
		}
		return nil, err
	}

	if !session.ActiveAt(time.Now()) {
		return &model.ValidateSessionResponse{Valid: false}, nil
	}

	if err := s.devices.TouchDevice(session.DeviceID); err != nil {
		return nil, err
	}

	return &model.ValidateSessionResponse{Valid: true, Session: session}, nil
}

// DeactivateSession marks a session inactive
func (s *SessionService) DeactivateSession(id uuid.UUID) (*model.Session, error) {
	if _, err := s.GetSession(id); err != nil {
		return nil, err
	}
	return s.sessionRepo.Deactivate(id)
}

// DeactivateDeviceSessions bulk-deactivates all active sessions for a device
func (s *SessionService) DeactivateDeviceSessions(deviceID uuid.UUID) (int64, error) {
	return s.sessionRepo.DeactivateByDeviceID(deviceID)
}

// CleanupExpiredSessions deletes all sessions past their expiry. Scheduling
// is the caller's responsibility.
func (s *SessionService) CleanupExpiredSessions() (int64, error) {
	return s.sessionRepo.DeleteExpired(time.Now())
}

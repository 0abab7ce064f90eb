package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidstreamhq/vidstream/internal/apperr"
	"github.com/vidstreamhq/vidstream/internal/model"
	"github.com/vidstreamhq/vidstream/internal/service"
)

type sessionFixture struct {
	sessions    *service.SessionService
	sessionRepo *memorySessionRepo
	deviceRepo  *memoryDeviceRepo
	device      *model.Device
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	deviceRepo := newMemoryDeviceRepo()
	sessionRepo := newMemorySessionRepo()
	devices := service.NewDeviceService(deviceRepo)
	device := registerDevice(t, devices, uuid.New(), "tv-1")
	return &sessionFixture{
		sessions:    service.NewSessionService(sessionRepo, devices),
		sessionRepo: sessionRepo,
		deviceRepo:  deviceRepo,
		device:      device,
	}
}

func (f *sessionFixture) createSession(t *testing.T, token string) *model.Session {
	t.Helper()
	session, err := f.sessions.CreateSession(model.CreateSessionRequest{
		DeviceID:  f.device.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	return session
}

func TestCreateSession(t *testing.T) {
	t.Run("allows up to three active sessions per device", func(t *testing.T) {
		f := newSessionFixture(t)
		for i := 0; i < 3; i++ {
			f.createSession(t, fmt.Sprintf("token-%d", i))
		}

		_, err := f.sessions.CreateSession(model.CreateSessionRequest{
			DeviceID:  f.device.ID,
			Token:     "token-3",
			ExpiresAt: time.Now().Add(time.Hour),
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindLimitExceeded, apperr.KindOf(err))
		assert.Equal(t, "session limit reached (max 3 per device)", err.Error())
	})

	t.Run("expired sessions do not count toward the cap", func(t *testing.T) {
		f := newSessionFixture(t)
		for i := 0; i < 3; i++ {
			f.createSession(t, fmt.Sprintf("token-%d", i))
		}
		// expire one of them
		for _, s := range f.sessionRepo.sessions {
			s.ExpiresAt = time.Now().Add(-time.Minute)
			break
		}

		_, err := f.sessions.CreateSession(model.CreateSessionRequest{
			DeviceID:  f.device.ID,
			Token:     "token-3",
			ExpiresAt: time.Now().Add(time.Hour),
		})
		assert.NoError(t, err)
	})

	t.Run("deactivated sessions do not count toward the cap", func(t *testing.T) {
		f := newSessionFixture(t)
		first := f.createSession(t, "token-0")
		f.createSession(t, "token-1")
		f.createSession(t, "token-2")

		_, err := f.sessions.DeactivateSession(first.ID)
		require.NoError(t, err)

		_, err = f.sessions.CreateSession(model.CreateSessionRequest{
			DeviceID:  f.device.ID,
			Token:     "token-3",
			ExpiresAt: time.Now().Add(time.Hour),
		})
		assert.NoError(t, err)
	})

	t.Run("unknown device is not found", func(t *testing.T) {
		f := newSessionFixture(t)
		_, err := f.sessions.CreateSession(model.CreateSessionRequest{
			DeviceID:  uuid.New(),
			Token:     "token-0",
			ExpiresAt: time.Now().Add(time.Hour),
		})
		require.Error(t, err)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestGetSession(t *testing.T) {
	f := newSessionFixture(t)
	session := f.createSession(t, "token-0")

	found, err := f.sessions.GetSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, found.ID)

	_, err = f.sessions.GetSession(uuid.New())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	byToken, err := f.sessions.GetSessionByToken("token-0")
	require.NoError(t, err)
	assert.Equal(t, session.ID, byToken.ID)

	_, err = f.sessions.GetSessionByToken("nope")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestValidateSession(t *testing.T) {
	t.Run("valid session touches the owning device", func(t *testing.T) {
		f := newSessionFixture(t)
		session := f.createSession(t, "token-0")
		f.deviceRepo.devices[f.device.ID].LastActiveAt = time.Now().Add(-time.Hour)

		resp, err := f.sessions.ValidateSession("token-0")
		require.NoError(t, err)
		assert.True(t, resp.Valid)
		require.NotNil(t, resp.Session)
		assert.Equal(t, session.ID, resp.Session.ID)
		assert.WithinDuration(t, time.Now(), f.deviceRepo.devices[f.device.ID].LastActiveAt, time.Second)
	})

	t.Run("unknown token is invalid, not an error", func(t *testing.T) {
		f := newSessionFixture(t)
		resp, err := f.sessions.ValidateSession("ghost-token")
		require.NoError(t, err)
		assert.False(t, resp.Valid)
		assert.Nil(t, resp.Session)
	})

	t.Run("expired token is invalid", func(t *testing.T) {
		f := newSessionFixture(t)
		session := f.createSession(t, "token-0")
		f.sessionRepo.sessions[session.ID].ExpiresAt = time.Now().Add(-time.Minute)

		resp, err := f.sessions.ValidateSession("token-0")
		require.NoError(t, err)
		assert.False(t, resp.Valid)
	})

	t.Run("deactivated token is invalid", func(t *testing.T) {
		f := newSessionFixture(t)
		session := f.createSession(t, "token-0")
		_, err := f.sessions.DeactivateSession(session.ID)
		require.NoError(t, err)

		resp, err := f.sessions.ValidateSession("token-0")
		require.NoError(t, err)
		assert.False(t, resp.Valid)
	})
}

func TestDeactivateDeviceSessions(t *testing.T) {
	f := newSessionFixture(t)
	first := f.createSession(t, "token-0")
	f.createSession(t, "token-1")

	// a session that is already inactive is not counted again
	_, err := f.sessions.DeactivateSession(first.ID)
	require.NoError(t, err)

	count, err := f.sessions.DeactivateDeviceSessions(f.device.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	sessions, err := f.sessions.GetDeviceSessions(f.device.ID)
	require.NoError(t, err)
	for _, s := range sessions {
		assert.False(t, s.IsActive)
	}
}

func TestCleanupExpiredSessions(t *testing.T) {
	f := newSessionFixture(t)
	keep := f.createSession(t, "token-keep")
	gone := f.createSession(t, "token-gone")
	f.sessionRepo.sessions[gone.ID].ExpiresAt = time.Now().Add(-time.Minute)

	count, err := f.sessions.CleanupExpiredSessions()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = f.sessions.GetSession(keep.ID)
	assert.NoError(t, err)
	_, err = f.sessions.GetSession(gone.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

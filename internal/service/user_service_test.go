package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidstreamhq/vidstream/internal/apperr"
	"github.com/vidstreamhq/vidstream/internal/model"
	"github.com/vidstreamhq/vidstream/internal/service"
)

func newUserService() (*service.UserService, *memoryUserRepo) {
	repo := newMemoryUserRepo()
	return service.NewUserService(repo), repo
}

func TestCreateUser(t *testing.T) {
	svc, _ := newUserService()

	user, err := svc.Create("kim@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "supersecret", user.Password)
	assert.True(t, svc.ValidatePassword("supersecret", user.Password))
	assert.False(t, svc.ValidatePassword("wrong", user.Password))

	_, err = svc.Create("kim@example.com", "anotherpass")
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "email is already in use", err.Error())
}

func TestFindUser(t *testing.T) {
	svc, _ := newUserService()
	user, err := svc.Create("kim@example.com", "supersecret")
	require.NoError(t, err)

	byID, err := svc.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	byEmail, err := svc.FindByEmail("kim@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = svc.FindByID(uuid.New())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.FindByEmail("ghost@example.com")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateUser(t *testing.T) {
	svc, _ := newUserService()
	user, err := svc.Create("kim@example.com", "supersecret")
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(user.ID, model.UpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.False(t, updated.IsAccountActive())

	active := true
	updated, err = svc.Update(user.ID, model.UpdateUserRequest{IsActive: &active})
	require.NoError(t, err)
	assert.True(t, updated.IsActive)

	_, err = svc.Update(uuid.New(), model.UpdateUserRequest{IsActive: &active})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteUser(t *testing.T) {
	svc, _ := newUserService()
	user, err := svc.Create("kim@example.com", "supersecret")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(user.ID))

	_, err = svc.FindByID(user.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = svc.Delete(user.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

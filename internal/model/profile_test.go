package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vidstreamhq/vidstream/internal/model"
)

func TestCanWatch(t *testing.T) {
	cases := []struct {
		profileRating string
		contentRating string
		want          bool
	}{
		{"ALL", "ALL", true},
		{"ALL", "7+", false},
		{"13+", "7+", true},
		{"13+", "13+", true},
		{"13+", "16+", false},
		{"18+", "18+", true},
		{"18+", "ALL", true},
		// an unrated piece of content is never blocked
		{"ALL", "UNRATED", true},
		{"18+", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.profileRating+"/"+tc.contentRating, func(t *testing.T) {
			p := model.Profile{MaturityRating: tc.profileRating}
			assert.Equal(t, tc.want, p.CanWatch(tc.contentRating))
		})
	}
}

func TestHasPIN(t *testing.T) {
	empty := ""
	pin := "hashed"

	assert.False(t, (&model.Profile{}).HasPIN())
	assert.False(t, (&model.Profile{PIN: &empty}).HasPIN())
	assert.True(t, (&model.Profile{PIN: &pin}).HasPIN())
}

func TestIsAdultProfile(t *testing.T) {
	assert.True(t, (&model.Profile{IsKids: false}).IsAdultProfile())
	assert.False(t, (&model.Profile{IsKids: true}).IsAdultProfile())
}

func TestSessionActiveAt(t *testing.T) {
	now := time.Now()

	active := model.Session{IsActive: true, ExpiresAt: now.Add(time.Hour)}
	assert.True(t, active.ActiveAt(now))

	expired := model.Session{IsActive: true, ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, expired.ActiveAt(now))

	deactivated := model.Session{IsActive: false, ExpiresAt: now.Add(time.Hour)}
	assert.False(t, deactivated.ActiveAt(now))

	// expiry is exclusive: a session is inactive at its exact expiry instant
	atBoundary := model.Session{IsActive: true, ExpiresAt: now}
	assert.False(t, atBoundary.ActiveAt(now))
}

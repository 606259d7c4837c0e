package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionIsAuthenticated(t *testing.T) {
	assert.False(t, Session{}.IsAuthenticated())
	assert.False(t, Session{Principal: "admin"}.IsAuthenticated())
	assert.True(t, Session{Credential: "tok", Principal: "admin"}.IsAuthenticated())
}

func TestSessionLooksExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, Session{Credential: "tok"}.LooksExpired(now), "unknown expiry")
	assert.True(t, Session{Credential: "tok", ExpiresAt: now.Add(-time.Minute)}.LooksExpired(now))
	assert.False(t, Session{Credential: "tok", ExpiresAt: now.Add(time.Minute)}.LooksExpired(now))
}

func TestCredentialsComplete(t *testing.T) {
	assert.True(t, Credentials{Credential: "tok", Principal: "admin"}.Complete())
	assert.False(t, Credentials{Credential: "tok"}.Complete())
	assert.False(t, Credentials{Principal: "admin"}.Complete())
}

func TestNewAuthError(t *testing.T) {
	t.Run("uses gateway message", func(t *testing.T) {
		err := NewAuthError(&APIError{Code: 401, Message: "invalid username or password"})
		assert.Equal(t, "invalid username or password", err.Error())

		var apiErr *APIError
		assert.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 401, apiErr.Code)
	})

	t.Run("wraps transport failure", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewAuthError(cause)
		assert.Contains(t, err.Error(), "connection refused")
		assert.ErrorIs(t, err, cause)
	})
}

func TestRefreshIntervals(t *testing.T) {
	assert.True(t, ValidRefreshInterval(30*time.Second))
	assert.False(t, ValidRefreshInterval(15*time.Second))
	assert.Equal(t, 60*time.Second, NextRefreshInterval(30*time.Second))
	assert.Equal(t, 5*time.Second, NextRefreshInterval(60*time.Second))
}

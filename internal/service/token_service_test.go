package service

import (
	"testing"
	"time"

	"loyalty-platform/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_RoundTrip(t *testing.T) {
	svc := NewJWTTokenService("test-secret-at-least-32-characters!!", time.Hour, "loyalty-platform")
	principal := domain.Principal{ID: uuid.New(), Role: domain.RoleWorker}

	token, expiresAt, err := svc.Generate(principal)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	parsed, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, principal.ID, parsed.ID)
	assert.Equal(t, domain.RoleWorker, parsed.Role)
}

func TestJWTTokenService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTTokenService("secret-one-0123456789-0123456789!!", time.Hour, "loyalty-platform")
	other := NewJWTTokenService("secret-two-0123456789-0123456789!!", time.Hour, "loyalty-platform")

	token, _, err := svc.Generate(domain.Principal{ID: uuid.New(), Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_RejectsExpired(t *testing.T) {
	svc := NewJWTTokenService("test-secret-at-least-32-characters!!", -time.Minute, "loyalty-platform")

	token, _, err := svc.Generate(domain.Principal{ID: uuid.New(), Role: domain.RoleMerchant})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_RejectsGarbage(t *testing.T) {
	svc := NewJWTTokenService("test-secret-at-least-32-characters!!", time.Hour, "loyalty-platform")

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}

package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "test-access-secret-key-for-testing-purposes"
	testRefreshSecret = "test-refresh-secret-key-for-testing-purposes"
)

func TestNewService(t *testing.T) {
	service := NewService(
		testAccessSecret,
		testRefreshSecret,
		time.Hour,
		24*time.Hour,
	)

	assert.NotNil(t, service)
	assert.Equal(t, testAccessSecret, service.accessSecret)
	assert.Equal(t, testRefreshSecret, service.refreshSecret)
	assert.Equal(t, time.Hour, service.accessTokenExpiry)
	assert.Equal(t, 24*time.Hour, service.refreshTokenExpiry)
}

func TestGenerateAccessToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	clerkID := uuid.New()

	token, err := service.GenerateAccessToken(clerkID, "frontdesk1", "clerk")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Validate the generated token
	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, clerkID, claims.ClerkID)
	assert.Equal(t, "frontdesk1", claims.Username)
	assert.Equal(t, "clerk", claims.Role)
	assert.Equal(t, AccessToken, claims.TokenType)
}

func TestGenerateRefreshToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	clerkID := uuid.New()

	token, err := service.GenerateRefreshToken(clerkID, "frontdesk1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, clerkID, claims.ClerkID)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateAccessToken_WrongType(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	clerkID := uuid.New()

	refresh, err := service.GenerateRefreshToken(clerkID, "frontdesk1")
	require.NoError(t, err)

	// A refresh token must not validate as an access token. The secrets
	// differ, so parsing already fails before the type check.
	_, err = service.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestValidateAccessToken_TamperedToken(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, time.Hour, 24*time.Hour)
	clerkID := uuid.New()

	token, err := service.GenerateAccessToken(clerkID, "frontdesk1", "clerk")
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token + "x")
	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	service := NewService(testAccessSecret, testRefreshSecret, -time.Minute, 24*time.Hour)
	clerkID := uuid.New()

	token, err := service.GenerateAccessToken(clerkID, "frontdesk1", "clerk")
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.Error(t, err)
}

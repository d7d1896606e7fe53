package auth

import (
	"testing"
	"time"

	"herbarium/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{TokenTTL: ttl},
	}
	cfg.SecretKey.Access = secret

	return cfg
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	cfg := newTestConfig("test_secret_key_very_long_for_testing", 3*time.Hour)

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	identityID := "0x3f8a2b9c1d4e5f60718293a4b5c6d7e8f9001122"

	token, err := jwtService.GenerateToken(identityID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, identityID, claims.IdentityID)
}

func TestJWTService_InvalidToken(t *testing.T) {
	cfg := newTestConfig("test_secret_key_very_long_for_testing", 3*time.Hour)

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	cfg := newTestConfig("test_secret_key_very_long_for_testing", -time.Minute)

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)

	// Issued already expired
	token, err := jwtService.GenerateToken("0xabc")
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig("secret-one-very-long-for-testing", time.Hour))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTestConfig("secret-two-very-long-for-testing", time.Hour))
	require.NoError(t, err)

	token, err := issuer.GenerateToken("0xabc")
	require.NoError(t, err)

	claims, err := verifier.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := newTestConfig("", time.Hour)

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

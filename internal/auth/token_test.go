package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veristack/internal/auth"
	"veristack/internal/config"
	"veristack/internal/domain"
)

func tokenService(secret string) *auth.TokenService {
	return auth.NewTokenService(config.JWTConfig{
		Secret:      secret,
		TokenExpiry: time.Minute,
		Issuer:      "veristack-test",
	})
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := tokenService("test-secret")

	token, err := svc.Generate("user-1", "user@example.com", domain.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "veristack-test", claims.Issuer)
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	token, err := tokenService("secret-a").Generate("user-1", "user@example.com", domain.RoleMember)
	require.NoError(t, err)

	_, err = tokenService("secret-b").Validate(token)
	assert.Error(t, err)
}

func TestTokenService_ExpiredTokenRejected(t *testing.T) {
	svc := auth.NewTokenService(config.JWTConfig{
		Secret:      "test-secret",
		TokenExpiry: -time.Minute,
		Issuer:      "veristack-test",
	})

	token, err := svc.Generate("user-1", "user@example.com", domain.RoleMember)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

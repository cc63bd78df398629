package auth

import (
	"testing"
	"time"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Session.Secret = "test_session_secret_key_very_long_for_testing"
	cfg.Session.TTL = time.Hour

	return cfg
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	token, err := svc.GenerateSessionToken(1)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "session", claims.Type)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, time.Hour, svc.SessionTTL())
}

func TestJWTService_MissingSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	require.Error(t, err)
}

func TestJWTService_InvalidTokens(t *testing.T) {
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.Session.Secret = "another_secret"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)
	foreign, err := other.GenerateSessionToken(1)
	require.NoError(t, err)

	expiredSvc := svc.(*jwtService)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.GenerateSessionToken(1)
	require.NoError(t, err)
	expiredSvc.now = time.Now

	wrongType, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  1,
		"type": "refresh",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testConfig().Session.Secret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":        "not.a.token",
		"foreign secret": foreign,
		"expired":        expired,
		"wrong type":     wrongType,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateSessionToken(token)
			require.ErrorIs(t, err, domainerrors.ErrSessionInvalid)
		})
	}
}

package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/medimatch/medimatch-backend/internal/config"
	"github.com/medimatch/medimatch-backend/internal/onboarding"
)

func TestIssueSessionToken(t *testing.T) {
	cfg := testConfig()
	accountID := uuid.New()

	signed, err := IssueSessionToken(cfg, accountID, "asha@example.com", onboarding.RoleDoctor)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, accountID.String(), claims["sub"])
	require.Equal(t, "asha@example.com", claims["email"])
	require.Equal(t, "doctor", claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(cfg.JWTExpiry), exp.Time, 5*time.Second)
}

func TestIssueSessionTokenWrongSecretRejected(t *testing.T) {
	signed, err := IssueSessionToken(testConfig(), uuid.New(), "asha@example.com", onboarding.RolePatient)
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("some-other-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.Error(t, err)
}

func TestIssueSessionTokenExpired(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: -time.Minute}
	signed, err := IssueSessionToken(cfg, uuid.New(), "asha@example.com", onboarding.RoleDoctor)
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

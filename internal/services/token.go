package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/medimatch/medimatch-backend/internal/config"
	"github.com/medimatch/medimatch-backend/internal/onboarding"
)

// IssueSessionToken signs an HS256 session token carrying the account id,
// email and pipeline role. Lifetime comes from config (default 7 days).
func IssueSessionToken(cfg *config.Config, accountID uuid.UUID, email string, role onboarding.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   accountID.String(),
		"email": email,
		"role":  string(role),
		"iat":   now.Unix(),
		"exp":   now.Add(cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

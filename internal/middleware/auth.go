package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/medimatch/medimatch-backend/internal/config"
	"github.com/medimatch/medimatch-backend/internal/dto"
	"github.com/medimatch/medimatch-backend/internal/onboarding"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{
				Success: false,
				Message: "Unauthorized: invalid or expired token",
				Error:   "INVALID_CREDENTIALS",
			})
		},
	})
}

// RequireRole rejects tokens issued for the other pipeline, so a patient
// session cannot drive doctor onboarding endpoints and vice versa.
func RequireRole(role onboarding.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if AccountRole(c) != role {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{
				Success: false,
				Message: "Unauthorized: token does not match this account type",
				Error:   "INVALID_CREDENTIALS",
			})
		}
		return c.Next()
	}
}

// AccountID extracts the account UUID from the JWT claims in context.
func AccountID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, err := tokenClaims(c)
	if err != nil {
		return uuid.Nil, err
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

// AccountRole extracts the pipeline role claim; empty when absent.
func AccountRole(c *fiber.Ctx) onboarding.Role {
	claims, err := tokenClaims(c)
	if err != nil {
		return ""
	}
	role, _ := claims["role"].(string)
	return onboarding.Role(role)
}

func tokenClaims(c *fiber.Ctx) (jwt.MapClaims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("invalid token in context")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"leander-social/internal/domain"
	"leander-social/internal/service/auth"
)

const (
	ClaimsContextKey = "claims"
	UserIDContextKey = "user_id"
)

// TokenValidator is the part of the auth service the gate depends on.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// AuthRequired admits requests carrying a valid access token. The user record
// is not loaded here.
func AuthRequired(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return Forbidden("missing credential")
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				return Unauthorized("token expired")
			}
			return Unauthorized("invalid token")
		}

		userID, err := claims.UserID()
		if err != nil {
			return Unauthorized("invalid token")
		}

		c.Locals(ClaimsContextKey, claims)
		c.Locals(UserIDContextKey, userID)

		return c.Next()
	}
}

// BearerToken strips surrounding quotes and an optional "Bearer " prefix.
func BearerToken(header string) string {
	token := strings.TrimSpace(header)
	token = strings.Trim(token, `"'`)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return strings.Trim(token, `"'`)
}

func GetClaims(c *fiber.Ctx) *auth.Claims {
	claims, ok := c.Locals(ClaimsContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}

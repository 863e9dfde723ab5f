package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"leander-social/internal/domain"
)

const UserContextKey = "user"

type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// RequireRole loads the current user and rejects the request unless the user
// holds role. Must run after AuthRequired.
func RequireRole(users UserLookup, role domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetCurrentUserID(c)
		if userID == uuid.Nil {
			return Unauthorized("invalid token")
		}

		user, err := users.GetByID(c.UserContext(), userID)
		if err != nil || user == nil {
			return Forbidden("Insufficient permissions for this operation")
		}

		if !user.HasRole(role) {
			return Forbidden("Insufficient permissions for this operation")
		}

		c.Locals(UserContextKey, user)
		return c.Next()
	}
}

func GetCurrentUser(c *fiber.Ctx) *domain.User {
	user, ok := c.Locals(UserContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

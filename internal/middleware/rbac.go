package middleware

import (
	"github.com/gofiber/fiber/v2"

	"campus-booking/internal/domain"
)

func RequireRole(role domain.Role) fiber.Handler {
	return RequireAnyRole(role)
}

func RequireAnyRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return Forbidden("Insufficient permissions for this operation")
	}
}

package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/Livia-1212/user-management-final/internal/domain"
	"github.com/Livia-1212/user-management-final/internal/service"
)

// RequireRole verifies against the store that the caller currently
// holds one of the required roles. The check hits the store rather than
// trusting the token's role claim, so demotions take effect
// immediately.
func RequireRole(userService *service.UserService, roles ...domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("user_id").(uuid.UUID)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		user, err := userService.GetByID(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		for _, role := range roles {
			if user.HasRole(role) {
				c.Locals("current_user", user)
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "forbidden: insufficient permissions",
		})
	}
}

// RequireAdmin gates a route to ADMIN users
func RequireAdmin(userService *service.UserService) fiber.Handler {
	return RequireRole(userService, domain.RoleAdmin)
}

// RequireManager gates a route to MANAGER or ADMIN users
func RequireManager(userService *service.UserService) fiber.Handler {
	return RequireRole(userService, domain.RoleManager, domain.RoleAdmin)
}

// middleware/user_context.go
package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// UserContextMiddleware extracts the verified user id set by the Gateway.
// Tracking and privilege routes trust this id completely — the subsystem
// never authenticates end users itself.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

// handlers/response.go
package handlers

import (
	"errors"

	"gametribe-backend/services"

	"github.com/gofiber/fiber/v2"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Warning string      `json:"warning,omitempty"`
}

func ok(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Response{Success: true, Data: data})
}

func okWithWarning(c *fiber.Ctx, data interface{}, warning string) error {
	return c.JSON(Response{Success: true, Data: data, Warning: warning})
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(Response{Success: false, Error: msg})
}

// failErr maps service errors onto HTTP statuses: rejected input → 400,
// anything touching the store → 503, the rest → 500.
func failErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrStoreUnavailable):
		return fail(c, fiber.StatusServiceUnavailable, "stats store unavailable, action not recorded")
	default:
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
}

const achievementWarning = "action recorded, but achievement check failed and will be retried on your next action"

// handlers/tracking_routes.go
package handlers

import (
	"gametribe-backend/middleware"
	"gametribe-backend/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SetupTrackingRoutes mounts the action mutation surface. Every route takes
// its user id from the gateway user context, never from the payload.
func SetupTrackingRoutes(app *fiber.App, tracker *services.ActionTracker) {
	track := app.Group("/track", middleware.UserContextMiddleware())

	track.Post("/game-play", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		type Req struct {
			GameID   string `json:"game_id" validate:"required,max=128"`
			Category string `json:"category" validate:"omitempty,max=64"`
			Platform string `json:"platform" validate:"omitempty,max=64"`
			Minutes  int64  `json:"minutes" validate:"omitempty,min=0,max=1440"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "invalid JSON")
		}
		if err := validate.Struct(req); err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}

		res, err := tracker.TrackGamePlay(userID, services.PlayInput{
			GameID:   req.GameID,
			Category: req.Category,
			Platform: req.Platform,
			Minutes:  req.Minutes,
		})
		if err != nil {
			return failErr(c, err)
		}
		if res.AchievementCheckFailed {
			return okWithWarning(c, res, achievementWarning)
		}
		return ok(c, res)
	})

	track.Post("/rating", trackSimple(func(userID string) (*services.TrackResult, error) {
		return tracker.TrackRating(userID)
	}))
	track.Post("/comment", trackSimple(func(userID string) (*services.TrackResult, error) {
		return tracker.TrackComment(userID)
	}))
	track.Post("/favorite", trackSimple(func(userID string) (*services.TrackResult, error) {
		return tracker.TrackFavorite(userID)
	}))
	track.Post("/share", trackSimple(func(userID string) (*services.TrackResult, error) {
		return tracker.TrackShare(userID)
	}))

	track.Post("/login", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		res, err := tracker.TrackLogin(userID)
		if err != nil {
			return failErr(c, err)
		}
		if res.AchievementCheckFailed {
			return okWithWarning(c, res, achievementWarning)
		}
		return ok(c, res)
	})
}

func trackSimple(action func(userID string) (*services.TrackResult, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		res, err := action(userID)
		if err != nil {
			return failErr(c, err)
		}
		if res.AchievementCheckFailed {
			return okWithWarning(c, res, achievementWarning)
		}
		return ok(c, res)
	}
}

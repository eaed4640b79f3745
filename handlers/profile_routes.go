// handlers/profile_routes.go
package handlers

import (
	"strconv"

	"gametribe-backend/middleware"
	"gametribe-backend/models"
	"gametribe-backend/services"

	"github.com/gofiber/fiber/v2"
)

// SetupProfileRoutes mounts the read-only surface: stats, achievements,
// privileges, leaderboard and retention analytics.
func SetupProfileRoutes(
	app *fiber.App,
	stats services.StatsStore,
	achievements services.AchievementStore,
	resolver *services.PrivilegeResolver,
	leaderboard *services.LeaderboardService,
	retention *services.RetentionService,
) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	// Own stats; absent record is lazily created with defaults.
	secured.Get("/stats", func(c *fiber.Ctx) error {
		return statsResponse(c, stats, c.Locals("user_id").(string))
	})
	secured.Get("/stats/:userId", func(c *fiber.Ctx) error {
		return statsResponse(c, stats, c.Params("userId"))
	})

	secured.Get("/achievements", func(c *fiber.Ctx) error {
		return achievementsResponse(c, achievements, c.Locals("user_id").(string))
	})
	secured.Get("/achievements/:userId", func(c *fiber.Ctx) error {
		return achievementsResponse(c, achievements, c.Params("userId"))
	})

	// Privileges never fail: store trouble degrades to the lowest tiers.
	secured.Get("/privileges", func(c *fiber.Ctx) error {
		return ok(c, resolver.Resolve(c.Locals("user_id").(string)))
	})
	secured.Get("/privileges/:userId", func(c *fiber.Ctx) error {
		return ok(c, resolver.Resolve(c.Params("userId")))
	})

	secured.Get("/leaderboard", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))
		entries, err := leaderboard.Top(c.UserContext(), limit)
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, fiber.Map{"entries": entries})
	})

	secured.Get("/analytics/retention", func(c *fiber.Ctx) error {
		weeks, _ := strconv.Atoi(c.Query("weeks", "8"))
		report, err := retention.WeeklyRetention(weeks)
		if err != nil {
			return failErr(c, err)
		}
		return ok(c, report)
	})
}

func statsResponse(c *fiber.Ctx, store services.StatsStore, userID string) error {
	if userID == "" {
		return fail(c, fiber.StatusBadRequest, "missing user id")
	}
	userStats, err := store.EnsureStats(userID)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, fiber.Map{
		"stats":      userStats,
		"level_tier": services.LevelTier(userStats.Level),
		"xp_to_next": services.XPForLevel(userStats.Level+1) - userStats.TotalXP,
	})
}

func achievementsResponse(c *fiber.Ctx, store services.AchievementStore, userID string) error {
	if userID == "" {
		return fail(c, fiber.StatusBadRequest, "missing user id")
	}
	earned, err := store.ListEarned(userID)
	if err != nil {
		return failErr(c, err)
	}
	if earned == nil {
		earned = []models.EarnedAchievement{}
	}
	total := len(models.AchievementCatalog) + len(models.LoginStreakCatalog)
	return ok(c, fiber.Map{
		"achievements": earned,
		"earned":       len(earned),
		"total":        total,
	})
}

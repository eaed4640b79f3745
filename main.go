package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gametribe-backend/handlers"
	"gametribe-backend/middleware"
	"gametribe-backend/models"
	"gametribe-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID, X-User-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.UserStats{},
		&models.EarnedAchievement{},
		&models.GameSession{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	// Redis is optional: without it the leaderboard serves straight from the DB.
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("⚠️  Redis unreachable at %s, leaderboard will read from DB: %v", addr, err)
		}
	} else {
		log.Println("⚠️  REDIS_ADDR not set, leaderboard will read from DB")
	}

	statsStore := services.NewGormStatsStore(db)
	achievementStore := services.NewGormAchievementStore(db)
	engine := services.NewAchievementEngine(statsStore, achievementStore)
	leaderboard := services.NewLeaderboardService(db, rdb)
	retention := services.NewRetentionService(db)
	tracker := services.NewActionTracker(statsStore, engine, leaderboard, retention)
	resolver := services.NewPrivilegeResolver(statsStore, achievementStore)

	leaderboard.StartRebuildScheduler(5 * time.Minute)

	handlers.SetupTrackingRoutes(app, tracker)
	handlers.SetupProfileRoutes(app, statsStore, achievementStore, resolver, leaderboard, retention)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Gamification service running on http://localhost:5300")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}

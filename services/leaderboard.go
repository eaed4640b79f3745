package services

import (
	"context"
	"log"

	"gametribe-backend/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	leaderboardKey        = "gametribe:leaderboard:xp"
	leaderboardStagingKey = "gametribe:leaderboard:xp:staging"
)

type LeaderboardEntry struct {
	Rank    int    `json:"rank"`
	UserID  string `json:"user_id"`
	TotalXP int64  `json:"total_xp"`
	Level   int    `json:"level"`
}

// LeaderboardService keeps a Redis sorted set of total XP per user. The set is
// a cache over user_stats: trackers push fresh scores best-effort and a
// periodic rebuild corrects any drift. Reads fall back to Postgres when Redis
// is down.
type LeaderboardService struct {
	DB  *gorm.DB
	RDB *redis.Client // nil disables the Redis path entirely
}

func NewLeaderboardService(db *gorm.DB, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{DB: db, RDB: rdb}
}

// RecordScore pushes a user's fresh XP total into the sorted set.
func (s *LeaderboardService) RecordScore(ctx context.Context, userID string, totalXP int64) error {
	if s.RDB == nil {
		return nil
	}
	return s.RDB.ZAdd(ctx, leaderboardKey, redis.Z{Score: float64(totalXP), Member: userID}).Err()
}

// Top returns the highest-XP users, best first.
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	if s.RDB != nil {
		zs, err := s.RDB.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
		if err == nil && len(zs) > 0 {
			entries := make([]LeaderboardEntry, 0, len(zs))
			for i, z := range zs {
				userID, _ := z.Member.(string)
				totalXP := int64(z.Score)
				entries = append(entries, LeaderboardEntry{
					Rank:    i + 1,
					UserID:  userID,
					TotalXP: totalXP,
					Level:   LevelFromXP(totalXP),
				})
			}
			return entries, nil
		}
		if err != nil {
			log.Printf("⚠️ leaderboard read from redis failed, falling back to DB: %v", err)
		}
	}

	return s.topFromDB(limit)
}

func (s *LeaderboardService) topFromDB(limit int) ([]LeaderboardEntry, error) {
	var rows []models.UserStats
	if err := s.DB.Select("user_id", "total_xp", "level").
		Order("total_xp DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, storeErr(err)
	}
	entries := make([]LeaderboardEntry, 0, len(rows))
	for i, r := range rows {
		entries = append(entries, LeaderboardEntry{
			Rank:    i + 1,
			UserID:  r.UserID,
			TotalXP: r.TotalXP,
			Level:   r.Level,
		})
	}
	return entries, nil
}

// Rebuild reloads the sorted set from Postgres into a staging key and renames
// it over the live one, so readers never see a half-built set.
func (s *LeaderboardService) Rebuild(ctx context.Context) error {
	if s.RDB == nil {
		return nil
	}

	pipe := s.RDB.TxPipeline()
	pipe.Del(ctx, leaderboardStagingKey)

	var batch []models.UserStats
	res := s.DB.Select("user_id", "total_xp").FindInBatches(&batch, 500, func(tx *gorm.DB, _ int) error {
		members := make([]redis.Z, 0, len(batch))
		for _, row := range batch {
			members = append(members, redis.Z{Score: float64(row.TotalXP), Member: row.UserID})
		}
		if len(members) > 0 {
			pipe.ZAdd(ctx, leaderboardStagingKey, members...)
		}
		return nil
	})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	if res.RowsAffected == 0 {
		// Nothing to swap in; leave the live key alone.
		return nil
	}
	return s.RDB.Rename(ctx, leaderboardStagingKey, leaderboardKey).Err()
}

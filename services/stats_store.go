package services

import (
	"encoding/json"
	"time"

	"gametribe-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Column names handed to IncrementCounters / AddToSet / UpdateStreak. Kept as
// constants so the raw jsonb statements never interpolate caller-supplied
// identifiers.
const (
	colGamesPlayed    = "games_played"
	colTotalPlayTime  = "total_play_time"
	colCommentsCount  = "comments_count"
	colRatingsCount   = "ratings_count"
	colFavoritesCount = "favorites_count"
	colSharesCount    = "shares_count"
	colEarlyPlays     = "early_plays"
	colNightPlays     = "night_plays"

	colUniqueGames = "unique_games_played"
	colCategories  = "categories_played"
	colPlatforms   = "platforms_played"

	colPlayStreak    = "play_streak"
	colLoginStreak   = "login_streak"
	colLastPlayDate  = "last_play_date"
	colLastLoginDate = "last_login_date"
)

// StatsStore is the persistence surface for per-user stats records.
// Counter and set mutations must be atomic on the store side (single-statement
// increments / guarded appends), never read-modify-write in application code.
// Streak updates are the documented exception: they need a date comparison and
// are a read-then-write with an accepted race window.
type StatsStore interface {
	// EnsureStats returns the user's stats row, creating a zeroed one at
	// level 1 if none exists yet.
	EnsureStats(userID string) (*models.UserStats, error)
	IncrementCounters(userID string, deltas map[string]int64) error
	AddToSet(userID, column, value string) error
	// AwardXP atomically adds xp and returns the new total.
	AwardXP(userID string, xp int64) (int64, error)
	SetLevel(userID string, level int, leveledUpAt *time.Time) error
	UpdateStreak(userID string, counterColumn, dateColumn string, streak int64, day time.Time) error
}

// AchievementStore persists earned achievements (append-only, never updated).
type AchievementStore interface {
	EarnedIDs(userID string) (map[string]bool, error)
	Append(rec *models.EarnedAchievement) error
	ListEarned(userID string) ([]models.EarnedAchievement, error)
}

type GormStatsStore struct {
	DB *gorm.DB
}

func NewGormStatsStore(db *gorm.DB) *GormStatsStore {
	return &GormStatsStore{DB: db}
}

func (s *GormStatsStore) EnsureStats(userID string) (*models.UserStats, error) {
	var stats models.UserStats
	err := s.DB.Where("user_id = ?", userID).First(&stats).Error
	if err == gorm.ErrRecordNotFound {
		stats = models.UserStats{
			ID:                uuid.NewString(),
			UserID:            userID,
			Level:             1,
			UniqueGamesPlayed: models.StringSet{},
			CategoriesPlayed:  models.StringSet{},
			PlatformsPlayed:   models.StringSet{},
		}
		// Another request may have created the row in between; fall back to
		// reading it on a unique violation.
		if err := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&stats).Error; err != nil {
			return nil, storeErr(err)
		}
		if err := s.DB.Where("user_id = ?", userID).First(&stats).Error; err != nil {
			return nil, storeErr(err)
		}
		return &stats, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &stats, nil
}

func (s *GormStatsStore) IncrementCounters(userID string, deltas map[string]int64) error {
	if len(deltas) == 0 {
		return nil
	}
	updates := map[string]interface{}{}
	for column, delta := range deltas {
		updates[column] = gorm.Expr(column+" + ?", delta)
	}
	res := s.DB.Model(&models.UserStats{}).Where("user_id = ?", userID).Updates(updates)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	return nil
}

// AddToSet appends value to a jsonb array column unless it is already a
// member. The guarded append is one statement, so concurrent adds of the same
// value cannot duplicate it.
func (s *GormStatsStore) AddToSet(userID, column, value string) error {
	elem, err := json.Marshal([]string{value})
	if err != nil {
		return err
	}
	res := s.DB.Exec(
		`UPDATE user_stats
		 SET `+column+` = CASE WHEN `+column+` @> ?::jsonb THEN `+column+` ELSE `+column+` || ?::jsonb END
		 WHERE user_id = ?`,
		string(elem), string(elem), userID,
	)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	return nil
}

func (s *GormStatsStore) AwardXP(userID string, xp int64) (int64, error) {
	var stats models.UserStats
	res := s.DB.Model(&stats).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "total_xp"}}}).
		Where("user_id = ?", userID).
		Update("total_xp", gorm.Expr("total_xp + ?", xp))
	if res.Error != nil {
		return 0, storeErr(res.Error)
	}
	return stats.TotalXP, nil
}

func (s *GormStatsStore) SetLevel(userID string, level int, leveledUpAt *time.Time) error {
	updates := map[string]interface{}{"level": level}
	if leveledUpAt != nil {
		updates["last_level_up_at"] = *leveledUpAt
	}
	res := s.DB.Model(&models.UserStats{}).Where("user_id = ?", userID).Updates(updates)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	return nil
}

func (s *GormStatsStore) UpdateStreak(userID string, counterColumn, dateColumn string, streak int64, day time.Time) error {
	res := s.DB.Model(&models.UserStats{}).Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			counterColumn: streak,
			dateColumn:    day,
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	return nil
}

type GormAchievementStore struct {
	DB *gorm.DB
}

func NewGormAchievementStore(db *gorm.DB) *GormAchievementStore {
	return &GormAchievementStore{DB: db}
}

func (s *GormAchievementStore) EarnedIDs(userID string) (map[string]bool, error) {
	var ids []string
	if err := s.DB.Model(&models.EarnedAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error; err != nil {
		return nil, storeErr(err)
	}
	earned := make(map[string]bool, len(ids))
	for _, id := range ids {
		earned[id] = true
	}
	return earned, nil
}

func (s *GormAchievementStore) Append(rec *models.EarnedAchievement) error {
	if err := s.DB.Create(rec).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormAchievementStore) ListEarned(userID string) ([]models.EarnedAchievement, error) {
	var earned []models.EarnedAchievement
	if err := s.DB.Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&earned).Error; err != nil {
		return nil, storeErr(err)
	}
	return earned, nil
}

package services

import (
	"log"

	"gametribe-backend/models"

	"github.com/google/uuid"
)

// AchievementEngine evaluates a user's current stats against every unearned
// definition and persists newly satisfied ones.
type AchievementEngine struct {
	Stats        StatsStore
	Achievements AchievementStore
}

func NewAchievementEngine(stats StatsStore, achievements AchievementStore) *AchievementEngine {
	return &AchievementEngine{Stats: stats, Achievements: achievements}
}

// CheckAll loads one stats snapshot and the earned set, then evaluates every
// unearned catalog definition against that snapshot. All definitions are
// checked on every call — a single action can satisfy several at once.
// Idempotent: a second call with unchanged stats awards nothing.
func (e *AchievementEngine) CheckAll(userID string) ([]models.EarnedAchievement, error) {
	stats, err := e.Stats.EnsureStats(userID)
	if err != nil {
		return nil, err
	}
	earned, err := e.Achievements.EarnedIDs(userID)
	if err != nil {
		return nil, err
	}

	var newly []models.EarnedAchievement
	for _, def := range models.AchievementCatalog {
		if earned[def.ID] {
			continue
		}
		if !def.Condition.Met(stats) {
			continue
		}
		rec := models.EarnedAchievement{
			ID:            uuid.NewString(),
			UserID:        userID,
			AchievementID: def.ID,
			Name:          def.Name,
			Description:   def.Description,
			Rarity:        def.Rarity,
		}
		if err := e.Achievements.Append(&rec); err != nil {
			return newly, err
		}
		log.Printf("🏆 Achievement earned: %s → %s", def.ID, userID)
		newly = append(newly, rec)
	}
	return newly, nil
}

// CheckLoginStreak evaluates the fixed login-streak threshold table against
// the user's current streak. Same idempotency guarantee as CheckAll.
func (e *AchievementEngine) CheckLoginStreak(userID string) ([]models.EarnedAchievement, error) {
	stats, err := e.Stats.EnsureStats(userID)
	if err != nil {
		return nil, err
	}
	earned, err := e.Achievements.EarnedIDs(userID)
	if err != nil {
		return nil, err
	}

	var newly []models.EarnedAchievement
	for _, def := range models.LoginStreakCatalog {
		if earned[def.ID] {
			continue
		}
		if stats.LoginStreak < def.Days {
			continue
		}
		rec := models.EarnedAchievement{
			ID:            uuid.NewString(),
			UserID:        userID,
			AchievementID: def.ID,
			Name:          def.Name,
			Description:   def.Description,
			Rarity:        def.Rarity,
		}
		if err := e.Achievements.Append(&rec); err != nil {
			return newly, err
		}
		log.Printf("🏆 Achievement earned: %s → %s", def.ID, userID)
		newly = append(newly, rec)
	}
	return newly, nil
}

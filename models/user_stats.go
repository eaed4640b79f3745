package models

import (
	"time"

	"gorm.io/gorm"
)

// StringSet is a jsonb-backed set of identifiers. Sets only grow; membership
// writes go through the stats store so the append stays a single statement.
type StringSet []string

func (s StringSet) Has(v string) bool {
	for _, m := range s {
		if m == v {
			return true
		}
	}
	return false
}

func (s StringSet) Len() int {
	return len(s)
}

// UserStats tracks gamified activity for each user (denormalized for performance).
// One row per user, created lazily on first read/write, never deleted.
type UserStats struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"` // verified id forwarded by the gateway

	// Core progression. Level is derived from TotalXP and recomputed on every award.
	TotalXP int64 `json:"total_xp" gorm:"default:0"`
	Level   int   `json:"level" gorm:"default:1"`

	// Activity counters
	GamesPlayed    int64 `json:"games_played" gorm:"default:0"`
	TotalPlayTime  int64 `json:"total_play_time" gorm:"default:0"` // minutes
	CommentsCount  int64 `json:"comments_count" gorm:"default:0"`
	RatingsCount   int64 `json:"ratings_count" gorm:"default:0"`
	FavoritesCount int64 `json:"favorites_count" gorm:"default:0"`
	SharesCount    int64 `json:"shares_count" gorm:"default:0"`
	EarlyPlays     int64 `json:"early_plays" gorm:"default:0"` // plays before 09:00 local
	NightPlays     int64 `json:"night_plays" gorm:"default:0"` // plays at or after 22:00 local

	// Monotonically growing identifier sets
	UniqueGamesPlayed StringSet `json:"unique_games_played" gorm:"type:jsonb;serializer:json;default:'[]'"`
	CategoriesPlayed  StringSet `json:"categories_played" gorm:"type:jsonb;serializer:json;default:'[]'"`
	PlatformsPlayed   StringSet `json:"platforms_played" gorm:"type:jsonb;serializer:json;default:'[]'"`

	// Consecutive-day counters with reset-on-gap semantics
	LoginStreak   int64      `json:"login_streak" gorm:"default:0"`
	PlayStreak    int64      `json:"play_streak" gorm:"default:0"`
	LastLoginDate *time.Time `json:"last_login_date,omitempty"`
	LastPlayDate  *time.Time `json:"last_play_date,omitempty"`

	// Milestones
	LastLevelUpAt *time.Time `json:"last_level_up_at,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

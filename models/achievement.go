package models

import (
	"time"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// ConditionKind enumerates the stats field a threshold condition reads.
// A closed enum instead of string-keyed dispatch so a new kind without a
// corresponding Met case is caught by the exhaustive switch below.
type ConditionKind int

const (
	CondGamesPlayed ConditionKind = iota
	CondUniqueGamesPlayed
	CondTotalPlayTime
	CondCommentsCount
	CondRatingsCount
	CondFavoritesCount
	CondEarlyPlays
	CondNightPlays
	CondCategoriesPlayed
	CondPlatformsPlayed
)

// Condition is a tagged threshold predicate over UserStats.
type Condition struct {
	Kind      ConditionKind
	Threshold int64
}

// Met reports whether the condition holds for the given stats snapshot.
func (c Condition) Met(stats *UserStats) bool {
	switch c.Kind {
	case CondGamesPlayed:
		return stats.GamesPlayed >= c.Threshold
	case CondUniqueGamesPlayed:
		return int64(stats.UniqueGamesPlayed.Len()) >= c.Threshold
	case CondTotalPlayTime:
		return stats.TotalPlayTime >= c.Threshold
	case CondCommentsCount:
		return stats.CommentsCount >= c.Threshold
	case CondRatingsCount:
		return stats.RatingsCount >= c.Threshold
	case CondFavoritesCount:
		return stats.FavoritesCount >= c.Threshold
	case CondEarlyPlays:
		return stats.EarlyPlays >= c.Threshold
	case CondNightPlays:
		return stats.NightPlays >= c.Threshold
	case CondCategoriesPlayed:
		return int64(stats.CategoriesPlayed.Len()) >= c.Threshold
	case CondPlatformsPlayed:
		return int64(stats.PlatformsPlayed.Len()) >= c.Threshold
	}
	return false
}

// AchievementDefinition: static catalog entry, never persisted per-user.
type AchievementDefinition struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Rarity      Rarity    `json:"rarity"`
	Condition   Condition `json:"-"`
}

// AchievementCatalog is the immutable stat-threshold catalog, loaded at process start.
var AchievementCatalog = []AchievementDefinition{
	{
		ID:          "first_play",
		Name:        "First Play",
		Description: "Played your first game",
		Rarity:      RarityCommon,
		Condition:   Condition{Kind: CondGamesPlayed, Threshold: 1},
	},
	{
		ID:          "dedicated_player",
		Name:        "Dedicated Player",
		Description: "Played games 50 times",
		Rarity:      RarityRare,
		Condition:   Condition{Kind: CondGamesPlayed, Threshold: 50},
	},
	{
		ID:          "game_master",
		Name:        "Game Master",
		Description: "Played games 500 times",
		Rarity:      RarityLegendary,
		Condition:   Condition{Kind: CondGamesPlayed, Threshold: 500},
	},
	{
		ID:          "explorer",
		Name:        "Explorer",
		Description: "Played 10 different games",
		Rarity:      RarityRare,
		Condition:   Condition{Kind: CondUniqueGamesPlayed, Threshold: 10},
	},
	{
		ID:          "marathon_gamer",
		Name:        "Marathon Gamer",
		Description: "Racked up 50 hours of play time",
		Rarity:      RarityEpic,
		Condition:   Condition{Kind: CondTotalPlayTime, Threshold: 3000},
	},
	{
		ID:          "social_butterfly",
		Name:        "Social Butterfly",
		Description: "Left 25 comments",
		Rarity:      RarityRare,
		Condition:   Condition{Kind: CondCommentsCount, Threshold: 25},
	},
	{
		ID:          "critic",
		Name:        "Critic",
		Description: "Rated 50 games",
		Rarity:      RarityEpic,
		Condition:   Condition{Kind: CondRatingsCount, Threshold: 50},
	},
	{
		ID:          "collector",
		Name:        "Collector",
		Description: "Favorited 25 games",
		Rarity:      RarityRare,
		Condition:   Condition{Kind: CondFavoritesCount, Threshold: 25},
	},
	{
		ID:          "early_bird",
		Name:        "Early Bird",
		Description: "Played 10 games before 9 AM",
		Rarity:      RarityRare,
		Condition:   Condition{Kind: CondEarlyPlays, Threshold: 10},
	},
	{
		ID:          "night_owl",
		Name:        "Night Owl",
		Description: "Played 10 games after 10 PM",
		Rarity:      RarityRare,
		Condition:   Condition{Kind: CondNightPlays, Threshold: 10},
	},
	{
		ID:          "category_master",
		Name:        "Category Master",
		Description: "Played games from 5 categories",
		Rarity:      RarityEpic,
		Condition:   Condition{Kind: CondCategoriesPlayed, Threshold: 5},
	},
	{
		ID:          "platform_hopper",
		Name:        "Platform Hopper",
		Description: "Played on 3 different platforms",
		Rarity:      RarityRare,
		Condition:   Condition{Kind: CondPlatformsPlayed, Threshold: 3},
	},
}

// LoginStreakAchievement is evaluated against LoginStreak only, separately
// from the stat-threshold catalog.
type LoginStreakAchievement struct {
	Days        int64
	ID          string
	Name        string
	Description string
	Rarity      Rarity
}

var LoginStreakCatalog = []LoginStreakAchievement{
	{Days: 3, ID: "getting_started", Name: "Getting Started", Description: "Logged in 3 days in a row", Rarity: RarityCommon},
	{Days: 7, ID: "week_warrior", Name: "Week Warrior", Description: "Logged in 7 days in a row", Rarity: RarityRare},
	{Days: 30, ID: "monthly_master", Name: "Monthly Master", Description: "Logged in 30 days in a row", Rarity: RarityEpic},
	{Days: 100, ID: "centurion", Name: "Centurion", Description: "Logged in 100 days in a row", Rarity: RarityLegendary},
}

// EarnedAchievement: awarded instance, append-only. At most one row per
// (user, achievement) pair — enforced by the unique index and checked by the
// engine before insert.
type EarnedAchievement struct {
	ID            string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID        string    `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID string    `gorm:"not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `json:"description"`
	Rarity        Rarity    `gorm:"type:varchar(16);default:'common'" json:"rarity"`
	EarnedAt      time.Time `gorm:"autoCreateTime" json:"earned_at"`
}

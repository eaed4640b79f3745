package services

import (
	"log"
)

// Privileges are derived limits and flags, recomputed per request and never
// persisted.
type Privileges struct {
	FavoritesLimit      int      `json:"favorites_limit"`
	CommentLengthLimit  int      `json:"comment_length_limit"`
	BioLengthLimit      int      `json:"bio_length_limit"`
	DownloadPriority    string   `json:"download_priority"`
	IsFeatured          bool     `json:"is_featured"`
	CanAccessPremium    bool     `json:"can_access_premium"`
	CanAccessExclusive  bool     `json:"can_access_exclusive"`
	CanAccessAllPremium bool     `json:"can_access_all_premium"`
	Level               int      `json:"level"`
	LevelTier           string   `json:"level_tier"`
	Achievements        []string `json:"achievements"`
}

// DefaultPrivileges: every limit at its lowest tier. Returned when the
// resolver cannot read the store — privilege computation guards UX, not
// correctness-critical state.
func DefaultPrivileges() Privileges {
	return Privileges{
		FavoritesLimit:     50,
		CommentLengthLimit: 500,
		BioLengthLimit:     200,
		DownloadPriority:   "normal",
		Level:              1,
		LevelTier:          LevelTier(1),
		Achievements:       []string{},
	}
}

// ResolvePrivileges derives privileges from a pre-fetched level and earned
// achievement id set. Pure: no reads, no writes. Where several achievements
// unlock tiers of the same limit, the highest tier wins outright
// (critic > collector, critic > social_butterfly, explorer > social_butterfly,
// critic > marathon_gamer).
func ResolvePrivileges(level int, achievementIDs []string) Privileges {
	has := make(map[string]bool, len(achievementIDs))
	for _, id := range achievementIDs {
		has[id] = true
	}

	p := DefaultPrivileges()
	p.Level = level
	p.LevelTier = LevelTier(level)
	p.Achievements = achievementIDs
	if p.Achievements == nil {
		p.Achievements = []string{}
	}

	switch {
	case has["critic"]:
		p.FavoritesLimit = 200
	case has["collector"]:
		p.FavoritesLimit = 100
	}

	switch {
	case has["critic"]:
		p.CommentLengthLimit = 2000
	case has["social_butterfly"]:
		p.CommentLengthLimit = 1000
	}

	switch {
	case has["explorer"]:
		p.BioLengthLimit = 1000
	case has["social_butterfly"]:
		p.BioLengthLimit = 500
	}

	switch {
	case has["critic"]:
		p.DownloadPriority = "instant"
	case has["marathon_gamer"]:
		p.DownloadPriority = "priority"
	}

	p.IsFeatured = has["category_master"] || has["platform_hopper"]

	p.CanAccessPremium = level >= 50
	p.CanAccessExclusive = level >= 100
	p.CanAccessAllPremium = level >= 150

	return p
}

// PrivilegeResolver fetches the level and earned set for a user and derives
// privileges. Read-only; holds no state of its own.
type PrivilegeResolver struct {
	Stats        StatsStore
	Achievements AchievementStore
}

func NewPrivilegeResolver(stats StatsStore, achievements AchievementStore) *PrivilegeResolver {
	return &PrivilegeResolver{Stats: stats, Achievements: achievements}
}

// Resolve computes fresh privileges for the user. Store failures degrade to
// DefaultPrivileges instead of failing the request.
func (r *PrivilegeResolver) Resolve(userID string) Privileges {
	stats, err := r.Stats.EnsureStats(userID)
	if err != nil {
		log.Printf("⚠️ privileges: stats fetch failed for %s, using defaults: %v", userID, err)
		return DefaultPrivileges()
	}
	earned, err := r.Achievements.EarnedIDs(userID)
	if err != nil {
		log.Printf("⚠️ privileges: achievements fetch failed for %s, using defaults: %v", userID, err)
		return DefaultPrivileges()
	}
	ids := make([]string, 0, len(earned))
	for id := range earned {
		ids = append(ids, id)
	}
	return ResolvePrivileges(stats.Level, ids)
}

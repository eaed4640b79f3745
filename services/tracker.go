package services

import (
	"context"
	"log"
	"time"

	"gametribe-backend/models"

	"github.com/gosimple/slug"
)

// XP awarded per action. Favorites, logins and shares at 2-and-below are the
// engagement tail; play is the dominant value.
const (
	XPPlayGame = 10
	XPRateGame = 5
	XPComment  = 3
	XPShare    = 2
)

// TrackResult describes the outcome of an XP-bearing action.
type TrackResult struct {
	XPEarned        int64                      `json:"xp_earned"`
	NewTotalXP      int64                      `json:"new_total_xp"`
	OldLevel        int                        `json:"old_level"`
	NewLevel        int                        `json:"new_level"`
	LeveledUp       bool                       `json:"leveled_up"`
	NewAchievements []models.EarnedAchievement `json:"new_achievements,omitempty"`

	// AchievementCheckFailed is set when the stats write succeeded but the
	// follow-up achievement check did not. The action itself is recorded.
	AchievementCheckFailed bool `json:"-"`
}

// LoginResult describes a daily-login action.
type LoginResult struct {
	AlreadyDone     bool                       `json:"already_done"`
	LoginStreak     int64                      `json:"login_streak"`
	NewAchievements []models.EarnedAchievement `json:"new_achievements,omitempty"`

	AchievementCheckFailed bool `json:"-"`
}

// PlayInput describes one game-play action.
type PlayInput struct {
	GameID   string
	Category string // optional, normalized to a slug before entering the set
	Platform string // optional, same
	Minutes  int64  // optional play time for this session
}

// ActionTracker is the mutation surface for all tracked user actions.
// Each action: mutate stats → award XP → recompute level → check achievements.
// The stats write is the correctness-critical step; achievement and
// leaderboard updates after a successful write are best-effort.
type ActionTracker struct {
	Stats       StatsStore
	Engine      *AchievementEngine
	Leaderboard *LeaderboardService // optional
	Sessions    SessionRecorder     // optional

	// now is injectable for streak/time-of-day tests; defaults to time.Now.
	now func() time.Time
}

// SessionRecorder receives play sessions for retention analytics.
type SessionRecorder interface {
	RecordSession(userID, gameID string, minutes int64, playedAt time.Time) error
}

func NewActionTracker(stats StatsStore, engine *AchievementEngine, leaderboard *LeaderboardService, sessions SessionRecorder) *ActionTracker {
	return &ActionTracker{
		Stats:       stats,
		Engine:      engine,
		Leaderboard: leaderboard,
		Sessions:    sessions,
		now:         time.Now,
	}
}

// TrackGamePlay records one play of a game.
func (t *ActionTracker) TrackGamePlay(userID string, in PlayInput) (*TrackResult, error) {
	if userID == "" || in.GameID == "" {
		return nil, ErrInvalidInput
	}

	stats, err := t.Stats.EnsureStats(userID)
	if err != nil {
		return nil, err
	}

	now := t.now()
	deltas := map[string]int64{colGamesPlayed: 1}
	if now.Hour() < 9 {
		deltas[colEarlyPlays] = 1
	}
	if now.Hour() >= 22 {
		deltas[colNightPlays] = 1
	}
	if in.Minutes > 0 {
		deltas[colTotalPlayTime] = in.Minutes
	}
	if err := t.Stats.IncrementCounters(userID, deltas); err != nil {
		return nil, err
	}

	if err := t.Stats.AddToSet(userID, colUniqueGames, in.GameID); err != nil {
		return nil, err
	}
	if in.Category != "" {
		if err := t.Stats.AddToSet(userID, colCategories, slug.Make(in.Category)); err != nil {
			return nil, err
		}
	}
	if in.Platform != "" {
		if err := t.Stats.AddToSet(userID, colPlatforms, slug.Make(in.Platform)); err != nil {
			return nil, err
		}
	}

	// Streak counter stays put on a same-day replay; the play itself still
	// counted above.
	if streak, changed := nextStreak(stats.PlayStreak, stats.LastPlayDate, now); changed {
		if err := t.Stats.UpdateStreak(userID, colPlayStreak, colLastPlayDate, streak, dateOnly(now)); err != nil {
			return nil, err
		}
	}

	if t.Sessions != nil && in.Minutes > 0 {
		if err := t.Sessions.RecordSession(userID, in.GameID, in.Minutes, now); err != nil {
			log.Printf("⚠️ session record failed for %s: %v", userID, err)
		}
	}

	return t.finishAction(userID, stats, XPPlayGame)
}

// TrackRating records one game rating.
func (t *ActionTracker) TrackRating(userID string) (*TrackResult, error) {
	return t.trackCounter(userID, colRatingsCount, XPRateGame)
}

// TrackComment records one comment.
func (t *ActionTracker) TrackComment(userID string) (*TrackResult, error) {
	return t.trackCounter(userID, colCommentsCount, XPComment)
}

// TrackFavorite records one favorite. No XP, but the achievement check still runs.
func (t *ActionTracker) TrackFavorite(userID string) (*TrackResult, error) {
	return t.trackCounter(userID, colFavoritesCount, 0)
}

// TrackShare records one share.
func (t *ActionTracker) TrackShare(userID string) (*TrackResult, error) {
	return t.trackCounter(userID, colSharesCount, XPShare)
}

func (t *ActionTracker) trackCounter(userID, column string, xp int64) (*TrackResult, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	stats, err := t.Stats.EnsureStats(userID)
	if err != nil {
		return nil, err
	}
	if err := t.Stats.IncrementCounters(userID, map[string]int64{column: 1}); err != nil {
		return nil, err
	}
	return t.finishAction(userID, stats, xp)
}

// TrackLogin records a daily login. A second login on the same calendar day
// short-circuits the whole action.
func (t *ActionTracker) TrackLogin(userID string) (*LoginResult, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	stats, err := t.Stats.EnsureStats(userID)
	if err != nil {
		return nil, err
	}

	now := t.now()
	streak, changed := nextStreak(stats.LoginStreak, stats.LastLoginDate, now)
	if !changed {
		return &LoginResult{AlreadyDone: true, LoginStreak: stats.LoginStreak}, nil
	}
	if err := t.Stats.UpdateStreak(userID, colLoginStreak, colLastLoginDate, streak, dateOnly(now)); err != nil {
		return nil, err
	}

	res := &LoginResult{LoginStreak: streak}
	newly, err := t.Engine.CheckLoginStreak(userID)
	if err != nil {
		log.Printf("⚠️ login streak achievement check failed for %s: %v", userID, err)
		res.AchievementCheckFailed = true
		return res, nil
	}
	res.NewAchievements = newly
	return res, nil
}

// finishAction awards XP, recomputes and persists the level, pushes the
// leaderboard score and runs the achievement check. The stats mutation has
// already succeeded, so failures past this point must not lose it: the
// achievement check degrades to a warning on the result.
func (t *ActionTracker) finishAction(userID string, stats *models.UserStats, xp int64) (*TrackResult, error) {
	oldLevel := stats.Level
	res := &TrackResult{XPEarned: xp, NewTotalXP: stats.TotalXP, OldLevel: oldLevel, NewLevel: oldLevel}

	if xp > 0 {
		newTotal, err := t.Stats.AwardXP(userID, xp)
		if err != nil {
			return nil, err
		}
		res.NewTotalXP = newTotal
		res.NewLevel = LevelFromXP(newTotal)
		res.LeveledUp = res.NewLevel > oldLevel

		var leveledUpAt *time.Time
		if res.LeveledUp {
			now := t.now()
			leveledUpAt = &now
			log.Printf("🎮 Level up: %s → Lvl %d (%s)", userID, res.NewLevel, LevelTier(res.NewLevel))
		}
		if err := t.Stats.SetLevel(userID, res.NewLevel, leveledUpAt); err != nil {
			return nil, err
		}

		if t.Leaderboard != nil {
			if err := t.Leaderboard.RecordScore(context.Background(), userID, newTotal); err != nil {
				log.Printf("⚠️ leaderboard push failed for %s: %v", userID, err)
			}
		}
	}

	newly, err := t.Engine.CheckAll(userID)
	if err != nil {
		log.Printf("⚠️ achievement check failed for %s: %v", userID, err)
		res.AchievementCheckFailed = true
		return res, nil
	}
	res.NewAchievements = newly
	return res, nil
}

// nextStreak applies the consecutive-day rule: first-ever → 1, same day → no
// change, exactly yesterday → +1, longer gap → reset to 1.
func nextStreak(current int64, last *time.Time, now time.Time) (streak int64, changed bool) {
	today := dateOnly(now)
	if last == nil {
		return 1, true
	}
	lastDay := dateOnly(*last)
	switch {
	case lastDay.Equal(today):
		return current, false
	case lastDay.Equal(today.AddDate(0, 0, -1)):
		return current + 1, true
	default:
		return 1, true
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package services

import (
	"errors"
	"time"

	"gametribe-backend/models"
)

// In-memory stand-ins for the document store, with switchable failure modes
// so error paths can be exercised without a database.

type fakeStatsStore struct {
	stats map[string]*models.UserStats

	failEnsure    bool
	failIncrement bool
	failAwardXP   bool
}

func newFakeStatsStore() *fakeStatsStore {
	return &fakeStatsStore{stats: map[string]*models.UserStats{}}
}

var errFakeDown = errors.New("fake store down")

func (f *fakeStatsStore) EnsureStats(userID string) (*models.UserStats, error) {
	if f.failEnsure {
		return nil, storeErr(errFakeDown)
	}
	st, ok := f.stats[userID]
	if !ok {
		st = &models.UserStats{
			ID:                "stats-" + userID,
			UserID:            userID,
			Level:             1,
			UniqueGamesPlayed: models.StringSet{},
			CategoriesPlayed:  models.StringSet{},
			PlatformsPlayed:   models.StringSet{},
		}
		f.stats[userID] = st
	}
	snapshot := *st
	return &snapshot, nil
}

func (f *fakeStatsStore) IncrementCounters(userID string, deltas map[string]int64) error {
	if f.failIncrement {
		return storeErr(errFakeDown)
	}
	st := f.stats[userID]
	for column, delta := range deltas {
		switch column {
		case colGamesPlayed:
			st.GamesPlayed += delta
		case colTotalPlayTime:
			st.TotalPlayTime += delta
		case colCommentsCount:
			st.CommentsCount += delta
		case colRatingsCount:
			st.RatingsCount += delta
		case colFavoritesCount:
			st.FavoritesCount += delta
		case colSharesCount:
			st.SharesCount += delta
		case colEarlyPlays:
			st.EarlyPlays += delta
		case colNightPlays:
			st.NightPlays += delta
		}
	}
	return nil
}

func (f *fakeStatsStore) AddToSet(userID, column, value string) error {
	st := f.stats[userID]
	add := func(set models.StringSet) models.StringSet {
		if set.Has(value) {
			return set
		}
		return append(set, value)
	}
	switch column {
	case colUniqueGames:
		st.UniqueGamesPlayed = add(st.UniqueGamesPlayed)
	case colCategories:
		st.CategoriesPlayed = add(st.CategoriesPlayed)
	case colPlatforms:
		st.PlatformsPlayed = add(st.PlatformsPlayed)
	}
	return nil
}

func (f *fakeStatsStore) AwardXP(userID string, xp int64) (int64, error) {
	if f.failAwardXP {
		return 0, storeErr(errFakeDown)
	}
	st := f.stats[userID]
	st.TotalXP += xp
	return st.TotalXP, nil
}

func (f *fakeStatsStore) SetLevel(userID string, level int, leveledUpAt *time.Time) error {
	st := f.stats[userID]
	st.Level = level
	if leveledUpAt != nil {
		st.LastLevelUpAt = leveledUpAt
	}
	return nil
}

func (f *fakeStatsStore) UpdateStreak(userID string, counterColumn, dateColumn string, streak int64, day time.Time) error {
	st := f.stats[userID]
	switch counterColumn {
	case colPlayStreak:
		st.PlayStreak = streak
	case colLoginStreak:
		st.LoginStreak = streak
	}
	d := day
	switch dateColumn {
	case colLastPlayDate:
		st.LastPlayDate = &d
	case colLastLoginDate:
		st.LastLoginDate = &d
	}
	return nil
}

type fakeAchievementStore struct {
	earned map[string][]models.EarnedAchievement

	failEarnedIDs bool
	failAppend    bool
}

func newFakeAchievementStore() *fakeAchievementStore {
	return &fakeAchievementStore{earned: map[string][]models.EarnedAchievement{}}
}

func (f *fakeAchievementStore) EarnedIDs(userID string) (map[string]bool, error) {
	if f.failEarnedIDs {
		return nil, storeErr(errFakeDown)
	}
	ids := map[string]bool{}
	for _, rec := range f.earned[userID] {
		ids[rec.AchievementID] = true
	}
	return ids, nil
}

func (f *fakeAchievementStore) Append(rec *models.EarnedAchievement) error {
	if f.failAppend {
		return storeErr(errFakeDown)
	}
	f.earned[rec.UserID] = append(f.earned[rec.UserID], *rec)
	return nil
}

func (f *fakeAchievementStore) ListEarned(userID string) ([]models.EarnedAchievement, error) {
	if f.failEarnedIDs {
		return nil, storeErr(errFakeDown)
	}
	return f.earned[userID], nil
}

func (f *fakeAchievementStore) has(userID, achievementID string) bool {
	for _, rec := range f.earned[userID] {
		if rec.AchievementID == achievementID {
			return true
		}
	}
	return false
}

func containsAchievement(recs []models.EarnedAchievement, id string) bool {
	for _, rec := range recs {
		if rec.AchievementID == id {
			return true
		}
	}
	return false
}

package services

import (
	"testing"
)

func newTestEngine() (*AchievementEngine, *fakeStatsStore, *fakeAchievementStore) {
	stats := newFakeStatsStore()
	achievements := newFakeAchievementStore()
	return NewAchievementEngine(stats, achievements), stats, achievements
}

func TestCheckAllIdempotent(t *testing.T) {
	engine, stats, _ := newTestEngine()
	if _, err := stats.EnsureStats("u1"); err != nil {
		t.Fatal(err)
	}
	stats.stats["u1"].GamesPlayed = 1

	first, err := engine.CheckAll("u1")
	if err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
	if !containsAchievement(first, "first_play") {
		t.Fatalf("first CheckAll=%v, want first_play", first)
	}

	second, err := engine.CheckAll("u1")
	if err != nil {
		t.Fatalf("second CheckAll: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("second CheckAll with unchanged stats awarded %v, want none", second)
	}
}

func TestCheckAllAwardsMultipleAtOnce(t *testing.T) {
	engine, stats, _ := newTestEngine()
	if _, err := stats.EnsureStats("u1"); err != nil {
		t.Fatal(err)
	}
	st := stats.stats["u1"]
	st.GamesPlayed = 60
	st.UniqueGamesPlayed = []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	st.RatingsCount = 50

	newly, err := engine.CheckAll("u1")
	if err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
	for _, want := range []string{"first_play", "dedicated_player", "explorer", "critic"} {
		if !containsAchievement(newly, want) {
			t.Errorf("missing %s in %v", want, newly)
		}
	}
	if containsAchievement(newly, "game_master") {
		t.Error("game_master awarded below its threshold")
	}
}

func TestCheckLoginStreakThresholds(t *testing.T) {
	cases := []struct {
		streak int64
		want   []string
		not    []string
	}{
		{2, nil, []string{"getting_started"}},
		{3, []string{"getting_started"}, []string{"week_warrior"}},
		{7, []string{"getting_started", "week_warrior"}, []string{"monthly_master"}},
		{100, []string{"getting_started", "week_warrior", "monthly_master", "centurion"}, nil},
	}
	for _, tc := range cases {
		engine, stats, _ := newTestEngine()
		if _, err := stats.EnsureStats("u1"); err != nil {
			t.Fatal(err)
		}
		stats.stats["u1"].LoginStreak = tc.streak

		newly, err := engine.CheckLoginStreak("u1")
		if err != nil {
			t.Fatalf("streak %d: %v", tc.streak, err)
		}
		for _, id := range tc.want {
			if !containsAchievement(newly, id) {
				t.Errorf("streak %d: missing %s", tc.streak, id)
			}
		}
		for _, id := range tc.not {
			if containsAchievement(newly, id) {
				t.Errorf("streak %d: %s awarded too early", tc.streak, id)
			}
		}
	}
}

func TestCheckLoginStreakIdempotent(t *testing.T) {
	engine, stats, _ := newTestEngine()
	if _, err := stats.EnsureStats("u1"); err != nil {
		t.Fatal(err)
	}
	stats.stats["u1"].LoginStreak = 7

	if _, err := engine.CheckLoginStreak("u1"); err != nil {
		t.Fatal(err)
	}
	again, err := engine.CheckLoginStreak("u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Errorf("second CheckLoginStreak awarded %v, want none", again)
	}
}

func TestCheckAllPropagatesStoreErrors(t *testing.T) {
	engine, stats, achievements := newTestEngine()
	if _, err := stats.EnsureStats("u1"); err != nil {
		t.Fatal(err)
	}
	achievements.failEarnedIDs = true
	if _, err := engine.CheckAll("u1"); err == nil {
		t.Error("expected error when the earned-set read fails")
	}
}

package services

import (
	"testing"
)

func TestPrivilegePrecedence(t *testing.T) {
	cases := []struct {
		name         string
		achievements []string
		check        func(t *testing.T, p Privileges)
	}{
		{
			name:         "critic beats collector on favorites",
			achievements: []string{"collector", "critic"},
			check: func(t *testing.T, p Privileges) {
				if p.FavoritesLimit != 200 {
					t.Errorf("FavoritesLimit=%d, want 200", p.FavoritesLimit)
				}
			},
		},
		{
			name:         "collector alone",
			achievements: []string{"collector"},
			check: func(t *testing.T, p Privileges) {
				if p.FavoritesLimit != 100 {
					t.Errorf("FavoritesLimit=%d, want 100", p.FavoritesLimit)
				}
			},
		},
		{
			name:         "critic beats social_butterfly on comment length",
			achievements: []string{"social_butterfly", "critic"},
			check: func(t *testing.T, p Privileges) {
				if p.CommentLengthLimit != 2000 {
					t.Errorf("CommentLengthLimit=%d, want 2000", p.CommentLengthLimit)
				}
			},
		},
		{
			name:         "explorer beats social_butterfly on bio length",
			achievements: []string{"social_butterfly", "explorer"},
			check: func(t *testing.T, p Privileges) {
				if p.BioLengthLimit != 1000 {
					t.Errorf("BioLengthLimit=%d, want 1000", p.BioLengthLimit)
				}
				if p.CommentLengthLimit != 1000 {
					t.Errorf("CommentLengthLimit=%d, want 1000", p.CommentLengthLimit)
				}
			},
		},
		{
			name:         "critic beats marathon_gamer on download priority",
			achievements: []string{"marathon_gamer", "critic"},
			check: func(t *testing.T, p Privileges) {
				if p.DownloadPriority != "instant" {
					t.Errorf("DownloadPriority=%q, want instant", p.DownloadPriority)
				}
			},
		},
		{
			name:         "marathon_gamer alone",
			achievements: []string{"marathon_gamer"},
			check: func(t *testing.T, p Privileges) {
				if p.DownloadPriority != "priority" {
					t.Errorf("DownloadPriority=%q, want priority", p.DownloadPriority)
				}
			},
		},
		{
			name:         "featured from category_master or platform_hopper",
			achievements: []string{"platform_hopper"},
			check: func(t *testing.T, p Privileges) {
				if !p.IsFeatured {
					t.Error("IsFeatured=false, want true")
				}
			},
		},
		{
			name:         "no achievements gives lowest tiers",
			achievements: nil,
			check: func(t *testing.T, p Privileges) {
				if p.FavoritesLimit != 50 || p.CommentLengthLimit != 500 || p.BioLengthLimit != 200 {
					t.Errorf("limits=%d/%d/%d, want 50/500/200", p.FavoritesLimit, p.CommentLengthLimit, p.BioLengthLimit)
				}
				if p.DownloadPriority != "normal" || p.IsFeatured {
					t.Errorf("priority=%q featured=%t, want normal/false", p.DownloadPriority, p.IsFeatured)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, ResolvePrivileges(5, tc.achievements))
		})
	}
}

func TestPrivilegeLevelGates(t *testing.T) {
	cases := []struct {
		level               int
		premium, exclusive  bool
		allPremium          bool
	}{
		{49, false, false, false},
		{50, true, false, false},
		{99, true, false, false},
		{100, true, true, false},
		{150, true, true, true},
	}
	for _, tc := range cases {
		p := ResolvePrivileges(tc.level, nil)
		if p.CanAccessPremium != tc.premium || p.CanAccessExclusive != tc.exclusive || p.CanAccessAllPremium != tc.allPremium {
			t.Errorf("level %d: premium=%t exclusive=%t all=%t, want %t/%t/%t",
				tc.level, p.CanAccessPremium, p.CanAccessExclusive, p.CanAccessAllPremium,
				tc.premium, tc.exclusive, tc.allPremium)
		}
	}
}

func TestResolverDegradesToDefaults(t *testing.T) {
	stats := newFakeStatsStore()
	achievements := newFakeAchievementStore()
	resolver := NewPrivilegeResolver(stats, achievements)

	stats.failEnsure = true
	p := resolver.Resolve("u1")
	if p.FavoritesLimit != 50 || p.Level != 1 || p.LevelTier != "Novice" {
		t.Errorf("degraded privileges=%+v, want defaults", p)
	}

	stats.failEnsure = false
	achievements.failEarnedIDs = true
	p = resolver.Resolve("u1")
	if p.FavoritesLimit != 50 {
		t.Errorf("degraded privileges=%+v, want defaults", p)
	}
}

func TestResolverReadsStore(t *testing.T) {
	stats := newFakeStatsStore()
	achievements := newFakeAchievementStore()
	resolver := NewPrivilegeResolver(stats, achievements)

	if _, err := stats.EnsureStats("u1"); err != nil {
		t.Fatal(err)
	}
	stats.stats["u1"].Level = 60
	engine := NewAchievementEngine(stats, achievements)
	stats.stats["u1"].RatingsCount = 50
	if _, err := engine.CheckAll("u1"); err != nil {
		t.Fatal(err)
	}

	p := resolver.Resolve("u1")
	if p.Level != 60 || p.LevelTier != "Master" {
		t.Errorf("level=%d tier=%q, want 60/Master", p.Level, p.LevelTier)
	}
	if p.FavoritesLimit != 200 || p.DownloadPriority != "instant" {
		t.Errorf("critic privileges not applied: %+v", p)
	}
	if !p.CanAccessPremium || p.CanAccessExclusive {
		t.Errorf("level gates wrong at 60: %+v", p)
	}
}

package services

import (
	"math"
)

// LevelConfig: XP threshold curve is XP_req(n) = floor(100 * n^1.5)
const BaseXPPerLevel = 100

// XPForLevel returns the total XP required to hold the given level.
// Level 1 is free.
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	return int64(math.Floor(float64(BaseXPPerLevel) * math.Pow(float64(level), 1.5)))
}

// LevelFromXP returns the largest level whose threshold does not exceed totalXP.
// Walks upward from 1; the curve is strictly increasing so this terminates.
func LevelFromXP(totalXP int64) int {
	level := 1
	for XPForLevel(level+1) <= totalXP {
		level++
	}
	return level
}

// LevelTier buckets a level into its display tier.
func LevelTier(level int) string {
	switch {
	case level <= 10:
		return "Novice"
	case level <= 25:
		return "Gamer"
	case level <= 50:
		return "Pro"
	case level <= 100:
		return "Master"
	default:
		return "Legend"
	}
}

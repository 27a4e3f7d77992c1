package progression

import "math"

// xpPerLevelUnit is the divisor inside the level curve: level = floor(sqrt(xp/100)) + 1.
const xpPerLevelUnit = 100.0

// LevelForXP returns the level for a lifetime XP total, capped at maxLevel.
// The result depends on xp alone, so recomputing it is always safe.
func LevelForXP(xp, maxLevel int) int {
	if xp < 0 {
		xp = 0
	}
	level := int(math.Floor(math.Sqrt(float64(xp)/xpPerLevelUnit))) + 1
	if maxLevel > 0 && level > maxLevel {
		return maxLevel
	}
	return level
}

// XPForLevel returns the minimum XP at which level is reached.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	n := level - 1
	return n * n * int(xpPerLevelUnit)
}

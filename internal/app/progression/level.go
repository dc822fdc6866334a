package progression

// levelThresholds is the cumulative XP required to reach each level.
// Index i holds the threshold for level i+1, so level 1 costs 0 XP.
// Past the last entry, each further level costs a flat increment.
var levelThresholds = []int64{0, 100, 250, 450, 700, 1000, 1400, 1900, 2500, 3200}

// xpPerExtraLevel is the flat cost of every level beyond the table.
const xpPerExtraLevel int64 = 1000

// XPForLevel returns the cumulative XP required to reach a given level.
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	if level <= len(levelThresholds) {
		return levelThresholds[level-1]
	}
	last := levelThresholds[len(levelThresholds)-1]
	return last + int64(level-len(levelThresholds))*xpPerExtraLevel
}

// LevelForXP returns the level for a given XP amount. Monotone in xp,
// always >= 1.
func LevelForXP(xp int64) int {
	if xp < 0 {
		return 1
	}
	level := 1
	for xp >= XPForLevel(level+1) {
		level++
	}
	return level
}

// XPToNextLevel returns XP remaining until the next level, floored at 0.
func XPToNextLevel(xp int64) int64 {
	if xp < 0 {
		xp = 0
	}
	level := LevelForXP(xp)
	remaining := XPForLevel(level+1) - xp
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

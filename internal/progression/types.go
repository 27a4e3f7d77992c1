package progression

import (
	"time"

	"github.com/gokatarajesh/timerift/internal/session"
)

// Progress is the durable player record. Field names match the persisted JSON.
type Progress struct {
	Level                int       `json:"level"`
	XP                   int       `json:"xp"`
	TotalAnswered        int       `json:"totalAnswered"`
	CorrectCount         int       `json:"correctCount"`
	MaxCombo             int       `json:"maxCombo"`
	UnlockedAchievements []string  `json:"unlockedAchievements"`
	LastPlayDate         time.Time `json:"lastPlayDate"`
	TotalCoins           int       `json:"totalCoins"`
}

// Clone returns a deep copy safe to hand out.
func (p Progress) Clone() Progress {
	out := p
	out.UnlockedAchievements = append([]string{}, p.UnlockedAchievements...)
	return out
}

// HasAchievement reports whether id is already unlocked.
func (p Progress) HasAchievement(id string) bool {
	for _, got := range p.UnlockedAchievements {
		if got == id {
			return true
		}
	}
	return false
}

// Accuracy is correctCount over totalAnswered, 0 when nothing was answered.
func (p Progress) Accuracy() float64 {
	if p.TotalAnswered == 0 {
		return 0
	}
	return float64(p.CorrectCount) / float64(p.TotalAnswered)
}

// Outcome is returned by UpdateAfterSession for display.
type Outcome struct {
	LeveledUp       bool          `json:"leveledUp"`
	PreviousLevel   int           `json:"previousLevel"`
	Level           int           `json:"level"`
	XPGained        int           `json:"xpGained"`
	NewAchievements []Achievement `json:"newAchievements"`
}

// Config holds the progression constants.
type Config struct {
	InitialHealth int
	XPPerCorrect  int
	MaxLevel      int
}

// DefaultConfig returns the reference constants.
func DefaultConfig() Config {
	return Config{InitialHealth: 3, XPPerCorrect: 25, MaxLevel: 100}
}

// Predicate decides an achievement. stats is nil when evaluated outside a session end.
type Predicate func(p Progress, stats *session.Stats, cfg Config) bool

package progression

import "github.com/gokatarajesh/timerift/internal/session"

// Achievement identifiers. They are stored in saved records, so they never change.
const (
	AchievementApprentice = "a1"
	AchievementStreak     = "a2"
	AchievementFast       = "a3"
	AchievementFlawless   = "a4"
)

// Achievement is a static badge definition.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Condition   Predicate `json:"-"`
}

// Catalog returns the achievements in evaluation order.
func Catalog() []Achievement {
	return []Achievement{
		{
			ID:          AchievementApprentice,
			Title:       "World History Apprentice",
			Description: "Answer 10 questions correctly in total",
			Icon:        "🌍",
			Condition: func(p Progress, _ *session.Stats, _ Config) bool {
				return p.CorrectCount >= 10
			},
		},
		{
			ID:          AchievementStreak,
			Title:       "Cold War Observer",
			Description: "Answer 3 questions correctly in a row",
			Icon:        "📡",
			Condition: func(_ Progress, s *session.Stats, _ Config) bool {
				return s != nil && s.MaxCombo >= 3
			},
		},
		{
			ID:          AchievementFast,
			Title:       "Industrial Tycoon",
			Description: "Average under 4 seconds per answer",
			Icon:        "⚙️",
			Condition: func(_ Progress, s *session.Stats, _ Config) bool {
				return s != nil && s.QuestionsAnswered >= 5 && s.AverageTime < 4
			},
		},
		{
			ID:          AchievementFlawless,
			Title:       "Perfect Order",
			Description: "Answer 5 questions without losing health",
			Icon:        "🕊️",
			Condition: func(_ Progress, s *session.Stats, cfg Config) bool {
				return s != nil && s.Health == cfg.InitialHealth && s.QuestionsAnswered >= 5
			},
		},
	}
}

// Status pairs an achievement with whether the player holds it.
type Status struct {
	Achievement
	Unlocked bool `json:"unlocked"`
}

// Statuses lists the catalog with unlock flags for p.
func Statuses(catalog []Achievement, p Progress) []Status {
	out := make([]Status, 0, len(catalog))
	for _, a := range catalog {
		out = append(out, Status{Achievement: a, Unlocked: p.HasAchievement(a.ID)})
	}
	return out
}

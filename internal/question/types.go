package question

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Difficulty constants for readability.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Theme constants drive background and palette selection on the client.
const (
	ThemeRevolution = "revolution"
	ThemeSteam      = "steam"
	ThemeWar        = "war"
	ThemeColdWar    = "coldwar"
	ThemeGlobal     = "global"
)

// Era toggles accepted by ParseYear.
const (
	EraCE  = "CE"
	EraBCE = "BCE"
)

// TimeoutYear is submitted by the driver when the countdown expires. No catalog year
// can equal it.
const TimeoutYear = math.MinInt

var (
	ErrInvalidYear = errors.New("invalid year")
	ErrInvalidEra  = errors.New("invalid era")
)

// Question is an immutable catalog entry.
type Question struct {
	ID         string `json:"id"`
	Event      string `json:"event"`
	Year       int    `json:"-"` // server-side only
	Difficulty string `json:"difficulty"`
	Era        string `json:"era"`
	Theme      string `json:"theme"`
	Background string `json:"background"`
}

// View is the renderer-facing projection of a question. It never carries the year.
type View struct {
	ID         string `json:"id"`
	Event      string `json:"event"`
	Difficulty string `json:"difficulty"`
	Era        string `json:"era"`
	Theme      string `json:"theme"`
	Background string `json:"background"`
}

// View strips the answer.
func (q Question) View() View {
	return View{
		ID:         q.ID,
		Event:      q.Event,
		Difficulty: q.Difficulty,
		Era:        q.Era,
		Theme:      q.Theme,
		Background: q.Background,
	}
}

// ParseYear maps an era toggle plus a positive magnitude into a signed year.
// An empty era means CE.
func ParseYear(era, magnitude string) (int, error) {
	raw := strings.TrimSpace(magnitude)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidYear)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidYear, raw)
	}
	// there is no year zero in either era
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidYear, n)
	}

	switch strings.ToUpper(strings.TrimSpace(era)) {
	case "", EraCE, "AD":
		return n, nil
	case EraBCE, "BC":
		return -n, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidEra, era)
	}
}

// FormatYear renders a signed year for feedback text.
func FormatYear(year int) string {
	if year < 0 {
		return fmt.Sprintf("%d %s", -year, EraBCE)
	}
	return fmt.Sprintf("%d %s", year, EraCE)
}

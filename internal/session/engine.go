package session

import (
	"errors"
	"math"

	"github.com/gokatarajesh/timerift/internal/question"
	"github.com/gokatarajesh/timerift/internal/session/scoring"
)

var (
	// ErrNoActiveQuestion is returned when an answer arrives with no question on screen.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrSessionOver is returned once health is exhausted, until Reset.
	ErrSessionOver = errors.New("session over")
	// ErrEmptyCatalog is returned by NewEngine when there is nothing to draw from.
	ErrEmptyCatalog = errors.New("question catalog is empty")
)

// Random is the draw source. *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int
}

// Config groups the per-session gameplay constants.
type Config struct {
	BaseTime      float64 // seconds on the clock for each question
	InitialHealth int
	Scoring       scoring.ScoringConfig
}

// DefaultConfig returns the reference gameplay constants.
func DefaultConfig() Config {
	return Config{
		BaseTime:      15,
		InitialHealth: 3,
		Scoring:       scoring.DefaultScoringConfig(),
	}
}

// Stats is the snapshot handed to presentation and, at session end, to progression.
type Stats struct {
	Score             int     `json:"score"`
	Coins             int     `json:"coins"`
	Combo             int     `json:"combo"`
	MaxCombo          int     `json:"maxCombo"`
	Health            int     `json:"health"`
	Level             int     `json:"level"`
	QuestionsAnswered int     `json:"questionsAnswered"`
	AverageTime       float64 `json:"averageTime"`
}

// Result reports the outcome of one submitted answer.
type Result struct {
	Correct     bool `json:"correct"`
	Actual      int  `json:"actual"`
	Points      int  `json:"points"`
	CoinsEarned int  `json:"coinsEarned"`
}

// Engine owns one playthrough: question draw, countdown value, scoring, health and combo.
// It is not safe for concurrent use; the owner serializes access.
type Engine struct {
	cfg     Config
	scoring *scoring.Engine
	catalog []question.Question
	rng     Random

	score             int
	coins             int
	combo             int
	maxCombo          int
	health            int
	questionsAnswered int
	totalTimeSpent    float64
	timeRemaining     float64

	answered map[string]struct{}
	current  *question.Question
}

// NewEngine builds an engine over catalog and resets it.
func NewEngine(cfg Config, catalog []question.Question, rng Random) (*Engine, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}
	if rng == nil {
		return nil, errors.New("random source is required")
	}
	qs := make([]question.Question, len(catalog))
	copy(qs, catalog)

	e := &Engine{
		cfg:      cfg,
		scoring:  scoring.NewEngine(cfg.Scoring),
		catalog:  qs,
		rng:      rng,
		answered: make(map[string]struct{}, len(qs)),
	}
	e.Reset()
	return e, nil
}

// Reset starts a fresh session and discards any in-flight question.
func (e *Engine) Reset() {
	e.score = 0
	e.coins = 0
	e.combo = 0
	e.maxCombo = 0
	e.health = e.cfg.InitialHealth
	e.questionsAnswered = 0
	e.totalTimeSpent = 0
	e.timeRemaining = e.cfg.BaseTime
	clear(e.answered)
	e.current = nil
}

// NextQuestion draws uniformly among questions not yet answered correctly this session.
// Once every question has been answered the pool is refilled.
func (e *Engine) NextQuestion() (question.Question, error) {
	if e.Over() {
		return question.Question{}, ErrSessionOver
	}

	available := e.unanswered()
	if len(available) == 0 {
		clear(e.answered)
		available = e.unanswered()
	}

	picked := available[e.rng.IntN(len(available))]
	e.current = &picked
	e.timeRemaining = e.cfg.BaseTime
	return picked, nil
}

func (e *Engine) unanswered() []question.Question {
	out := make([]question.Question, 0, len(e.catalog)-len(e.answered))
	for _, q := range e.catalog {
		if _, done := e.answered[q.ID]; !done {
			out = append(out, q)
		}
	}
	return out
}

// SubmitAnswer evaluates year against the active question. Matching is exact.
// The question is consumed either way.
func (e *Engine) SubmitAnswer(year int) (Result, error) {
	if e.Over() {
		return Result{}, ErrSessionOver
	}
	if e.current == nil {
		return Result{}, ErrNoActiveQuestion
	}

	q := *e.current
	e.current = nil
	res := Result{Correct: year == q.Year, Actual: q.Year}

	if res.Correct {
		e.answered[q.ID] = struct{}{}
		e.combo++
		if e.combo > e.maxCombo {
			e.maxCombo = e.combo
		}
		res.Points = e.scoring.CalculatePoints(true, e.timeRemaining, e.combo)
		res.CoinsEarned = e.scoring.CalculateCoins(e.combo)
		e.score += res.Points
		e.coins += res.CoinsEarned
		e.questionsAnswered++
		e.totalTimeSpent += e.cfg.BaseTime - e.timeRemaining
		return res, nil
	}

	e.combo = 0
	if e.health > 0 {
		e.health--
	}
	e.questionsAnswered++
	e.totalTimeSpent += e.cfg.BaseTime
	return res, nil
}

// Tick burns step seconds off the active question's clock, clamped at zero.
// It reports the remaining time and whether the clock has run out.
func (e *Engine) Tick(step float64) (float64, bool) {
	if e.current == nil || e.Over() {
		return e.timeRemaining, false
	}
	remaining := e.timeRemaining - step
	// keep tenths exact across many ticks
	remaining = math.Round(remaining*1e6) / 1e6
	if remaining <= 0 {
		remaining = 0
	}
	e.timeRemaining = remaining
	return remaining, remaining == 0
}

// SetTimeRemaining overrides the clock of the active question.
func (e *Engine) SetTimeRemaining(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	if seconds > e.cfg.BaseTime {
		seconds = e.cfg.BaseTime
	}
	e.timeRemaining = seconds
}

// TimeRemaining returns the seconds left on the active question.
func (e *Engine) TimeRemaining() float64 { return e.timeRemaining }

// BaseTime returns the full per-question allowance.
func (e *Engine) BaseTime() float64 { return e.cfg.BaseTime }

// Over reports whether health is exhausted.
func (e *Engine) Over() bool { return e.health <= 0 }

// Current returns the active question, if any.
func (e *Engine) Current() (question.Question, bool) {
	if e.current == nil {
		return question.Question{}, false
	}
	return *e.current, true
}

// Stats snapshots the running session.
func (e *Engine) Stats() Stats {
	avg := 0.0
	if e.questionsAnswered > 0 {
		avg = e.totalTimeSpent / float64(e.questionsAnswered)
	}
	return Stats{
		Score:             e.score,
		Coins:             e.coins,
		Combo:             e.combo,
		MaxCombo:          e.maxCombo,
		Health:            e.health,
		Level:             1,
		QuestionsAnswered: e.questionsAnswered,
		AverageTime:       avg,
	}
}

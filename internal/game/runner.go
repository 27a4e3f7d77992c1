package game

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/timerift/internal/events"
	"github.com/gokatarajesh/timerift/internal/progression"
	"github.com/gokatarajesh/timerift/internal/question"
	"github.com/gokatarajesh/timerift/internal/session"
)

// State of the current playthrough.
type State string

const (
	StateIdle    State = "idle"
	StatePlaying State = "playing"
	StateOver    State = "over"
)

var (
	// ErrNotPlaying is returned when no session has been started.
	ErrNotPlaying = errors.New("no session in progress")
	// ErrQuestionPending is returned when an obstacle is hit while a question is still open.
	ErrQuestionPending = errors.New("a question is already awaiting an answer")
)

// Options tunes the countdown cadence.
type Options struct {
	TickInterval time.Duration
	TickStep     float64
}

// Prompt is what the renderer gets when an obstacle triggers a question.
type Prompt struct {
	Question      question.View `json:"question"`
	TimeRemaining float64       `json:"time_remaining"`
	TotalTime     float64       `json:"total_time"`
}

// AnswerReport is the outcome of one answer, plus the session end when it happened.
type AnswerReport struct {
	session.Result
	TimedOut bool                 `json:"timed_out"`
	Stats    session.Stats        `json:"stats"`
	GameOver bool                 `json:"game_over"`
	Outcome  *progression.Outcome `json:"outcome,omitempty"`
}

// Snapshot is the full read model for the presentation layer.
type Snapshot struct {
	State         State                `json:"state"`
	SessionID     string               `json:"session_id,omitempty"`
	Stats         session.Stats        `json:"stats"`
	Question      *question.View       `json:"question,omitempty"`
	TimeRemaining float64              `json:"time_remaining"`
	TotalTime     float64              `json:"total_time"`
	LastOutcome   *progression.Outcome `json:"last_outcome,omitempty"`
}

// Runner drives one player's sessions: it owns the engine, the progression store and
// the countdown, and serializes every mutation behind a single lock.
type Runner struct {
	mu sync.Mutex

	engine *session.Engine
	store  *progression.Store
	events events.Emitter
	opts   Options
	logger zerolog.Logger

	state       State
	sessionID   uuid.UUID
	countdown   *session.Countdown
	generation  uint64
	lastOutcome *progression.Outcome
}

// NewRunner wires a runner. A nil emitter discards events.
func NewRunner(engine *session.Engine, store *progression.Store, emitter events.Emitter, opts Options, logger zerolog.Logger) *Runner {
	if emitter == nil {
		emitter = events.Discard{}
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = session.DefaultTickInterval
	}
	if opts.TickStep <= 0 {
		opts.TickStep = session.DefaultTickStep
	}
	return &Runner{
		engine: engine,
		store:  store,
		events: emitter,
		opts:   opts,
		logger: logger.With().Str("component", "game_runner").Logger(),
		state:  StateIdle,
	}
}

// Start begins a fresh session, abandoning any session in progress.
func (r *Runner) Start(ctx context.Context) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopCountdownLocked()
	r.engine.Reset()
	r.sessionID = uuid.New()
	r.state = StatePlaying
	r.lastOutcome = nil

	r.logger.Info().Str("session_id", r.sessionID.String()).Msg("session started")
	return r.snapshotLocked()
}

// Obstacle draws the next question and starts its countdown.
func (r *Runner) Obstacle(ctx context.Context) (Prompt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.playingLocked(); err != nil {
		return Prompt{}, err
	}
	if _, active := r.engine.Current(); active {
		return Prompt{}, ErrQuestionPending
	}

	q, err := r.engine.NextQuestion()
	if err != nil {
		return Prompt{}, err
	}
	r.startCountdownLocked(ctx)

	view := q.View()
	evt := events.New(events.KindQuestion, r.sessionID)
	evt.Question = &view
	r.events.Emit(evt)

	return Prompt{
		Question:      view,
		TimeRemaining: r.engine.TimeRemaining(),
		TotalTime:     r.engine.BaseTime(),
	}, nil
}

// Answer submits a signed year for the active question.
func (r *Runner) Answer(ctx context.Context, year int) (AnswerReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.playingLocked(); err != nil {
		return AnswerReport{}, err
	}
	return r.submitLocked(ctx, year, false)
}

// Snapshot returns the current read model.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Progress returns the persistent player record.
func (r *Runner) Progress() progression.Progress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Progress()
}

// Achievements lists every achievement with the player's unlock state.
func (r *Runner) Achievements() []progression.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return progression.Statuses(r.store.Achievements(), r.store.Progress())
}

// Close stops any running countdown.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopCountdownLocked()
}

func (r *Runner) playingLocked() error {
	switch r.state {
	case StatePlaying:
		return nil
	case StateOver:
		return session.ErrSessionOver
	default:
		return ErrNotPlaying
	}
}

func (r *Runner) startCountdownLocked(ctx context.Context) {
	r.stopCountdownLocked()
	r.generation++
	gen := r.generation
	// the countdown outlives the request that started it
	r.countdown = session.StartCountdown(context.WithoutCancel(ctx), r.opts.TickInterval, func() bool {
		return r.tick(gen)
	})
}

func (r *Runner) stopCountdownLocked() {
	if r.countdown != nil {
		r.countdown.Stop()
		r.countdown = nil
	}
	// invalidate callbacks already waiting on the lock
	r.generation++
}

// tick advances the clock for countdown generation gen. It returns false once that
// countdown should stop.
func (r *Runner) tick(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.generation || r.state != StatePlaying {
		return false
	}
	if _, expired := r.engine.Tick(r.opts.TickStep); !expired {
		return true
	}

	if _, err := r.submitLocked(context.Background(), question.TimeoutYear, true); err != nil {
		r.logger.Error().Err(err).Msg("auto-submit on timeout failed")
	}
	return false
}

func (r *Runner) submitLocked(ctx context.Context, year int, timedOut bool) (AnswerReport, error) {
	res, err := r.engine.SubmitAnswer(year)
	if err != nil {
		return AnswerReport{}, err
	}
	r.stopCountdownLocked()

	stats := r.engine.Stats()
	kind := events.KindWrong
	switch {
	case res.Correct:
		kind = events.KindCorrect
	case timedOut:
		kind = events.KindTimeout
	}
	evt := events.New(kind, r.sessionID)
	evt.Result = &res
	evt.Stats = &stats
	r.events.Emit(evt)

	report := AnswerReport{Result: res, TimedOut: timedOut, Stats: stats}
	if r.engine.Over() {
		outcome := r.finishLocked(ctx, stats)
		report.GameOver = true
		report.Outcome = &outcome
	}
	return report, nil
}

func (r *Runner) finishLocked(ctx context.Context, stats session.Stats) progression.Outcome {
	r.state = StateOver

	outcome, err := r.store.UpdateAfterSession(ctx, stats)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", r.sessionID.String()).Msg("failed to persist progress")
	}
	r.lastOutcome = &outcome

	over := events.New(events.KindGameOver, r.sessionID)
	over.Stats = &stats
	r.events.Emit(over)

	if outcome.LeveledUp {
		up := events.New(events.KindLevelUp, r.sessionID)
		up.Level = outcome.Level
		r.events.Emit(up)
	}
	for i := range outcome.NewAchievements {
		a := outcome.NewAchievements[i]
		evt := events.New(events.KindAchievement, r.sessionID)
		evt.Achievement = &a
		r.events.Emit(evt)
	}

	r.logger.Info().
		Str("session_id", r.sessionID.String()).
		Int("score", stats.Score).
		Int("answered", stats.QuestionsAnswered).
		Int("max_combo", stats.MaxCombo).
		Msg("session finished")
	return outcome
}

func (r *Runner) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:         r.state,
		Stats:         r.engine.Stats(),
		TimeRemaining: r.engine.TimeRemaining(),
		TotalTime:     r.engine.BaseTime(),
		LastOutcome:   r.lastOutcome,
	}
	if r.sessionID != uuid.Nil {
		snap.SessionID = r.sessionID.String()
	}
	if q, ok := r.engine.Current(); ok {
		view := q.View()
		snap.Question = &view
	}
	return snap
}

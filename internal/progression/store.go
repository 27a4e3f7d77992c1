package progression

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/timerift/internal/session"
	"github.com/gokatarajesh/timerift/internal/storage"
)

// DefaultKey is the storage key of the single save record.
const DefaultKey = "time_rift_guardian_save"

var errCorrupt = errors.New("corrupt progress record")

// StoreOptions configures the progression store.
type StoreOptions struct {
	Key          string
	Config       Config
	Achievements []Achievement
	Clock        func() time.Time
}

// Store owns the durable player record and its evolution rules.
// Not safe for concurrent use; the owner serializes access.
type Store struct {
	kv           storage.KV
	key          string
	cfg          Config
	achievements []Achievement
	clock        func() time.Time
	logger       zerolog.Logger

	progress Progress
}

// NewStore builds a store and loads the current record from kv.
func NewStore(ctx context.Context, kv storage.KV, opts StoreOptions, logger zerolog.Logger) *Store {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}
	cfg := opts.Config
	if cfg.MaxLevel == 0 {
		cfg = DefaultConfig()
	}
	achievements := opts.Achievements
	if achievements == nil {
		achievements = Catalog()
	}
	clock := opts.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}

	s := &Store{
		kv:           kv,
		key:          key,
		cfg:          cfg,
		achievements: achievements,
		clock:        clock,
		logger:       logger.With().Str("component", "progression").Logger(),
	}
	s.progress = s.Load(ctx)
	return s
}

// Fresh returns the starting record for a new player.
func (s *Store) Fresh() Progress {
	return Progress{
		Level:                1,
		UnlockedAchievements: []string{},
		LastPlayDate:         s.clock(),
	}
}

// Load reads the saved record. Missing, unreadable or malformed data yields Fresh;
// it never fails.
func (s *Store) Load(ctx context.Context) Progress {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return s.Fresh()
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("progress unreadable, starting fresh")
		return s.Fresh()
	}

	p, err := Decode(raw)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("progress corrupt, starting fresh")
		return s.Fresh()
	}
	return p
}

// Progress returns a snapshot of the current record.
func (s *Store) Progress() Progress {
	return s.progress.Clone()
}

// Achievements returns the catalog this store evaluates.
func (s *Store) Achievements() []Achievement {
	return append([]Achievement(nil), s.achievements...)
}

// UpdateAfterSession folds a finished session into the record, evaluates
// achievements and persists. The in-memory record is updated even when the save fails.
func (s *Store) UpdateAfterSession(ctx context.Context, stats session.Stats) (Outcome, error) {
	p := &s.progress

	// Attempts, not correct answers, earn XP; correctCount is inferred from health lost.
	xpGained := stats.QuestionsAnswered*s.cfg.XPPerCorrect + int(math.Floor(float64(stats.Score)/10))
	p.XP += xpGained
	p.TotalAnswered += stats.QuestionsAnswered
	// Stats handed over before health runs out can infer a negative count; the
	// lifetime counter only grows, so such a session adds nothing.
	if correct := stats.QuestionsAnswered - (s.cfg.InitialHealth - stats.Health); correct > 0 {
		p.CorrectCount += correct
	}
	p.TotalCoins += stats.Coins
	if stats.MaxCombo > p.MaxCombo {
		p.MaxCombo = stats.MaxCombo
	}

	oldLevel := p.Level
	p.Level = LevelForXP(p.XP, s.cfg.MaxLevel)

	outcome := Outcome{
		LeveledUp:       p.Level > oldLevel,
		PreviousLevel:   oldLevel,
		Level:           p.Level,
		XPGained:        xpGained,
		NewAchievements: s.checkAchievements(&stats),
	}

	p.LastPlayDate = s.clock()

	if err := s.save(ctx); err != nil {
		return outcome, err
	}

	s.logger.Info().
		Int("xp_gained", xpGained).
		Int("level", p.Level).
		Bool("leveled_up", outcome.LeveledUp).
		Int("new_achievements", len(outcome.NewAchievements)).
		Msg("progress updated")

	return outcome, nil
}

func (s *Store) checkAchievements(stats *session.Stats) []Achievement {
	unlocked := []Achievement{}
	for _, a := range s.achievements {
		if s.progress.HasAchievement(a.ID) || a.Condition == nil {
			continue
		}
		if a.Condition(s.progress, stats, s.cfg) {
			s.progress.UnlockedAchievements = append(s.progress.UnlockedAchievements, a.ID)
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

func (s *Store) save(ctx context.Context) error {
	data, err := Encode(s.progress)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Encode serializes a record.
func Encode(p Progress) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal progress: %w", err)
	}
	return data, nil
}

// Decode parses a record and rejects shapes that violate its invariants.
func Decode(data []byte) (Progress, error) {
	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return Progress{}, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	if p.Level < 1 || p.XP < 0 || p.TotalAnswered < 0 || p.CorrectCount < 0 || p.MaxCombo < 0 || p.TotalCoins < 0 {
		return Progress{}, fmt.Errorf("%w: negative counters or level below 1", errCorrupt)
	}
	if p.UnlockedAchievements == nil {
		p.UnlockedAchievements = []string{}
	}
	return p, nil
}

package session

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/timerift/internal/question"
)

// firstPick always draws the first available question, making order predictable.
type firstPick struct{}

func (firstPick) IntN(int) int { return 0 }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), question.Catalog(), rand.New(rand.NewPCG(7, 11)))
	require.NoError(t, err)
	return e
}

func TestNewEngineRejectsEmptyCatalog(t *testing.T) {
	_, err := NewEngine(DefaultConfig(), nil, firstPick{})
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestSubmitWithoutQuestionFails(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.SubmitAnswer(1789)
	assert.ErrorIs(t, err, ErrNoActiveQuestion)

	q, err := e.NextQuestion()
	require.NoError(t, err)
	_, err = e.SubmitAnswer(q.Year)
	require.NoError(t, err)

	_, err = e.SubmitAnswer(q.Year)
	assert.ErrorIs(t, err, ErrNoActiveQuestion, "an answered question is no longer active")
}

func TestCorrectAnswerAtFullTime(t *testing.T) {
	e := newTestEngine(t)
	q, err := e.NextQuestion()
	require.NoError(t, err)
	assert.Equal(t, 15.0, e.TimeRemaining())

	res, err := e.SubmitAnswer(q.Year)
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, q.Year, res.Actual)
	assert.Equal(t, 250, res.Points)
	assert.Equal(t, 12, res.CoinsEarned)

	stats := e.Stats()
	assert.Equal(t, 250, stats.Score)
	assert.Equal(t, 12, stats.Coins)
	assert.Equal(t, 3, stats.Health)
	assert.Equal(t, 1, stats.Combo)
	assert.Equal(t, 1, stats.MaxCombo)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, 1, stats.QuestionsAnswered)
	assert.Equal(t, 0.0, stats.AverageTime)
}

func TestComboUsesPostIncrementValue(t *testing.T) {
	e := newTestEngine(t)

	var points []int
	for i := 0; i < 3; i++ {
		q, err := e.NextQuestion()
		require.NoError(t, err)
		e.SetTimeRemaining(10)
		res, err := e.SubmitAnswer(q.Year)
		require.NoError(t, err)
		points = append(points, res.Points)
		assert.Equal(t, i+1, e.Stats().Combo)
	}
	assert.Equal(t, []int{200, 230, 260}, points)
	assert.Equal(t, 5.0, e.Stats().AverageTime)
}

func TestWrongAnswerResetsComboAndCostsHealth(t *testing.T) {
	e := newTestEngine(t)

	q, _ := e.NextQuestion()
	_, err := e.SubmitAnswer(q.Year)
	require.NoError(t, err)

	q, _ = e.NextQuestion()
	e.SetTimeRemaining(14)
	res, err := e.SubmitAnswer(q.Year + 1)
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, q.Year, res.Actual)
	assert.Zero(t, res.Points)
	assert.Zero(t, res.CoinsEarned)

	stats := e.Stats()
	assert.Equal(t, 0, stats.Combo)
	assert.Equal(t, 1, stats.MaxCombo)
	assert.Equal(t, 2, stats.Health)
	assert.Equal(t, 2, stats.QuestionsAnswered)
	// 0s spent on the first, full 15s charged on the miss
	assert.Equal(t, 7.5, stats.AverageTime)
}

func TestTimeoutSentinelIsAWrongAnswer(t *testing.T) {
	e := newTestEngine(t)
	q, _ := e.NextQuestion()
	_, _ = e.SubmitAnswer(q.Year)

	_, _ = e.NextQuestion()
	res, err := e.SubmitAnswer(question.TimeoutYear)
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 0, e.Stats().Combo)
	assert.Equal(t, 2, e.Stats().Health)
}

func TestHealthReachesZeroAndStops(t *testing.T) {
	e := newTestEngine(t)

	prev := e.Stats().Health
	for !e.Over() {
		_, err := e.NextQuestion()
		require.NoError(t, err)
		_, err = e.SubmitAnswer(question.TimeoutYear)
		require.NoError(t, err)
		h := e.Stats().Health
		assert.Less(t, h, prev)
		prev = h
	}
	assert.Equal(t, 0, e.Stats().Health)

	_, err := e.NextQuestion()
	assert.ErrorIs(t, err, ErrSessionOver)
	_, err = e.SubmitAnswer(1789)
	assert.ErrorIs(t, err, ErrSessionOver)

	e.Reset()
	assert.Equal(t, 3, e.Stats().Health)
	assert.False(t, e.Over())
}

func TestMaxComboNeverBelowCombo(t *testing.T) {
	e := newTestEngine(t)
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 40 && !e.Over(); i++ {
		q, err := e.NextQuestion()
		require.NoError(t, err)
		answer := q.Year
		if rng.IntN(4) == 0 {
			answer = question.TimeoutYear
		}
		before := e.Stats().Combo
		res, err := e.SubmitAnswer(answer)
		require.NoError(t, err)

		stats := e.Stats()
		if res.Correct {
			assert.Equal(t, before+1, stats.Combo)
		} else {
			assert.Equal(t, 0, stats.Combo)
		}
		assert.GreaterOrEqual(t, stats.MaxCombo, stats.Combo)
		assert.GreaterOrEqual(t, stats.Health, 0)
	}
}

func TestDrawWithoutReplacementUntilExhausted(t *testing.T) {
	e := newTestEngine(t)
	size := len(question.Catalog())

	seen := map[string]bool{}
	for i := 0; i < size; i++ {
		q, err := e.NextQuestion()
		require.NoError(t, err)
		assert.False(t, seen[q.ID], "question %s repeated before catalog exhausted", q.ID)
		seen[q.ID] = true
		_, err = e.SubmitAnswer(q.Year)
		require.NoError(t, err)
	}
	assert.Len(t, seen, size)

	// the pool refills rather than failing
	for i := 0; i < size+5; i++ {
		q, err := e.NextQuestion()
		require.NoError(t, err)
		assert.NotEmpty(t, q.ID)
		_, err = e.SubmitAnswer(q.Year)
		require.NoError(t, err)
	}
}

func TestWrongAnswerKeepsQuestionInPool(t *testing.T) {
	catalog := question.Catalog()[:2]
	e, err := NewEngine(DefaultConfig(), catalog, firstPick{})
	require.NoError(t, err)

	q, _ := e.NextQuestion()
	assert.Equal(t, "w1", q.ID)
	_, _ = e.SubmitAnswer(question.TimeoutYear)

	q, _ = e.NextQuestion()
	assert.Equal(t, "w1", q.ID, "missed questions may come back")
	_, _ = e.SubmitAnswer(q.Year)

	q, _ = e.NextQuestion()
	assert.Equal(t, "w2", q.ID)
}

func TestDrawIsDeterministicForSeed(t *testing.T) {
	draw := func() []string {
		e, err := NewEngine(DefaultConfig(), question.Catalog(), rand.New(rand.NewPCG(42, 42)))
		require.NoError(t, err)
		var ids []string
		for i := 0; i < 10; i++ {
			q, _ := e.NextQuestion()
			ids = append(ids, q.ID)
			_, _ = e.SubmitAnswer(q.Year)
		}
		return ids
	}
	assert.Equal(t, draw(), draw())
}

func TestTick(t *testing.T) {
	e := newTestEngine(t)

	remaining, expired := e.Tick(DefaultTickStep)
	assert.Equal(t, 15.0, remaining, "no active question, no ticking")
	assert.False(t, expired)

	_, _ = e.NextQuestion()
	for i := 0; i < 149; i++ {
		_, expired = e.Tick(DefaultTickStep)
		require.False(t, expired)
	}
	assert.InDelta(t, 0.1, e.TimeRemaining(), 1e-9)

	remaining, expired = e.Tick(DefaultTickStep)
	assert.Equal(t, 0.0, remaining)
	assert.True(t, expired)
}

func TestResetDiscardsActiveQuestion(t *testing.T) {
	e := newTestEngine(t)
	_, _ = e.NextQuestion()
	e.Reset()

	_, ok := e.Current()
	assert.False(t, ok)
	_, err := e.SubmitAnswer(1789)
	assert.ErrorIs(t, err, ErrNoActiveQuestion)
}

package scoring

import (
	"math"
)

// roundingSlack absorbs binary representation error of rates such as 0.15, so that
// 200 * 1.15 floors to 230 rather than 229.
const roundingSlack = 1e-9

// ScoringConfig holds configurable scoring constants (defaults match the reference game).
type ScoringConfig struct {
	BaseScore      int     // default: 100
	TimeBonusRate  int     // default: 10 points per whole second left
	ComboBonusRate float64 // default: 0.15 (15% per consecutive correct beyond the first)
	BaseCoins      int     // default: 10
	CoinsPerCombo  float64 // default: 2
}

// DefaultScoringConfig returns production defaults.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		BaseScore:      100,
		TimeBonusRate:  10,
		ComboBonusRate: 0.15,
		BaseCoins:      10,
		CoinsPerCombo:  2,
	}
}

// Engine computes points and coins for a single answer.
type Engine struct {
	config ScoringConfig
}

// NewEngine creates a scoring engine with the provided config.
func NewEngine(config ScoringConfig) *Engine {
	return &Engine{config: config}
}

// Config exposes the constants in use.
func (e *Engine) Config() ScoringConfig {
	return e.config
}

// CalculatePoints computes points for a single answer.
// Formula: floor((base + floor(timeLeft) * timeBonusRate) * comboMultiplier)
// - comboMultiplier: 1 + (combo - 1) * comboBonusRate, where combo already counts this answer
// - incorrect answers score 0
func (e *Engine) CalculatePoints(isCorrect bool, timeLeft float64, combo int) int {
	if !isCorrect {
		return 0
	}
	if timeLeft < 0 {
		timeLeft = 0
	}

	timeBonus := int(math.Floor(timeLeft)) * e.config.TimeBonusRate
	raw := float64(e.config.BaseScore+timeBonus) * e.ComboMultiplier(combo)
	return int(math.Floor(raw + roundingSlack))
}

// ComboMultiplier returns the streak multiplier for a post-increment combo value.
func (e *Engine) ComboMultiplier(combo int) float64 {
	if combo < 1 {
		return 1.0
	}
	return 1 + float64(combo-1)*e.config.ComboBonusRate
}

// CalculateCoins returns coins for a correct answer at the given combo.
func (e *Engine) CalculateCoins(combo int) int {
	return e.config.BaseCoins + int(math.Floor(float64(combo)*e.config.CoinsPerCombo+roundingSlack))
}

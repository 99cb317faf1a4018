// Package progression implements the leveling, scoring, collection and save-record rules of the game.
package progression

import (
	"math"
	"time"
)

// Initial values for every LevelTrack.
const (
	InitialLevel  = 1
	InitialExp    = 0
	InitialMaxExp = 100
)

// Rules holds the tuning constants of a game. All score and experience formulas hang off it.
type Rules struct {
	BaseScore           int
	ComboMultiplier     int
	TimeBonusMultiplier int

	BaseExp            int
	ComboExpMultiplier int
	SkillExpPerCorrect int

	StageGrowth      float64
	SkillGrowth      float64
	PlayerLevelRatio float64

	QuizTimeLimit time.Duration

	HatchStage StageID
	HatchLevel int

	AbandonAfterHours float64

	// LegacyStageFallback routes unknown stage ids to the first stage instead of rejecting them.
	LegacyStageFallback bool
}

// DefaultRules returns the stock game constants.
func DefaultRules() Rules {
	return Rules{
		BaseScore:           100,
		ComboMultiplier:     20,
		TimeBonusMultiplier: 10,
		BaseExp:             10,
		ComboExpMultiplier:  2,
		SkillExpPerCorrect:  5,
		StageGrowth:         1.5,
		SkillGrowth:         1.3,
		PlayerLevelRatio:    0.8,
		QuizTimeLimit:       60 * time.Second,
		HatchStage:          StageAI,
		HatchLevel:          5,
		AbandonAfterHours:   24,
	}
}

// ScoreForCorrect is the score awarded for a correct answer given the streak before it.
func (r Rules) ScoreForCorrect(combo int) int {
	return r.BaseScore + combo*r.ComboMultiplier
}

// ExpForCorrect is the stage experience awarded for a correct answer given the streak before it.
func (r Rules) ExpForCorrect(combo int) int {
	return r.BaseExp + combo*r.ComboExpMultiplier
}

// TimeBonus converts remaining seconds into bonus score. Negative input yields a negative bonus.
func (r Rules) TimeBonus(remainingSeconds float64) int {
	return int(math.Floor(remainingSeconds)) * r.TimeBonusMultiplier
}

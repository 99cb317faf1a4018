package progression

import (
	"fmt"
	"math"

	"skill-evolve-service/internal/domain"
)

// LevelTrack is a single experience counter with a geometric level curve.
type LevelTrack struct {
	Level  int `json:"level"`
	Exp    int `json:"exp"`
	MaxExp int `json:"maxExp"`
}

// LevelUp reports what an AddExp call did to the level.
type LevelUp struct {
	LeveledUp    bool
	LevelsGained int
}

// NewLevelTrack returns a track at the initial level.
func NewLevelTrack() *LevelTrack {
	return &LevelTrack{Level: InitialLevel, Exp: InitialExp, MaxExp: InitialMaxExp}
}

// AddExp adds amount and rolls over as many levels as the experience covers.
// Each level-up multiplies the cap by growth, rounded down.
func (t *LevelTrack) AddExp(amount int, growth float64) (LevelUp, error) {
	if amount < 0 {
		return LevelUp{}, fmt.Errorf("%w: negative experience %d", domain.ErrInvalidArgument, amount)
	}
	if growth <= 1 {
		return LevelUp{}, fmt.Errorf("%w: growth rate %v must exceed 1", domain.ErrInvalidArgument, growth)
	}
	if t.MaxExp < 1 {
		return LevelUp{}, fmt.Errorf("%w: experience cap %d", domain.ErrInvalidArgument, t.MaxExp)
	}
	if amount > math.MaxInt-t.Exp {
		return LevelUp{}, fmt.Errorf("%w: experience %d overflows the track", domain.ErrInvalidArgument, amount)
	}

	t.Exp += amount
	var up LevelUp
	for t.Exp >= t.MaxExp {
		t.Exp -= t.MaxExp
		t.Level++
		t.MaxExp = grownCap(t.MaxExp, growth)
		up.LevelsGained++
	}
	up.LeveledUp = up.LevelsGained > 0
	return up, nil
}

// grownCap is the next level's cap, saturating at math.MaxInt.
func grownCap(maxExp int, growth float64) int {
	next := math.Floor(float64(maxExp) * growth)
	if next >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(next)
}

// Progress is the fraction of the current level already earned, in [0,1).
func (t *LevelTrack) Progress() float64 {
	return float64(t.Exp) / float64(t.MaxExp)
}

func (t *LevelTrack) valid() bool {
	return t.Level >= 1 && t.MaxExp >= 1 && t.Exp >= 0 && t.Exp < t.MaxExp
}

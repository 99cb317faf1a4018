package progression

import (
	"fmt"
	"math"
	"strings"

	"skill-evolve-service/internal/domain"
)

// StageID names one of the six subject stages.
type StageID string

const (
	StageAI        StageID = "ai"
	StageWriting   StageID = "writing"
	StageDesign    StageID = "design"
	StageMarketing StageID = "marketing"
	StageCoding    StageID = "coding"
	StageOther     StageID = "other"
)

// AllStages returns the stages in canonical order.
func AllStages() []StageID {
	return []StageID{StageAI, StageWriting, StageDesign, StageMarketing, StageCoding, StageOther}
}

// ParseStage resolves a stage id case-insensitively. Unknown ids are rejected unless
// legacyFallback is set, in which case they resolve to the first stage.
func ParseStage(raw string, legacyFallback bool) (StageID, error) {
	id := StageID(strings.ToLower(raw))
	for _, s := range AllStages() {
		if s == id {
			return s, nil
		}
	}
	if legacyFallback {
		return StageAI, nil
	}
	return "", fmt.Errorf("%w: unknown stage %q", domain.ErrInvalidArgument, raw)
}

// StageProgress maps every stage to its level track.
type StageProgress map[StageID]*LevelTrack

// NewStageProgress seeds all six stages at the initial level.
func NewStageProgress() StageProgress {
	p := make(StageProgress, len(AllStages()))
	for _, s := range AllStages() {
		p[s] = NewLevelTrack()
	}
	return p
}

// Track returns the level track for id.
func (p StageProgress) Track(id StageID) (*LevelTrack, error) {
	t, ok := p[id]
	if !ok || t == nil {
		return nil, fmt.Errorf("%w: unknown stage %q", domain.ErrInvalidArgument, id)
	}
	return t, nil
}

// AddExp routes experience to one stage.
func (p StageProgress) AddExp(id StageID, amount int, growth float64) (LevelUp, error) {
	t, err := p.Track(id)
	if err != nil {
		return LevelUp{}, err
	}
	return t.AddExp(amount, growth)
}

// Level returns the level of a stage, or 0 when the stage is unknown.
func (p StageProgress) Level(id StageID) int {
	if t, ok := p[id]; ok && t != nil {
		return t.Level
	}
	return 0
}

// PlayerLevel is floor(ratio × sum of stage levels). It is never cached.
func (p StageProgress) PlayerLevel(ratio float64) int {
	total := 0
	for _, s := range AllStages() {
		total += p.Level(s)
	}
	return int(math.Floor(float64(total) * ratio))
}

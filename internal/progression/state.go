package progression

import (
	"fmt"
	"time"
)

// PersistedState is everything that survives between sessions.
type PersistedState struct {
	PlayerName        string        `json:"playerName"`
	CharacterName     string        `json:"characterName"`
	SelectedCharacter string        `json:"selectedCharacter"`
	Stages            StageProgress `json:"stages"`
	Skills            SkillProfile  `json:"skills"`
	HasHatched        bool          `json:"hasHatched"`
	TotalAnswers      int           `json:"totalAnswers"`
	CorrectAnswers    int           `json:"correctAnswers"`
	BestCombo         int           `json:"bestCombo"`
	Collection        []string      `json:"collection"`
	LastActive        string        `json:"lastActive"`
}

// NewPersistedState returns the state of a brand new player.
func NewPersistedState() *PersistedState {
	return &PersistedState{
		Stages:     NewStageProgress(),
		Skills:     NewSkillProfile(),
		Collection: []string{},
	}
}

// PlayerLevel derives the aggregate level from the stage levels.
func (s *PersistedState) PlayerLevel(ratio float64) int {
	return s.Stages.PlayerLevel(ratio)
}

// LastActiveTime parses LastActive. ok is false when the player was never saved.
func (s *PersistedState) LastActiveTime() (time.Time, bool, error) {
	if s.LastActive == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.LastActive)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// Validate checks the invariants a loaded record must satisfy.
func (s *PersistedState) Validate() error {
	for _, id := range AllStages() {
		t, ok := s.Stages[id]
		if !ok || t == nil {
			return fmt.Errorf("stage %q missing", id)
		}
		if !t.valid() {
			return fmt.Errorf("stage %q out of range: %+v", id, *t)
		}
	}
	for _, axis := range AllSkillAxes() {
		t, ok := s.Skills[axis]
		if !ok || t == nil {
			return fmt.Errorf("skill %q missing", axis)
		}
		if !t.valid() {
			return fmt.Errorf("skill %q out of range: %+v", axis, *t)
		}
	}
	if s.TotalAnswers < 0 || s.CorrectAnswers < 0 || s.BestCombo < 0 {
		return fmt.Errorf("negative counters")
	}
	if s.CorrectAnswers > s.TotalAnswers {
		return fmt.Errorf("correct answers %d exceed total %d", s.CorrectAnswers, s.TotalAnswers)
	}
	if _, _, err := s.LastActiveTime(); err != nil {
		return fmt.Errorf("last active: %w", err)
	}
	return nil
}

// normalize fills anything an older record did not carry.
func (s *PersistedState) normalize() {
	if s.Stages == nil {
		s.Stages = NewStageProgress()
	}
	for _, id := range AllStages() {
		if s.Stages[id] == nil {
			s.Stages[id] = NewLevelTrack()
		}
	}
	if s.Skills == nil {
		s.Skills = NewSkillProfile()
	}
	for _, axis := range AllSkillAxes() {
		if s.Skills[axis] == nil {
			s.Skills[axis] = NewLevelTrack()
		}
	}
	if s.Collection == nil {
		s.Collection = []string{}
	}
}

// SessionState is per-session scratch data. It is never saved.
type SessionState struct {
	Score          int
	SessionCorrect int
	Answered       int
	TimeLeft       time.Duration
	Playing        bool
}

// NewSessionState returns the state every session starts from.
func NewSessionState(r Rules) SessionState {
	return SessionState{TimeLeft: r.QuizTimeLimit, Playing: true}
}

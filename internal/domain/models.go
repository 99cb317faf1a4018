package domain

// QuestionKind tells the validator how a question expects to be answered.
type QuestionKind string

const (
	KindSingle   QuestionKind = "single"
	KindMultiple QuestionKind = "multiple"
)

// Option labels rendered by the presentation layer.
const (
	FormatFourChoice = "4択"
	FormatTrueFalse  = "○×"
)

// QuestionSpec is one row of the question bank. The engine only reads Kind, Answer/Answers and Category.
type QuestionSpec struct {
	ID          string            `json:"id" yaml:"id"`
	No          int               `json:"no" yaml:"no"`
	Round       int               `json:"round" yaml:"round"`
	Kind        QuestionKind      `json:"kind" yaml:"kind"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Prompt      string            `json:"prompt" yaml:"prompt"`
	Options     []string          `json:"options" yaml:"options"`
	Choices     map[string]string `json:"choices,omitempty" yaml:"choices,omitempty"`
	Answer      string            `json:"answer,omitempty" yaml:"answer,omitempty"`
	Answers     []string          `json:"answers,omitempty" yaml:"answers,omitempty"`
	Explanation string            `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	Category    string            `json:"category,omitempty" yaml:"category,omitempty"`
	MinLevel    int               `json:"minLevel,omitempty" yaml:"min_level,omitempty"`
}

// Bank is a named collection of questions.
type Bank struct {
	ID        string         `json:"id" yaml:"id"`
	Questions []QuestionSpec `json:"questions" yaml:"questions"`
}

// Round is an ordered slice of questions played back to back.
type Round struct {
	Number    int            `json:"number"`
	Questions []QuestionSpec `json:"questions"`
}

// CollectionItem is an unlockable collectible gated by player level.
type CollectionItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	UnlockLevel int    `json:"unlockLevel"`
	Bonus       int    `json:"bonus"`
}

// HatchState mirrors the evolution latch for the presentation layer.
type HatchState struct {
	HasHatched       bool `json:"hasHatched"`
	PendingAnimation bool `json:"pendingAnimation"`
}

// SessionStart is returned when a player begins a new session.
type SessionStart struct {
	SessionID   string  `json:"sessionId"`
	PlayerID    string  `json:"playerId"`
	PlayerName  string  `json:"playerName"`
	Stage       string  `json:"stage"`
	PlayerLevel int     `json:"playerLevel"`
	Abandoned   bool    `json:"abandoned"`
	Warning     string  `json:"warning,omitempty"`
	Rounds      []Round `json:"rounds"`
}

// AnswerResult summarizes the outcome of one submission.
type AnswerResult struct {
	QuestionID   string           `json:"questionId"`
	Correct      bool             `json:"correct"`
	ScoreDelta   int              `json:"scoreDelta"`
	ExpDelta     int              `json:"expDelta"`
	Combo        int              `json:"combo"`
	TotalScore   int              `json:"totalScore"`
	StageLevel   int              `json:"stageLevel"`
	LevelsGained int              `json:"levelsGained"`
	SkillAxis    string           `json:"skillAxis,omitempty"`
	PlayerLevel  int              `json:"playerLevel"`
	Unlocked     []CollectionItem `json:"unlocked,omitempty"`
	Hatched      bool             `json:"hatched"`
	Explanation  string           `json:"explanation,omitempty"`
}

// RoundSummary is produced when a round ends.
type RoundSummary struct {
	Round    int  `json:"round"`
	Correct  int  `json:"correct"`
	Total    int  `json:"total"`
	Finished bool `json:"finished"`
}

// SessionSummary is produced when a session ends and progress is saved.
type SessionSummary struct {
	SessionID      string `json:"sessionId"`
	Score          int    `json:"score"`
	SessionCorrect int    `json:"sessionCorrect"`
	Answered       int    `json:"answered"`
	BestCombo      int    `json:"bestCombo"`
	PlayerLevel    int    `json:"playerLevel"`
	Radar          []int  `json:"radar"`
}

// ProgressReport is an offline view of a saved player.
type ProgressReport struct {
	PlayerName     string           `json:"playerName"`
	PlayerLevel    int              `json:"playerLevel"`
	StageLevels    map[string]int   `json:"stageLevels"`
	Radar          []int            `json:"radar"`
	Unlocked       []CollectionItem `json:"unlocked"`
	HasHatched     bool             `json:"hasHatched"`
	TotalAnswers   int              `json:"totalAnswers"`
	CorrectAnswers int              `json:"correctAnswers"`
	BestCombo      int              `json:"bestCombo"`
	LastActive     string           `json:"lastActive,omitempty"`
	Abandoned      bool             `json:"abandoned"`
	Warning        string           `json:"warning,omitempty"`
}

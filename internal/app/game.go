package app

import (
	"context"
	"fmt"
	"sync"

	"skill-evolve-service/internal/domain"
	"skill-evolve-service/internal/progression"
)

// Game is the live state of one player's session.
type Game struct {
	id       string
	playerID string
	stage    progression.StageID
	rules    progression.Rules

	mu         sync.Mutex
	state      *progression.PersistedState
	session    progression.SessionState
	combo      progression.Combo
	collection *progression.Collection
	evolution  progression.Evolution

	rounds       []domain.Round
	questions    map[string]domain.QuestionSpec
	answered     map[string]struct{}
	roundIndex   int
	roundCorrect int
}

func newGame(id, playerID string, stage progression.StageID, rules progression.Rules, catalog []domain.CollectionItem, state *progression.PersistedState, rounds []domain.Round) *Game {
	g := &Game{
		id:         id,
		playerID:   playerID,
		stage:      stage,
		rules:      rules,
		state:      state,
		session:    progression.NewSessionState(rules),
		combo:      progression.Combo{Best: state.BestCombo},
		collection: progression.NewCollection(catalog, state.Collection),
		evolution:  progression.Evolution{HasHatched: state.HasHatched},
		rounds:     rounds,
		questions:  make(map[string]domain.QuestionSpec),
		answered:   make(map[string]struct{}),
	}
	g.combo.ResetSession()
	state.Collection = g.collection.Unlocked()
	for _, r := range rounds {
		for _, q := range r.Questions {
			g.questions[q.ID] = q
		}
	}
	return g
}

// ID returns the session id.
func (g *Game) ID() string {
	return g.id
}

func (g *Game) submit(questionID string, answers []string) (domain.AnswerResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.session.Playing {
		return domain.AnswerResult{}, domain.ErrSessionFinished
	}
	q, ok := g.questions[questionID]
	if !ok {
		return domain.AnswerResult{}, domain.ErrQuestionNotFound
	}
	if _, done := g.answered[questionID]; done {
		return domain.AnswerResult{}, domain.ErrQuestionAnswered
	}
	g.answered[questionID] = struct{}{}

	correct := progression.Validate(q, answers)
	g.state.TotalAnswers++
	g.session.Answered++

	result := domain.AnswerResult{
		QuestionID:  questionID,
		Correct:     correct,
		Explanation: q.Explanation,
	}
	if !correct {
		g.combo.OnWrong()
		g.fillTotalsLocked(&result)
		return result, nil
	}

	// Bonuses are based on the streak before this answer.
	result.ScoreDelta = g.rules.ScoreForCorrect(g.combo.Current)
	result.ExpDelta = g.rules.ExpForCorrect(g.combo.Current)
	g.combo.OnCorrect()
	if g.combo.Best > g.state.BestCombo {
		g.state.BestCombo = g.combo.Best
	}

	g.session.Score += result.ScoreDelta
	g.session.SessionCorrect++
	g.state.CorrectAnswers++
	g.roundCorrect++

	up, err := g.state.Stages.AddExp(g.stage, result.ExpDelta, g.rules.StageGrowth)
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("stage exp: %w", err)
	}
	result.LevelsGained = up.LevelsGained

	axis, _, rewarded, err := g.state.Skills.Reward(q.Category, g.rules.SkillExpPerCorrect, g.rules.SkillGrowth)
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("skill exp: %w", err)
	}
	if rewarded {
		result.SkillAxis = string(axis)
	}

	result.Unlocked = g.collection.CheckUnlocks(g.state.PlayerLevel(g.rules.PlayerLevelRatio))
	g.state.Collection = g.collection.Unlocked()

	result.Hatched = g.evolution.CheckHatch(g.state.Stages.Level(g.rules.HatchStage), g.rules.HatchLevel)
	g.state.HasHatched = g.evolution.HasHatched

	g.fillTotalsLocked(&result)
	return result, nil
}

func (g *Game) fillTotalsLocked(result *domain.AnswerResult) {
	result.Combo = g.combo.Current
	result.TotalScore = g.session.Score
	result.StageLevel = g.state.Stages.Level(g.stage)
	result.PlayerLevel = g.state.PlayerLevel(g.rules.PlayerLevelRatio)
}

func (g *Game) endRound() (domain.RoundSummary, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.session.Playing {
		return domain.RoundSummary{}, domain.ErrSessionFinished
	}
	if g.roundIndex >= len(g.rounds) {
		g.session.Playing = false
		return domain.RoundSummary{Finished: true}, nil
	}

	round := g.rounds[g.roundIndex]
	summary := domain.RoundSummary{
		Round:   round.Number,
		Correct: g.roundCorrect,
		Total:   len(round.Questions),
	}
	g.roundIndex++
	g.roundCorrect = 0
	if g.roundIndex >= len(g.rounds) {
		g.session.Playing = false
		summary.Finished = true
	}
	return summary, nil
}

// finish ends the session and writes the player's progress.
func (g *Game) finish(ctx context.Context, store *ProgressStore) (domain.SessionSummary, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.session.Playing = false
	if err := store.Save(ctx, g.playerID, g.state); err != nil {
		return domain.SessionSummary{}, err
	}
	return domain.SessionSummary{
		SessionID:      g.id,
		Score:          g.session.Score,
		SessionCorrect: g.session.SessionCorrect,
		Answered:       g.session.Answered,
		BestCombo:      g.state.BestCombo,
		PlayerLevel:    g.state.PlayerLevel(g.rules.PlayerLevelRatio),
		Radar:          g.state.Skills.RadarVector(),
	}, nil
}

func (g *Game) radar() []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Skills.RadarVector()
}

func (g *Game) unlocked() []domain.CollectionItem {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.collection.UnlockedItems()
}

func (g *Game) hatch() domain.HatchState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return domain.HatchState{
		HasHatched:       g.evolution.HasHatched,
		PendingAnimation: g.evolution.PendingAnimation,
	}
}

func (g *Game) acknowledgeHatch() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.evolution.AcknowledgeAnimation()
}

package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skill-evolve-service/internal/domain"
	"skill-evolve-service/internal/progression"
)

// SessionRepository abstracts where live games are kept (in-memory, Redis-marked, etc).
type SessionRepository interface {
	Put(playerID string, game *Game)
	Get(playerID string) (*Game, bool)
	Delete(playerID string)
}

// BankRepository loads question banks (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, bankID string) (domain.Bank, error)
}

// StartRequest identifies who starts playing what.
type StartRequest struct {
	PlayerID   string
	PlayerName string
	Character  string
	BankID     string
	Stage      string
}

// GameService is the entry point for the presentation layer.
type GameService struct {
	sessions SessionRepository
	banks    BankRepository
	progress *ProgressStore
	rules    progression.Rules
	catalog  []domain.CollectionItem
	logger   *zap.Logger
	now      func() time.Time

	// lifecycle serializes replacing and ending a player's live game.
	lifecycle sync.Mutex
}

func NewGameService(sessions SessionRepository, banks BankRepository, progress *ProgressStore, rules progression.Rules, logger *zap.Logger) *GameService {
	return NewGameServiceWithClock(sessions, banks, progress, rules, logger, time.Now)
}

// NewGameServiceWithClock allows deterministic abandonment checks in tests.
func NewGameServiceWithClock(sessions SessionRepository, banks BankRepository, progress *ProgressStore, rules progression.Rules, logger *zap.Logger, now func() time.Time) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameService{
		sessions: sessions,
		banks:    banks,
		progress: progress,
		rules:    rules,
		catalog:  progression.DefaultCatalog(),
		logger:   logger,
		now:      now,
	}
}

// StartSession loads the player's progress and begins a new session on the requested stage.
func (s *GameService) StartSession(ctx context.Context, req StartRequest) (domain.SessionStart, error) {
	playerID := slotFor(req.PlayerID)
	stage, err := progression.ParseStage(req.Stage, s.rules.LegacyStageFallback)
	if err != nil {
		return domain.SessionStart{}, err
	}
	bank, err := s.banks.GetBank(ctx, req.BankID)
	if err != nil {
		return domain.SessionStart{}, err
	}

	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	if prev, ok := s.sessions.Get(playerID); ok {
		if _, err := prev.finish(ctx, s.progress); err != nil {
			return domain.SessionStart{}, err
		}
		s.sessions.Delete(playerID)
		s.logger.Info("previous session saved", zap.String("player", playerID), zap.String("session", prev.ID()))
	}

	start := domain.SessionStart{PlayerID: playerID, Stage: string(stage)}
	state, err := s.progress.Load(ctx, playerID)
	if errors.Is(err, domain.ErrDataCorruption) {
		s.logger.Warn("corrupted save replaced with a new player", zap.String("player", playerID), zap.Error(err))
		start.Warning = err.Error()
	} else if err != nil {
		return domain.SessionStart{}, err
	}

	start.Abandoned = s.abandoned(state)
	if req.PlayerName != "" {
		state.PlayerName = req.PlayerName
	}
	if req.Character != "" {
		state.SelectedCharacter = req.Character
	}

	level := state.PlayerLevel(s.rules.PlayerLevelRatio)
	rounds := domain.BuildRounds(bank.Questions, level)
	game := newGame(uuid.NewString(), playerID, stage, s.rules, s.catalog, state, rounds)
	s.sessions.Put(playerID, game)

	start.SessionID = game.ID()
	start.PlayerName = state.PlayerName
	start.PlayerLevel = level
	start.Rounds = rounds
	s.logger.Info("session started",
		zap.String("player", playerID),
		zap.String("session", game.ID()),
		zap.String("stage", string(stage)),
		zap.Int("level", level),
		zap.Bool("abandoned", start.Abandoned))
	return start, nil
}

// SubmitAnswer judges an answer and applies its rewards.
func (s *GameService) SubmitAnswer(_ context.Context, playerID, questionID string, answers []string) (domain.AnswerResult, error) {
	game, ok := s.sessions.Get(slotFor(playerID))
	if !ok {
		return domain.AnswerResult{}, domain.ErrSessionNotFound
	}
	result, err := game.submit(questionID, answers)
	if err != nil {
		return domain.AnswerResult{}, err
	}

	if result.LevelsGained > 0 {
		s.logger.Info("stage leveled up",
			zap.String("player", playerID),
			zap.String("stage", string(game.stage)),
			zap.Int("level", result.StageLevel))
	}
	for _, item := range result.Unlocked {
		s.logger.Info("collection unlocked", zap.String("player", playerID), zap.String("item", item.ID))
	}
	if result.Hatched {
		s.logger.Info("character hatched", zap.String("player", playerID))
	}
	return result, nil
}

// EndRound closes the current round and moves to the next one.
func (s *GameService) EndRound(_ context.Context, playerID string) (domain.RoundSummary, error) {
	game, ok := s.sessions.Get(slotFor(playerID))
	if !ok {
		return domain.RoundSummary{}, domain.ErrSessionNotFound
	}
	return game.endRound()
}

// EndSession saves the player's progress and drops the live session.
func (s *GameService) EndSession(ctx context.Context, playerID string) (domain.SessionSummary, error) {
	return s.endSession(ctx, playerID, "")
}

// EndSessionIfCurrent ends the player's session only while sessionID is still the live one.
// A session that was replaced by a newer StartSession reports domain.ErrSessionNotFound.
func (s *GameService) EndSessionIfCurrent(ctx context.Context, playerID, sessionID string) (domain.SessionSummary, error) {
	return s.endSession(ctx, playerID, sessionID)
}

func (s *GameService) endSession(ctx context.Context, playerID, sessionID string) (domain.SessionSummary, error) {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	playerID = slotFor(playerID)
	game, ok := s.sessions.Get(playerID)
	if !ok || (sessionID != "" && game.ID() != sessionID) {
		return domain.SessionSummary{}, domain.ErrSessionNotFound
	}
	summary, err := game.finish(ctx, s.progress)
	if err != nil {
		return domain.SessionSummary{}, err
	}
	s.sessions.Delete(playerID)
	s.logger.Info("session saved",
		zap.String("player", playerID),
		zap.String("session", summary.SessionID),
		zap.Int("score", summary.Score),
		zap.Int("level", summary.PlayerLevel))
	return summary, nil
}

// RadarVector returns the skill levels in radar order.
func (s *GameService) RadarVector(playerID string) ([]int, error) {
	game, ok := s.sessions.Get(slotFor(playerID))
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return game.radar(), nil
}

// UnlockedCollection returns the unlocked collectibles in catalog order.
func (s *GameService) UnlockedCollection(playerID string) ([]domain.CollectionItem, error) {
	game, ok := s.sessions.Get(slotFor(playerID))
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return game.unlocked(), nil
}

// HatchState reports the evolution latch.
func (s *GameService) HatchState(playerID string) (domain.HatchState, error) {
	game, ok := s.sessions.Get(slotFor(playerID))
	if !ok {
		return domain.HatchState{}, domain.ErrSessionNotFound
	}
	return game.hatch(), nil
}

// AcknowledgeHatch is called once the hatch effect has been shown.
func (s *GameService) AcknowledgeHatch(playerID string) error {
	game, ok := s.sessions.Get(slotFor(playerID))
	if !ok {
		return domain.ErrSessionNotFound
	}
	game.acknowledgeHatch()
	return nil
}

// Inspect reads saved progress without starting a session.
func (s *GameService) Inspect(ctx context.Context, playerID string) (domain.ProgressReport, error) {
	playerID = slotFor(playerID)
	var warning string
	state, err := s.progress.Load(ctx, playerID)
	if errors.Is(err, domain.ErrDataCorruption) {
		s.logger.Warn("corrupted save reported as a new player", zap.String("player", playerID), zap.Error(err))
		warning = err.Error()
	} else if err != nil {
		return domain.ProgressReport{}, err
	}
	stages := make(map[string]int, len(progression.AllStages()))
	for _, id := range progression.AllStages() {
		stages[string(id)] = state.Stages.Level(id)
	}
	return domain.ProgressReport{
		PlayerName:     state.PlayerName,
		PlayerLevel:    state.PlayerLevel(s.rules.PlayerLevelRatio),
		StageLevels:    stages,
		Radar:          state.Skills.RadarVector(),
		Unlocked:       progression.NewCollection(s.catalog, state.Collection).UnlockedItems(),
		HasHatched:     state.HasHatched,
		TotalAnswers:   state.TotalAnswers,
		CorrectAnswers: state.CorrectAnswers,
		BestCombo:      state.BestCombo,
		LastActive:     state.LastActive,
		Abandoned:      s.abandoned(state),
		Warning:        warning,
	}, nil
}

// ResetProgress drops any live session and deletes the player's save.
func (s *GameService) ResetProgress(ctx context.Context, playerID string) error {
	playerID = slotFor(playerID)
	s.sessions.Delete(playerID)
	if err := s.progress.Delete(ctx, playerID); err != nil {
		return err
	}
	s.logger.Info("progress reset", zap.String("player", playerID))
	return nil
}

func (s *GameService) abandoned(state *progression.PersistedState) bool {
	last, ok, err := state.LastActiveTime()
	if err != nil || !ok {
		return false
	}
	return progression.IsAbandoned(last, s.now(), s.rules.AbandonAfterHours)
}

// slotFor maps an anonymous player onto the single-player save slot.
func slotFor(playerID string) string {
	if playerID == "" {
		return DefaultSlot
	}
	return playerID
}

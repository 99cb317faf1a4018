package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-evolve-service/internal/domain"
	"skill-evolve-service/internal/progression"
)

// DefaultSlot is the save slot used when no player id is given.
const DefaultSlot = "SkillEvolveSaveData"

// ProgressRepository abstracts where save records live (memory, file, Redis, Postgres).
// Get returns domain.ErrProgressNotFound when the slot is empty.
type ProgressRepository interface {
	Get(ctx context.Context, slot string) ([]byte, error)
	Put(ctx context.Context, slot string, data []byte) error
	Delete(ctx context.Context, slot string) error
}

// ProgressStore saves and restores player progress through a ProgressRepository.
type ProgressStore struct {
	repo ProgressRepository
	now  func() time.Time
}

func NewProgressStore(repo ProgressRepository) *ProgressStore {
	return NewProgressStoreWithClock(repo, time.Now)
}

// NewProgressStoreWithClock allows deterministic timestamps in tests.
func NewProgressStoreWithClock(repo ProgressRepository, now func() time.Time) *ProgressStore {
	return &ProgressStore{repo: repo, now: now}
}

// Save stamps the last-active time on state and writes its persisted fields.
func (s *ProgressStore) Save(ctx context.Context, slot string, state *progression.PersistedState) error {
	state.LastActive = s.now().UTC().Format(time.RFC3339Nano)
	data, err := progression.EncodeState(state)
	if err != nil {
		return err
	}
	if err := s.repo.Put(ctx, slot, data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Load reads a slot. An empty slot yields a new player. A corrupted record also yields a new
// player, together with an error wrapping domain.ErrDataCorruption so the caller can warn.
func (s *ProgressStore) Load(ctx context.Context, slot string) (*progression.PersistedState, error) {
	data, err := s.repo.Get(ctx, slot)
	if errors.Is(err, domain.ErrProgressNotFound) {
		return progression.NewPersistedState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	state, err := progression.DecodeState(data)
	if err != nil {
		return progression.NewPersistedState(), err
	}
	return state, nil
}

// Delete removes a slot. Loading it afterwards yields a new player.
func (s *ProgressStore) Delete(ctx context.Context, slot string) error {
	if err := s.repo.Delete(ctx, slot); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

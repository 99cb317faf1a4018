package memory

import (
	"context"
	"sync"

	"skill-evolve-service/internal/domain"
)

// ProgressRepository keeps save records in process memory. Records do not survive a restart.
type ProgressRepository struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{records: make(map[string][]byte)}
}

func (r *ProgressRepository) Get(_ context.Context, slot string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.records[slot]
	if !ok {
		return nil, domain.ErrProgressNotFound
	}
	return append([]byte(nil), data...), nil
}

func (r *ProgressRepository) Put(_ context.Context, slot string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[slot] = append([]byte(nil), data...)
	return nil
}

func (r *ProgressRepository) Delete(_ context.Context, slot string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, slot)
	return nil
}

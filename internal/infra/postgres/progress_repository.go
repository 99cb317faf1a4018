package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"skill-evolve-service/internal/domain"
)

// ProgressRepository keeps one save record per slot in the player_progress table.
// Records are stored as text so a corrupted document still round-trips to the decoder.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

func (r *ProgressRepository) Get(ctx context.Context, slot string) ([]byte, error) {
	var data string
	err := r.pool.QueryRow(ctx, `SELECT data FROM player_progress WHERE slot=$1`, slot).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProgressNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load progress %s: %w", slot, err)
	}
	return []byte(data), nil
}

func (r *ProgressRepository) Put(ctx context.Context, slot string, data []byte) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO player_progress (slot, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (slot) DO UPDATE SET data=EXCLUDED.data, updated_at=EXCLUDED.updated_at`,
		slot, string(data))
	if err != nil {
		return fmt.Errorf("store progress %s: %w", slot, err)
	}
	return nil
}

func (r *ProgressRepository) Delete(ctx context.Context, slot string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM player_progress WHERE slot=$1`, slot); err != nil {
		return fmt.Errorf("delete progress %s: %w", slot, err)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"skill-evolve-service/internal/app"
	"skill-evolve-service/internal/config"
	"skill-evolve-service/internal/domain"
	"skill-evolve-service/internal/infra/file"
	"skill-evolve-service/internal/infra/memory"
	pgstore "skill-evolve-service/internal/infra/postgres"
	redisstore "skill-evolve-service/internal/infra/redis"
)

// backends holds the connections opened for one command run.
type backends struct {
	redis *redis.Client
	pool  *pgxpool.Pool
}

func (b *backends) Close() {
	if b.redis != nil {
		b.redis.Close()
	}
	if b.pool != nil {
		b.pool.Close()
	}
}

func openBackends(ctx context.Context, cfg config.Config) (*backends, error) {
	b := &backends{}
	if cfg.Redis.Addr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		b.pool = pool
	}
	return b, nil
}

// progressRepository picks the most durable configured store: postgres, redis, files, then memory.
func progressRepository(cfg config.Config, b *backends, logger *zap.Logger) (app.ProgressRepository, error) {
	switch {
	case b.pool != nil:
		logger.Info("progress store", zap.String("backend", "postgres"))
		return pgstore.NewProgressRepository(b.pool), nil
	case b.redis != nil:
		logger.Info("progress store", zap.String("backend", "redis"))
		return redisstore.NewProgressRepository(b.redis), nil
	case cfg.Store.Dir != "":
		logger.Info("progress store", zap.String("backend", "file"), zap.String("dir", cfg.Store.Dir))
		return file.NewProgressRepository(cfg.Store.Dir)
	default:
		logger.Warn("progress store is in memory; saves are lost on exit")
		return memory.NewProgressRepository(), nil
	}
}

func bankRepository(cfg config.Config, b *backends) app.BankRepository {
	var loader memory.BankLoader = memory.NewStaticBankLoader(sampleBanks())
	switch {
	case b.pool != nil:
		loader = pgstore.NewBankLoader(b.pool)
	case cfg.Bank.Dir != "":
		loader = file.NewBankLoader(cfg.Bank.Dir)
	}

	ttl := config.TTLDuration(cfg.Bank.TTL, 10*time.Minute)
	if b.redis != nil {
		return redisstore.NewBankRepository(b.redis, loader, ttl)
	}
	return memory.NewBankRepository(loader, ttl)
}

func sessionRepository(cfg config.Config, b *backends) app.SessionRepository {
	if b.redis != nil {
		return redisstore.NewSessionStore(b.redis, config.TTLDuration(cfg.Redis.TTL, 10*time.Minute))
	}
	return memory.NewSessionStore()
}

// buildService wires a GameService from config. Callers close the returned backends.
func buildService(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app.GameService, *backends, error) {
	rules, err := config.Rules(cfg)
	if err != nil {
		return nil, nil, err
	}
	b, err := openBackends(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	repo, err := progressRepository(cfg, b, logger)
	if err != nil {
		b.Close()
		return nil, nil, err
	}
	service := app.NewGameService(sessionRepository(cfg, b), bankRepository(cfg, b), app.NewProgressStore(repo), rules, logger)
	return service, b, nil
}

func loadConfigAndLogger(path string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}

// sampleBanks is served when neither postgres nor a bank directory is configured.
func sampleBanks() map[string]domain.Bank {
	return map[string]domain.Bank{
		"sample": {
			ID: "sample",
			Questions: []domain.QuestionSpec{
				{
					ID: "r1-q1", No: 1, Round: 1, Kind: domain.KindSingle, Format: domain.FormatFourChoice,
					Prompt:   "Which word is a noun?",
					Options:  []string{"A", "B", "C", "D"},
					Choices:  map[string]string{"A": "run", "B": "apple", "C": "quickly", "D": "blue"},
					Answer:   "B",
					Category: "文法",
				},
				{
					ID: "r1-q2", No: 2, Round: 1, Kind: domain.KindSingle, Format: domain.FormatTrueFalse,
					Prompt:   "A thesis statement belongs in the introduction.",
					Options:  []string{"A", "B"},
					Choices:  map[string]string{"A": "○", "B": "×"},
					Answer:   "A",
					Category: "構成",
				},
				{
					ID: "r2-q1", No: 1, Round: 2, Kind: domain.KindMultiple,
					Prompt:   "Pick every synonym of \"big\".",
					Options:  []string{"A", "B", "C", "D"},
					Choices:  map[string]string{"A": "large", "B": "tiny", "C": "huge", "D": "thin"},
					Answers:  []string{"A", "C"},
					Category: "語彙",
				},
			},
		},
	}
}

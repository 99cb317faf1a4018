package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"skill-evolve-service/internal/progression"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Bank struct {
		Dir string `yaml:"dir"`
		TTL string `yaml:"ttl"`
	} `yaml:"bank"`
	Store struct {
		Dir string `yaml:"dir"`
	} `yaml:"store"`
	Game GameConfig `yaml:"game"`
	Log  struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

// GameConfig overrides individual game rules. Zero values keep the defaults.
type GameConfig struct {
	HatchStage          string  `yaml:"hatch_stage"`
	HatchLevel          int     `yaml:"hatch_level"`
	AbandonHours        float64 `yaml:"abandon_hours"`
	TimeLimit           string  `yaml:"time_limit"`
	LegacyStageFallback bool    `yaml:"legacy_stage_fallback"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// Rules overlays the game section on the default rules.
func Rules(cfg Config) (progression.Rules, error) {
	rules := progression.DefaultRules()
	g := cfg.Game
	rules.LegacyStageFallback = g.LegacyStageFallback
	if g.HatchStage != "" {
		stage, err := progression.ParseStage(g.HatchStage, false)
		if err != nil {
			return rules, fmt.Errorf("game.hatch_stage: %w", err)
		}
		rules.HatchStage = stage
	}
	if g.HatchLevel > 0 {
		rules.HatchLevel = g.HatchLevel
	}
	if g.AbandonHours > 0 {
		rules.AbandonAfterHours = g.AbandonHours
	}
	rules.QuizTimeLimit = TTLDuration(g.TimeLimit, rules.QuizTimeLimit)
	return rules, nil
}

// NewLogger builds a zap logger from the log section. An empty level means info.
func NewLogger(cfg Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Log.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	if cfg.Log.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("log.level: %w", err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zcfg.Build()
}

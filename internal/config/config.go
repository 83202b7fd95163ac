package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/brokencalc/broken-calc-go/internal/game"
)

// Config is the host configuration, loaded from environment variables.
// Defaults match the original game: five equations per round, three broken
// buttons, two-digit targets, in-memory session history.
type Config struct {
	TargetMin     int    `env:"BROKENCALC_TARGET_MIN" envDefault:"10"`
	TargetMax     int    `env:"BROKENCALC_TARGET_MAX" envDefault:"99"`
	Equations     int    `env:"BROKENCALC_EQUATIONS" envDefault:"5"`
	BrokenButtons int    `env:"BROKENCALC_BROKEN_BUTTONS" envDefault:"3"`
	Seed          int64  `env:"BROKENCALC_SEED" envDefault:"0"`
	DatabaseDSN   string `env:"BROKENCALC_DB" envDefault:":memory:"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TargetMin < 1 {
		return Config{}, fmt.Errorf("target min %d: must be at least 1", cfg.TargetMin)
	}
	if cfg.TargetMax < cfg.TargetMin {
		return Config{}, fmt.Errorf("target range %d-%d: max below min", cfg.TargetMin, cfg.TargetMax)
	}
	if cfg.Equations < 1 {
		return Config{}, fmt.Errorf("equations per round %d: must be at least 1", cfg.Equations)
	}
	if cfg.BrokenButtons < 0 {
		return Config{}, fmt.Errorf("broken buttons %d: must not be negative", cfg.BrokenButtons)
	}
	return cfg, nil
}

// GameSettings maps the configuration onto session settings.
func (c Config) GameSettings() game.Settings {
	return game.Settings{
		TargetMin:     c.TargetMin,
		TargetMax:     c.TargetMax,
		Required:      c.Equations,
		BrokenButtons: c.BrokenButtons,
		Seed:          c.Seed,
	}
}

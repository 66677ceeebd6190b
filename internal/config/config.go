// Package config loads the demo driver's process configuration: freeze
// window durations and the concealment timer default, the way
// stadtaev-playpery's api/internal/config parses a flat Config struct from
// the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is cmd/avalonctl's process configuration.
type Config struct {
	AfterTeamProposition time.Duration `env:"AFTER_TEAM_PROPOSITION" envDefault:"5s"`
	AfterTeamVoting      time.Duration `env:"AFTER_TEAM_VOTING" envDefault:"5s"`
	AfterQuestVoting     time.Duration `env:"AFTER_QUEST_VOTING" envDefault:"5s"`
	RevealRolesSeconds   int           `env:"REVEAL_ROLES_SECONDS" envDefault:"10"`
	RandomSeed           int64         `env:"RANDOM_SEED" envDefault:"0"`
}

// Load reads a .env file if present, then parses Config from the process
// environment. A missing .env file is not an error: it is a convenience
// for local runs, not a requirement.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AfterTeamProposition != 5*time.Second {
		t.Fatalf("expected default AfterTeamProposition of 5s, got %v", cfg.AfterTeamProposition)
	}
	if cfg.RevealRolesSeconds != 10 {
		t.Fatalf("expected default RevealRolesSeconds of 10, got %d", cfg.RevealRolesSeconds)
	}
}

func TestLoadReadsEnvOverride(t *testing.T) {
	t.Setenv("REVEAL_ROLES_SECONDS", "30")
	t.Setenv("RANDOM_SEED", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RevealRolesSeconds != 30 {
		t.Fatalf("expected override RevealRolesSeconds of 30, got %d", cfg.RevealRolesSeconds)
	}
	if cfg.RandomSeed != 7 {
		t.Fatalf("expected override RandomSeed of 7, got %d", cfg.RandomSeed)
	}
}

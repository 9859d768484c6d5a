package config

import "testing"

type testConfig struct {
	StorePath string `env:"PARLOR_GAMES_TEST_STORE_PATH" envDefault:"games.db"`
	LockWait  int    `env:"PARLOR_GAMES_TEST_LOCK_WAIT_MS" envDefault:"5000"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.StorePath != "games.db" {
		t.Fatalf("store path = %q, want %q", cfg.StorePath, "games.db")
	}
	if cfg.LockWait != 5000 {
		t.Fatalf("lock wait = %d, want 5000", cfg.LockWait)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("PARLOR_GAMES_TEST_STORE_PATH", "/tmp/override.db")
	t.Setenv("PARLOR_GAMES_TEST_LOCK_WAIT_MS", "250")

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.StorePath != "/tmp/override.db" {
		t.Fatalf("store path = %q, want override", cfg.StorePath)
	}
	if cfg.LockWait != 250 {
		t.Fatalf("lock wait = %d, want 250", cfg.LockWait)
	}
}

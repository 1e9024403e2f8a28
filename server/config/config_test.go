package config

import (
	"testing"

	"rummy-player/server/store"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PLAYER_NAME", "PORT", "DEBUG", "GAME_SERVER_URL", "REGISTER_PATH",
		"EXPLORATION_RATE", "STATS_MODE", "STATS_DATABASE_PATH", "DECISION_SEED", "AUTO_MIGRATE"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.Port != 10500 {
		t.Fatalf("port = %d", cfg.Port)
	}
	if cfg.RegisterURL() != "http://127.0.0.1:16200/register" {
		t.Fatalf("register url = %s", cfg.RegisterURL())
	}
	if cfg.ExplorationRate != 0.1 {
		t.Fatalf("epsilon = %v", cfg.ExplorationRate)
	}
	if cfg.StatsMode != store.ModeSQLite || cfg.SQLitePath != store.DefaultSQLitePath {
		t.Fatalf("unexpected store settings %q %q", cfg.StatsMode, cfg.SQLitePath)
	}
	if !cfg.AutoMigrate {
		t.Fatalf("auto migrate should default on")
	}
}

func TestFromEnvDebugUsesTestEndpoint(t *testing.T) {
	t.Setenv("DEBUG", "yes")
	t.Setenv("REGISTER_PATH", "")
	t.Setenv("GAME_SERVER_URL", "http://dealer:9000/")
	cfg := FromEnv()
	if got := cfg.RegisterURL(); got != "http://dealer:9000/test" {
		t.Fatalf("register url = %s", got)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PLAYER_NAME", "EvanH")
	t.Setenv("PORT", "12000")
	t.Setenv("EXPLORATION_RATE", "0.25")
	t.Setenv("STATS_MODE", "postgresql")
	t.Setenv("DECISION_SEED", "42")
	cfg := FromEnv()
	if cfg.PlayerName != "EvanH" || cfg.Port != 12000 || cfg.DecisionSeed != 42 {
		t.Fatalf("overrides ignored: %+v", cfg)
	}
	if cfg.ExplorationRate != 0.25 {
		t.Fatalf("epsilon = %v", cfg.ExplorationRate)
	}
	if cfg.StatsMode != store.ModePostgres {
		t.Fatalf("mode = %q", cfg.StatsMode)
	}
}

func TestFromEnvRejectsBadNumbers(t *testing.T) {
	t.Setenv("PORT", "abc")
	t.Setenv("EXPLORATION_RATE", "1.5")
	cfg := FromEnv()
	if cfg.Port != 10500 || cfg.ExplorationRate != 0.1 {
		t.Fatalf("bad values should fall back: port=%d eps=%v", cfg.Port, cfg.ExplorationRate)
	}
}

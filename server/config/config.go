package config

import (
	"os"
	"strconv"
	"strings"

	"rummy-player/server/store"
)

type Config struct {
	PlayerName string
	Host       string
	Port       int
	Debug      bool

	GameServerURL string
	RegisterPath  string

	LogFile string

	ExplorationRate float64
	DecisionSeed    int64

	StatsMode   string
	SQLitePath  string
	DatabaseURL string
	AutoMigrate bool
}

// FromEnv reads the process configuration. Call godotenv.Load first so a
// local .env can supply any of these.
func FromEnv() Config {
	debug := asBool(os.Getenv("DEBUG"))
	registerPath := "/register"
	if debug {
		registerPath = "/test"
	}
	return Config{
		PlayerName:      getenv("PLAYER_NAME", "RummyBot"),
		Host:            getenv("PLAYER_HOST", "127.0.0.1"),
		Port:            atoiDef(os.Getenv("PORT"), 10500),
		Debug:           debug,
		GameServerURL:   strings.TrimRight(getenv("GAME_SERVER_URL", "http://127.0.0.1:16200"), "/"),
		RegisterPath:    getenv("REGISTER_PATH", registerPath),
		LogFile:         getenv("LOG_FILE", "RummyPlayer.log"),
		ExplorationRate: floatDef(os.Getenv("EXPLORATION_RATE"), 0.1),
		DecisionSeed:    int64(atoiDef(os.Getenv("DECISION_SEED"), 0)),
		StatsMode:       store.NormalizeMode(os.Getenv("STATS_MODE")),
		SQLitePath:      getenv("STATS_DATABASE_PATH", store.DefaultSQLitePath),
		DatabaseURL:     getenv("DATABASE_URL", ""),
		AutoMigrate:     asBool(getenv("AUTO_MIGRATE", "1")),
	}
}

func (c Config) RegisterURL() string {
	path := c.RegisterPath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.GameServerURL + path
}

func (c Config) StoreOptions() store.Options {
	return store.Options{
		Mode:        c.StatsMode,
		SQLitePath:  c.SQLitePath,
		DatabaseURL: c.DatabaseURL,
		AutoMigrate: c.AutoMigrate,
	}
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// floatDef clamps to [0,1] since every float setting is a probability.
func floatDef(s string, def float64) float64 {
	if strings.TrimSpace(s) == "" {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 || f > 1 {
		return def
	}
	return f
}

func asBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("store: record not found")

const (
	ModeSQLite   = "sqlite"
	ModePostgres = "postgres"
	ModeMemory   = "memory"
)

// Backend keeps one opaque payload per key. Save replaces the whole payload
// in a single statement so a record is never half written.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
	Close() error
}

type Options struct {
	Mode        string
	SQLitePath  string
	DatabaseURL string
	AutoMigrate bool
}

// NormalizeMode maps the accepted spellings of STATS_MODE onto a mode.
func NormalizeMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", ModeSQLite, "sqlite3", "local":
		return ModeSQLite
	case ModePostgres, "postgresql", "pg", "db":
		return ModePostgres
	case ModeMemory, "mem":
		return ModeMemory
	default:
		return strings.ToLower(strings.TrimSpace(raw))
	}
}

func Open(ctx context.Context, opts Options) (Backend, error) {
	mode := NormalizeMode(opts.Mode)
	switch mode {
	case ModeSQLite:
		db, err := OpenSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	case ModePostgres:
		db, err := OpenPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if opts.AutoMigrate {
			if err := Migrate(ctx, db); err != nil {
				db.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		return db, nil
	case ModeMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("invalid STATS_MODE %q (supported: %s, %s, %s)", mode, ModeSQLite, ModePostgres, ModeMemory)
	}
}

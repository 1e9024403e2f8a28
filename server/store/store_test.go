package store

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, err := b.Load(ctx, "EvanH"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}
	if err := b.Save(ctx, "EvanH", []byte(`{"draw":{}}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := b.Save(ctx, "EvanH", []byte(`{"draw":{"draw stock":{"wins":1,"losses":0}}}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := b.Load(ctx, "EvanH")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// jsonb re-renders whitespace, so compare decoded values.
	var decoded map[string]map[string]map[string]int
	if err := json.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("payload is not json: %v (%s)", err, got)
	}
	if c := decoded["draw"]["draw stock"]; c["wins"] != 1 || c["losses"] != 0 {
		t.Fatalf("unexpected payload %s", got)
	}
	if _, err := b.Load(ctx, "someone-else"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("keys should be isolated, got %v", err)
	}
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemory())
}

func TestSQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stats.db")
	b, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseBackend(t, b)
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.Load(context.Background(), "EvanH"); err != nil {
		t.Fatalf("record did not survive reopen: %v", err)
	}
}

func TestPostgresBackend(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := OpenPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := db.Exec(ctx, `DELETE FROM learning_stats WHERE player IN ('EvanH', 'someone-else')`); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	exerciseBackend(t, db)
}

func TestOpenRejectsUnknownMode(t *testing.T) {
	if _, err := Open(context.Background(), Options{Mode: "redis"}); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestNormalizeMode(t *testing.T) {
	cases := map[string]string{
		"":           ModeSQLite,
		" SQLite ":   ModeSQLite,
		"postgresql": ModePostgres,
		"mem":        ModeMemory,
	}
	for in, want := range cases {
		if got := NormalizeMode(in); got != want {
			t.Fatalf("NormalizeMode(%q) = %q, want %q", in, got, want)
		}
	}
}

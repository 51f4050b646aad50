package database

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/lingodeck/internal/infrastructure/config"
)

func TestRebind(t *testing.T) {
	pg := &DB{Driver: config.DriverPostgres}
	got := pg.Rebind("SELECT id FROM sentences WHERE status = ? AND next_due <= ? LIMIT ?")
	want := "SELECT id FROM sentences WHERE status = $1 AND next_due <= $2 LIMIT $3"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	lite := &DB{Driver: config.DriverSQLite}
	if q := "SELECT ? "; lite.Rebind(q) != q {
		t.Fatalf("sqlite query must be left alone")
	}
}

func TestNewConnectionSQLite(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{
		Driver: "sqlite3",
		DSN:    "file:" + filepath.Join(t.TempDir(), "test.db"),
	}}
	db, cleanup, err := NewConnection(cfg, logrus.New())
	if err != nil {
		t.Skipf("sqlite driver not available: %v", err)
	}
	defer cleanup()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sentences`).Scan(&count); err != nil {
		t.Fatalf("sentences table missing: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d rows", count)
	}

	// Migrating twice is harmless.
	if err := Migrate(t.Context(), db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

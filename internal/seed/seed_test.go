package seed

import (
	"path/filepath"
	"testing"

	"fieldquote/internal/db"
	"fieldquote/internal/migrations"
)

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	for i := 0; i < 10; i++ {
		stats, err := Run(database)
		if err != nil {
			t.Fatalf("run seed (iteration=%d): %v", i, err)
		}
		if i == 0 {
			if stats.Inserts != 1 {
				t.Fatalf("expected 1 insert in first run, got %d", stats.Inserts)
			}
			continue
		}
		if stats.Inserts != 0 {
			t.Fatalf("expected 0 inserts in iteration %d, got %d", i, stats.Inserts)
		}
	}

	var count int
	if err := database.QueryRow(`SELECT COUNT(*) FROM catalog_config WHERE id = 1`).Scan(&count); err != nil {
		t.Fatalf("count catalog config: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one catalog config row, got %d", count)
	}

	var raw string
	if err := database.QueryRow(`SELECT raw_json FROM catalog_config WHERE id = 1`).Scan(&raw); err != nil {
		t.Fatalf("query catalog config: %v", err)
	}
	if raw != "{}" {
		t.Fatalf("seeded raw config = %q, want empty document", raw)
	}
}

func TestRunKeepsEditedConfig(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "seed-keep-test.db")
	database, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "../../migrations"); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := Run(database); err != nil {
		t.Fatalf("run seed: %v", err)
	}

	edited := `{"vatPercent": 7.7}`
	if _, err := database.Exec(`UPDATE catalog_config SET raw_json = ? WHERE id = 1`, edited); err != nil {
		t.Fatalf("edit catalog config: %v", err)
	}

	if _, err := Run(database); err != nil {
		t.Fatalf("re-run seed: %v", err)
	}

	var raw string
	if err := database.QueryRow(`SELECT raw_json FROM catalog_config WHERE id = 1`).Scan(&raw); err != nil {
		t.Fatalf("query catalog config: %v", err)
	}
	if raw != edited {
		t.Fatalf("seed overwrote an edited config: %q", raw)
	}
}

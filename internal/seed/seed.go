// Package seed prepares a fresh database for first use.
package seed

import (
	"database/sql"
	"fmt"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way: it makes sure the
// tariff configuration singleton exists. The row starts as an empty document,
// meaning "use the builtin defaults for everything".
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	if err := ensureCatalogConfig(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}
	return stats, nil
}

func ensureCatalogConfig(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM catalog_config WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check catalog config existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`INSERT INTO catalog_config (id, raw_json) VALUES (1, '{}')`); err != nil {
		return fmt.Errorf("insert catalog config singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

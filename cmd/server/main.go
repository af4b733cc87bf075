package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"fieldquote/internal/catalog"
	"fieldquote/internal/config"
	"fieldquote/internal/db"
	"fieldquote/internal/logging"
	"fieldquote/internal/migrations"
	"fieldquote/internal/seed"
	"fieldquote/internal/store"
)

func main() {
	cfg := config.Load()
	log := logging.Init(cfg.LogLevel, cfg.Development())
	defer logging.Sync()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	if cfg.Development() {
		if err := migrations.Up(database, "migrations"); err != nil {
			log.Fatal("run migrations", zap.Error(err))
		}
	}

	stats, err := seed.Run(database)
	if err != nil {
		log.Fatal("seed database", zap.Error(err))
	}
	if stats.Inserts > 0 {
		log.Info("seeded database", zap.Int("inserts", stats.Inserts))
	}

	st := store.New(database)
	if err := importCatalogFile(st, cfg.CatalogPath); err != nil {
		log.Fatal("import catalog file", zap.Error(err), zap.String("path", cfg.CatalogPath))
	}

	srv := &server{store: st, log: log}

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// importCatalogFile bootstraps the stored tariff configuration from a file.
// A config that was already edited through the admin API wins over the file.
func importCatalogFile(st *store.Store, path string) error {
	if path == "" {
		return nil
	}

	current, err := st.GetRawCatalog()
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	if err == nil && strings.TrimSpace(string(current)) != "{}" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	raw, err := catalog.ParseRaw(data)
	if err != nil {
		return err
	}
	// Stored canonically as JSON, whatever the file format was.
	doc, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return st.UpdateRawCatalog(doc)
}

// Package config sources runtime configuration from the environment, with an
// optional .env file for local development.
package config

import "os"

const (
	defaultPort     = "8080"
	defaultDBPath   = "./fieldquote.db"
	defaultLogLevel = "info"
	defaultEnv      = "development"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port        string
	DBPath      string
	CatalogPath string
	LogLevel    string
	Env         string
}

// Development reports whether the process runs in a development environment.
func (c Config) Development() bool {
	return c.Env != "production"
}

// Load reads environment variables and returns a populated Config. A local
// .env file is applied first, best-effort; production should rely on real
// env injection.
func Load() Config {
	_ = loadDotEnv(".env")

	cfg := Config{
		Port:        os.Getenv("PORT"),
		DBPath:      os.Getenv("DB_PATH"),
		CatalogPath: os.Getenv("CATALOG_PATH"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		Env:         os.Getenv("ENV"),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}

	return cfg
}

// Package config reads pageport settings from the environment and an
// optional .env file. Command-line flags override these values.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvCatalogDir    = "PAGEPORT_CATALOG_DIR"
	EnvCatalogDB     = "PAGEPORT_CATALOG_DB"
	EnvAlphabetCache = "PAGEPORT_ALPHABET_CACHE"
	EnvLogLevel      = "PAGEPORT_LOG_LEVEL"
	EnvFormat        = "PAGEPORT_FORMAT"
)

// DefaultAlphabetCache is the alphabet LRU size when none is configured.
const DefaultAlphabetCache = 128

type Config struct {
	// CatalogDirs are CUE catalog extensions appended to the built-in
	// catalog, in order. PAGEPORT_CATALOG_DIR may list several separated
	// by the OS path list separator.
	CatalogDirs []string

	// CatalogDB, when set, loads the catalog from a SQLite snapshot
	// instead of CUE sources.
	CatalogDB string

	AlphabetCache int
	LogLevel      slog.Level
	Format        string
}

// Load reads the given .env files (".env" when none are named) and then
// the environment. Missing .env files are ignored; variables already set
// in the environment win over .env values.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)

	cfg := &Config{
		CatalogDirs:   splitList(os.Getenv(EnvCatalogDir)),
		CatalogDB:     strings.TrimSpace(os.Getenv(EnvCatalogDB)),
		AlphabetCache: DefaultAlphabetCache,
		LogLevel:      slog.LevelInfo,
		Format:        "text",
	}

	if raw := strings.TrimSpace(os.Getenv(EnvAlphabetCache)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", EnvAlphabetCache, raw)
		}
		cfg.AlphabetCache = n
	}

	if raw := strings.TrimSpace(os.Getenv(EnvLogLevel)); raw != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	if raw := strings.ToLower(strings.TrimSpace(os.Getenv(EnvFormat))); raw != "" {
		if raw != "text" && raw != "json" {
			return nil, fmt.Errorf("%s must be text or json, got %q", EnvFormat, raw)
		}
		cfg.Format = raw
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, string(os.PathListSeparator)) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

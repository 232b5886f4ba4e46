package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default directory endpoints. The widget serves the same listing for any
// address, so the search URL just pins a deterministic starting point.
const (
	DefaultBaseURL   = "https://www.andalusiahealth.com"
	DefaultSearchURL = DefaultBaseURL + "/find-a-doctor/results?address=andalusia%2C+al&defaultSort=true"
)

// Config holds the program configuration, loadable from a YAML file.
type Config struct {
	// DB is the SQLite database path. Overridable with PROVDIR_DB.
	DB string `yaml:"db"`

	// PostgresDSN switches storage to Postgres when set.
	PostgresDSN string `yaml:"postgres_dsn"`

	// BaseURL resolves relative profile and image links.
	BaseURL string `yaml:"base_url"`

	// SearchURL is the directory listing to scrape.
	SearchURL string `yaml:"search_url"`

	// Pages is the number of listing pages to fetch.
	Pages int `yaml:"pages"`

	// RateLimit is the maximum page requests per second.
	RateLimit float64 `yaml:"rate_limit"`

	// Concurrency is the concurrent fetch limit.
	Concurrency int `yaml:"concurrency"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		DB:          defaultDBPath(),
		BaseURL:     DefaultBaseURL,
		SearchURL:   DefaultSearchURL,
		Pages:       1,
		RateLimit:   1.0,
		Concurrency: 2,
	}
}

// LoadConfig reads the YAML config file at path, falling back to
// ~/.provdir/config.yaml when path is empty. A missing file is not an
// error; defaults are returned. The PROVDIR_DB environment variable
// overrides the database path either way.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".provdir", "config.yaml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %q: %w", path, err)
		}
	}

	if dbPath := os.Getenv("PROVDIR_DB"); dbPath != "" {
		cfg.DB = dbPath
	}

	return cfg, nil
}

func defaultDBPath() string {
	if path := os.Getenv("PROVDIR_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "provdir.db"
	}
	dir := filepath.Join(home, ".provdir")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "provdir.db")
}

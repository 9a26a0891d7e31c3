// Package daemon manages the Ekima engine lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all engine configuration.
type Config struct {
	API          APIConfig          `toml:"api"`
	Gamification GamificationConfig `toml:"gamification"`
	Leaderboard  LeaderboardConfig  `toml:"leaderboard"`
	Telemetry    TelemetryConfig    `toml:"telemetry"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// GamificationConfig tunes the XP engine and achievement catalog.
type GamificationConfig struct {
	XPPerLevel  int64  `toml:"xp_per_level"`
	MaxLevel    int    `toml:"max_level"`
	CatalogFile string `toml:"catalog_file"` // empty = built-in catalog

	// SourceMultipliers overrides the award-source multiplier table.
	SourceMultipliers map[string]float64 `toml:"source_multipliers"`
}

// LeaderboardConfig controls the leaderboard cache.
type LeaderboardConfig struct {
	TTLSeconds int `toml:"ttl_seconds"`
	Limit      int `toml:"limit"`
}

// TelemetryConfig controls observability.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// TTL returns the leaderboard cache TTL as a duration.
func (l LeaderboardConfig) TTL() time.Duration {
	return time.Duration(l.TTLSeconds) * time.Second
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        8820,
			CORSOrigins: []string{"*"},
		},
		Gamification: GamificationConfig{
			XPPerLevel: 1000,
			MaxLevel:   100,
		},
		Leaderboard: LeaderboardConfig{
			TTLSeconds: 300,
			Limit:      100,
		},
		Telemetry: TelemetryConfig{
			Prometheus: false,
		},
	}
}

// LoadConfig reads config from ~/.ekima/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(ekimaHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Gamification.XPPerLevel <= 0 {
		cfg.Gamification.XPPerLevel = 1000
	}
	if cfg.Gamification.MaxLevel <= 0 {
		cfg.Gamification.MaxLevel = 100
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.ekima/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(ekimaHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// ekimaHome returns the Ekima data directory.
func ekimaHome() string {
	if env := os.Getenv("EKIMA_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ekima")
}

// EkimaHome is exported for use by other packages.
func EkimaHome() string {
	return ekimaHome()
}

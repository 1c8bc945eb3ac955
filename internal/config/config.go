// Package config loads the storage engine configuration from the
// environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Adjust flag bits: which non-price fields get inversely scaled when a
// series is price-adjusted.
const (
	// AdjustVolume scales volume by the inverse factor.
	AdjustVolume uint32 = 1 << iota
	// AdjustTurnover scales turnover by the inverse factor.
	AdjustTurnover
	// AdjustOpenInterest scales open interest by the inverse factor.
	AdjustOpenInterest
)

// Config represents the storage engine configuration.
type Config struct {
	Store StoreConfig `envPrefix:"STORE_"`
}

// StoreConfig represents the data store configuration.
type StoreConfig struct {
	// RootDir is the directory holding the his/ and rt/ trees.
	RootDir string `env:"ROOT_DIR" envDefault:"./storage"`
	// AdjustFile is an optional JSON adjustment factor file.
	AdjustFile string `env:"ADJUST_FILE"`
	// HotsFile is an optional JSON rollover rule file for the primary
	// continuous contract.
	HotsFile string `env:"HOTS_FILE"`
	// SecondsFile is an optional JSON rollover rule file for the secondary
	// continuous contract.
	SecondsFile string `env:"SECONDS_FILE"`
	// AdjustFlag selects which non-price fields price adjustment also
	// scales (bit 1 volume, bit 2 turnover, bit 4 open interest).
	AdjustFlag uint32 `env:"ADJUST_FLAG" envDefault:"0"`
	// JanitorInterval is the sleep granularity of the mapping janitor.
	JanitorInterval time.Duration `env:"JANITOR_INTERVAL" envDefault:"5s"`
	// IdleTimeout is how long a real-time mapping may go untouched before
	// the janitor unmaps it.
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" envDefault:"300s"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

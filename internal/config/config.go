// Package config loads server configuration from the environment and
// an optional config file. Settings come from PLANKEEP_* environment
// variables first, then config.yaml in the data directory, then
// defaults — the usual viper precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Backend names accepted for the "backend" setting.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds all server settings.
type Config struct {
	// DataDir is where the database and config file live.
	DataDir string `mapstructure:"data_dir"`
	// Backend selects the kv store implementation: "sqlite" or "memory".
	Backend string `mapstructure:"backend"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// MultiTenant partitions all records per authenticated caller.
	MultiTenant bool `mapstructure:"multi_tenant"`
	// AllowedCallers restricts which caller ids may use the planner.
	// Empty means every caller is allowed.
	AllowedCallers []string `mapstructure:"allowed_callers"`
}

// Load reads configuration. dataDir overrides the default data
// directory when non-empty (it still loses to PLANKEEP_DATA_DIR).
func Load(dataDir string) (*Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	defaultDataDir := filepath.Join(home, ".plankeep")
	if dataDir != "" {
		defaultDataDir = dataDir
	}

	v.SetDefault("data_dir", defaultDataDir)
	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("log_level", "info")
	v.SetDefault("multi_tenant", false)
	v.SetDefault("allowed_callers", []string{})

	v.SetEnvPrefix("PLANKEEP")
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(v.GetString("data_dir"))
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; a malformed one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if cfg.Backend != BackendSQLite && cfg.Backend != BackendMemory {
		return nil, fmt.Errorf("config: unknown backend %q (want %q or %q)",
			cfg.Backend, BackendSQLite, BackendMemory)
	}

	return &cfg, nil
}

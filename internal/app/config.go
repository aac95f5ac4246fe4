package app

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/spacecrew/applybot/core/config"
	coredatabase "github.com/spacecrew/applybot/core/database"
)

// DialogConfig controls cleanup of abandoned conversation sessions.
// A zero TTL keeps sessions forever.
type DialogConfig struct {
	TTLMinutes int    `yaml:"ttl_minutes" envconfig:"DIALOG_TTL_MINUTES"`
	SweepSpec  string `yaml:"sweep_spec" envconfig:"DIALOG_SWEEP_SPEC"`
}

// Config is the full bot configuration: the reusable core settings plus the
// database connection and dialog cleanup.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Dialog   DialogConfig        `yaml:"dialog"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// LoadConfig reads the YAML file, applies environment overrides, and
// validates the core section.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if cfg.Core.Telegram.AdminID == 0 {
		return nil, fmt.Errorf("telegram admin_id is required")
	}
	if cfg.Dialog.TTLMinutes < 0 {
		return nil, fmt.Errorf("dialog.ttl_minutes must be >= 0")
	}
	return &cfg, nil
}

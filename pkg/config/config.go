// Package config provides configuration management for the sboxkit CLI
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davincible/sboxkit/pkg/sbox"
)

// Config represents the main configuration structure
type Config struct {
	Version string       `json:"version"`
	Tables  TablesConfig `json:"tables"`
	Random  RandomConfig `json:"random"`
	UI      UIConfig     `json:"ui"`
}

// TablesConfig controls difference table construction
type TablesConfig struct {
	MaxInputBits int `json:"max_input_bits"` // Default: 12
	Workers      int `json:"workers"`        // 0 = GOMAXPROCS
}

// RandomConfig controls randomized property checks
type RandomConfig struct {
	Seed   uint64 `json:"seed"`   // Default: 1
	Trials int    `json:"trials"` // Default: 100
}

// UIConfig contains user interface settings
type UIConfig struct {
	UseColor bool   `json:"use_color"` // Enable colored output
	Format   string `json:"format"`    // text, json
}

// ConfigManager manages configuration loading and saving
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a configuration manager for the default path.
// A missing file yields the default configuration.
func NewConfigManager() (*ConfigManager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewConfigManagerAt(configPath)
}

// NewConfigManagerAt creates a configuration manager for an explicit path.
func NewConfigManagerAt(configPath string) (*ConfigManager, error) {
	cm := &ConfigManager{configPath: configPath}

	if err := cm.LoadConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cm.config = DefaultConfig()
	}

	return cm, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Tables: TablesConfig{
			MaxInputBits: sbox.DefaultMaxTableBits,
			Workers:      0,
		},
		Random: RandomConfig{
			Seed:   1,
			Trials: 100,
		},
		UI: UIConfig{
			UseColor: true,
			Format:   "text",
		},
	}
}

// Validate checks the configuration bounds
func (c *Config) Validate() error {
	if c.Tables.MaxInputBits < 1 || c.Tables.MaxInputBits > sbox.MaxTableBits {
		return fmt.Errorf("tables.max_input_bits must be in [1, %d], got %d", sbox.MaxTableBits, c.Tables.MaxInputBits)
	}
	if c.Tables.Workers < 0 {
		return fmt.Errorf("tables.workers cannot be negative, got %d", c.Tables.Workers)
	}
	if c.Random.Trials < 1 {
		return fmt.Errorf("random.trials must be at least 1, got %d", c.Random.Trials)
	}
	if c.UI.Format != "text" && c.UI.Format != "json" {
		return fmt.Errorf("ui.format must be text or json, got %q", c.UI.Format)
	}
	return nil
}

// TableOptions converts the table settings into construction options
func (c *Config) TableOptions() []sbox.TableOption {
	return []sbox.TableOption{
		sbox.WithMaxInputBits(c.Tables.MaxInputBits),
		sbox.WithWorkers(c.Tables.Workers),
	}
}

// LoadConfig loads the configuration from disk
func (cm *ConfigManager) LoadConfig() error {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cm.configPath, err)
	}

	cm.config = config
	return nil
}

// SaveConfig saves the configuration to disk
func (cm *ConfigManager) SaveConfig() error {
	// Ensure config directory exists
	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig updates the configuration
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

// Path returns the configuration file path
func (cm *ConfigManager) Path() string {
	return cm.configPath
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	// Check for custom config path
	if customPath := os.Getenv("SBOXKIT_CONFIG"); customPath != "" {
		return customPath, nil
	}

	// Use XDG_CONFIG_HOME if set
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "sboxkit", "config.json"), nil
	}

	// Default to ~/.config/sboxkit/config.json
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "sboxkit", "config.json"), nil
}

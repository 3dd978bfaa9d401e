// ABOUTME: Global configuration management for pipekit
// ABOUTME: Handles loading and saving ~/.pipekit/config.json
package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// YesFlag skips confirmation prompts (set by --yes)
var YesFlag bool

// Built-in preference defaults
const (
	DefaultSchemaPath         = "configs/schema.yml"
	DefaultCompressThreshold  = 150
	DefaultSummarizeThreshold = 200
)

// GlobalConfig represents the global configuration file structure
type GlobalConfig struct {
	Preferences Preferences `json:"preferences"`
}

// Preferences represents user preferences
type Preferences struct {
	SchemaPath         string `json:"schemaPath,omitempty"`
	CompressThreshold  int    `json:"compressThreshold,omitempty"`
	SummarizeThreshold int    `json:"summarizeThreshold,omitempty"`
	DisableEvents      bool   `json:"disableEvents,omitempty"`
}

// DefaultConfig returns a new config with default values
func DefaultConfig() *GlobalConfig {
	return &GlobalConfig{
		Preferences: Preferences{
			SchemaPath:         DefaultSchemaPath,
			CompressThreshold:  DefaultCompressThreshold,
			SummarizeThreshold: DefaultSummarizeThreshold,
		},
	}
}

// configPath returns the path to the global config file
func configPath() string {
	return filepath.Join(MustHome(), "config.json")
}

// Load reads the global config file. A missing file yields the defaults
// and nothing is written.
func Load() (*GlobalConfig, error) {
	data, err := os.ReadFile(configPath())
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	return cfg, nil
}

// fillDefaults restores defaults for zero-valued preferences
func (c *GlobalConfig) fillDefaults() {
	if c.Preferences.SchemaPath == "" {
		c.Preferences.SchemaPath = DefaultSchemaPath
	}
	if c.Preferences.CompressThreshold <= 0 {
		c.Preferences.CompressThreshold = DefaultCompressThreshold
	}
	if c.Preferences.SummarizeThreshold <= 0 {
		c.Preferences.SummarizeThreshold = DefaultSummarizeThreshold
	}
}

// Save writes the global config to disk
func Save(cfg *GlobalConfig) error {
	cfgPath := configPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cfgPath, data, 0644)
}

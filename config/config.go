// Package config holds runtime configuration, loaded from defaults with
// optional partial overrides from a YAML or JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jsachdeva7/dev-clipboard/internal/util"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultDebounceMs is the quiet window after the last raw file-change
	// event before the tree content refreshes.
	DefaultDebounceMs = 100

	// DefaultFolderEdgeBandPx is the top/bottom band of a folder row where a
	// drag resolves to a positional insert instead of a drop-inside.
	DefaultFolderEdgeBandPx = 8.0

	// DefaultHysteresisPx suppresses drop-indicator oscillation around a
	// row's vertical center.
	DefaultHysteresisPx = 4.0

	// DefaultSkipHidden drops dotfiles when parsing dropped directories.
	DefaultSkipHidden = true

	// DefaultUseGitignore honors .gitignore files when parsing directories.
	DefaultUseGitignore = false

	// DefaultSerializeMode is the clipboard output layout ("tree" or "blocks").
	DefaultSerializeMode = "tree"
)

// Config contains runtime configuration values for the drop panel.
type Config struct {
	DebounceMs       int     // Debounce window for file-change bursts, in milliseconds (Default 100)
	FolderEdgeBandPx float64 // Folder row edge band for positional drops, in pixels (Default 8)
	HysteresisPx     float64 // Drop indicator hysteresis half-width, in pixels (Default 4)
	SkipHidden       bool    // Skip dotfiles when parsing dropped directories (Default true)
	UseGitignore     bool    // Honor .gitignore files when parsing directories (Default false)
	SerializeMode    string  // Clipboard output layout: "tree" or "blocks" (Default "tree")
	LogLvl           util.LogLevel
}

// Debounce returns the debounce window as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// Override uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type Override struct {
	DebounceMs       *int     `yaml:"debounce_ms,omitempty" json:"debounce_ms,omitempty"`
	FolderEdgeBandPx *float64 `yaml:"folder_edge_band_px,omitempty" json:"folder_edge_band_px,omitempty"`
	HysteresisPx     *float64 `yaml:"hysteresis_px,omitempty" json:"hysteresis_px,omitempty"`
	SkipHidden       *bool    `yaml:"skip_hidden,omitempty" json:"skip_hidden,omitempty"`
	UseGitignore     *bool    `yaml:"use_gitignore,omitempty" json:"use_gitignore,omitempty"`
	SerializeMode    *string  `yaml:"serialize_mode,omitempty" json:"serialize_mode,omitempty"`
	LogLvl           *int     `yaml:"log_level,omitempty" json:"log_level,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		DebounceMs:       DefaultDebounceMs,
		FolderEdgeBandPx: DefaultFolderEdgeBandPx,
		HysteresisPx:     DefaultHysteresisPx,
		SkipHidden:       DefaultSkipHidden,
		UseGitignore:     DefaultUseGitignore,
		SerializeMode:    DefaultSerializeMode,
		LogLvl:           util.InfoLevel,
	}
}

// NewConfig creates a Config from defaults with the override applied on top.
// A nil override yields pure defaults.
func NewConfig(override *Override) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *Override) {
	if override.DebounceMs != nil {
		c.DebounceMs = *override.DebounceMs
	}
	if override.FolderEdgeBandPx != nil {
		c.FolderEdgeBandPx = *override.FolderEdgeBandPx
	}
	if override.HysteresisPx != nil {
		c.HysteresisPx = *override.HysteresisPx
	}
	if override.SkipHidden != nil {
		c.SkipHidden = *override.SkipHidden
	}
	if override.UseGitignore != nil {
		c.UseGitignore = *override.UseGitignore
	}
	if override.SerializeMode != nil {
		c.SerializeMode = *override.SerializeMode
	}
	if override.LogLvl != nil {
		c.LogLvl = *override.LogLvl
	}
}

// LoadOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadOverrideFile(path string) (*Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override Override

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with
// defaults.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadOverrideFile(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(override), nil
}

// Package config provides configuration management for the dashboard server.
//
// Config file locations (priority order):
//  1. $HOSPVIZ_CONFIG
//  2. ./hospviz.yaml
//  3. ~/.config/hospviz/config.yaml
//  4. /etc/hospviz/config.yaml
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TNKompanska19/Visualization-Group-25/internal/domain"
	"github.com/TNKompanska19/Visualization-Group-25/internal/drag"
)

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DataConfig points at the dataset on disk
type DataConfig struct {
	// Dir is the dataset directory. Empty means the built-in synthetic
	// dataset.
	Dir string `yaml:"dir"`
	// WatchReload re-reads the dataset when its files change
	WatchReload bool `yaml:"watch_reload"`
}

// NetworkConfig tunes the staff-network widget
type NetworkConfig struct {
	// Draggable lists the node types that start a group drag
	Draggable []domain.NodeType  `yaml:"draggable"`
	Locator   drag.LocatorConfig `yaml:"locator"`
}

// Config is the top-level server configuration
type Config struct {
	Version int           `yaml:"version"`
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Network NetworkConfig `yaml:"network"`
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server:  ServerConfig{Addr: ":8080"},
		Data:    DataConfig{WatchReload: true},
		Network: NetworkConfig{
			Draggable: []domain.NodeType{domain.NodeTypeDepartment, domain.NodeTypeRole},
			Locator:   drag.DefaultLocatorConfig(),
		},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if len(c.Network.Draggable) == 0 {
		c.Network.Draggable = []domain.NodeType{domain.NodeTypeDepartment, domain.NodeTypeRole}
	}
	def := drag.DefaultLocatorConfig()
	if c.Network.Locator.ContainerID == "" {
		c.Network.Locator.ContainerID = def.ContainerID
	}
	if c.Network.Locator.MaxAttempts == 0 {
		c.Network.Locator.MaxAttempts = def.MaxAttempts
	}
	if c.Network.Locator.Interval == 0 {
		c.Network.Locator.Interval = def.Interval
	}
}

// Package config provides configuration loading and management for provgraph.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/provgraph/export"
)

// Config represents the complete provgraph configuration
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Repo   RepoConfig   `yaml:"repo"`
	NATS   NATSConfig   `yaml:"nats"`
	Export ExportConfig `yaml:"export"`
}

// DataConfig configures where the graph data files live
type DataConfig struct {
	// Dir is the directory holding constraints.yaml, decisions.yaml,
	// components.yaml, and the teams/ graph files (default: "data")
	Dir string `yaml:"dir"`
	// DefaultTeam selects the team graph when a command names none
	DefaultTeam string `yaml:"default_team"`
}

// RepoConfig configures the repository settings
type RepoConfig struct {
	// Path is the repository root path (auto-detected from git if empty)
	Path string `yaml:"path"`
}

// NATSConfig configures the NATS connection
type NATSConfig struct {
	// URL is the NATS server URL (empty = use embedded server)
	URL string `yaml:"url"`
	// Embedded indicates whether to use embedded NATS
	Embedded bool `yaml:"embedded"`
}

// ExportConfig configures RDF export defaults
type ExportConfig struct {
	// Format is the default serialization: turtle, ntriples, or jsonld
	Format string `yaml:"format"`
	// Profile is the default vocabulary profile: minimal, prov, or bfo
	Profile string `yaml:"profile"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:         "data",
			DefaultTeam: "platform",
		},
		Repo: RepoConfig{
			Path: "", // Auto-detect
		},
		NATS: NATSConfig{
			URL:      "",
			Embedded: true,
		},
		Export: ExportConfig{
			Format:  string(export.FormatTurtle),
			Profile: string(export.ProfileMinimal),
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Data.DefaultTeam == "" {
		return fmt.Errorf("data.default_team is required")
	}
	if _, ok := export.GetFormatInfo(export.Format(c.Export.Format)); !ok {
		return fmt.Errorf("export.format %q is not a supported format", c.Export.Format)
	}
	if _, ok := export.Profiles[export.Profile(c.Export.Profile)]; !ok {
		return fmt.Errorf("export.profile %q is not a known profile", c.Export.Profile)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Data
	if other.Data.Dir != "" {
		c.Data.Dir = other.Data.Dir
	}
	if other.Data.DefaultTeam != "" {
		c.Data.DefaultTeam = other.Data.DefaultTeam
	}

	// Repo
	if other.Repo.Path != "" {
		c.Repo.Path = other.Repo.Path
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
		c.NATS.Embedded = false
	}

	// Export
	if other.Export.Format != "" {
		c.Export.Format = other.Export.Format
	}
	if other.Export.Profile != "" {
		c.Export.Profile = other.Export.Profile
	}
}

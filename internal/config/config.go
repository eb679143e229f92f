// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads screening configuration from YAML files, with named
// profiles for different review scenarios.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format  string `yaml:"format"`
		Verbose bool   `yaml:"verbose"`
		Debug   bool   `yaml:"debug"`
		NoColor bool   `yaml:"no_color"`
	} `yaml:"defaults"`

	// Decision engine settings
	Engine struct {
		// Extra honorifics stripped during name normalization, merged with
		// the built-in list.
		Honorifics []string `yaml:"honorifics"`
		// Optional override for the variant equivalence tables.
		TablesFile string `yaml:"tables_file"`
	} `yaml:"engine"`

	// LLM-assisted matching settings
	LLM struct {
		Enabled  bool   `yaml:"enabled"`
		Model    string `yaml:"model"`
		CacheDir string `yaml:"cache_dir"`
	} `yaml:"llm"`

	// Profiles for different screening scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a screening profile with specific settings
type Profile struct {
	Format      string `yaml:"format"`
	Verbose     bool   `yaml:"verbose"`
	Debug       bool   `yaml:"debug"`
	NoColor     bool   `yaml:"no_color"`
	LLM         bool   `yaml:"llm"`
	Description string `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Profiles: make(map[string]Profile),
	}
	config.Defaults.Format = "text"
	config.LLM.Model = "claude-sonnet-4-20250514"

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return config, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first
	if fileExists("namescreen.yaml") {
		return "namescreen.yaml"
	}
	if fileExists("namescreen.yml") {
		return "namescreen.yml"
	}

	// Project-specific config
	if fileExists(".namescreen.yaml") {
		return ".namescreen.yaml"
	}
	if fileExists(".namescreen.yml") {
		return ".namescreen.yml"
	}

	// User config directory
	if dir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(dir, "namescreen", "config.yaml")
		if fileExists(candidate) {
			return candidate
		}
	}

	return ""
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard
// locations when configFile is empty). If loading fails, it returns a default
// configuration rather than an error.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg, _ = LoadConfig("")
	}
	return cfg
}

// ListProfiles returns the names of all available profiles
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	return profiles
}

// GetProfile returns the profile with the given name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, ok := c.Profiles[name]; ok {
		return &profile
	}
	return nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"pdf-code-comparator/internal/confusion"
	"pdf-code-comparator/internal/probability"
	"pdf-code-comparator/internal/variants"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format         string  `yaml:"format"`
		Verbose        bool    `yaml:"verbose"`
		Debug          bool    `yaml:"debug"`
		NoColor        bool    `yaml:"no_color"`
		Workers        int     `yaml:"workers"`
		MinProbability float64 `yaml:"min_probability"`
	} `yaml:"defaults"`

	// Code extraction and correction settings
	Codes struct {
		RegexPattern       string   `yaml:"regex_pattern"`
		SubstitutionGroups []string `yaml:"substitution_groups"`
		VariantCap         int      `yaml:"variant_cap"`
		ControlPrefix      string   `yaml:"control_prefix"`
	} `yaml:"codes"`

	// Probability model parameters
	Probability probability.Params `yaml:"probability"`

	// Master list location, overridable per run via the -master flag
	MasterList struct {
		Path string `yaml:"path"`
	} `yaml:"master_list"`
}

// LoadConfig loads configuration from the specified file path. An empty path
// returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	config.Defaults.Format = "text"
	config.Defaults.Workers = 0 // 0 means one worker per CPU
	config.Codes.RegexPattern = `[A-Z0-9]{3,7}`
	config.Codes.SubstitutionGroups = confusion.DefaultGroups
	config.Codes.VariantCap = variants.DefaultCap
	config.Codes.ControlPrefix = "I"
	config.Probability = probability.DefaultParams()

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first - prioritize config.yaml
	for _, name := range []string{
		"config.yaml",
		"code-comparator.yaml",
		"code-comparator.yml",
		".code-comparator.yaml",
		".code-comparator.yml",
	} {
		if fileExists(name) {
			return name
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeConfig := filepath.Join(home, ".code-comparator.yaml")
	if fileExists(homeConfig) {
		return homeConfig
	}

	// Check XDG config directory
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		xdgConfigFile := filepath.Join(xdgConfig, "code-comparator", name)
		if fileExists(xdgConfigFile) {
			return xdgConfigFile
		}
	}

	return ""
}

// LoadConfigOrDefault loads configuration from configFile (or searches
// standard locations when configFile is empty). If loading fails, it returns
// a default configuration so callers do not crash on a missing config file.
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

// ValidateConfig validates the configuration values
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if _, err := regexp.Compile(config.Codes.RegexPattern); err != nil {
		return fmt.Errorf("invalid code regex pattern %q: %w", config.Codes.RegexPattern, err)
	}

	if config.Codes.VariantCap <= 0 {
		return fmt.Errorf("variant_cap must be positive, got %d", config.Codes.VariantCap)
	}

	if config.Defaults.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", config.Defaults.Workers)
	}

	if config.Defaults.MinProbability < 0 || config.Defaults.MinProbability > 100 {
		return fmt.Errorf("min_probability must be within 0-100, got %g", config.Defaults.MinProbability)
	}

	for _, group := range config.Codes.SubstitutionGroups {
		if len([]rune(group)) < 2 {
			return fmt.Errorf("substitution group %q needs at least two characters", group)
		}
	}

	p := config.Probability
	if p.Base < 0 || p.Base > 100 {
		return fmt.Errorf("probability base must be within 0-100, got %g", p.Base)
	}
	if p.CorrectionPenalty < 0 {
		return fmt.Errorf("correction penalty must not be negative, got %g", p.CorrectionPenalty)
	}
	if p.DirectBonusMax < 0 || p.CorrectionBonusMax < 0 {
		return fmt.Errorf("context bonus maxima must not be negative")
	}
	if p.SingleDocumentProbability < 0 || p.SingleDocumentProbability > 100 {
		return fmt.Errorf("single document probability must be within 0-100, got %g", p.SingleDocumentProbability)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return info != nil && !info.IsDir()
}

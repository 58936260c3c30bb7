// Copyright LMP Consulting GmbH or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Defaults.Format)
	assert.Equal(t, 0, cfg.Defaults.Workers)
	assert.Equal(t, `[A-Z0-9]{3,7}`, cfg.Codes.RegexPattern)
	assert.Equal(t, []string{"B8", "I1L", "0O", "5S", "6G", "2Z"}, cfg.Codes.SubstitutionGroups)
	assert.Equal(t, 500, cfg.Codes.VariantCap)
	assert.Equal(t, "I", cfg.Codes.ControlPrefix)
	assert.Equal(t, 40.0, cfg.Probability.Base)
	assert.Equal(t, 10.0, cfg.Probability.CorrectionPenalty)
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
defaults:
  format: json
  workers: 8
codes:
  regex_pattern: "[A-Z0-9]{4,8}"
  substitution_groups: ["B8", "0O"]
  variant_cap: 200
  control_prefix: K
probability:
  base: 50
  correction_penalty: 5
master_list:
  path: /data/codes.csv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Defaults.Format)
	assert.Equal(t, 8, cfg.Defaults.Workers)
	assert.Equal(t, "[A-Z0-9]{4,8}", cfg.Codes.RegexPattern)
	assert.Equal(t, []string{"B8", "0O"}, cfg.Codes.SubstitutionGroups)
	assert.Equal(t, 200, cfg.Codes.VariantCap)
	assert.Equal(t, "K", cfg.Codes.ControlPrefix)
	assert.Equal(t, 50.0, cfg.Probability.Base)
	assert.Equal(t, 5.0, cfg.Probability.CorrectionPenalty)
	assert.Equal(t, "/data/codes.csv", cfg.MasterList.Path)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  format: csv\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Defaults.Format)
	assert.Equal(t, 500, cfg.Codes.VariantCap, "unset sections keep their defaults")
	assert.Equal(t, 40.0, cfg.Probability.Base)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults: [not a map"), 0o600))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid, err := LoadConfig("")
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad regex", func(c *Config) { c.Codes.RegexPattern = "[" }},
		{"zero variant cap", func(c *Config) { c.Codes.VariantCap = 0 }},
		{"negative workers", func(c *Config) { c.Defaults.Workers = -1 }},
		{"one-character group", func(c *Config) { c.Codes.SubstitutionGroups = []string{"B"} }},
		{"base out of range", func(c *Config) { c.Probability.Base = 120 }},
		{"negative penalty", func(c *Config) { c.Probability.CorrectionPenalty = -1 }},
		{"negative bonus", func(c *Config) { c.Probability.DirectBonusMax = -5 }},
		{"single doc out of range", func(c *Config) { c.Probability.SingleDocumentProbability = 101 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := *valid
			tc.mutate(&cfg)
			assert.Error(t, ValidateConfig(&cfg))
		})
	}

	assert.NoError(t, ValidateConfig(valid))
	assert.Error(t, ValidateConfig(nil))
}

func TestLoadConfigOrDefault_FallsBack(t *testing.T) {
	cfg := LoadConfigOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NotNil(t, cfg)
	assert.Equal(t, "text", cfg.Defaults.Format)
}

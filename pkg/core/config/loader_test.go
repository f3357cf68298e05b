// Copyright 2026 Suffolk University Legal Innovation and Technology Lab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Success(t *testing.T) {
	yamlConfig := `
logging:
  level: DEBUG

validation:
  workers: 8
  max_iterations: 20
  known_filters: ["our_house_style"]
  stub_filters: ["plugin_filter"]
  fail_on_warnings: true

report:
  output_dir: artifacts
  summary: artifacts/summary.md
`

	cfg, err := parseConfig(yamlConfig)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, 8, cfg.Validation.Workers)
	assert.Equal(t, 20, cfg.Validation.MaxIterations)
	assert.Equal(t, []string{"our_house_style"}, cfg.Validation.KnownFilters)
	assert.Equal(t, []string{"plugin_filter"}, cfg.Validation.StubFilters)
	assert.True(t, cfg.Validation.FailOnWarnings)
	assert.Equal(t, "artifacts", cfg.Report.OutputDir)
	assert.Equal(t, "artifacts/summary.md", cfg.Report.Summary)
}

func TestParseConfig_EmptyString(t *testing.T) {
	cfg, err := parseConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config YAML is empty")
}

func TestParseConfig_InvalidYAML(t *testing.T) {
	yamlConfig := `
validation:
  workers: 8
  broken_indentation
`

	cfg, err := parseConfig(yamlConfig)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(`validation: {fail_on_warnings: true}`)
	require.NoError(t, err)

	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultWorkers, cfg.Validation.Workers)
	assert.Equal(t, DefaultMaxIterations, cfg.Validation.MaxIterations)
	assert.Equal(t, DefaultOutputDir, cfg.Report.OutputDir)
	assert.Equal(t, DefaultSummaryPath, cfg.Report.Summary)
	assert.True(t, cfg.Validation.FailOnWarnings)
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		cfg, err := LoadConfigFile("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: ERROR\n"), 0o644))

		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, "ERROR", cfg.Logging.Level)
		assert.Equal(t, DefaultWorkers, cfg.Validation.Workers)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, ValidateStructure(Default()))
}

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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDefaults_AllUnset(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultWorkers, cfg.Validation.Workers)
	assert.Equal(t, DefaultMaxIterations, cfg.Validation.MaxIterations)
	assert.Equal(t, DefaultOutputDir, cfg.Report.OutputDir)
	assert.Equal(t, DefaultSummaryPath, cfg.Report.Summary)
}

func TestSetDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Logging:    LoggingConfig{Level: "ERROR"},
		Validation: ValidationConfig{Workers: 16, MaxIterations: 3},
		Report:     ReportConfig{OutputDir: "out", Summary: "out/s.md"},
	}
	setDefaults(cfg)

	assert.Equal(t, "ERROR", cfg.Logging.Level)
	assert.Equal(t, 16, cfg.Validation.Workers)
	assert.Equal(t, 3, cfg.Validation.MaxIterations)
	assert.Equal(t, "out", cfg.Report.OutputDir)
	assert.Equal(t, "out/s.md", cfg.Report.Summary)
}

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

// Default values for configuration fields.
const (
	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "INFO"

	// DefaultWorkers is the default number of concurrent validations.
	DefaultWorkers = 4

	// DefaultMaxIterations is the default filter discovery bound.
	DefaultMaxIterations = 10

	// DefaultOutputDir is the default directory for HTML artifacts.
	DefaultOutputDir = "jinja_validation"

	// DefaultSummaryPath is the default Markdown summary location.
	DefaultSummaryPath = "jinja_validation_summary.md"
)

// setDefaults applies default values to unset configuration fields.
// This modifies the config in-place and should be called after parsing
// the configuration and before validation.
func setDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Validation.Workers == 0 {
		cfg.Validation.Workers = DefaultWorkers
	}
	if cfg.Validation.MaxIterations == 0 {
		cfg.Validation.MaxIterations = DefaultMaxIterations
	}
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = DefaultOutputDir
	}
	if cfg.Report.Summary == "" {
		cfg.Report.Summary = DefaultSummaryPath
	}
}

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

// Package config provides data models for the validation run configuration.
//
// These models represent the structure of the configuration YAML loaded
// from an optional config file next to the checked templates.
package config

// Config is the root configuration structure.
type Config struct {
	// Logging configures logging behavior.
	Logging LoggingConfig `yaml:"logging"`

	// Validation configures the expression checker.
	Validation ValidationConfig `yaml:"validation"`

	// Report configures where artifacts are written.
	Report ReportConfig `yaml:"report"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level: ERROR, WARNING, INFO, or DEBUG.
	// Default: INFO
	Level string `yaml:"level"`
}

// ValidationConfig configures the expression checker.
type ValidationConfig struct {
	// Workers is the number of documents validated concurrently.
	// Default: 4
	Workers int `yaml:"workers"`

	// MaxIterations bounds the filter discovery loop per document.
	// Default: 10
	MaxIterations int `yaml:"max_iterations"`

	// KnownFilters lists additional filter names that must not produce
	// unknown-filter warnings, on top of the built-in known list.
	//
	// Example:
	//   known_filters:
	//     - our_house_style
	//     - court_caption
	KnownFilters []string `yaml:"known_filters"`

	// StubFilters lists filter names to register as no-op stubs before
	// validation, as if the production environment provided them. Stubbed
	// filters are implicitly known.
	StubFilters []string `yaml:"stub_filters"`

	// FailOnWarnings makes warnings fail the run like errors.
	// Default: false
	FailOnWarnings bool `yaml:"fail_on_warnings"`
}

// ReportConfig configures artifact output.
type ReportConfig struct {
	// OutputDir is the directory for generated HTML artifacts.
	// Default: jinja_validation
	OutputDir string `yaml:"output_dir"`

	// Summary is the path of the Markdown summary file.
	// Default: jinja_validation_summary.md
	Summary string `yaml:"summary"`
}

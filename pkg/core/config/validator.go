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
	"fmt"
	"strings"
)

// ValidateStructure performs basic structural validation on the configuration.
// Validates value ranges and filter name shapes.
func ValidateStructure(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := validateLoggingConfig(&cfg.Logging); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	if err := validateValidationConfig(&cfg.Validation); err != nil {
		return fmt.Errorf("validation: %w", err)
	}

	if err := validateReportConfig(&cfg.Report); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	return nil
}

// validateLoggingConfig validates the logging configuration.
func validateLoggingConfig(lc *LoggingConfig) error {
	switch strings.ToUpper(lc.Level) {
	case "ERROR", "WARNING", "WARN", "INFO", "DEBUG":
		return nil
	default:
		return fmt.Errorf("level must be one of ERROR, WARNING, INFO, DEBUG, got %q", lc.Level)
	}
}

// validateValidationConfig validates the checker configuration.
func validateValidationConfig(vc *ValidationConfig) error {
	if vc.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", vc.Workers)
	}
	if vc.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be at least 1, got %d", vc.MaxIterations)
	}
	for _, name := range vc.KnownFilters {
		if err := validateFilterName(name); err != nil {
			return fmt.Errorf("known_filters: %w", err)
		}
	}
	for _, name := range vc.StubFilters {
		if err := validateFilterName(name); err != nil {
			return fmt.Errorf("stub_filters: %w", err)
		}
	}
	return nil
}

// validateReportConfig validates artifact output settings.
func validateReportConfig(rc *ReportConfig) error {
	if rc.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if rc.Summary == "" {
		return fmt.Errorf("summary cannot be empty")
	}
	return nil
}

// validateFilterName checks that a configured filter name is a plausible
// identifier.
func validateFilterName(name string) error {
	if name == "" {
		return fmt.Errorf("filter name cannot be empty")
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_',
			c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z',
			c >= '0' && c <= '9' && i > 0:
		default:
			return fmt.Errorf("filter name %q is not a valid identifier", name)
		}
	}
	return nil
}

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

package validator

import (
	"sort"
	"strings"
)

// Result collects the outcome of validating one document: fatal syntax
// errors, unknown filter names, and free-form warnings, tracked separately
// so callers can fail on the former while surfacing the latter.
type Result struct {
	syntaxErrors   []string
	unknownFilters map[string]struct{}
	warnings       []string
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{unknownFilters: make(map[string]struct{})}
}

// HasErrors reports whether any fatal syntax error was recorded.
func (r *Result) HasErrors() bool {
	return len(r.syntaxErrors) > 0
}

// HasWarnings reports whether any warning or unknown filter was recorded.
func (r *Result) HasWarnings() bool {
	return len(r.warnings) > 0 || len(r.unknownFilters) > 0
}

// AddSyntaxError records a fatal error. Duplicate messages are dropped.
func (r *Result) AddSyntaxError(msg string) {
	for _, existing := range r.syntaxErrors {
		if existing == msg {
			return
		}
	}
	r.syntaxErrors = append(r.syntaxErrors, msg)
}

// AddUnknownFilter records a filter name that resolved during validation
// only because it was stubbed.
func (r *Result) AddUnknownFilter(name string) {
	r.unknownFilters[name] = struct{}{}
}

// AddWarning records an advisory message.
func (r *Result) AddWarning(msg string) {
	r.warnings = append(r.warnings, msg)
}

// SyntaxErrors returns the recorded fatal errors in insertion order.
func (r *Result) SyntaxErrors() []string {
	return append([]string(nil), r.syntaxErrors...)
}

// UnknownFilters returns the recorded unknown filter names, sorted.
func (r *Result) UnknownFilters() []string {
	names := make([]string, 0, len(r.unknownFilters))
	for name := range r.unknownFilters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Warnings returns the recorded advisory messages in insertion order.
func (r *Result) Warnings() []string {
	return append([]string(nil), r.warnings...)
}

// ErrorMessage returns all fatal errors joined into one message, or the
// empty string when validation passed.
func (r *Result) ErrorMessage() string {
	return strings.Join(r.syntaxErrors, "\n\n")
}

// WarningsMessage returns all warnings joined into one message, with
// unknown filters summarized first, or the empty string when there are
// none.
func (r *Result) WarningsMessage() string {
	if !r.HasWarnings() {
		return ""
	}
	var parts []string
	if len(r.unknownFilters) > 0 {
		parts = append(parts, "Unknown filters detected: "+strings.Join(r.UnknownFilters(), ", "))
	}
	parts = append(parts, r.warnings...)
	return strings.Join(parts, "\n\n")
}

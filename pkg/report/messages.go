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

// Package report turns validation results into the artifacts a review
// workflow consumes: per-file HTML pages, an HTML index, and a Markdown
// summary.
package report

import (
	"regexp"
	"strings"
)

// expressionPattern matches one template expression or tag inside a
// validation message.
var expressionPattern = regexp.MustCompile(`\{[{%].+?[}%]\}`)

// CombineMessages merges the fatal and advisory messages of one file into
// the single report body, with labeled sections. Either part may be empty.
func CombineMessages(errorMessage, warningsMessage string) string {
	var parts []string
	if errorMessage != "" {
		parts = append(parts, "ERRORS:", errorMessage)
	}
	if warningsMessage != "" {
		parts = append(parts, "WARNINGS:", warningsMessage)
	}
	return strings.Join(parts, "\n\n")
}

// ExtractExpressions pulls the template expressions referenced in a
// validation message, in order of first appearance with duplicates
// removed.
func ExtractExpressions(message string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, match := range expressionPattern.FindAllString(message, -1) {
		expr := strings.TrimSpace(match)
		if _, dup := seen[expr]; dup {
			continue
		}
		seen[expr] = struct{}{}
		out = append(out, expr)
	}
	return out
}

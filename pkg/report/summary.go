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

package report

import (
	"fmt"
	"os"
	"strings"
)

// Summary accumulates the Markdown run summary: one section per document
// with issues, a leading count of failing files, and a trailing list of
// skipped files.
type Summary struct {
	sections     []string
	invalidFiles int
	totalIssues  int
	skipped      []string
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{}
}

// AddFile records one document's validation outcome. Documents without
// errors or warnings should not be added.
func (s *Summary) AddFile(relPath, errorMessage, warningsMessage string) {
	s.totalIssues++
	if errorMessage != "" {
		s.invalidFiles++
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("## %s", relPath))
	switch {
	case errorMessage != "" && warningsMessage != "":
		lines = append(lines, "Invalid Jinja expressions detected with warnings.")
	case errorMessage != "":
		lines = append(lines, "Invalid Jinja expressions detected.")
	default:
		lines = append(lines, "Warnings detected (unknown filters).")
	}

	if expressions := ExtractExpressions(CombineMessages(errorMessage, warningsMessage)); len(expressions) > 0 {
		lines = append(lines, "```")
		lines = append(lines, expressions...)
		lines = append(lines, "```")
	}
	if errorMessage != "" {
		lines = append(lines,
			"<details><summary>Error output</summary>",
			"```",
			errorMessage,
			"```",
			"</details>",
		)
	}
	if warningsMessage != "" {
		lines = append(lines,
			"<details><summary>Warnings</summary>",
			"```",
			warningsMessage,
			"```",
			"</details>",
		)
	}
	s.sections = append(s.sections, strings.Join(lines, "\n"))
}

// AddSkipped records a document that could not be validated at all, for
// example because it was deleted between revisions.
func (s *Summary) AddSkipped(relPath string) {
	s.skipped = append(s.skipped, relPath)
}

// InvalidFiles returns the number of documents with fatal errors.
func (s *Summary) InvalidFiles() int {
	return s.invalidFiles
}

// Render assembles the full Markdown document.
func (s *Summary) Render() string {
	lines := []string{"# DOCX Jinja validation", ""}
	if s.invalidFiles > 0 {
		lines = append(lines, fmt.Sprintf("%d file(s) contain invalid Jinja expressions.", s.invalidFiles), "")
	}
	lines = append(lines, s.sections...)
	if s.invalidFiles == 0 {
		lines = append(lines, "No invalid Jinja expressions detected in added or changed DOCX files.")
	}
	if len(s.skipped) > 0 {
		lines = append(lines,
			"",
			"### Skipped files",
			"> The following DOCX files could not be read and were skipped:",
		)
		for _, item := range s.skipped {
			lines = append(lines, fmt.Sprintf("- %s", item))
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

// WriteFile renders the summary to path.
func (s *Summary) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(s.Render()), 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

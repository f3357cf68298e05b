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
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikolalohinski/gonja/v2"
	"github.com/nikolalohinski/gonja/v2/exec"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <title>{{ title }}</title>
    <style>
      body { font-family: system-ui, -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; margin: 2rem; }
      pre { background: #f6f8fa; padding: 1rem; border-radius: 0.5rem; overflow-x: auto; }
      code { font-family: ui-monospace, SFMono-Regular, Menlo, Consolas, 'Liberation Mono', monospace; }
      h1 { font-size: 1.8rem; margin-bottom: 1rem; }
      h2 { margin-top: 2rem; font-size: 1.4rem; }
      ul { margin-top: 0.75rem; }
    </style>
  </head>
  <body>
    <h1>{{ title }}</h1>
    <h2>Validation output</h2>
    <pre>{{ message }}</pre>
    <h2>Expressions referenced</h2>
    <ul>
{% if expressions %}{% for item in expressions %}      <li><code>{{ item }}</code></li>
{% endfor %}{% else %}      <li>No template expression could be parsed from the validation output.</li>
{% endif %}    </ul>
  </body>
</html>
`

const indexTemplate = `<h1>DOCX Jinja validation results</h1>
<p>Only DOCX files with detected issues are listed below.</p>
<ul>
{% for entry in entries %}  <li><a href='{{ entry.href }}'>{{ entry.name }}</a></li>
{% endfor %}</ul>
`

// HTMLWriter renders per-file report pages under an output directory and
// tracks them for the final index page.
type HTMLWriter struct {
	outputDir string
	page      *exec.Template
	index     *exec.Template
	entries   []map[string]interface{}
}

// NewHTMLWriter compiles the report templates and ensures outputDir
// exists.
func NewHTMLWriter(outputDir string) (*HTMLWriter, error) {
	page, err := gonja.FromString(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("compiling page template: %w", err)
	}
	index, err := gonja.FromString(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("compiling index template: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &HTMLWriter{outputDir: outputDir, page: page, index: index}, nil
}

// WriteFileReport renders the report page for one document and records it
// for the index. The page lands next to the document's relative path with
// an .html suffix; the title reflects whether the message carries errors,
// warnings, or both.
func (w *HTMLWriter) WriteFileReport(relPath, message string) (string, error) {
	htmlRel := withHTMLSuffix(relPath)
	fullPath := filepath.Join(w.outputDir, filepath.FromSlash(htmlRel))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	expressions := ExtractExpressions(message)
	escaped := make([]interface{}, 0, len(expressions))
	for _, expr := range expressions {
		escaped = append(escaped, html.EscapeString(expr))
	}
	output, err := w.page.ExecuteToString(exec.NewContext(map[string]interface{}{
		"title":       html.EscapeString(pageTitle(relPath, message)),
		"message":     html.EscapeString(message),
		"expressions": escaped,
	}))
	if err != nil {
		return "", fmt.Errorf("rendering report for %s: %w", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(output), 0o644); err != nil {
		return "", fmt.Errorf("writing report for %s: %w", relPath, err)
	}

	w.entries = append(w.entries, map[string]interface{}{
		"href": html.EscapeString(htmlRel),
		"name": html.EscapeString(relPath),
	})
	return htmlRel, nil
}

// WriteIndex writes the index page linking every recorded report. Nothing
// is written when no reports were produced, so a clean run leaves no
// artifacts behind.
func (w *HTMLWriter) WriteIndex() error {
	if len(w.entries) == 0 {
		return nil
	}
	entries := make([]interface{}, 0, len(w.entries))
	for _, e := range w.entries {
		entries = append(entries, e)
	}
	output, err := w.index.ExecuteToString(exec.NewContext(map[string]interface{}{
		"entries": entries,
	}))
	if err != nil {
		return fmt.Errorf("rendering index: %w", err)
	}
	path := filepath.Join(w.outputDir, "index.html")
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

func pageTitle(relPath, message string) string {
	hasErrors := strings.Contains(message, "ERRORS:")
	hasWarnings := strings.Contains(message, "WARNINGS:")
	switch {
	case hasErrors && hasWarnings:
		return fmt.Sprintf("Jinja validation issues in %s", relPath)
	case hasErrors:
		return fmt.Sprintf("Invalid Jinja expressions in %s", relPath)
	default:
		return fmt.Sprintf("Jinja validation warnings in %s", relPath)
	}
}

func withHTMLSuffix(relPath string) string {
	ext := filepath.Ext(relPath)
	return strings.TrimSuffix(relPath, ext) + ".html"
}

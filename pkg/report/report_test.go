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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineMessages(t *testing.T) {
	tests := []struct {
		name     string
		errors   string
		warnings string
		expected string
	}{
		{
			name:     "errors only",
			errors:   "syntax error: boom",
			expected: "ERRORS:\n\nsyntax error: boom",
		},
		{
			name:     "warnings only",
			warnings: "Unknown filters detected: foo",
			expected: "WARNINGS:\n\nUnknown filters detected: foo",
		},
		{
			name:     "both",
			errors:   "syntax error: boom",
			warnings: "Unknown filters detected: foo",
			expected: "ERRORS:\n\nsyntax error: boom\n\nWARNINGS:\n\nUnknown filters detected: foo",
		},
		{
			name:     "neither",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CombineMessages(tt.errors, tt.warnings))
		})
	}
}

func TestExtractExpressions(t *testing.T) {
	message := "error near {{ client.name | bogus }} and {% if x %} again {{ client.name | bogus }}"
	assert.Equal(t,
		[]string{"{{ client.name | bogus }}", "{% if x %}"},
		ExtractExpressions(message),
	)
}

func TestExtractExpressionsEmpty(t *testing.T) {
	assert.Empty(t, ExtractExpressions("no expressions in this message"))
}

func TestHTMLWriterFileReport(t *testing.T) {
	dir := t.TempDir()
	w, err := NewHTMLWriter(dir)
	require.NoError(t, err)

	message := CombineMessages("syntax error near {{ broken | <tag> }}", "")
	rel, err := w.WriteFileReport("templates/motion.docx", message)
	require.NoError(t, err)
	assert.Equal(t, "templates/motion.html", rel)

	content, err := os.ReadFile(filepath.Join(dir, "templates", "motion.html"))
	require.NoError(t, err)
	page := string(content)

	assert.Contains(t, page, "Invalid Jinja expressions in templates/motion.docx")
	assert.Contains(t, page, "&lt;tag&gt;")
	assert.NotContains(t, page, "| <tag>")
}

func TestHTMLWriterTitles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewHTMLWriter(dir)
	require.NoError(t, err)

	tests := []struct {
		name     string
		file     string
		message  string
		expected string
	}{
		{
			name:     "errors and warnings",
			file:     "a.docx",
			message:  CombineMessages("bad", "also suspicious"),
			expected: "Jinja validation issues in a.docx",
		},
		{
			name:     "warnings only",
			file:     "b.docx",
			message:  CombineMessages("", "Unknown filters detected: foo"),
			expected: "Jinja validation warnings in b.docx",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel, err := w.WriteFileReport(tt.file, tt.message)
			require.NoError(t, err)
			content, err := os.ReadFile(filepath.Join(dir, rel))
			require.NoError(t, err)
			assert.Contains(t, string(content), tt.expected)
		})
	}
}

func TestHTMLWriterFallbackListItem(t *testing.T) {
	dir := t.TempDir()
	w, err := NewHTMLWriter(dir)
	require.NoError(t, err)

	rel, err := w.WriteFileReport("c.docx", CombineMessages("opaque failure", ""))
	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	assert.Contains(t, string(content), "No template expression could be parsed")
}

func TestHTMLWriterIndex(t *testing.T) {
	dir := t.TempDir()
	w, err := NewHTMLWriter(dir)
	require.NoError(t, err)

	_, err = w.WriteFileReport("x.docx", CombineMessages("bad", ""))
	require.NoError(t, err)
	_, err = w.WriteFileReport("sub/y.docx", CombineMessages("", "warn"))
	require.NoError(t, err)
	require.NoError(t, w.WriteIndex())

	content, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	index := string(content)
	assert.Contains(t, index, "x.html")
	assert.Contains(t, index, "sub/y.html")
	assert.Contains(t, index, "x.docx")
}

func TestHTMLWriterIndexSkippedWhenClean(t *testing.T) {
	dir := t.TempDir()
	w, err := NewHTMLWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteIndex())

	_, err = os.Stat(filepath.Join(dir, "index.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestSummary(t *testing.T) {
	s := NewSummary()
	s.AddFile("bad.docx", "syntax error in {{ broken }}", "")
	s.AddFile("warn.docx", "", "Unknown filters detected: foo")
	s.AddSkipped("gone.docx")

	assert.Equal(t, 1, s.InvalidFiles())

	md := s.Render()
	assert.Contains(t, md, "# DOCX Jinja validation")
	assert.Contains(t, md, "1 file(s) contain invalid Jinja expressions.")
	assert.Contains(t, md, "## bad.docx")
	assert.Contains(t, md, "Invalid Jinja expressions detected.")
	assert.Contains(t, md, "## warn.docx")
	assert.Contains(t, md, "Warnings detected (unknown filters).")
	assert.Contains(t, md, "{{ broken }}")
	assert.Contains(t, md, "### Skipped files")
	assert.Contains(t, md, "- gone.docx")
}

func TestSummaryClean(t *testing.T) {
	s := NewSummary()
	md := s.Render()
	assert.Contains(t, md, "No invalid Jinja expressions detected")
	assert.Equal(t, 0, s.InvalidFiles())
}

func TestSummaryWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.md")

	s := NewSummary()
	s.AddFile("bad.docx", "boom", "")
	require.NoError(t, s.WriteFile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "## bad.docx")
}

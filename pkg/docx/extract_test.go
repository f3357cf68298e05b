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

package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func documentXML(paragraphs ...string) string {
	var body bytes.Buffer
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p)
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`
}

func buildArchive(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractParagraphs(t *testing.T) {
	content := buildArchive(t, map[string]string{
		mainDocumentPart: documentXML("Dear {{ client.name }},", "Sincerely,"),
	})
	text, err := ExtractBytes(content)
	require.NoError(t, err)
	assert.Equal(t, "Dear {{ client.name }},\nSincerely,\n", text)
}

func TestExtractSplitRuns(t *testing.T) {
	// Word frequently splits one expression across several runs; the text
	// must concatenate seamlessly.
	doc := `<?xml version="1.0"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>{{ cli</w:t></w:r><w:r><w:t>ent.name }}</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	content := buildArchive(t, map[string]string{mainDocumentPart: doc})
	text, err := ExtractBytes(content)
	require.NoError(t, err)
	assert.Equal(t, "{{ client.name }}\n", text)
}

func TestExtractBreaksAndTabs(t *testing.T) {
	doc := `<?xml version="1.0"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>a</w:t><w:br/><w:t>b</w:t><w:tab/><w:t>c</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	content := buildArchive(t, map[string]string{mainDocumentPart: doc})
	text, err := ExtractBytes(content)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\tc\n", text)
}

func TestExtractIgnoresNonTextMarkup(t *testing.T) {
	doc := `<?xml version="1.0"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>title</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	content := buildArchive(t, map[string]string{mainDocumentPart: doc})
	text, err := ExtractBytes(content)
	require.NoError(t, err)
	assert.Equal(t, "title\n", text)
}

func TestExtractIncludesHeadersFootersAndNotes(t *testing.T) {
	content := buildArchive(t, map[string]string{
		mainDocumentPart:     documentXML("body {{ a }}"),
		"word/header1.xml":   documentXML("header {{ b }}"),
		"word/footer1.xml":   documentXML("footer {{ c }}"),
		"word/footnotes.xml": documentXML("note {{ d }}"),
		"word/styles.xml":    documentXML("styles are skipped"),
	})
	text, err := ExtractBytes(content)
	require.NoError(t, err)

	assert.Contains(t, text, "body {{ a }}")
	assert.Contains(t, text, "header {{ b }}")
	assert.Contains(t, text, "footer {{ c }}")
	assert.Contains(t, text, "note {{ d }}")
	assert.NotContains(t, text, "styles are skipped")
	// Main document comes first.
	assert.True(t, len(text) > 0 && text[:4] == "body")
}

func TestExtractRewritesTagPrefixes(t *testing.T) {
	content := buildArchive(t, map[string]string{
		mainDocumentPart: documentXML(
			"{%p if client.is_minor %}",
			"{%tr for row in rows %}",
			"{{r client.signature }}",
			"{%p endif %}",
			"{%tr endfor %}",
		),
	})
	text, err := ExtractBytes(content)
	require.NoError(t, err)

	assert.Contains(t, text, "{% if client.is_minor %}")
	assert.Contains(t, text, "{% for row in rows %}")
	assert.Contains(t, text, "{{ client.signature }}")
	assert.NotContains(t, text, "{%p")
	assert.NotContains(t, text, "{{r")
}

func TestExtractErrors(t *testing.T) {
	t.Run("not a zip", func(t *testing.T) {
		_, err := ExtractBytes([]byte("plain text, not an archive"))
		require.Error(t, err)
	})

	t.Run("missing main document", func(t *testing.T) {
		content := buildArchive(t, map[string]string{"word/styles.xml": "<a/>"})
		_, err := ExtractBytes(content)
		require.Error(t, err)
		assert.Contains(t, err.Error(), mainDocumentPart)
	})

	t.Run("malformed xml part", func(t *testing.T) {
		content := buildArchive(t, map[string]string{mainDocumentPart: "<w:document><unclosed"})
		_, err := ExtractBytes(content)
		require.Error(t, err)
	})
}

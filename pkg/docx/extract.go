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

// Package docx extracts template source text from DOCX archives. A DOCX
// file is a ZIP of XML parts; the template expressions live in the text
// runs of the main document, headers, footers, and notes.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// mainDocumentPart is the one part every DOCX archive must contain.
const mainDocumentPart = "word/document.xml"

// tagPrefixes maps the word-processor-specific tag prefixes to plain
// delimiters. Templates use them to control whether a tag replaces a
// paragraph, table row, table cell, or run; for expression validation only
// the contents matter.
var tagPrefixes = [][2]string{
	{"{%p ", "{% "},
	{"{%tr ", "{% "},
	{"{%tc ", "{% "},
	{"{%r ", "{% "},
	{"{{r ", "{{ "},
}

// ExtractFile reads path and returns the concatenated template text of all
// its document parts.
func ExtractFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return Extract(f, info.Size())
}

// ExtractBytes extracts template text from an in-memory DOCX archive.
func ExtractBytes(content []byte) (string, error) {
	return Extract(bytes.NewReader(content), int64(len(content)))
}

// Extract reads a DOCX archive and returns its template text: the text
// runs of the main document followed by headers, footers, footnotes, and
// endnotes. Paragraph boundaries and explicit breaks become newlines so
// that reported line numbers roughly track the visible document.
func Extract(r io.ReaderAt, size int64) (string, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("reading archive: %w", err)
	}

	parts := make(map[string]*zip.File, len(archive.File))
	for _, f := range archive.File {
		parts[f.Name] = f
	}
	main, ok := parts[mainDocumentPart]
	if !ok {
		return "", fmt.Errorf("not a document archive: missing %s", mainDocumentPart)
	}

	var sb strings.Builder
	if err := extractPart(main, &sb); err != nil {
		return "", err
	}
	for _, name := range auxiliaryParts(archive.File) {
		if err := extractPart(parts[name], &sb); err != nil {
			return "", err
		}
	}
	return rewriteTagPrefixes(sb.String()), nil
}

// auxiliaryParts returns the names of header, footer, and note parts in a
// stable order.
func auxiliaryParts(files []*zip.File) []string {
	var names []string
	for _, f := range files {
		if f.Name == mainDocumentPart || !strings.HasPrefix(f.Name, "word/") {
			continue
		}
		base := strings.TrimPrefix(f.Name, "word/")
		switch {
		case strings.HasPrefix(base, "header") && strings.HasSuffix(base, ".xml"),
			strings.HasPrefix(base, "footer") && strings.HasSuffix(base, ".xml"),
			base == "footnotes.xml",
			base == "endnotes.xml":
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	return names
}

// extractPart streams one XML part, appending the character data of text
// runs. Paragraph ends and explicit line breaks produce newlines.
func extractPart(f *zip.File, sb *strings.Builder) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening part %s: %w", f.Name, err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	inText := 0
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parsing part %s: %w", f.Name, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText++
			case "br", "cr":
				sb.WriteByte('\n')
			case "tab":
				sb.WriteByte('\t')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				if inText > 0 {
					inText--
				}
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText > 0 {
				sb.Write(t)
			}
		}
	}
}

// rewriteTagPrefixes strips the paragraph, row, cell, and run tag prefixes
// so the text parses as plain template source.
func rewriteTagPrefixes(text string) string {
	for _, pair := range tagPrefixes {
		text = strings.ReplaceAll(text, pair[0], pair[1])
	}
	return text
}

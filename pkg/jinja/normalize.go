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

package jinja

import (
	"regexp"
	"strings"
)

// delimiterRegion matches one delimiter-bounded template region: an output
// expression {{ ... }}, a block tag {% ... %}, or a comment {# ... #}.
// '.' deliberately does not match newlines, mirroring the fact that word
// processor quote substitution happens within a single paragraph.
var delimiterRegion = regexp.MustCompile(`({[{%#].*?[%}#]})`)

// typographicReplacer rewrites the quote characters word processors
// substitute automatically, plus the HTML-entity-encoded ampersand, back to
// what the expression grammar expects. Applied only inside delimiter
// regions so surrounding document prose is never touched.
var typographicReplacer = strings.NewReplacer(
	"“", `"`, // left double curly quote
	"”", `"`, // right double curly quote
	"‘", "'", // left single curly quote
	"’", "'", // right single curly quote
	"&amp;", "&",
)

// NormalizeDelimiters rewrites typographic artifacts inside expression
// delimiters. It is a pure function and idempotent: normalizing
// already-normalized text is a no-op.
func NormalizeDelimiters(source string) string {
	return delimiterRegion.ReplaceAllStringFunc(source, typographicReplacer.Replace)
}

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

// knownFilterNames lists every filter name that should not produce an
// unknown-filter warning: the standard filters, the document-assembly
// filters, and the wider set of filters interview authors commonly register
// themselves. A name on this list is trusted to exist at render time even
// though validation never executes it.
var knownFilterNames = []string{
	// Standard template filters.
	"abs", "attr", "batch", "capitalize", "center", "default", "dictsort",
	"escape", "filesizeformat", "first", "float", "forceescape", "format",
	"groupby", "indent", "int", "join", "last", "length", "list", "lower",
	"map", "max", "min", "pprint", "random", "reject", "rejectattr", "replace",
	"reverse", "round", "safe", "select", "selectattr", "slice", "sort",
	"string", "striptags", "sum", "title", "tojson", "trim", "truncate",
	"unique", "upper", "urlencode", "urlize", "wordcount", "wordwrap", "xmlattr",

	// General-purpose helpers used as filters.
	"any", "all", "enumerate", "sorted", "len",

	// Document-assembly filters.
	"ampersand_filter", "markdown", "add_separators", "inline_markdown",
	"paragraphs", "manual_line_breaks", "RichText", "nice_number", "ordinal",
	"ordinal_number", "currency", "comma_list", "comma_and_list", "salutation",
	"alpha", "roman", "word", "bold", "italic", "title_case", "single_paragraph",
	"phone_number_formatted", "phone_number_in_e164", "country_name",
	"fix_punctuation", "redact", "verbatim", "chain", "if_final",

	// Additional filters interview packages frequently provide.
	"catchall_options", "catchall_label", "catchall_datatype",
	"catchall_question", "catchall_subquestion", "showifdef",
	"currency_symbol", "indefinite_article", "possessify",
	"verb_past", "verb_present", "noun_plural", "noun_singular",
	"some", "indefinite", "a_preposition_b", "preposition_b",
	"capitalize_function", "section_links", "url_action",
	"interview_url", "interview_email", "static_image",
	"qr_code", "overlay_pdf", "pdf_concatenate",

	// Date and time helpers.
	"strftime", "strptime", "today", "as_datetime", "format_date",
	"format_time", "current_datetime",

	// File and document helpers.
	"file_size", "mime_type", "extension", "filename",

	// Numeric formatting helpers.
	"float_to_currency", "percentage", "thousands",
}

// KnownFilters returns the set of filter names that validation accepts
// without a warning. The returned map is a fresh copy on every call so
// callers can extend it freely.
func KnownFilters() map[string]struct{} {
	known := make(map[string]struct{}, len(knownFilterNames))
	for _, name := range knownFilterNames {
		known[name] = struct{}{}
	}
	return known
}

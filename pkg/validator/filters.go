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

// Package validator checks template expressions embedded in document text
// for syntax errors and unknown filter references. Fatal grammar errors are
// reported as errors; filters that merely are not on the known list are
// reported as advisory warnings, since custom filters can be registered at
// render time.
package validator

import "github.com/SuffolkLITLab/ALActions/pkg/jinja"

// standardFilterNames are the filters every rendering environment provides
// out of the box.
var standardFilterNames = []string{
	"abs", "attr", "batch", "capitalize", "center", "default", "dictsort",
	"escape", "filesizeformat", "first", "float", "forceescape", "format",
	"groupby", "indent", "int", "items", "join", "last", "length", "list",
	"lower", "map", "max", "min", "pprint", "random", "reject", "rejectattr",
	"replace", "reverse", "round", "safe", "select", "selectattr", "slice",
	"sort", "string", "striptags", "sum", "title", "tojson", "trim",
	"truncate", "unique", "upper", "urlencode", "urlize", "wordcount",
	"wordwrap", "xmlattr",
}

// documentFilterNames are the document-assembly filters registered by the
// production rendering stack. They are stubbed during validation so that a
// template using them resolves without pulling in the full stack.
var documentFilterNames = []string{
	"ampersand_filter",
	"markdown",
	"add_separators",
	"inline_markdown",
	"paragraphs",
	"manual_line_breaks",
	"RichText",
	"nice_number",
	"ordinal",
	"ordinal_number",
	"currency",
	"comma_list",
	"comma_and_list",
	"salutation",
	"alpha",
	"roman",
	"word",
	"bold",
	"italic",
	"title_case",
	"single_paragraph",
	"phone_number_formatted",
	"phone_number_in_e164",
	"country_name",
	"fix_punctuation",
	"redact",
	"verbatim",
	"chain",
	"catchall_options",
	"catchall_label",
	"catchall_datatype",
	"catchall_question",
	"catchall_subquestion",
	"if_final",
	"any",
	"all",
}

// newStubEnvironment builds an evaluation environment in which every
// standard and document filter, plus every name in extra, is an identity
// stub. Filter behavior is irrelevant to validation; only name resolution
// matters.
func newStubEnvironment(extra map[string]struct{}) *jinja.Environment {
	env := jinja.NewEnvironment()
	for _, name := range standardFilterNames {
		env.RegisterFilter(name, jinja.Identity)
	}
	for _, name := range documentFilterNames {
		env.RegisterFilter(name, jinja.Identity)
	}
	for name := range extra {
		env.RegisterFilter(name, jinja.Identity)
	}
	return env
}

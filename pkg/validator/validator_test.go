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
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCleanDocuments(t *testing.T) {
	v := New()
	tests := []struct {
		name  string
		input string
	}{
		{name: "plain prose", input: "Dear Sir or Madam, nothing templated here."},
		{name: "bare variable", input: "Dear {{ client.name }},"},
		{name: "deep attribute chain", input: "{{ users.plaintiff.address.on_one_line }}"},
		{name: "known filters", input: "{{ amount | currency }} due on {{ due | format_date }}"},
		{name: "standard filters", input: "{{ names | join(', ') | upper }}"},
		{name: "conditional", input: "{% if client.is_minor %}a guardian signs{% else %}{{ client.name }} signs{% endif %}"},
		{name: "loop", input: "{% for child in client.children %}{{ child.name | capitalize }}{% endfor %}"},
		{name: "method call", input: "{{ client.address.block() }}"},
		{name: "comment", input: "{# drafting note #}final text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateSource(tt.input)
			assert.False(t, result.HasErrors(), "errors: %v", result.SyntaxErrors())
			assert.False(t, result.HasWarnings(), "warnings: %v", result.WarningsMessage())
		})
	}
}

func TestValidateSyntaxErrors(t *testing.T) {
	v := New()
	tests := []struct {
		name  string
		input string
	}{
		{name: "keyword as variable", input: "{{ if this is broken }}"},
		{name: "unclosed expression", input: "{{ client.name"},
		{name: "unclosed if", input: "{% if client.is_minor %}text"},
		{name: "stray endif", input: "text {% endif %}"},
		{name: "unknown tag", input: "{% include 'other.docx' %}"},
		{name: "dangling pipe", input: "{{ client.name | }}"},
		{name: "bad operator sequence", input: "{{ a + * b }}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.ValidateSource(tt.input)
			assert.True(t, result.HasErrors())
			assert.NotEmpty(t, result.ErrorMessage())
		})
	}
}

func TestValidateUnknownFilterIsWarning(t *testing.T) {
	v := New()
	result := v.ValidateSource("{{ person.name.full | some_custom_filter }}")

	assert.False(t, result.HasErrors())
	assert.True(t, result.HasWarnings())
	assert.Equal(t, []string{"some_custom_filter"}, result.UnknownFilters())
	assert.Equal(t, "Unknown filters detected: some_custom_filter", result.WarningsMessage())
}

func TestValidateDiscoversAllUnknownFilters(t *testing.T) {
	v := New()
	result := v.ValidateSource("{{ a | filter_one }} {{ b | filter_two }} {{ c | filter_three }}")

	assert.False(t, result.HasErrors())
	assert.Equal(t, []string{"filter_one", "filter_three", "filter_two"}, result.UnknownFilters())
}

func TestValidateFilterInUnreachedBranch(t *testing.T) {
	// A filter behind an always-false condition is invisible to evaluation
	// but still reported via the lexical sweep.
	v := New()
	result := v.ValidateSource("{% if client.missing_attribute %}{{ x | hidden_custom_filter }}{% endif %}")

	assert.False(t, result.HasErrors())
	assert.Contains(t, result.UnknownFilters(), "hidden_custom_filter")
}

func TestValidateCurlyQuotesNormalized(t *testing.T) {
	v := New()
	result := v.ValidateSource("{{ client.name | default(“anonymous”) }}")
	assert.False(t, result.HasErrors(), "errors: %v", result.SyntaxErrors())
	assert.False(t, result.HasWarnings())
}

func TestValidateEncodedAmpersand(t *testing.T) {
	v := New()
	result := v.ValidateSource("{% if a &amp;&amp; b %}x{% endif %}")
	// "&&" is not part of the grammar even after decoding; the point is
	// that the error mentions the decoded text, not the entity.
	require.True(t, result.HasErrors())
	assert.NotContains(t, result.ErrorMessage(), "&amp;")
}

func TestValidateMixedErrorsAndWarnings(t *testing.T) {
	v := New()
	result := v.ValidateSource("{{ a | custom_one }} and {% endif %}")

	assert.True(t, result.HasErrors())
	assert.True(t, result.HasWarnings())
	assert.Contains(t, result.UnknownFilters(), "custom_one")
}

func TestValidateIterationBound(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&sb, "{{ v%d | made_up_%d }} ", i, i)
	}
	v := New(WithMaxIterations(5))
	result := v.ValidateSource(sb.String())

	// Discovery stops at the bound but the lexical sweep still finds every
	// reference, so no filter goes unreported.
	assert.True(t, result.HasErrors())
	assert.Contains(t, result.ErrorMessage(), "did not converge")
	assert.Len(t, result.UnknownFilters(), 30)
}

func TestValidateConvergesWithinBound(t *testing.T) {
	// N distinct unknown filters need N+1 attempts.
	v := New()
	result := v.ValidateSource("{{ a | u_one }}{{ b | u_two }}{{ c | u_three }}")

	assert.False(t, result.HasErrors())
	assert.Len(t, result.UnknownFilters(), 3)
}

func TestValidateWithExtraKnownFilters(t *testing.T) {
	v := New(WithKnownFilters("our_house_filter"))
	result := v.ValidateSource("{{ a | our_house_filter }}")

	assert.False(t, result.HasErrors())
	assert.False(t, result.HasWarnings())
}

func TestValidateWithStubFilters(t *testing.T) {
	v := New(WithStubFilters("plugin_filter"))
	result := v.ValidateSource("{{ a | plugin_filter }}")

	assert.False(t, result.HasErrors())
	assert.False(t, result.HasWarnings())
}

func TestValidateDuplicateFilterUseReportedOnce(t *testing.T) {
	v := New()
	result := v.ValidateSource("{{ a | same_filter }} {{ b | same_filter }}")
	assert.Equal(t, []string{"same_filter"}, result.UnknownFilters())
}

func TestValidateUndefinedComparisons(t *testing.T) {
	// Comparing missing variables must not fail validation.
	v := New()
	result := v.ValidateSource("{% if client.age < 18 %}minor{% endif %}{% if client.age >= 18 %}adult{% endif %}")
	assert.False(t, result.HasErrors())
	assert.False(t, result.HasWarnings())
}

func TestResultMessages(t *testing.T) {
	r := NewResult()
	assert.Empty(t, r.ErrorMessage())
	assert.Empty(t, r.WarningsMessage())

	r.AddSyntaxError("first error")
	r.AddSyntaxError("second error")
	r.AddSyntaxError("first error")
	assert.Equal(t, "first error\n\nsecond error", r.ErrorMessage())

	r.AddUnknownFilter("zeta")
	r.AddUnknownFilter("alpha")
	r.AddWarning("a general warning")
	assert.Equal(t, "Unknown filters detected: alpha, zeta\n\na general warning", r.WarningsMessage())
}

func TestValidateCompositeComparisons(t *testing.T) {
	// List and dict literals on either side of == must compare by content,
	// not crash the render.
	v := New()
	result := v.ValidateSource("{% if [1] == [1] %}x{% endif %}{% if {'a': 1} == client.data %}y{% endif %}")
	assert.False(t, result.HasErrors())
	assert.False(t, result.HasWarnings())
}

func TestValidateFilterPanicIsContained(t *testing.T) {
	boom := func(interface{}, []interface{}, map[string]interface{}) (interface{}, error) {
		panic("filter exploded")
	}
	v := New(WithFilterFunc("format_date", boom))
	result := v.ValidateSource("{{ event.when | format_date }}")
	require.True(t, result.HasErrors())
	assert.Contains(t, result.ErrorMessage(), "Validation with stubbed filters failed: filter exploded")
	assert.False(t, result.HasWarnings())
}

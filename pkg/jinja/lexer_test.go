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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeOutputExpression(t *testing.T) {
	tokens, err := Tokenize("Hello {{ user.name }}!")
	require.NoError(t, err)

	assert.Equal(t, []TokenKind{
		TokenText,
		TokenVariableBegin, TokenName, TokenOperator, TokenName, TokenVariableEnd,
		TokenText,
		TokenEOF,
	}, kinds(tokens))
	assert.Equal(t, "user", tokens[2].Value)
	assert.Equal(t, ".", tokens[3].Value)
	assert.Equal(t, "name", tokens[4].Value)
}

func TestTokenizeBlockAndComment(t *testing.T) {
	tokens, err := Tokenize("{# note #}{% if x %}y{% endif %}")
	require.NoError(t, err)

	assert.Equal(t, []TokenKind{
		TokenBlockBegin, TokenName, TokenName, TokenBlockEnd,
		TokenText,
		TokenBlockBegin, TokenName, TokenBlockEnd,
		TokenEOF,
	}, kinds(tokens))
}

func TestTokenizeDictInsideExpression(t *testing.T) {
	// The closing "}}" of a dict literal plus the expression delimiter must
	// not be mistaken for an early delimiter end.
	tokens, err := Tokenize(`{{ {"a": 1} }}`)
	require.NoError(t, err)

	last := tokens[len(tokens)-2]
	assert.Equal(t, TokenVariableEnd, last.Kind)
}

func TestTokenizeStringEscapes(t *testing.T) {
	tokens, err := Tokenize(`{{ "a\nb" }}`)
	require.NoError(t, err)
	require.Equal(t, TokenString, tokens[1].Kind)
	assert.Equal(t, "a\nb", tokens[1].Value)
}

func TestTokenizeWhitespaceControl(t *testing.T) {
	tokens, err := Tokenize("{{- name -}}")
	require.NoError(t, err)
	assert.Equal(t, []TokenKind{TokenVariableBegin, TokenName, TokenVariableEnd, TokenEOF}, kinds(tokens))
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unclosed expression", input: "{{ name"},
		{name: "unclosed block", input: "{% if x"},
		{name: "unclosed comment", input: "{# never ends"},
		{name: "unterminated string", input: `{{ "abc }}`},
		{name: "stray character", input: "{{ a ? b }}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)
			assert.IsType(t, &SyntaxError{}, err)
		})
	}
}

func TestTokenizeLineTracking(t *testing.T) {
	_, err := Tokenize("line one\nline two\n{{ bad ? }}")
	require.Error(t, err)
	synErr, ok := err.(*SyntaxError)
	require.True(t, ok)
	assert.Equal(t, 3, synErr.Line)
}

func TestInjectDefaultFilter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		injected bool
	}{
		{name: "bare variable", input: "{{ name }}", injected: true},
		{name: "attribute chain", input: "{{ user.name.full }}", injected: true},
		{name: "already filtered", input: "{{ name | trim }}", injected: false},
		{name: "filtered with arguments", input: "{{ name | default('x') }}", injected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			out := InjectDefaultFilter(tokens)

			found := false
			for _, tok := range out {
				if tok.Kind == TokenName && tok.Value == DefaultFilterName {
					found = true
				}
			}
			assert.Equal(t, tt.injected, found)
		})
	}
}

func TestInjectDefaultFilterPerExpression(t *testing.T) {
	// Injection state resets between expressions: a pipe in the first must
	// not suppress injection in the second.
	tokens, err := Tokenize("{{ a | trim }} and {{ b }}")
	require.NoError(t, err)
	out := InjectDefaultFilter(tokens)

	count := 0
	for _, tok := range out {
		if tok.Kind == TokenName && tok.Value == DefaultFilterName {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestInjectDefaultFilterIgnoresBlocks(t *testing.T) {
	tokens, err := Tokenize("{% if x %}y{% endif %}")
	require.NoError(t, err)
	out := InjectDefaultFilter(tokens)
	assert.Equal(t, kinds(tokens), kinds(out))
}

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

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	// TokenText is literal document text outside any delimiter.
	TokenText TokenKind = iota
	// TokenVariableBegin marks the start of an output expression ("{{").
	TokenVariableBegin
	// TokenVariableEnd marks the end of an output expression ("}}").
	TokenVariableEnd
	// TokenBlockBegin marks the start of a block tag ("{%").
	TokenBlockBegin
	// TokenBlockEnd marks the end of a block tag ("%}").
	TokenBlockEnd
	// TokenName is an identifier or keyword.
	TokenName
	// TokenString is a quoted string literal with escapes resolved.
	TokenString
	// TokenInteger is an integer literal.
	TokenInteger
	// TokenFloat is a floating point literal.
	TokenFloat
	// TokenOperator is any punctuation or operator except the pipe.
	TokenOperator
	// TokenPipe is the filter-chain operator "|". It has its own kind so
	// the default-filter injection pass can track it without string
	// comparisons.
	TokenPipe
	// TokenEOF terminates every token stream.
	TokenEOF
)

// Token is one lexical unit of a template.
type Token struct {
	Kind  TokenKind
	Value string
	Line  int
	Col   int
}

// String returns a short description used in error messages.
func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "end of template"
	case TokenVariableEnd:
		return "'}}'"
	case TokenBlockEnd:
		return "'%}'"
	case TokenText:
		return "text"
	case TokenString:
		return "string literal"
	default:
		return fmt.Sprintf("'%s'", t.Value)
	}
}

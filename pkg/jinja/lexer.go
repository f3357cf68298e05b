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

import "strings"

// DefaultFilterName is the filter implicitly appended to every output
// expression that carries no explicit filter pipeline. Production rendering
// always applies it, so validation injects it too and will surface a
// failure if it is missing from the environment.
const DefaultFilterName = "ampersand_filter"

const (
	variableBegin = "{{"
	variableEnd   = "}}"
	blockBegin    = "{%"
	blockEnd      = "%}"
	commentBegin  = "{#"
	commentEnd    = "#}"
)

// lexer scans template source into tokens. It understands the three
// delimiter pairs, whitespace-control modifiers ({{-, {%-, -%}, ...), and
// the expression-level lexicon (names, strings, numbers, operators).
type lexer struct {
	src    string
	pos    int
	line   int
	col    int
	tokens []Token
}

// Tokenize scans source into a token stream terminated by a TokenEOF.
// Comments are consumed and discarded. The returned error, if any, is a
// *SyntaxError.
func Tokenize(source string) ([]Token, error) {
	l := &lexer{src: source, line: 1, col: 1}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) run() error {
	for l.pos < len(l.src) {
		next, marker := l.nextMarker()
		if next < 0 {
			l.emitText(l.src[l.pos:])
			break
		}
		if next > l.pos {
			l.emitText(l.src[l.pos:next])
		}
		switch marker {
		case commentBegin:
			if err := l.skipComment(); err != nil {
				return err
			}
		case variableBegin:
			if err := l.lexTag(TokenVariableBegin, TokenVariableEnd, variableEnd); err != nil {
				return err
			}
		case blockBegin:
			if err := l.lexTag(TokenBlockBegin, TokenBlockEnd, blockEnd); err != nil {
				return err
			}
		}
	}
	l.tokens = append(l.tokens, Token{Kind: TokenEOF, Line: l.line, Col: l.col})
	return nil
}

// nextMarker finds the earliest delimiter opening at or after the current
// position. Returns -1 if none remains.
func (l *lexer) nextMarker() (int, string) {
	best := -1
	marker := ""
	for _, m := range []string{variableBegin, blockBegin, commentBegin} {
		if idx := strings.Index(l.src[l.pos:], m); idx >= 0 {
			abs := l.pos + idx
			if best < 0 || abs < best {
				best = abs
				marker = m
			}
		}
	}
	// "{{" and "{#" both start with '{'; prefer the marker that actually
	// matches at the found position.
	if best >= 0 {
		switch {
		case strings.HasPrefix(l.src[best:], commentBegin):
			marker = commentBegin
		case strings.HasPrefix(l.src[best:], variableBegin):
			marker = variableBegin
		default:
			marker = blockBegin
		}
	}
	return best, marker
}

func (l *lexer) emitText(text string) {
	l.tokens = append(l.tokens, Token{Kind: TokenText, Value: text, Line: l.line, Col: l.col})
	l.advance(len(text))
}

func (l *lexer) skipComment() error {
	line, col := l.line, l.col
	l.advance(len(commentBegin))
	idx := strings.Index(l.src[l.pos:], commentEnd)
	if idx < 0 {
		return NewSyntaxError(line, col, "unclosed comment, expected '%s'", commentEnd)
	}
	l.advance(idx + len(commentEnd))
	return nil
}

// lexTag scans one delimiter-bounded tag: the begin token, the expression
// tokens inside it, and the end token. Bracket depth is tracked so that
// "}}"-like sequences inside dict literals do not terminate the tag.
func (l *lexer) lexTag(beginKind, endKind TokenKind, end string) error {
	openLine, openCol := l.line, l.col
	l.tokens = append(l.tokens, Token{Kind: beginKind, Line: l.line, Col: l.col})
	l.advance(2)
	// Whitespace-control modifier after the opening delimiter.
	if l.pos < len(l.src) && (l.src[l.pos] == '-' || l.src[l.pos] == '+') {
		l.advance(1)
	}

	depth := 0
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			return NewSyntaxError(openLine, openCol, "unclosed tag, expected '%s'", end)
		}
		if depth == 0 {
			if strings.HasPrefix(l.src[l.pos:], end) {
				l.tokens = append(l.tokens, Token{Kind: endKind, Line: l.line, Col: l.col})
				l.advance(len(end))
				return nil
			}
			if l.src[l.pos] == '-' && strings.HasPrefix(l.src[l.pos+1:], end) {
				l.tokens = append(l.tokens, Token{Kind: endKind, Line: l.line, Col: l.col})
				l.advance(1 + len(end))
				return nil
			}
		}

		c := l.src[l.pos]
		switch {
		case c == '\'' || c == '"':
			if err := l.lexString(c); err != nil {
				return err
			}
		case c >= '0' && c <= '9':
			l.lexNumber()
		case isNameStart(c):
			l.lexName()
		case c == '|':
			l.emit(TokenPipe, "|", 1)
		default:
			op, ok := l.matchOperator()
			if !ok {
				return NewSyntaxError(l.line, l.col, "unexpected character %q", string(c))
			}
			switch op {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			}
			l.emit(TokenOperator, op, len(op))
		}
	}
}

func (l *lexer) lexString(quote byte) error {
	line, col := l.line, l.col
	l.advance(1)
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case quote:
			l.advance(1)
			l.tokens = append(l.tokens, Token{Kind: TokenString, Value: b.String(), Line: line, Col: col})
			return nil
		case '\\':
			if l.pos+1 >= len(l.src) {
				return NewSyntaxError(line, col, "unterminated string literal")
			}
			esc := l.src[l.pos+1]
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(esc)
			}
			l.advance(2)
		case '\n':
			return NewSyntaxError(line, col, "unterminated string literal")
		default:
			b.WriteByte(c)
			l.advance(1)
		}
	}
	return NewSyntaxError(line, col, "unterminated string literal")
}

func (l *lexer) lexNumber() {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.advance(1)
	}
	kind := TokenInteger
	if l.pos+1 < len(l.src) && l.src[l.pos] == '.' && isDigit(l.src[l.pos+1]) {
		kind = TokenFloat
		l.advance(1)
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.advance(1)
		}
	}
	l.tokens = append(l.tokens, Token{Kind: kind, Value: l.src[start:l.pos], Line: line, Col: col})
}

func (l *lexer) lexName() {
	line, col := l.line, l.col
	start := l.pos
	for l.pos < len(l.src) && isNameChar(l.src[l.pos]) {
		l.advance(1)
	}
	l.tokens = append(l.tokens, Token{Kind: TokenName, Value: l.src[start:l.pos], Line: line, Col: col})
}

// twoCharOperators are matched before single characters.
var twoCharOperators = []string{"==", "!=", "<=", ">=", "//", "**"}

const singleCharOperators = "+-*/%~<>()[]{},:.="

func (l *lexer) matchOperator() (string, bool) {
	for _, op := range twoCharOperators {
		if strings.HasPrefix(l.src[l.pos:], op) {
			return op, true
		}
	}
	c := l.src[l.pos]
	if strings.IndexByte(singleCharOperators, c) >= 0 {
		return string(c), true
	}
	return "", false
}

func (l *lexer) emit(kind TokenKind, value string, width int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Value: value, Line: l.line, Col: l.col})
	l.advance(width)
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.advance(1)
		default:
			return
		}
	}
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool { return isNameStart(c) || isDigit(c) }

// InjectDefaultFilter rewrites a token stream so that every output
// expression without an explicit filter pipeline receives an implicit
// "| ampersand_filter" before its closing delimiter. Expressions that
// already contain a pipe are left alone.
func InjectDefaultFilter(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens)+8)
	metPipe := false
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenVariableBegin:
			metPipe = false
		case TokenPipe:
			metPipe = true
		case TokenVariableEnd:
			if !metPipe {
				out = append(out,
					Token{Kind: TokenPipe, Value: "|", Line: tok.Line, Col: tok.Col},
					Token{Kind: TokenName, Value: DefaultFilterName, Line: tok.Line, Col: tok.Col},
				)
			}
		}
		out = append(out, tok)
	}
	return out
}

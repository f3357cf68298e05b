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

// SyntaxError represents a violation of the template grammar, detected
// either while lexing/parsing or while evaluating an expression whose
// operands can never combine (e.g. adding a number to a list literal).
type SyntaxError struct {
	// Msg describes the violation.
	Msg string

	// Line is the 1-based line of the offending token, or 0 if unknown.
	Line int

	// Col is the 1-based column of the offending token, or 0 if unknown.
	Col int
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Line > 0 && e.Col > 0 {
		return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Line, e.Col, e.Msg)
	}
	if e.Line > 0 {
		return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("syntax error: %s", e.Msg)
}

// UnknownFilterError is raised when an expression pipes its value through a
// filter name that is not registered in the evaluation environment. The
// validation loop treats this error as retryable: it stubs the named filter
// and attempts evaluation again.
type UnknownFilterError struct {
	// Name is the filter name as written in the template.
	Name string

	// Line is the 1-based line where the filter is applied.
	Line int
}

// Error implements the error interface. The message format is part of the
// package contract: callers match on it when deduplicating failures.
func (e *UnknownFilterError) Error() string {
	return fmt.Sprintf("no filter named '%s'", e.Name)
}

// NewSyntaxError creates a SyntaxError with a position.
func NewSyntaxError(line, col int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Msg:  fmt.Sprintf(format, args...),
		Line: line,
		Col:  col,
	}
}

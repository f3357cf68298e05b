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

// Template is the parsed form of one document: a flat sequence of text,
// output, and block statements.
type Template struct {
	Nodes []Node
}

// Node is a statement-level template node.
type Node interface{ stmtNode() }

// Expr is an expression-level template node.
type Expr interface{ exprNode() }

// TextStmt is literal document text between delimiters.
type TextStmt struct {
	Text string
}

// OutputStmt is an output expression: {{ expr }}.
type OutputStmt struct {
	Expr Expr
}

// ConditionalBranch is one arm of an if/elif chain.
type ConditionalBranch struct {
	Cond Expr
	Body []Node
}

// IfStmt is an {% if %}...{% elif %}...{% else %}...{% endif %} block.
type IfStmt struct {
	Branches []ConditionalBranch
	Else     []Node
}

// ForStmt is a {% for targets in iter %}...{% else %}...{% endfor %} block.
// Cond holds the optional inline loop filter ({% for x in xs if cond %}).
type ForStmt struct {
	Targets []string
	Iter    Expr
	Cond    Expr
	Body    []Node
	Else    []Node
	Line    int
}

// SetStmt is a {% set name = expr %} assignment.
type SetStmt struct {
	Name  string
	Value Expr
}

// LiteralExpr is a constant: string, int64, float64, bool, or nil.
type LiteralExpr struct {
	Value interface{}
}

// NameExpr references a context variable.
type NameExpr struct {
	Name string
	Line int
}

// ListExpr is a list literal.
type ListExpr struct {
	Items []Expr
}

// TupleExpr is a tuple literal.
type TupleExpr struct {
	Items []Expr
}

// DictPair is one key/value entry of a dict literal.
type DictPair struct {
	Key   Expr
	Value Expr
}

// DictExpr is a dict literal.
type DictExpr struct {
	Pairs []DictPair
}

// AttrExpr is attribute access: target.name.
type AttrExpr struct {
	Target Expr
	Name   string
	Line   int
}

// IndexExpr is subscript access: target[key].
type IndexExpr struct {
	Target Expr
	Key    Expr
	Line   int
}

// SliceExpr is slice access: target[start:stop:step]. Any bound may be nil.
type SliceExpr struct {
	Target Expr
	Start  Expr
	Stop   Expr
	Step   Expr
	Line   int
}

// Kwarg is one keyword argument of a call or filter application.
type Kwarg struct {
	Name  string
	Value Expr
}

// CallExpr is a call: target(args..., kwargs...).
type CallExpr struct {
	Target Expr
	Args   []Expr
	Kwargs []Kwarg
	Line   int
}

// FilterExpr applies a named filter: value | name(args...).
type FilterExpr struct {
	Value  Expr
	Name   string
	Args   []Expr
	Kwargs []Kwarg
	Line   int
}

// TestExpr applies a named test: value is [not] name [args].
type TestExpr struct {
	Value   Expr
	Name    string
	Negated bool
	Args    []Expr
	Line    int
}

// UnaryExpr is a prefix operation: -, +, or not.
type UnaryExpr struct {
	Op      string
	Operand Expr
	Line    int
}

// BinaryExpr is an arithmetic, concatenation, or boolean operation.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
	Line  int
}

// CompareOp is one link of a (possibly chained) comparison.
type CompareOp struct {
	Op    string
	Right Expr
}

// CompareExpr is a comparison chain: left op right [op right ...].
type CompareExpr struct {
	Left Expr
	Ops  []CompareOp
	Line int
}

// CondExpr is an inline conditional: value if test else alt. Alt may be
// nil, in which case the expression yields the undefined sentinel when the
// test is false.
type CondExpr struct {
	Value Expr
	Test  Expr
	Alt   Expr
}

func (*TextStmt) stmtNode()   {}
func (*OutputStmt) stmtNode() {}
func (*IfStmt) stmtNode()     {}
func (*ForStmt) stmtNode()    {}
func (*SetStmt) stmtNode()    {}

func (*LiteralExpr) exprNode() {}
func (*NameExpr) exprNode()    {}
func (*ListExpr) exprNode()    {}
func (*TupleExpr) exprNode()   {}
func (*DictExpr) exprNode()    {}
func (*AttrExpr) exprNode()    {}
func (*IndexExpr) exprNode()   {}
func (*SliceExpr) exprNode()   {}
func (*CallExpr) exprNode()    {}
func (*FilterExpr) exprNode()  {}
func (*TestExpr) exprNode()    {}
func (*UnaryExpr) exprNode()   {}
func (*BinaryExpr) exprNode()  {}
func (*CompareExpr) exprNode() {}
func (*CondExpr) exprNode()    {}

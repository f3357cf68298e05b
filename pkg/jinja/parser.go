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

import "strconv"

// reservedNames may not be used as plain variable names. They are either
// block tag keywords or expression operators.
var reservedNames = map[string]bool{
	"if": true, "elif": true, "else": true, "endif": true,
	"for": true, "endfor": true, "set": true,
	"in": true, "is": true, "and": true, "or": true, "not": true,
	"recursive": true,
}

// parser consumes a token stream produced by Tokenize (optionally rewritten
// by InjectDefaultFilter) and builds a Template.
type parser struct {
	tokens []Token
	pos    int
}

// Parse builds the statement tree for a full token stream. The returned
// error, if any, is a *SyntaxError.
func Parse(tokens []Token) (*Template, error) {
	p := &parser{tokens: tokens}
	nodes, end, err := p.parseNodes(nil)
	if err != nil {
		return nil, err
	}
	if end != "" {
		return nil, p.errHere("unexpected '%s'", end)
	}
	return &Template{Nodes: nodes}, nil
}

func (p *parser) cur() Token  { return p.tokens[p.pos] }
func (p *parser) next() Token { t := p.tokens[p.pos]; p.pos++; return t }

func (p *parser) peekOperator(op string) bool {
	t := p.cur()
	return t.Kind == TokenOperator && t.Value == op
}

func (p *parser) peekName(name string) bool {
	t := p.cur()
	return t.Kind == TokenName && t.Value == name
}

func (p *parser) acceptOperator(op string) bool {
	if p.peekOperator(op) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) acceptName(name string) bool {
	if p.peekName(name) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expectOperator(op string) error {
	t := p.cur()
	if t.Kind != TokenOperator || t.Value != op {
		return NewSyntaxError(t.Line, t.Col, "expected '%s', got %s", op, t)
	}
	p.pos++
	return nil
}

func (p *parser) expectKind(kind TokenKind, what string) (Token, error) {
	t := p.cur()
	if t.Kind != kind {
		return Token{}, NewSyntaxError(t.Line, t.Col, "expected %s, got %s", what, t)
	}
	p.pos++
	return t, nil
}

func (p *parser) errHere(format string, args ...interface{}) *SyntaxError {
	t := p.cur()
	return NewSyntaxError(t.Line, t.Col, format, args...)
}

// parseNodes parses statements until EOF or until a block tag named in stop
// is reached. When a stop tag terminates the scan, the tag's opening
// delimiter and name token are consumed and the name is returned; the
// caller finishes parsing the tag.
func (p *parser) parseNodes(stop map[string]bool) ([]Node, string, error) {
	var nodes []Node
	for {
		tok := p.cur()
		switch tok.Kind {
		case TokenEOF:
			if stop != nil {
				return nil, "", NewSyntaxError(tok.Line, tok.Col, "unexpected end of template inside block")
			}
			return nodes, "", nil

		case TokenText:
			p.pos++
			nodes = append(nodes, &TextStmt{Text: tok.Value})

		case TokenVariableBegin:
			p.pos++
			expr, err := p.parseExpression()
			if err != nil {
				return nil, "", err
			}
			if _, err := p.expectKind(TokenVariableEnd, "'}}'"); err != nil {
				return nil, "", err
			}
			nodes = append(nodes, &OutputStmt{Expr: expr})

		case TokenBlockBegin:
			name := p.tokens[p.pos+1]
			if name.Kind != TokenName {
				return nil, "", NewSyntaxError(name.Line, name.Col, "expected tag name, got %s", name)
			}
			if stop[name.Value] {
				p.pos += 2
				return nodes, name.Value, nil
			}
			stmt, err := p.parseTag(name)
			if err != nil {
				return nil, "", err
			}
			nodes = append(nodes, stmt)

		default:
			return nil, "", NewSyntaxError(tok.Line, tok.Col, "unexpected %s", tok)
		}
	}
}

func (p *parser) parseTag(name Token) (Node, error) {
	switch name.Value {
	case "if":
		p.pos += 2
		return p.parseIf()
	case "for":
		p.pos += 2
		return p.parseFor(name.Line)
	case "set":
		p.pos += 2
		return p.parseSet()
	case "elif", "else", "endif", "endfor":
		return nil, NewSyntaxError(name.Line, name.Col, "unexpected '%s'", name.Value)
	default:
		return nil, NewSyntaxError(name.Line, name.Col, "unknown tag '%s'", name.Value)
	}
}

func (p *parser) parseIf() (Node, error) {
	stmt := &IfStmt{}
	for {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectKind(TokenBlockEnd, "'%}'"); err != nil {
			return nil, err
		}
		body, end, err := p.parseNodes(map[string]bool{"elif": true, "else": true, "endif": true})
		if err != nil {
			return nil, err
		}
		stmt.Branches = append(stmt.Branches, ConditionalBranch{Cond: cond, Body: body})
		if end != "elif" {
			if end == "else" {
				if _, err := p.expectKind(TokenBlockEnd, "'%}'"); err != nil {
					return nil, err
				}
				elseBody, _, err := p.parseNodes(map[string]bool{"endif": true})
				if err != nil {
					return nil, err
				}
				stmt.Else = elseBody
			}
			if _, err := p.expectKind(TokenBlockEnd, "'%}'"); err != nil {
				return nil, err
			}
			return stmt, nil
		}
	}
}

func (p *parser) parseFor(line int) (Node, error) {
	stmt := &ForStmt{Line: line}
	for {
		t, err := p.expectKind(TokenName, "loop variable")
		if err != nil {
			return nil, err
		}
		if reservedNames[t.Value] {
			return nil, NewSyntaxError(t.Line, t.Col, "unexpected keyword '%s'", t.Value)
		}
		stmt.Targets = append(stmt.Targets, t.Value)
		if !p.acceptOperator(",") {
			break
		}
	}
	if !p.acceptName("in") {
		return nil, p.errHere("expected 'in', got %s", p.cur())
	}
	// The iterable is parsed below the inline-conditional level so that a
	// trailing "if" reads as the loop filter, not as part of the iterable.
	iter, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	stmt.Iter = iter
	if p.acceptName("if") {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Cond = cond
	}
	p.acceptName("recursive")
	if _, err := p.expectKind(TokenBlockEnd, "'%}'"); err != nil {
		return nil, err
	}

	body, end, err := p.parseNodes(map[string]bool{"else": true, "endfor": true})
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	if end == "else" {
		if _, err := p.expectKind(TokenBlockEnd, "'%}'"); err != nil {
			return nil, err
		}
		elseBody, _, err := p.parseNodes(map[string]bool{"endfor": true})
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBody
	}
	if _, err := p.expectKind(TokenBlockEnd, "'%}'"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *parser) parseSet() (Node, error) {
	t, err := p.expectKind(TokenName, "variable name")
	if err != nil {
		return nil, err
	}
	if reservedNames[t.Value] {
		return nil, NewSyntaxError(t.Line, t.Col, "unexpected keyword '%s'", t.Value)
	}
	if err := p.expectOperator("="); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectKind(TokenBlockEnd, "'%}'"); err != nil {
		return nil, err
	}
	return &SetStmt{Name: t.Value, Value: value}, nil
}

// Expression grammar, loosest binding first:
//
//	conditional:  or ("if" or ("else" conditional)?)?
//	or:           and ("or" and)*
//	and:          not ("and" not)*
//	not:          "not" not | comparison
//	comparison:   concat (cmpop concat | "is" test)*
//	concat:       add ("~" add)*
//	add:          mul (("+"|"-") mul)*
//	mul:          pow (("*"|"/"|"//"|"%") pow)*
//	pow:          unary ("**" unary)*
//	unary:        ("-"|"+") unary | postfix
//	postfix:      primary ("." name | "[...]" | "(...)" | "|" filter)*
func (p *parser) parseExpression() (Expr, error) {
	return p.parseConditional()
}

func (p *parser) parseConditional() (Expr, error) {
	value, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.acceptName("if") {
		return value, nil
	}
	test, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	var alt Expr
	if p.acceptName("else") {
		alt, err = p.parseConditional()
		if err != nil {
			return nil, err
		}
	}
	return &CondExpr{Value: value, Test: test, Alt: alt}, nil
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peekName("or") {
		line := p.next().Line
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: "or", Left: left, Right: right, Line: line}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.peekName("and") {
		line := p.next().Line
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: "and", Left: left, Right: right, Line: line}
	}
	return left, nil
}

func (p *parser) parseNot() (Expr, error) {
	if p.peekName("not") {
		line := p.next().Line
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: "not", Operand: operand, Line: line}, nil
	}
	return p.parseComparison()
}

var comparisonOperators = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	cmp := &CompareExpr{Left: left}
	for {
		t := p.cur()
		switch {
		case t.Kind == TokenOperator && comparisonOperators[t.Value]:
			p.pos++
			right, err := p.parseConcat()
			if err != nil {
				return nil, err
			}
			cmp.Ops = append(cmp.Ops, CompareOp{Op: t.Value, Right: right})
			cmp.Line = t.Line

		case t.Kind == TokenName && t.Value == "in":
			p.pos++
			right, err := p.parseConcat()
			if err != nil {
				return nil, err
			}
			cmp.Ops = append(cmp.Ops, CompareOp{Op: "in", Right: right})
			cmp.Line = t.Line

		case t.Kind == TokenName && t.Value == "not" && p.tokens[p.pos+1].Kind == TokenName && p.tokens[p.pos+1].Value == "in":
			p.pos += 2
			right, err := p.parseConcat()
			if err != nil {
				return nil, err
			}
			cmp.Ops = append(cmp.Ops, CompareOp{Op: "not in", Right: right})
			cmp.Line = t.Line

		case t.Kind == TokenName && t.Value == "is":
			if len(cmp.Ops) > 0 {
				return nil, NewSyntaxError(t.Line, t.Col, "unexpected 'is' after comparison")
			}
			p.pos++
			test, err := p.parseTest(left, t.Line)
			if err != nil {
				return nil, err
			}
			left = test
			cmp.Left = left

		default:
			if len(cmp.Ops) == 0 {
				return left, nil
			}
			return cmp, nil
		}
	}
}

// parseTest parses the remainder of "value is [not] name [args]". Bare
// arguments are limited to literals (x is divisibleby 3); anything more
// elaborate requires parentheses.
func (p *parser) parseTest(value Expr, line int) (Expr, error) {
	negated := p.acceptName("not")
	name, err := p.expectKind(TokenName, "test name")
	if err != nil {
		return nil, err
	}
	test := &TestExpr{Value: value, Name: name.Value, Negated: negated, Line: line}
	if p.acceptOperator("(") {
		for !p.peekOperator(")") {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			test.Args = append(test.Args, arg)
			if !p.acceptOperator(",") {
				break
			}
		}
		if err := p.expectOperator(")"); err != nil {
			return nil, err
		}
		return test, nil
	}
	switch p.cur().Kind {
	case TokenString, TokenInteger, TokenFloat:
		arg, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		test.Args = append(test.Args, arg)
	}
	return test, nil
}

func (p *parser) parseConcat() (Expr, error) {
	return p.parseBinaryLevel(0)
}

// binaryLevels orders the arithmetic operators from loosest to tightest.
var binaryLevels = [][]string{
	{"~"},
	{"+", "-"},
	{"*", "/", "//", "%"},
	{"**"},
}

func (p *parser) parseBinaryLevel(level int) (Expr, error) {
	if level >= len(binaryLevels) {
		return p.parseUnary()
	}
	left, err := p.parseBinaryLevel(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		t := p.cur()
		if t.Kind != TokenOperator || !contains(binaryLevels[level], t.Value) {
			return left, nil
		}
		p.pos++
		right, err := p.parseBinaryLevel(level + 1)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: t.Value, Left: left, Right: right, Line: t.Line}
	}
}

func contains(ops []string, op string) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}

func (p *parser) parseUnary() (Expr, error) {
	t := p.cur()
	if t.Kind == TokenOperator && (t.Value == "-" || t.Value == "+") {
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: t.Value, Operand: operand, Line: t.Line}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.cur()
		switch {
		case t.Kind == TokenOperator && t.Value == ".":
			p.pos++
			name, err := p.expectKind(TokenName, "attribute name")
			if err != nil {
				return nil, err
			}
			expr = &AttrExpr{Target: expr, Name: name.Value, Line: t.Line}

		case t.Kind == TokenOperator && t.Value == "[":
			p.pos++
			expr, err = p.parseSubscript(expr, t.Line)
			if err != nil {
				return nil, err
			}

		case t.Kind == TokenOperator && t.Value == "(":
			p.pos++
			args, kwargs, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{Target: expr, Args: args, Kwargs: kwargs, Line: t.Line}

		case t.Kind == TokenPipe:
			p.pos++
			name, err := p.expectKind(TokenName, "filter name")
			if err != nil {
				return nil, err
			}
			filter := &FilterExpr{Value: expr, Name: name.Value, Line: name.Line}
			if p.acceptOperator("(") {
				filter.Args, filter.Kwargs, err = p.parseCallArgs()
				if err != nil {
					return nil, err
				}
			}
			expr = filter

		default:
			return expr, nil
		}
	}
}

// parseSubscript parses an index or slice after the opening bracket.
func (p *parser) parseSubscript(target Expr, line int) (Expr, error) {
	slice := &SliceExpr{Target: target, Line: line}
	sawColon := false

	parsePart := func() (Expr, error) {
		if p.peekOperator(":") || p.peekOperator("]") {
			return nil, nil
		}
		return p.parseExpression()
	}

	start, err := parsePart()
	if err != nil {
		return nil, err
	}
	slice.Start = start
	if p.acceptOperator(":") {
		sawColon = true
		slice.Stop, err = parsePart()
		if err != nil {
			return nil, err
		}
		if p.acceptOperator(":") {
			slice.Step, err = parsePart()
			if err != nil {
				return nil, err
			}
		}
	}
	if err := p.expectOperator("]"); err != nil {
		return nil, err
	}
	if sawColon {
		return slice, nil
	}
	if slice.Start == nil {
		return nil, p.errHere("empty subscript")
	}
	return &IndexExpr{Target: target, Key: slice.Start, Line: line}, nil
}

func (p *parser) parseCallArgs() (args []Expr, kwargs []Kwarg, err error) {
	for !p.peekOperator(")") {
		t := p.cur()
		if t.Kind == TokenName && !reservedNames[t.Value] &&
			p.tokens[p.pos+1].Kind == TokenOperator && p.tokens[p.pos+1].Value == "=" {
			p.pos += 2
			value, err := p.parseExpression()
			if err != nil {
				return nil, nil, err
			}
			kwargs = append(kwargs, Kwarg{Name: t.Value, Value: value})
		} else {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, nil, err
			}
			args = append(args, arg)
		}
		if !p.acceptOperator(",") {
			break
		}
	}
	if err := p.expectOperator(")"); err != nil {
		return nil, nil, err
	}
	return args, kwargs, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.cur()
	switch t.Kind {
	case TokenString:
		p.pos++
		value := t.Value
		// Adjacent string literals concatenate, as in Python.
		for p.cur().Kind == TokenString {
			value += p.next().Value
		}
		return &LiteralExpr{Value: value}, nil

	case TokenInteger:
		p.pos++
		n, err := strconv.ParseInt(t.Value, 10, 64)
		if err != nil {
			return nil, NewSyntaxError(t.Line, t.Col, "invalid integer literal '%s'", t.Value)
		}
		return &LiteralExpr{Value: n}, nil

	case TokenFloat:
		p.pos++
		f, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return nil, NewSyntaxError(t.Line, t.Col, "invalid float literal '%s'", t.Value)
		}
		return &LiteralExpr{Value: f}, nil

	case TokenName:
		switch t.Value {
		case "true", "True":
			p.pos++
			return &LiteralExpr{Value: true}, nil
		case "false", "False":
			p.pos++
			return &LiteralExpr{Value: false}, nil
		case "none", "None":
			p.pos++
			return &LiteralExpr{Value: nil}, nil
		}
		if reservedNames[t.Value] {
			return nil, NewSyntaxError(t.Line, t.Col, "unexpected keyword '%s'", t.Value)
		}
		p.pos++
		return &NameExpr{Name: t.Value, Line: t.Line}, nil

	case TokenOperator:
		switch t.Value {
		case "(":
			p.pos++
			return p.parseGroupOrTuple()
		case "[":
			p.pos++
			return p.parseList()
		case "{":
			p.pos++
			return p.parseDict()
		}
	}
	return nil, NewSyntaxError(t.Line, t.Col, "unexpected %s, expected an expression", t)
}

func (p *parser) parseGroupOrTuple() (Expr, error) {
	if p.acceptOperator(")") {
		return &TupleExpr{}, nil
	}
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.peekOperator(",") {
		if err := p.expectOperator(")"); err != nil {
			return nil, err
		}
		return first, nil
	}
	tuple := &TupleExpr{Items: []Expr{first}}
	for p.acceptOperator(",") {
		if p.peekOperator(")") {
			break
		}
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		tuple.Items = append(tuple.Items, item)
	}
	if err := p.expectOperator(")"); err != nil {
		return nil, err
	}
	return tuple, nil
}

func (p *parser) parseList() (Expr, error) {
	list := &ListExpr{}
	for !p.peekOperator("]") {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
		if !p.acceptOperator(",") {
			break
		}
	}
	if err := p.expectOperator("]"); err != nil {
		return nil, err
	}
	return list, nil
}

func (p *parser) parseDict() (Expr, error) {
	dict := &DictExpr{}
	for !p.peekOperator("}") {
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectOperator(":"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		dict.Pairs = append(dict.Pairs, DictPair{Key: key, Value: value})
		if !p.acceptOperator(",") {
			break
		}
	}
	if err := p.expectOperator("}"); err != nil {
		return nil, err
	}
	return dict, nil
}

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
	"math"
	"reflect"
	"strings"
)

// FilterFunc is the signature of a registered filter. Filters receive the
// piped-in value plus any positional and keyword arguments.
type FilterFunc func(in interface{}, args []interface{}, kwargs map[string]interface{}) (interface{}, error)

// Identity is the stub filter implementation: it returns its input
// unchanged. Validation environments register every known filter name with
// it since only name resolution matters, not behavior.
func Identity(in interface{}, _ []interface{}, _ map[string]interface{}) (interface{}, error) {
	return in, nil
}

// Environment holds the filters and global variables available while
// rendering. Environments are cheap to construct and are not safe for
// concurrent mutation; build one per render or share a fully-built one.
type Environment struct {
	Filters map[string]FilterFunc
	Globals map[string]interface{}
}

// NewEnvironment returns an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		Filters: make(map[string]FilterFunc),
		Globals: make(map[string]interface{}),
	}
}

// RegisterFilter adds or replaces a named filter.
func (e *Environment) RegisterFilter(name string, fn FilterFunc) {
	e.Filters[name] = fn
}

// Render evaluates source with the environment's globals as the only
// context. Undefined names become the absorbing sentinel rather than
// failing, so a successful render proves only that the template's syntax
// and filter names resolve. The returned error is a *SyntaxError or
// *UnknownFilterError.
func (e *Environment) Render(source string) (string, error) {
	tokens, err := Tokenize(NormalizeDelimiters(source))
	if err != nil {
		return "", err
	}
	tpl, err := Parse(InjectDefaultFilter(tokens))
	if err != nil {
		return "", err
	}
	ev := &evaluator{env: e, scopes: []map[string]interface{}{{}}}
	if err := ev.execNodes(tpl.Nodes); err != nil {
		return "", err
	}
	return ev.out.String(), nil
}

type evaluator struct {
	env    *Environment
	scopes []map[string]interface{}
	out    strings.Builder
}

func (ev *evaluator) pushScope() {
	ev.scopes = append(ev.scopes, map[string]interface{}{})
}

func (ev *evaluator) popScope() {
	ev.scopes = ev.scopes[:len(ev.scopes)-1]
}

func (ev *evaluator) set(name string, value interface{}) {
	ev.scopes[len(ev.scopes)-1][name] = value
}

func (ev *evaluator) lookup(name string) interface{} {
	for i := len(ev.scopes) - 1; i >= 0; i-- {
		if v, ok := ev.scopes[i][name]; ok {
			return v
		}
	}
	if v, ok := ev.env.Globals[name]; ok {
		return v
	}
	return NewUndefined(name)
}

func (ev *evaluator) execNodes(nodes []Node) error {
	for _, node := range nodes {
		if err := ev.execNode(node); err != nil {
			return err
		}
	}
	return nil
}

func (ev *evaluator) execNode(node Node) error {
	switch n := node.(type) {
	case *TextStmt:
		ev.out.WriteString(n.Text)
		return nil

	case *OutputStmt:
		v, err := ev.eval(n.Expr)
		if err != nil {
			return err
		}
		ev.out.WriteString(Render(v))
		return nil

	case *IfStmt:
		for _, branch := range n.Branches {
			cond, err := ev.eval(branch.Cond)
			if err != nil {
				return err
			}
			if Truth(cond) {
				return ev.execNodes(branch.Body)
			}
		}
		return ev.execNodes(n.Else)

	case *ForStmt:
		return ev.execFor(n)

	case *SetStmt:
		v, err := ev.eval(n.Value)
		if err != nil {
			return err
		}
		ev.set(n.Name, v)
		return nil

	default:
		return NewSyntaxError(0, 0, "internal: unhandled statement %T", node)
	}
}

// execFor iterates lists, maps (by key), and strings (by character). An
// undefined iterable contributes zero iterations, so the else branch runs
// just as it does for an empty list.
func (ev *evaluator) execFor(n *ForStmt) error {
	iter, err := ev.eval(n.Iter)
	if err != nil {
		return err
	}
	items, err := iterate(iter, n.Line)
	if err != nil {
		return err
	}

	ev.pushScope()
	defer ev.popScope()

	ran := false
	for _, item := range items {
		if err := ev.bindTargets(n.Targets, item, n.Line); err != nil {
			return err
		}
		if n.Cond != nil {
			keep, err := ev.eval(n.Cond)
			if err != nil {
				return err
			}
			if !Truth(keep) {
				continue
			}
		}
		ran = true
		if err := ev.execNodes(n.Body); err != nil {
			return err
		}
	}
	if !ran {
		return ev.execNodes(n.Else)
	}
	return nil
}

func iterate(v interface{}, line int) ([]interface{}, error) {
	switch x := v.(type) {
	case *Undefined, nil:
		return nil, nil
	case []interface{}:
		return x, nil
	case map[string]interface{}:
		items := make([]interface{}, 0, len(x))
		for k := range x {
			items = append(items, k)
		}
		return items, nil
	case string:
		items := make([]interface{}, 0, len(x))
		for _, r := range x {
			items = append(items, string(r))
		}
		return items, nil
	default:
		return nil, NewSyntaxError(line, 0, "object of type %T is not iterable", v)
	}
}

func (ev *evaluator) bindTargets(targets []string, item interface{}, line int) error {
	if len(targets) == 1 {
		ev.set(targets[0], item)
		return nil
	}
	switch x := item.(type) {
	case []interface{}:
		if len(x) != len(targets) {
			return NewSyntaxError(line, 0, "cannot unpack %d values into %d loop variables", len(x), len(targets))
		}
		for i, t := range targets {
			ev.set(t, x[i])
		}
		return nil
	case *Undefined:
		for _, t := range targets {
			ev.set(t, x)
		}
		return nil
	default:
		return NewSyntaxError(line, 0, "cannot unpack %T into %d loop variables", item, len(targets))
	}
}

func (ev *evaluator) eval(expr Expr) (interface{}, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil

	case *NameExpr:
		return ev.lookup(e.Name), nil

	case *ListExpr:
		return ev.evalItems(e.Items)

	case *TupleExpr:
		return ev.evalItems(e.Items)

	case *DictExpr:
		m := make(map[string]interface{}, len(e.Pairs))
		for _, pair := range e.Pairs {
			k, err := ev.eval(pair.Key)
			if err != nil {
				return nil, err
			}
			v, err := ev.eval(pair.Value)
			if err != nil {
				return nil, err
			}
			m[Render(k)] = v
		}
		return m, nil

	case *AttrExpr:
		return ev.evalAttr(e)

	case *IndexExpr:
		return ev.evalIndex(e)

	case *SliceExpr:
		return ev.evalSlice(e)

	case *CallExpr:
		return ev.evalCall(e)

	case *FilterExpr:
		return ev.evalFilter(e)

	case *TestExpr:
		return ev.evalTest(e)

	case *UnaryExpr:
		return ev.evalUnary(e)

	case *BinaryExpr:
		return ev.evalBinary(e)

	case *CompareExpr:
		return ev.evalCompare(e)

	case *CondExpr:
		test, err := ev.eval(e.Test)
		if err != nil {
			return nil, err
		}
		if Truth(test) {
			return ev.eval(e.Value)
		}
		if e.Alt == nil {
			return NewUndefined(""), nil
		}
		return ev.eval(e.Alt)

	default:
		return nil, NewSyntaxError(0, 0, "internal: unhandled expression %T", expr)
	}
}

func (ev *evaluator) evalItems(items []Expr) ([]interface{}, error) {
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		v, err := ev.eval(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (ev *evaluator) evalAttr(e *AttrExpr) (interface{}, error) {
	target, err := ev.eval(e.Target)
	if err != nil {
		return nil, err
	}
	switch x := target.(type) {
	case *Undefined:
		return x.Attr(e.Name), nil
	case map[string]interface{}:
		if v, ok := x[e.Name]; ok {
			return v, nil
		}
		return NewUndefined(e.Name), nil
	default:
		// Attribute access on anything else resolves to the sentinel so
		// that deep object paths validate against an empty context.
		return NewUndefined(e.Name), nil
	}
}

func (ev *evaluator) evalIndex(e *IndexExpr) (interface{}, error) {
	target, err := ev.eval(e.Target)
	if err != nil {
		return nil, err
	}
	key, err := ev.eval(e.Key)
	if err != nil {
		return nil, err
	}
	if u, ok := target.(*Undefined); ok {
		return u.Attr(Render(key)), nil
	}
	switch x := target.(type) {
	case map[string]interface{}:
		if v, ok := x[Render(key)]; ok {
			return v, nil
		}
		return NewUndefined(Render(key)), nil
	case []interface{}:
		if i, ok := key.(int64); ok {
			if i < 0 {
				i += int64(len(x))
			}
			if i >= 0 && i < int64(len(x)) {
				return x[i], nil
			}
		}
		return NewUndefined(""), nil
	case string:
		if i, ok := key.(int64); ok {
			if i < 0 {
				i += int64(len(x))
			}
			if i >= 0 && i < int64(len(x)) {
				return string(x[i]), nil
			}
		}
		return NewUndefined(""), nil
	default:
		return NewUndefined(""), nil
	}
}

func (ev *evaluator) evalSlice(e *SliceExpr) (interface{}, error) {
	target, err := ev.eval(e.Target)
	if err != nil {
		return nil, err
	}
	bound := func(expr Expr, def int64) (int64, error) {
		if expr == nil {
			return def, nil
		}
		v, err := ev.eval(expr)
		if err != nil {
			return 0, err
		}
		if i, ok := v.(int64); ok {
			return i, nil
		}
		return def, nil
	}

	length := int64(-1)
	switch x := target.(type) {
	case []interface{}:
		length = int64(len(x))
	case string:
		length = int64(len(x))
	}
	if length < 0 {
		// Evaluate bounds anyway so filters inside them are still seen.
		if _, err := bound(e.Start, 0); err != nil {
			return nil, err
		}
		if _, err := bound(e.Stop, 0); err != nil {
			return nil, err
		}
		if _, err := bound(e.Step, 1); err != nil {
			return nil, err
		}
		return NewUndefined(""), nil
	}

	start, err := bound(e.Start, 0)
	if err != nil {
		return nil, err
	}
	stop, err := bound(e.Stop, length)
	if err != nil {
		return nil, err
	}
	if _, err := bound(e.Step, 1); err != nil {
		return nil, err
	}
	if start < 0 {
		start += length
	}
	if stop < 0 {
		stop += length
	}
	start = clamp(start, 0, length)
	stop = clamp(stop, start, length)

	switch x := target.(type) {
	case []interface{}:
		return x[start:stop], nil
	case string:
		return x[start:stop], nil
	}
	return NewUndefined(""), nil
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// evalCall handles calls. A call on the undefined sentinel absorbs into the
// sentinel; a call on a concrete non-callable is a hard error. Arguments
// are always evaluated so nested filter references are discovered.
func (ev *evaluator) evalCall(e *CallExpr) (interface{}, error) {
	target, err := ev.eval(e.Target)
	if err != nil {
		return nil, err
	}
	for _, arg := range e.Args {
		if _, err := ev.eval(arg); err != nil {
			return nil, err
		}
	}
	for _, kw := range e.Kwargs {
		if _, err := ev.eval(kw.Value); err != nil {
			return nil, err
		}
	}
	if u, ok := target.(*Undefined); ok {
		return u, nil
	}
	return nil, NewSyntaxError(e.Line, 0, "object of type %T is not callable", target)
}

func (ev *evaluator) evalFilter(e *FilterExpr) (interface{}, error) {
	value, err := ev.eval(e.Value)
	if err != nil {
		return nil, err
	}
	args := make([]interface{}, 0, len(e.Args))
	for _, arg := range e.Args {
		v, err := ev.eval(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	kwargs := make(map[string]interface{}, len(e.Kwargs))
	for _, kw := range e.Kwargs {
		v, err := ev.eval(kw.Value)
		if err != nil {
			return nil, err
		}
		kwargs[kw.Name] = v
	}
	fn, ok := ev.env.Filters[e.Name]
	if !ok {
		return nil, &UnknownFilterError{Name: e.Name, Line: e.Line}
	}
	out, err := fn(value, args, kwargs)
	if err != nil {
		return nil, NewSyntaxError(e.Line, 0, "filter '%s' failed: %v", e.Name, err)
	}
	return out, nil
}

func (ev *evaluator) evalUnary(e *UnaryExpr) (interface{}, error) {
	operand, err := ev.eval(e.Operand)
	if err != nil {
		return nil, err
	}
	if u, ok := operand.(*Undefined); ok {
		if e.Op == "not" {
			return true, nil
		}
		return u, nil
	}
	switch e.Op {
	case "not":
		return !Truth(operand), nil
	case "-":
		if i, ok := operand.(int64); ok {
			return -i, nil
		}
		if f, ok := numeric(operand); ok {
			return -f, nil
		}
	case "+":
		if _, ok := numeric(operand); ok {
			return operand, nil
		}
	}
	return nil, NewSyntaxError(e.Line, 0, "unsupported operand for unary '%s'", e.Op)
}

func (ev *evaluator) evalBinary(e *BinaryExpr) (interface{}, error) {
	// and/or short-circuit on truthiness.
	if e.Op == "and" || e.Op == "or" {
		left, err := ev.eval(e.Left)
		if err != nil {
			return nil, err
		}
		if (e.Op == "and") != Truth(left) {
			return left, nil
		}
		return ev.eval(e.Right)
	}

	left, err := ev.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := ev.eval(e.Right)
	if err != nil {
		return nil, err
	}
	// Concatenation stringifies its operands, so the sentinel contributes
	// an empty string instead of absorbing the whole expression.
	if e.Op == "~" {
		return Render(left) + Render(right), nil
	}
	if u, ok := left.(*Undefined); ok {
		return u, nil
	}
	if u, ok := right.(*Undefined); ok {
		return u, nil
	}

	switch e.Op {
	case "+":
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		if ll, ok := left.([]interface{}); ok {
			if rl, ok := right.([]interface{}); ok {
				return append(append([]interface{}{}, ll...), rl...), nil
			}
		}
		if x, y, ok := bothInt(left, right); ok {
			return x + y, nil
		}
		if x, okx := numeric(left); okx {
			if y, oky := numeric(right); oky {
				return x + y, nil
			}
		}
	case "-":
		if x, y, ok := bothInt(left, right); ok {
			return x - y, nil
		}
		if x, okx := numeric(left); okx {
			if y, oky := numeric(right); oky {
				return x - y, nil
			}
		}
	case "*":
		if x, y, ok := bothInt(left, right); ok {
			return x * y, nil
		}
		if x, okx := numeric(left); okx {
			if y, oky := numeric(right); oky {
				return x * y, nil
			}
		}
	case "/":
		if x, okx := numeric(left); okx {
			if y, oky := numeric(right); oky {
				if y == 0 {
					return nil, NewSyntaxError(e.Line, 0, "division by zero")
				}
				return x / y, nil
			}
		}
	case "//":
		if x, y, ok := bothInt(left, right); ok {
			if y == 0 {
				return nil, NewSyntaxError(e.Line, 0, "division by zero")
			}
			return x / y, nil
		}
	case "%":
		if x, y, ok := bothInt(left, right); ok {
			if y == 0 {
				return nil, NewSyntaxError(e.Line, 0, "division by zero")
			}
			return x % y, nil
		}
	case "**":
		if x, okx := numeric(left); okx {
			if y, oky := numeric(right); oky {
				return math.Pow(x, y), nil
			}
		}
	}
	return nil, NewSyntaxError(e.Line, 0, "unsupported operands for '%s'", e.Op)
}

// evalCompare resolves a comparison chain left to right. Comparisons
// involving the undefined sentinel are fixed by contract: equality is
// false, inequality is true, less-than comparisons are true, greater-than
// comparisons are false, and membership is false.
func (ev *evaluator) evalCompare(e *CompareExpr) (interface{}, error) {
	left, err := ev.eval(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Ops {
		right, err := ev.eval(op.Right)
		if err != nil {
			return nil, err
		}
		ok, err := compareOne(op.Op, left, right, e.Line)
		if err != nil {
			return nil, err
		}
		if !ok {
			return false, nil
		}
		left = right
	}
	return true, nil
}

func compareOne(op string, left, right interface{}, line int) (bool, error) {
	if IsUndefined(left) || IsUndefined(right) {
		switch op {
		case "==", "in":
			return false, nil
		case "!=", "not in":
			return true, nil
		case "<", "<=":
			return true, nil
		case ">", ">=":
			return false, nil
		}
	}

	switch op {
	case "==":
		return equal(left, right), nil
	case "!=":
		return !equal(left, right), nil
	case "in":
		return member(left, right), nil
	case "not in":
		return !member(left, right), nil
	}

	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			switch op {
			case "<":
				return ls < rs, nil
			case "<=":
				return ls <= rs, nil
			case ">":
				return ls > rs, nil
			case ">=":
				return ls >= rs, nil
			}
		}
	}
	x, okx := numeric(left)
	y, oky := numeric(right)
	if !okx || !oky {
		return false, NewSyntaxError(line, 0, "cannot compare %T and %T", left, right)
	}
	switch op {
	case "<":
		return x < y, nil
	case "<=":
		return x <= y, nil
	case ">":
		return x > y, nil
	case ">=":
		return x >= y, nil
	}
	return false, NewSyntaxError(line, 0, "unknown comparison operator '%s'", op)
}

func equal(left, right interface{}) bool {
	if x, okx := numeric(left); okx {
		if y, oky := numeric(right); oky {
			return x == y
		}
	}
	switch l := left.(type) {
	case []interface{}:
		r, ok := right.([]interface{})
		if !ok || len(l) != len(r) {
			return false
		}
		for i := range l {
			if !equal(l[i], r[i]) {
				return false
			}
		}
		return true
	case map[string]interface{}:
		r, ok := right.(map[string]interface{})
		if !ok || len(l) != len(r) {
			return false
		}
		for key, lv := range l {
			rv, found := r[key]
			if !found || !equal(lv, rv) {
				return false
			}
		}
		return true
	}
	// Remaining uncomparable kinds would make == panic.
	if !comparableValue(left) || !comparableValue(right) {
		return false
	}
	return left == right
}

func comparableValue(v interface{}) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}

func member(needle, haystack interface{}) bool {
	switch h := haystack.(type) {
	case string:
		if s, ok := needle.(string); ok {
			return strings.Contains(h, s)
		}
	case []interface{}:
		for _, item := range h {
			if equal(needle, item) {
				return true
			}
		}
	case map[string]interface{}:
		if s, ok := needle.(string); ok {
			_, found := h[s]
			return found
		}
	}
	return false
}

// knownTests is the set of test names accepted after "is". Anything else
// is a grammar error, matching how the renderer treats unknown tests.
var knownTests = map[string]func(v interface{}, args []interface{}) bool{
	"defined":   func(v interface{}, _ []interface{}) bool { return !IsUndefined(v) },
	"undefined": func(v interface{}, _ []interface{}) bool { return IsUndefined(v) },
	"none":      func(v interface{}, _ []interface{}) bool { return v == nil },
	"true":      func(v interface{}, _ []interface{}) bool { b, ok := v.(bool); return ok && b },
	"false":     func(v interface{}, _ []interface{}) bool { b, ok := v.(bool); return ok && !b },
	"boolean":   func(v interface{}, _ []interface{}) bool { _, ok := v.(bool); return ok },
	"string":    func(v interface{}, _ []interface{}) bool { _, ok := v.(string); return ok },
	"number": func(v interface{}, _ []interface{}) bool {
		if _, ok := v.(bool); ok {
			return false
		}
		_, ok := numeric(v)
		return ok
	},
	"integer": func(v interface{}, _ []interface{}) bool { _, ok := v.(int64); return ok },
	"float":   func(v interface{}, _ []interface{}) bool { _, ok := v.(float64); return ok },
	"mapping": func(v interface{}, _ []interface{}) bool { _, ok := v.(map[string]interface{}); return ok },
	"sequence": func(v interface{}, _ []interface{}) bool {
		switch v.(type) {
		case []interface{}, string, map[string]interface{}:
			return true
		}
		return false
	},
	"iterable": func(v interface{}, _ []interface{}) bool {
		switch v.(type) {
		case []interface{}, string, map[string]interface{}:
			return true
		}
		return false
	},
	"callable": func(v interface{}, _ []interface{}) bool { return false },
	"lower": func(v interface{}, _ []interface{}) bool {
		s, ok := v.(string)
		return ok && s == strings.ToLower(s)
	},
	"upper": func(v interface{}, _ []interface{}) bool {
		s, ok := v.(string)
		return ok && s == strings.ToUpper(s)
	},
	"even": func(v interface{}, _ []interface{}) bool {
		i, ok := v.(int64)
		return ok && i%2 == 0
	},
	"odd": func(v interface{}, _ []interface{}) bool {
		i, ok := v.(int64)
		return ok && i%2 != 0
	},
	"divisibleby": func(v interface{}, args []interface{}) bool {
		i, ok := v.(int64)
		if !ok || len(args) == 0 {
			return false
		}
		d, ok := args[0].(int64)
		return ok && d != 0 && i%d == 0
	},
	"equalto": func(v interface{}, args []interface{}) bool { return len(args) > 0 && equal(v, args[0]) },
	"eq":      func(v interface{}, args []interface{}) bool { return len(args) > 0 && equal(v, args[0]) },
	"ne":      func(v interface{}, args []interface{}) bool { return len(args) > 0 && !equal(v, args[0]) },
	"sameas":  func(v interface{}, args []interface{}) bool { return len(args) > 0 && v == args[0] },
	"in": func(v interface{}, args []interface{}) bool {
		return len(args) > 0 && member(v, args[0])
	},
}

func (ev *evaluator) evalTest(e *TestExpr) (interface{}, error) {
	value, err := ev.eval(e.Value)
	if err != nil {
		return nil, err
	}
	args := make([]interface{}, 0, len(e.Args))
	for _, arg := range e.Args {
		v, err := ev.eval(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	fn, ok := knownTests[e.Name]
	if !ok {
		return nil, NewSyntaxError(e.Line, 0, "unknown test '%s'", e.Name)
	}
	result := fn(value, args)
	// Tests other than defined/undefined are indeterminate on the sentinel.
	if IsUndefined(value) && e.Name != "defined" && e.Name != "undefined" {
		result = false
	}
	if e.Negated {
		result = !result
	}
	return result, nil
}

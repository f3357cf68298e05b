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
	"fmt"
	"strings"
)

// Undefined is the absorbing sentinel produced when an expression touches a
// variable or attribute that the evaluation context does not define. It
// renders as the empty string, propagates through attribute access, calls,
// and arithmetic, and compares in a fixed way so that evaluation never
// aborts on missing data.
//
// The type is unexported-by-construction for callers: they only observe it
// through IsUndefined and the empty strings it renders to.
type Undefined struct {
	name string
	attr string
}

// NewUndefined returns the sentinel for a missing top-level name.
func NewUndefined(name string) *Undefined {
	return &Undefined{name: name}
}

// Attr returns the sentinel for attribute access on an undefined value.
// Chained access keeps only the most recent name, which is enough for any
// diagnostic we produce.
func (u *Undefined) Attr(name string) *Undefined {
	return &Undefined{name: u.name, attr: name}
}

// Name reports the variable name that produced this sentinel.
func (u *Undefined) Name() string { return u.name }

func (u *Undefined) String() string { return "" }

// IsUndefined reports whether v is the undefined sentinel.
func IsUndefined(v interface{}) bool {
	_, ok := v.(*Undefined)
	return ok
}

// Truth reports the boolean interpretation of a value, following the usual
// template semantics: empty strings, zero numbers, empty containers, nil,
// false, and the undefined sentinel are all falsy.
func Truth(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return false
	case *Undefined:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int64:
		return x != 0
	case float64:
		return x != 0
	case []interface{}:
		return len(x) > 0
	case map[string]interface{}:
		return len(x) > 0
	default:
		return true
	}
}

// Render converts a value to its output-string form. The undefined
// sentinel and nil both render empty, floats drop a trailing ".0" the way
// %g does not, and containers use a debug-ish form that never appears in
// validated documents anyway.
func Render(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case *Undefined:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "True"
		}
		return "False"
	case int64:
		return fmt.Sprintf("%d", x)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", x), "0"), ".")
	default:
		return fmt.Sprintf("%v", x)
	}
}

// numeric coerces a value to float64 for arithmetic, reporting whether the
// coercion was possible.
func numeric(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func bothInt(a, b interface{}) (int64, int64, bool) {
	x, okx := a.(int64)
	y, oky := b.(int64)
	return x, y, okx && oky
}

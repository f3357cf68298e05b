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
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/SuffolkLITLab/ALActions/pkg/jinja"
)

// DefaultMaxIterations bounds the filter discovery loop. Each iteration
// surfaces at most one new filter name, so the bound also caps how many
// distinct unknown filters a single document can report.
const DefaultMaxIterations = 10

// Validator runs the iterative stub-and-retry validation over template
// source text. A Validator is immutable after construction and safe for
// concurrent use.
type Validator struct {
	maxIterations int
	known         map[string]struct{}
	stubs         map[string]struct{}
	filters       map[string]jinja.FilterFunc
	logger        *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithMaxIterations overrides the discovery loop bound. Values below one
// are ignored.
func WithMaxIterations(n int) Option {
	return func(v *Validator) {
		if n >= 1 {
			v.maxIterations = n
		}
	}
}

// WithKnownFilters extends the set of filter names that do not produce
// warnings.
func WithKnownFilters(names ...string) Option {
	return func(v *Validator) {
		for _, name := range names {
			v.known[name] = struct{}{}
		}
	}
}

// WithStubFilters pre-registers filter names as identity stubs, as if the
// production environment provided them. Stubbed names are implicitly known.
func WithStubFilters(names ...string) Option {
	return func(v *Validator) {
		for _, name := range names {
			v.stubs[name] = struct{}{}
			v.known[name] = struct{}{}
		}
	}
}

// WithFilterFunc registers a real filter implementation in place of the
// identity stub. The name is implicitly known.
func WithFilterFunc(name string, fn jinja.FilterFunc) Option {
	return func(v *Validator) {
		v.filters[name] = fn
		v.known[name] = struct{}{}
	}
}

// WithLogger sets the logger used for per-iteration diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// New builds a Validator with the default known-filter list and iteration
// bound.
func New(opts ...Option) *Validator {
	v := &Validator{
		maxIterations: DefaultMaxIterations,
		known:         KnownFilters(),
		stubs:         make(map[string]struct{}),
		filters:       make(map[string]jinja.FilterFunc),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// exprRegion matches one delimiter-bounded region across line boundaries,
// used by the lexical filter scan.
var exprRegion = regexp.MustCompile(`(?s)\{[{%].*?[%}]\}`)

// filterRef matches a pipe followed by a filter name inside a region.
var filterRef = regexp.MustCompile(`\|\s*([A-Za-z_][A-Za-z0-9_]*)`)

// ValidateSource checks template source text. Grammar violations become
// fatal errors; filters that resolve only because they were stubbed, and
// are not on the known list, become warnings.
//
// Discovery is iterative: each failed attempt names one missing filter,
// which is stubbed before the next attempt. Branches that evaluation never
// reaches are covered by a lexical scan over the delimiter regions, so a
// filter hidden behind a false condition is still reported.
func (v *Validator) ValidateSource(source string) *Result {
	result := NewResult()
	discovered := make(map[string]struct{})

	converged := false
	for iteration := 0; iteration < v.maxIterations; iteration++ {
		err := v.renderWithStubs(source, discovered)
		if err == nil {
			converged = true
			break
		}

		var filterErr *jinja.UnknownFilterError
		if !errors.As(err, &filterErr) {
			result.AddSyntaxError(err.Error())
			converged = true
			break
		}
		if _, seen := discovered[filterErr.Name]; seen {
			// Stubbing this name did not resolve it, so retrying cannot
			// make progress.
			result.AddSyntaxError(err.Error())
			converged = true
			break
		}
		v.logger.Debug("stubbing unknown filter",
			"filter", filterErr.Name,
			"iteration", iteration+1,
		)
		discovered[filterErr.Name] = struct{}{}
	}
	if !converged {
		result.AddSyntaxError(fmt.Sprintf("filter discovery did not converge after %d iterations", v.maxIterations))
	}

	// Lexical sweep over delimiter regions for filter references that
	// evaluation never reached.
	for _, name := range scanFilterNames(source) {
		if v.isStubbed(name) {
			continue
		}
		discovered[name] = struct{}{}
	}

	for name := range discovered {
		if _, ok := v.known[name]; !ok {
			result.AddUnknownFilter(name)
		}
	}
	return result
}

// renderWithStubs attempts one full render with the base environment plus
// the given extra stubs. Internal faults are contained here so a single
// pathological document cannot take down a batch run.
func (v *Validator) renderWithStubs(source string, extra map[string]struct{}) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("Validation with stubbed filters failed: %v", rec)
		}
	}()

	merged := make(map[string]struct{}, len(v.stubs)+len(extra))
	for name := range v.stubs {
		merged[name] = struct{}{}
	}
	for name := range extra {
		merged[name] = struct{}{}
	}
	env := newStubEnvironment(merged)
	for name, fn := range v.filters {
		env.RegisterFilter(name, fn)
	}
	_, err = env.Render(source)
	return err
}

// isStubbed reports whether the base validation environment resolves the
// filter name without discovery.
func (v *Validator) isStubbed(name string) bool {
	if _, ok := v.stubs[name]; ok {
		return true
	}
	for _, n := range standardFilterNames {
		if n == name {
			return true
		}
	}
	for _, n := range documentFilterNames {
		if n == name {
			return true
		}
	}
	return false
}

// scanFilterNames extracts filter names lexically from the delimiter
// regions of source, in order of first appearance.
func scanFilterNames(source string) []string {
	normalized := jinja.NormalizeDelimiters(source)
	var names []string
	seen := make(map[string]struct{})
	for _, region := range exprRegion.FindAllString(normalized, -1) {
		for _, match := range filterRef.FindAllStringSubmatch(region, -1) {
			name := match[1]
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

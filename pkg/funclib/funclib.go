// Package funclib defines the fixed catalog of functions available to
// expressions: math, statistical, transform, and filter operations over
// float64 scalars and vectors.
//
// The registry is assembled once at package init from four category tables
// and never mutated afterwards. Concurrent evaluations read it without
// locking; this immutability is what lets the evaluator treat registry
// entries as trusted.
package funclib

import (
	"fmt"
	"sort"
)

// Category classifies a registry function.
type Category string

// Registry categories.
const (
	CategoryMath        Category = "math"
	CategoryStatistical Category = "statistical"
	CategoryTransform   Category = "transform"
	CategoryFilter      Category = "filter"
)

// Value is a scalar (float64) or vector ([]float64) in the evaluation
// domain. Functions receive and return Values; broadcasting of operators
// is the evaluator's job.
type Value = any

// Func is a registry function implementation.
type Func func(args []Value) (Value, error)

// Descriptor describes a registry function.
type Descriptor struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	MinArgs  int      `json:"min_args"`
	Doc      string   `json:"documentation"`
}

// entry pairs a descriptor with its implementation.
type entry struct {
	desc Descriptor
	impl Func
}

// registry is the process-wide catalog, built once by init and read-only
// thereafter.
var registry = map[string]entry{}

// names holds all registry names, sorted, computed once at init.
var names []string

// parametric functions take a data vector plus optional numeric parameters.
var parametric = map[string]bool{
	"scale":           true,
	"power_transform": true,
	"quantile":        true,
	"moving_average":  true,
	"gaussian_filter": true,
	"median_filter":   true,
	"rolling_sum":     true,
}

func register(cat Category, name, doc string, impl Func) {
	registry[name] = entry{
		desc: Descriptor{Name: name, Category: cat, MinArgs: 1, Doc: doc},
		impl: impl,
	}
}

func init() {
	registerMath()
	registerStatistical()
	registerTransform()
	registerFilter()

	names = make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
}

// Get returns the descriptor for name.
func Get(name string) (Descriptor, bool) {
	e, ok := registry[name]
	return e.desc, ok
}

// Impl returns the implementation for name.
func Impl(name string) (Func, bool) {
	e, ok := registry[name]
	return e.impl, ok
}

// IsSupported reports whether name is a registry function.
func IsSupported(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names returns all registry function names, sorted. The returned slice is
// shared; callers must not modify it.
func Names() []string {
	return names
}

// Categories returns the function names grouped by category, each group
// sorted.
func Categories() map[Category][]string {
	out := make(map[Category][]string, 4)
	for name, e := range registry {
		out[e.desc.Category] = append(out[e.desc.Category], name)
	}
	for _, group := range out {
		sort.Strings(group)
	}
	return out
}

// ValidateUsage checks the minimal arity precondition for calling name with
// argc arguments. Every current entry requires at least one argument;
// parametric entries take a data vector plus optional numeric parameters.
func ValidateUsage(name string, argc int) error {
	e, ok := registry[name]
	if !ok {
		return fmt.Errorf("unsupported function %q", name)
	}
	if argc < e.desc.MinArgs {
		return fmt.Errorf("%s requires at least %d argument(s), got %d", name, e.desc.MinArgs, argc)
	}
	if !parametric[name] && argc > 1 {
		return fmt.Errorf("%s takes a single data argument, got %d", name, argc)
	}
	return nil
}

// Package grammar holds the compiled regular-expression grammars used for
// structural pattern extraction. Patterns are grouped by language family so
// one grammar serves many languages; compilation happens once per process.
package grammar

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"sync"
)

// Category identifies a structural pattern category.
type Category string

const (
	CategoryImport   Category = "import"
	CategoryClass    Category = "class"
	CategoryFunction Category = "function"
)

// ErrPatternNotFound is returned by Get when a language group has no entry
// for the requested category. Callers fall back to a generic group.
var ErrPatternNotFound = errors.New("grammar: pattern not found")

// Registry holds every compiled pattern, keyed by category and language
// group. It is built once and treated as immutable afterwards, so it can be
// shared across goroutines without locking.
type Registry struct {
	// core maps category -> language group -> compiled pattern.
	core map[Category]map[string]*regexp.Regexp

	// common maps pattern name -> compiled pattern for the cross-cutting
	// set (interfaces, hooks, routes, error handling, ...).
	common map[string]*regexp.Regexp

	// extra maps a language-specific set name (go, rust, sql, graphql,
	// docker, unity) -> pattern name -> compiled pattern.
	extra map[string]map[string]*regexp.Regexp
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry, compiling it on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = Compile()
	})
	return defaultReg
}

// Compile builds a Registry from the static pattern tables. A pattern that
// fails to compile is logged and skipped; it never aborts the build.
func Compile() *Registry {
	r := &Registry{
		core:   make(map[Category]map[string]*regexp.Regexp),
		common: make(map[string]*regexp.Regexp),
		extra:  make(map[string]map[string]*regexp.Regexp),
	}

	for category, groups := range corePatterns {
		compiled := make(map[string]*regexp.Regexp, len(groups))
		for group, src := range groups {
			// Identifiers are case sensitive everywhere except the
			// keyword-driven data grammar.
			if group == GroupData {
				src = "(?i)" + src
			}
			re, err := regexp.Compile(src)
			if err != nil {
				log.Printf("grammar: skipping %s/%s: %v", category, group, err)
				continue
			}
			compiled[group] = re
		}
		r.core[category] = compiled
	}

	for name, src := range commonPatterns {
		re, err := regexp.Compile(src)
		if err != nil {
			log.Printf("grammar: skipping common/%s: %v", name, err)
			continue
		}
		r.common[name] = re
	}

	for set, patterns := range extraPatterns {
		compiled := make(map[string]*regexp.Regexp, len(patterns))
		for name, src := range patterns {
			// SQL and Docker keywords are conventionally written in
			// either case.
			if set == "sql" || set == "docker" {
				src = "(?i)" + src
			}
			re, err := regexp.Compile(src)
			if err != nil {
				log.Printf("grammar: skipping %s/%s: %v", set, name, err)
				continue
			}
			compiled[name] = re
		}
		r.extra[set] = compiled
	}

	return r
}

// Get returns the compiled pattern for a category and language group.
func (r *Registry) Get(category Category, group string) (*regexp.Regexp, error) {
	groups, ok := r.core[category]
	if !ok {
		return nil, fmt.Errorf("%w: category %q", ErrPatternNotFound, category)
	}
	re, ok := groups[group]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrPatternNotFound, category, group)
	}
	return re, nil
}

// Common returns the cross-cutting pattern set.
func (r *Registry) Common() map[string]*regexp.Regexp {
	return r.common
}

// Extra returns the language-specific pattern set with the given name, or
// nil when none exists.
func (r *Registry) Extra(set string) map[string]*regexp.Regexp {
	return r.extra[set]
}

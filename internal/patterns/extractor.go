// Package patterns extracts structural facts (imports, type declarations,
// function declarations) from raw source text using the grammar registry.
package patterns

import (
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/repolens/repolens/internal/grammar"
)

// Match is one structural pattern hit in a file.
type Match struct {
	// Category is "import", "class", "function", or "other".
	Category string `json:"category"`

	// Name is the canonical extracted identifier (module path for imports,
	// type name for classes, function name for functions).
	Name string `json:"name"`

	// Pattern names the grammar entry that produced the match; empty for
	// the three core categories.
	Pattern string `json:"pattern,omitempty"`

	// Start and End delimit the match in bytes within the file content.
	Start int `json:"start"`
	End   int `json:"end"`

	// Text is the raw matched source text.
	Text string `json:"text"`

	// Details holds any other non-empty capture groups (inheritance,
	// parameters, return type, ...) keyed by a normalized group name.
	Details map[string]string `json:"details,omitempty"`
}

// Extractor applies a grammar registry to file content. It is stateless and
// safe for concurrent use.
type Extractor struct {
	reg *grammar.Registry
}

// New returns an Extractor over the given registry.
func New(reg *grammar.Registry) *Extractor {
	return &Extractor{reg: reg}
}

// Extract scans content with every pattern relevant to the resolved
// language and returns matches in scan order. Matches without a resolvable
// name are dropped; languages legitimately have anonymous constructs.
func (e *Extractor) Extract(content, language string) []Match {
	group := grammar.GroupForLanguage(language)

	var out []Match
	out = append(out, e.extractCore(content, grammar.CategoryImport, group, "module")...)
	out = append(out, e.extractCore(content, grammar.CategoryClass, group, "name")...)
	out = append(out, e.extractCore(content, grammar.CategoryFunction, group, "name")...)
	out = append(out, e.extractCommon(content)...)

	if set := grammar.ExtraSetForLanguage(language); set != "" {
		out = append(out, e.extractSet(content, set, e.reg.Extra(set))...)
	}

	return out
}

// extractCore runs one core category pattern. The canonical name is the
// first non-empty capture group whose name starts with namePrefix; one
// shared alternation encodes many sub-grammars with numbered group names
// (name, name2, ...), so a prefix scan is the dispatch mechanism.
func (e *Extractor) extractCore(content string, category grammar.Category, group, namePrefix string) []Match {
	re, err := e.reg.Get(category, group)
	if err != nil {
		if errors.Is(err, grammar.ErrPatternNotFound) {
			return nil
		}
		return nil
	}

	names := re.SubexpNames()
	var out []Match
	for _, idx := range re.FindAllStringSubmatchIndex(content, -1) {
		name, details := resolveGroups(content, names, idx, namePrefix)
		if name == "" {
			continue
		}
		out = append(out, Match{
			Category: string(category),
			Name:     name,
			Start:    idx[0],
			End:      idx[1],
			Text:     content[idx[0]:idx[1]],
			Details:  details,
		})
	}
	return out
}

// extractCommon applies the cross-cutting pattern set.
func (e *Extractor) extractCommon(content string) []Match {
	return e.extractSet(content, "", e.reg.Common())
}

// extractSet applies a named pattern map, emitting "other" matches. The
// canonical name falls back to the raw text when the pattern captures no
// name group (hooks, error blocks).
func (e *Extractor) extractSet(content, setName string, set map[string]*regexp.Regexp) []Match {
	// Iterate in sorted order so repeated runs produce identical output.
	patternNames := make([]string, 0, len(set))
	for name := range set {
		patternNames = append(patternNames, name)
	}
	sort.Strings(patternNames)

	var out []Match
	for _, patternName := range patternNames {
		re := set[patternName]
		names := re.SubexpNames()
		label := patternName
		if setName != "" {
			label = setName + "_" + patternName
		}
		for _, idx := range re.FindAllStringSubmatchIndex(content, -1) {
			name, details := resolveGroups(content, names, idx, "name")
			text := content[idx[0]:idx[1]]
			if name == "" {
				name = strings.TrimSpace(text)
			}
			out = append(out, Match{
				Category: "other",
				Name:     name,
				Pattern:  label,
				Start:    idx[0],
				End:      idx[1],
				Text:     text,
				Details:  details,
			})
		}
	}
	return out
}

// resolveGroups walks the submatch indices and splits them into the
// canonical name (first non-empty group with the given prefix, in pattern
// order) and a details map of every other non-empty named group. Numbered
// suffixes (base2, params3) are stripped so details keys stay stable across
// sub-grammars.
func resolveGroups(content string, names []string, idx []int, namePrefix string) (string, map[string]string) {
	var canonical string
	var details map[string]string

	for i, groupName := range names {
		if i == 0 || groupName == "" {
			continue
		}
		lo, hi := idx[2*i], idx[2*i+1]
		if lo < 0 || hi < 0 {
			continue
		}
		val := strings.TrimSpace(content[lo:hi])
		if val == "" {
			continue
		}

		base := strings.TrimRight(groupName, "0123456789")
		if canonical == "" && base == namePrefix {
			canonical = val
			continue
		}
		if details == nil {
			details = make(map[string]string)
		}
		if _, ok := details[base]; !ok {
			details[base] = val
		}
	}

	return canonical, details
}

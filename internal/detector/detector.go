package detector

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DetectionResult is the outcome of classifying one directory. It is
// created fresh per call and never mutated afterwards.
type DetectionResult struct {
	Path         string   `json:"path"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Language     string   `json:"language"`
	Framework    string   `json:"framework"`
	MatchedFiles []string `json:"matched_files,omitempty"`
}

// Detector classifies directories. The zero value is not usable; construct
// with New.
type Detector struct {
	ignoredDirs map[string]bool
	cache       *Cache
}

// New returns a Detector that skips the given directory names during every
// traversal and memoizes results in the given cache. A nil cache disables
// memoization.
func New(ignoredDirs []string, cache *Cache) *Detector {
	ignore := make(map[string]bool, len(ignoredDirs))
	for _, d := range ignoredDirs {
		ignore[d] = true
	}
	return &Detector{ignoredDirs: ignore, cache: cache}
}

// Detect classifies the directory at path. When bypassCache is false a
// cached result within the TTL is returned without touching the
// filesystem.
func (d *Detector) Detect(path string, bypassCache bool) DetectionResult {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if !bypassCache && d.cache != nil {
		if res, ok := d.cache.Get(abs); ok {
			return res
		}
	}

	res := d.classify(abs)

	if d.cache != nil {
		d.cache.Put(abs, res)
	}
	return res
}

// classify runs the scoring pass over every rule and resolves language and
// framework in two independent passes.
func (d *Detector) classify(abs string) DetectionResult {
	res := DetectionResult{
		Path:        abs,
		Type:        "generic",
		Description: descriptionFor("generic"),
		Language:    "unknown",
		Framework:   "none",
	}

	rootEntries, err := os.ReadDir(abs)
	if err != nil {
		// Unreadable roots resolve to generic; classification ambiguity is
		// not an error.
		return res
	}

	rootNames := make([]string, 0, len(rootEntries))
	for _, e := range rootEntries {
		rootNames = append(rootNames, e.Name())
	}
	deepNames := d.listFiles(abs, 2)

	best := -1
	for i, rule := range projectTypeRules {
		matched, files := d.ruleMatches(abs, rule, rootNames, deepNames)
		if !matched {
			continue
		}
		// Highest priority wins; ties keep the first-registered rule.
		if best < 0 || rule.Priority > projectTypeRules[best].Priority {
			best = i
			res.MatchedFiles = files
		}
	}

	if best >= 0 {
		res.Type = projectTypeRules[best].ID
		res.Description = projectTypeRules[best].Description
	} else if hasCommonDevMarker(rootNames) {
		res.Type = "generic_dev"
		res.Description = descriptionFor("generic_dev")
	}

	res.Language = d.detectLanguage(abs, rootNames)
	res.Framework = d.detectFramework(abs, rootNames, deepNames)
	return res
}

// ruleMatches evaluates one rule: indicators, then file patterns, then
// required files, then content probes and predicate checks. It returns the
// file names that produced the match.
func (d *Detector) ruleMatches(abs string, rule ProjectTypeRule, rootNames, deepNames []string) (bool, []string) {
	var files []string

	for _, indicator := range rule.Indicators {
		for _, name := range rootNames {
			if matchIndicator(indicator, name) {
				files = append(files, name)
			}
		}
	}

	if len(files) == 0 {
		for _, pattern := range rule.FilePatterns {
			for _, rel := range deepNames {
				if ok, _ := doublestar.Match(pattern, filepath.Base(rel)); ok {
					files = append(files, rel)
				}
			}
		}
	}

	if len(files) == 0 {
		return false, nil
	}

	// Required files disqualify regardless of indicator hits.
	for _, required := range rule.RequiredFiles {
		if !contains(rootNames, required) {
			return false, nil
		}
	}

	for _, probe := range rule.ContentProbes {
		if !probeContent(abs, probe) {
			return false, nil
		}
	}
	for _, check := range rule.Checks {
		if !check(abs) {
			return false, nil
		}
	}

	sort.Strings(files)
	return true, files
}

// matchIndicator matches a literal file name or a glob-style wildcard.
func matchIndicator(indicator, name string) bool {
	if strings.ContainsAny(indicator, "*?[") {
		ok, err := doublestar.Match(indicator, name)
		return err == nil && ok
	}
	return indicator == name
}

// listFiles returns file paths (relative to root) found in a bounded
// recursive listing. Ignored directories are pruned before descending and
// permission errors skip the subtree.
func (d *Detector) listFiles(root string, maxDepth int) []string {
	var out []string
	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		if depth > maxDepth {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			if entry.IsDir() {
				if d.ignoredDirs[entry.Name()] {
					continue
				}
				walk(filepath.Join(dir, entry.Name()), depth+1)
				continue
			}
			rel, err := filepath.Rel(root, filepath.Join(dir, entry.Name()))
			if err != nil {
				continue
			}
			out = append(out, rel)
		}
	}
	walk(root, 0)
	return out
}

func hasCommonDevMarker(rootNames []string) bool {
	for _, marker := range commonDevMarkers {
		if contains(rootNames, marker) {
			return true
		}
	}
	return false
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

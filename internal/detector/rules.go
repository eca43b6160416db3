// Package detector classifies a directory as a project type and infers its
// dominant language and framework using priority-weighted heuristics.
package detector

import (
	"os"
	"path/filepath"
	"strings"
)

// ContentProbe matches when the named file exists and its content contains
// the given substring (case-insensitive).
type ContentProbe struct {
	File     string
	Contains string
}

// ProjectTypeRule describes one recognizable project archetype. Rules are
// immutable after process start; iteration order of the rule table is the
// tie-breaker for equal priorities, so the table is an ordered slice.
type ProjectTypeRule struct {
	// ID is the project type identifier, e.g. "go" or "react".
	ID string

	// Description is the human-readable project type name.
	Description string

	// Indicators are file names found at the root that signal this type.
	// Entries may contain glob wildcards (e.g. "*.cpp").
	Indicators []string

	// RequiredFiles must ALL be present or the rule is disqualified even
	// when an indicator matched.
	RequiredFiles []string

	// FilePatterns are glob patterns matched against files found during a
	// shallow recursive listing (depth 2), tried when no indicator hit.
	FilePatterns []string

	// ContentProbes must all match when set; probe I/O failures count as a
	// failed probe, not an error.
	ContentProbes []ContentProbe

	// Priority ranks this rule against other matching rules. Highest wins;
	// ties keep the first-registered rule.
	Priority int

	// Checks are extra predicates over the project path. All must pass
	// when present; a check that fails or errors disqualifies the rule.
	Checks []func(path string) bool
}

// projectTypeRules is the ordered rule table. Manifest-driven rules carry
// higher priority than source-extension rules so a Go module with C files
// in it still classifies as Go.
var projectTypeRules = []ProjectTypeRule{
	{
		ID:          "react",
		Description: "React Application",
		Indicators:  []string{"package.json"},
		ContentProbes: []ContentProbe{
			{File: "package.json", Contains: `"react"`},
		},
		Priority: 15,
	},
	{
		ID:          "django",
		Description: "Django Project",
		Indicators:  []string{"manage.py"},
		Priority:    15,
	},
	{
		ID:          "python",
		Description: "Python Project",
		Indicators:  []string{"setup.py", "requirements.txt", "Pipfile", "pyproject.toml"},
		Priority:    10,
	},
	{
		ID:          "typescript",
		Description: "TypeScript Project",
		Indicators:  []string{"tsconfig.json", "tslint.json"},
		Priority:    11,
	},
	{
		ID:          "javascript",
		Description: "JavaScript Project",
		Indicators:  []string{"package.json", "package-lock.json", "yarn.lock"},
		Priority:    10,
	},
	{
		ID:          "go",
		Description: "Go Project",
		Indicators:  []string{"go.mod", "go.sum"},
		Priority:    12,
	},
	{
		ID:          "rust",
		Description: "Rust Project",
		Indicators:  []string{"Cargo.toml", "Cargo.lock"},
		Priority:    12,
	},
	{
		ID:          "php",
		Description: "PHP Project",
		Indicators:  []string{"composer.json", "composer.lock", "artisan"},
		Priority:    10,
	},
	{
		ID:           "csharp",
		Description:  "C# Project",
		Indicators:   []string{"*.sln", "*.csproj"},
		FilePatterns: []string{"*.cs"},
		Priority:     10,
	},
	{
		ID:          "swift",
		Description: "Swift Project",
		Indicators:  []string{"Package.swift", "*.xcodeproj", "*.xcworkspace"},
		Priority:    10,
	},
	{
		ID:          "kotlin",
		Description: "Kotlin Project",
		Indicators:  []string{"build.gradle.kts", "*.kt"},
		Priority:    8,
	},
	{
		ID:          "groovy",
		Description: "Groovy Project",
		Indicators:  []string{"build.gradle", "settings.gradle", "*.groovy"},
		Priority:    7,
	},
	{
		ID:           "cpp",
		Description:  "C++ Project",
		Indicators:   []string{"CMakeLists.txt", "*.cpp", "*.hpp"},
		FilePatterns: []string{"*.cc", "*.cxx"},
		Priority:     6,
		Checks: []func(path string) bool{
			hasAnyFile("*.cpp", "*.hpp", "*.cc", "*.cxx", "CMakeLists.txt"),
		},
	},
	{
		ID:           "c",
		Description:  "C Project",
		Indicators:   []string{"Makefile", "makefile", "*.c"},
		FilePatterns: []string{"*.h"},
		Priority:     5,
		Checks: []func(path string) bool{
			hasAnyFile("*.c"),
		},
	},
	{
		ID:          "ruby",
		Description: "Ruby Project",
		Indicators:  []string{"Gemfile", "Rakefile", "*.gemspec"},
		Priority:    9,
	},
	{
		ID:          "zig",
		Description: "Zig Project",
		Indicators:  []string{"build.zig", "*.zig"},
		Priority:    9,
	},
	{
		ID:          "perl",
		Description: "Perl Project",
		Indicators:  []string{"cpanfile", "*.pl", "*.pm"},
		Priority:    5,
	},
	{
		ID:          "lua",
		Description: "Lua Project",
		Indicators:  []string{"init.lua", "main.lua", "*.rockspec", "*.lua"},
		Priority:    5,
	},
}

// commonDevMarkers distinguishes "generic_dev" from plain "generic" when no
// rule matches.
var commonDevMarkers = []string{
	"README.md",
	".gitignore",
	"LICENSE",
	"CHANGELOG.md",
	"docs",
	"src",
	"test",
	"tests",
}

// hasAnyFile returns a check that passes when any glob matches a root
// entry. Read failures fail the check.
func hasAnyFile(globs ...string) func(string) bool {
	return func(path string) bool {
		entries, err := os.ReadDir(path)
		if err != nil {
			return false
		}
		for _, entry := range entries {
			for _, g := range globs {
				if ok, _ := filepath.Match(g, entry.Name()); ok {
					return true
				}
			}
		}
		return false
	}
}

// descriptionFor returns the human description for a project type id.
func descriptionFor(id string) string {
	for _, rule := range projectTypeRules {
		if rule.ID == id {
			return rule.Description
		}
	}
	switch id {
	case "generic_dev":
		return "Generic Development Project"
	default:
		return "Generic Project"
	}
}

// probeContent evaluates a ContentProbe against a project root.
func probeContent(path string, probe ContentProbe) bool {
	data, err := os.ReadFile(filepath.Join(path, probe.File))
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), strings.ToLower(probe.Contains))
}

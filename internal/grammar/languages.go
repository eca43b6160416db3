package grammar

import (
	"path/filepath"
	"strings"
)

// languageByExt maps a file extension to its language name.
var languageByExt = map[string]string{
	// Scripting
	".py":   "Python",
	".rb":   "Ruby",
	".php":  "PHP",
	".pl":   "Perl",
	".lua":  "Lua",
	".sh":   "Shell",
	".bash": "Bash",

	// Web
	".js":     "JavaScript",
	".jsx":    "JavaScript/React",
	".ts":     "TypeScript",
	".tsx":    "TypeScript/React",
	".html":   "HTML",
	".htm":    "HTML",
	".css":    "CSS",
	".scss":   "SCSS",
	".less":   "LESS",
	".vue":    "Vue",
	".svelte": "Svelte",

	// System
	".c":     "C",
	".h":     "C/C++ Header",
	".cpp":   "C++",
	".cc":    "C++",
	".cxx":   "C++",
	".hpp":   "C++ Header",
	".cs":    "C#",
	".csx":   "C# Script",
	".java":  "Java",
	".go":    "Go",
	".rs":    "Rust",
	".swift": "Swift",
	".m":     "Objective-C",
	".mm":    "Objective-C++",

	// Mobile
	".kt":   "Kotlin",
	".kts":  "Kotlin Script",
	".dart": "Dart",

	// Data
	".sql": "SQL",
	".r":   "R",
	".jl":  "Julia",

	// Markup and interchange
	".json":    "JSON",
	".yaml":    "YAML",
	".yml":     "YAML",
	".toml":    "TOML",
	".xml":     "XML",
	".md":      "Markdown",
	".graphql": "GraphQL",
	".gql":     "GraphQL",
	".proto":   "Protocol Buffers",

	// Others
	".ex":     "Elixir",
	".exs":    "Elixir Script",
	".erl":    "Erlang",
	".hs":     "Haskell",
	".clj":    "Clojure",
	".scala":  "Scala",
	".groovy": "Groovy",
	".ps1":    "PowerShell",
	".zig":    "Zig",
}

// groupByLanguage maps a language name to its pattern group.
var groupByLanguage = map[string]string{
	"Python": GroupPython,

	"JavaScript":       GroupWeb,
	"JavaScript/React": GroupWeb,
	"TypeScript":       GroupWeb,
	"TypeScript/React": GroupWeb,
	"Java":             GroupWeb,
	"Ruby":             GroupWeb,
	"Dart":             GroupWeb,
	"Kotlin":           GroupWeb,
	"Kotlin Script":    GroupWeb,

	"C":             GroupSystem,
	"C/C++ Header":  GroupSystem,
	"C++":           GroupSystem,
	"C++ Header":    GroupSystem,
	"C#":            GroupSystem,
	"C# Script":     GroupSystem,
	"PHP":           GroupSystem,
	"Swift":         GroupSystem,
	"Objective-C":   GroupSystem,
	"Objective-C++": GroupSystem,
	"Go":            GroupSystem,
	"Rust":          GroupSystem,

	"SQL":   GroupData,
	"R":     GroupData,
	"Julia": GroupData,
}

// extraSetByLanguage maps a language name to its language-specific
// supplemental pattern set, when one exists.
var extraSetByLanguage = map[string]string{
	"Go":      "go",
	"Rust":    "rust",
	"SQL":     "sql",
	"GraphQL": "graphql",
}

// LanguageForFile resolves a language name from a file name. Dockerfiles
// have no extension and are special-cased.
func LanguageForFile(name string) string {
	base := filepath.Base(name)
	if base == "Dockerfile" || strings.HasPrefix(base, "Dockerfile.") {
		return "Dockerfile"
	}
	return LanguageForExt(filepath.Ext(name))
}

// LanguageForExt resolves a language name from a file extension.
func LanguageForExt(ext string) string {
	if lang, ok := languageByExt[strings.ToLower(ext)]; ok {
		return lang
	}
	return "Unknown"
}

// GroupForLanguage returns the pattern group a language belongs to, or
// "unknown" when the language has no structural grammar.
func GroupForLanguage(language string) string {
	if group, ok := groupByLanguage[language]; ok {
		return group
	}
	return "unknown"
}

// ExtraSetForLanguage returns the name of the language-specific supplemental
// set for a language, or "" when none applies. C# files additionally get the
// unity set since Unity scripts are plain C#.
func ExtraSetForLanguage(language string) string {
	if set, ok := extraSetByLanguage[language]; ok {
		return set
	}
	switch language {
	case "Dockerfile":
		return "docker"
	case "C#", "C# Script":
		return "unity"
	}
	return ""
}

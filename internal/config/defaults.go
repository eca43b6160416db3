// Package config provides configuration loading and defaults for repolens.
package config

// DefaultScanPaths are the default directories to scan for projects.
var DefaultScanPaths = []string{"."}

// DefaultConfigDir is the default location for repolens configuration.
const DefaultConfigDir = "~/.config/repolens"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "repolens.db"

// DefaultMaxDepth bounds recursive project discovery.
const DefaultMaxDepth = 3

// DefaultCacheTTLSeconds is how long classification results stay cached.
const DefaultCacheTTLSeconds = 300

// DefaultScoreAlpha is the exponential-moving-average weight applied when
// folding a file's quality scores into the project-level scores.
const DefaultScoreAlpha = 0.3

// DefaultIgnoredDirs are directory names never descended into during a scan.
var DefaultIgnoredDirs = []string{
	".git",
	".svn",
	".hg",
	"node_modules",
	"vendor",
	"bower_components",
	"venv",
	".venv",
	"env",
	"__pycache__",
	".pytest_cache",
	"dist",
	"build",
	"target",
	"out",
	"bin",
	"obj",
	".idea",
	".vscode",
	".vs",
	"coverage",
	".repolens",
}

// DefaultIgnoredFiles are file-name globs always skipped during analysis.
var DefaultIgnoredFiles = []string{
	"*.min.js",
	"*.min.css",
	"*.map",
	"*.lock",
	"*.log",
	"*.pyc",
	"*.pyo",
	"*.class",
	"*.o",
	"*.so",
	"*.dll",
	"*.exe",
	".DS_Store",
	"Thumbs.db",
}

// DefaultFileLength holds the recommended file length and alert thresholds.
var DefaultFileLength = FileLength{
	Limit:    300,
	Warning:  1.0,
	Critical: 1.5,
	Severe:   2.0,
}

// DefaultTriggerFiles are manifest files whose changes cause the watcher to
// re-run classification.
var DefaultTriggerFiles = []string{
	"package.json",
	"requirements.txt",
	"pyproject.toml",
	"setup.py",
	"go.mod",
	"Cargo.toml",
	"composer.json",
	"build.gradle",
	"pom.xml",
	"pubspec.yaml",
	"tsconfig.json",
	"CMakeLists.txt",
}

// DefaultTriggerExtensions are file extensions that also trigger a re-scan.
var DefaultTriggerExtensions = []string{
	".csproj",
	".vcxproj",
	".sln",
	".gemspec",
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}

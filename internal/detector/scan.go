package detector

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ScannedProject is one project found by ScanForProjects, with a display
// name recovered from its manifest where possible.
type ScannedProject struct {
	Name string `json:"name"`
	DetectionResult
}

// ScanForProjects walks root up to maxDepth levels looking for project
// directories. A directory that classifies as a concrete project type is
// reported and not descended into; generic directories are searched
// further. The root itself is reported when it is a project.
func (d *Detector) ScanForProjects(root string, maxDepth int) []ScannedProject {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	var found []ScannedProject
	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		res := d.Detect(dir, false)
		if res.Type != "generic" && res.Type != "generic_dev" {
			found = append(found, ScannedProject{
				Name:            projectName(dir, res.Type),
				DetectionResult: res,
			})
			return
		}
		if depth >= maxDepth {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			if !entry.IsDir() || d.ignoredDirs[entry.Name()] {
				continue
			}
			if strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			walk(filepath.Join(dir, entry.Name()), depth+1)
		}
	}
	walk(abs, 0)
	return found
}

var (
	setupNameRe  = regexp.MustCompile(`name\s*=\s*["']([^"']+)["']`)
	cargoNameRe  = regexp.MustCompile(`(?m)^\s*name\s*=\s*"([^"]+)"`)
	gradleNameRe = regexp.MustCompile(`rootProject\.name\s*=\s*["']([^"']+)["']`)
)

// projectName recovers a display name from the manifest that belongs to
// the detected type, falling back to the directory base name.
func projectName(abs, projectType string) string {
	switch projectType {
	case "javascript", "typescript", "react":
		if name := packageJSONName(filepath.Join(abs, "package.json")); name != "" {
			return name
		}
	case "python", "django":
		if data, err := os.ReadFile(filepath.Join(abs, "setup.py")); err == nil {
			if m := setupNameRe.FindSubmatch(data); m != nil {
				return string(m[1])
			}
		}
		if data, err := os.ReadFile(filepath.Join(abs, "pyproject.toml")); err == nil {
			if m := cargoNameRe.FindSubmatch(data); m != nil {
				return string(m[1])
			}
		}
	case "rust":
		if data, err := os.ReadFile(filepath.Join(abs, "Cargo.toml")); err == nil {
			if m := cargoNameRe.FindSubmatch(data); m != nil {
				return string(m[1])
			}
		}
	case "go":
		if data, err := os.ReadFile(filepath.Join(abs, "go.mod")); err == nil {
			for _, line := range strings.Split(string(data), "\n") {
				if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "module "); ok {
					return filepath.Base(strings.TrimSpace(rest))
				}
			}
		}
	case "kotlin", "groovy":
		if data, err := os.ReadFile(filepath.Join(abs, "settings.gradle")); err == nil {
			if m := gradleNameRe.FindSubmatch(data); m != nil {
				return string(m[1])
			}
		}
	case "ruby":
		if name := stemOfFirst(abs, "*.gemspec"); name != "" {
			return name
		}
	case "csharp":
		if name := stemOfFirst(abs, "*.csproj"); name != "" {
			return name
		}
	}
	return filepath.Base(abs)
}

func packageJSONName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var manifest struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Name
}

// stemOfFirst returns the extension-stripped base name of the first file
// in dir matching the glob.
func stemOfFirst(dir, glob string) string {
	matches, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil || len(matches) == 0 {
		return ""
	}
	base := filepath.Base(matches[0])
	return strings.TrimSuffix(base, filepath.Ext(base))
}

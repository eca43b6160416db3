package detector

import (
	"os"
	"path/filepath"
	"strings"
)

// languageIndicator pairs a language with the file names and extensions
// that vote for it. The table is ordered: on a tied vote the earlier entry
// wins.
type languageIndicator struct {
	name       string
	indicators []string
}

var languageIndicators = []languageIndicator{
	{"python", []string{".py", "requirements.txt", "setup.py", "Pipfile", "pyproject.toml"}},
	{"typescript", []string{".ts", ".tsx", "tsconfig.json"}},
	{"javascript", []string{".js", ".jsx", "package.json"}},
	{"go", []string{".go", "go.mod"}},
	{"rust", []string{".rs", "Cargo.toml"}},
	{"java", []string{".java", "pom.xml"}},
	{"kotlin", []string{".kt", "build.gradle.kts"}},
	{"php", []string{".php", "composer.json"}},
	{"swift", []string{".swift", "Package.swift"}},
	{"cpp", []string{".cpp", ".hpp", ".cc", ".cxx"}},
	{"c", []string{".c", ".h"}},
	{"csharp", []string{".cs", ".csproj", ".sln"}},
	{"ruby", []string{".rb", "Gemfile"}},
	{"zig", []string{".zig", "build.zig"}},
	{"perl", []string{".pl", ".pm", "cpanfile"}},
	{"groovy", []string{".groovy", "build.gradle"}},
	{"lua", []string{".lua", "init.lua", "main.lua"}},
}

// sourceSubdirs are the subdirectories whose contents vote at half weight
// during language inference.
var sourceSubdirs = []string{"src", "lib", "app", "test", "tests", "internal", "cmd"}

// frameworkIndicator pairs a framework with substrings searched for in
// manifest and source content or in directory names.
type frameworkIndicator struct {
	name    string
	content []string
	dirs    []string
}

var frameworkIndicators = []frameworkIndicator{
	{"django", []string{"django"}, []string{}},
	{"flask", []string{"flask"}, []string{}},
	{"fastapi", []string{"fastapi"}, []string{}},
	{"pytorch", []string{"torch"}, []string{}},
	{"tensorflow", []string{"tensorflow"}, []string{}},
	{"react", []string{`"react"`, "from 'react'", `from "react"`}, []string{}},
	{"next.js", []string{`"next"`, "next/"}, []string{"pages", ".next"}},
	{"vue", []string{`"vue"`}, []string{}},
	{"angular", []string{"@angular/core"}, []string{}},
	{"express", []string{`"express"`}, []string{}},
	{"rails", []string{"rails"}, []string{"app/controllers"}},
	{"laravel", []string{"laravel"}, []string{"artisan"}},
	{"spring", []string{"spring-boot", "springframework"}, []string{}},
	{"gin", []string{"gin-gonic/gin"}, []string{}},
	{"qt", []string{"qtcore", "find_package(qt"}, []string{}},
	{"unity", []string{"unityengine"}, []string{"Assets"}},
	{"dotnet", []string{"microsoft.net.sdk"}, []string{}},
}

// manifestFiles are the config files sampled (at double weight) during
// framework inference.
var manifestFiles = map[string]bool{
	"package.json":     true,
	"requirements.txt": true,
	"pyproject.toml":   true,
	"composer.json":    true,
	"go.mod":           true,
	"Cargo.toml":       true,
	"build.gradle":     true,
	"pom.xml":          true,
	"Gemfile":          true,
	"CMakeLists.txt":   true,
	"Podfile":          true,
}

// maxSampledSources caps how many source files framework inference reads.
const maxSampledSources = 12

// detectLanguage runs a weighted vote. Root entries count full weight;
// entries one level into common source subdirectories count half. Highest
// score wins, ties resolve by table order.
func (d *Detector) detectLanguage(abs string, rootNames []string) string {
	votes := make(map[string]float64, len(languageIndicators))

	count := func(names []string, weight float64) {
		for _, lang := range languageIndicators {
			for _, name := range names {
				for _, ind := range lang.indicators {
					if strings.HasPrefix(ind, ".") {
						if strings.EqualFold(filepath.Ext(name), ind) {
							votes[lang.name] += weight
							break
						}
					} else if name == ind {
						votes[lang.name] += weight
						break
					}
				}
			}
		}
	}

	count(rootNames, 1)
	for _, sub := range sourceSubdirs {
		entries, err := os.ReadDir(filepath.Join(abs, sub))
		if err != nil {
			continue
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() {
				names = append(names, e.Name())
			}
		}
		count(names, 0.5)
	}

	best := "unknown"
	var bestScore float64
	for _, lang := range languageIndicators {
		if votes[lang.name] > bestScore {
			bestScore = votes[lang.name]
			best = lang.name
		}
	}
	return best
}

// detectFramework accumulates weighted evidence: manifest content counts
// double, source content counts once, and directory-structure hits count
// 1.5. Only a capped sample of source files is read.
func (d *Detector) detectFramework(abs string, rootNames, deepNames []string) string {
	scores := make(map[string]float64, len(frameworkIndicators))

	sampled := 0
	for _, rel := range deepNames {
		base := filepath.Base(rel)
		isManifest := manifestFiles[base]
		if !isManifest {
			if sampled >= maxSampledSources || !isSourceFile(base) {
				continue
			}
			sampled++
		}

		data, err := os.ReadFile(filepath.Join(abs, rel))
		if err != nil {
			continue
		}
		content := strings.ToLower(string(data))

		weight := 1.0
		if isManifest {
			weight = 2.0
		}
		for _, fw := range frameworkIndicators {
			for _, probe := range fw.content {
				if strings.Contains(content, strings.ToLower(probe)) {
					scores[fw.name] += weight
					break
				}
			}
		}
	}

	for _, fw := range frameworkIndicators {
		for _, dir := range fw.dirs {
			if _, err := os.Stat(filepath.Join(abs, dir)); err == nil {
				scores[fw.name] += 1.5
			}
		}
	}

	best := "none"
	var bestScore float64
	for _, fw := range frameworkIndicators {
		if scores[fw.name] > bestScore {
			bestScore = scores[fw.name]
			best = fw.name
		}
	}
	return best
}

// isSourceFile limits content sampling to extensions the extractor also
// understands.
func isSourceFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".py", ".js", ".jsx", ".ts", ".tsx", ".go", ".rs", ".java", ".kt",
		".rb", ".php", ".swift", ".cs", ".cpp", ".c", ".lua":
		return true
	}
	return false
}

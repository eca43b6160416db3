// Package analyzer walks a project tree and folds per-file structural
// matches and metrics into a project-wide result. A single bad file never
// aborts a run; it is recorded as a warning and skipped.
package analyzer

import (
	"bytes"
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/repolens/repolens/internal/grammar"
	"github.com/repolens/repolens/internal/metrics"
	"github.com/repolens/repolens/internal/patterns"
)

// maxFileBytes is the largest file the analyzer will read. Larger files
// are counted as skipped.
const maxFileBytes = 2 << 20

// LengthThresholds configures file-length alerting. Warning, Critical and
// Severe are multipliers applied to Limit.
type LengthThresholds struct {
	Limit    int
	Warning  float64
	Critical float64
	Severe   float64
}

// FileAnalysis is the full per-file output for one source file.
type FileAnalysis struct {
	Path     string                  `json:"path"`
	Language string                  `json:"language"`
	Matches  []patterns.Match        `json:"matches,omitempty"`
	Metrics  metrics.FileMetrics     `json:"metrics"`
	Patterns metrics.PatternReport   `json:"patterns"`
	Scores   metrics.QualityScoreSet `json:"scores"`

	// LengthAlert is "", "warning", "critical" or "severe" depending on how
	// far the file exceeds the configured length limit.
	LengthAlert string `json:"length_alert,omitempty"`
}

// Result is one full analysis run over a project root.
type Result struct {
	Root        string                  `json:"root"`
	Files       []FileAnalysis          `json:"files"`
	Metrics     *metrics.ProjectMetrics `json:"metrics"`
	Suggestions []string                `json:"suggestions,omitempty"`
}

// Options configures an Analyzer.
type Options struct {
	IgnoredDirs  []string
	IgnoredFiles []string
	Alpha        float64
	Lengths      LengthThresholds
	Verbose      bool
}

// Analyzer runs analysis passes. It is safe for sequential reuse across
// roots; each Analyze call produces an independent Result.
type Analyzer struct {
	ignoredDirs  map[string]bool
	ignoredFiles []string
	extractor    *patterns.Extractor
	alpha        float64
	lengths      LengthThresholds
	verbose      bool
}

// New returns an Analyzer using the default grammar registry.
func New(opts Options) *Analyzer {
	ignore := make(map[string]bool, len(opts.IgnoredDirs))
	for _, d := range opts.IgnoredDirs {
		ignore[d] = true
	}
	return &Analyzer{
		ignoredDirs:  ignore,
		ignoredFiles: opts.IgnoredFiles,
		extractor:    patterns.New(grammar.Default()),
		alpha:        opts.Alpha,
		lengths:      opts.Lengths,
		verbose:      opts.Verbose,
	}
}

// Analyze walks root and analyzes every source file under it. Permission
// errors skip the affected subtree. The only returned errors are an
// unreadable root and context cancellation.
func (a *Analyzer) Analyze(ctx context.Context, root string) (*Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}

	res := &Result{
		Root:    abs,
		Metrics: metrics.NewProjectMetrics(a.alpha),
	}

	walkErr := filepath.WalkDir(abs, func(path string, entry fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if path != abs && (a.ignoredDirs[entry.Name()] || strings.HasPrefix(entry.Name(), ".")) {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			rel = path
		}
		if a.ignored(rel, entry.Name()) {
			return nil
		}
		a.analyzeFile(res, path, rel, entry.Name())
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	res.Suggestions = Suggestions(res.Metrics)
	return res, nil
}

// analyzeFile reads and analyzes one file, folding it into res. Read
// failures and undecodable content become warnings, not errors.
func (a *Analyzer) analyzeFile(res *Result, path, rel, name string) {
	language := grammar.LanguageForFile(name)
	ext := strings.ToLower(filepath.Ext(name))

	// Source files are those with a structural grammar; everything else is
	// counted toward the distribution but not measured.
	isSource := grammar.GroupForLanguage(language) != "unknown" ||
		grammar.ExtraSetForLanguage(language) != ""

	info, err := os.Stat(path)
	if err != nil {
		a.skip(res, rel, "stat failed: "+err.Error())
		return
	}
	if info.Size() > maxFileBytes {
		a.skip(res, rel, "file too large")
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		a.skip(res, rel, "read failed: "+err.Error())
		return
	}
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		if !isSource {
			// Binary assets with no source extension are expected; count
			// them without a warning.
			res.Metrics.AddOther(rel, ext, 0)
			return
		}
		a.skip(res, rel, "binary or undecodable content")
		return
	}

	content := string(data)
	if !isSource {
		res.Metrics.AddOther(rel, ext, strings.Count(content, "\n")+1)
		return
	}

	m := metrics.Compute(content)
	p := metrics.ScanPatterns(content)
	matches := a.extractor.Extract(content, language)

	file := FileAnalysis{
		Path:        rel,
		Language:    language,
		Matches:     matches,
		Metrics:     m,
		Patterns:    p,
		Scores:      metrics.Score(m, p),
		LengthAlert: a.lengthAlert(m.TotalLines),
	}
	res.Files = append(res.Files, file)

	res.Metrics.AddFile(rel, ext, m, p,
		functionLengths(content, matches),
		metrics.MagicNumbers(content),
		metrics.CommentedOutCode(content))
}

func (a *Analyzer) skip(res *Result, rel, reason string) {
	res.Metrics.AddSkipped(rel, reason)
	if a.verbose {
		log.Printf("skipping %s: %s", rel, reason)
	}
}

// ignored reports whether the file matches any ignored glob, tried against
// both the base name and the root-relative path.
func (a *Analyzer) ignored(rel, name string) bool {
	for _, glob := range a.ignoredFiles {
		if ok, _ := doublestar.Match(glob, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(glob, filepath.ToSlash(rel)); ok {
			return true
		}
	}
	return false
}

// lengthAlert grades total line count against the configured limit.
func (a *Analyzer) lengthAlert(lines int) string {
	limit := a.lengths.Limit
	if limit <= 0 {
		return ""
	}
	n := float64(lines)
	switch {
	case a.lengths.Severe > 0 && n > float64(limit)*a.lengths.Severe:
		return "severe"
	case a.lengths.Critical > 0 && n > float64(limit)*a.lengths.Critical:
		return "critical"
	case a.lengths.Warning > 0 && n > float64(limit)*a.lengths.Warning:
		return "warning"
	}
	return ""
}

// functionLengths estimates each function's length in lines: the span from
// its declaration to the next function declaration, or to end of file for
// the last one. When a name repeats the longer span wins.
func functionLengths(content string, matches []patterns.Match) map[string]int {
	var fns []patterns.Match
	for _, m := range matches {
		if m.Category == "function" {
			fns = append(fns, m)
		}
	}
	if len(fns) == 0 {
		return nil
	}
	sort.Slice(fns, func(i, j int) bool { return fns[i].Start < fns[j].Start })

	totalLines := strings.Count(content, "\n") + 1
	lengths := make(map[string]int, len(fns))
	for i, fn := range fns {
		startLine := strings.Count(content[:fn.Start], "\n") + 1
		endLine := totalLines
		if i+1 < len(fns) {
			endLine = strings.Count(content[:fns[i+1].Start], "\n")
		}
		length := max(endLine-startLine+1, 1)
		if length > lengths[fn.Name] {
			lengths[fn.Name] = length
		}
	}
	return lengths
}

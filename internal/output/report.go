package output

import (
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/repolens/repolens/internal/analyzer"
	"github.com/repolens/repolens/internal/detector"
)

// ReportData bundles everything the markdown report needs.
type ReportData struct {
	Name        string
	Detection   detector.DetectionResult
	Result      *analyzer.Result
	GeneratedAt time.Time
}

// WriteMarkdown renders a full project report: overview, directory tree,
// metrics, quality scores, file distribution, smells and suggestions.
func WriteMarkdown(w io.Writer, data ReportData) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Project Overview: %s\n\n", data.Name)
	fmt.Fprintf(&b, "**Type:** %s (%s)\n", data.Detection.Type, data.Detection.Description)
	fmt.Fprintf(&b, "**Language:** %s\n", data.Detection.Language)
	fmt.Fprintf(&b, "**Framework:** %s\n", data.Detection.Framework)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", data.GeneratedAt.Format("2006-01-02 15:04"))

	writeTree(&b, data.Name, data.Result.Files)
	writeMetrics(&b, data.Result)
	writeScores(&b, data.Result)
	writeDistribution(&b, data.Result)
	writeSmells(&b, data.Result)

	if len(data.Result.Suggestions) > 0 {
		b.WriteString("## Suggestions\n\n")
		for _, s := range data.Result.Suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}
	if len(data.Result.Metrics.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, warn := range data.Result.Metrics.Warnings {
			fmt.Fprintf(&b, "- %s\n", warn)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// treeNode is one directory level in the rendered tree.
type treeNode struct {
	dirs  map[string]*treeNode
	files []analyzer.FileAnalysis
}

func newTreeNode() *treeNode {
	return &treeNode{dirs: make(map[string]*treeNode)}
}

func writeTree(b *strings.Builder, name string, files []analyzer.FileAnalysis) {
	b.WriteString("## Directory Structure\n\n```\n")
	fmt.Fprintf(b, "%s/\n", name)

	root := newTreeNode()
	for _, f := range files {
		node := root
		parts := strings.Split(path.Clean(strings.ReplaceAll(f.Path, "\\", "/")), "/")
		for _, dir := range parts[:len(parts)-1] {
			child, ok := node.dirs[dir]
			if !ok {
				child = newTreeNode()
				node.dirs[dir] = child
			}
			node = child
		}
		node.files = append(node.files, f)
	}
	renderTree(b, root, "")
	b.WriteString("```\n\n")
}

func renderTree(b *strings.Builder, node *treeNode, prefix string) {
	dirNames := make([]string, 0, len(node.dirs))
	for d := range node.dirs {
		dirNames = append(dirNames, d)
	}
	sort.Strings(dirNames)
	sort.Slice(node.files, func(i, j int) bool { return node.files[i].Path < node.files[j].Path })

	total := len(dirNames) + len(node.files)
	i := 0
	connector := func() (string, string) {
		i++
		if i == total {
			return "└── ", "    "
		}
		return "├── ", "│   "
	}

	for _, d := range dirNames {
		conn, indent := connector()
		fmt.Fprintf(b, "%s%s%s/\n", prefix, conn, d)
		renderTree(b, node.dirs[d], prefix+indent)
	}
	for _, f := range node.files {
		conn, _ := connector()
		fmt.Fprintf(b, "%s%s%s%s\n", prefix, conn, path.Base(strings.ReplaceAll(f.Path, "\\", "/")), fileSummary(f))
	}
}

// fileSummary annotates a tree entry with size, function count and any
// length alert.
func fileSummary(f analyzer.FileAnalysis) string {
	functions := 0
	for _, m := range f.Matches {
		if m.Category == "function" {
			functions++
		}
	}
	s := fmt.Sprintf(" (%d lines, %d functions)", f.Metrics.TotalLines, functions)
	if f.LengthAlert != "" {
		s += " [" + f.LengthAlert + ": file length]"
	}
	return s
}

func writeMetrics(b *strings.Builder, res *analyzer.Result) {
	pm := res.Metrics
	b.WriteString("## Metrics\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Total files | %d |\n", pm.TotalFiles)
	fmt.Fprintf(b, "| Total lines | %d |\n", pm.TotalLines)
	fmt.Fprintf(b, "| Skipped files | %d |\n", pm.SkippedFiles)
	fmt.Fprintf(b, "| Functions | %d |\n", pm.Complexity.TotalFunctions)
	fmt.Fprintf(b, "| Avg function length | %.1f |\n", pm.Complexity.AvgFunctionLength)
	fmt.Fprintf(b, "| Max cyclomatic complexity | %d |\n", pm.Complexity.MaxFileComplexity)
	fmt.Fprintf(b, "| Max cognitive complexity | %d |\n", pm.Complexity.MaxCognitive)
	fmt.Fprintf(b, "| Comment ratio | %.1f%% |\n\n", pm.Complexity.CommentRatio*100)
}

func writeScores(b *strings.Builder, res *analyzer.Result) {
	s := res.Metrics.Scores
	b.WriteString("## Quality Scores\n\n")
	b.WriteString("| Score | Value | Grade |\n|---|---|---|\n")
	for _, row := range []struct {
		name  string
		value float64
	}{
		{"Maintainability", s.Maintainability},
		{"Readability", s.Readability},
		{"Complexity", s.Complexity},
		{"Documentation", s.Documentation},
		{"Reusability", s.Reusability},
		{"Testability", s.Testability},
	} {
		fmt.Fprintf(b, "| %s | %.1f | %s |\n", row.name, row.value, Grade(row.value))
	}
	b.WriteString("\n")
}

func writeDistribution(b *strings.Builder, res *analyzer.Result) {
	pm := res.Metrics
	if len(pm.FilesByExt) == 0 {
		return
	}
	exts := make([]string, 0, len(pm.FilesByExt))
	for ext := range pm.FilesByExt {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if pm.FilesByExt[exts[i]] != pm.FilesByExt[exts[j]] {
			return pm.FilesByExt[exts[i]] > pm.FilesByExt[exts[j]]
		}
		return exts[i] < exts[j]
	})

	b.WriteString("## File Distribution\n\n")
	b.WriteString("| Extension | Files | Lines |\n|---|---|---|\n")
	for _, ext := range exts {
		label := ext
		if label == "" {
			label = "(none)"
		}
		fmt.Fprintf(b, "| %s | %d | %d |\n", label, pm.FilesByExt[ext], pm.LinesByExt[ext])
	}
	b.WriteString("\n")
}

func writeSmells(b *strings.Builder, res *analyzer.Result) {
	smells := res.Metrics.Smells
	total := len(smells.LongFunctions) + len(smells.LongFiles) +
		len(smells.HighComplexityFiles) + len(smells.MagicNumberFiles) +
		len(smells.CommentedCodeFiles)
	if total == 0 {
		return
	}

	b.WriteString("## Code Smells\n\n")
	for _, fn := range smells.LongFunctions {
		fmt.Fprintf(b, "- Long function `%s` in %s (%d lines)\n", fn.Function, fn.Path, fn.Lines)
	}
	for _, f := range smells.LongFiles {
		fmt.Fprintf(b, "- Long file %s (%d lines)\n", f.Path, f.Value)
	}
	for _, f := range smells.HighComplexityFiles {
		fmt.Fprintf(b, "- High complexity in %s (cyclomatic %d)\n", f.Path, f.Value)
	}
	for _, f := range smells.MagicNumberFiles {
		fmt.Fprintf(b, "- Magic numbers in %s (%d occurrences)\n", f.Path, f.Value)
	}
	for _, f := range smells.CommentedCodeFiles {
		fmt.Fprintf(b, "- Commented-out code in %s (%d blocks)\n", f.Path, f.Value)
	}
	b.WriteString("\n")
}

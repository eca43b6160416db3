package output

import (
	"strings"
	"testing"
	"time"

	"github.com/repolens/repolens/internal/analyzer"
	"github.com/repolens/repolens/internal/detector"
	"github.com/repolens/repolens/internal/metrics"
)

func TestGrade(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{95, "A"},
		{90, "A"},
		{85, "B"},
		{72, "C"},
		{60, "D"},
		{59.9, "F"},
		{0, "F"},
	}
	for _, c := range cases {
		if got := Grade(c.score); got != c.want {
			t.Errorf("Grade(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestWriteMarkdown(t *testing.T) {
	pm := metrics.NewProjectMetrics(0)
	pm.AddFile("src/app.py", ".py",
		metrics.FileMetrics{TotalLines: 120, CodeLines: 100, CommentLines: 10},
		metrics.PatternReport{}, map[string]int{"run": 20}, 0, 0)
	pm.AddOther("README.md", ".md", 30)

	data := ReportData{
		Name: "demo",
		Detection: detector.DetectionResult{
			Type:        "python",
			Description: "Python Project",
			Language:    "python",
			Framework:   "django",
		},
		Result: &analyzer.Result{
			Root: "/home/dev/demo",
			Files: []analyzer.FileAnalysis{
				{Path: "src/app.py", Language: "Python", Metrics: metrics.FileMetrics{TotalLines: 120}},
			},
			Metrics:     pm,
			Suggestions: []string{"Add documentation"},
		},
		GeneratedAt: time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC),
	}

	var buf strings.Builder
	if err := WriteMarkdown(&buf, data); err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Project Overview: demo",
		"**Type:** python (Python Project)",
		"**Framework:** django",
		"**Generated:** 2025-05-10 09:30",
		"## Directory Structure",
		"app.py",
		"## Quality Scores",
		"## Suggestions",
		"- Add documentation",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

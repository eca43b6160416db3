package analyzer

import (
	"fmt"

	"github.com/repolens/repolens/internal/metrics"
)

// lowCommentRatio is the project comment ratio below which documentation
// is suggested.
const lowCommentRatio = 0.08

// Suggestions derives actionable improvement advice from an aggregate.
// The list is empty for a clean project.
func Suggestions(pm *metrics.ProjectMetrics) []string {
	var out []string

	if n := len(pm.Smells.LongFunctions); n > 0 {
		out = append(out, fmt.Sprintf("Break up %d function(s) longer than 50 lines into smaller units", n))
	}
	if n := len(pm.Smells.LongFiles); n > 0 {
		out = append(out, fmt.Sprintf("Split %d file(s) longer than 300 lines by responsibility", n))
	}
	if n := len(pm.Smells.HighComplexityFiles); n > 0 {
		out = append(out, fmt.Sprintf("Reduce branching in %d file(s) with cyclomatic complexity above 20", n))
	}
	if n := len(pm.Smells.MagicNumberFiles); n > 0 {
		out = append(out, fmt.Sprintf("Extract named constants in %d file(s) dense with magic numbers", n))
	}
	if n := len(pm.Smells.CommentedCodeFiles); n > 0 {
		out = append(out, fmt.Sprintf("Delete commented-out code in %d file(s); version control already keeps it", n))
	}
	if pm.Complexity.CommentRatio > 0 && pm.Complexity.CommentRatio < lowCommentRatio {
		out = append(out, "Add documentation: the project comment ratio is under 8%")
	}
	if pm.Scores.Testability > 0 && pm.Scores.Testability < 50 {
		out = append(out, "Improve testability: add tests and reduce per-function complexity")
	}
	if pm.SkippedFiles > 0 {
		out = append(out, fmt.Sprintf("Review %d skipped file(s); see warnings for reasons", pm.SkippedFiles))
	}

	return out
}

// Package metrics computes per-file code-quality metrics (size, complexity,
// Halstead measures, maintainability) and folds them into project-wide
// quality scores.
package metrics

import (
	"math"
	"regexp"
	"strings"
)

// FileMetrics holds every measure computed for one file. A zero value is
// the correct result for unreadable or empty input.
type FileMetrics struct {
	TotalLines   int `json:"total_lines"`
	CodeLines    int `json:"code_lines"`
	CommentLines int `json:"comment_lines"`
	BlankLines   int `json:"blank_lines"`

	// Cyclomatic is the McCabe-style count of control-flow branch points.
	Cyclomatic int `json:"cyclomatic"`

	// Cognitive weights each control-flow hit by its nesting depth and adds
	// one per logical operator, so deep nesting costs more than flat
	// sequences.
	Cognitive int `json:"cognitive"`

	// MaxNesting is the deepest nesting level observed.
	MaxNesting int `json:"max_nesting"`

	Halstead Halstead `json:"halstead"`

	// MaintainabilityIndex is a 0-100 composite of volume, cyclomatic
	// count, size, and comment density.
	MaintainabilityIndex float64 `json:"maintainability_index"`
}

// Halstead holds the classic software-science measures. All fields are zero
// unless the file contains at least one unique operator and one unique
// operand.
type Halstead struct {
	Vocabulary    int     `json:"vocabulary"`
	Length        int     `json:"length"`
	Volume        float64 `json:"volume"`
	Difficulty    float64 `json:"difficulty"`
	Effort        float64 `json:"effort"`
	EstimatedBugs float64 `json:"estimated_bugs"`
	EstimatedTime float64 `json:"estimated_time"`
}

// CommentRatio returns comment lines over comment+code lines.
func (m FileMetrics) CommentRatio() float64 {
	total := m.CodeLines + m.CommentLines
	if total == 0 {
		return 0
	}
	return float64(m.CommentLines) / float64(total)
}

var (
	operatorRe = regexp.MustCompile(`[+\-*/=<>!&|^~%]+|\b(?:if|else|elif|for|while|switch|case|break|continue|return|in|is|and|or|not|try|catch|except|throw|defer|go)\b`)
	operandRe  = regexp.MustCompile(`\b[A-Za-z_]\w*\b|\b\d+(?:\.\d+)?\b|'[^'\n]*'|"[^"\n]*"`)

	branchKeywordRe = regexp.MustCompile(`\b(?:if|elif|else if|for|while|case|when|catch|except|with)\b`)
	logicalOpRe     = regexp.MustCompile(`&&|\|\||\b(?:and|or)\b`)
)

// Compute calculates every file-level metric from raw content in one pass
// over its lines. It is a pure function; malformed input degrades to
// smaller counts, never to an error.
func Compute(content string) FileMetrics {
	var m FileMetrics
	if content == "" {
		return m
	}

	lines := strings.Split(content, "\n")
	m.TotalLines = len(lines)

	uniqueOperators := make(map[string]struct{})
	uniqueOperands := make(map[string]struct{})
	totalOperators := 0
	totalOperands := 0

	depth := 0
	inBlockComment := false

	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		if stripped == "" {
			m.BlankLines++
			continue
		}

		if inBlockComment {
			m.CommentLines++
			if strings.Contains(stripped, "*/") {
				inBlockComment = false
			}
			continue
		}
		if isCommentLine(stripped) {
			m.CommentLines++
			if strings.HasPrefix(stripped, "/*") && !strings.Contains(stripped, "*/") {
				inBlockComment = true
			}
			continue
		}

		m.CodeLines++

		// Halstead token pass.
		for _, op := range operatorRe.FindAllString(line, -1) {
			uniqueOperators[op] = struct{}{}
			totalOperators++
		}
		for _, operand := range operandRe.FindAllString(line, -1) {
			uniqueOperands[operand] = struct{}{}
			totalOperands++
		}

		// Complexity pass.
		if hits := len(branchKeywordRe.FindAllString(stripped, -1)); hits > 0 {
			m.Cyclomatic += hits
			weight := depth
			if weight < 1 {
				weight = 1
			}
			m.Cognitive += hits * weight
		}
		m.Cognitive += len(logicalOpRe.FindAllString(stripped, -1))

		// Nesting tracking works for both brace and indentation syntax:
		// opening braces and Python-style block headers push, closing
		// braces pop.
		depth += strings.Count(stripped, "{")
		if strings.HasSuffix(stripped, ":") && branchKeywordRe.MatchString(stripped) {
			depth++
		}
		depth -= strings.Count(stripped, "}")
		if depth < 0 {
			depth = 0
		}
		if depth > m.MaxNesting {
			m.MaxNesting = depth
		}
	}

	m.Halstead = computeHalstead(len(uniqueOperators), len(uniqueOperands), totalOperators, totalOperands)
	m.MaintainabilityIndex = maintainabilityIndex(m.Halstead.Volume, m.Cyclomatic, m.CodeLines, m.CommentRatio())

	return m
}

// isCommentLine reports whether a stripped line is a full-line comment in
// any of the supported comment syntaxes.
func isCommentLine(stripped string) bool {
	return strings.HasPrefix(stripped, "//") ||
		strings.HasPrefix(stripped, "#") ||
		strings.HasPrefix(stripped, "/*") ||
		strings.HasPrefix(stripped, "*") ||
		strings.HasPrefix(stripped, "--")
}

// computeHalstead derives the Halstead set from operator/operand counts.
// Every measure stays zero unless both unique counts are positive.
func computeHalstead(n1, n2, total1, total2 int) Halstead {
	h := Halstead{
		Vocabulary: n1 + n2,
		Length:     total1 + total2,
	}
	if n1 == 0 || n2 == 0 {
		return Halstead{}
	}

	h.Volume = float64(h.Length) * math.Log2(float64(h.Vocabulary))
	h.Difficulty = (float64(n1) / 2) * (float64(total2) / float64(n2))
	h.Effort = h.Difficulty * h.Volume
	h.EstimatedBugs = h.Volume / 3000
	h.EstimatedTime = h.Effort / 18
	return h
}

// maintainabilityIndex is the classic 171-point linear formula normalized
// to 0-100, with a comment-ratio bonus.
func maintainabilityIndex(volume float64, cyclomatic, loc int, commentRatio float64) float64 {
	if loc == 0 {
		return 0
	}
	v := volume
	if v < 1 {
		v = 1
	}

	mi := (171 - 5.2*math.Log(v) - 0.23*float64(cyclomatic) - 16.2*math.Log(float64(loc))) * 100 / 171
	mi += 50 * math.Sin(math.Sqrt(2.4*commentRatio))

	return clamp(mi)
}

// clamp bounds a score to [0,100].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

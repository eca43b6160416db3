package metrics

import (
	"strings"
	"testing"
)

func TestCompute_Empty(t *testing.T) {
	m := Compute("")
	if m.TotalLines != 0 || m.CodeLines != 0 || m.Halstead.Volume != 0 {
		t.Errorf("expected zero metrics for empty content, got %+v", m)
	}
}

func TestCompute_LineCounts(t *testing.T) {
	src := "// comment\n\nx = 1\n# note\ny = 2\n"
	m := Compute(src)

	// Split on \n: 5 content lines plus the trailing empty line.
	if m.TotalLines != 6 {
		t.Errorf("TotalLines = %d, want 6", m.TotalLines)
	}
	if m.CommentLines != 2 {
		t.Errorf("CommentLines = %d, want 2", m.CommentLines)
	}
	if m.CodeLines != 2 {
		t.Errorf("CodeLines = %d, want 2", m.CodeLines)
	}
	if m.BlankLines != 2 {
		t.Errorf("BlankLines = %d, want 2", m.BlankLines)
	}

	// 2 comment lines over 4 comment+code lines.
	if got := m.CommentRatio(); got != 0.5 {
		t.Errorf("CommentRatio = %v, want 0.5", got)
	}
}

func TestCompute_BlockComment(t *testing.T) {
	src := "/*\n * docs\n */\nx = 1\n"
	m := Compute(src)

	if m.CommentLines != 3 {
		t.Errorf("CommentLines = %d, want 3", m.CommentLines)
	}
	if m.CodeLines != 1 {
		t.Errorf("CodeLines = %d, want 1", m.CodeLines)
	}
}

func TestCompute_Complexity(t *testing.T) {
	src := "if a > 0 {\n\tif b > 0 {\n\t\treturn 1\n\t}\n}\n"
	m := Compute(src)

	// Two branch keywords.
	if m.Cyclomatic != 2 {
		t.Errorf("Cyclomatic = %d, want 2", m.Cyclomatic)
	}
	// Both ifs sit at weight 1 (depth 0 and depth 1).
	if m.Cognitive != 2 {
		t.Errorf("Cognitive = %d, want 2", m.Cognitive)
	}
	if m.MaxNesting != 2 {
		t.Errorf("MaxNesting = %d, want 2", m.MaxNesting)
	}
}

func TestCompute_LogicalOperatorsAddCognitive(t *testing.T) {
	m := Compute("if a && b || c {\n}\n")

	if m.Cyclomatic != 1 {
		t.Errorf("Cyclomatic = %d, want 1", m.Cyclomatic)
	}
	// One branch at weight 1 plus two logical operators.
	if m.Cognitive != 3 {
		t.Errorf("Cognitive = %d, want 3", m.Cognitive)
	}
}

func TestCompute_HalsteadGuard(t *testing.T) {
	// Operands but no operators: every Halstead measure must stay zero.
	m := Compute("foo bar\nbaz qux\n")

	h := m.Halstead
	if h.Volume != 0 || h.Difficulty != 0 || h.Effort != 0 || h.EstimatedBugs != 0 {
		t.Errorf("expected zero Halstead set, got %+v", h)
	}
}

func TestCompute_HalsteadNonZero(t *testing.T) {
	m := Compute("x = a + b\ny = a - b\n")

	h := m.Halstead
	if h.Volume <= 0 {
		t.Errorf("Volume = %v, want > 0", h.Volume)
	}
	if h.Difficulty <= 0 {
		t.Errorf("Difficulty = %v, want > 0", h.Difficulty)
	}
	if h.Effort != h.Difficulty*h.Volume {
		t.Errorf("Effort = %v, want Difficulty*Volume = %v", h.Effort, h.Difficulty*h.Volume)
	}
}

func TestCompute_MaintainabilityClamped(t *testing.T) {
	// A pathological file: deep branching and huge volume must clamp to
	// [0,100], never go negative.
	src := strings.Repeat("if x > 10 { y = y + longVariableName * 37 }\n", 500)
	m := Compute(src)

	if m.MaintainabilityIndex < 0 || m.MaintainabilityIndex > 100 {
		t.Errorf("MaintainabilityIndex = %v, want within [0,100]", m.MaintainabilityIndex)
	}
}

func TestCompute_TinyFileHighMaintainability(t *testing.T) {
	m := Compute("x = 1\n")

	if m.MaintainabilityIndex < 80 {
		t.Errorf("MaintainabilityIndex = %v, want >= 80 for a trivial file", m.MaintainabilityIndex)
	}
}

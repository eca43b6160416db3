package metrics

import (
	"math"
	"strings"
	"testing"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestFold_EMA(t *testing.T) {
	var q QualityScoreSet
	perfect := QualityScoreSet{100, 100, 100, 100, 100, 100}

	// 0*0.7 + 100*0.3 = 30
	q.Fold(perfect, 0.3)
	approx(t, "Maintainability", q.Maintainability, 30)
	approx(t, "Testability", q.Testability, 30)

	// 30*0.7 + 100*0.3 = 51
	q.Fold(perfect, 0.3)
	approx(t, "Maintainability", q.Maintainability, 51)
}

func TestFold_OrderDependent(t *testing.T) {
	high := QualityScoreSet{Readability: 100}
	low := QualityScoreSet{Readability: 0}

	var a QualityScoreSet
	a.Fold(high, 0.3)
	a.Fold(low, 0.3) // 30*0.7 = 21

	var b QualityScoreSet
	b.Fold(low, 0.3)
	b.Fold(high, 0.3) // 0*0.7 + 30 = 30

	approx(t, "high-then-low", a.Readability, 21)
	approx(t, "low-then-high", b.Readability, 30)
}

func TestFold_Clamped(t *testing.T) {
	var q QualityScoreSet
	q.Fold(QualityScoreSet{Complexity: 100}, 1)
	q.Fold(QualityScoreSet{Complexity: 100}, 1)
	if q.Complexity != 100 {
		t.Errorf("Complexity = %v, want 100", q.Complexity)
	}
}

func TestPatternScore(t *testing.T) {
	if got := patternScore(PatternReport{}); got != 100 {
		t.Errorf("empty report = %v, want 100", got)
	}

	// 100 - 3*10 + 1*5 = 75
	p := PatternReport{
		AntiPatterns:   []string{"global_state", "bare_except"},
		PotentialBugs:  []string{"debug_print"},
		DesignPatterns: []string{"factory"},
	}
	if got := patternScore(p); got != 75 {
		t.Errorf("patternScore = %v, want 75", got)
	}

	// Floors at zero no matter how many hits.
	many := PatternReport{AntiPatterns: make([]string, 20)}
	if got := patternScore(many); got != 0 {
		t.Errorf("patternScore = %v, want 0", got)
	}
}

func TestScore_AllWithinBounds(t *testing.T) {
	src := strings.Repeat("if x > 10 { if y > 20 { z = eval(input) } }\n", 200)
	m := Compute(src)
	p := ScanPatterns(src)

	s := Score(m, p)
	for name, v := range map[string]float64{
		"Maintainability": s.Maintainability,
		"Readability":     s.Readability,
		"Complexity":      s.Complexity,
		"Documentation":   s.Documentation,
		"Reusability":     s.Reusability,
		"Testability":     s.Testability,
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s = %v, want within [0,100]", name, v)
		}
	}
}

package metrics

// QualityScoreSet holds the six 0-100 quality scores. Field values are
// always clamped to [0,100].
type QualityScoreSet struct {
	Maintainability float64 `json:"maintainability"`
	Readability     float64 `json:"readability"`
	Complexity      float64 `json:"complexity"`
	Documentation   float64 `json:"documentation"`
	Reusability     float64 `json:"reusability"`
	Testability     float64 `json:"testability"`
}

// DefaultAlpha is the EMA weight given to each new file's scores.
const DefaultAlpha = 0.3

// Fold updates the running project-level scores with one file's scores
// using an exponential moving average: new = old*(1-alpha) + score*alpha.
// The result depends on file processing order; callers that need an
// order-independent aggregate must switch to a commutative combiner.
func (q *QualityScoreSet) Fold(file QualityScoreSet, alpha float64) {
	q.Maintainability = ema(q.Maintainability, file.Maintainability, alpha)
	q.Readability = ema(q.Readability, file.Readability, alpha)
	q.Complexity = ema(q.Complexity, file.Complexity, alpha)
	q.Documentation = ema(q.Documentation, file.Documentation, alpha)
	q.Reusability = ema(q.Reusability, file.Reusability, alpha)
	q.Testability = ema(q.Testability, file.Testability, alpha)
}

func ema(old, new, alpha float64) float64 {
	return clamp(old*(1-alpha) + new*alpha)
}

// patternScore is a 0-100 measure of pattern hygiene: bad pattern hits
// subtract, design patterns add a little back.
func patternScore(p PatternReport) float64 {
	bad := len(p.AntiPatterns) + len(p.PotentialBugs) + len(p.StyleIssues)
	return clamp(100 - float64(bad)*10 + float64(len(p.DesignPatterns))*5)
}

// Score computes the six quality scores for one file from its metrics and
// smell report. Each formula is a documented weighted sum with capped
// penalties, clamped to [0,100].
func Score(m FileMetrics, p PatternReport) QualityScoreSet {
	return QualityScoreSet{
		Maintainability: maintainabilityScore(m, p),
		Readability:     readabilityScore(m, p),
		Complexity:      complexityScore(m, p),
		Documentation:   documentationScore(m, p),
		Reusability:     reusabilityScore(m, p),
		Testability:     testabilityScore(m, p),
	}
}

func maintainabilityScore(m FileMetrics, p PatternReport) float64 {
	score := m.MaintainabilityIndex*0.4 + patternScore(p)*0.25

	score += (100 - min(100, m.Halstead.Difficulty)) * 0.2
	score -= min(15, m.Halstead.Effort/1000*0.1)
	score -= min(25, float64(len(p.AntiPatterns))*6)
	score -= min(10, m.Halstead.Volume/1000*0.1)

	return clamp(score)
}

func readabilityScore(m FileMetrics, p PatternReport) float64 {
	score := 100.0

	score -= min(25, float64(m.Cyclomatic)*1.2)
	score -= min(15, float64(m.MaxNesting)*3)
	score += min(25, m.CommentRatio()*50)
	score -= min(20, float64(len(p.StyleIssues))*4)

	return clamp(score)
}

func complexityScore(m FileMetrics, p PatternReport) float64 {
	score := 100.0

	score -= min(25, float64(m.Cyclomatic)*1.8)
	score -= min(25, float64(m.Cognitive)*1.2)
	score -= min(15, float64(m.MaxNesting)*5)
	score -= min(15, float64(len(p.AntiPatterns))*4)

	return clamp(score)
}

func documentationScore(m FileMetrics, p PatternReport) float64 {
	score := min(40, m.CommentRatio()*80)

	// Comment markers that look like disabled code reduce documentation
	// value; real prose comments raise it.
	if m.CommentLines > 0 {
		score += min(30, float64(m.CommentLines)/float64(max(1, m.CodeLines))*60)
	}
	score -= min(15, float64(len(p.StyleIssues))*3)

	return clamp(score)
}

func reusabilityScore(m FileMetrics, p PatternReport) float64 {
	score := patternScore(p) * 0.35

	score += min(25, float64(len(p.DesignPatterns))*8)
	score += (100 - min(100, m.Halstead.Difficulty)) * 0.25
	score -= min(20, float64(len(p.PerformanceIssues))*5)

	return clamp(score)
}

func testabilityScore(m FileMetrics, p PatternReport) float64 {
	score := 100.0

	score -= min(25, float64(m.Cyclomatic)*1.5)
	score -= min(20, float64(m.Cognitive)*1.2)
	score -= min(20, float64(len(p.PotentialBugs))*8)
	score -= min(15, float64(len(p.SecurityIssues))*6)

	return clamp(score)
}

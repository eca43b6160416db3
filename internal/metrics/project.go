package metrics

// FileAlert records a file exceeding a length or complexity threshold.
type FileAlert struct {
	Path  string `json:"path"`
	Value int    `json:"value"`
}

// FunctionAlert records a function exceeding the length threshold.
type FunctionAlert struct {
	Path     string `json:"path"`
	Function string `json:"function"`
	Lines    int    `json:"lines"`
}

// CodeSmells aggregates smell findings across a project.
type CodeSmells struct {
	LongFunctions       []FunctionAlert `json:"long_functions"`
	LongFiles           []FileAlert     `json:"long_files"`
	HighComplexityFiles []FileAlert     `json:"high_complexity_files"`
	MagicNumberFiles    []FileAlert     `json:"magic_number_files"`
	CommentedCodeFiles  []FileAlert     `json:"commented_code_files"`
}

// ComplexitySummary holds project-wide complexity statistics.
type ComplexitySummary struct {
	TotalFunctions    int     `json:"total_functions"`
	AvgFunctionLength float64 `json:"avg_function_length"`
	MaxFunctionLength int     `json:"max_function_length"`
	MaxFileComplexity int     `json:"max_file_complexity"`
	MaxCognitive      int     `json:"max_cognitive"`
	CommentRatio      float64 `json:"comment_ratio"`
}

// ProjectMetrics is the aggregate over one analysis run. It is owned by a
// single run and must not be shared across concurrent scans.
type ProjectMetrics struct {
	TotalFiles   int            `json:"total_files"`
	TotalLines   int            `json:"total_lines"`
	FilesByExt   map[string]int `json:"files_by_ext"`
	LinesByExt   map[string]int `json:"lines_by_ext"`
	SkippedFiles int            `json:"skipped_files"`
	Warnings     []string       `json:"warnings,omitempty"`

	Smells     CodeSmells        `json:"smells"`
	Complexity ComplexitySummary `json:"complexity"`
	Scores     QualityScoreSet   `json:"scores"`

	// Alpha is the EMA weight used when folding file scores; zero means
	// DefaultAlpha.
	Alpha float64 `json:"-"`

	functionLengthSum int
	commentRatioSum   float64
	scoredFiles       int
}

// NewProjectMetrics returns an empty aggregate using the given EMA alpha.
func NewProjectMetrics(alpha float64) *ProjectMetrics {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	return &ProjectMetrics{
		FilesByExt: make(map[string]int),
		LinesByExt: make(map[string]int),
		Alpha:      alpha,
	}
}

// Thresholds above which files and functions are flagged as smells.
const (
	longFileLines     = 300
	longFunctionLines = 50
	highComplexity    = 20
	magicNumberMin    = 10
	commentedCodeMin  = 3
)

// AddFile folds one analyzed file into the aggregate.
func (pm *ProjectMetrics) AddFile(path, ext string, m FileMetrics, p PatternReport, functionLengths map[string]int, magicNumbers, commentedCode int) {
	pm.TotalFiles++
	pm.TotalLines += m.TotalLines
	pm.FilesByExt[ext]++
	pm.LinesByExt[ext] += m.TotalLines

	if m.TotalLines > longFileLines {
		pm.Smells.LongFiles = append(pm.Smells.LongFiles, FileAlert{Path: path, Value: m.TotalLines})
	}
	if m.Cyclomatic > highComplexity {
		pm.Smells.HighComplexityFiles = append(pm.Smells.HighComplexityFiles, FileAlert{Path: path, Value: m.Cyclomatic})
	}
	if magicNumbers >= magicNumberMin {
		pm.Smells.MagicNumberFiles = append(pm.Smells.MagicNumberFiles, FileAlert{Path: path, Value: magicNumbers})
	}
	if commentedCode >= commentedCodeMin {
		pm.Smells.CommentedCodeFiles = append(pm.Smells.CommentedCodeFiles, FileAlert{Path: path, Value: commentedCode})
	}

	for name, length := range functionLengths {
		pm.Complexity.TotalFunctions++
		pm.functionLengthSum += length
		if length > pm.Complexity.MaxFunctionLength {
			pm.Complexity.MaxFunctionLength = length
		}
		if length > longFunctionLines {
			pm.Smells.LongFunctions = append(pm.Smells.LongFunctions, FunctionAlert{Path: path, Function: name, Lines: length})
		}
	}
	if pm.Complexity.TotalFunctions > 0 {
		pm.Complexity.AvgFunctionLength = float64(pm.functionLengthSum) / float64(pm.Complexity.TotalFunctions)
	}

	if m.Cyclomatic > pm.Complexity.MaxFileComplexity {
		pm.Complexity.MaxFileComplexity = m.Cyclomatic
	}
	if m.Cognitive > pm.Complexity.MaxCognitive {
		pm.Complexity.MaxCognitive = m.Cognitive
	}

	pm.commentRatioSum += m.CommentRatio()
	pm.scoredFiles++
	pm.Complexity.CommentRatio = pm.commentRatioSum / float64(pm.scoredFiles)

	pm.Scores.Fold(Score(m, p), pm.Alpha)
}

// AddOther counts a non-source file toward the distribution without
// folding metrics.
func (pm *ProjectMetrics) AddOther(path, ext string, lines int) {
	pm.TotalFiles++
	pm.TotalLines += lines
	pm.FilesByExt[ext]++
	pm.LinesByExt[ext] += lines
}

// AddSkipped records an unreadable file: the file count still increments
// but the file contributes zero metrics.
func (pm *ProjectMetrics) AddSkipped(path string, reason string) {
	pm.TotalFiles++
	pm.SkippedFiles++
	pm.Warnings = append(pm.Warnings, path+": "+reason)
}

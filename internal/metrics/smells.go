package metrics

import "regexp"

// PatternReport classifies per-file smell scan results into named buckets.
type PatternReport struct {
	DesignPatterns    []string `json:"design_patterns"`
	AntiPatterns      []string `json:"anti_patterns"`
	StyleIssues       []string `json:"style_issues"`
	PotentialBugs     []string `json:"potential_bugs"`
	SecurityIssues    []string `json:"security_issues"`
	PerformanceIssues []string `json:"performance_issues"`
}

type smellCheck struct {
	name string
	re   *regexp.Regexp
}

// The smell checks are heuristic by design: they flag likely issues across
// language families without parsing, and false positives are tolerated
// because each hit only nudges a bounded score.
var (
	designChecks = []smellCheck{
		{"inheritance", regexp.MustCompile(`class\s+\w+\s*\(\s*\w+\s*\)\s*:|class\s+\w+\s+extends\s+\w+`)},
		{"decorator", regexp.MustCompile(`@\s*(?:classmethod|staticmethod|property|abstractmethod|Override|Component|Injectable)`)},
		{"factory", regexp.MustCompile(`\b(?:def|func|function)\s+[Nn]ew\w+|def\s+create_\w+`)},
		{"singleton", regexp.MustCompile(`@\s*singleton|_instance\s*=\s*None|sync\.Once`)},
		{"iterator", regexp.MustCompile(`def\s+__iter__|def\s+__next__|func\s+\(\w+ \*?\w+\)\s+Next\(`)},
		{"observer", regexp.MustCompile(`\b(?:def|func|function)\s+(?:notify|subscribe|unsubscribe)\b`)},
	}

	antiChecks = []smellCheck{
		{"global_state", regexp.MustCompile(`(?m)^\s*global\s+\w+`)},
		{"bare_except", regexp.MustCompile(`except\s*:|catch\s*\(\s*\)|catch\s*\{`)},
		{"infinite_loop", regexp.MustCompile(`while\s*\(\s*true\s*\)|while\s+True\s*:|for\s*\{`)},
		{"nested_conditionals", regexp.MustCompile(`(?s)(?:if|while|for)[^\n]*\n[^\n]*(?:if|while|for)[^\n]*\n[^\n]*(?:if|while|for)`)},
		{"debug_code", regexp.MustCompile(`(?i)print\s*\([^)]*\)\s*(?://|#).*debug`)},
	}

	styleChecks = []smellCheck{
		{"single_letter_vars", regexp.MustCompile(`(?m)^\s*(?:[ijkxyz])\s*:?=\s*\d+\s*$`)},
		{"long_lines", regexp.MustCompile(`(?m)^.{121,}$`)},
		{"string_concat_chain", regexp.MustCompile(`"[^"\n]*"\s*\+\s*\w+\s*\+\s*"`)},
	}

	bugChecks = []smellCheck{
		{"swallowed_exception", regexp.MustCompile(`except\s+\w+(?:\s+as\s+\w+)?\s*:\s*pass|catch\s*\([^)]*\)\s*\{\s*\}`)},
		{"debug_print", regexp.MustCompile(`\bprint\s*\(|console\.log\s*\(|fmt\.Println\s*\(`)},
		{"ignored_error", regexp.MustCompile(`(?m),\s*_\s*:?=\s*\w+[^\n]*\berr\b|_ = err`)},
	}

	securityChecks = []smellCheck{
		{"command_injection", regexp.MustCompile(`os\.system\s*\(|subprocess\.call\s*\(|exec\.Command\s*\([^)]*\+`)},
		{"code_execution", regexp.MustCompile(`\beval\s*\(|\bexec\s*\(`)},
		{"hardcoded_secrets", regexp.MustCompile(`(?i)(?:password|secret|apikey|api_key|token)\s*[:=]\s*["'][^"'\n]{4,}["']`)},
		{"weak_hash", regexp.MustCompile(`\b(?:md5|sha1)\s*[\.(]`)},
	}

	performanceChecks = []smellCheck{
		{"string_concat_in_loop", regexp.MustCompile(`(?s)for[^\n]*\n[^\n]*\+=\s*["']`)},
		{"index_loop", regexp.MustCompile(`for\s+.+\s+in\s+range\s*\(\s*len\s*\(`)},
		{"nested_conversions", regexp.MustCompile(`(?:list|set|dict)\(\s*(?:list|set|dict)\(`)},
	}

	magicNumberRe   = regexp.MustCompile(`\b\d{2,}\b`)
	commentedCodeRe = regexp.MustCompile(`(?m)^\s*(?:#|//)\s*(?:def |class |if |for |while |return |import |func |var |const )`)
)

// ScanPatterns runs every smell check against file content. Each bucket
// lists the names of the checks that hit at least once.
func ScanPatterns(content string) PatternReport {
	return PatternReport{
		DesignPatterns:    runChecks(content, designChecks),
		AntiPatterns:      runChecks(content, antiChecks),
		StyleIssues:       runChecks(content, styleChecks),
		PotentialBugs:     runChecks(content, bugChecks),
		SecurityIssues:    runChecks(content, securityChecks),
		PerformanceIssues: runChecks(content, performanceChecks),
	}
}

func runChecks(content string, checks []smellCheck) []string {
	var hits []string
	for _, c := range checks {
		if c.re.MatchString(content) {
			hits = append(hits, c.name)
		}
	}
	return hits
}

// MagicNumbers returns the count of multi-digit numeric literals, a rough
// magic-number signal. Two-digit round numbers still count; the score
// formulas cap their influence.
func MagicNumbers(content string) int {
	return len(magicNumberRe.FindAllString(content, -1))
}

// CommentedOutCode counts comment lines that look like disabled code.
func CommentedOutCode(content string) int {
	return len(commentedCodeRe.FindAllString(content, -1))
}

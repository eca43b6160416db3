package metrics

import (
	"slices"
	"testing"
)

func TestScanPatterns_Python(t *testing.T) {
	src := `class Config(Base):
    _instance = None

    def load(self):
        global counter
        try:
            print(self.path)
        except:
            pass
`
	p := ScanPatterns(src)

	if !slices.Contains(p.DesignPatterns, "inheritance") {
		t.Errorf("DesignPatterns = %v, want inheritance", p.DesignPatterns)
	}
	if !slices.Contains(p.DesignPatterns, "singleton") {
		t.Errorf("DesignPatterns = %v, want singleton", p.DesignPatterns)
	}
	if !slices.Contains(p.AntiPatterns, "global_state") {
		t.Errorf("AntiPatterns = %v, want global_state", p.AntiPatterns)
	}
	if !slices.Contains(p.AntiPatterns, "bare_except") {
		t.Errorf("AntiPatterns = %v, want bare_except", p.AntiPatterns)
	}
	if !slices.Contains(p.PotentialBugs, "debug_print") {
		t.Errorf("PotentialBugs = %v, want debug_print", p.PotentialBugs)
	}
}

func TestScanPatterns_Security(t *testing.T) {
	src := `password = "hunter22"
result = eval(user_input)
digest = md5(data)
`
	p := ScanPatterns(src)

	for _, want := range []string{"hardcoded_secrets", "code_execution", "weak_hash"} {
		if !slices.Contains(p.SecurityIssues, want) {
			t.Errorf("SecurityIssues = %v, want %s", p.SecurityIssues, want)
		}
	}
}

func TestScanPatterns_Performance(t *testing.T) {
	src := `for i in range(len(items)):
    out += "x"
`
	p := ScanPatterns(src)

	if !slices.Contains(p.PerformanceIssues, "index_loop") {
		t.Errorf("PerformanceIssues = %v, want index_loop", p.PerformanceIssues)
	}
	if !slices.Contains(p.PerformanceIssues, "string_concat_in_loop") {
		t.Errorf("PerformanceIssues = %v, want string_concat_in_loop", p.PerformanceIssues)
	}
}

func TestScanPatterns_CleanFile(t *testing.T) {
	p := ScanPatterns("x = 1\ny = 2\n")
	if len(p.AntiPatterns)+len(p.PotentialBugs)+len(p.SecurityIssues) != 0 {
		t.Errorf("expected no findings, got %+v", p)
	}
}

func TestMagicNumbers(t *testing.T) {
	// Single-digit literals are ignored; 42 and 137 count.
	if got := MagicNumbers("x = 42 + 137\ny = 5\n"); got != 2 {
		t.Errorf("MagicNumbers = %d, want 2", got)
	}
	if got := MagicNumbers(""); got != 0 {
		t.Errorf("MagicNumbers = %d, want 0", got)
	}
}

func TestCommentedOutCode(t *testing.T) {
	src := `# def old_handler():
#     return 1
// if legacy {
x = 1
# just a note
`
	if got := CommentedOutCode(src); got != 3 {
		t.Errorf("CommentedOutCode = %d, want 3", got)
	}
}

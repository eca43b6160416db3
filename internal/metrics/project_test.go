package metrics

import "testing"

func TestAddFile_Thresholds(t *testing.T) {
	pm := NewProjectMetrics(0)

	m := FileMetrics{TotalLines: 400, CodeLines: 350, Cyclomatic: 25, Cognitive: 30}
	fns := map[string]int{"big_handler": 60, "helper": 10}
	pm.AddFile("internal/big.go", ".go", m, PatternReport{}, fns, 12, 4)

	if pm.TotalFiles != 1 || pm.TotalLines != 400 {
		t.Errorf("TotalFiles=%d TotalLines=%d, want 1 and 400", pm.TotalFiles, pm.TotalLines)
	}
	if len(pm.Smells.LongFiles) != 1 || pm.Smells.LongFiles[0].Value != 400 {
		t.Errorf("LongFiles = %+v, want one entry with value 400", pm.Smells.LongFiles)
	}
	if len(pm.Smells.HighComplexityFiles) != 1 {
		t.Errorf("HighComplexityFiles = %+v, want one entry", pm.Smells.HighComplexityFiles)
	}
	if len(pm.Smells.LongFunctions) != 1 || pm.Smells.LongFunctions[0].Function != "big_handler" {
		t.Errorf("LongFunctions = %+v, want big_handler only", pm.Smells.LongFunctions)
	}
	if len(pm.Smells.MagicNumberFiles) != 1 {
		t.Errorf("MagicNumberFiles = %+v, want one entry", pm.Smells.MagicNumberFiles)
	}
	if len(pm.Smells.CommentedCodeFiles) != 1 {
		t.Errorf("CommentedCodeFiles = %+v, want one entry", pm.Smells.CommentedCodeFiles)
	}

	if pm.Complexity.TotalFunctions != 2 {
		t.Errorf("TotalFunctions = %d, want 2", pm.Complexity.TotalFunctions)
	}
	// (60+10)/2 = 35
	if pm.Complexity.AvgFunctionLength != 35 {
		t.Errorf("AvgFunctionLength = %v, want 35", pm.Complexity.AvgFunctionLength)
	}
	if pm.Complexity.MaxFunctionLength != 60 {
		t.Errorf("MaxFunctionLength = %d, want 60", pm.Complexity.MaxFunctionLength)
	}
	if pm.Complexity.MaxFileComplexity != 25 || pm.Complexity.MaxCognitive != 30 {
		t.Errorf("MaxFileComplexity=%d MaxCognitive=%d, want 25 and 30", pm.Complexity.MaxFileComplexity, pm.Complexity.MaxCognitive)
	}
	if pm.FilesByExt[".go"] != 1 || pm.LinesByExt[".go"] != 400 {
		t.Errorf("FilesByExt=%v LinesByExt=%v", pm.FilesByExt, pm.LinesByExt)
	}
}

func TestAddFile_UnderThresholdsClean(t *testing.T) {
	pm := NewProjectMetrics(0)
	pm.AddFile("small.py", ".py", FileMetrics{TotalLines: 50, CodeLines: 40, Cyclomatic: 3}, PatternReport{}, map[string]int{"f": 12}, 2, 1)

	s := pm.Smells
	if len(s.LongFiles)+len(s.LongFunctions)+len(s.HighComplexityFiles)+len(s.MagicNumberFiles)+len(s.CommentedCodeFiles) != 0 {
		t.Errorf("expected no smells, got %+v", s)
	}
}

func TestAddOther(t *testing.T) {
	pm := NewProjectMetrics(0)
	pm.AddOther("README.md", ".md", 80)

	if pm.TotalFiles != 1 || pm.TotalLines != 80 {
		t.Errorf("TotalFiles=%d TotalLines=%d, want 1 and 80", pm.TotalFiles, pm.TotalLines)
	}
	if pm.LinesByExt[".md"] != 80 {
		t.Errorf("LinesByExt = %v, want 80 for .md", pm.LinesByExt)
	}
	// Non-source files never contribute scores.
	if pm.Scores != (QualityScoreSet{}) {
		t.Errorf("Scores = %+v, want zero", pm.Scores)
	}
}

func TestAddSkipped(t *testing.T) {
	pm := NewProjectMetrics(0)
	pm.AddSkipped("assets/blob.bin", "binary or undecodable content")

	if pm.TotalFiles != 1 || pm.SkippedFiles != 1 {
		t.Errorf("TotalFiles=%d SkippedFiles=%d, want 1 and 1", pm.TotalFiles, pm.SkippedFiles)
	}
	if len(pm.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want one entry", pm.Warnings)
	}
}

func TestNewProjectMetrics_AlphaDefault(t *testing.T) {
	if pm := NewProjectMetrics(0); pm.Alpha != DefaultAlpha {
		t.Errorf("Alpha = %v, want %v", pm.Alpha, DefaultAlpha)
	}
	if pm := NewProjectMetrics(0.5); pm.Alpha != 0.5 {
		t.Errorf("Alpha = %v, want 0.5", pm.Alpha)
	}
}

package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/analyzer"
	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Extract structure and compute quality metrics",
	Long: `Walk a project tree, extract imports, types and functions from every
source file, and compute complexity and quality metrics. Per-file scores
fold into six project-level quality scores. Unreadable or binary files
are skipped with a warning and never abort the run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

// newAnalyzer builds an Analyzer from config.
func newAnalyzer(cfg *config.Config) *analyzer.Analyzer {
	return analyzer.New(analyzer.Options{
		IgnoredDirs:  cfg.IgnoredDirs,
		IgnoredFiles: cfg.IgnoredFiles,
		Alpha:        cfg.ScoreAlpha,
		Lengths: analyzer.LengthThresholds{
			Limit:    cfg.FileLength.Limit,
			Warning:  cfg.FileLength.Warning,
			Critical: cfg.FileLength.Critical,
			Severe:   cfg.FileLength.Severe,
		},
		Verbose: flagVerbose,
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	res, err := newAnalyzer(cfg).Analyze(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", path, err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	renderAnalysis(res)
	return nil
}

func renderAnalysis(res *analyzer.Result) {
	pm := res.Metrics

	fmt.Println(output.Section("Analysis: " + res.Root))
	fmt.Println()
	fmt.Printf(" %s %d\n", output.StyleLabel.Render("Files analyzed"), len(res.Files))
	fmt.Printf(" %s %d\n", output.StyleLabel.Render("Total lines"), pm.TotalLines)
	fmt.Printf(" %s %d\n", output.StyleLabel.Render("Functions"), pm.Complexity.TotalFunctions)
	fmt.Printf(" %s %.1f\n", output.StyleLabel.Render("Avg function length"), pm.Complexity.AvgFunctionLength)
	fmt.Printf(" %s %d\n", output.StyleLabel.Render("Max cyclomatic"), pm.Complexity.MaxFileComplexity)
	fmt.Printf(" %s %.1f%%\n", output.StyleLabel.Render("Comment ratio"), pm.Complexity.CommentRatio*100)
	if pm.SkippedFiles > 0 {
		fmt.Printf(" %s %d\n", output.StyleLabel.Render("Skipped files"), pm.SkippedFiles)
	}

	fmt.Println(output.Section("Quality Scores"))
	fmt.Println()
	for _, row := range []struct {
		name  string
		value float64
	}{
		{"Maintainability", pm.Scores.Maintainability},
		{"Readability", pm.Scores.Readability},
		{"Complexity", pm.Scores.Complexity},
		{"Documentation", pm.Scores.Documentation},
		{"Reusability", pm.Scores.Reusability},
		{"Testability", pm.Scores.Testability},
	} {
		fmt.Printf(" %s %s\n", output.StyleLabel.Render(row.name), output.ScoreBar(row.value, 20))
	}

	renderDistribution(pm.FilesByExt, pm.LinesByExt)
	renderSmells(res)

	if len(res.Suggestions) > 0 {
		fmt.Println(output.Section("Suggestions"))
		fmt.Println()
		for _, s := range res.Suggestions {
			fmt.Printf(" • %s\n", s)
		}
	}

	if flagVerbose && len(pm.Warnings) > 0 {
		fmt.Println(output.Section("Warnings"))
		fmt.Println()
		for _, w := range pm.Warnings {
			fmt.Printf(" %s\n", output.StyleMuted.Render(w))
		}
	}
	fmt.Println()
}

func renderDistribution(filesByExt, linesByExt map[string]int) {
	if len(filesByExt) == 0 {
		return
	}
	exts := make([]string, 0, len(filesByExt))
	for ext := range filesByExt {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		if filesByExt[exts[i]] != filesByExt[exts[j]] {
			return filesByExt[exts[i]] > filesByExt[exts[j]]
		}
		return exts[i] < exts[j]
	})

	fmt.Println(output.Section("File Distribution"))
	fmt.Println()
	tbl := output.NewTable("Extension", "Files", "Lines")
	for _, ext := range exts {
		label := ext
		if label == "" {
			label = "(none)"
		}
		tbl.AddRow(label, fmt.Sprintf("%d", filesByExt[ext]), fmt.Sprintf("%d", linesByExt[ext]))
	}
	tbl.Print()
}

func renderSmells(res *analyzer.Result) {
	smells := res.Metrics.Smells
	total := len(smells.LongFunctions) + len(smells.LongFiles) +
		len(smells.HighComplexityFiles) + len(smells.MagicNumberFiles) +
		len(smells.CommentedCodeFiles)
	if total == 0 {
		return
	}

	fmt.Println(output.Section(fmt.Sprintf("Code Smells (%d)", total)))
	fmt.Println()
	for _, fn := range smells.LongFunctions {
		fmt.Printf(" %s long function %q in %s (%d lines)\n",
			output.StyleWarning.Render("⚠"), fn.Function, fn.Path, fn.Lines)
	}
	for _, f := range smells.LongFiles {
		fmt.Printf(" %s long file %s (%d lines)\n",
			output.StyleWarning.Render("⚠"), f.Path, f.Value)
	}
	for _, f := range smells.HighComplexityFiles {
		fmt.Printf(" %s high complexity in %s (cyclomatic %d)\n",
			output.StyleError.Render("✗"), f.Path, f.Value)
	}
	for _, f := range smells.MagicNumberFiles {
		fmt.Printf(" %s magic numbers in %s (%d occurrences)\n",
			output.StyleWarning.Render("⚠"), f.Path, f.Value)
	}
	for _, f := range smells.CommentedCodeFiles {
		fmt.Printf(" %s commented-out code in %s (%d blocks)\n",
			output.StyleMuted.Render("·"), f.Path, f.Value)
	}
}

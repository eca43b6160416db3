package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/output"
)

var reportOut string

var reportCmd = &cobra.Command{
	Use:   "report [path]",
	Short: "Write a markdown project report",
	Long: `Classify and analyze a project, then write a markdown report with the
project overview, an annotated directory tree, metrics, quality scores,
file distribution, code smells and suggestions.

By default the report is written to RepoLens.md inside the project; use
--out to choose another file, or "-" for stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportOut, "out", "", `Output file (default: <path>/RepoLens.md, "-" for stdout)`)
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	det, err := newDetector(cfg)
	if err != nil {
		return err
	}
	detection := det.Detect(abs, false)

	res, err := newAnalyzer(cfg).Analyze(cmd.Context(), abs)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", abs, err)
	}

	data := output.ReportData{
		Name:        filepath.Base(abs),
		Detection:   detection,
		Result:      res,
		GeneratedAt: time.Now(),
	}

	if reportOut == "-" {
		return output.WriteMarkdown(os.Stdout, data)
	}

	dest := reportOut
	if dest == "" {
		dest = filepath.Join(abs, "RepoLens.md")
	}
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer f.Close()

	if err := output.WriteMarkdown(f, data); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Printf("Report written to %s\n", dest)
	return nil
}

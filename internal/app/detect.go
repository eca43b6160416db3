package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/repolens/repolens/internal/detector"
	"github.com/repolens/repolens/internal/output"
)

var detectNoCache bool

var detectCmd = &cobra.Command{
	Use:   "detect [path...]",
	Short: "Classify project type, language and framework",
	Long: `Classify one or more directories. Each path is scored against the
project-type rules (manifest indicators, file patterns, content probes);
the highest-priority matching rule wins. Language and framework are
resolved independently by weighted file evidence.

Results are cached briefly; use --no-cache to force a fresh pass.`,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().BoolVar(&detectNoCache, "no-cache", false, "Bypass the detection cache")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	det, err := newDetector(cfg)
	if err != nil {
		return err
	}

	// Each root classifies independently, so fan out.
	results := make([]detector.DetectionResult, len(paths))
	var g errgroup.Group
	for i, p := range paths {
		g.Go(func() error {
			results[i] = det.Detect(p, detectNoCache)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Println(output.Section("Detection"))
	fmt.Println()
	tbl := output.NewTable("Path", "Type", "Language", "Framework", "Matched")
	for _, res := range results {
		tbl.AddRow(res.Path, res.Type, res.Language, res.Framework,
			strings.Join(res.MatchedFiles, ", "))
	}
	tbl.Print()
	return nil
}

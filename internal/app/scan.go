package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/detector"
	"github.com/repolens/repolens/internal/output"
)

var scanDepth int

var scanCmd = &cobra.Command{
	Use:   "scan [root...]",
	Short: "Discover projects under a directory tree",
	Long: `Walk each root looking for project directories. A directory that
classifies as a concrete project type is reported with its name recovered
from the manifest; generic directories are searched deeper, down to
--depth levels. With no arguments the configured scan paths are used.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanDepth, "depth", 0, "Max directory depth to search (default: from config)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	roots := args
	if len(roots) == 0 {
		roots = cfg.ScanPaths
	}
	if len(roots) == 0 {
		roots = []string{"."}
	}

	depth := scanDepth
	if depth <= 0 {
		depth = cfg.MaxDepth
	}

	det, err := newDetector(cfg)
	if err != nil {
		return err
	}

	var projects []detector.ScannedProject
	for _, root := range roots {
		projects = append(projects, det.ScanForProjects(root, depth)...)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(projects)
	}

	fmt.Println(output.Section(fmt.Sprintf("Projects (%d found)", len(projects))))
	fmt.Println()
	if len(projects) == 0 {
		fmt.Println(" No projects found.")
		return nil
	}

	tbl := output.NewTable("Name", "Type", "Language", "Framework", "Path")
	for _, p := range projects {
		tbl.AddRow(p.Name, p.Type, p.Language, p.Framework, p.Path)
	}
	tbl.Print()
	return nil
}

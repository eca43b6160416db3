package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/internal/analyzer"
	"github.com/repolens/repolens/internal/config"
	"github.com/repolens/repolens/internal/detector"
	"github.com/repolens/repolens/internal/output"
	"github.com/repolens/repolens/internal/store"
)

var trackHistory int

var trackCmd = &cobra.Command{
	Use:   "track [path]",
	Short: "Snapshot quality scores and compare over time",
	Long: `Analyze a project, store a new snapshot in the local database, and
compare against the previous snapshot for the same project to show score
movement with trend arrows.

With --history N, show the N most recent snapshots instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().IntVar(&trackHistory, "history", 0, "Show the N most recent snapshots for this project")
	rootCmd.AddCommand(trackCmd)
}

func runTrack(cmd *cobra.Command, args []string) error {
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

	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if trackHistory > 0 {
		return renderTrackHistory(db, abs, trackHistory)
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

	// The previous snapshot must be read before saving the new one.
	prev, err := db.LatestForProject(abs)
	if err != nil {
		return fmt.Errorf("loading previous snapshot: %w", err)
	}

	current := buildSnapshot(abs, detection, res)
	id, err := db.SaveSnapshot(current)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	current.ID = id

	if flagJSON {
		out := map[string]any{"snapshot": current}
		if prev != nil {
			out["previous"] = prev
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	renderTrackOutput(current, prev)
	return nil
}

// buildSnapshot flattens a detection and an analysis into a store record.
func buildSnapshot(abs string, detection detector.DetectionResult, res *analyzer.Result) *store.Snapshot {
	pm := res.Metrics
	return &store.Snapshot{
		TakenAt:        time.Now().UTC(),
		ProjectPath:    abs,
		ProjectName:    filepath.Base(abs),
		ProjectType:    detection.Type,
		Language:       detection.Language,
		Framework:      detection.Framework,
		Version:        appVersion,
		TotalFiles:     pm.TotalFiles,
		TotalLines:     pm.TotalLines,
		SkippedFiles:   pm.SkippedFiles,
		TotalFunctions: pm.Complexity.TotalFunctions,
		MaxComplexity:  pm.Complexity.MaxFileComplexity,
		CommentRatio:   pm.Complexity.CommentRatio,
		Scores:         pm.Scores,
	}
}

type scoreRow struct {
	Name  string
	Value float64
}

// scoreRows lists the tracked score fields in display order.
func scoreRows(s *store.Snapshot) []scoreRow {
	return []scoreRow{
		{"Maintainability", s.Scores.Maintainability},
		{"Readability", s.Scores.Readability},
		{"Complexity", s.Scores.Complexity},
		{"Documentation", s.Scores.Documentation},
		{"Reusability", s.Scores.Reusability},
		{"Testability", s.Scores.Testability},
	}
}

func renderTrackOutput(current, prev *store.Snapshot) {
	fmt.Println(output.Section("Track: " + current.ProjectName))
	fmt.Println()
	fmt.Printf(" Snapshot #%d taken at %s\n\n", current.ID, current.TakenAt.Format("2006-01-02 15:04:05"))

	if prev == nil {
		fmt.Println(" First snapshot recorded. Run 'repolens track' again later to see trends.")
		return
	}

	fmt.Printf(" Comparing against snapshot #%d (%s)\n\n",
		prev.ID, prev.TakenAt.Format("2006-01-02 15:04:05"))

	prevRows := scoreRows(prev)
	tbl := output.NewTable("Score", "Previous", "Current", "Trend")
	for i, row := range scoreRows(current) {
		delta := row.Value - prevRows[i].Value
		tbl.AddRow(
			row.Name,
			fmt.Sprintf("%.1f", prevRows[i].Value),
			fmt.Sprintf("%.1f", row.Value),
			output.TrendArrow(delta, true),
		)
	}
	tbl.AddRow("Total lines",
		fmt.Sprintf("%d", prev.TotalLines),
		fmt.Sprintf("%d", current.TotalLines),
		output.TrendArrow(float64(current.TotalLines-prev.TotalLines), true))
	tbl.AddRow("Max cyclomatic",
		fmt.Sprintf("%d", prev.MaxComplexity),
		fmt.Sprintf("%d", current.MaxComplexity),
		output.TrendArrow(float64(current.MaxComplexity-prev.MaxComplexity), false))
	tbl.Print()
}

// renderTrackHistory shows the recent snapshot timeline for one project.
func renderTrackHistory(db *store.DB, abs string, n int) error {
	snapshots, err := db.HistoryForProject(abs, n)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	if len(snapshots) == 0 {
		fmt.Println(" No snapshots found. Run 'repolens track' to create one.")
		return nil
	}

	// Reverse so oldest is first (left to right = chronological).
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"history": snapshots})
	}

	fmt.Println(output.Section("Track: Score History"))
	fmt.Println()
	fmt.Printf(" Showing %d snapshots for %s\n\n", len(snapshots), abs)

	tbl := output.NewTable("Snapshot", "Date", "Maint", "Read", "Cmplx", "Doc", "Reuse", "Test", "Lines")
	for _, s := range snapshots {
		tbl.AddRow(
			fmt.Sprintf("#%d", s.ID),
			s.TakenAt.Format("Jan 02 15:04"),
			fmt.Sprintf("%.0f", s.Scores.Maintainability),
			fmt.Sprintf("%.0f", s.Scores.Readability),
			fmt.Sprintf("%.0f", s.Scores.Complexity),
			fmt.Sprintf("%.0f", s.Scores.Documentation),
			fmt.Sprintf("%.0f", s.Scores.Reusability),
			fmt.Sprintf("%.0f", s.Scores.Testability),
			fmt.Sprintf("%d", s.TotalLines),
		)
	}
	tbl.Print()

	if len(snapshots) >= 2 {
		first, last := snapshots[0], snapshots[len(snapshots)-1]
		fmt.Println()
		fmt.Printf(" Maintainability over period: %s\n",
			output.TrendArrow(last.Scores.Maintainability-first.Scores.Maintainability, true))
	}
	return nil
}

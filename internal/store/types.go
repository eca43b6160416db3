// Package store provides SQLite persistence for repolens analysis
// snapshots, so score movement can be tracked across runs.
package store

import (
	"time"

	"github.com/repolens/repolens/internal/metrics"
)

// Snapshot is one persisted analysis run for a project.
type Snapshot struct {
	ID          int64     `json:"id"`
	TakenAt     time.Time `json:"taken_at"`
	ProjectPath string    `json:"project_path"`
	ProjectName string    `json:"project_name"`
	ProjectType string    `json:"project_type"`
	Language    string    `json:"language"`
	Framework   string    `json:"framework"`
	Version     string    `json:"version"`

	TotalFiles     int     `json:"total_files"`
	TotalLines     int     `json:"total_lines"`
	SkippedFiles   int     `json:"skipped_files"`
	TotalFunctions int     `json:"total_functions"`
	MaxComplexity  int     `json:"max_complexity"`
	CommentRatio   float64 `json:"comment_ratio"`

	Scores metrics.QualityScoreSet `json:"scores"`
}

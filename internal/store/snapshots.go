package store

import (
	"database/sql"
	"time"
)

// SaveSnapshot persists one analysis run inside a transaction and returns
// its ID. The TakenAt field is overwritten with the current UTC time when
// zero.
func (db *DB) SaveSnapshot(s *Snapshot) (int64, error) {
	takenAt := s.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now().UTC()
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO snapshots
		(taken_at, project_path, project_name, project_type, language, framework, version)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		takenAt.Format(time.RFC3339), s.ProjectPath, s.ProjectName, s.ProjectType,
		s.Language, s.Framework, s.Version,
	)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(
		`INSERT INTO snapshot_metrics
		(snapshot_id, total_files, total_lines, skipped_files, total_functions,
		 max_complexity, comment_ratio, maintainability, readability, complexity,
		 documentation, reusability, testability)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, s.TotalFiles, s.TotalLines, s.SkippedFiles, s.TotalFunctions,
		s.MaxComplexity, s.CommentRatio, s.Scores.Maintainability,
		s.Scores.Readability, s.Scores.Complexity, s.Scores.Documentation,
		s.Scores.Reusability, s.Scores.Testability,
	); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

const snapshotColumns = `s.id, s.taken_at, s.project_path, s.project_name,
	s.project_type, s.language, s.framework, s.version,
	m.total_files, m.total_lines, m.skipped_files, m.total_functions,
	m.max_complexity, m.comment_ratio, m.maintainability, m.readability,
	m.complexity, m.documentation, m.reusability, m.testability`

// LatestForProject returns the most recent snapshot for a project path, or
// nil if none exist.
func (db *DB) LatestForProject(projectPath string) (*Snapshot, error) {
	row := db.conn.QueryRow(
		`SELECT `+snapshotColumns+`
		FROM snapshots s JOIN snapshot_metrics m ON m.snapshot_id = s.id
		WHERE s.project_path = ? ORDER BY s.id DESC LIMIT 1`,
		projectPath,
	)
	return scanSnapshot(row)
}

// PreviousForProject returns the second most recent snapshot for a project
// path, or nil if fewer than two exist.
func (db *DB) PreviousForProject(projectPath string) (*Snapshot, error) {
	row := db.conn.QueryRow(
		`SELECT `+snapshotColumns+`
		FROM snapshots s JOIN snapshot_metrics m ON m.snapshot_id = s.id
		WHERE s.project_path = ? ORDER BY s.id DESC LIMIT 1 OFFSET 1`,
		projectPath,
	)
	return scanSnapshot(row)
}

// HistoryForProject returns up to limit snapshots for a project path,
// newest first.
func (db *DB) HistoryForProject(projectPath string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.conn.Query(
		`SELECT `+snapshotColumns+`
		FROM snapshots s JOIN snapshot_metrics m ON m.snapshot_id = s.id
		WHERE s.project_path = ? ORDER BY s.id DESC LIMIT ?`,
		projectPath, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		s, err := scanSnapshotRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// Projects returns the distinct project paths with at least one snapshot.
func (db *DB) Projects() ([]string, error) {
	rows, err := db.conn.Query("SELECT DISTINCT project_path FROM snapshots ORDER BY project_path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	s, err := scanSnapshotRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

func scanSnapshotRow(row rowScanner) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	err := row.Scan(&s.ID, &takenAt, &s.ProjectPath, &s.ProjectName,
		&s.ProjectType, &s.Language, &s.Framework, &s.Version,
		&s.TotalFiles, &s.TotalLines, &s.SkippedFiles, &s.TotalFunctions,
		&s.MaxComplexity, &s.CommentRatio, &s.Scores.Maintainability,
		&s.Scores.Readability, &s.Scores.Complexity, &s.Scores.Documentation,
		&s.Scores.Reusability, &s.Scores.Testability)
	if err != nil {
		return nil, err
	}
	s.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	return &s, nil
}

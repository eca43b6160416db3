package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at     TEXT NOT NULL,
			project_path TEXT NOT NULL,
			project_name TEXT NOT NULL,
			project_type TEXT NOT NULL,
			language     TEXT NOT NULL,
			framework    TEXT NOT NULL,
			version      TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS snapshot_metrics (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id     INTEGER NOT NULL REFERENCES snapshots(id),
			total_files     INTEGER NOT NULL,
			total_lines     INTEGER NOT NULL,
			skipped_files   INTEGER NOT NULL,
			total_functions INTEGER NOT NULL,
			max_complexity  INTEGER NOT NULL,
			comment_ratio   REAL NOT NULL,
			maintainability REAL NOT NULL,
			readability     REAL NOT NULL,
			complexity      REAL NOT NULL,
			documentation   REAL NOT NULL,
			reusability     REAL NOT NULL,
			testability     REAL NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_snapshots_project ON snapshots(project_path)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshot_metrics_snapshot ON snapshot_metrics(snapshot_id)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}

package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repolens/repolens/internal/metrics"
)

func testSnapshot(path string, takenAt time.Time, maint float64) *Snapshot {
	return &Snapshot{
		TakenAt:        takenAt,
		ProjectPath:    path,
		ProjectName:    "demo",
		ProjectType:    "python",
		Language:       "python",
		Framework:      "django",
		Version:        "0.3.0",
		TotalFiles:     42,
		TotalLines:     9001,
		SkippedFiles:   1,
		TotalFunctions: 120,
		MaxComplexity:  17,
		CommentRatio:   0.12,
		Scores: metrics.QualityScoreSet{
			Maintainability: maint,
			Readability:     80,
			Complexity:      75,
			Documentation:   60,
			Reusability:     70,
			Testability:     65,
		},
	}
}

func TestSaveAndLoadSnapshot(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	takenAt := time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC)
	id, err := db.SaveSnapshot(testSnapshot("/home/dev/demo", takenAt, 72.5))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := db.LatestForProject("/home/dev/demo")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, takenAt, got.TakenAt)
	assert.Equal(t, "demo", got.ProjectName)
	assert.Equal(t, "python", got.ProjectType)
	assert.Equal(t, "django", got.Framework)
	assert.Equal(t, 42, got.TotalFiles)
	assert.Equal(t, 9001, got.TotalLines)
	assert.Equal(t, 17, got.MaxComplexity)
	assert.InDelta(t, 0.12, got.CommentRatio, 1e-9)
	assert.InDelta(t, 72.5, got.Scores.Maintainability, 1e-9)
	assert.InDelta(t, 65, got.Scores.Testability, 1e-9)
}

func TestSaveSnapshot_DefaultsTakenAt(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	s := testSnapshot("/p", time.Time{}, 50)
	_, err = db.SaveSnapshot(s)
	require.NoError(t, err)

	got, err := db.LatestForProject("/p")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.TakenAt.IsZero())
	assert.WithinDuration(t, time.Now().UTC(), got.TakenAt, time.Minute)
}

func TestLatestAndPrevious(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		_, err := db.SaveSnapshot(testSnapshot("/p", base.AddDate(0, 0, i), float64(50+i*10)))
		require.NoError(t, err)
	}

	latest, err := db.LatestForProject("/p")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.InDelta(t, 70, latest.Scores.Maintainability, 1e-9)

	prev, err := db.PreviousForProject("/p")
	require.NoError(t, err)
	require.NotNil(t, prev)
	assert.InDelta(t, 60, prev.Scores.Maintainability, 1e-9)
}

func TestLatestForProject_NoRows(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	got, err := db.LatestForProject("/missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	prev, err := db.PreviousForProject("/missing")
	require.NoError(t, err)
	assert.Nil(t, prev)
}

func TestHistoryForProject(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := range 15 {
		_, err := db.SaveSnapshot(testSnapshot("/p", base.AddDate(0, 0, i), float64(i)))
		require.NoError(t, err)
	}

	// Default limit is 10, newest first.
	hist, err := db.HistoryForProject("/p", 0)
	require.NoError(t, err)
	require.Len(t, hist, 10)
	assert.InDelta(t, 14, hist[0].Scores.Maintainability, 1e-9)
	assert.InDelta(t, 5, hist[9].Scores.Maintainability, 1e-9)

	hist, err = db.HistoryForProject("/p", 3)
	require.NoError(t, err)
	assert.Len(t, hist, 3)
}

func TestProjects(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	for _, p := range []string{"/b", "/a", "/b"} {
		_, err := db.SaveSnapshot(testSnapshot(p, time.Time{}, 50))
		require.NoError(t, err)
	}

	got, err := db.Projects()
	require.NoError(t, err)
	assert.Equal(t, []string{"/a", "/b"}, got)
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	// OpenInMemory already migrated; a second run must be a no-op.
	require.NoError(t, db.Migrate())

	var n int
	err = db.Conn().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSnapshotIsolationPerProject(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	for i := range 2 {
		_, err := db.SaveSnapshot(testSnapshot(fmt.Sprintf("/proj-%d", i), time.Time{}, 50))
		require.NoError(t, err)
	}

	hist, err := db.HistoryForProject("/proj-0", 0)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

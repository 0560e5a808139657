package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"hoopscout/pkg/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "hoopscout.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.Migrate(); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return db
}

func TestOpen_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("parent directory not created: %v", err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testDB(t)
	// A second pass must be a no-op.
	if err := db.Migrate(); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	var version int
	row := db.QueryRow("SELECT MAX(version) FROM schema_version")
	if err := row.Scan(&version); err != nil {
		t.Fatalf("read schema version: %v", err)
	}
	if version != 2 {
		t.Errorf("schema version = %d, want 2", version)
	}
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	want := filepath.Join("/tmp/xdg-data", "hoopscout", "hoopscout.db")
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestPurgeOldRuns(t *testing.T) {
	db := testDB(t)

	old := &models.Run{
		ID:        "old-run",
		Model:     "claude-sonnet-4-5",
		Status:    models.RunStatusCompleted,
		StartedAt: time.Now().Add(-60 * 24 * time.Hour),
	}
	recent := &models.Run{
		ID:        "recent-run",
		Model:     "claude-sonnet-4-5",
		Status:    models.RunStatusCompleted,
		StartedAt: time.Now().Add(-time.Hour),
	}
	for _, r := range []*models.Run{old, recent} {
		if err := db.CreateRun(r); err != nil {
			t.Fatalf("CreateRun(%s) error = %v", r.ID, err)
		}
	}

	n, err := db.PurgeOldRuns(30 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("PurgeOldRuns() error = %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d runs, want 1", n)
	}

	if r, _ := db.GetRun("old-run"); r != nil {
		t.Error("old run should be gone")
	}
	if r, _ := db.GetRun("recent-run"); r == nil {
		t.Error("recent run should survive")
	}
}

func TestPurgeOldRuns_CascadesTaskResults(t *testing.T) {
	db := testDB(t)

	run := &models.Run{
		ID:        "doomed",
		Model:     "claude-sonnet-4-5",
		Status:    models.RunStatusFailed,
		StartedAt: time.Now().Add(-60 * 24 * time.Hour),
	}
	if err := db.CreateRun(run); err != nil {
		t.Fatal(err)
	}
	rec := &models.TaskRecord{
		RunID:     "doomed",
		Name:      "market_research",
		Position:  0,
		AgentRole: "Market Research Analyst",
		State:     models.TaskStateDone,
	}
	if err := db.SaveTaskResult(rec); err != nil {
		t.Fatal(err)
	}

	if _, err := db.PurgeOldRuns(30 * 24 * time.Hour); err != nil {
		t.Fatal(err)
	}

	records, err := db.ListTaskResults("doomed")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("task results survived the cascade: %d rows", len(records))
	}
}

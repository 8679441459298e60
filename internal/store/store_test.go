package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().Truncate(time.Millisecond)
	saved := &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			AppVersion: "v1.2.0",
			Units: []UnitRecord{
				{UnitID: 1, DrillDone: true, AddToArsenalDone: true, IsUnlocked: true},
				{UnitID: 2, DrillDone: true, ProgressionSessionsDone: 1},
			},
		},
	}
	if err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == 0 {
		t.Error("expected Save to set the snapshot id")
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if !snap.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", snap.Timestamp, now)
	}
	if snap.Data.Version != CurrentSchemaVersion {
		t.Errorf("version = %d, want %d", snap.Data.Version, CurrentSchemaVersion)
	}
	if snap.Data.AppVersion != "v1.2.0" {
		t.Errorf("app version = %q, want v1.2.0", snap.Data.AppVersion)
	}
	if len(snap.Data.Units) != 2 {
		t.Fatalf("units = %d, want 2", len(snap.Data.Units))
	}
	if snap.Data.Units[0] != saved.Data.Units[0] || snap.Data.Units[1] != saved.Data.Units[1] {
		t.Errorf("units = %+v, want %+v", snap.Data.Units, saved.Data.Units)
	}
}

func TestLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now()
	for i := 1; i <= 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i * 10),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 30 {
		t.Errorf("sequence = %d, want 30", snap.Sequence)
	}
}

func TestLatestCorruptSnapshot(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	_, err := s.DB().Exec(`INSERT INTO snapshots (sequence, timestamp, data) VALUES (1, 0, '{not json')`)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err = repo.Latest(ctx)
	var corrupt *ErrCorruptSnapshot
	if !errors.As(err, &corrupt) {
		t.Fatalf("err = %v, want *ErrCorruptSnapshot", err)
	}
	if corrupt.ID != 1 {
		t.Errorf("corrupt id = %d, want 1", corrupt.ID)
	}
}

func countSnapshots(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		if err := repo.Save(ctx, &Snapshot{Sequence: int64(i)}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	if got := countSnapshots(t, s.DB()); got != 5 {
		t.Errorf("count after prune = %d, want 5", got)
	}

	// The latest should still be sequence 7.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}

	var oldest int64
	if err := s.DB().QueryRow("SELECT MIN(sequence) FROM snapshots").Scan(&oldest); err != nil {
		t.Fatalf("min: %v", err)
	}
	if oldest != 3 {
		t.Errorf("oldest sequence = %d, want 3", oldest)
	}
}

func TestPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := repo.Save(ctx, &Snapshot{Sequence: int64(i)}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}

	if got := countSnapshots(t, s.DB()); got != 3 {
		t.Errorf("count = %d, want 3", got)
	}
}

func TestClear(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if err := repo.Save(ctx, &Snapshot{Sequence: int64(i)}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap != nil {
		t.Errorf("expected no snapshot after clear, got %+v", snap)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		got, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if got != want {
			t.Errorf("Next() = %d, want %d", got, want)
		}
	}

	cur, err := s.EventRepo().LatestSequence(ctx)
	if err != nil {
		t.Fatalf("latest sequence: %v", err)
	}
	if cur != 5 {
		t.Errorf("LatestSequence() = %d, want 5", cur)
	}
}

func TestSchemaCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"snapshots", "progress_events", "workout_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SnapshotRepo().Save(ctx, &Snapshot{Sequence: 9}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.EventRepo().AppendProgress(ctx, ProgressEventData{UnitID: 1, Action: "drill"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	snap, err := s.SnapshotRepo().Latest(ctx)
	if err != nil || snap == nil {
		t.Fatalf("latest after reopen: %v %v", snap, err)
	}
	if snap.Sequence != 9 {
		t.Errorf("sequence = %d, want 9", snap.Sequence)
	}

	// The counter continues rather than restarting.
	next, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next != 2 {
		t.Errorf("Next() after reopen = %d, want 2", next)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "my.db")
		t.Setenv("SOUTHPAW_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("SOUTHPAW_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		want := filepath.Join(dir, "southpaw", "southpaw.db")
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}

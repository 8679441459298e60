package coach

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/abhisek/southpaw/internal/progression"
	"github.com/abhisek/southpaw/internal/store"
)

// Load reads the newest snapshot, migrates it onto the current curriculum
// and makes it the coach's state.
//
// Unreadable or corrupt snapshots never stop the app: they are logged,
// the snapshot store is cleared and the learner starts fresh. Load only
// fails when the fresh or migrated state cannot be saved.
func (c *Coach) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.snaps.Latest(ctx)
	if err != nil {
		return c.startFresh(ctx, err)
	}
	if snap == nil {
		c.log.Info("no saved progress, starting fresh")
		c.state = c.engine.NewState()
		return c.persist(ctx, c.state)
	}

	c.checkVersions(snap.Data)

	state, changed := c.engine.Migrate(fromRecords(snap.Data.Units))
	c.state = state
	if !changed {
		c.log.Debug("loaded progress",
			zap.Int("snapshot_id", snap.ID),
			zap.Int("units", state.Len()))
		return nil
	}

	c.log.Info("migrated progress to current curriculum",
		zap.Int("snapshot_id", snap.ID),
		zap.Int("before", len(snap.Data.Units)),
		zap.Int("after", state.Len()))
	return c.persist(ctx, state)
}

// startFresh discards whatever is stored and saves a fresh state.
func (c *Coach) startFresh(ctx context.Context, cause error) error {
	var corrupt *store.ErrCorruptSnapshot
	if errors.As(cause, &corrupt) {
		c.log.Warn("discarding corrupt snapshot", zap.Int("snapshot_id", corrupt.ID), zap.Error(cause))
	} else {
		c.log.Error("failed to load progress, starting fresh", zap.Error(cause))
	}

	if err := c.snaps.Clear(ctx); err != nil {
		c.log.Error("failed to clear snapshots", zap.Error(err))
	}
	c.state = c.engine.NewState()
	if err := c.persist(ctx, c.state); err != nil {
		return fmt.Errorf("start fresh: %w", err)
	}
	return nil
}

// checkVersions warns when the snapshot was written by a newer build.
func (c *Coach) checkVersions(data store.SnapshotData) {
	if data.Version > store.CurrentSchemaVersion {
		c.log.Warn("snapshot uses a newer schema; unknown fields are ignored",
			zap.Int("snapshot_version", data.Version),
			zap.Int("supported_version", store.CurrentSchemaVersion))
	}
	if isNewer(data.AppVersion, c.appVersion) {
		c.log.Warn("progress was saved by a newer southpaw; downgrade detected",
			zap.String("saved_by", data.AppVersion),
			zap.String("running", c.appVersion))
	}
}

// isNewer reports whether saved is a strictly newer semver than running.
// Non-semver versions (such as "dev") never compare as newer.
func isNewer(saved, running string) bool {
	saved, running = canonical(saved), canonical(running)
	if !semver.IsValid(saved) || !semver.IsValid(running) {
		return false
	}
	return semver.Compare(saved, running) > 0
}

func canonical(v string) string {
	if v != "" && v[0] != 'v' {
		v = "v" + v
	}
	return v
}

func toRecords(s progression.LearnerState) []store.UnitRecord {
	out := make([]store.UnitRecord, len(s.Units))
	for i, p := range s.Units {
		out[i] = store.UnitRecord{
			UnitID:                  p.UnitID,
			DrillDone:               p.DrillDone,
			AddToArsenalDone:        p.AddToArsenalDone,
			ProgressionSessionsDone: p.ProgressionSessionsDone,
			ExamPassed:              p.ExamPassed,
			IsUnlocked:              p.IsUnlocked,
		}
	}
	return out
}

func fromRecords(rs []store.UnitRecord) progression.LearnerState {
	units := make([]progression.UnitProgress, len(rs))
	for i, r := range rs {
		units[i] = progression.UnitProgress{
			UnitID:                  r.UnitID,
			DrillDone:               r.DrillDone,
			AddToArsenalDone:        r.AddToArsenalDone,
			ProgressionSessionsDone: r.ProgressionSessionsDone,
			ExamPassed:              r.ExamPassed,
			IsUnlocked:              r.IsUnlocked,
		}
	}
	return progression.LearnerState{Units: units}
}

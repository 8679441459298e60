package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	UnitID int       // progress events only (0 = any)
}

// UnitRecord is the persisted form of one unit's progress.
type UnitRecord struct {
	UnitID                  int  `json:"unitId"`
	DrillDone               bool `json:"drillDone"`
	AddToArsenalDone        bool `json:"addToArsenalDone"`
	ProgressionSessionsDone int  `json:"progressionSessionsDone"`
	ExamPassed              bool `json:"examPassed"`
	IsUnlocked              bool `json:"isUnlocked"`
}

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version    int          `json:"version"`
	AppVersion string       `json:"appVersion,omitempty"`
	Units      []UnitRecord `json:"units"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error

	// Clear deletes every snapshot.
	Clear(ctx context.Context) error
}

// ProgressEventData captures one progression transition.
type ProgressEventData struct {
	UnitID    int
	Action    string
	Unlocked  []int
	SessionID string
}

// ProgressEvent is a stored progress event.
type ProgressEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	ProgressEventData
}

// WorkoutEventData captures one generated workout.
type WorkoutEventData struct {
	SessionID  string
	Difficulty string
	Target     string
	Rounds     int
	Combos     int
}

// WorkoutEvent is a stored workout event.
type WorkoutEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	WorkoutEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendProgress records a progression transition.
	AppendProgress(ctx context.Context, data ProgressEventData) error

	// AppendWorkout records a generated workout.
	AppendWorkout(ctx context.Context, data WorkoutEventData) error

	// QueryProgressEvents returns progress events in sequence order.
	QueryProgressEvents(ctx context.Context, opts QueryOpts) ([]ProgressEvent, error)

	// QueryWorkoutEvents returns workout events in sequence order.
	QueryWorkoutEvents(ctx context.Context, opts QueryOpts) ([]WorkoutEvent, error)

	// LatestSequence returns the highest sequence number handed out so far.
	LatestSequence(ctx context.Context) (int64, error)
}

// Package coach owns the learner's progression state: it loads and
// migrates the persisted snapshot, applies engine transitions, persists
// every replacement and notifies subscribers.
package coach

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/southpaw/internal/progression"
	"github.com/abhisek/southpaw/internal/store"
)

// DefaultKeepSnapshots is how many snapshots survive each prune.
const DefaultKeepSnapshots = 10

// ActionReset is recorded in the event log when progress is wiped.
const ActionReset = "reset"

// Listener is called with the new state after every change.
type Listener func(progression.LearnerState)

// Coach is the single writer of a learner's progression state.
// It is safe for concurrent use.
type Coach struct {
	engine *progression.Engine
	snaps  store.SnapshotRepo
	events store.EventRepo
	log    *zap.Logger

	keep       int
	appVersion string
	sessionID  string

	mu    sync.Mutex
	state progression.LearnerState

	subMu   sync.Mutex
	subs    map[int]Listener
	nextSub int
}

// Option configures a Coach.
type Option func(*Coach)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Coach) { c.log = l }
}

// WithKeepSnapshots sets how many snapshots survive pruning.
func WithKeepSnapshots(n int) Option {
	return func(c *Coach) {
		if n > 0 {
			c.keep = n
		}
	}
}

// WithAppVersion stamps snapshots with the running app version.
func WithAppVersion(v string) Option {
	return func(c *Coach) { c.appVersion = v }
}

// New creates a Coach. Call Load before using it.
func New(engine *progression.Engine, snaps store.SnapshotRepo, events store.EventRepo, opts ...Option) *Coach {
	c := &Coach{
		engine:    engine,
		snaps:     snaps,
		events:    events,
		log:       zap.NewNop(),
		keep:      DefaultKeepSnapshots,
		sessionID: uuid.New().String(),
		subs:      make(map[int]Listener),
		state:     engine.NewState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("session_id", c.sessionID))
	return c
}

// SessionID identifies this coach instance in the event log.
func (c *Coach) SessionID() string {
	return c.sessionID
}

// Engine returns the progression engine.
func (c *Coach) Engine() *progression.Engine {
	return c.engine
}

// State returns the current learner state.
func (c *Coach) State() progression.LearnerState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// NextAction returns what the learner should do next.
func (c *Coach) NextAction() progression.Action {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.NextAction(c.state)
}

// CurrentUnit returns the earliest locked unit's progress.
func (c *Coach) CurrentUnit() (progression.UnitProgress, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.CurrentUnit(c.state)
}

// UnlockedMoveCodes returns the move codes the learner has unlocked.
func (c *Coach) UnlockedMoveCodes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.UnlockedMoveCodes(c.state)
}

// Summary returns an overview of the learner's progress.
func (c *Coach) Summary() progression.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Summarize(c.state)
}

// Subscribe registers fn to be called after every state change. The
// returned function removes the subscription.
func (c *Coach) Subscribe(fn Listener) (unsubscribe func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
		})
	}
}

func (c *Coach) notify(s progression.LearnerState) {
	c.subMu.Lock()
	listeners := make([]Listener, 0, len(c.subs))
	for _, fn := range c.subs {
		listeners = append(listeners, fn)
	}
	c.subMu.Unlock()

	for _, fn := range listeners {
		fn(s.Clone())
	}
}

// persist saves s as the newest snapshot and prunes old ones.
func (c *Coach) persist(ctx context.Context, s progression.LearnerState) error {
	seq, err := c.events.LatestSequence(ctx)
	if err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	snap := &store.Snapshot{
		Sequence: seq,
		Data: store.SnapshotData{
			AppVersion: c.appVersion,
			Units:      toRecords(s),
		},
	}
	if err := c.snaps.Save(ctx, snap); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	if err := c.snaps.Prune(ctx, c.keep); err != nil {
		// Old snapshots are harmless; keep going.
		c.log.Warn("prune snapshots failed", zap.Error(err))
	}
	return nil
}

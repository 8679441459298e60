package coach

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/southpaw/internal/progression"
	"github.com/abhisek/southpaw/internal/store"
)

// CompleteDrill marks the current unit's drill as done.
func (c *Coach) CompleteDrill(ctx context.Context) (progression.Transition, error) {
	return c.do(ctx, c.engine.CompleteDrill)
}

// CompleteAddToArsenal marks unitID's Add-to-Arsenal step as done.
func (c *Coach) CompleteAddToArsenal(ctx context.Context, unitID int) (progression.Transition, error) {
	return c.do(ctx, func(s progression.LearnerState) (progression.LearnerState, progression.Transition) {
		return c.engine.CompleteAddToArsenal(s, unitID)
	})
}

// CompleteProgressionSession records a progression session on the current unit.
func (c *Coach) CompleteProgressionSession(ctx context.Context) (progression.Transition, error) {
	return c.do(ctx, c.engine.CompleteProgressionSession)
}

// PassExam passes the current unit's exam.
func (c *Coach) PassExam(ctx context.Context) (progression.Transition, error) {
	return c.do(ctx, c.engine.PassExam)
}

// UnlockMove instantly unlocks unitID.
func (c *Coach) UnlockMove(ctx context.Context, unitID int) (progression.Transition, error) {
	return c.do(ctx, func(s progression.LearnerState) (progression.LearnerState, progression.Transition) {
		return c.engine.UnlockMove(s, unitID)
	})
}

// Reset discards all progress and starts the curriculum over.
func (c *Coach) Reset(ctx context.Context) error {
	fresh, err := c.reset(ctx)
	if err != nil {
		return err
	}
	c.notify(fresh)
	return nil
}

func (c *Coach) reset(ctx context.Context) (progression.LearnerState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.snaps.Clear(ctx); err != nil {
		return progression.LearnerState{}, fmt.Errorf("reset: %w", err)
	}
	fresh := c.engine.NewState()
	if err := c.events.AppendProgress(ctx, store.ProgressEventData{
		Action:    ActionReset,
		SessionID: c.sessionID,
	}); err != nil {
		c.log.Warn("failed to record reset event", zap.Error(err))
	}
	if err := c.persist(ctx, fresh); err != nil {
		return progression.LearnerState{}, fmt.Errorf("reset: %w", err)
	}
	c.state = fresh
	c.log.Info("progress reset")
	return fresh, nil
}

// RecordWorkout appends a workout event for this session.
func (c *Coach) RecordWorkout(ctx context.Context, data store.WorkoutEventData) error {
	if data.SessionID == "" {
		data.SessionID = c.sessionID
	}
	if err := c.events.AppendWorkout(ctx, data); err != nil {
		return fmt.Errorf("record workout: %w", err)
	}
	return nil
}

// do applies a transition, records it and persists the new state.
// Subscribers are notified after the lock is released.
func (c *Coach) do(ctx context.Context, fn func(progression.LearnerState) (progression.LearnerState, progression.Transition)) (progression.Transition, error) {
	next, t, err := c.apply(ctx, fn)
	if err != nil || !t.Changed {
		return t, err
	}
	c.notify(next)
	return t, nil
}

// apply runs fn under the write lock. State is only replaced once the
// snapshot is saved.
func (c *Coach) apply(ctx context.Context, fn func(progression.LearnerState) (progression.LearnerState, progression.Transition)) (progression.LearnerState, progression.Transition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, t := fn(c.state)
	log := c.log.With(
		zap.String("action", string(t.Kind)),
		zap.Int("unit_id", t.UnitID),
		zap.Bool("changed", t.Changed))

	if !t.Changed {
		log.Debug("transition was a no-op")
		return c.state, t, nil
	}

	if err := c.events.AppendProgress(ctx, store.ProgressEventData{
		UnitID:    t.UnitID,
		Action:    string(t.Kind),
		Unlocked:  t.Unlocked,
		SessionID: c.sessionID,
	}); err != nil {
		log.Warn("failed to record progress event", zap.Error(err))
	}
	if err := c.persist(ctx, next); err != nil {
		return c.state, t, err
	}

	c.state = next
	if len(t.Unlocked) > 0 {
		log.Info("units unlocked", zap.Ints("unlocked", t.Unlocked))
	} else {
		log.Info("progress recorded")
	}
	return next, t, nil
}

package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendWorkout(ctx context.Context, data WorkoutEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(tableWorkoutEvents).
		Columns("sequence", "timestamp", "session_id", "difficulty", "target", "rounds", "combos").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.Difficulty, data.Target, data.Rounds, data.Combos).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save workout event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryWorkoutEvents(ctx context.Context, opts QueryOpts) ([]WorkoutEvent, error) {
	sel := builder().
		Select("id", "sequence", "timestamp", "session_id", "difficulty", "target", "rounds", "combos").
		From(entsql.Table(tableWorkoutEvents))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query workout events: %w", err)
	}
	defer rows.Close()

	var out []WorkoutEvent
	for rows.Next() {
		var (
			ev     WorkoutEvent
			millis int64
		)
		if err := rows.Scan(&ev.ID, &ev.Sequence, &millis, &ev.SessionID, &ev.Difficulty, &ev.Target, &ev.Rounds, &ev.Combos); err != nil {
			return nil, fmt.Errorf("scan workout event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(millis)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query workout events: %w", err)
	}
	return out, nil
}

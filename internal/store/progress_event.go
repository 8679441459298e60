package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendProgress(ctx context.Context, data ProgressEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(tableProgressEvents).
		Columns("sequence", "timestamp", "unit_id", "action", "unlocked", "session_id").
		Values(seqNum, time.Now().UnixMilli(), data.UnitID, data.Action, joinIDs(data.Unlocked), data.SessionID).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save progress event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryProgressEvents(ctx context.Context, opts QueryOpts) ([]ProgressEvent, error) {
	sel := builder().
		Select("id", "sequence", "timestamp", "unit_id", "action", "unlocked", "session_id").
		From(entsql.Table(tableProgressEvents))
	applyQueryOpts(sel, opts)
	if opts.UnitID > 0 {
		sel.Where(entsql.EQ("unit_id", opts.UnitID))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress events: %w", err)
	}
	defer rows.Close()

	var out []ProgressEvent
	for rows.Next() {
		var (
			ev       ProgressEvent
			millis   int64
			unlocked string
		)
		if err := rows.Scan(&ev.ID, &ev.Sequence, &millis, &ev.UnitID, &ev.Action, &unlocked, &ev.SessionID); err != nil {
			return nil, fmt.Errorf("scan progress event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(millis)
		ev.Unlocked = splitIDs(unlocked)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query progress events: %w", err)
	}
	return out, nil
}

// applyQueryOpts adds the shared sequence/time filters, ordering and limit.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	sel.OrderBy(entsql.Asc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

// joinIDs stores a unit id list as "3,4".
func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func splitIDs(s string) []int {
	if s == "" {
		return nil
	}
	var ids []int
	for _, part := range strings.Split(s, ",") {
		if id, err := strconv.Atoi(part); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

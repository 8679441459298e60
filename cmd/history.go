package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/southpaw/internal/coach"
	"github.com/abhisek/southpaw/internal/progression"
	"github.com/abhisek/southpaw/internal/store"
	"github.com/abhisek/southpaw/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded progress and workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		unit, _ := cmd.Flags().GetInt("unit")
		ctx := cmd.Context()
		events := rt.store.EventRepo()

		progress, err := events.QueryProgressEvents(ctx, store.QueryOpts{UnitID: unit})
		if err != nil {
			return fmt.Errorf("query progress events: %w", err)
		}
		var workouts []store.WorkoutEvent
		if unit == 0 {
			workouts, err = events.QueryWorkoutEvents(ctx, store.QueryOpts{})
			if err != nil {
				return fmt.Errorf("query workout events: %w", err)
			}
		}

		lines := mergeHistory(progress, workouts)
		if limit > 0 && len(lines) > limit {
			lines = lines[len(lines)-limit:]
		}

		w := cmd.OutOrStdout()
		if len(lines) == 0 {
			fmt.Fprintln(w, theme.Hint.Render("No history yet."))
			return nil
		}
		for _, l := range lines {
			fmt.Fprintf(w, "%s  %s\n", theme.Hint.Render(l.at), l.text)
		}
		return nil
	},
}

type historyLine struct {
	at   string
	text string
}

// mergeHistory interleaves both event kinds by their shared sequence.
func mergeHistory(progress []store.ProgressEvent, workouts []store.WorkoutEvent) []historyLine {
	out := make([]historyLine, 0, len(progress)+len(workouts))
	i, j := 0, 0
	for i < len(progress) || j < len(workouts) {
		if j >= len(workouts) || (i < len(progress) && progress[i].Sequence < workouts[j].Sequence) {
			out = append(out, progressLine(progress[i]))
			i++
			continue
		}
		out = append(out, workoutLine(workouts[j]))
		j++
	}
	return out
}

func progressLine(e store.ProgressEvent) historyLine {
	var text string
	if e.Action == coach.ActionReset {
		text = theme.Failure.Render("progress reset")
	} else {
		text = fmt.Sprintf("%s  %s", progression.ActionKind(e.Action).Label(), unitLabel(e.UnitID))
	}
	if len(e.Unlocked) > 0 {
		names := make([]string, len(e.Unlocked))
		for k, id := range e.Unlocked {
			names[k] = unitLabel(id)
		}
		text += theme.Unlocked.Render("  unlocked " + strings.Join(names, ", "))
	}
	return historyLine{at: e.Timestamp.Local().Format("2006-01-02 15:04"), text: text}
}

func workoutLine(e store.WorkoutEvent) historyLine {
	text := fmt.Sprintf("Workout  %d rounds, %d combos, %s", e.Rounds, e.Combos, e.Difficulty)
	if e.Target != "" {
		text += ", focus " + e.Target
	}
	return historyLine{at: e.Timestamp.Local().Format("2006-01-02 15:04"), text: text}
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Show at most this many entries (0 = all)")
	historyCmd.Flags().Int("unit", 0, "Only show progress on this unit")
}

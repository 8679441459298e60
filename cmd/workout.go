package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/southpaw/internal/curriculum"
	"github.com/abhisek/southpaw/internal/moves"
	"github.com/abhisek/southpaw/internal/store"
	"github.com/abhisek/southpaw/internal/ui/components"
	"github.com/abhisek/southpaw/internal/ui/theme"
	"github.com/abhisek/southpaw/internal/workout"
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Generate rounds of combos for a shadow-boxing session",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		diff, err := difficultyFlag(cmd, rt.cfg.Difficulty())
		if err != nil {
			return err
		}
		opts := workout.Options{
			Difficulty:     diff,
			Rounds:         rt.cfg.Workout.Rounds,
			CombosPerRound: rt.cfg.Workout.CombosPerRound,
		}
		if cmd.Flags().Changed("rounds") {
			opts.Rounds, _ = cmd.Flags().GetInt("rounds")
		}
		if cmd.Flags().Changed("combos") {
			opts.CombosPerRound, _ = cmd.Flags().GetInt("combos")
		}

		planner := workout.NewPlanner(newGenerator(cmd, rt.cfg), curriculum.Default())
		plan := planner.Build(rt.coach, opts)

		w := cmd.OutOrStdout()
		switch plan.Mode {
		case workout.ModeArsenal:
			fmt.Fprintln(w, theme.Title.Render("WORKOUT")+"  "+
				theme.Current.Render(fmt.Sprintf("focus: %s (%s)", unitLabel(plan.UnitID), plan.Target)))
		default:
			fmt.Fprintln(w, theme.Title.Render("WORKOUT"))
		}
		for r, round := range plan.Rounds {
			fmt.Fprintln(w, theme.Subtitle.Render(fmt.Sprintf("Round %d", r+1)))
			for i, c := range round {
				fmt.Fprintf(w, "  %2d. %s\n", i+1, components.ComboLine(c, moves.Default(), plan.Target))
			}
		}

		if err := rt.coach.RecordWorkout(cmd.Context(), store.WorkoutEventData{
			SessionID:  plan.ID,
			Difficulty: string(plan.Difficulty),
			Target:     plan.Target,
			Rounds:     len(plan.Rounds),
			Combos:     plan.TotalCombos(),
		}); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	workoutCmd.Flags().String("difficulty", "", "beginner, intermediate or advanced (default from config)")
	workoutCmd.Flags().Int("rounds", 0, "Number of rounds (default from config)")
	workoutCmd.Flags().Int("combos", 0, "Combos per round (default from config)")
	workoutCmd.Flags().Uint64("seed", 0, "PRNG seed for a reproducible workout")
}

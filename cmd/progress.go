package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/southpaw/internal/coach"
	"github.com/abhisek/southpaw/internal/curriculum"
	"github.com/abhisek/southpaw/internal/progression"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Mark the current unit's drill as done",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransition(cmd, func(ctx context.Context, c *coach.Coach) (progression.Transition, error) {
			return c.CompleteDrill(ctx)
		})
	},
}

var arsenalCmd = &cobra.Command{
	Use:   "arsenal <unit>",
	Short: "Add a unit's moves to your arsenal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUnitID(args[0])
		if err != nil {
			return err
		}
		return runTransition(cmd, func(ctx context.Context, c *coach.Coach) (progression.Transition, error) {
			return c.CompleteAddToArsenal(ctx, id)
		})
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Record a completed progression session on the current unit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransition(cmd, func(ctx context.Context, c *coach.Coach) (progression.Transition, error) {
			return c.CompleteProgressionSession(ctx)
		})
	},
}

var examCmd = &cobra.Command{
	Use:   "exam",
	Short: "Record a passed exam on the current unit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransition(cmd, func(ctx context.Context, c *coach.Coach) (progression.Transition, error) {
			return c.PassExam(ctx)
		})
	},
}

var unlockCmd = &cobra.Command{
	Use:   "unlock <unit>",
	Short: "Unlock a unit immediately, skipping its steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUnitID(args[0])
		if err != nil {
			return err
		}
		return runTransition(cmd, func(ctx context.Context, c *coach.Coach) (progression.Transition, error) {
			return c.UnlockMove(ctx, id)
		})
	},
}

// parseUnitID accepts a unit id that exists in the curriculum.
func parseUnitID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid unit %q: must be a number", s)
	}
	if _, ok := curriculum.ByID(id); !ok {
		return 0, fmt.Errorf("unknown unit %d: see `southpaw curriculum list`", id)
	}
	return id, nil
}

func runTransition(cmd *cobra.Command, fn func(context.Context, *coach.Coach) (progression.Transition, error)) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	t, err := fn(cmd.Context(), rt.coach)
	if err != nil {
		return err
	}
	printTransition(cmd.OutOrStdout(), t, rt.coach.NextAction())
	return nil
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/southpaw/internal/curriculum"
	"github.com/abhisek/southpaw/internal/ui/components"
	"github.com/abhisek/southpaw/internal/ui/theme"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show curriculum progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show what to do next",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		fmt.Fprintln(cmd.OutOrStdout(), describeAction(rt.coach.NextAction()))
		return nil
	},
}

func runStatus(cmd *cobra.Command) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	w := cmd.OutOrStdout()
	sum := rt.coach.Summary()
	state := rt.coach.State()
	cur := curriculum.Default()

	fmt.Fprintln(w, theme.Title.Render("SOUTHPAW"))
	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d units", sum.Unlocked, sum.Total),
		float64(sum.Percent())/100, true, 60)
	fmt.Fprintln(w, bar.View())
	fmt.Fprintln(w)

	for _, level := range cur.Levels() {
		fmt.Fprintln(w, theme.Subtitle.Render(fmt.Sprintf("Level %d: %s", level, cur.LevelName(level))))
		for _, u := range cur.ByLevel(level) {
			p := state.Progress(u.ID)
			var mark string
			switch {
			case p.IsUnlocked:
				mark = theme.Unlocked.Render("●")
			case u.ID == sum.CurrentUnit:
				mark = theme.Current.Render("▶")
			default:
				mark = theme.Locked.Render("○")
			}
			steps := []string{
				step("drill", p.DrillDone),
				step("arsenal", p.AddToArsenalDone),
				fmt.Sprintf("sessions %d/%d", p.ProgressionSessionsDone, rt.coach.Engine().RequiredSessions(u.ID)),
				step("exam", p.ExamPassed),
			}
			fmt.Fprintf(w, "  %s %-24s %s\n", mark, u.Name, theme.Hint.Render(strings.Join(steps, "  ")))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.Card.Render(theme.Subtitle.Render("Next: ")+describeAction(sum.Next)))
	return nil
}

func step(name string, done bool) string {
	if done {
		return name + " ✓"
	}
	return name + " ·"
}

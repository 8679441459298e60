package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/southpaw/internal/curriculum"
	"github.com/abhisek/southpaw/internal/progression"
	"github.com/abhisek/southpaw/internal/ui/theme"
)

// unitLabel returns "Unit 3: Lead Hook".
func unitLabel(id int) string {
	if u, ok := curriculum.ByID(id); ok {
		return fmt.Sprintf("Unit %d: %s", u.ID, u.Name)
	}
	return fmt.Sprintf("Unit %d", id)
}

// describeAction renders a next action as a sentence.
func describeAction(a progression.Action) string {
	switch a.Kind {
	case progression.ActionComplete:
		return "Curriculum complete. Keep sharp with `southpaw workout`."
	case progression.ActionDrill:
		return fmt.Sprintf("%s for %s (`southpaw drill`)", a.Kind.Label(), unitLabel(a.UnitID))
	case progression.ActionAddToArsenal:
		return fmt.Sprintf("%s: %s (`southpaw arsenal %d`)", a.Kind.Label(), unitLabel(a.UnitID), a.UnitID)
	case progression.ActionProgression:
		return fmt.Sprintf("%s on %s (`southpaw workout`, then `southpaw session`)", a.Kind.Label(), unitLabel(a.UnitID))
	case progression.ActionExam:
		return fmt.Sprintf("%s for %s (`southpaw exam`)", a.Kind.Label(), unitLabel(a.UnitID))
	default:
		return a.String()
	}
}

// printTransition reports what an action did.
func printTransition(w io.Writer, t progression.Transition, next progression.Action) {
	if !t.Changed {
		fmt.Fprintln(w, theme.Hint.Render("Nothing to record; already done."))
	} else {
		fmt.Fprintln(w, theme.Unlocked.Render("✓ ")+theme.Body.Render(fmt.Sprintf("%s recorded for %s", t.Kind.Label(), unitLabel(t.UnitID))))
	}
	if len(t.Unlocked) > 0 {
		names := make([]string, len(t.Unlocked))
		for i, id := range t.Unlocked {
			names[i] = unitLabel(id)
		}
		fmt.Fprintln(w, theme.Current.Render("Unlocked: ")+theme.Body.Render(strings.Join(names, ", ")))
	}
	fmt.Fprintln(w, theme.Subtitle.Render("Next: ")+describeAction(next))
}

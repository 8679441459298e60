package progression

import "fmt"

// ActionKind identifies the next thing a learner should do.
type ActionKind string

const (
	ActionDrill        ActionKind = "drill"
	ActionAddToArsenal ActionKind = "add-to-arsenal"
	ActionProgression  ActionKind = "progression"
	ActionExam         ActionKind = "exam"
	ActionComplete     ActionKind = "complete"

	// ActionUnlock is recorded for manual unlock overrides. NextAction never
	// returns it.
	ActionUnlock ActionKind = "unlock"
)

// Label returns the display label for an action kind.
func (k ActionKind) Label() string {
	switch k {
	case ActionDrill:
		return "Drill"
	case ActionAddToArsenal:
		return "Add to Arsenal"
	case ActionProgression:
		return "Progression Session"
	case ActionExam:
		return "Exam"
	case ActionComplete:
		return "Complete"
	case ActionUnlock:
		return "Unlock"
	default:
		return string(k)
	}
}

// Action is the tagged result of NextAction. UnitID is zero for
// ActionComplete.
type Action struct {
	Kind   ActionKind
	UnitID int
}

func (a Action) String() string {
	if a.Kind == ActionComplete {
		return string(a.Kind)
	}
	return fmt.Sprintf("%s(%d)", a.Kind, a.UnitID)
}

// Transition describes what an engine transition did, for logging and
// event persistence.
type Transition struct {
	Kind     ActionKind
	UnitID   int
	Unlocked []int // units whose IsUnlocked flipped to true
	Changed  bool
}

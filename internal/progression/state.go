package progression

import (
	"slices"

	"github.com/abhisek/southpaw/internal/curriculum"
)

// UnitProgress is a learner's progress on a single curriculum unit.
type UnitProgress struct {
	UnitID                  int
	DrillDone               bool
	AddToArsenalDone        bool
	ProgressionSessionsDone int
	ExamPassed              bool
	IsUnlocked              bool
}

// LearnerState is the set of unit progress records for one learner.
// Transitions keep records in unlock order, but a restored state may hold
// them in any order; the Engine always reasons in unlock order. Values
// are never mutated in place; every transition returns a new LearnerState.
type LearnerState struct {
	Units []UnitProgress
}

// NewState returns a fresh state with every unit of the curriculum locked.
func NewState(units []curriculum.Unit) LearnerState {
	out := make([]UnitProgress, len(units))
	for i, u := range units {
		out[i] = UnitProgress{UnitID: u.ID}
	}
	return LearnerState{Units: out}
}

// Clone returns a deep copy of the state.
func (s LearnerState) Clone() LearnerState {
	return LearnerState{Units: slices.Clone(s.Units)}
}

// Len returns the number of progress records.
func (s LearnerState) Len() int {
	return len(s.Units)
}

// indexOf returns the position of unitID's record, or -1.
func (s LearnerState) indexOf(unitID int) int {
	for i, p := range s.Units {
		if p.UnitID == unitID {
			return i
		}
	}
	return -1
}

// Progress returns the record for unitID. A unit with no record yields a
// fresh, locked record.
func (s LearnerState) Progress(unitID int) UnitProgress {
	if i := s.indexOf(unitID); i >= 0 {
		return s.Units[i]
	}
	return UnitProgress{UnitID: unitID}
}

// Equal reports whether two states hold the same records in the same order.
func (s LearnerState) Equal(other LearnerState) bool {
	return slices.Equal(s.Units, other.Units)
}

package progression

import (
	"github.com/abhisek/southpaw/internal/curriculum"
)

// Catalog is the curriculum view the engine needs.
type Catalog interface {
	All() []curriculum.Unit
	ByID(id int) (curriculum.Unit, bool)
	UnlockIndexOf(id int) int
	Next(id int) (curriculum.Unit, bool)
}

// Engine computes next actions and transitions for learner states.
// It holds no learner state of its own; every method is a pure function
// of its arguments.
type Engine struct {
	cat   Catalog
	rules Rules
}

// NewEngine creates an engine over a curriculum with the given rules.
func NewEngine(cat Catalog, rules Rules) *Engine {
	if rules.Unlock == "" {
		rules.Unlock = UnlockOnArsenal
	}
	return &Engine{cat: cat, rules: rules}
}

// Rules returns the engine's rule set.
func (e *Engine) Rules() Rules {
	return e.rules
}

// NewState returns a fresh state for the engine's curriculum.
func (e *Engine) NewState() LearnerState {
	return NewState(e.cat.All())
}

// levelOf returns the curriculum level of a unit, or 0 if unknown.
func (e *Engine) levelOf(unitID int) int {
	u, ok := e.cat.ByID(unitID)
	if !ok {
		return 0
	}
	return u.Level
}

// RequiredSessions returns the progression sessions unitID needs.
func (e *Engine) RequiredSessions(unitID int) int {
	return e.rules.RequiredProgressionSessions(e.levelOf(unitID))
}

// CurrentUnit returns the earliest unit in unlock order whose record is
// still locked, whatever order the records are stored in. Records for
// units the curriculum does not know never become current.
func (e *Engine) CurrentUnit(s LearnerState) (UnitProgress, bool) {
	var cur UnitProgress
	best := -1
	for _, p := range s.Units {
		if p.IsUnlocked {
			continue
		}
		i := e.cat.UnlockIndexOf(p.UnitID)
		if i < 0 {
			continue
		}
		if best < 0 || i < best {
			cur, best = p, i
		}
	}
	return cur, best >= 0
}

// IsComplete reports whether no curriculum unit is left locked.
func (e *Engine) IsComplete(s LearnerState) bool {
	_, ok := e.CurrentUnit(s)
	return !ok
}

// NextAction decides what the learner should do next.
func (e *Engine) NextAction(s LearnerState) Action {
	u, ok := e.CurrentUnit(s)
	if !ok {
		return Action{Kind: ActionComplete}
	}
	switch {
	case !u.DrillDone:
		return Action{Kind: ActionDrill, UnitID: u.UnitID}
	case !u.AddToArsenalDone:
		return Action{Kind: ActionAddToArsenal, UnitID: u.UnitID}
	case u.ProgressionSessionsDone < e.RequiredSessions(u.UnitID):
		return Action{Kind: ActionProgression, UnitID: u.UnitID}
	case !u.ExamPassed:
		return Action{Kind: ActionExam, UnitID: u.UnitID}
	}
	// Every step is done but the unit is still locked. Point at the exam,
	// which unlocks.
	return Action{Kind: ActionExam, UnitID: u.UnitID}
}

// CompleteDrill marks the current unit's drill as done.
func (e *Engine) CompleteDrill(s LearnerState) (LearnerState, Transition) {
	cur, ok := e.CurrentUnit(s)
	if !ok {
		return s, Transition{Kind: ActionDrill}
	}
	return e.apply(s, ActionDrill, cur.UnitID, func(p *UnitProgress) {
		p.DrillDone = true
	})
}

// CompleteAddToArsenal marks unitID's Add-to-Arsenal step as done. Under
// UnlockOnArsenal this also unlocks the unit.
func (e *Engine) CompleteAddToArsenal(s LearnerState, unitID int) (LearnerState, Transition) {
	unlock := e.rules.Unlock == UnlockOnArsenal
	return e.apply(s, ActionAddToArsenal, unitID, func(p *UnitProgress) {
		p.AddToArsenalDone = true
		if unlock {
			p.IsUnlocked = true
		}
	})
}

// CompleteProgressionSession records one progression session on the
// current unit.
func (e *Engine) CompleteProgressionSession(s LearnerState) (LearnerState, Transition) {
	cur, ok := e.CurrentUnit(s)
	if !ok {
		return s, Transition{Kind: ActionProgression}
	}
	return e.apply(s, ActionProgression, cur.UnitID, func(p *UnitProgress) {
		p.ProgressionSessionsDone++
	})
}

// PassExam passes the current unit's exam, unlocking it, and pre-unlocks
// the next unit in unlock order.
func (e *Engine) PassExam(s LearnerState) (LearnerState, Transition) {
	cur, ok := e.CurrentUnit(s)
	if !ok {
		return s, Transition{Kind: ActionExam}
	}
	next, t := e.apply(s, ActionExam, cur.UnitID, func(p *UnitProgress) {
		p.ExamPassed = true
		p.IsUnlocked = true
	})

	u, ok := e.cat.Next(cur.UnitID)
	if !ok {
		return next, t
	}
	switch i := next.indexOf(u.ID); {
	case i < 0:
		next = e.insert(next, UnitProgress{UnitID: u.ID, IsUnlocked: true})
		t.Unlocked = append(t.Unlocked, u.ID)
	case !next.Units[i].IsUnlocked:
		next.Units[i].IsUnlocked = true
		t.Unlocked = append(t.Unlocked, u.ID)
	}
	return next, t
}

// UnlockMove instantly completes and unlocks unitID. Used for manual
// overrides.
func (e *Engine) UnlockMove(s LearnerState, unitID int) (LearnerState, Transition) {
	required := e.RequiredSessions(unitID)
	return e.apply(s, ActionUnlock, unitID, func(p *UnitProgress) {
		p.DrillDone = true
		p.ExamPassed = true
		p.ProgressionSessionsDone = max(p.ProgressionSessionsDone, required)
		p.IsUnlocked = true
	})
}

// apply copies s, runs fn on unitID's record and reports what changed.
// A curriculum unit without a record gets a fresh one inserted at its
// unlock position; an id the curriculum does not know is a no-op.
func (e *Engine) apply(s LearnerState, kind ActionKind, unitID int, fn func(*UnitProgress)) (LearnerState, Transition) {
	t := Transition{Kind: kind, UnitID: unitID}

	i := s.indexOf(unitID)
	if i < 0 && e.cat.UnlockIndexOf(unitID) < 0 {
		return s, t
	}

	before := s.Progress(unitID)
	after := before
	fn(&after)
	// Unlocks are one-way.
	after.IsUnlocked = after.IsUnlocked || before.IsUnlocked

	next := s.Clone()
	if i >= 0 {
		next.Units[i] = after
	} else {
		next = e.insert(next, after)
	}

	t.Changed = i < 0 || after != before
	if after.IsUnlocked && !before.IsUnlocked {
		t.Unlocked = append(t.Unlocked, unitID)
	}
	return next, t
}

// insert places p before the first record that comes later in unlock order.
func (e *Engine) insert(s LearnerState, p UnitProgress) LearnerState {
	pos := e.cat.UnlockIndexOf(p.UnitID)
	at := len(s.Units)
	for j, other := range s.Units {
		oi := e.cat.UnlockIndexOf(other.UnitID)
		if oi < 0 || oi > pos {
			at = j
			break
		}
	}
	units := make([]UnitProgress, 0, len(s.Units)+1)
	units = append(units, s.Units[:at]...)
	units = append(units, p)
	units = append(units, s.Units[at:]...)
	return LearnerState{Units: units}
}

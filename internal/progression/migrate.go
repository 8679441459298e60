package progression

import "github.com/abhisek/southpaw/internal/curriculum"

// Migrate reconciles persisted progress with the current curriculum.
//
// When the record count matches and every curriculum unit has a record,
// persisted is returned unchanged with changed=false. Otherwise a new state
// is built in curriculum order: existing records are reused, missing units
// get fresh locked records, and records for units no longer in the
// curriculum are dropped.
func Migrate(persisted LearnerState, units []curriculum.Unit) (LearnerState, bool) {
	byID := make(map[int]UnitProgress, len(persisted.Units))
	for _, p := range persisted.Units {
		if _, dup := byID[p.UnitID]; !dup {
			byID[p.UnitID] = p
		}
	}

	mismatch := len(persisted.Units) != len(units)
	if !mismatch {
		for _, u := range units {
			if _, ok := byID[u.ID]; !ok {
				mismatch = true
				break
			}
		}
	}
	if !mismatch {
		return persisted, false
	}

	out := make([]UnitProgress, len(units))
	for i, u := range units {
		if p, ok := byID[u.ID]; ok {
			out[i] = p
			continue
		}
		out[i] = UnitProgress{UnitID: u.ID}
	}
	return LearnerState{Units: out}, true
}

// Migrate reconciles s with the engine's curriculum.
func (e *Engine) Migrate(s LearnerState) (LearnerState, bool) {
	return Migrate(s, e.cat.All())
}

package progression

import "fmt"

// UnlockRule selects which step makes a unit unlocked.
type UnlockRule string

const (
	// UnlockOnArsenal unlocks a unit as soon as its Add-to-Arsenal step is
	// done. Passing the exam also unlocks.
	UnlockOnArsenal UnlockRule = "arsenal"

	// UnlockOnExam only unlocks through the exam (or a manual unlock);
	// Add-to-Arsenal records completion and progression sessions gate the exam.
	UnlockOnExam UnlockRule = "exam"
)

// ParseUnlockRule converts a config string to an UnlockRule.
func ParseUnlockRule(s string) (UnlockRule, error) {
	switch UnlockRule(s) {
	case UnlockOnArsenal, "":
		return UnlockOnArsenal, nil
	case UnlockOnExam:
		return UnlockOnExam, nil
	}
	return "", fmt.Errorf("unknown unlock rule %q: must be arsenal or exam", s)
}

// SessionRequirement maps levels at or above MinLevel to a session count.
type SessionRequirement struct {
	MinLevel int
	Sessions int
}

// Rules is the product configuration the engine runs against.
type Rules struct {
	Unlock UnlockRule

	// Sessions is ordered by ascending MinLevel. The last entry is the
	// highest tier and also applies to unknown levels.
	Sessions []SessionRequirement
}

// DefaultSessionRequirements returns the progression session table:
// level 1 needs 1 session, levels 2-3 need 2, everything above needs 3.
func DefaultSessionRequirements() []SessionRequirement {
	return []SessionRequirement{
		{MinLevel: 1, Sessions: 1},
		{MinLevel: 2, Sessions: 2},
		{MinLevel: 4, Sessions: 3},
	}
}

// DefaultRules returns the shipped rule set.
func DefaultRules() Rules {
	return Rules{
		Unlock:   UnlockOnArsenal,
		Sessions: DefaultSessionRequirements(),
	}
}

// RequiredProgressionSessions returns how many progression sessions a unit
// at the given level needs before its exam.
func (r Rules) RequiredProgressionSessions(level int) int {
	table := r.Sessions
	if len(table) == 0 {
		table = DefaultSessionRequirements()
	}
	highest := table[len(table)-1].Sessions
	if level < table[0].MinLevel {
		return highest
	}
	required := highest
	for _, req := range table {
		if level >= req.MinLevel {
			required = req.Sessions
		}
	}
	return required
}

// RequiredProgressionSessions uses the default session table.
func RequiredProgressionSessions(level int) int {
	return DefaultRules().RequiredProgressionSessions(level)
}

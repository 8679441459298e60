package progression

// Summary is an at-a-glance view of a learner's progress.
type Summary struct {
	Unlocked    int
	Total       int
	CurrentUnit int // 0 when complete
	Next        Action
}

// Percent returns the unlocked share of the curriculum, 0-100.
func (s Summary) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Unlocked * 100 / s.Total
}

// Summarize builds a Summary for s.
func (e *Engine) Summarize(s LearnerState) Summary {
	sum := Summary{Total: len(s.Units), Next: e.NextAction(s)}
	for _, p := range s.Units {
		if p.IsUnlocked {
			sum.Unlocked++
		}
	}
	if cur, ok := e.CurrentUnit(s); ok {
		sum.CurrentUnit = cur.UnitID
	}
	return sum
}

// UnlockedMoveCodes returns the move codes of every unlocked unit in
// unlock order, without duplicates.
func (e *Engine) UnlockedMoveCodes(s LearnerState) []string {
	seen := make(map[string]bool)
	var codes []string
	for _, u := range e.cat.All() {
		if !s.Progress(u.ID).IsUnlocked {
			continue
		}
		for _, code := range u.MoveCodes {
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	return codes
}

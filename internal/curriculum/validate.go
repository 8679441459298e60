package curriculum

import (
	"fmt"
	"strings"
)

// validateUnits performs all structural checks on units already sorted by ID.
// Returns a combined error describing all problems found, or nil if valid.
func validateUnits(units []Unit) error {
	var errs []string

	if len(units) == 0 {
		errs = append(errs, "curriculum has no units")
	}

	// IDs must be exactly 1..N.
	for i, u := range units {
		if u.ID != i+1 {
			errs = append(errs, fmt.Sprintf("unit at position %d has ID %d, want %d (IDs must be contiguous from 1)", i, u.ID, i+1))
			break
		}
	}

	type slot struct{ level, order int }
	slots := make(map[slot]int, len(units))

	for _, u := range units {
		if u.Level <= 0 {
			errs = append(errs, fmt.Sprintf("unit %d: level must be > 0, got %d", u.ID, u.Level))
		}
		if len(u.MoveCodes) == 0 {
			errs = append(errs, fmt.Sprintf("unit %d: must reference at least one move", u.ID))
		}
		for _, code := range u.MoveCodes {
			if strings.TrimSpace(code) == "" {
				errs = append(errs, fmt.Sprintf("unit %d: empty move code", u.ID))
			}
		}
		s := slot{u.Level, u.Order}
		if other, dup := slots[s]; dup {
			errs = append(errs, fmt.Sprintf("units %d and %d share level %d order %d", other, u.ID, u.Level, u.Order))
		}
		slots[s] = u.ID
	}

	if len(errs) > 0 {
		return fmt.Errorf("curriculum validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

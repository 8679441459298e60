package moves

import (
	"fmt"
	"strings"
)

// ValidateMoves performs all structural checks on the given move set.
// Returns a combined error describing all problems found, or nil if valid.
func ValidateMoves(ms []Move) error {
	var errs []string

	ids := make(map[int]bool, len(ms))
	codes := make(map[string]bool, len(ms))
	punches := 0

	for _, m := range ms {
		if ids[m.ID] {
			errs = append(errs, fmt.Sprintf("duplicate move ID: %d", m.ID))
		}
		ids[m.ID] = true

		if strings.TrimSpace(m.Code) == "" {
			errs = append(errs, fmt.Sprintf("move %d has an empty code", m.ID))
		} else if codes[m.Code] {
			errs = append(errs, fmt.Sprintf("duplicate move code: %q", m.Code))
		}
		codes[m.Code] = true

		if !m.Category.Valid() {
			errs = append(errs, fmt.Sprintf("move %q has unknown category %q", m.Code, m.Category))
		}
		if m.Category == CategoryPunch {
			punches++
		}
		if m.Name == "" {
			errs = append(errs, fmt.Sprintf("move %q has no name", m.Code))
		}
	}

	if punches == 0 {
		errs = append(errs, "catalog has no punch moves")
	}

	if len(errs) > 0 {
		return fmt.Errorf("move catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

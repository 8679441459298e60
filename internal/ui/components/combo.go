package components

import (
	"strings"

	"github.com/abhisek/southpaw/internal/combo"
	"github.com/abhisek/southpaw/internal/moves"
	"github.com/abhisek/southpaw/internal/ui/theme"
)

// ComboLine renders a combo as colored move codes ("1 - 2 - slip"),
// highlighting target when non-empty.
func ComboLine(c combo.Combo, src combo.MoveSource, target string) string {
	parts := make([]string, len(c.MoveCodes))
	for i, code := range c.MoveCodes {
		style := theme.Body
		if m, ok := src.ByCode(code); ok {
			style = theme.CategoryColor(m.Category)
		}
		if code == target {
			style = style.Underline(true)
		}
		parts[i] = style.Render(code)
	}
	return strings.Join(parts, theme.Hint.Render(" - "))
}

// MoveLegend renders "code  Name" for each distinct move of a combo.
func MoveLegend(c combo.Combo, src combo.MoveSource) string {
	seen := make(map[string]bool)
	var lines []string
	for _, code := range c.MoveCodes {
		if seen[code] {
			continue
		}
		seen[code] = true
		m, ok := src.ByCode(code)
		if !ok {
			continue
		}
		lines = append(lines, theme.CategoryColor(m.Category).Render(padRight(code, 14))+
			theme.Body.Render(m.Name)+"  "+theme.Hint.Render(moves.CategoryDisplayName(m.Category)))
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}

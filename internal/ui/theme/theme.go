package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/southpaw/internal/moves"
)

// Color palette: gym-floor reds and golds on slate.
var (
	Primary   = lipgloss.Color("#DC2626") // Glove Red
	Secondary = lipgloss.Color("#F59E0B") // Belt Gold
	Accent    = lipgloss.Color("#3B82F6") // Corner Blue
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Move category colors.
var (
	Punch     = lipgloss.Color("#EF4444")
	Defense   = lipgloss.Color("#3B82F6")
	Footwork  = lipgloss.Color("#22C55E")
	Deception = lipgloss.Color("#A855F7")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Unlocked = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Locked = lipgloss.NewStyle().
		Foreground(TextDim)

	Current = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Failure = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// CategoryColor returns the display color of a move category.
func CategoryColor(c moves.Category) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch c {
	case moves.CategoryPunch:
		return style.Foreground(Punch)
	case moves.CategoryDefense:
		return style.Foreground(Defense)
	case moves.CategoryFootwork:
		return style.Foreground(Footwork)
	case moves.CategoryDeception:
		return style.Foreground(Deception)
	default:
		return style.Foreground(Text)
	}
}

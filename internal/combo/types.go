package combo

import (
	"fmt"
	"slices"
	"strings"
)

// Difficulty controls combo length and complexity.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// AllDifficulties returns the difficulties in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Advanced}
}

// ParseDifficulty converts a string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case Beginner, Intermediate, Advanced:
		return d, nil
	}
	return "", fmt.Errorf("invalid difficulty %q: must be beginner, intermediate or advanced", s)
}

// Combo is an ordered sequence of move codes to throw as one drill.
type Combo struct {
	MoveCodes   []string
	Difficulty  Difficulty
	Name        string
	Description string
	SequenceID  int
}

// Equal reports whether two combos have the same codes and metadata.
func (c Combo) Equal(other Combo) bool {
	return c.SameMoves(other) &&
		c.Difficulty == other.Difficulty &&
		c.Name == other.Name &&
		c.Description == other.Description &&
		c.SequenceID == other.SequenceID
}

// SameMoves reports whether two combos have the same code sequence.
func (c Combo) SameMoves(other Combo) bool {
	return slices.Equal(c.MoveCodes, other.MoveCodes)
}

// Contains reports whether the combo includes code.
func (c Combo) Contains(code string) bool {
	return slices.Contains(c.MoveCodes, code)
}

// Len returns the number of moves in the combo.
func (c Combo) Len() int {
	return len(c.MoveCodes)
}

// Callout returns the codes joined the way a coach calls them ("1-2-slip").
func (c Combo) Callout() string {
	return strings.Join(c.MoveCodes, "-")
}

// Generator produces combos.
type Generator interface {
	// Generate builds a combo for the difficulty. allowed restricts the
	// moves that may appear; an empty list means every move is allowed.
	// If previous is given, an identical sequence is regenerated once.
	Generate(d Difficulty, previous *Combo, allowed []string) Combo

	// GenerateWeighted is Generate biased toward target, which always
	// appears in the result.
	GenerateWeighted(d Difficulty, target string, allowed []string, previous *Combo) Combo
}

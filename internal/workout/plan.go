// Package workout turns a learner's progress into rounds of combos.
package workout

import (
	"time"

	"github.com/abhisek/southpaw/internal/combo"
)

// Mode is how a plan's combos were generated.
type Mode string

const (
	// ModeFree draws uniformly from the learner's unlocked moves.
	ModeFree Mode = "free"

	// ModeArsenal biases every combo toward the move being added to the
	// learner's arsenal.
	ModeArsenal Mode = "arsenal"
)

// Defaults for a workout.
const (
	DefaultRounds         = 3
	DefaultCombosPerRound = 5
)

// Plan is a generated workout: a list of rounds, each a list of combos.
type Plan struct {
	ID         string
	Mode       Mode
	Difficulty combo.Difficulty
	Target     string // move code in arsenal mode, "" otherwise
	UnitID     int    // unit being worked on in arsenal mode
	Allowed    []string
	Rounds     [][]combo.Combo
	CreatedAt  time.Time
}

// TotalCombos returns the number of combos across all rounds.
func (p Plan) TotalCombos() int {
	n := 0
	for _, r := range p.Rounds {
		n += len(r)
	}
	return n
}

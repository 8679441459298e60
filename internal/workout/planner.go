package workout

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/southpaw/internal/combo"
	"github.com/abhisek/southpaw/internal/curriculum"
	"github.com/abhisek/southpaw/internal/progression"
)

// Learner is the progress view the planner needs.
type Learner interface {
	NextAction() progression.Action
	UnlockedMoveCodes() []string
}

// UnitSource looks up curriculum units.
type UnitSource interface {
	ByID(id int) (curriculum.Unit, bool)
}

// Options sizes a plan.
type Options struct {
	Difficulty     combo.Difficulty
	Rounds         int
	CombosPerRound int
}

func (o Options) withDefaults() Options {
	if o.Difficulty == "" {
		o.Difficulty = combo.Beginner
	}
	if o.Rounds <= 0 {
		o.Rounds = DefaultRounds
	}
	if o.CombosPerRound <= 0 {
		o.CombosPerRound = DefaultCombosPerRound
	}
	return o
}

// Planner builds workout plans. It shares its generator's PRNG, so a
// Planner belongs to one session.
type Planner struct {
	gen   combo.Generator
	units UnitSource
	now   func() time.Time
}

// NewPlanner creates a planner.
func NewPlanner(gen combo.Generator, units UnitSource) *Planner {
	return &Planner{gen: gen, units: units, now: time.Now}
}

// Build creates a plan for the learner.
//
// While the learner's next step is Add to Arsenal or a progression
// session, combos are weighted toward the current unit's primary move and
// may use that unit's moves. Otherwise combos use only unlocked moves, or
// the whole catalog if nothing is unlocked yet.
func (p *Planner) Build(l Learner, opts Options) Plan {
	opts = opts.withDefaults()

	plan := Plan{
		ID:         uuid.New().String(),
		Mode:       ModeFree,
		Difficulty: opts.Difficulty,
		Allowed:    l.UnlockedMoveCodes(),
		CreatedAt:  p.now(),
	}

	next := l.NextAction()
	if next.Kind == progression.ActionAddToArsenal || next.Kind == progression.ActionProgression {
		if u, ok := p.units.ByID(next.UnitID); ok && u.PrimaryMove() != "" {
			plan.Mode = ModeArsenal
			plan.Target = u.PrimaryMove()
			plan.UnitID = u.ID
			plan.Allowed = mergeCodes(plan.Allowed, u.MoveCodes)
		}
	}

	var prev *combo.Combo
	plan.Rounds = make([][]combo.Combo, opts.Rounds)
	for r := range plan.Rounds {
		round := make([]combo.Combo, 0, opts.CombosPerRound)
		for i := 0; i < opts.CombosPerRound; i++ {
			var c combo.Combo
			if plan.Mode == ModeArsenal {
				c = p.gen.GenerateWeighted(opts.Difficulty, plan.Target, plan.Allowed, prev)
			} else {
				c = p.gen.Generate(opts.Difficulty, prev, plan.Allowed)
			}
			round = append(round, c)
			prev = &round[len(round)-1]
		}
		plan.Rounds[r] = round
	}
	return plan
}

// mergeCodes appends the codes of extra missing from base.
func mergeCodes(base, extra []string) []string {
	out := slices.Clone(base)
	for _, code := range extra {
		if !slices.Contains(out, code) {
			out = append(out, code)
		}
	}
	return out
}

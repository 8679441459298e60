package workout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/southpaw/internal/combo"
	"github.com/abhisek/southpaw/internal/curriculum"
	"github.com/abhisek/southpaw/internal/progression"
)

type fakeLearner struct {
	next     progression.Action
	unlocked []string
}

func (f fakeLearner) NextAction() progression.Action { return f.next }
func (f fakeLearner) UnlockedMoveCodes() []string    { return f.unlocked }

func newPlanner(seed uint64) *Planner {
	return NewPlanner(combo.New(combo.WithSeed(seed)), curriculum.Default())
}

func TestBuild_SizesAndDefaults(t *testing.T) {
	p := newPlanner(1)
	plan := p.Build(fakeLearner{next: progression.Action{Kind: progression.ActionComplete}}, Options{})

	_, err := uuid.Parse(plan.ID)
	require.NoError(t, err)
	assert.Equal(t, combo.Beginner, plan.Difficulty)
	require.Len(t, plan.Rounds, DefaultRounds)
	for _, r := range plan.Rounds {
		assert.Len(t, r, DefaultCombosPerRound)
	}
	assert.Equal(t, DefaultRounds*DefaultCombosPerRound, plan.TotalCombos())
	assert.False(t, plan.CreatedAt.IsZero())
}

func TestBuild_FreeModeUsesUnlockedMoves(t *testing.T) {
	p := newPlanner(2)
	unlocked := []string{"1", "2", "slip"}
	plan := p.Build(
		fakeLearner{next: progression.Action{Kind: progression.ActionDrill, UnitID: 4}, unlocked: unlocked},
		Options{Difficulty: combo.Intermediate, Rounds: 4, CombosPerRound: 6},
	)

	assert.Equal(t, ModeFree, plan.Mode)
	assert.Empty(t, plan.Target)
	assert.Equal(t, 24, plan.TotalCombos())
	for _, r := range plan.Rounds {
		for _, c := range r {
			require.NotEmpty(t, c.MoveCodes)
			assert.Equal(t, combo.Intermediate, c.Difficulty)
			for _, code := range c.MoveCodes {
				assert.Contains(t, unlocked, code)
			}
		}
	}
}

func TestBuild_NothingUnlockedUsesWholeCatalog(t *testing.T) {
	p := newPlanner(3)
	plan := p.Build(fakeLearner{next: progression.Action{Kind: progression.ActionDrill, UnitID: 1}}, Options{})

	assert.Equal(t, ModeFree, plan.Mode)
	assert.Empty(t, plan.Allowed)
	for _, r := range plan.Rounds {
		for _, c := range r {
			assert.NotEmpty(t, c.MoveCodes)
		}
	}
}

func TestBuild_ArsenalMode(t *testing.T) {
	unit, ok := curriculum.ByID(3)
	require.True(t, ok)
	target := unit.PrimaryMove()

	for _, kind := range []progression.ActionKind{progression.ActionAddToArsenal, progression.ActionProgression} {
		t.Run(string(kind), func(t *testing.T) {
			p := newPlanner(4)
			plan := p.Build(
				fakeLearner{next: progression.Action{Kind: kind, UnitID: 3}, unlocked: []string{"1", "2"}},
				Options{Difficulty: combo.Beginner, Rounds: 5, CombosPerRound: 10},
			)

			assert.Equal(t, ModeArsenal, plan.Mode)
			assert.Equal(t, target, plan.Target)
			assert.Equal(t, 3, plan.UnitID)
			assert.Subset(t, plan.Allowed, unit.MoveCodes)
			assert.Subset(t, plan.Allowed, []string{"1", "2"})

			for _, r := range plan.Rounds {
				for _, c := range r {
					assert.True(t, c.Contains(target), "combo %v lacks %s", c.MoveCodes, target)
					assert.Contains(t, c.Description, "Arsenal focus")
					for _, code := range c.MoveCodes {
						assert.Contains(t, plan.Allowed, code)
					}
				}
			}
		})
	}
}

func TestBuild_ArsenalUnknownUnitFallsBackToFree(t *testing.T) {
	p := newPlanner(5)
	plan := p.Build(fakeLearner{next: progression.Action{Kind: progression.ActionAddToArsenal, UnitID: 999}}, Options{})
	assert.Equal(t, ModeFree, plan.Mode)
}

func TestBuild_SequenceIDsIncrease(t *testing.T) {
	p := newPlanner(6)
	plan := p.Build(fakeLearner{next: progression.Action{Kind: progression.ActionComplete}}, Options{Rounds: 2, CombosPerRound: 3})

	last := 0
	for _, r := range plan.Rounds {
		for _, c := range r {
			assert.Greater(t, c.SequenceID, last)
			last = c.SequenceID
		}
	}
}

func TestMergeCodes(t *testing.T) {
	base := []string{"1", "2"}
	got := mergeCodes(base, []string{"2", "3", "slip"})
	assert.Equal(t, []string{"1", "2", "3", "slip"}, got)
	assert.Equal(t, []string{"1", "2"}, base)
	assert.Equal(t, []string{"3"}, mergeCodes(nil, []string{"3"}))
}

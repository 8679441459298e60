package combo

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/abhisek/southpaw/internal/moves"
)

// MoveSource is the catalog view the generator draws from.
type MoveSource interface {
	ByCategory(c moves.Category) []moves.Move
	ByCode(code string) (moves.Move, bool)
}

// WeightRange bounds how many times the target is repeated in a weighted
// slot pool. Both ends are inclusive.
type WeightRange struct {
	Min int
	Max int
}

// Validate reports whether the range can size a weighted pool.
func (w WeightRange) Validate() error {
	if w.Min < 1 {
		return fmt.Errorf("weight range min must be >= 1, got %d", w.Min)
	}
	if w.Max < w.Min {
		return fmt.Errorf("weight range max %d is below min %d", w.Max, w.Min)
	}
	return nil
}

// DefaultWeightRange puts the target in a slot roughly 60-77% of the time
// for a category of five moves.
func DefaultWeightRange() WeightRange {
	return WeightRange{Min: 6, Max: 10}
}

// RandomGenerator builds combos from category patterns with a seeded PRNG.
// It is not safe for concurrent use; give each session its own generator.
type RandomGenerator struct {
	src     MoveSource
	rng     *rand.Rand
	weights WeightRange
	seq     int
}

// Option configures a RandomGenerator.
type Option func(*RandomGenerator)

// WithRand sets the PRNG.
func WithRand(r *rand.Rand) Option {
	return func(g *RandomGenerator) { g.rng = r }
}

// WithSeed seeds the PRNG so generation is reproducible.
func WithSeed(seed uint64) Option {
	return func(g *RandomGenerator) { g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithCatalog sets the move catalog. Defaults to the built-in catalog.
func WithCatalog(src MoveSource) Option {
	return func(g *RandomGenerator) { g.src = src }
}

// WithWeightRange overrides the weighted-slot repeat range. An invalid
// range is ignored and the default kept.
func WithWeightRange(w WeightRange) Option {
	return func(g *RandomGenerator) {
		if w.Validate() == nil {
			g.weights = w
		}
	}
}

// New creates a RandomGenerator.
func New(opts ...Option) *RandomGenerator {
	g := &RandomGenerator{
		src:     moves.Default(),
		weights: DefaultWeightRange(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

var _ Generator = (*RandomGenerator)(nil)

// Generate builds a combo for the difficulty.
func (g *RandomGenerator) Generate(diff Difficulty, previous *Combo, allowed []string) Combo {
	f := newFilter(allowed)
	codes := g.build(diff, f, "")
	if previous != nil && slices.Equal(codes, previous.MoveCodes) {
		codes = g.build(diff, f, "")
	}
	return g.finish(diff, codes, "")
}

// GenerateWeighted builds a combo biased toward target.
func (g *RandomGenerator) GenerateWeighted(diff Difficulty, target string, allowed []string, previous *Combo) Combo {
	f := newFilter(allowed)
	codes := g.build(diff, f, target)
	if previous != nil && slices.Equal(codes, previous.MoveCodes) {
		codes = g.build(diff, f, target)
	}
	return g.finish(diff, codes, target)
}

// build runs one pass of pattern selection, slot filling and repair.
func (g *RandomGenerator) build(diff Difficulty, f filter, target string) []string {
	table := patternTable(diff)
	pattern := table[g.rng.IntN(len(table))]

	codes := make([]string, 0, len(pattern))
	for _, cat := range pattern {
		eligible := g.eligible(cat, f)
		if len(eligible) == 0 {
			continue
		}
		if target != "" {
			codes = append(codes, g.pickWeighted(eligible, target))
		} else {
			codes = append(codes, eligible[g.rng.IntN(len(eligible))])
		}
	}

	codes = g.repair(codes, f)
	if target != "" {
		codes = g.forceTarget(codes, target)
	}
	return codes
}

// eligible returns the codes of a category that pass the filter.
func (g *RandomGenerator) eligible(cat moves.Category, f filter) []string {
	ms := g.src.ByCategory(cat)
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		if f.allows(m.Code) {
			out = append(out, m.Code)
		}
	}
	return out
}

// pickWeighted draws from a pool where target is repeated W times and
// every other eligible code appears once. If target is not eligible the
// draw is uniform.
func (g *RandomGenerator) pickWeighted(eligible []string, target string) string {
	if !slices.Contains(eligible, target) {
		return eligible[g.rng.IntN(len(eligible))]
	}
	w := g.weights.Min + g.rng.IntN(g.weights.Max-g.weights.Min+1)
	pool := make([]string, 0, w+len(eligible)-1)
	for i := 0; i < w; i++ {
		pool = append(pool, target)
	}
	for _, code := range eligible {
		if code != target {
			pool = append(pool, code)
		}
	}
	return pool[g.rng.IntN(len(pool))]
}

// repair makes a raw slot sequence usable: never empty when anything is
// allowed, at least one punch when a punch is allowed, no runs of three.
func (g *RandomGenerator) repair(codes []string, f filter) []string {
	punches := g.eligible(moves.CategoryPunch, f)

	if len(codes) == 0 {
		switch {
		case len(punches) > 0:
			codes = g.sample(punches, 2)
		case f.active:
			codes = g.sample(g.allowedCodes(f), 2)
		default:
			codes = slices.Clone(defaultPair)
		}
	}

	if !g.hasPunch(codes) && len(punches) > 0 {
		at := g.rng.IntN(len(codes) + 1)
		codes = slices.Insert(codes, at, punches[g.rng.IntN(len(punches))])
	}

	return collapseRuns(codes)
}

// forceTarget guarantees target appears. A punch target replaces an
// existing punch; anything else is inserted at a random position.
func (g *RandomGenerator) forceTarget(codes []string, target string) []string {
	if slices.Contains(codes, target) {
		return codes
	}
	if m, ok := g.src.ByCode(target); ok && m.IsPunch() {
		var punchSlots []int
		for i, code := range codes {
			if g.isPunch(code) {
				punchSlots = append(punchSlots, i)
			}
		}
		if len(punchSlots) > 0 {
			out := slices.Clone(codes)
			out[punchSlots[g.rng.IntN(len(punchSlots))]] = target
			return out
		}
	}
	return slices.Insert(slices.Clone(codes), g.rng.IntN(len(codes)+1), target)
}

// sample returns up to n distinct codes chosen uniformly from codes.
func (g *RandomGenerator) sample(codes []string, n int) []string {
	if len(codes) <= n {
		out := slices.Clone(codes)
		g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
		return out
	}
	perm := g.rng.Perm(len(codes))
	out := make([]string, n)
	for i := range out {
		out[i] = codes[perm[i]]
	}
	return out
}

// allowedCodes returns every catalog code that passes the filter.
func (g *RandomGenerator) allowedCodes(f filter) []string {
	var out []string
	for _, cat := range moves.AllCategories() {
		out = append(out, g.eligible(cat, f)...)
	}
	return out
}

func (g *RandomGenerator) isPunch(code string) bool {
	m, ok := g.src.ByCode(code)
	return ok && m.IsPunch()
}

func (g *RandomGenerator) hasPunch(codes []string) bool {
	return slices.ContainsFunc(codes, g.isPunch)
}

// finish wraps codes in a Combo with metadata.
func (g *RandomGenerator) finish(diff Difficulty, codes []string, target string) Combo {
	g.seq++
	c := Combo{
		MoveCodes:  codes,
		Difficulty: diff,
		Name:       g.name(codes),
		SequenceID: g.seq,
	}
	if target != "" {
		label := target
		if m, ok := g.src.ByCode(target); ok {
			label = m.Name
		}
		c.Description = "Arsenal focus: " + label
	}
	return c
}

// name joins the move names of a sequence ("Jab - Cross - Slip").
func (g *RandomGenerator) name(codes []string) string {
	names := make([]string, len(codes))
	for i, code := range codes {
		names[i] = code
		if m, ok := g.src.ByCode(code); ok {
			names[i] = m.Name
		}
	}
	return strings.Join(names, " - ")
}

// collapseRuns shortens every run of 3+ identical codes to 2 in a single
// left-to-right pass.
func collapseRuns(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		n := len(out)
		if n >= 2 && out[n-1] == code && out[n-2] == code {
			continue
		}
		out = append(out, code)
	}
	return out
}

// filter is an optional allow-list of move codes.
type filter struct {
	active bool
	set    map[string]bool
}

func newFilter(allowed []string) filter {
	if len(allowed) == 0 {
		return filter{}
	}
	set := make(map[string]bool, len(allowed))
	for _, code := range allowed {
		set[code] = true
	}
	return filter{active: true, set: set}
}

func (f filter) allows(code string) bool {
	return !f.active || f.set[code]
}

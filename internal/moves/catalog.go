package moves

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed moves.yaml
var movesYAML []byte

// Catalog is an immutable, indexed set of moves.
type Catalog struct {
	moves      []Move
	byCode     map[string]int
	byID       map[int]int
	byCategory map[Category][]Move
}

// c is the built-in catalog, loaded from moves.yaml at init.
var c *Catalog

func init() {
	all, err := parseMoves(movesYAML)
	if err != nil {
		panic(fmt.Sprintf("moves: %v", err))
	}
	c = NewCatalog(all)
}

func parseMoves(data []byte) ([]Move, error) {
	var doc struct {
		Moves []Move `yaml:"moves"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse moves.yaml: %w", err)
	}
	return doc.Moves, nil
}

// NewCatalog builds a catalog from the given moves, ordered by ID.
// Duplicates are kept as-is; use ValidateMoves to detect them.
func NewCatalog(ms []Move) *Catalog {
	sorted := slices.Clone(ms)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	cat := &Catalog{
		moves:      sorted,
		byCode:     make(map[string]int, len(sorted)),
		byID:       make(map[int]int, len(sorted)),
		byCategory: make(map[Category][]Move),
	}
	for i, m := range sorted {
		if _, dup := cat.byCode[m.Code]; !dup {
			cat.byCode[m.Code] = i
		}
		if _, dup := cat.byID[m.ID]; !dup {
			cat.byID[m.ID] = i
		}
		cat.byCategory[m.Category] = append(cat.byCategory[m.Category], m)
	}
	return cat
}

// All returns every move ordered by ID.
func (cat *Catalog) All() []Move {
	return slices.Clone(cat.moves)
}

// Len returns the number of moves in the catalog.
func (cat *Catalog) Len() int {
	return len(cat.moves)
}

// ByCategory returns the moves in a category, ordered by ID.
func (cat *Catalog) ByCategory(category Category) []Move {
	return slices.Clone(cat.byCategory[category])
}

// ByCode looks up a move by its code.
func (cat *Catalog) ByCode(code string) (Move, bool) {
	i, ok := cat.byCode[code]
	if !ok {
		return Move{}, false
	}
	return cat.moves[i], true
}

// ByID looks up a move by its numeric ID.
func (cat *Catalog) ByID(id int) (Move, bool) {
	i, ok := cat.byID[id]
	if !ok {
		return Move{}, false
	}
	return cat.moves[i], true
}

// Codes returns the codes of every move in a category.
func (cat *Catalog) Codes(category Category) []string {
	ms := cat.byCategory[category]
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Code
	}
	return out
}

// Validate checks the catalog for structural issues.
func (cat *Catalog) Validate() error {
	return ValidateMoves(cat.moves)
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return c
}

// All returns every built-in move ordered by ID.
func All() []Move {
	return c.All()
}

// ByCategory returns the built-in moves in a category.
func ByCategory(category Category) []Move {
	return c.ByCategory(category)
}

// ByCode looks up a built-in move by code.
func ByCode(code string) (Move, bool) {
	return c.ByCode(code)
}

// ByID looks up a built-in move by ID.
func ByID(id int) (Move, bool) {
	return c.ByID(id)
}

// Validate checks the built-in catalog.
func Validate() error {
	return c.Validate()
}

package curriculum

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed curriculum.yaml
var curriculumYAML []byte

// Curriculum holds the ordered units with precomputed indices.
type Curriculum struct {
	units      []Unit
	levels     map[int]string
	byID       map[int]int
	byLevel    map[int][]Unit
	levelOrder []int
}

// cur is the built-in curriculum, loaded from curriculum.yaml at init.
var cur *Curriculum

func init() {
	units, levels, err := parse(curriculumYAML)
	if err != nil {
		panic(fmt.Sprintf("curriculum: %v", err))
	}
	cur = New(units)
	for _, l := range levels {
		cur.levels[l.Number] = l.Name
	}
}

func parse(data []byte) ([]Unit, []Level, error) {
	var doc struct {
		Levels []Level `yaml:"levels"`
		Units  []Unit  `yaml:"units"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse curriculum.yaml: %w", err)
	}
	return doc.Units, doc.Levels, nil
}

// New builds a curriculum from units. Units are sorted by ID, which
// defines the unlock order.
func New(units []Unit) *Curriculum {
	sorted := slices.Clone(units)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	c := &Curriculum{
		units:   sorted,
		levels:  make(map[int]string),
		byID:    make(map[int]int, len(sorted)),
		byLevel: make(map[int][]Unit),
	}
	for i, u := range sorted {
		if _, dup := c.byID[u.ID]; !dup {
			c.byID[u.ID] = i
		}
		if _, seen := c.byLevel[u.Level]; !seen {
			c.levelOrder = append(c.levelOrder, u.Level)
		}
		c.byLevel[u.Level] = append(c.byLevel[u.Level], u)
	}
	sort.Ints(c.levelOrder)
	for lvl, us := range c.byLevel {
		sort.SliceStable(us, func(i, j int) bool { return us[i].Order < us[j].Order })
		c.byLevel[lvl] = us
	}
	return c
}

// All returns every unit in unlock order.
func (c *Curriculum) All() []Unit {
	return slices.Clone(c.units)
}

// Len returns the number of units.
func (c *Curriculum) Len() int {
	return len(c.units)
}

// ByID returns the unit with the given ID.
func (c *Curriculum) ByID(id int) (Unit, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Unit{}, false
	}
	return c.units[i], true
}

// ByLevel returns the units of a level ordered by their position within it.
func (c *Curriculum) ByLevel(level int) []Unit {
	return slices.Clone(c.byLevel[level])
}

// Levels returns the distinct level numbers in ascending order.
func (c *Curriculum) Levels() []int {
	return slices.Clone(c.levelOrder)
}

// LevelName returns the display name of a level.
func (c *Curriculum) LevelName(level int) string {
	if name, ok := c.levels[level]; ok {
		return name
	}
	return fmt.Sprintf("Level %d", level)
}

// UnlockIndexOf returns the position of a unit in unlock order, or -1.
func (c *Curriculum) UnlockIndexOf(id int) int {
	i, ok := c.byID[id]
	if !ok {
		return -1
	}
	return i
}

// Next returns the unit after id in unlock order.
func (c *Curriculum) Next(id int) (Unit, bool) {
	i := c.UnlockIndexOf(id)
	if i < 0 || i+1 >= len(c.units) {
		return Unit{}, false
	}
	return c.units[i+1], true
}

// Validate checks the curriculum for structural issues.
func (c *Curriculum) Validate() error {
	return validateUnits(c.units)
}

// Default returns the built-in curriculum.
func Default() *Curriculum {
	return cur
}

// All returns every built-in unit in unlock order.
func All() []Unit {
	return cur.All()
}

// ByID returns a built-in unit by ID.
func ByID(id int) (Unit, bool) {
	return cur.ByID(id)
}

// ByLevel returns the built-in units of a level.
func ByLevel(level int) []Unit {
	return cur.ByLevel(level)
}

// UnlockIndexOf returns a built-in unit's position in unlock order, or -1.
func UnlockIndexOf(id int) int {
	return cur.UnlockIndexOf(id)
}

// Validate checks the built-in curriculum.
func Validate() error {
	return cur.Validate()
}

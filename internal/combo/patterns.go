package combo

import "github.com/abhisek/southpaw/internal/moves"

const (
	pu = moves.CategoryPunch
	de = moves.CategoryDefense
	fw = moves.CategoryFootwork
	dc = moves.CategoryDeception
)

// patterns are the category shapes a combo is built from. Beginner
// patterns have 2-3 slots, intermediate 3-5, advanced 4-7.
var patterns = map[Difficulty][][]moves.Category{
	Beginner: {
		{pu, pu},
		{pu, pu, pu},
		{pu, de},
		{pu, pu, de},
		{de, pu},
		{pu, de, pu},
	},
	Intermediate: {
		{pu, pu, pu},
		{pu, de, pu},
		{pu, pu, de, pu},
		{fw, pu, pu, de},
		{pu, pu, pu, pu},
		{dc, pu, pu},
		{pu, de, pu, pu, fw},
	},
	Advanced: {
		{pu, pu, de, pu},
		{pu, pu, de, pu, pu},
		{dc, pu, pu, de, pu, fw},
		{fw, pu, pu, pu, de, pu, pu},
		{pu, de, pu, dc, pu, pu},
		{de, pu, pu, dc, pu, pu, fw},
		{pu, pu, pu, de, pu},
	},
}

// patternTable returns the patterns for a difficulty. Unknown
// difficulties use the beginner table. Callers must not modify it.
func patternTable(diff Difficulty) [][]moves.Category {
	if table, ok := patterns[diff]; ok {
		return table
	}
	return patterns[Beginner]
}

// defaultPair is the fallback combo when nothing else can be built and no
// allow-list is active.
var defaultPair = []string{"1", "2"}

package moves

// Category groups moves by what they do in a combo.
type Category string

const (
	CategoryPunch     Category = "punch"
	CategoryDefense   Category = "defense"
	CategoryFootwork  Category = "footwork"
	CategoryDeception Category = "deception"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryPunch,
		CategoryDefense,
		CategoryFootwork,
		CategoryDeception,
	}
}

// CategoryDisplayName returns a human-readable name for a category.
func CategoryDisplayName(c Category) string {
	switch c {
	case CategoryPunch:
		return "Punches"
	case CategoryDefense:
		return "Defense"
	case CategoryFootwork:
		return "Footwork"
	case CategoryDeception:
		return "Deception"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPunch, CategoryDefense, CategoryFootwork, CategoryDeception:
		return true
	}
	return false
}

// Move is a single atomic technique. Codes are what combos are made of;
// punches use the traditional numbering ("1" jab, "2" cross, ...).
type Move struct {
	ID          int      `yaml:"id"`
	Code        string   `yaml:"code"`
	Category    Category `yaml:"category"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Tips        []string `yaml:"tips,omitempty"`
}

// IsPunch reports whether the move is in the punch category.
func (m Move) IsPunch() bool {
	return m.Category == CategoryPunch
}

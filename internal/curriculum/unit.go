package curriculum

// Unit is one step of the curriculum. Units unlock in ascending ID order.
type Unit struct {
	ID          int      `yaml:"id"`
	Level       int      `yaml:"level"`
	Order       int      `yaml:"order"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	MoveCodes   []string `yaml:"moves"`
}

// PrimaryMove returns the first move code the unit teaches, or "" if none.
func (u Unit) PrimaryMove() string {
	if len(u.MoveCodes) == 0 {
		return ""
	}
	return u.MoveCodes[0]
}

// Level is a named group of units.
type Level struct {
	Number int    `yaml:"number"`
	Name   string `yaml:"name"`
}

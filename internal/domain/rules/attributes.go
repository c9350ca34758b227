package rules

// Attr names one of the six basic ability scores
type Attr string

const (
	STR Attr = "strength"
	DEX Attr = "dexterity"
	CON Attr = "constitution"
	INT Attr = "intelligence"
	WIS Attr = "wisdom"
	CHA Attr = "charisma"
)

// Attrs lists every attribute in sheet order
func Attrs() []Attr {
	return []Attr{STR, DEX, CON, INT, WIS, CHA}
}

// Attributes holds the six basic ability scores
type Attributes struct {
	Strength     int `json:"strength" yaml:"strength"`
	Dexterity    int `json:"dexterity" yaml:"dexterity"`
	Constitution int `json:"constitution" yaml:"constitution"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Wisdom       int `json:"wisdom" yaml:"wisdom"`
	Charisma     int `json:"charisma" yaml:"charisma"`
}

// NeutralAttributes returns a set of scores that all modify to zero
func NeutralAttributes() Attributes {
	return Attributes{
		Strength:     9,
		Dexterity:    9,
		Constitution: 9,
		Intelligence: 9,
		Wisdom:       9,
		Charisma:     9,
	}
}

// Get returns the raw score for the given attribute
func (a Attributes) Get(attr Attr) int {
	switch attr {
	case STR:
		return a.Strength
	case DEX:
		return a.Dexterity
	case CON:
		return a.Constitution
	case INT:
		return a.Intelligence
	case WIS:
		return a.Wisdom
	case CHA:
		return a.Charisma
	}
	return 0
}

// Modifier returns the attribute modifier for the given attribute
func (a Attributes) Modifier(attr Attr) int {
	score := a.Get(attr)
	switch {
	case score >= 18:
		return 3
	case score >= 16:
		return 2
	case score >= 13:
		return 1
	case score >= 9:
		return 0
	case score >= 6:
		return -1
	case score >= 4:
		return -2
	default:
		return -3
	}
}

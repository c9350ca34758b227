package rules

import (
	"github.com/veildark/acks-engine/internal/dice"
)

// Race is a playable ancestry. Races skew which dice get rolled for
// which attribute, nothing more.
type Race string

const (
	RaceHuman Race = "human"
	RaceDwarf Race = "dwarf"
	RaceElf   Race = "elf"
)

// RandomRace picks a race with the book's weighting (humans common)
func RandomRace(roller dice.Roller) (Race, error) {
	r, err := dice.Eval(roller, dice.Simple(1, 100))
	if err != nil {
		return RaceHuman, err
	}
	switch {
	case r <= 80:
		return RaceHuman, nil
	case r <= 90:
		return RaceDwarf, nil
	default:
		return RaceElf, nil
	}
}

// RollAttributes rolls a fresh attribute block for the race. Dwarves are
// hardy but gruff, elves clever but frail; both swap a straight 3d6 for
// a skewed 4d6 drop on the affected scores.
func (race Race) RollAttributes(roller dice.Roller) (Attributes, error) {
	straight := dice.Simple(3, 6)
	spec := func(attr Attr) dice.RollSpec {
		switch race {
		case RaceDwarf:
			switch attr {
			case CON:
				return dice.SimpleDropLowest(4, 6)
			case CHA:
				return dice.SimpleDropHighest(4, 6)
			}
		case RaceElf:
			switch attr {
			case INT:
				return dice.SimpleDropLowest(4, 6)
			case CON:
				return dice.SimpleDropHighest(4, 6)
			}
		case RaceHuman:
		}
		return straight
	}

	var attrs Attributes
	for _, attr := range Attrs() {
		score, err := dice.Eval(roller, spec(attr))
		if err != nil {
			return Attributes{}, err
		}
		switch attr {
		case STR:
			attrs.Strength = score
		case DEX:
			attrs.Dexterity = score
		case CON:
			attrs.Constitution = score
		case INT:
			attrs.Intelligence = score
		case WIS:
			attrs.Wisdom = score
		case CHA:
			attrs.Charisma = score
		}
	}
	return attrs, nil
}

package dice

import (
	"fmt"
	"math"
	"sort"
)

// ModifierKind selects what operation a roll modifier applies
type ModifierKind string

const (
	ModifierAdd      ModifierKind = "add"
	ModifierMultiply ModifierKind = "multiply"
	ModifierDivFloor ModifierKind = "div_floor"
	ModifierDivCeil  ModifierKind = "div_ceil"
	ModifierDivRound ModifierKind = "div_round"
)

// DropKind selects which end of the sorted dice gets discarded
type DropKind string

const (
	DropNone    DropKind = "none"
	DropHighest DropKind = "highest"
	DropLowest  DropKind = "lowest"
)

// Drop describes what, and how many, dice to discard before summing
type Drop struct {
	Kind  DropKind `json:"kind"`
	Count uint     `json:"count"`
}

// NoDrop returns a Drop that keeps every die
func NoDrop() Drop {
	return Drop{Kind: DropNone}
}

// RollSpec is a parsed dice roll: how many dice, how many sides, and how
// the result gets modified and clamped. All the fields are base data; a
// spec is cheap to copy and safe to reuse across rolls.
type RollSpec struct {
	// Amount is how many dice to roll. Should be greater than zero.
	Amount uint `json:"amount"`
	// Sides is how many sides each die has. Should be greater than zero.
	Sides uint `json:"sides"`
	// Modifier to apply. Effect varies based on ModifierKind.
	Modifier int `json:"modifier"`
	// ModifierKind is what operation the modifier applies.
	ModifierKind ModifierKind `json:"modifier_kind"`
	// ModifierEachDie applies the modifier to every die individually
	// instead of to the total.
	ModifierEachDie bool `json:"modifier_each_die"`
	// Drop describes which dice to ignore.
	Drop Drop `json:"drop"`
	// MinValue is the minimum value this roll will evaluate to.
	MinValue int `json:"min_value"`
}

// Simple returns a plain NdM roll with no modifier
func Simple(amount, sides uint) RollSpec {
	return RollSpec{
		Amount:       amount,
		Sides:        sides,
		ModifierKind: ModifierAdd,
		Drop:         NoDrop(),
		MinValue:     1,
	}
}

// SimpleModifier returns an NdM+X roll
func SimpleModifier(amount, sides uint, modifier int) RollSpec {
	spec := Simple(amount, sides)
	spec.Modifier = modifier
	return spec
}

// SimpleDropHighest returns an NdM roll discarding the single highest die
func SimpleDropHighest(amount, sides uint) RollSpec {
	spec := Simple(amount, sides)
	spec.Drop = Drop{Kind: DropHighest, Count: 1}
	return spec
}

// SimpleDropLowest returns an NdM roll discarding the single lowest die
func SimpleDropLowest(amount, sides uint) RollSpec {
	spec := Simple(amount, sides)
	spec.Drop = Drop{Kind: DropLowest, Count: 1}
	return spec
}

// Notation renders the spec back to dice notation
func (s RollSpec) Notation() string {
	out := fmt.Sprintf("%dd%d", s.Amount, s.Sides)
	if s.ModifierEachDie {
		out += "&"
	}
	if s.Modifier != 0 || s.ModifierKind != ModifierAdd {
		switch s.ModifierKind {
		case ModifierAdd:
			out += fmt.Sprintf("%+d", s.Modifier)
		case ModifierMultiply:
			out += fmt.Sprintf("x%d", s.Modifier)
		case ModifierDivRound:
			out += fmt.Sprintf("/%d", s.Modifier)
		case ModifierDivCeil:
			out += fmt.Sprintf("/u%d", s.Modifier)
		case ModifierDivFloor:
			out += fmt.Sprintf("/d%d", s.Modifier)
		}
	}
	switch s.Drop.Kind {
	case DropHighest:
		out += fmt.Sprintf("_h%d", s.Drop.Count)
	case DropLowest:
		out += fmt.Sprintf("_l%d", s.Drop.Count)
	case DropNone:
	}
	if s.MinValue != 1 {
		out += fmt.Sprintf(">=%d", s.MinValue)
	}
	return out
}

// Eval rolls the spec against the given roller. A zero amount or zero
// sides evaluates to 0 without drawing any randomness, as does a drop
// count that would discard every die.
func Eval(r Roller, spec RollSpec) (int, error) {
	if spec.Amount == 0 || spec.Sides == 0 {
		return 0, nil
	}
	if spec.Drop.Kind != DropNone && spec.Drop.Count >= spec.Amount {
		return 0, nil
	}

	raw, err := r.Roll(int(spec.Amount), int(spec.Sides))
	if err != nil {
		return 0, err
	}

	switch spec.Drop.Kind {
	case DropHighest:
		sort.Ints(raw)
		raw = raw[:len(raw)-int(spec.Drop.Count)]
	case DropLowest:
		sort.Ints(raw)
		raw = raw[spec.Drop.Count:]
	case DropNone:
	}

	result := 0
	for _, die := range raw {
		if spec.ModifierEachDie {
			result += applyModifier(die, spec.Modifier, spec.ModifierKind)
		} else {
			result += die
		}
	}
	if !spec.ModifierEachDie {
		result = applyModifier(result, spec.Modifier, spec.ModifierKind)
	}

	if result < spec.MinValue {
		result = spec.MinValue
	}
	return result, nil
}

// applyModifier applies a single modifier operation. Division by zero is
// a no-op rather than an error.
func applyModifier(initial, modifier int, kind ModifierKind) int {
	switch kind {
	case ModifierAdd:
		return initial + modifier
	case ModifierMultiply:
		return initial * modifier
	case ModifierDivFloor:
		if modifier == 0 {
			return initial
		}
		return int(math.Floor(float64(initial) / float64(modifier)))
	case ModifierDivCeil:
		if modifier == 0 {
			return initial
		}
		return int(math.Ceil(float64(initial) / float64(modifier)))
	case ModifierDivRound:
		if modifier == 0 {
			return initial
		}
		return int(math.Round(float64(initial) / float64(modifier)))
	}
	return initial
}

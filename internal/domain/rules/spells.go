package rules

import (
	"math"
)

// MagicType separates the two spell lists
type MagicType string

const (
	MagicArcane MagicType = "arcane"
	MagicDivine MagicType = "divine"
)

// Ranks returns how many spell ranks the list has
func (m MagicType) Ranks() int {
	if m == MagicDivine {
		return divineRanks
	}
	return arcaneRanks
}

const (
	divineRanks = 5
	arcaneRanks = 6
)

// CasterTier is a class's relative casting strength. Rank 0 is a
// non-caster. Delayed tiers start casting later but then track their
// class level directly; non-delayed tiers scale the class level down
// before the slot table lookup.
type CasterTier struct {
	Rank    int  `json:"rank" yaml:"rank"`
	Delayed bool `json:"delayed" yaml:"delayed"`
}

// NonCaster is the tier of classes with no spells at all
func NonCaster() CasterTier {
	return CasterTier{}
}

// FullCaster is the strongest tier: full effective level plus bonus slots
func FullCaster() CasterTier {
	return CasterTier{Rank: 4}
}

// EffectiveLevel maps a class level to the level used for slot table
// lookups. Negative results clamp to 0 (no spells yet).
func (t CasterTier) EffectiveLevel(level int) int {
	if t.Rank <= 0 || level <= 0 {
		return 0
	}
	if t.Delayed {
		eff := level - delayOffset(t.Rank)
		if eff < 0 {
			return 0
		}
		return eff
	}
	switch t.Rank {
	case 1:
		return level / 4
	case 2:
		return int(math.Round(float64(level) / 2.0))
	default:
		return level
	}
}

// delayOffset is how many levels a delayed tier waits before casting
func delayOffset(rank int) int {
	switch rank {
	case 1:
		return 4
	case 2:
		return 3
	case 3:
		return 2
	default:
		return 1
	}
}

// divineSlots is spells per day by effective level (rows 1-14) and rank.
// Levels past the last row saturate.
var divineSlots = [][divineRanks]int{
	{0, 0, 0, 0, 0},
	{1, 0, 0, 0, 0},
	{2, 0, 0, 0, 0},
	{2, 1, 0, 0, 0},
	{2, 2, 0, 0, 0},
	{2, 2, 1, 1, 0},
	{2, 2, 2, 1, 1},
	{2, 2, 2, 2, 1},
	{3, 3, 2, 2, 1},
	{3, 3, 3, 2, 2},
	{3, 3, 3, 3, 2},
	{4, 4, 3, 3, 2},
	{4, 4, 4, 3, 3},
	{4, 4, 4, 4, 3},
}

// arcaneSlots is the mage column of the same table, six ranks deep
var arcaneSlots = [][arcaneRanks]int{
	{1, 0, 0, 0, 0, 0},
	{2, 0, 0, 0, 0, 0},
	{2, 1, 0, 0, 0, 0},
	{2, 2, 0, 0, 0, 0},
	{2, 2, 1, 0, 0, 0},
	{2, 2, 2, 0, 0, 0},
	{3, 2, 2, 1, 0, 0},
	{3, 3, 2, 2, 0, 0},
	{3, 3, 3, 2, 1, 0},
	{3, 3, 3, 3, 2, 0},
	{4, 3, 3, 3, 2, 1},
	{4, 4, 3, 3, 3, 2},
	{4, 4, 4, 3, 3, 2},
	{4, 4, 4, 4, 3, 3},
}

// MaxSpellSlots returns spells per day per rank for a caster tier at a
// class level. The returned slice always has magic.Ranks() entries.
func MaxSpellSlots(magic MagicType, tier CasterTier, level int) []int {
	ranks := magic.Ranks()
	slots := make([]int, ranks)

	eff := tier.EffectiveLevel(level)
	if eff == 0 {
		return slots
	}

	switch magic {
	case MagicDivine:
		row := divineSlots[tableRow(eff, len(divineSlots))]
		copy(slots, row[:])
	case MagicArcane:
		row := arcaneSlots[tableRow(eff, len(arcaneSlots))]
		copy(slots, row[:])
	}

	switch tier.Rank {
	case 3:
		for i, s := range slots {
			slots[i] = s + int(math.Round(float64(s)/3.0))
		}
	case 4:
		for i, s := range slots {
			slots[i] = s + int(math.Round(float64(s)/2.0))
		}
		if slots[0] == 0 {
			slots[0] = 1
		}
	}
	return slots
}

// RepertoireSize returns how many arcane spells per rank the caster can
// hold in their repertoire: the slot count, widened by a positive INT
// modifier wherever the base count is already nonzero.
func RepertoireSize(tier CasterTier, level, intModifier int) []int {
	slots := MaxSpellSlots(MagicArcane, tier, level)
	if intModifier <= 0 {
		return slots
	}
	for i, s := range slots {
		if s > 0 {
			slots[i] = s + intModifier
		}
	}
	return slots
}

// tableRow clamps a 1-based effective level onto a 0-based table index
func tableRow(eff, rows int) int {
	if eff > rows {
		return rows - 1
	}
	return eff - 1
}

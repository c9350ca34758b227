package rules

import (
	"math"
)

// AttackProgression picks how fast a class's attack throw climbs. Names
// read bonus-points-per-levels: OnePerTwo gains one point every two
// levels past first.
type AttackProgression string

const (
	AttackOnePerThree AttackProgression = "one_per_three"
	AttackOnePerTwo   AttackProgression = "one_per_two"
	AttackTwoPerThree AttackProgression = "two_per_three"
	AttackOnePerOne   AttackProgression = "one_per_one"
	AttackThreePerTwo AttackProgression = "three_per_two"
)

// AttackThrowBonus returns the base attack throw for a class progression
// at a level. Level 0 combatants throw at 9 regardless of progression.
func AttackThrowBonus(progression AttackProgression, level int) int {
	if level <= 0 {
		return 9
	}

	past := level - 1
	bonus := 0
	switch progression {
	case AttackOnePerThree:
		bonus = past / 3
	case AttackOnePerTwo:
		bonus = past / 2
	case AttackTwoPerThree:
		bonus = int(math.Round(float64(past) * 2.0 / 3.0))
	case AttackOnePerOne:
		bonus = past
	case AttackThreePerTwo:
		bonus = past * 3 / 2
	}
	return 10 + bonus
}

// NextLevelXPCost returns the XP needed to leave the current level.
// Levels 1-5 double the base cost each level; level 6 rounds to the
// nearer multiple of 5000 (exact halves round up); level 7 doubles the
// level-6 cost; past that each level adds the progression's flat cost.
func NextLevelXPCost(baseCost uint, progression SavingThrowProgression, currentLevel int) uint {
	switch {
	case currentLevel <= 0:
		return 100
	case currentLevel <= 5:
		return baseCost << (currentLevel - 1)
	case currentLevel == 6:
		unrounded := baseCost << 5
		remainder := unrounded % 5000
		if remainder < 2500 {
			return unrounded - remainder
		}
		return unrounded + 5000 - remainder
	case currentLevel == 7:
		return NextLevelXPCost(baseCost, progression, 6) * 2
	default:
		return NextLevelXPCost(baseCost, progression, 7) + progression.MaxXPCost()*uint(currentLevel-7)
	}
}

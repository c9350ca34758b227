package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veildark/acks-engine/internal/domain/rules"
)

func TestAttackThrowBonus(t *testing.T) {
	t.Run("Level zero throws at nine for every progression", func(t *testing.T) {
		progressions := []rules.AttackProgression{
			rules.AttackOnePerThree,
			rules.AttackOnePerTwo,
			rules.AttackTwoPerThree,
			rules.AttackOnePerOne,
			rules.AttackThreePerTwo,
		}
		for _, p := range progressions {
			assert.Equal(t, 9, rules.AttackThrowBonus(p, 0), string(p))
			assert.Equal(t, 9, rules.AttackThrowBonus(p, -3), string(p))
		}
	})

	t.Run("Level one is ten for every progression", func(t *testing.T) {
		assert.Equal(t, 10, rules.AttackThrowBonus(rules.AttackOnePerThree, 1))
		assert.Equal(t, 10, rules.AttackThrowBonus(rules.AttackThreePerTwo, 1))
	})

	tests := []struct {
		name        string
		progression rules.AttackProgression
		level       int
		want        int
	}{
		{"one per three at level 7", rules.AttackOnePerThree, 7, 12},
		{"one per three at level 6 floors", rules.AttackOnePerThree, 6, 11},
		{"one per two at level 5", rules.AttackOnePerTwo, 5, 12},
		{"one per two at level 4 floors", rules.AttackOnePerTwo, 4, 11},
		{"two per three at level 4 rounds up", rules.AttackTwoPerThree, 4, 12},
		{"two per three at level 7", rules.AttackTwoPerThree, 7, 14},
		{"one per one at level 5", rules.AttackOnePerOne, 5, 14},
		{"three per two at level 5", rules.AttackThreePerTwo, 5, 16},
		{"three per two at level 4 floors", rules.AttackThreePerTwo, 4, 14},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, rules.AttackThrowBonus(tc.progression, tc.level))
		})
	}
}

func TestNextLevelXPCost(t *testing.T) {
	t.Run("Level zero costs one hundred", func(t *testing.T) {
		assert.Equal(t, uint(100), rules.NextLevelXPCost(2000, rules.SaveProgressionFighter, 0))
	})

	t.Run("Levels one through five double each level", func(t *testing.T) {
		want := []uint{2000, 4000, 8000, 16000, 32000}
		for i, cost := range want {
			got := rules.NextLevelXPCost(2000, rules.SaveProgressionFighter, i+1)
			assert.Equal(t, cost, got, "level %d", i+1)
		}
	})

	t.Run("Level six rounds to the nearer five thousand", func(t *testing.T) {
		// 2000 << 5 = 64000, remainder 4000 rounds up
		assert.Equal(t, uint(65000), rules.NextLevelXPCost(2000, rules.SaveProgressionFighter, 6))
		// 1500 << 5 = 48000, remainder 3000 rounds up
		assert.Equal(t, uint(50000), rules.NextLevelXPCost(1500, rules.SaveProgressionThief, 6))
		// 1250 << 5 = 40000, already a multiple
		assert.Equal(t, uint(40000), rules.NextLevelXPCost(1250, rules.SaveProgressionCleric, 6))
		// 2500 << 5 = 80000, already a multiple
		assert.Equal(t, uint(80000), rules.NextLevelXPCost(2500, rules.SaveProgressionMage, 6))
		// 1600 << 5 = 51200, remainder 1200 rounds down
		assert.Equal(t, uint(50000), rules.NextLevelXPCost(1600, rules.SaveProgressionFighter, 6))
	})

	t.Run("Level seven doubles the rounded level six cost", func(t *testing.T) {
		assert.Equal(t, uint(130000), rules.NextLevelXPCost(2000, rules.SaveProgressionFighter, 7))
	})

	t.Run("Past seven each level adds the progression flat cost", func(t *testing.T) {
		assert.Equal(t, uint(250000), rules.NextLevelXPCost(2000, rules.SaveProgressionFighter, 8))
		assert.Equal(t, uint(370000), rules.NextLevelXPCost(2000, rules.SaveProgressionFighter, 9))
		// Mage: 2500 base, level 7 = 160000, plus 150000 per level
		assert.Equal(t, uint(310000), rules.NextLevelXPCost(2500, rules.SaveProgressionMage, 8))
	})
}

func TestSavingThrowProgression_MaxXPCost(t *testing.T) {
	assert.Equal(t, uint(120000), rules.SaveProgressionFighter.MaxXPCost())
	assert.Equal(t, uint(100000), rules.SaveProgressionCleric.MaxXPCost())
	assert.Equal(t, uint(100000), rules.SaveProgressionThief.MaxXPCost())
	assert.Equal(t, uint(150000), rules.SaveProgressionMage.MaxXPCost())
}

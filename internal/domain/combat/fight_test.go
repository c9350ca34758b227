package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veildark/acks-engine/internal/dice"
	"github.com/veildark/acks-engine/internal/domain/combat"
	"github.com/veildark/acks-engine/internal/errors"
)

// statsMap is a map-backed stats provider for tests
type statsMap map[combat.CombatantRef]*combat.CombatantStats

func (m statsMap) Lookup(ref combat.CombatantRef) (*combat.CombatantStats, bool) {
	stats, ok := m[ref]
	return stats, ok
}

type decisionRequest struct {
	owner   combat.Owner
	actor   combat.CombatantRef
	targets []combat.CombatantRef
}

// recordingNotifier captures announcements and decision requests in order
type recordingNotifier struct {
	announcements []string
	requests      []decisionRequest
}

func (n *recordingNotifier) Announce(text string) {
	n.announcements = append(n.announcements, text)
}

func (n *recordingNotifier) RequestDecision(owner combat.Owner, actor combat.CombatantRef, targets []combat.CombatantRef) {
	n.requests = append(n.requests, decisionRequest{owner: owner, actor: actor, targets: targets})
}

func (n *recordingNotifier) lastRequest(t *testing.T) decisionRequest {
	t.Helper()
	require.NotEmpty(t, n.requests)
	return n.requests[len(n.requests)-1]
}

func fighterStats(attackThrow, armorClass int, hp uint) *combat.CombatantStats {
	stats := combat.EmptyStats()
	stats.AttackThrow = attackThrow
	stats.ArmorClass = armorClass
	stats.Health = combat.NewHealth(hp)
	stats.Damage = combat.OneAttack(combat.NewDamageRoll(1, 6, 0, combat.AttackMelee))
	return stats
}

func TestFight_StartRound(t *testing.T) {
	hero := combat.PCRef("alice", "Hero")
	orc := combat.EnemyRefAutoName("orc", 0, "Orc")

	t.Run("Highest initiative acts first", func(t *testing.T) {
		fight := combat.NewFight(
			combat.Member{Owner: combat.Player("alice"), Ref: hero},
			combat.Member{Owner: combat.DM(), Ref: orc},
		)
		stats := statsMap{hero: fighterStats(10, 0, 10), orc: fighterStats(10, 0, 6)}
		notify := &recordingNotifier{}

		roller := dice.NewMockRoller()
		roller.SetRolls([]int{2, 5}) // hero 2, orc 5

		require.NoError(t, fight.StartRound(roller, stats, notify))

		assert.Equal(t, orc, fight.Combatants[0].Ref)
		assert.Equal(t, hero, fight.Combatants[1].Ref)
		assert.True(t, fight.OngoingRound)
		assert.Equal(t, uint(0), fight.CurrentTurn)
		assert.Equal(t, []string{"Round started!"}, notify.announcements)
	})

	t.Run("Initiative modifiers add to the roll", func(t *testing.T) {
		fight := combat.NewFight(
			combat.Member{Owner: combat.Player("alice"), Ref: hero},
			combat.Member{Owner: combat.DM(), Ref: orc},
		)
		heroStats := fighterStats(10, 0, 10)
		heroStats.Modifiers.Initiative.Add("quick", 4)
		stats := statsMap{hero: heroStats, orc: fighterStats(10, 0, 6)}

		roller := dice.NewMockRoller()
		roller.SetRolls([]int{2, 5}) // hero 2+4=6, orc 5

		require.NoError(t, fight.StartRound(roller, stats, &recordingNotifier{}))

		assert.Equal(t, hero, fight.Combatants[0].Ref)
	})

	t.Run("Exact ties put players before the DM", func(t *testing.T) {
		fight := combat.NewFight(
			combat.Member{Owner: combat.DM(), Ref: orc},
			combat.Member{Owner: combat.Player("alice"), Ref: hero},
		)
		stats := statsMap{hero: fighterStats(10, 0, 10), orc: fighterStats(10, 0, 6)}

		roller := dice.NewMockRoller()
		roller.SetRolls([]int{4, 4})

		require.NoError(t, fight.StartRound(roller, stats, &recordingNotifier{}))

		assert.Equal(t, hero, fight.Combatants[0].Ref)
		assert.Equal(t, orc, fight.Combatants[1].Ref)
	})
}

func TestFight_NextTurn(t *testing.T) {
	hero := combat.PCRef("alice", "Hero")
	orc := combat.EnemyRefAutoName("orc", 0, "Orc")
	orc2 := combat.EnemyRefAutoName("orc", 1, "Orc")

	newActiveFight := func() *combat.Fight {
		fight := combat.NewFight(
			combat.Member{Owner: combat.DM(), Ref: orc},
			combat.Member{Owner: combat.Player("alice"), Ref: hero},
			combat.Member{Owner: combat.DM(), Ref: orc2},
		)
		fight.OngoingRound = true
		return fight
	}

	t.Run("DM actors get targets without parking the fight", func(t *testing.T) {
		fight := newActiveFight()
		stats := statsMap{hero: fighterStats(10, 0, 10), orc: fighterStats(10, 0, 6), orc2: fighterStats(10, 0, 6)}
		notify := &recordingNotifier{}

		fight.NextTurn(stats, notify)

		request := notify.lastRequest(t)
		assert.Equal(t, combat.DM(), request.owner)
		assert.Equal(t, orc, request.actor)
		assert.ElementsMatch(t, []combat.CombatantRef{hero, orc2}, request.targets)
		assert.Nil(t, fight.AwaitingResponse)
	})

	t.Run("Player actors park the fight awaiting their response", func(t *testing.T) {
		fight := newActiveFight()
		fight.CurrentTurn = 1
		stats := statsMap{hero: fighterStats(10, 0, 10), orc: fighterStats(10, 0, 6), orc2: fighterStats(10, 0, 6)}
		notify := &recordingNotifier{}

		fight.NextTurn(stats, notify)

		require.NotNil(t, fight.AwaitingResponse)
		assert.Equal(t, combat.Player("alice"), *fight.AwaitingResponse)
		assert.Equal(t, combat.Player("alice"), notify.lastRequest(t).owner)
	})

	t.Run("Incapacitated actors are skipped", func(t *testing.T) {
		fight := newActiveFight()
		sleeping := fighterStats(10, 0, 6)
		sleeping.StatusEffects.Add(combat.StatusSleeping)
		stats := statsMap{hero: fighterStats(10, 0, 10), orc: sleeping, orc2: fighterStats(10, 0, 6)}
		notify := &recordingNotifier{}

		fight.NextTurn(stats, notify)

		assert.Equal(t, uint(1), fight.CurrentTurn)
		assert.Equal(t, hero, notify.lastRequest(t).actor)
	})

	t.Run("Dying combatants are not valid targets", func(t *testing.T) {
		fight := newActiveFight()
		down := fighterStats(10, 0, 6)
		down.StatusEffects.Add(combat.StatusDying)
		stats := statsMap{hero: fighterStats(10, 0, 10), orc: fighterStats(10, 0, 6), orc2: down}
		notify := &recordingNotifier{}

		fight.NextTurn(stats, notify)

		assert.ElementsMatch(t, []combat.CombatantRef{hero}, notify.lastRequest(t).targets)
	})

	t.Run("Running past the list concludes the round", func(t *testing.T) {
		fight := newActiveFight()
		fight.CurrentTurn = 3
		notify := &recordingNotifier{}

		fight.NextTurn(statsMap{}, notify)

		assert.False(t, fight.OngoingRound)
		assert.Equal(t, uint(0), fight.CurrentTurn)
		assert.Contains(t, notify.announcements, "Round over.")
	})
}

func TestFight_ResolveAction_Attack(t *testing.T) {
	hero := combat.PCRef("alice", "Hero")
	orc := combat.EnemyRefAutoName("orc", 0, "Orc")

	newDuel := func() *combat.Fight {
		fight := combat.NewFight(
			combat.Member{Owner: combat.Player("alice"), Ref: hero},
			combat.Member{Owner: combat.DM(), Ref: orc},
		)
		fight.OngoingRound = true
		return fight
	}

	t.Run("Natural twenty explodes into a critical success", func(t *testing.T) {
		fight := newDuel()
		stats := statsMap{hero: fighterStats(10, 0, 10), orc: fighterStats(10, 0, 20)}
		notify := &recordingNotifier{}

		roller := dice.NewMockRoller()
		// Attack: 20 explodes, then 5 stops it. 25 + 10 - 0 = 35.
		// Damage: 1d6 rolls 3, doubled to 6.
		roller.SetRolls([]int{20, 5, 3})

		require.NoError(t, fight.ResolveAction(roller, stats, notify, combat.Attack{Target: orc}))

		assert.Equal(t, 14, stats[orc].Health.Current)
		assert.Contains(t, notify.announcements, "Hero critically hit Orc for a whopping 6 damage!")
	})

	t.Run("Natural one is an unconditional critical failure", func(t *testing.T) {
		fight := newDuel()
		heroStats := fighterStats(10, 0, 10)
		heroStats.Modifiers.MeleeAttack.Add("blessing of every god at once", 50)
		stats := statsMap{hero: heroStats, orc: fighterStats(10, 0, 20)}
		notify := &recordingNotifier{}

		roller := dice.NewMockRoller()
		roller.SetNextRoll(1)

		require.NoError(t, fight.ResolveAction(roller, stats, notify, combat.Attack{Target: orc}))

		assert.Equal(t, 20, stats[orc].Health.Current)
		assert.Contains(t, notify.announcements, "Hero critically missed Orc!")
	})

	t.Run("Plain hit deals damage with modifiers", func(t *testing.T) {
		fight := newDuel()
		heroStats := fighterStats(10, 0, 10)
		heroStats.Modifiers.MeleeDamage.Add("strength", 2)
		stats := statsMap{hero: heroStats, orc: fighterStats(10, 2, 20)}
		notify := &recordingNotifier{}

		roller := dice.NewMockRoller()
		// 14 + 10 - 2 = 22: a hit. Damage 1d6=4, +2 strength.
		roller.SetRolls([]int{14, 4})

		require.NoError(t, fight.ResolveAction(roller, stats, notify, combat.Attack{Target: orc}))

		assert.Equal(t, 14, stats[orc].Health.Current)
		assert.Contains(t, notify.announcements, "Hero hit Orc for 6 damage!")
	})

	t.Run("Armor class turns a hit into a miss", func(t *testing.T) {
		fight := newDuel()
		stats := statsMap{hero: fighterStats(10, 0, 10), orc: fighterStats(10, 6, 20)}
		notify := &recordingNotifier{}

		roller := dice.NewMockRoller()
		roller.SetNextRoll(14) // 14 + 10 - 6 = 18: a miss

		require.NoError(t, fight.ResolveAction(roller, stats, notify, combat.Attack{Target: orc}))

		assert.Equal(t, 20, stats[orc].Health.Current)
		assert.Contains(t, notify.announcements, "Hero missed Orc!")
	})

	t.Run("Dropping a target to zero flags it Dying", func(t *testing.T) {
		fight := newDuel()
		stats := statsMap{hero: fighterStats(10, 0, 10), orc: fighterStats(10, 0, 3)}
		notify := &recordingNotifier{}

		roller := dice.NewMockRoller()
		roller.SetRolls([]int{14, 5})

		require.NoError(t, fight.ResolveAction(roller, stats, notify, combat.Attack{Target: orc}))

		assert.True(t, stats[orc].StatusEffects.Is(combat.StatusDying))
		assert.Contains(t, notify.announcements, "Orc was killed!")
	})

	t.Run("Missing attacker falls back to neutral defaults", func(t *testing.T) {
		fight := newDuel()
		stats := statsMap{orc: fighterStats(10, 0, 20)}
		notify := &recordingNotifier{}

		roller := dice.NewMockRoller()
		roller.SetNextRoll(14) // 14 + 10 - 0 = 24: a hit for a flat 1

		require.NoError(t, fight.ResolveAction(roller, stats, notify, combat.Attack{Target: orc}))

		assert.Equal(t, 19, stats[orc].Health.Current)
		assert.Contains(t, notify.announcements, "Hero hit Orc for 1 damage!")
	})

	t.Run("Missing target defends at armor class zero", func(t *testing.T) {
		fight := newDuel()
		stats := statsMap{hero: fighterStats(10, 0, 10)}
		notify := &recordingNotifier{}

		roller := dice.NewMockRoller()
		roller.SetRolls([]int{14, 4})

		require.NoError(t, fight.ResolveAction(roller, stats, notify, combat.Attack{Target: orc}))

		assert.Contains(t, notify.announcements, "Hero hit Orc for 4 damage!")
	})

	t.Run("Two-attack routine keeps the turn until exhausted", func(t *testing.T) {
		fight := newDuel()
		heroStats := fighterStats(10, 0, 10)
		heroStats.Damage = combat.TwoAttacks(
			combat.NewDamageRoll(1, 6, 0, combat.AttackMelee),
			combat.NewDamageRoll(1, 4, 0, combat.AttackMelee),
		)
		stats := statsMap{hero: heroStats, orc: fighterStats(10, 0, 20)}
		notify := &recordingNotifier{}

		roller := dice.NewMockRoller()
		roller.SetRolls([]int{14, 4}) // first attack hits

		require.NoError(t, fight.ResolveAction(roller, stats, notify, combat.Attack{Target: orc}))

		// First attack resolved: index advanced, turn unchanged, the
		// same actor is prompted again.
		assert.Equal(t, uint(1), heroStats.AttackIndex)
		assert.Equal(t, uint(0), fight.CurrentTurn)
		assert.Equal(t, hero, notify.lastRequest(t).actor)

		roller.SetRolls([]int{14, 2}) // second attack hits

		require.NoError(t, fight.ResolveAction(roller, stats, notify, combat.Attack{Target: orc}))

		assert.Equal(t, uint(0), heroStats.AttackIndex)
		assert.Equal(t, uint(1), fight.CurrentTurn)
		assert.Equal(t, orc, notify.lastRequest(t).actor)
	})

	t.Run("No turn in progress is rejected", func(t *testing.T) {
		fight := combat.NewFight()
		err := fight.ResolveAction(dice.NewMockRoller(), statsMap{}, &recordingNotifier{}, combat.Attack{})
		assert.True(t, errors.IsInvalidArgument(err))
	})
}

func TestFight_ResolveAction_RelinquishControl(t *testing.T) {
	hero := combat.PCRef("alice", "Hero")
	fight := combat.NewFight(
		combat.Member{Owner: combat.Player("alice"), Ref: hero},
	)
	fight.OngoingRound = true
	owner := combat.Player("alice")
	fight.AwaitingResponse = &owner

	err := fight.ResolveAction(dice.NewMockRoller(), statsMap{}, &recordingNotifier{}, combat.RelinquishControl{})
	require.NoError(t, err)

	require.NotNil(t, fight.AwaitingResponse)
	assert.True(t, fight.AwaitingResponse.IsDM())
}

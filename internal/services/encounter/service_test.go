package encounter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/veildark/acks-engine/internal/dice"
	"github.com/veildark/acks-engine/internal/domain/character"
	"github.com/veildark/acks-engine/internal/domain/combat"
	mockcombat "github.com/veildark/acks-engine/internal/domain/combat/mock"
	"github.com/veildark/acks-engine/internal/domain/enemy"
	"github.com/veildark/acks-engine/internal/errors"
	"github.com/veildark/acks-engine/internal/repositories/characters"
	"github.com/veildark/acks-engine/internal/repositories/fights"
	"github.com/veildark/acks-engine/internal/services/encounter"
	mockuuid "github.com/veildark/acks-engine/internal/uuid/mock"
)

type testEnv struct {
	svc      encounter.Service
	chars    characters.Repository
	roller   *dice.MockRoller
	notifier *mockcombat.MockNotifier
	uuidGen  *mockuuid.MockGenerator
}

func newTestEnv(t *testing.T) *testEnv {
	ctrl := gomock.NewController(t)

	env := &testEnv{
		chars:    characters.NewInMemoryRepository(),
		roller:   dice.NewMockRoller(),
		notifier: mockcombat.NewMockNotifier(ctrl),
		uuidGen:  mockuuid.NewMockGenerator(ctrl),
	}
	env.svc = encounter.NewService(&encounter.ServiceConfig{
		FightRepository:     fights.NewInMemoryRepository(),
		CharacterRepository: env.chars,
		EnemyTypes:          map[string]enemy.Type{"orc": orcType()},
		Roller:              env.roller,
		Notifier:            env.notifier,
		UUIDGenerator:       env.uuidGen,
	})
	return env
}

func (env *testEnv) createEncounter(t *testing.T) string {
	env.uuidGen.EXPECT().New().Return("enc-1")

	id, err := env.svc.CreateEncounter(context.Background())
	require.NoError(t, err)
	return id
}

func orcType() enemy.Type {
	return enemy.Type{
		ID:              "orc",
		Name:            "Orc",
		HitDice:         enemy.HitDice{Kind: enemy.HitDiceStandard, Amount: 1},
		BaseArmorClass:  2,
		BaseAttackThrow: 10,
		BaseDamage:      combat.OneAttack(combat.NewDamageRoll(1, 6, 0, combat.AttackMelee)),
		XP:              10,
		Morale:          0,
		Alignment:       enemy.AlignmentChaotic,
	}
}

func hero() *character.PlayerCharacter {
	stats := combat.EmptyStats()
	stats.Health = combat.NewHealth(8)
	stats.AttackThrow = 10
	stats.ArmorClass = 2
	stats.Damage = combat.OneAttack(combat.NewDamageRoll(1, 6, 0, combat.AttackMelee))

	return &character.PlayerCharacter{
		ID:          "char-1",
		User:        "user-1",
		Name:        "Hero",
		CombatStats: stats,
		Level:       1,
	}
}

// orcSpawnRolls queues a full enemy spawn: three flat d6s per attribute
// plus the hit point die.
func orcSpawnRolls(hp int) []int {
	rolls := make([]int, 0, 19)
	for i := 0; i < 18; i++ {
		rolls = append(rolls, 3)
	}
	return append(rolls, hp)
}

func TestCreateEncounter(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	id := env.createEncounter(t)
	assert.Equal(t, "enc-1", id)

	fight, err := env.svc.GetFight(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, fight.Combatants)
	assert.False(t, fight.OngoingRound)

	active, err := env.svc.ListActiveEncounters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"enc-1"}, active)
}

func TestAddCharacter(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	id := env.createEncounter(t)

	require.NoError(t, env.chars.Create(ctx, hero()))

	ref, err := env.svc.AddCharacter(ctx, id, "char-1")
	require.NoError(t, err)
	assert.Equal(t, combat.PCRef("user-1", "Hero"), ref)

	fight, err := env.svc.GetFight(ctx, id)
	require.NoError(t, err)
	require.Len(t, fight.Combatants, 1)
	assert.Equal(t, combat.Player("user-1"), fight.Combatants[0].Owner)
	assert.Equal(t, ref, fight.Combatants[0].Ref)

	// Same character twice
	_, err = env.svc.AddCharacter(ctx, id, "char-1")
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))

	// Unknown character
	_, err = env.svc.AddCharacter(ctx, id, "missing")
	require.Error(t, err)

	// Unknown encounter
	_, err = env.svc.AddCharacter(ctx, "missing", "char-1")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestAddEnemy(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	id := env.createEncounter(t)

	env.roller.SetRolls(orcSpawnRolls(5))

	ref, err := env.svc.AddEnemy(ctx, id, "orc")
	require.NoError(t, err)
	assert.Equal(t, "Orc", ref.DisplayName)

	// The second instance of the same type gets a numbered name
	env.roller.SetRolls(orcSpawnRolls(3))

	ref2, err := env.svc.AddEnemy(ctx, id, "orc")
	require.NoError(t, err)
	assert.Equal(t, "Orc 2", ref2.DisplayName)

	fight, err := env.svc.GetFight(ctx, id)
	require.NoError(t, err)
	require.Len(t, fight.Combatants, 2)
	assert.True(t, fight.Combatants[0].Owner.IsDM())

	// Unknown type
	_, err = env.svc.AddEnemy(ctx, id, "dragon")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestCombatFlow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	id := env.createEncounter(t)

	require.NoError(t, env.chars.Create(ctx, hero()))
	heroRef, err := env.svc.AddCharacter(ctx, id, "char-1")
	require.NoError(t, err)

	env.roller.SetRolls(orcSpawnRolls(5))
	orcRef, err := env.svc.AddEnemy(ctx, id, "orc")
	require.NoError(t, err)

	// Hero rolls 6 for initiative, the orc 3: hero acts first and the
	// fight parks waiting on their player.
	env.roller.SetRolls([]int{6, 3})
	env.notifier.EXPECT().Announce("Round started!")
	env.notifier.EXPECT().RequestDecision(combat.Player("user-1"), heroRef, []combat.CombatantRef{orcRef})

	require.NoError(t, env.svc.StartRound(ctx, id))

	fight, err := env.svc.GetFight(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, fight.AwaitingResponse)
	assert.Equal(t, combat.Player("user-1"), *fight.AwaitingResponse)

	// Nobody else gets to act on the hero's turn
	err = env.svc.ResolveAction(ctx, id, combat.Player("impostor"), combat.Attack{Target: orcRef})
	require.Error(t, err)
	assert.True(t, errors.IsPermissionDenied(err))

	// Hero attacks: 15+10-2 = 23 hits, 4 damage. The routine is spent,
	// so the turn passes to the DM-owned orc without parking.
	env.roller.SetRolls([]int{15, 4})
	env.notifier.EXPECT().Announce("Hero hit Orc for 4 damage!")
	env.notifier.EXPECT().RequestDecision(combat.DM(), orcRef, []combat.CombatantRef{heroRef})

	require.NoError(t, env.svc.ResolveAction(ctx, id, combat.Player("user-1"), combat.Attack{Target: orcRef}))

	fight, err = env.svc.GetFight(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, fight.AwaitingResponse)
	assert.Equal(t, uint(1), fight.CurrentTurn)

	// The orc hits back: 12+10-2 = 20, 3 damage, and the round is over.
	env.roller.SetRolls([]int{12, 3})
	env.notifier.EXPECT().Announce("Orc hit Hero for 3 damage!")
	env.notifier.EXPECT().Announce("Round over.")

	require.NoError(t, env.svc.ResolveAction(ctx, id, combat.DM(), combat.Attack{Target: heroRef}))

	fight, err = env.svc.GetFight(ctx, id)
	require.NoError(t, err)
	assert.False(t, fight.OngoingRound)
	assert.Equal(t, uint(0), fight.CurrentTurn)

	// Ending the encounter writes the hero's battered stats back to the
	// character store and removes the fight.
	require.NoError(t, env.svc.EndEncounter(ctx, id))

	saved, err := env.chars.Get(ctx, "char-1")
	require.NoError(t, err)
	assert.Equal(t, 5, saved.CombatStats.Health.Current)

	_, err = env.svc.GetFight(ctx, id)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestForceRelinquish(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	id := env.createEncounter(t)

	require.NoError(t, env.chars.Create(ctx, hero()))
	heroRef, err := env.svc.AddCharacter(ctx, id, "char-1")
	require.NoError(t, err)

	env.roller.SetRolls(orcSpawnRolls(5))
	orcRef, err := env.svc.AddEnemy(ctx, id, "orc")
	require.NoError(t, err)

	env.roller.SetRolls([]int{6, 3})
	env.notifier.EXPECT().Announce("Round started!")
	env.notifier.EXPECT().RequestDecision(combat.Player("user-1"), heroRef, []combat.CombatantRef{orcRef})

	require.NoError(t, env.svc.StartRound(ctx, id))

	// The player stalls; the DM takes over their pending decision.
	env.notifier.EXPECT().Announce("The DM now controls Hero.")

	require.NoError(t, env.svc.ForceRelinquish(ctx, id))

	fight, err := env.svc.GetFight(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, fight.AwaitingResponse)
	assert.True(t, fight.AwaitingResponse.IsDM())
}

func TestStartRoundUnknownEncounter(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	err := env.svc.StartRound(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

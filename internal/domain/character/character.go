package character

import (
	"github.com/veildark/acks-engine/internal/dice"
	"github.com/veildark/acks-engine/internal/domain/combat"
	"github.com/veildark/acks-engine/internal/domain/rules"
	"github.com/veildark/acks-engine/internal/errors"
)

// PlayerCharacter is everything that goes on a character sheet
type PlayerCharacter struct {
	ID          string                 `json:"id"`
	User        string                 `json:"user"`
	Name        string                 `json:"name"`
	CombatStats *combat.CombatantStats `json:"combat_stats"`
	Race        rules.Race             `json:"race"`
	Class       rules.Class            `json:"class"`
	Level       int                    `json:"level"`
	XP          uint                   `json:"xp"`
	XPToLevel   uint                   `json:"xp_to_level"`
	Notes       string                 `json:"notes"`
}

// Random rolls a fresh level 1 character: weighted random race, race-
// skewed attributes, and the placeholder class.
func Random(roller dice.Roller, user, name string) (*PlayerCharacter, error) {
	race, err := rules.RandomRace(roller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll race")
	}
	attrs, err := race.RollAttributes(roller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll attributes")
	}

	class := rules.DefaultClass()
	stats := combat.EmptyStats()
	stats.Attributes = attrs
	stats.AttackThrow = 10
	stats.Health = combat.NewHealth(1)

	return &PlayerCharacter{
		User:        user,
		Name:        name,
		CombatStats: stats,
		Race:        race,
		Class:       class,
		Level:       1,
		XP:          0,
		XPToLevel:   class.NextLevelXPCost(1),
	}, nil
}

// Initialize finalizes a character once their class is settled: rolls
// hit points (one hit die plus CON modifier, minimum 1), derives the
// saving throw table, and seeds the attribute-sourced modifiers. Called
// once at character creation.
func (pc *PlayerCharacter) Initialize(roller dice.Roller) error {
	attrs := pc.CombatStats.Attributes

	hitDie := dice.SimpleModifier(1, pc.Class.HitDie.Sides(), attrs.Modifier(rules.CON))
	hp, err := dice.Eval(roller, hitDie)
	if err != nil {
		return errors.Wrap(err, "failed to roll hit points")
	}
	pc.CombatStats.Health = combat.NewHealth(uint(hp))

	pc.CombatStats.SavingThrows = rules.CalculateSavingThrowsSimple(pc.Class.SaveProgression, pc.Level)
	pc.CombatStats.AttackThrow = rules.AttackThrowBonus(pc.Class.AttackProgression, pc.Level)
	pc.CombatStats.Damage = combat.OneAttack(combat.NewDamageRoll(1, 6, 0, combat.AttackMelee))

	mods := &pc.CombatStats.Modifiers
	mods.MeleeAttack.Add("strength", attrs.Modifier(rules.STR))
	mods.MeleeDamage.Add("strength", attrs.Modifier(rules.STR))
	mods.MissileAttack.Add("dexterity", attrs.Modifier(rules.DEX))
	mods.ArmorClass.Add("dexterity", attrs.Modifier(rules.DEX))
	mods.Initiative.Add("dexterity", attrs.Modifier(rules.DEX))
	mods.AddAllSaves("wisdom", attrs.Modifier(rules.WIS))
	mods.XPGain.Add("prime_reqs", float64(pc.primeReqModifier())*0.05)

	return nil
}

// primeReqModifier is the lowest modifier among the class's prime
// requisites; a class with none gets 0.
func (pc *PlayerCharacter) primeReqModifier() int {
	lowest := 0
	for i, attr := range pc.Class.PrimeRequisites {
		m := pc.CombatStats.Attributes.Modifier(attr)
		if i == 0 || m < lowest {
			lowest = m
		}
	}
	return lowest
}

// GainXP awards experience scaled by the character's XP gain modifiers
// (prime requisites, boons). Returns the scaled amount actually added.
func (pc *PlayerCharacter) GainXP(amount uint) uint {
	scaled := float64(amount) * (1.0 + pc.CombatStats.Modifiers.XPGain.Total())
	if scaled < 0 {
		scaled = 0
	}
	gained := uint(scaled)
	pc.XP += gained
	return gained
}

// CanLevelUp reports whether the character has banked enough XP
func (pc *PlayerCharacter) CanLevelUp() bool {
	return pc.XP >= pc.XPToLevel
}

// LevelUp advances the character one level: rolls another hit die
// (plus CON, minimum 1 per level) onto max HP, recomputes the saving
// throw table and attack throw, and resets the XP cost to the next
// level.
func (pc *PlayerCharacter) LevelUp(roller dice.Roller) error {
	if !pc.CanLevelUp() {
		return errors.InvalidArgumentf("%s needs %d XP to reach level %d", pc.Name, pc.XPToLevel, pc.Level+1)
	}

	hitDie := dice.SimpleModifier(1, pc.Class.HitDie.Sides(), pc.CombatStats.Attributes.Modifier(rules.CON))
	hp, err := dice.Eval(roller, hitDie)
	if err != nil {
		return errors.Wrap(err, "failed to roll hit points")
	}

	pc.Level++
	pc.CombatStats.Health.Max += uint(hp)
	pc.CombatStats.Health.Current += hp
	pc.CombatStats.SavingThrows = rules.CalculateSavingThrowsSimple(pc.Class.SaveProgression, pc.Level)
	pc.CombatStats.AttackThrow = rules.AttackThrowBonus(pc.Class.AttackProgression, pc.Level)
	pc.XPToLevel = pc.Class.NextLevelXPCost(pc.Level)
	return nil
}

// Ref is the character's combat identity
func (pc *PlayerCharacter) Ref() combat.CombatantRef {
	return combat.PCRef(pc.User, pc.Name)
}

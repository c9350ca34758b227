package combat

import (
	"fmt"

	"github.com/veildark/acks-engine/internal/dice"
	"github.com/veildark/acks-engine/internal/domain/rules"
)

// AttackType separates melee and missile attacks; each has its own
// attack and damage modifier pools.
type AttackType string

const (
	AttackMelee   AttackType = "melee"
	AttackMissile AttackType = "missile"
)

// DamageRoll is the base damage of a single attack in a routine. The
// attack type decides which modifier pools apply when it is resolved.
type DamageRoll struct {
	Amount     uint       `json:"amount" yaml:"amount"`
	Sides      uint       `json:"sides" yaml:"sides"`
	Modifier   int        `json:"modifier" yaml:"modifier"`
	AttackType AttackType `json:"attack_type" yaml:"attack_type"`
}

// NewDamageRoll builds a damage roll from its parts
func NewDamageRoll(amount, sides uint, modifier int, attackType AttackType) DamageRoll {
	return DamageRoll{
		Amount:     amount,
		Sides:      sides,
		Modifier:   modifier,
		AttackType: attackType,
	}
}

// DefaultDamageRoll is an unarmed strike, 1d2 melee
func DefaultDamageRoll() DamageRoll {
	return NewDamageRoll(1, 2, 0, AttackMelee)
}

// Spec converts the damage roll to a dice specification
func (d DamageRoll) Spec() dice.RollSpec {
	return dice.SimpleModifier(d.Amount, d.Sides, d.Modifier)
}

// Notation renders the roll in dice notation
func (d DamageRoll) Notation() string {
	if d.Modifier == 0 {
		return fmt.Sprintf("%dd%d", d.Amount, d.Sides)
	}
	return fmt.Sprintf("%dd%d%+d", d.Amount, d.Sides, d.Modifier)
}

// Roll evaluates the damage roll against the given source
func (d DamageRoll) Roll(r dice.Roller) (int, error) {
	return dice.Eval(r, d.Spec())
}

// AttackRoutine is the ordered list of damage rolls a combatant makes
// in one round, one to three entries.
type AttackRoutine []DamageRoll

// OneAttack builds a single-attack routine
func OneAttack(d1 DamageRoll) AttackRoutine {
	return AttackRoutine{d1}
}

// TwoAttacks builds a two-attack routine
func TwoAttacks(d1, d2 DamageRoll) AttackRoutine {
	return AttackRoutine{d1, d2}
}

// ThreeAttacks builds a three-attack routine
func ThreeAttacks(d1, d2, d3 DamageRoll) AttackRoutine {
	return AttackRoutine{d1, d2, d3}
}

// StatusEffect is an ailment affecting a combatant
type StatusEffect string

const (
	StatusDead          StatusEffect = "dead"
	StatusDying         StatusEffect = "dying"
	StatusSleeping      StatusEffect = "sleeping"
	StatusParalyzed     StatusEffect = "paralyzed"
	StatusConcentrating StatusEffect = "concentrating"
)

// AllStatusEffects lists every effect in display order
func AllStatusEffects() []StatusEffect {
	return []StatusEffect{
		StatusDead,
		StatusDying,
		StatusSleeping,
		StatusParalyzed,
		StatusConcentrating,
	}
}

// StatusEffectSet is the set of ailments currently affecting a combatant
type StatusEffectSet struct {
	Effects map[StatusEffect]bool `json:"effects"`
}

// NewStatusEffectSet creates an empty set
func NewStatusEffectSet() StatusEffectSet {
	return StatusEffectSet{
		Effects: make(map[StatusEffect]bool),
	}
}

// Add marks an effect active
func (s *StatusEffectSet) Add(effect StatusEffect) {
	if s.Effects == nil {
		s.Effects = make(map[StatusEffect]bool)
	}
	s.Effects[effect] = true
}

// Remove clears an effect
func (s *StatusEffectSet) Remove(effect StatusEffect) {
	delete(s.Effects, effect)
}

// Is reports whether an effect is active
func (s StatusEffectSet) Is(effect StatusEffect) bool {
	return s.Effects[effect]
}

// IsHelpless reports whether the combatant cannot defend themselves
func (s StatusEffectSet) IsHelpless() bool {
	return s.Is(StatusSleeping) || s.Is(StatusParalyzed)
}

// IsUntargetable reports whether the combatant is out of the fight and
// cannot be chosen as a target
func (s StatusEffectSet) IsUntargetable() bool {
	return s.Is(StatusDead) || s.Is(StatusDying)
}

// IsIncapacitated reports whether the combatant cannot act on their turn
func (s StatusEffectSet) IsIncapacitated() bool {
	return s.Is(StatusDead) || s.Is(StatusDying) || s.Is(StatusSleeping) || s.Is(StatusParalyzed)
}

// Health tracks hit points. Current may go to zero or below, which
// signals dying or dead rather than clamping.
type Health struct {
	Max     uint `json:"max" yaml:"max"`
	Current int  `json:"current" yaml:"current"`
}

// NewHealth creates a health pool at full
func NewHealth(max uint) Health {
	return Health{
		Max:     max,
		Current: int(max),
	}
}

// CombatantStats is everything something needs to engage in combat. All
// fields are base stats, before any modifiers; armor class in particular
// is often zero unless the combatant has innate armor. Modifiers from
// every source live in Modifiers.
type CombatantStats struct {
	Attributes    rules.Attributes   `json:"attributes"`
	Health        Health             `json:"health"`
	AttackThrow   int                `json:"attack_throw"`
	ArmorClass    int                `json:"armor_class"`
	Damage        AttackRoutine      `json:"damage"`
	AttackIndex   uint               `json:"attack_index"`
	SavingThrows  rules.SavingThrows `json:"saving_throws"`
	StatusEffects StatusEffectSet    `json:"status_effects"`
	Modifiers     StatModifiers      `json:"modifiers"`
}

// EmptyStats creates a zeroed-out stat block with an unarmed routine
func EmptyStats() *CombatantStats {
	return &CombatantStats{
		Damage:        OneAttack(DefaultDamageRoll()),
		StatusEffects: NewStatusEffectSet(),
		Modifiers:     NewStatModifiers(),
	}
}

// CurrentDamage returns the damage roll selected by the attack index,
// or false once the routine is exhausted for this round.
func (c *CombatantStats) CurrentDamage() (DamageRoll, bool) {
	if int(c.AttackIndex) >= len(c.Damage) {
		return DamageRoll{}, false
	}
	return c.Damage[c.AttackIndex], true
}

// SavingThrow rolls a save against the given category: 1d20 plus the
// base save and all modifiers, 20 or more succeeds. A natural 20 always
// succeeds.
func (c *CombatantStats) SavingThrow(r dice.Roller, category rules.SaveCategory) (bool, error) {
	modifier := c.SavingThrows.Get(category) + c.Modifiers.Save(category).Total()
	nat, err := dice.Eval(r, dice.Simple(1, 20))
	if err != nil {
		return false, err
	}
	return nat >= 20 || nat+modifier >= 20, nil
}

// Hurt applies damage to current HP. Returns true when this blow took
// the combatant from above zero to zero or below, flagging them Dying.
func (c *CombatantStats) Hurt(damage uint) bool {
	before := c.Health.Current
	c.Health.Current -= int(damage)
	if before > 0 && c.Health.Current <= 0 {
		c.StatusEffects.Add(StatusDying)
		return true
	}
	return false
}

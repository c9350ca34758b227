package combat

//go:generate mockgen -destination=mock/mock_fight.go -package=mockcombat -source=fight.go

import (
	"fmt"
	"sort"

	"github.com/veildark/acks-engine/internal/dice"
	"github.com/veildark/acks-engine/internal/errors"
)

// StatsProvider resolves a combatant ref to its authoritative stats.
// The returned handle is mutable and shared; attack resolution writes
// through it. A lookup can miss when the combatant no longer exists,
// for example after a disconnect.
type StatsProvider interface {
	Lookup(ref CombatantRef) (*CombatantStats, bool)
}

// Notifier is how the fight talks to the outside world: combat log
// lines, and decision requests routed to whoever owns the current
// actor.
type Notifier interface {
	Announce(text string)
	RequestDecision(owner Owner, actor CombatantRef, targets []CombatantRef)
}

// Member is one (owner, combatant) pair in a fight
type Member struct {
	Owner Owner        `json:"owner"`
	Ref   CombatantRef `json:"ref"`
}

// Action is a decision resolved on the current actor's turn
type Action interface {
	isAction()
}

// Attack has the current actor attack a target, with an optional
// situational modifier applied to the attack roll.
type Attack struct {
	Target   CombatantRef
	Modifier int
}

func (Attack) isAction() {}

// RelinquishControl hands the pending decision to the DM without any
// other state change. Used when a player stalls or disconnects.
type RelinquishControl struct{}

func (RelinquishControl) isAction() {}

// Fight is an active fight between combatants. It is a plain record:
// collaborators (dice, stats, notifications) are passed into each
// transition, so a persisted fight rehydrates losslessly.
//
// Turn order is fixed when a round starts and never re-sorted mid-round,
// even if initiative modifiers change.
type Fight struct {
	Combatants       []Member `json:"combatants"`
	CurrentTurn      uint     `json:"current_turn"`
	OngoingRound     bool     `json:"ongoing_round"`
	AwaitingResponse *Owner   `json:"awaiting_response,omitempty"`
}

// NewFight creates a fight over the given combatants, round not started
func NewFight(members ...Member) *Fight {
	return &Fight{
		Combatants: members,
	}
}

// AddCombatant adds a combatant to the fight. Takes effect at the next
// round start; the current round's order is already fixed.
func (f *Fight) AddCombatant(owner Owner, ref CombatantRef) {
	f.Combatants = append(f.Combatants, Member{Owner: owner, Ref: ref})
}

// CurrentActor returns the member whose turn it is
func (f *Fight) CurrentActor() (Member, bool) {
	if !f.OngoingRound || int(f.CurrentTurn) >= len(f.Combatants) {
		return Member{}, false
	}
	return f.Combatants[f.CurrentTurn], true
}

// StartRound rolls initiative (1d6 plus the combatant's initiative
// modifier total) for every combatant and fixes the turn order for the
// round, highest first. Exact ties break in favor of player-owned
// combatants.
func (f *Fight) StartRound(roller dice.Roller, stats StatsProvider, notify Notifier) error {
	type entry struct {
		member Member
		total  int
	}

	entries := make([]entry, 0, len(f.Combatants))
	for _, member := range f.Combatants {
		r, err := dice.Eval(roller, dice.Simple(1, 6))
		if err != nil {
			return errors.Wrap(err, "failed to roll initiative")
		}
		if s, ok := stats.Lookup(member.Ref); ok {
			r += s.Modifiers.Initiative.Total()
		}
		entries = append(entries, entry{member: member, total: r})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].total != entries[j].total {
			return entries[i].total > entries[j].total
		}
		return !entries[i].member.Owner.IsDM() && entries[j].member.Owner.IsDM()
	})

	for i, e := range entries {
		f.Combatants[i] = e.member
	}
	f.CurrentTurn = 0
	f.OngoingRound = true
	f.AwaitingResponse = nil

	notify.Announce("Round started!")
	return nil
}

// NextTurn advances play to the next combatant able to act. Incapacitated
// combatants are skipped silently. When an able actor is found their
// owner is asked for a decision: player-owned actors park the fight in
// AwaitingResponse until a ResolveAction arrives from outside. When the
// turn index runs past the list the round concludes.
func (f *Fight) NextTurn(stats StatsProvider, notify Notifier) {
	if !f.OngoingRound {
		return
	}

	for int(f.CurrentTurn) < len(f.Combatants) {
		actor := f.Combatants[f.CurrentTurn]

		if s, ok := stats.Lookup(actor.Ref); ok && s.StatusEffects.IsIncapacitated() {
			f.CurrentTurn++
			continue
		}

		targets := f.validTargets(actor, stats)
		if !actor.Owner.IsDM() {
			owner := actor.Owner
			f.AwaitingResponse = &owner
		}
		notify.RequestDecision(actor.Owner, actor.Ref, targets)
		return
	}

	f.OngoingRound = false
	f.CurrentTurn = 0
	f.AwaitingResponse = nil
	notify.Announce("Round over.")
}

// validTargets lists every other combatant that can still be attacked
func (f *Fight) validTargets(actor Member, stats StatsProvider) []CombatantRef {
	targets := make([]CombatantRef, 0, len(f.Combatants))
	for _, member := range f.Combatants {
		if member.Ref == actor.Ref {
			continue
		}
		if s, ok := stats.Lookup(member.Ref); ok && s.StatusEffects.IsUntargetable() {
			continue
		}
		targets = append(targets, member.Ref)
	}
	return targets
}

// ResolveAction applies the current actor's decision. Attacks resolve
// one slot of the actor's attack routine: the turn only advances once
// the routine is exhausted, so a two-attack routine prompts the same
// actor twice before moving on.
func (f *Fight) ResolveAction(roller dice.Roller, stats StatsProvider, notify Notifier, action Action) error {
	actor, ok := f.CurrentActor()
	if !ok {
		return errors.InvalidArgument("no turn is in progress")
	}

	switch act := action.(type) {
	case Attack:
		if err := f.makeAttack(roller, stats, notify, actor, act); err != nil {
			return err
		}
	case RelinquishControl:
		dm := DM()
		f.AwaitingResponse = &dm
		notify.Announce(fmt.Sprintf("The DM now controls %s.", actor.Ref))
	default:
		return errors.InvalidArgumentf("unknown action %T", action)
	}
	return nil
}

// AttackResult is the outcome band of an attack roll
type AttackResult int

const (
	CriticalFail AttackResult = iota
	Fail
	Success
	CriticalSuccess
)

// explodeCap bounds how many times a d20 can explode in one attack
// roll. A fair die takes 20^100 rolls to get here; a rigged source
// does not get to spin forever.
const explodeCap = 100

// attackRoll draws an exploding d20 and bands the modified total. The
// d20 explodes only on an unmodified natural 20; a raw result of 1 is
// an unconditional critical failure no matter the modifiers. Stats
// lookup misses fall back to neutral defaults (attack throw 10, armor
// class 0) so the round can continue without the missing combatant.
func (f *Fight) attackRoll(roller dice.Roller, stats StatsProvider, attacker, target CombatantRef, modifier int) (AttackResult, error) {
	attackThrow := 10
	if s, ok := stats.Lookup(attacker); ok {
		damage, _ := s.CurrentDamage()
		switch damage.AttackType {
		case AttackMissile:
			attackThrow = s.AttackThrow + s.Modifiers.MissileAttack.Total()
		default:
			attackThrow = s.AttackThrow + s.Modifiers.MeleeAttack.Total()
		}
	}

	armorClass := 0
	if s, ok := stats.Lookup(target); ok {
		armorClass = s.ArmorClass + s.Modifiers.ArmorClass.Total()
	}

	roll := 0
	for i := 0; i < explodeCap; i++ {
		nat, err := dice.Eval(roller, dice.Simple(1, 20))
		if err != nil {
			return CriticalFail, errors.Wrap(err, "failed to roll attack")
		}
		roll += nat
		if nat != 20 {
			break
		}
	}
	if roll <= 1 {
		return CriticalFail, nil
	}

	switch total := roll + attackThrow - armorClass + modifier; {
	case total <= 19:
		return Fail, nil
	case total <= 29:
		return Success, nil
	default:
		return CriticalSuccess, nil
	}
}

// damageRoll rolls the attacker's current routine slot, doubled on a
// critical, plus the matching damage modifier total, minimum 1. A
// missing attacker deals a flat 1.
func (f *Fight) damageRoll(roller dice.Roller, stats StatsProvider, attacker CombatantRef, critical bool) (int, error) {
	s, ok := stats.Lookup(attacker)
	if !ok {
		return 1, nil
	}

	damage, ok := s.CurrentDamage()
	if !ok {
		damage = DefaultDamageRoll()
	}

	rolled, err := damage.Roll(roller)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll damage")
	}
	if critical {
		rolled *= 2
	}

	switch damage.AttackType {
	case AttackMissile:
		rolled += s.Modifiers.MissileDamage.Total()
	default:
		rolled += s.Modifiers.MeleeDamage.Total()
	}
	if rolled < 1 {
		rolled = 1
	}
	return rolled, nil
}

func (f *Fight) makeAttack(roller dice.Roller, stats StatsProvider, notify Notifier, actor Member, act Attack) error {
	result, err := f.attackRoll(roller, stats, actor.Ref, act.Target, act.Modifier)
	if err != nil {
		return err
	}

	switch result {
	case CriticalFail:
		notify.Announce(fmt.Sprintf("%s critically missed %s!", actor.Ref, act.Target))
	case Fail:
		notify.Announce(fmt.Sprintf("%s missed %s!", actor.Ref, act.Target))
	case Success, CriticalSuccess:
		damage, err := f.damageRoll(roller, stats, actor.Ref, result == CriticalSuccess)
		if err != nil {
			return err
		}

		killed := false
		if s, ok := stats.Lookup(act.Target); ok {
			killed = s.Hurt(uint(damage))
		}

		if result == CriticalSuccess {
			notify.Announce(fmt.Sprintf("%s critically hit %s for a whopping %d damage!", actor.Ref, act.Target, damage))
		} else {
			notify.Announce(fmt.Sprintf("%s hit %s for %d damage!", actor.Ref, act.Target, damage))
		}
		if killed {
			notify.Announce(fmt.Sprintf("%s was killed!", act.Target))
		}
	}

	// Cycle the attack routine: same actor keeps going until their
	// routine is exhausted, then the turn passes.
	exhausted := true
	if s, ok := stats.Lookup(actor.Ref); ok {
		s.AttackIndex++
		if _, left := s.CurrentDamage(); left {
			exhausted = false
		} else {
			s.AttackIndex = 0
		}
	}
	if exhausted {
		f.CurrentTurn++
		f.AwaitingResponse = nil
	}
	f.NextTurn(stats, notify)
	return nil
}

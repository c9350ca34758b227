package combat

import (
	"encoding/json"

	"github.com/veildark/acks-engine/internal/domain/rules"
)

// ModValue constrains the value types a StatMod can aggregate
type ModValue interface {
	~int | ~int64 | ~float64
}

// StatMod stores every active modifier for a single stat, keyed by
// source (proficiency name, class bonus, spell effect). The running
// total is maintained incrementally on every add and remove, never
// recomputed on read.
type StatMod[T ModValue] struct {
	total   T
	entries map[string]T
}

// NewStatMod creates an empty modifier set
func NewStatMod[T ModValue]() StatMod[T] {
	return StatMod[T]{
		entries: make(map[string]T),
	}
}

// Total returns the sum of all current modifiers. O(1).
func (s *StatMod[T]) Total() T {
	return s.total
}

// Add inserts a modifier at the given key, displacing any existing
// entry there. Returns the displaced value, if any.
func (s *StatMod[T]) Add(key string, value T) (T, bool) {
	previous, displaced := s.Remove(key)
	if s.entries == nil {
		s.entries = make(map[string]T)
	}
	s.entries[key] = value
	s.total += value
	return previous, displaced
}

// Remove deletes the modifier at the given key and returns the removed
// value, if any. Removing a missing key is a no-op.
func (s *StatMod[T]) Remove(key string) (T, bool) {
	value, ok := s.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	delete(s.entries, key)
	s.total -= value
	return value, true
}

// HasModifier reports whether a modifier exists at the given key
func (s *StatMod[T]) HasModifier(key string) bool {
	_, ok := s.entries[key]
	return ok
}

// ViewAll returns a read-only copy of every (key, value) entry
func (s *StatMod[T]) ViewAll() map[string]T {
	view := make(map[string]T, len(s.entries))
	for key, value := range s.entries {
		view[key] = value
	}
	return view
}

// Len returns how many entries are present
func (s *StatMod[T]) Len() int {
	return len(s.entries)
}

type statModRecord[T ModValue] struct {
	Total   T            `json:"total"`
	Entries map[string]T `json:"entries"`
}

// MarshalJSON persists both the entries and the cached total so a
// rehydrated record is lossless field-for-field.
func (s StatMod[T]) MarshalJSON() ([]byte, error) {
	entries := s.entries
	if entries == nil {
		entries = map[string]T{}
	}
	return json.Marshal(statModRecord[T]{
		Total:   s.total,
		Entries: entries,
	})
}

// UnmarshalJSON restores a persisted modifier set
func (s *StatMod[T]) UnmarshalJSON(data []byte) error {
	var record statModRecord[T]
	if err := json.Unmarshal(data, &record); err != nil {
		return err
	}
	s.total = record.Total
	s.entries = record.Entries
	if s.entries == nil {
		s.entries = make(map[string]T)
	}
	return nil
}

// StatModifiers stores all active modifiers for every stat a combatant
// has, permanent and temporary alike. Each entry needs a unique key
// naming where it came from.
type StatModifiers struct {
	MeleeAttack                StatMod[int]     `json:"melee_attack"`
	MissileAttack              StatMod[int]     `json:"missile_attack"`
	MeleeDamage                StatMod[int]     `json:"melee_damage"`
	MissileDamage              StatMod[int]     `json:"missile_damage"`
	Initiative                 StatMod[int]     `json:"initiative"`
	Surprise                   StatMod[int]     `json:"surprise"`
	ArmorClass                 StatMod[int]     `json:"armor_class"`
	XPGain                     StatMod[float64] `json:"xp_gain"`
	SavePetrificationParalysis StatMod[int]     `json:"save_petrification_paralysis"`
	SavePoisonDeath            StatMod[int]     `json:"save_poison_death"`
	SaveBlastBreath            StatMod[int]     `json:"save_blast_breath"`
	SaveStaffsWands            StatMod[int]     `json:"save_staffs_wands"`
	SaveSpells                 StatMod[int]     `json:"save_spells"`
}

// NewStatModifiers creates an empty modifier block
func NewStatModifiers() StatModifiers {
	return StatModifiers{
		MeleeAttack:                NewStatMod[int](),
		MissileAttack:              NewStatMod[int](),
		MeleeDamage:                NewStatMod[int](),
		MissileDamage:              NewStatMod[int](),
		Initiative:                 NewStatMod[int](),
		Surprise:                   NewStatMod[int](),
		ArmorClass:                 NewStatMod[int](),
		XPGain:                     NewStatMod[float64](),
		SavePetrificationParalysis: NewStatMod[int](),
		SavePoisonDeath:            NewStatMod[int](),
		SaveBlastBreath:            NewStatMod[int](),
		SaveStaffsWands:            NewStatMod[int](),
		SaveSpells:                 NewStatMod[int](),
	}
}

// Save returns the modifier set for one saving throw category
func (m *StatModifiers) Save(category rules.SaveCategory) *StatMod[int] {
	switch category {
	case rules.SavePetrificationParalysis:
		return &m.SavePetrificationParalysis
	case rules.SavePoisonDeath:
		return &m.SavePoisonDeath
	case rules.SaveBlastBreath:
		return &m.SaveBlastBreath
	case rules.SaveStaffsWands:
		return &m.SaveStaffsWands
	default:
		return &m.SaveSpells
	}
}

// AddAllSaves adds the same modifier to every saving throw category
// under one key
func (m *StatModifiers) AddAllSaves(key string, value int) {
	m.SavePetrificationParalysis.Add(key, value)
	m.SavePoisonDeath.Add(key, value)
	m.SaveBlastBreath.Add(key, value)
	m.SaveStaffsWands.Add(key, value)
	m.SaveSpells.Add(key, value)
}

// RemoveAllSaves removes the modifier at the given key from every
// saving throw category
func (m *StatModifiers) RemoveAllSaves(key string) {
	m.SavePetrificationParalysis.Remove(key)
	m.SavePoisonDeath.Remove(key)
	m.SaveBlastBreath.Remove(key)
	m.SaveStaffsWands.Remove(key)
	m.SaveSpells.Remove(key)
}

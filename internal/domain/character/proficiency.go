package character

import (
	"fmt"
)

// Proficiency is a named capability a character can take, optionally
// leveled and optionally requiring a specification (e.g. Craft needs a
// trade).
type Proficiency struct {
	ID                    string `json:"id" yaml:"id"`
	Name                  string `json:"name" yaml:"name"`
	Description           string `json:"description" yaml:"description"`
	IsGeneral             bool   `json:"is_general" yaml:"is_general"`
	MaxLevel              int    `json:"max_level" yaml:"max_level"`
	RequiresSpecification bool   `json:"requires_specification" yaml:"requires_specification"`
	StartingThrow         int    `json:"starting_throw,omitempty" yaml:"starting_throw,omitempty"`
}

// ProficiencyInstance is a specific proficiency taken by a character,
// including its specification and level if it was taken multiple times.
type ProficiencyInstance struct {
	Proficiency   Proficiency `json:"proficiency"`
	Level         int         `json:"level"`
	Specification string      `json:"specification,omitempty"`
	Throw         int         `json:"throw,omitempty"`
}

// NewProficiencyInstance takes a proficiency at level 0
func NewProficiencyInstance(prof Proficiency) ProficiencyInstance {
	return ProficiencyInstance{
		Proficiency: prof,
		Throw:       prof.StartingThrow,
	}
}

// Display renders the instance for a character sheet: name, then the
// specification in parentheses, then a roman numeral past level one.
func (p ProficiencyInstance) Display() string {
	out := p.Proficiency.Name
	if p.Specification != "" {
		out += fmt.Sprintf(" (%s)", p.Specification)
	}
	if p.Level > 0 {
		out += romanNumeral(p.Level + 1)
	}
	return out
}

var romanNumerals = []string{"", " I", " II", " III", " IV", " V", " VI", " VII", " VIII", " IX", " X"}

func romanNumeral(n int) string {
	if n < 1 || n >= len(romanNumerals) {
		return ""
	}
	return romanNumerals[n]
}

// ProficiencyHook mutates a character sheet when a proficiency is
// granted or revoked
type ProficiencyHook func(pc *PlayerCharacter, instance *ProficiencyInstance)

// ProficiencyRegistry maps proficiency ids to the sheet mutations they
// perform. Built once at startup and passed by reference wherever
// characters are mutated; proficiencies without hooks are purely
// descriptive.
type ProficiencyRegistry struct {
	onAdded   map[string]ProficiencyHook
	onRemoved map[string]ProficiencyHook
}

// NewProficiencyRegistry builds a registry with the built-in hooks
func NewProficiencyRegistry() *ProficiencyRegistry {
	r := &ProficiencyRegistry{
		onAdded:   make(map[string]ProficiencyHook),
		onRemoved: make(map[string]ProficiencyHook),
	}

	r.OnAdd("divine_blessing", func(pc *PlayerCharacter, _ *ProficiencyInstance) {
		pc.CombatStats.Modifiers.AddAllSaves("divine_blessing", 2)
	})
	r.OnRemove("divine_blessing", func(pc *PlayerCharacter, _ *ProficiencyInstance) {
		pc.CombatStats.Modifiers.RemoveAllSaves("divine_blessing")
	})

	return r
}

// OnAdd registers the mutation applied when the proficiency is granted
func (r *ProficiencyRegistry) OnAdd(id string, hook ProficiencyHook) {
	r.onAdded[id] = hook
}

// OnRemove registers the mutation applied when the proficiency is revoked
func (r *ProficiencyRegistry) OnRemove(id string, hook ProficiencyHook) {
	r.onRemoved[id] = hook
}

// TriggerAdd runs the grant hook for the proficiency, if one exists
func (r *ProficiencyRegistry) TriggerAdd(id string, pc *PlayerCharacter, instance *ProficiencyInstance) {
	if hook, ok := r.onAdded[id]; ok {
		hook(pc, instance)
	}
}

// TriggerRemove runs the revoke hook for the proficiency, if one exists
func (r *ProficiencyRegistry) TriggerRemove(id string, pc *PlayerCharacter, instance *ProficiencyInstance) {
	if hook, ok := r.onRemoved[id]; ok {
		hook(pc, instance)
	}
}

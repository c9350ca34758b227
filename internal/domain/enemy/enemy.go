package enemy

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/veildark/acks-engine/internal/dice"
	"github.com/veildark/acks-engine/internal/domain/combat"
	"github.com/veildark/acks-engine/internal/domain/rules"
	"github.com/veildark/acks-engine/internal/errors"
)

// Category is a broad monster classification
type Category string

const (
	CategoryAnimal        Category = "animal"
	CategoryBeastman      Category = "beastman"
	CategoryConstruct     Category = "construct"
	CategoryEnchanted     Category = "enchanted"
	CategoryFantastic     Category = "fantastic"
	CategoryGiantHumanoid Category = "giant_humanoid"
	CategoryHumanoid      Category = "humanoid"
	CategoryOoze          Category = "ooze"
	CategorySummoned      Category = "summoned"
	CategoryUndead        Category = "undead"
	CategoryVermin        Category = "vermin"
)

// Alignment is a monster's moral disposition
type Alignment string

const (
	AlignmentLawful  Alignment = "lawful"
	AlignmentNeutral Alignment = "neutral"
	AlignmentChaotic Alignment = "chaotic"
)

// HitDiceKind selects how an enemy type's hit points are rolled
type HitDiceKind string

const (
	// HitDiceStandard rolls Amount d8s
	HitDiceStandard HitDiceKind = "standard"
	// HitDiceWithModifier rolls Amount d8s plus Modifier
	HitDiceWithModifier HitDiceKind = "with_modifier"
	// HitDiceCustom rolls an arbitrary dice notation
	HitDiceCustom HitDiceKind = "custom"
)

// HitDice describes an enemy type's hit point roll. Standard monsters
// roll d8s; oddballs carry a full dice notation in Custom.
type HitDice struct {
	Kind     HitDiceKind `json:"kind" yaml:"kind"`
	Amount   uint        `json:"amount,omitempty" yaml:"amount,omitempty"`
	Modifier int         `json:"modifier,omitempty" yaml:"modifier,omitempty"`
	Custom   string      `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// Spec converts the hit dice to a roll specification. Custom notations
// get their floor clamped up to 1 so no enemy spawns with zero HP.
func (h HitDice) Spec() (dice.RollSpec, error) {
	switch h.Kind {
	case HitDiceStandard:
		return dice.Simple(h.Amount, 8), nil
	case HitDiceWithModifier:
		return dice.SimpleModifier(h.Amount, 8, h.Modifier), nil
	case HitDiceCustom:
		spec, err := dice.Parse(h.Custom)
		if err != nil {
			return dice.RollSpec{}, errors.Wrapf(err, "invalid custom hit dice %q", h.Custom)
		}
		if spec.MinValue < 1 {
			spec.MinValue = 1
		}
		return spec, nil
	}
	return dice.RollSpec{}, errors.InvalidArgumentf("unknown hit dice kind %q", h.Kind)
}

// Display renders the hit dice the way a bestiary prints them
func (h HitDice) Display() string {
	switch h.Kind {
	case HitDiceWithModifier:
		return dice.SimpleModifier(h.Amount, 8, h.Modifier).Notation()
	case HitDiceCustom:
		return h.Custom
	default:
		return dice.Simple(h.Amount, 8).Notation()
	}
}

// Type is an enemy kind as it appears in the bestiary: everything
// needed to spawn any number of instances of it.
type Type struct {
	ID              string               `json:"id" yaml:"id"`
	Name            string               `json:"name" yaml:"name"`
	Description     string               `json:"description" yaml:"description"`
	HitDice         HitDice              `json:"hit_dice" yaml:"hit_dice"`
	BaseArmorClass  int                  `json:"base_armor_class" yaml:"base_armor_class"`
	BaseAttackThrow int                  `json:"base_attack_throw" yaml:"base_attack_throw"`
	BaseDamage      combat.AttackRoutine `json:"base_damage" yaml:"base_damage"`
	XP              uint                 `json:"xp" yaml:"xp"`
	Morale          int                  `json:"morale" yaml:"morale"`
	Categories      []Category           `json:"categories,omitempty" yaml:"categories,omitempty"`
	Alignment       Alignment            `json:"alignment" yaml:"alignment"`
	Saves           rules.SavingThrows   `json:"saves" yaml:"saves"`
}

// Instance is one spawned enemy: its identity plus its live stats
type Instance struct {
	Ref   combat.CombatantRef
	Stats *combat.CombatantStats
}

// Spawn creates the index-th instance of this type: random attributes,
// freshly rolled hit points, and the type's base numbers stamped in.
// Display names are automatic: the first Orc is "Orc", the second
// "Orc 2".
func (t *Type) Spawn(roller dice.Roller, index int) (*Instance, error) {
	attrs, err := rules.RaceHuman.RollAttributes(roller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll attributes")
	}

	spec, err := t.HitDice.Spec()
	if err != nil {
		return nil, err
	}
	hp, err := dice.Eval(roller, spec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll hit points")
	}

	stats := combat.EmptyStats()
	stats.Attributes = attrs
	stats.Health = combat.NewHealth(uint(hp))
	stats.ArmorClass = t.BaseArmorClass
	stats.AttackThrow = t.BaseAttackThrow
	stats.SavingThrows = t.Saves
	if len(t.BaseDamage) > 0 {
		stats.Damage = t.BaseDamage
	}

	return &Instance{
		Ref:   combat.EnemyRefAutoName(t.ID, index, t.Name),
		Stats: stats,
	}, nil
}

// LoadType reads a single enemy type from a YAML file
func LoadType(path string) (Type, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Type{}, errors.Wrapf(err, "failed to read enemy file %s", path)
	}

	var typ Type
	if err := yaml.Unmarshal(data, &typ); err != nil {
		return Type{}, errors.Wrapf(err, "failed to parse enemy file %s", path)
	}
	if typ.ID == "" {
		return Type{}, errors.InvalidArgumentf("enemy file %s has no id", path)
	}
	if typ.Name == "" {
		typ.Name = typ.ID
	}
	if _, err := typ.HitDice.Spec(); err != nil {
		return Type{}, err
	}
	return typ, nil
}

// LoadDir reads every .yaml enemy type in a directory, keyed by id
func LoadDir(dir string) (map[string]Type, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read enemy directory %s", dir)
	}

	types := make(map[string]Type)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		typ, err := LoadType(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		types[typ.ID] = typ
	}
	return types, nil
}

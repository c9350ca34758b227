package rules

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/veildark/acks-engine/internal/errors"
)

// HitDie is the die a class rolls for hit points each level
type HitDie string

const (
	HitDieD4  HitDie = "d4"
	HitDieD6  HitDie = "d6"
	HitDieD8  HitDie = "d8"
	HitDieD10 HitDie = "d10"
	HitDieD12 HitDie = "d12"
)

// Sides returns the number of faces on the hit die
func (h HitDie) Sides() uint {
	switch h {
	case HitDieD4:
		return 4
	case HitDieD6:
		return 6
	case HitDieD8:
		return 8
	case HitDieD10:
		return 10
	case HitDieD12:
		return 12
	}
	return 4
}

// Class describes a playable class: its dice, its progression curves,
// and which attributes gate its XP gain.
type Class struct {
	Name              string                 `json:"name" yaml:"name"`
	Description       string                 `json:"description" yaml:"description"`
	PrimeRequisites   []Attr                 `json:"prime_requisites" yaml:"prime_requisites"`
	HitDie            HitDie                 `json:"hit_die" yaml:"hit_die"`
	BaseXPCost        uint                   `json:"base_xp_cost" yaml:"base_xp_cost"`
	SaveProgression   SavingThrowProgression `json:"save_progression" yaml:"save_progression"`
	AttackProgression AttackProgression      `json:"attack_progression" yaml:"attack_progression"`
	MagicType         MagicType              `json:"magic_type,omitempty" yaml:"magic_type,omitempty"`
	CasterTier        CasterTier             `json:"caster_tier" yaml:"caster_tier"`
}

// DefaultClass is the fallback used before a class has been picked
func DefaultClass() Class {
	return Class{
		HitDie:            HitDieD4,
		BaseXPCost:        2000,
		SaveProgression:   SaveProgressionFighter,
		AttackProgression: AttackOnePerTwo,
	}
}

// NextLevelXPCost returns the XP needed to leave the given level
func (c Class) NextLevelXPCost(currentLevel int) uint {
	return NextLevelXPCost(c.BaseXPCost, c.SaveProgression, currentLevel)
}

// LoadClass reads a single class definition from a YAML file
func LoadClass(path string) (Class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Class{}, errors.Wrapf(err, "failed to read class file %s", path)
	}

	var class Class
	if err := yaml.Unmarshal(data, &class); err != nil {
		return Class{}, errors.Wrapf(err, "failed to parse class file %s", path)
	}
	if class.Name == "" {
		return Class{}, errors.InvalidArgumentf("class file %s has no name", path)
	}
	return class, nil
}

// LoadClassDir reads every .yaml class definition in a directory,
// keyed by name
func LoadClassDir(dir string) (map[string]Class, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read class directory %s", dir)
	}

	classes := make(map[string]Class)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		class, err := LoadClass(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		classes[class.Name] = class
	}
	return classes, nil
}

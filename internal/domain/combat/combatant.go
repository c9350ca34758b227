package combat

import (
	"fmt"
)

// Owner is who makes decisions for a combatant right now. PCs are not
// always controlled by their player, for example while charmed.
type Owner struct {
	Player string `json:"player,omitempty"`
}

// DM is the dungeon master owner
func DM() Owner {
	return Owner{}
}

// Player is a named remote player owner
func Player(name string) Owner {
	return Owner{Player: name}
}

// IsDM reports whether the DM controls this combatant
func (o Owner) IsDM() bool {
	return o.Player == ""
}

func (o Owner) String() string {
	if o.IsDM() {
		return "DM"
	}
	return o.Player
}

// CombatantKind distinguishes enemy instances from player characters
type CombatantKind string

const (
	KindEnemy CombatantKind = "enemy"
	KindPC    CombatantKind = "pc"
)

// CombatantRef identifies one combatant. It is a lookup key only; the
// authoritative stats live in an external store reached through it.
// Enemy refs carry the type id plus an instance index for when several
// of the same type are present, and cache the display name so it does
// not have to be looked up constantly.
type CombatantRef struct {
	Kind        CombatantKind `json:"kind"`
	TypeID      string        `json:"type_id,omitempty"`
	Index       int           `json:"index,omitempty"`
	DisplayName string        `json:"display_name,omitempty"`
	User        string        `json:"user,omitempty"`
	Name        string        `json:"name,omitempty"`
}

// EnemyRef identifies one spawned enemy instance
func EnemyRef(typeID string, index int, displayName string) CombatantRef {
	return CombatantRef{
		Kind:        KindEnemy,
		TypeID:      typeID,
		Index:       index,
		DisplayName: displayName,
	}
}

// EnemyRefAutoName derives the display name from the type name and the
// instance index: the first Orc is "Orc", the second "Orc 2".
func EnemyRefAutoName(typeID string, index int, typeName string) CombatantRef {
	name := typeName
	if index > 0 {
		name = fmt.Sprintf("%s %d", typeName, index+1)
	}
	return EnemyRef(typeID, index, name)
}

// PCRef identifies a player character by owning user and name
func PCRef(user, name string) CombatantRef {
	return CombatantRef{
		Kind: KindPC,
		User: user,
		Name: name,
	}
}

func (c CombatantRef) String() string {
	if c.Kind == KindEnemy {
		return c.DisplayName
	}
	return c.Name
}

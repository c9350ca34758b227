package fights

//go:generate mockgen -destination=mock/mock_repository.go -package=mockfights -source=repository.go

import (
	"context"

	"github.com/veildark/acks-engine/internal/domain/combat"
)

// Repository persists active fights, keyed by the encounter they belong
// to. Saving after every transition is how a host process survives a
// restart mid-combat.
type Repository interface {
	// Save upserts the fight for an encounter
	Save(ctx context.Context, encounterID string, fight *combat.Fight) error

	// Get retrieves the fight for an encounter
	Get(ctx context.Context, encounterID string) (*combat.Fight, error)

	// Delete tears the fight down when combat ends
	Delete(ctx context.Context, encounterID string) error

	// ListActive returns the encounter IDs with a fight in progress
	ListActive(ctx context.Context) ([]string, error)
}

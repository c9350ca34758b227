package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"

	"github.com/veildark/acks-engine/internal/domain/character"
)

// Repository defines the interface for character persistence
type Repository interface {
	// Create stores a new character
	Create(ctx context.Context, pc *character.PlayerCharacter) error

	// Get retrieves a character by ID
	Get(ctx context.Context, id string) (*character.PlayerCharacter, error)

	// GetByUser retrieves all characters belonging to a user
	GetByUser(ctx context.Context, user string) ([]*character.PlayerCharacter, error)

	// Update overwrites an existing character
	Update(ctx context.Context, pc *character.PlayerCharacter) error

	// Delete removes a character
	Delete(ctx context.Context, id string) error
}

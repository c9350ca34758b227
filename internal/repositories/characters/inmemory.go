package characters

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/veildark/acks-engine/internal/domain/character"
	"github.com/veildark/acks-engine/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the character
// repository. Useful for testing and development.
type InMemoryRepository struct {
	mu         sync.RWMutex
	characters map[string]*character.PlayerCharacter
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		characters: make(map[string]*character.PlayerCharacter),
	}
}

// clone deep-copies a character so callers cannot mutate stored state.
// Characters hold pointer-backed stat blocks, so a struct copy is not
// enough.
func clone(pc *character.PlayerCharacter) (*character.PlayerCharacter, error) {
	data, err := json.Marshal(pc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to copy character")
	}
	var out character.PlayerCharacter
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, "failed to copy character")
	}
	return &out, nil
}

// Create stores a new character
func (r *InMemoryRepository) Create(ctx context.Context, pc *character.PlayerCharacter) error {
	if pc == nil {
		return errors.InvalidArgument("character cannot be nil")
	}
	if pc.ID == "" {
		return errors.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[pc.ID]; exists {
		return errors.AlreadyExistsf("character with ID '%s' already exists", pc.ID).
			WithMeta("character_id", pc.ID)
	}

	stored, err := clone(pc)
	if err != nil {
		return err
	}
	r.characters[pc.ID] = stored
	return nil
}

// Get retrieves a character by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*character.PlayerCharacter, error) {
	if id == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	pc, exists := r.characters[id]
	if !exists {
		return nil, errors.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	return clone(pc)
}

// GetByUser retrieves all characters belonging to a user
func (r *InMemoryRepository) GetByUser(ctx context.Context, user string) ([]*character.PlayerCharacter, error) {
	if user == "" {
		return nil, errors.InvalidArgument("user is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*character.PlayerCharacter
	for _, pc := range r.characters {
		if pc.User != user {
			continue
		}
		copied, err := clone(pc)
		if err != nil {
			return nil, err
		}
		result = append(result, copied)
	}
	return result, nil
}

// Update overwrites an existing character
func (r *InMemoryRepository) Update(ctx context.Context, pc *character.PlayerCharacter) error {
	if pc == nil {
		return errors.InvalidArgument("character cannot be nil")
	}
	if pc.ID == "" {
		return errors.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[pc.ID]; !exists {
		return errors.NotFoundf("character with ID '%s' not found", pc.ID).
			WithMeta("character_id", pc.ID)
	}

	stored, err := clone(pc)
	if err != nil {
		return err
	}
	r.characters[pc.ID] = stored
	return nil
}

// Delete removes a character
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[id]; !exists {
		return errors.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	delete(r.characters, id)
	return nil
}

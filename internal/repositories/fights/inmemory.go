package fights

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/veildark/acks-engine/internal/domain/combat"
	"github.com/veildark/acks-engine/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the fight
// repository. Useful for testing and development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	fights map[string]*combat.Fight
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		fights: make(map[string]*combat.Fight),
	}
}

func clone(fight *combat.Fight) (*combat.Fight, error) {
	data, err := json.Marshal(fight)
	if err != nil {
		return nil, errors.Wrap(err, "failed to copy fight")
	}
	var out combat.Fight
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(err, "failed to copy fight")
	}
	return &out, nil
}

// Save upserts the fight for an encounter
func (r *InMemoryRepository) Save(ctx context.Context, encounterID string, fight *combat.Fight) error {
	if encounterID == "" {
		return errors.InvalidArgument("encounter ID is required")
	}
	if fight == nil {
		return errors.InvalidArgument("fight cannot be nil")
	}

	stored, err := clone(fight)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.fights[encounterID] = stored
	return nil
}

// Get retrieves the fight for an encounter
func (r *InMemoryRepository) Get(ctx context.Context, encounterID string) (*combat.Fight, error) {
	if encounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	fight, exists := r.fights[encounterID]
	if !exists {
		return nil, errors.NotFoundf("no fight for encounter '%s'", encounterID).
			WithMeta("encounter_id", encounterID)
	}
	return clone(fight)
}

// Delete tears the fight down when combat ends
func (r *InMemoryRepository) Delete(ctx context.Context, encounterID string) error {
	if encounterID == "" {
		return errors.InvalidArgument("encounter ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fights[encounterID]; !exists {
		return errors.NotFoundf("no fight for encounter '%s'", encounterID).
			WithMeta("encounter_id", encounterID)
	}
	delete(r.fights, encounterID)
	return nil
}

// ListActive returns the encounter IDs with a fight in progress
func (r *InMemoryRepository) ListActive(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.fights))
	for id := range r.fights {
		ids = append(ids, id)
	}
	return ids, nil
}

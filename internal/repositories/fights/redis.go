package fights

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/veildark/acks-engine/internal/domain/combat"
	"github.com/veildark/acks-engine/internal/errors"
)

const activeFightsKey = "fights:active"

type redisRepo struct {
	client redis.UniversalClient
}

// NewRedis creates a new Redis-backed fight repository
func NewRedis(client redis.UniversalClient) Repository {
	return &redisRepo{
		client: client,
	}
}

func (r *redisRepo) key(encounterID string) string {
	return fmt.Sprintf("fight:%s", encounterID)
}

// Save upserts the fight for an encounter
func (r *redisRepo) Save(ctx context.Context, encounterID string, fight *combat.Fight) error {
	if encounterID == "" {
		return errors.InvalidArgument("encounter ID is required")
	}
	if fight == nil {
		return errors.InvalidArgument("fight cannot be nil")
	}

	jsonData, err := json.Marshal(fight)
	if err != nil {
		return errors.Wrap(err, "failed to marshal fight")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(encounterID), string(jsonData), 0)
	pipe.SAdd(ctx, activeFightsKey, encounterID)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to store fight")
	}
	return nil
}

// Get retrieves the fight for an encounter
func (r *redisRepo) Get(ctx context.Context, encounterID string) (*combat.Fight, error) {
	if encounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(encounterID)).Bytes()
	if err == redis.Nil {
		return nil, errors.NotFoundf("no fight for encounter '%s'", encounterID).
			WithMeta("encounter_id", encounterID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get fight")
	}

	var fight combat.Fight
	if err := json.Unmarshal(jsonData, &fight); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal fight")
	}
	return &fight, nil
}

// Delete tears the fight down when combat ends
func (r *redisRepo) Delete(ctx context.Context, encounterID string) error {
	if encounterID == "" {
		return errors.InvalidArgument("encounter ID is required")
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(encounterID))
	pipe.SRem(ctx, activeFightsKey, encounterID)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to delete fight")
	}
	return nil
}

// ListActive returns the encounter IDs with a fight in progress
func (r *redisRepo) ListActive(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, activeFightsKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list fights")
	}
	return ids, nil
}

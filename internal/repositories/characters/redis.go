package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/veildark/acks-engine/internal/domain/character"
	"github.com/veildark/acks-engine/internal/errors"
)

// Data is the serialized form of a character in Redis
type Data struct {
	character.PlayerCharacter
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type redisRepo struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(client redis.UniversalClient) Repository {
	return &redisRepo{
		client: client,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

func (r *redisRepo) userCharactersKey(user string) string {
	return fmt.Sprintf("user:%s:characters", user)
}

func (r *redisRepo) set(ctx context.Context, pc *character.PlayerCharacter, createdAt time.Time) error {
	data := Data{
		PlayerCharacter: *pc,
		CreatedAt:       createdAt,
		UpdatedAt:       r.now(),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "failed to marshal character")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(pc.ID), string(jsonData), 0)
	pipe.SAdd(ctx, r.userCharactersKey(pc.User), pc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to store character")
	}
	return nil
}

// Create stores a new character
func (r *redisRepo) Create(ctx context.Context, pc *character.PlayerCharacter) error {
	if pc == nil {
		return errors.InvalidArgument("character cannot be nil")
	}
	if pc.ID == "" {
		return errors.InvalidArgument("character ID is required")
	}

	exists, err := r.client.Exists(ctx, r.key(pc.ID)).Result()
	if err != nil {
		return errors.Wrap(err, "failed to check character existence")
	}
	if exists > 0 {
		return errors.AlreadyExistsf("character with ID '%s' already exists", pc.ID).
			WithMeta("character_id", pc.ID)
	}

	return r.set(ctx, pc, r.now())
}

// Get retrieves a character by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*character.PlayerCharacter, error) {
	if id == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err == redis.Nil {
		return nil, errors.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get character")
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal character")
	}
	pc := data.PlayerCharacter
	return &pc, nil
}

// GetByUser retrieves all characters belonging to a user
func (r *redisRepo) GetByUser(ctx context.Context, user string) ([]*character.PlayerCharacter, error) {
	if user == "" {
		return nil, errors.InvalidArgument("user is required")
	}

	ids, err := r.client.SMembers(ctx, r.userCharactersKey(user)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list character IDs")
	}

	result := make([]*character.PlayerCharacter, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			pc, err := r.Get(ctx, id)
			if err != nil {
				return errors.Wrapf(err, "failed to get character %s", id)
			}
			result[i] = pc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites an existing character
func (r *redisRepo) Update(ctx context.Context, pc *character.PlayerCharacter) error {
	if pc == nil {
		return errors.InvalidArgument("character cannot be nil")
	}
	if pc.ID == "" {
		return errors.InvalidArgument("character ID is required")
	}

	existing, err := r.client.Get(ctx, r.key(pc.ID)).Bytes()
	if err == redis.Nil {
		return errors.NotFoundf("character with ID '%s' not found", pc.ID).
			WithMeta("character_id", pc.ID)
	}
	if err != nil {
		return errors.Wrap(err, "failed to get character")
	}

	var data Data
	if err := json.Unmarshal(existing, &data); err != nil {
		return errors.Wrap(err, "failed to unmarshal character")
	}

	return r.set(ctx, pc, data.CreatedAt)
}

// Delete removes a character
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.InvalidArgument("character ID is required")
	}

	pc, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.userCharactersKey(pc.User), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to delete character")
	}
	return nil
}

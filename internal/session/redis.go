package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"sunray/navigator/internal/domain"
	"sunray/navigator/internal/navigation"
)

type redisStore struct {
	redisClient *redis.Client
	keyPrefix   string
}

// NewRedisStore keeps navigation states in Redis so sessions survive
// restarts and can be shared between instances.
func NewRedisStore(redisClient *redis.Client) Store {
	return &redisStore{
		redisClient: redisClient,
		keyPrefix:   "navigator:session:",
	}
}

func (s *redisStore) Get(ctx context.Context, id string) (*navigation.State, error) {
	val, err := s.redisClient.Get(ctx, s.keyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}

	var st navigation.State
	if err := json.Unmarshal([]byte(val), &st); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &st, nil
}

func (s *redisStore) Put(ctx context.Context, id string, st *navigation.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", id, err)
	}

	if err := s.redisClient.Set(ctx, s.keyPrefix+id, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store session %s: %w", id, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	if err := s.redisClient.Del(ctx, s.keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"loan-calculator/domain"
)

const (
	stateKeyPrefix = "loancalc:session:"

	// maxUpdateAttempts bounds the optimistic retries when another writer
	// touches the same session between WATCH and EXEC.
	maxUpdateAttempts = 10
)

// RedisStateRepository stores each session's state as JSON with a sliding
// expiry, so sessions can be served by any replica.
type RedisStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStateRepository(client *redis.Client, ttl time.Duration) *RedisStateRepository {
	return &RedisStateRepository{client: client, ttl: ttl}
}

func (r *RedisStateRepository) Load(ctx context.Context, id string) (domain.State, error) {
	var raw []byte
	var err error
	if r.ttl > 0 {
		raw, err = r.client.GetEx(ctx, stateKeyPrefix+id, r.ttl).Bytes()
	} else {
		raw, err = r.client.Get(ctx, stateKeyPrefix+id).Bytes()
	}
	if errors.Is(err, redis.Nil) {
		return domain.State{}, ErrStateNotFound
	}
	if err != nil {
		return domain.State{}, fmt.Errorf("load session %s: %w", id, err)
	}

	return decodeState(id, raw)
}

func decodeState(id string, raw []byte) (domain.State, error) {
	var s domain.State
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.State{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return s, nil
}

func (r *RedisStateRepository) Store(ctx context.Context, id string, state domain.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}
	if err := r.client.Set(ctx, stateKeyPrefix+id, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("store session %s: %w", id, err)
	}
	return nil
}

// Update watches the session key and commits fn's result in a MULTI/EXEC
// block, retrying when the key changed in between.
func (r *RedisStateRepository) Update(ctx context.Context, id string, fn UpdateFunc) (domain.State, error) {
	key := stateKeyPrefix + id
	var next domain.State

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrStateNotFound
		}
		if err != nil {
			return fmt.Errorf("load session %s: %w", id, err)
		}
		current, err := decodeState(id, raw)
		if err != nil {
			return err
		}

		updated, err := fn(current)
		if err != nil {
			return err
		}
		enc, err := json.Marshal(updated)
		if err != nil {
			return fmt.Errorf("encode session %s: %w", id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, enc, r.ttl)
			return nil
		})
		if err == nil {
			next = updated
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return domain.State{}, err
		}
		return next, nil
	}
	return domain.State{}, fmt.Errorf("update session %s: %w", id, ErrStateConflict)
}

func (r *RedisStateRepository) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, stateKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if n == 0 {
		return ErrStateNotFound
	}
	return nil
}

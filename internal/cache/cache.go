// Package cache puts a Redis read-through cache in front of the board and
// task list queries. Writes go to the backing repository first and then
// evict the affected list keys. Redis failures never fail a request; the
// backing repository is consulted instead.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "taskboard:"

func boardsKey() string {
	return keyPrefix + "boards"
}

func tasksKey(boardID uuid.UUID) string {
	return keyPrefix + "tasks:" + boardID.String()
}

func allTasksKeys() string {
	return keyPrefix + "tasks:*"
}

type store struct {
	redis *redis.Client
	ttl   time.Duration
}

func newStore(client *redis.Client, ttl time.Duration) store {
	if ttl < 0 {
		ttl = 0
	}
	return store{redis: client, ttl: ttl}
}

func load[T any](ctx context.Context, s store, key string) (T, bool) {
	var out T
	if s.redis == nil {
		return out, false
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			_ = s.redis.Del(ctx, key).Err()
		}
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		_ = s.redis.Del(ctx, key).Err()
		return out, false
	}
	return out, true
}

func (s store) save(ctx context.Context, key string, v any) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = s.redis.Set(ctx, key, data, s.ttl).Err()
}

func (s store) evict(ctx context.Context, keys ...string) {
	if s.redis == nil || len(keys) == 0 {
		return
	}
	_ = s.redis.Del(ctx, keys...).Err()
}

// evictMatching deletes every key matching pattern. It is used when the exact
// key of a stale list is unknown.
func (s store) evictMatching(ctx context.Context, pattern string) {
	if s.redis == nil {
		return
	}
	var keys []string
	iter := s.redis.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	s.evict(ctx, keys...)
}

package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisSessionTTL = 24 * time.Hour

// RedisStore keeps sessions in an external cache so they survive process
// restarts and can be shared across replicas.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func redisSessionKey(token string) string {
	return "docent:session:" + token
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := r.client.Get(ctx, redisSessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (r *RedisStore) Put(ctx context.Context, token string, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, redisSessionKey(token), data, redisSessionTTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, redisSessionKey(token)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

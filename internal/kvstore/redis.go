package kvstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces client keys so a shared Redis instance can serve
// multiple sessions.
const keyPrefix = "survival-client:"

// redisKV implements KV on Redis.
type redisKV struct {
	client *redis.Client
}

// NewRedis connects to Redis at the given URL and verifies the connection.
func NewRedis(ctx context.Context, url string) (KV, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse Redis URL")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to ping Redis")
	}

	return &redisKV{client: client}, nil
}

func (r *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get from kv store")
	}
	return data, nil
}

func (r *redisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return errors.Wrap(err, "failed to set kv value")
	}
	return nil
}

func (r *redisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return errors.Wrap(err, "failed to delete kv value")
	}
	return nil
}

package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/responder/responder/internal/question"
)

// RedisStore keeps the document JSON under a single Redis key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store. Key may be empty.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "responder:questions"
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Location() string {
	return "redis://" + r.client.Options().Addr + "/" + r.key
}

func (r *RedisStore) Load(ctx context.Context) (question.Document, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return question.Document{}, nil
		}
		return nil, &StorageReadError{Location: r.Location(), Err: err}
	}
	return decodeDocument(r.Location(), b)
}

func (r *RedisStore) Save(ctx context.Context, doc question.Document) error {
	b, err := encodeDocument(doc)
	if err != nil {
		return &StorageWriteError{Location: r.Location(), Err: err}
	}
	if err := r.client.Set(ctx, r.key, b, 0).Err(); err != nil {
		return &StorageWriteError{Location: r.Location(), Err: err}
	}
	return nil
}

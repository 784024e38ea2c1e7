// internal/adapters/redis/store.go
package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/ports"
)

var _ ports.StoragePort = (*Store)(nil)

// Store is durable storage on Redis. Keys never expire and are prefixed
// with the profile namespace.
type Store struct {
	client *redis.Client
	prefix string
}

func NewStore(client *redis.Client, namespace string) *Store {
	if namespace == "" {
		namespace = "default"
	}
	return &Store{client: client, prefix: "storefront:" + namespace + ":"}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

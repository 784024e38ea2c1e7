// internal/adapters/redis/client.go
package redis

import (
	"github.com/redis/go-redis/v9"
)

func NewClient(addr, username, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})
}

// internal/application/fakes_test.go
package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
)

var errStorageDown = errors.New("storage unavailable")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// memStorage is an in-memory StoragePort. failWrites makes Set and Delete
// fail without touching the data.
type memStorage struct {
	mu         sync.Mutex
	data       map[string][]byte
	failWrites bool
	failReads  bool
	writes     int
}

func newMemStorage() *memStorage {
	return &memStorage{data: make(map[string][]byte)}
}

func (m *memStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return nil, false, errStorageDown
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *memStorage) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errStorageDown
	}
	m.writes++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return errStorageDown
	}
	delete(m.data, key)
	return nil
}

func (m *memStorage) raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return string(v), ok
}

type mockCache struct {
	get    func(ctx context.Context, key string) ([]byte, error)
	set    func(ctx context.Context, key string, value interface{}) error
	delete func(ctx context.Context, prefix string) error
	ping   func(ctx context.Context) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	return m.get(ctx, key)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}) error {
	return m.set(ctx, key, value)
}

func (m *mockCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	return m.delete(ctx, prefix)
}

func (m *mockCache) Ping(ctx context.Context) error {
	return m.ping(ctx)
}

type fixedOrderIDs string

func (f fixedOrderIDs) NewOrderID() string {
	return string(f)
}

package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// MetadataStore keeps string key/value pairs per identity.
type MetadataStore interface {
	// Get returns "" for an unset key.
	Get(ctx context.Context, identityID, key string) (string, error)
	Set(ctx context.Context, identityID, key, value string) error
}

// RedisMetadataStore stores each identity's metadata in one hash.
type RedisMetadataStore struct {
	client *redis.Client
}

// NewRedisMetadataStore は RedisMetadataStore を生成する
func NewRedisMetadataStore(client *redis.Client) *RedisMetadataStore {
	return &RedisMetadataStore{client: client}
}

func metadataKey(identityID string) string {
	return "identity:" + identityID + ":metadata"
}

func (s *RedisMetadataStore) Get(ctx context.Context, identityID, key string) (string, error) {
	v, err := s.client.HGet(ctx, metadataKey(identityID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

func (s *RedisMetadataStore) Set(ctx context.Context, identityID, key, value string) error {
	return s.client.HSet(ctx, metadataKey(identityID), key, value).Err()
}

// MemoryMetadataStore is a process-local MetadataStore.
type MemoryMetadataStore struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewMemoryMetadataStore は MemoryMetadataStore を生成する
func NewMemoryMetadataStore() *MemoryMetadataStore {
	return &MemoryMetadataStore{data: make(map[string]map[string]string)}
}

func (s *MemoryMetadataStore) Get(ctx context.Context, identityID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data[identityID][key], nil
}

func (s *MemoryMetadataStore) Set(ctx context.Context, identityID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.data[identityID]
	if !ok {
		m = make(map[string]string)
		s.data[identityID] = m
	}
	m[key] = value
	return nil
}

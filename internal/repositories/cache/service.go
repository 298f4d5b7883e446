package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"splitr/internal/models"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// GenerateKey builds a namespaced cache key like "user:id:42".
func (s *CacheService) GenerateKey(parts ...interface{}) string {
	key := ""
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += fmt.Sprint(p)
	}
	return key
}

// User cache helpers

func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	return s.Set(ctx, userKey(user.ID), user)
}

func (s *CacheService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.Get(ctx, userKey(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, id uint) error {
	return s.Delete(ctx, userKey(id))
}

// Group cache helpers

func (s *CacheService) CacheGroup(ctx context.Context, group *models.Group) error {
	return s.Set(ctx, groupKey(group.ID), group)
}

func (s *CacheService) GetGroup(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := s.Get(ctx, groupKey(id), &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *CacheService) InvalidateGroup(ctx context.Context, id uint) error {
	return s.Delete(ctx, groupKey(id))
}

func userKey(id uint) string  { return fmt.Sprintf("user:id:%d", id) }
func groupKey(id uint) string { return fmt.Sprintf("group:id:%d", id) }

// HealthCheck pings Redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// FlushAll clears the whole cache, used on startup.
func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ipv4-bazaar/internal/cache"

	"github.com/redis/go-redis/v9"
)

// RedisStore 將 session 資料存於 Redis，key 格式為 session:<sid>:<key>
// 每次寫入都會刷新 TTL
type RedisStore struct {
	c   cache.Cache
	sid string
	ttl time.Duration
}

// NewRedisStore 建立綁定在 sid 上的 Store
func NewRedisStore(c cache.Cache, sid string, ttl time.Duration) *RedisStore {
	return &RedisStore{c: c, sid: sid, ttl: ttl}
}

func (s *RedisStore) key(k string) string {
	return "session:" + s.sid + ":" + k
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.c.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("session get %s: %w", key, err)
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.c.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.c.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

// Touch 延長既有 key 的存活時間；不存在的 key 會被忽略
func (s *RedisStore) Touch(ctx context.Context) error {
	if s.ttl <= 0 {
		return nil
	}
	for _, k := range []string{KeyUser, KeyAdmin} {
		if err := s.c.Expire(ctx, s.key(k), s.ttl).Err(); err != nil {
			return fmt.Errorf("session touch: %w", err)
		}
	}
	return nil
}

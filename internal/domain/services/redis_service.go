package services

import (
	"context"
	"sync"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// revokedTokenPrefix Redis 中已注销令牌的键前缀
const revokedTokenPrefix = "revoked_token:"

// InterfaceTokenStore 记录已注销的令牌 ID
type InterfaceTokenStore interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// NewRedisClient 根据配置创建 Redis 客户端
func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// RedisTokenStore 基于 Redis 的注销令牌存储，键在令牌过期时自动删除
type RedisTokenStore struct {
	Client *redis.Client
}

// NewRedisTokenStore 创建 Redis 令牌存储
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{Client: client}
}

// 1 Revoke 注销令牌直到 until
func (s *RedisTokenStore) Revoke(ctx context.Context, jti string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return s.Client.Set(ctx, revokedTokenPrefix+jti, "1", ttl).Err()
}

// 2 IsRevoked 检查令牌是否已注销
func (s *RedisTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.Client.Exists(ctx, revokedTokenPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryTokenStore 进程内的注销令牌存储
type MemoryTokenStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	Now     func() time.Time
}

// NewMemoryTokenStore 创建内存令牌存储
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		revoked: make(map[string]time.Time),
		Now:     time.Now,
	}
}

func (s *MemoryTokenStore) Revoke(ctx context.Context, jti string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	// 顺带清理已过期的记录
	for id, expiry := range s.revoked {
		if !expiry.After(now) {
			delete(s.revoked, id)
		}
	}
	if until.After(now) {
		s.revoked[jti] = until
	}
	return nil
}

func (s *MemoryTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.revoked[jti]
	if !ok {
		return false, nil
	}
	if !expiry.After(s.Now()) {
		delete(s.revoked, jti)
		return false, nil
	}
	return true, nil
}

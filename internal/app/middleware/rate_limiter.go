package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/error/code"
	"github.com/aid4sure/VeganEcosystem/internal/error/response"

	"github.com/gin-gonic/gin"
)

// TokenBucket 简单的令牌桶限流器
type TokenBucket struct {
	rate       float64    // 每秒填充的令牌数
	capacity   int        // 桶的容量
	tokens     float64    // 当前令牌数
	lastRefill time.Time  // 上次填充时间
	mu         sync.Mutex // 互斥锁
}

// NewTokenBucket 创建新的令牌桶限流器
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// Allow 尝试获取令牌
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	// 填充令牌
	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// RateLimiterConfig 限流器配置
type RateLimiterConfig struct {
	Rate      float64                   // 每秒允许的请求数
	Burst     int                       // 允许的突发请求数
	IdleTTL   time.Duration             // 闲置多久后回收限流器
	LimitType string                    // 限流类型: "ip", "path", "combined"
	KeyFunc   func(*gin.Context) string // 自定义键生成函数
}

// DefaultRateLimiterConfig 默认限流器配置
var DefaultRateLimiterConfig = RateLimiterConfig{
	Rate:      1,
	Burst:     5,
	IdleTTL:   time.Hour,
	LimitType: "ip",
}

// limiterEntry 限流器及其最近使用时间
type limiterEntry struct {
	bucket   *TokenBucket
	lastSeen time.Time
}

// RateLimiter 按键分桶的限流器
type RateLimiter struct {
	cfg      RateLimiterConfig
	mu       sync.Mutex
	limiters map[string]*limiterEntry
}

// NewRateLimiter 创建限流器
func NewRateLimiter(config ...RateLimiterConfig) *RateLimiter {
	cfg := DefaultRateLimiterConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	// 确保配置有效
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRateLimiterConfig.Rate
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultRateLimiterConfig.Burst
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultRateLimiterConfig.IdleTTL
	}
	if cfg.LimitType == "" {
		cfg.LimitType = DefaultRateLimiterConfig.LimitType
	}

	return &RateLimiter{
		cfg:      cfg,
		limiters: make(map[string]*limiterEntry),
	}
}

// key 根据限流类型生成键
func (rl *RateLimiter) key(c *gin.Context) string {
	switch rl.cfg.LimitType {
	case "path":
		return c.FullPath()
	case "combined":
		return c.ClientIP() + ":" + c.FullPath()
	case "ip":
		return c.ClientIP()
	default:
		if rl.cfg.KeyFunc != nil {
			return rl.cfg.KeyFunc(c)
		}
		return c.ClientIP()
	}
}

// get 获取或创建键对应的令牌桶
func (rl *RateLimiter) get(key string) *TokenBucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limiters[key]
	if !exists {
		entry = &limiterEntry{bucket: NewTokenBucket(rl.cfg.Rate, rl.cfg.Burst)}
		rl.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.bucket
}

// Middleware 创建限流中间件
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.get(rl.key(c)).Allow() {
			response.Fail(c, code.ErrTooManyRequests, nil)
			return
		}
		c.Next()
	}
}

// Run 定期回收闲置的限流器，直到 ctx 取消
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(rl.cfg.IdleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanIdle(time.Now())
		}
	}
}

// cleanIdle 删除闲置超过 IdleTTL 的限流器
func (rl *RateLimiter) cleanIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) > rl.cfg.IdleTTL {
			delete(rl.limiters, key)
		}
	}
}

// IPRateLimiter 按IP限流
func IPRateLimiter(rate float64, burst int) *RateLimiter {
	return NewRateLimiter(RateLimiterConfig{
		Rate:      rate,
		Burst:     burst,
		LimitType: "ip",
	})
}

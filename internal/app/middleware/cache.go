package middleware

import (
	"bytes"
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// 缓存条目
type cacheEntry struct {
	Content     []byte
	ContentType string
	Expiration  time.Time
}

// CacheConfig 缓存配置
type CacheConfig struct {
	Expiration time.Duration             // 缓存过期时间
	Methods    []string                  // 需要缓存的HTTP方法
	KeyFunc    func(*gin.Context) string // 自定义缓存键生成函数
}

// DefaultCacheConfig 默认缓存配置
var DefaultCacheConfig = CacheConfig{
	Expiration: 30 * time.Second,
	Methods:    []string{http.MethodGet},
	KeyFunc:    defaultKeyFunc,
}

// ResponseCache 内存响应缓存，缓存键以请求路径开头，便于按前缀清除
type ResponseCache struct {
	mu    sync.RWMutex
	items map[string]cacheEntry
}

// NewResponseCache 创建响应缓存
func NewResponseCache() *ResponseCache {
	return &ResponseCache{
		items: make(map[string]cacheEntry),
	}
}

// 默认缓存键生成函数：路径 + 排序后的查询参数
func defaultKeyFunc(c *gin.Context) string {
	path := c.Request.URL.Path

	queryParams := c.Request.URL.Query()
	queryKeys := make([]string, 0, len(queryParams))
	for key := range queryParams {
		queryKeys = append(queryKeys, key)
	}
	sort.Strings(queryKeys)

	var b strings.Builder
	b.WriteString(path)
	b.WriteString("?")
	for _, key := range queryKeys {
		values := queryParams[key]
		sort.Strings(values)
		for _, value := range values {
			b.WriteString(key + "=" + value + "&")
		}
	}
	return b.String()
}

// Middleware 创建缓存中间件，只缓存 200 响应
func (rc *ResponseCache) Middleware(config ...CacheConfig) gin.HandlerFunc {
	// 使用默认配置或自定义配置
	cfg := DefaultCacheConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	// 确保配置有效
	if cfg.Expiration <= 0 {
		cfg.Expiration = DefaultCacheConfig.Expiration
	}
	if len(cfg.Methods) == 0 {
		cfg.Methods = DefaultCacheConfig.Methods
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = DefaultCacheConfig.KeyFunc
	}

	return func(c *gin.Context) {
		methodAllowed := false
		for _, method := range cfg.Methods {
			if c.Request.Method == method {
				methodAllowed = true
				break
			}
		}
		if !methodAllowed {
			c.Next()
			return
		}

		key := cfg.KeyFunc(c)

		rc.mu.RLock()
		entry, found := rc.items[key]
		rc.mu.RUnlock()

		if found && entry.Expiration.After(time.Now()) {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, entry.ContentType, entry.Content)
			c.Abort()
			return
		}

		// 缓存未命中，捕获响应
		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer
		c.Next()

		if writer.Status() == http.StatusOK {
			contentType := writer.Header().Get("Content-Type")
			if contentType == "" {
				contentType = "application/json; charset=utf-8"
			}
			rc.mu.Lock()
			rc.items[key] = cacheEntry{
				Content:     writer.body.Bytes(),
				ContentType: contentType,
				Expiration:  time.Now().Add(cfg.Expiration),
			}
			rc.mu.Unlock()
		}
	}
}

// PurgeOnSuccess 写操作成功后按前缀清除缓存
func (rc *ResponseCache) PurgeOnSuccess(prefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Writer.Status() < http.StatusBadRequest {
			for _, prefix := range prefixes {
				rc.PurgeByPrefix(prefix)
			}
		}
	}
}

// Purge 清除所有缓存
func (rc *ResponseCache) Purge() {
	rc.mu.Lock()
	rc.items = make(map[string]cacheEntry)
	rc.mu.Unlock()
}

// PurgeByPrefix 根据前缀清除缓存
func (rc *ResponseCache) PurgeByPrefix(prefix string) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	for key := range rc.items {
		if strings.HasPrefix(key, prefix) {
			delete(rc.items, key)
		}
	}
}

// 自定义响应写入器，用于捕获响应内容
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write 重写Write方法，同时写入原始响应和缓冲区
func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// WriteString 重写WriteString方法，同时写入原始响应和缓冲区
func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Stats 获取缓存统计信息
func (rc *ResponseCache) Stats() map[string]interface{} {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	now := time.Now()
	items := make([]map[string]interface{}, 0, len(rc.items))
	for key, entry := range rc.items {
		items = append(items, map[string]interface{}{
			"key":        key,
			"size":       len(entry.Content),
			"expiration": entry.Expiration.Format(time.RFC3339),
			"expired":    entry.Expiration.Before(now),
		})
	}
	return map[string]interface{}{
		"total_items": len(rc.items),
		"items":       items,
	}
}

// Run 定期清理过期缓存，直到 ctx 取消
func (rc *ResponseCache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rc.cleanExpired()
		}
	}
}

// cleanExpired 清理过期缓存
func (rc *ResponseCache) cleanExpired() {
	now := time.Now()

	rc.mu.Lock()
	defer rc.mu.Unlock()

	for key, entry := range rc.items {
		if entry.Expiration.Before(now) {
			delete(rc.items, key)
		}
	}
}

package controllers

import (
	"context"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/app/middleware"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services/container"
	"github.com/aid4sure/VeganEcosystem/internal/error/code"
	"github.com/aid4sure/VeganEcosystem/internal/error/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthController 健康检查控制器
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
	Cache     *middleware.ResponseCache
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, cache *middleware.ResponseCache, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := &HealthController{
			Ctx:       ctx,
			Container: container,
			Cache:     cache,
		}

		switch method {
		case "ping":
			controller.Ping()
		case "health":
			controller.Health()
		case "cacheStats":
			controller.CacheStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// Ping 健康检查端点
// @Summary      Ping
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /ping [get]
func (h *HealthController) Ping() {
	response.Success(h.Ctx, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}

// Health 检查存储连接
// @Summary      Health
// @Description  Report the storage driver and whether the database answers a ping
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthController) Health() {
	cfg := h.Container.Config()
	status := gin.H{
		"status":  "healthy",
		"storage": cfg.StorageDriver,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}

	db, _ := h.Container.GetService("db").(*gorm.DB)
	if db == nil {
		response.Success(h.Ctx, status)
		return
	}

	sqlDB, err := db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(h.Ctx.Request.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		response.FailWithMessage(h.Ctx, code.ErrConnectionFailed, "database unreachable", gin.H{"storage": cfg.StorageDriver})
		return
	}

	stats := sqlDB.Stats()
	status["database"] = gin.H{
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
	}
	response.Success(h.Ctx, status)
}

// CacheStats 响应缓存统计
// @Summary      Response cache statistics
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health/cache-stats [get]
func (h *HealthController) CacheStats() {
	if h.Cache == nil {
		response.Success(h.Ctx, gin.H{"total_items": 0})
		return
	}
	response.Success(h.Ctx, h.Cache.Stats())
}

package container

import (
	"context"
	"sync"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/domain/repository"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services"
	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/config"
	Logger "github.com/aid4sure/VeganEcosystem/pkg/logger"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db        *gorm.DB
	config    *config.Config
	redis     *redis.Client
	publisher services.InterfaceEventPublisher

	// 会话
	tokenStore services.InterfaceTokenStore
	jwtService *services.JWTService

	// 业务服务
	restaurantService  *services.RestaurantService
	reviewService      *services.ReviewService
	reservationService *services.ReservationService
	giftCardService    *services.GiftCardService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
//
// db 为 nil 时使用内存仓储；redisClient 为 nil 或不可达时注销令牌保存在内存中；
// publisher 为 nil 时不发布领域事件。
func NewServiceContainer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, publisher services.InterfaceEventPublisher) *ServiceContainer {
	if cfg == nil {
		panic("配置为空")
	}
	if publisher == nil {
		publisher = services.NoopEventPublisher{}
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			Logger.Warning("Redis连接测试失败: %v，注销令牌将保存在内存中", err)
			redisClient = nil
		}
	}

	container := &ServiceContainer{
		db:        db,
		config:    cfg,
		redis:     redisClient,
		publisher: publisher,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		restaurants  repository.RestaurantRepository
		reviews      repository.ReviewRepository
		reservations repository.ReservationRepository
		giftCards    repository.GiftCardRepository
		admins       repository.AdminRepository
	)
	if c.db != nil {
		restaurants = repository.NewGormRestaurantRepository(c.db)
		reviews = repository.NewGormReviewRepository(c.db)
		reservations = repository.NewGormReservationRepository(c.db)
		giftCards = repository.NewGormGiftCardRepository(c.db)
		admins = repository.NewGormAdminRepository(c.db)
	} else {
		restaurants = repository.NewMemoryRestaurantRepository()
		reviews = repository.NewMemoryReviewRepository()
		reservations = repository.NewMemoryReservationRepository()
		giftCards = repository.NewMemoryGiftCardRepository()
		admins = repository.NewMemoryAdminRepository()
	}

	if c.redis != nil {
		c.tokenStore = services.NewRedisTokenStore(c.redis)
	} else {
		c.tokenStore = services.NewMemoryTokenStore()
	}
	c.jwtService = services.NewJWTService(c.config, admins, c.tokenStore)

	c.restaurantService = services.NewRestaurantService(restaurants, c.config)
	c.reviewService = services.NewReviewService(reviews, c.config)
	c.reservationService = services.NewReservationService(reservations, c.config, c.publisher)
	c.giftCardService = services.NewGiftCardService(giftCards, c.config, c.publisher)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "token_store":
		return c.tokenStore
	case "event":
		return c.publisher
	case "restaurant":
		return c.restaurantService
	case "review":
		return c.reviewService
	case "reservation":
		return c.reservationService
	case "gift_card":
		return c.giftCardService
	default:
		return nil
	}
}

// Config 返回应用配置
func (c *ServiceContainer) Config() *config.Config {
	return c.config
}

// Bootstrap 创建默认管理员并按配置写入示例餐厅
func (c *ServiceContainer) Bootstrap(ctx context.Context) error {
	if err := c.jwtService.EnsureAdmin(ctx, c.config.AdminUsername, c.config.DefaultAdminPassword); err != nil {
		return err
	}
	if !c.config.SeedSampleData {
		return nil
	}
	n, err := c.restaurantService.SeedSamples(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		Logger.Info("已写入 %d 家示例餐厅", n)
	}
	return nil
}

// Close 释放外部连接
func (c *ServiceContainer) Close() {
	c.publisher.Close()
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			Logger.Warning("关闭Redis连接失败: %v", err)
		}
	}
}

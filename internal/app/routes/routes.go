package routes

import (
	"time"

	_ "github.com/aid4sure/VeganEcosystem/docs"
	"github.com/aid4sure/VeganEcosystem/internal/app/controllers"
	"github.com/aid4sure/VeganEcosystem/internal/app/middleware"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services/container"
	Logger "github.com/aid4sure/VeganEcosystem/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// 目录类 GET 请求的缓存前缀
const catalogCachePrefix = "/api/restaurants"

// Options 路由依赖的共享中间件实例，为空时自动创建
type Options struct {
	Cache   *middleware.ResponseCache
	Limiter *middleware.RateLimiter
}

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(container *container.ServiceContainer, opts Options) *gin.Engine {
	if opts.Cache == nil {
		opts.Cache = middleware.NewResponseCache()
	}
	if opts.Limiter == nil {
		// 每秒10个请求，最多突发20个请求
		opts.Limiter = middleware.IPRateLimiter(10, 20)
	}

	// 初始化 Gin
	r := gin.Default()

	// 限流按客户端 IP 计数，只有受信任的代理才能通过 X-Forwarded-For 改写 IP
	if err := r.SetTrustedProxies(container.Config().TrustedProxies); err != nil {
		Logger.Warning("TRUSTED_PROXIES 无效，不信任任何代理: %v", err)
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(container.Config().CORSAllowOrigin))

	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, container, opts)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
	opts Options,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container, opts)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container, opts)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
	opts Options,
) {
	cache := opts.Cache.Middleware(middleware.CacheConfig{Expiration: 30 * time.Second})
	limit := opts.Limiter.Middleware()

	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, opts.Cache, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, opts.Cache, "health"))
	api.GET("/health/cache-stats", controllers.HandleHealthFunc(container, opts.Cache, "cacheStats"))

	// 认证路由
	api.POST("/auth/login", limit, controllers.HandleJWTFunc(container, "login"))

	// 餐厅目录
	restaurantGroup := api.Group("/restaurants")
	{
		restaurantGroup.GET("", cache, controllers.HandleRestaurantFunc(container, "listRestaurants"))
		restaurantGroup.GET("/search/:q", cache, controllers.HandleRestaurantFunc(container, "searchRestaurants"))
		restaurantGroup.GET("/:id", cache, controllers.HandleRestaurantFunc(container, "getRestaurant"))
		restaurantGroup.GET("/:id/time-slots", cache, controllers.HandleRestaurantFunc(container, "getTimeSlots"))
		restaurantGroup.GET("/:id/reviews", cache, controllers.HandleReviewFunc(container, "listReviews"))
		restaurantGroup.GET("/:id/reviews/summary", cache, controllers.HandleReviewFunc(container, "getReviewSummary"))
	}

	// 评价
	api.POST("/reviews", limit, opts.Cache.PurgeOnSuccess(catalogCachePrefix), controllers.HandleReviewFunc(container, "createReview"))

	// 预订
	reservationGroup := api.Group("/reservations")
	reservationGroup.Use(limit)
	{
		reservationGroup.POST("", controllers.HandleReservationFunc(container, "createReservation"))
		reservationGroup.POST("/:id/cancel", controllers.HandleReservationFunc(container, "cancelReservation"))
	}

	// 礼品卡
	giftCardGroup := api.Group("/gift-cards")
	giftCardGroup.Use(limit)
	{
		giftCardGroup.POST("", controllers.HandleGiftCardFunc(container, "issueGiftCard"))
		giftCardGroup.GET("/:code", controllers.HandleGiftCardFunc(container, "getGiftCard"))
		giftCardGroup.POST("/:code/redeem", controllers.HandleGiftCardFunc(container, "redeemGiftCard"))
	}
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
	opts Options,
) {
	jwtService := container.GetService("jwt").(services.InterfaceJWTService)

	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateAdmin(jwtService))

	auth.POST("/auth/logout", controllers.HandleJWTFunc(container, "logout"))

	// 餐厅管理，写操作成功后清除目录缓存
	purge := opts.Cache.PurgeOnSuccess(catalogCachePrefix)
	adminGroup := auth.Group("/restaurants")
	{
		adminGroup.POST("", purge, controllers.HandleRestaurantFunc(container, "createRestaurant"))
		adminGroup.PATCH("/:id", purge, controllers.HandleRestaurantFunc(container, "updateRestaurant"))
		adminGroup.DELETE("/:id", purge, controllers.HandleRestaurantFunc(container, "deleteRestaurant"))
		adminGroup.GET("/:id/reservations/:date", controllers.HandleReservationFunc(container, "listReservations"))
	}
}

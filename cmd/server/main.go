// @title           Vegan Eats API
// @version         1.0
// @description     Directory of vegan restaurants with reviews, reservations and gift cards.

// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the admin token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/app/middleware"
	"github.com/aid4sure/VeganEcosystem/internal/app/routes"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services"
	"github.com/aid4sure/VeganEcosystem/internal/domain/services/container"
	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/config"
	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/database"
	"github.com/aid4sure/VeganEcosystem/internal/worker"
	Logger "github.com/aid4sure/VeganEcosystem/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 加载.env文件
	envErr := godotenv.Load()

	// 获取配置
	cfg := config.GetConfig()

	// 初始化日志配置
	if err := Logger.SetupLogger(cfg.LogDir); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}
	if envErr != nil {
		// 即使加载失败也继续执行，可能环境变量已经通过其他方式设置
		Logger.Warning("无法加载.env文件: %v", envErr)
	} else {
		Logger.Info("成功加载.env文件")
	}

	if err := cfg.Validate(); err != nil {
		Logger.Error("配置无效: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 存储
	var (
		db   *gorm.DB
		pool *database.ConnectionPool
	)
	if cfg.StorageDriver != config.StorageMemory {
		var err error
		pool, err = database.NewConnectionPool(cfg)
		if err != nil {
			Logger.Error("无法创建数据库连接池: %v", err)
			os.Exit(1)
		}
		defer pool.Close()

		db = pool.GetDB()
		if err := database.Migrate(db, cfg.DBMigrationMode); err != nil {
			Logger.Error("数据库迁移失败: %v", err)
			os.Exit(1)
		}
	} else {
		Logger.Warning("使用内存存储，重启后数据将丢失")
	}

	// Redis
	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient = services.NewRedisClient(cfg)
	}

	// 服务容器
	serviceContainer := container.NewServiceContainer(cfg, db, redisClient, services.NewEventPublisher(cfg))
	defer serviceContainer.Close()

	if err := serviceContainer.Bootstrap(ctx); err != nil {
		Logger.Error("初始化数据失败: %v", err)
		os.Exit(1)
	}

	// 后台任务
	cache := middleware.NewResponseCache()
	limiter := middleware.IPRateLimiter(10, 20)
	reservationWorker := worker.NewReservationWorker(
		serviceContainer.GetService("reservation").(services.InterfaceReservationService),
		cfg.ReservationSweepInterval,
	)
	go cache.Run(ctx, time.Minute)
	go limiter.Run(ctx)
	go reservationWorker.Run(ctx)

	// 初始化路由
	gin.SetMode(cfg.GinMode)
	gin.DefaultWriter = Logger.Writer()
	r := routes.SetupRouter(serviceContainer, routes.Options{Cache: cache, Limiter: limiter})

	// 打印系统信息
	printSystemInfo(pool)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 启动服务器 - 注意监听所有接口(0.0.0.0)而不是只监听localhost
	go func() {
		Logger.Info("服务器启动在: http://0.0.0.0:%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger.Error("启动服务器失败: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	Logger.Info("正在关闭服务器...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		Logger.Error("关闭服务器失败: %v", err)
	}
}

// printSystemInfo 打印系统信息
func printSystemInfo(pool *database.ConnectionPool) {
	// 打印数据库连接池信息
	if pool != nil {
		if stats, err := pool.Stats(); err == nil {
			Logger.Info("数据库连接池状态: %+v", stats)
		}
	}

	// 打印系统资源信息
	Logger.Info("系统CPU核心数: %d", runtime.NumCPU())
	Logger.Info("当前Go协程数: %d", runtime.NumGoroutine())

	// 打印内存信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	Logger.Info("系统内存使用: Alloc=%v MiB, TotalAlloc=%v MiB, Sys=%v MiB",
		m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024)
}

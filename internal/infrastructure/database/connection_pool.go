package database

import (
	"context"
	"fmt"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/config"
	Logger "github.com/aid4sure/VeganEcosystem/pkg/logger"

	_ "github.com/lib/pq"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionPool 数据库连接池管理
type ConnectionPool struct {
	DB              *gorm.DB
	Driver          string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Dialector 根据配置的存储驱动返回 gorm 方言
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.StorageDriver {
	case config.StorageMySQL:
		return mysql.Open(cfg.GetDSN()), nil
	case config.StoragePostgres:
		// 通过 lib/pq 注册的 "postgres" database/sql 驱动连接
		return postgres.New(postgres.Config{
			DriverName: "postgres",
			DSN:        cfg.GetDSN(),
		}), nil
	case config.StorageSQLite:
		return sqlite.Open(cfg.GetDSN()), nil
	default:
		return nil, fmt.Errorf("storage driver %q has no database dialect", cfg.StorageDriver)
	}
}

// GormConfig 返回统一的 gorm 配置，开启错误翻译以识别唯一键冲突
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
}

// NewConnectionPool 创建新的数据库连接池
func NewConnectionPool(cfg *config.Config) (*ConnectionPool, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pool := &ConnectionPool{
		DB:              db,
		Driver:          cfg.StorageDriver,
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
	// sqlite 只允许单个写连接，内存库在多个连接间也不共享
	if cfg.StorageDriver == config.StorageSQLite {
		pool.MaxIdleConns = 1
		pool.MaxOpenConns = 1
	}

	if err := pool.ConfigurePool(); err != nil {
		return nil, err
	}
	return pool, nil
}

// ConfigurePool 配置连接池参数并测试连接
func (p *ConnectionPool) ConfigurePool() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(p.MaxIdleConns)
	sqlDB.SetMaxOpenConns(p.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(p.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(p.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	Logger.Info("数据库连接池已配置: driver=%s 最大空闲连接数=%d 最大连接数=%d", p.Driver, p.MaxIdleConns, p.MaxOpenConns)
	return nil
}

// Stats 获取连接池统计信息
func (p *ConnectionPool) Stats() (map[string]interface{}, error) {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return nil, err
	}

	stats := sqlDB.Stats()
	return map[string]interface{}{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration":        stats.WaitDuration.String(),
	}, nil
}

// HealthCheck 健康检查
func (p *ConnectionPool) HealthCheck(ctx context.Context) error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Close 关闭连接池
func (p *ConnectionPool) Close() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB 获取GORM数据库实例
func (p *ConnectionPool) GetDB() *gorm.DB {
	return p.DB
}

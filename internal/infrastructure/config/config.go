package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	config     *Config
	configOnce sync.Once
)

// 存储驱动
const (
	StorageMemory   = "memory"
	StorageMySQL    = "mysql"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Server
	ServerPort      string
	GinMode         string
	CORSAllowOrigin string
	LogDir          string
	TrustedProxies  []string // 为空时不信任任何代理，客户端 IP 取连接地址

	// Storage
	StorageDriver   string // 存储驱动: "memory"(默认), "mysql", "postgres", "sqlite"
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBSSLMode       string
	SQLitePath      string
	DBMigrationMode string // 数据库迁移模式: "auto"(默认), "drop"(删除重建)
	SeedSampleData  bool

	// Redis
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MQTT 领域事件
	MQTTBrokerURL   string // 为空时不发布事件
	MQTTClientID    string
	MQTTUsername    string
	MQTTPassword    string
	MQTTQoS         int
	MQTTTopicPrefix string

	// JWT Authentication
	JWTSecretKey string
	JWTTTL       time.Duration

	// Admin
	AdminUsername        string
	DefaultAdminPassword string

	// Reservations
	Location                 *time.Location
	ReservationSweepInterval time.Duration
}

// LoadConfig loads config from environment variables
func LoadConfig() *Config {
	envType := strings.ToUpper(getEnv("ENV_TYPE", "LOCAL"))
	if envType != "LOCAL" && envType != "SERVER" {
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		envType = "LOCAL"
	}

	cfg := &Config{
		EnvType: envType,

		ServerPort:      getEnv("SERVER_PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),
		LogDir:          getEnv("LOG_DIR", "logs"),
		TrustedProxies:  getEnvAsSlice("TRUSTED_PROXIES", nil),

		StorageDriver:   strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBUser:          getEnv("DB_USER", "vegan"),
		DBPassword:      getEnv("DB_PASSWORD", ""),
		DBName:          getEnv("DB_NAME", "vegan_eats"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBSSLMode:       getEnv("DB_SSL_MODE", "disable"),
		SQLitePath:      getEnv("SQLITE_PATH", "vegan_eats.db"),
		DBMigrationMode: getEnv("DB_MIGRATION_MODE", "auto"),
		SeedSampleData:  getEnvAsBool("SEED_SAMPLE_DATA", true),

		RedisEnabled:  getEnvAsBool("REDIS_ENABLED", false),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		MQTTBrokerURL:   getEnv("MQTT_BROKER_URL", ""),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "vegan_eats_server"),
		MQTTUsername:    getEnv("MQTT_USERNAME", ""),
		MQTTPassword:    getEnv("MQTT_PASSWORD", ""),
		MQTTQoS:         getEnvAsInt("MQTT_QOS", 1),
		MQTTTopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "vegan_eats"),

		JWTSecretKey: getEnv("JWT_SECRET_KEY", "vegan-eats-secret-key-change-in-production"),
		JWTTTL:       getEnvAsDuration("JWT_TTL", 24*time.Hour),

		AdminUsername:        getEnv("ADMIN_USERNAME", "admin"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),

		Location:                 getEnvAsLocation("APP_TIMEZONE", time.Local),
		ReservationSweepInterval: getEnvAsDuration("RESERVATION_SWEEP_INTERVAL", 5*time.Minute),
	}

	fmt.Printf("Loading configuration for environment: %s (storage: %s)\n", cfg.EnvType, cfg.StorageDriver)
	return cfg
}

// Default returns a configuration with in-memory storage and no external services
func Default() *Config {
	return &Config{
		EnvType:                  "LOCAL",
		ServerPort:               "8080",
		GinMode:                  "test",
		CORSAllowOrigin:          "*",
		LogDir:                   "logs",
		StorageDriver:            StorageMemory,
		DBMigrationMode:          "auto",
		MQTTQoS:                  1,
		MQTTTopicPrefix:          "vegan_eats",
		JWTSecretKey:             "test-secret-key",
		JWTTTL:                   time.Hour,
		AdminUsername:            "admin",
		DefaultAdminPassword:     "admin123",
		Location:                 time.UTC,
		ReservationSweepInterval: time.Minute,
	}
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// Validate 检查启动所需的配置项
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StorageMySQL, StoragePostgres, StorageSQLite:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.DefaultAdminPassword == "" {
		return fmt.Errorf("required environment variable DEFAULT_ADMIN_PASSWORD is not set")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	return nil
}

// GetDSN returns the database connection string for the configured driver
func (c *Config) GetDSN() string {
	switch c.StorageDriver {
	case StoragePostgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
	case StorageSQLite:
		return c.SQLitePath
	default:
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local"
	}
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as boolean with default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as duration (e.g. "30m") with default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// 逗号分隔的列表，忽略空项
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// 解析 IANA 时区名，失败时使用默认值
func getEnvAsLocation(key string, defaultValue *time.Location) *time.Location {
	name := getEnv(key, "")
	if name == "" {
		return defaultValue
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		fmt.Printf("Warning: invalid %s %q, using %s\n", key, name, defaultValue)
		return defaultValue
	}
	return loc
}

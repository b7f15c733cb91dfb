package config

import (
	"os"
	"strconv"
)

// Store drivers selectable via STORE_DRIVER.
const (
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config holds application configuration from environment. It is read once at
// startup and injected into constructors; nothing reloads it.
type Config struct {
	HTTPPort string

	StoreDriver   string
	RedisURL      string
	RedisPoolSize int
	DatabaseURL   string
	DBPoolSize    int

	TasksTable string // redis key prefix / postgres table name
	OwnerIndex string // redis zset prefix / postgres index name

	AttachmentsBucket   string
	SignedURLExpiration int // seconds
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string

	JWTSecret string
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		StoreDriver:   getEnv("STORE_DRIVER", DriverRedis),
		RedisURL:      getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPoolSize: getIntEnv("REDIS_POOL_SIZE", 100),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DBPoolSize:    getIntEnv("DB_POOL_SIZE", 50),

		TasksTable: getEnv("TASKS_TABLE", "tasks"),
		OwnerIndex: getEnv("TASKS_OWNER_INDEX", "tasks_by_owner"),

		AttachmentsBucket:   os.Getenv("ATTACHMENTS_BUCKET"),
		SignedURLExpiration: getIntEnv("SIGNED_URL_EXPIRATION", 300),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey:  os.Getenv("AWS_SECRET_ACCESS_KEY"),

		JWTSecret: os.Getenv("JWT_SECRET"),
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmsavelev/caloriebot/internal/logger"
)

// Storage drivers and state backends selectable via environment.
const (
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"

	StateBackendMemory = "memory"
	StateBackendRedis  = "redis"
)

type Config struct {
	TelegramToken string
	WebhookURL    string
	Port          string
	Storage       StorageConfig
	State         StateConfig
	Logger        LoggerConfig
}

type StorageConfig struct {
	Driver       string
	DataDir      string
	ProductsFile string
	UsersFile    string
	DB           DBConfig
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type StateConfig struct {
	Backend   string
	RedisHost string
	RedisPort string
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

// Load reads configuration from the environment. A missing bot token is a
// startup error: the process must refuse to run without a credential.
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	return &Config{
		TelegramToken: token,
		WebhookURL:    os.Getenv("WEBHOOK_URL"),
		Port:          getEnvOrDefault("PORT", "10000"),
		Storage: StorageConfig{
			Driver:       getEnvOrDefault("STORAGE_DRIVER", StorageDriverFile),
			DataDir:      getEnvOrDefault("DATA_DIR", "."),
			ProductsFile: getEnvOrDefault("PRODUCTS_FILE", "products.json"),
			UsersFile:    getEnvOrDefault("USER_DATA_FILE", "user_data.json"),
			DB: DBConfig{
				Host:     getEnvOrDefault("DB_HOST", "localhost"),
				Port:     getEnvOrDefault("DB_PORT", "5432"),
				User:     getEnvOrDefault("DB_USER", "postgres"),
				Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
				DBName:   getEnvOrDefault("DB_NAME", "caloriebot"),
			},
		},
		State: StateConfig{
			Backend:   getEnvOrDefault("STATE_BACKEND", StateBackendMemory),
			RedisHost: getEnvOrDefault("REDIS_HOST", "localhost"),
			RedisPort: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}, nil
}

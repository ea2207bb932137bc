package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Risk Calculation Config
	RiskRadiusM      float64       `env:"RISK_RADIUS_M" envDefault:"50"`
	RiskLookbackDays int           `env:"RISK_LOOKBACK_DAYS" envDefault:"180"`
	SafetyWeight     float64       `env:"SAFETY_WEIGHT" envDefault:"0.7"`
	TravelSpeedMPS   float64       `env:"TRAVEL_SPEED_MPS" envDefault:"13.9"`
	RiskConcurrency  int           `env:"RISK_CONCURRENCY" envDefault:"8"`
	RiskCacheTTL     time.Duration `env:"RISK_CACHE_TTL" envDefault:"10m"`
	RouteTimeout     time.Duration `env:"ROUTE_TIMEOUT" envDefault:"30s"`

	// Street Graph Config
	OverpassURL   string        `env:"OVERPASS_URL" envDefault:"https://overpass-api.de/api/interpreter"`
	GraphCacheTTL time.Duration `env:"GRAPH_CACHE_TTL" envDefault:"168h"`
	GraphTimeout  time.Duration `env:"GRAPH_TIMEOUT" envDefault:"25s"`

	// Webhook Config (оповещения об опасных маршрутах)
	WebhookURL           string        `env:"WEBHOOK_URL"`
	WebhookSecret        string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout       time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries    int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay     time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`
	DangerAlertThreshold float64       `env:"DANGER_ALERT_THRESHOLD" envDefault:"0.7"`

	// Stats Config
	StatsTimeWindowMinutes int `env:"STATS_TIME_WINDOW_MINUTES" envDefault:"60"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		RiskRadiusM:            getEnvAsFloat("RISK_RADIUS_M", 50),
		RiskLookbackDays:       getEnvAsInt("RISK_LOOKBACK_DAYS", 180),
		SafetyWeight:           getEnvAsFloat("SAFETY_WEIGHT", 0.7),
		TravelSpeedMPS:         getEnvAsFloat("TRAVEL_SPEED_MPS", 13.9),
		RiskConcurrency:        getEnvAsInt("RISK_CONCURRENCY", 8),
		RiskCacheTTL:           getEnvAsDuration("RISK_CACHE_TTL", 10*time.Minute),
		RouteTimeout:           getEnvAsDuration("ROUTE_TIMEOUT", 30*time.Second),
		OverpassURL:            getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		GraphCacheTTL:          getEnvAsDuration("GRAPH_CACHE_TTL", 168*time.Hour),
		GraphTimeout:           getEnvAsDuration("GRAPH_TIMEOUT", 25*time.Second),
		WebhookURL:             os.Getenv("WEBHOOK_URL"),
		WebhookSecret:          os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:         getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:      getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:       getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		DangerAlertThreshold:   getEnvAsFloat("DANGER_ALERT_THRESHOLD", 0.7),
		StatsTimeWindowMinutes: getEnvAsInt("STATS_TIME_WINDOW_MINUTES", 60),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if cfg.SafetyWeight < 0 || cfg.SafetyWeight > 1 {
		return nil, fmt.Errorf("SAFETY_WEIGHT must be in [0,1], got %v", cfg.SafetyWeight)
	}

	if cfg.RiskConcurrency < 1 {
		cfg.RiskConcurrency = 1
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

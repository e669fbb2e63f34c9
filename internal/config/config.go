package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Quotes   QuotesConfig
	Analysis AnalysisConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// DatabaseConfig holds PostgreSQL configuration. When disabled the
// portfolio lives in memory for the lifetime of the process.
type DatabaseConfig struct {
	Enabled        bool
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled    bool
	Brokers    []string
	Topic      string
	PriceTopic string
	GroupID    string
}

// RedisConfig holds the quote cache configuration
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// QuotesConfig holds the EODHD market data configuration
type QuotesConfig struct {
	APIKey    string
	BaseURL   string
	Exchange  string
	RateLimit int
	Timeout   time.Duration
}

// AnalysisConfig holds analytics defaults
type AnalysisConfig struct {
	TrendLookback time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from environment variables, after loading
// a .env file when one is present
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Enabled:        getEnvAsBool("DB_ENABLED", false),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "portfolio"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MigrationsPath: getEnv("DB_MIGRATIONS_PATH", "db/migrations"),
		},
		Kafka: KafkaConfig{
			Enabled:    getEnvAsBool("KAFKA_ENABLED", false),
			Brokers:    getEnvAsList("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:      getEnv("KAFKA_TOPIC", "portfolio-events"),
			PriceTopic: getEnv("KAFKA_PRICE_TOPIC", "price-bars"),
			GroupID:    getEnv("KAFKA_GROUP_ID", "portfolio-analytics"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("QUOTE_CACHE_TTL", 5*time.Minute),
		},
		Quotes: QuotesConfig{
			APIKey:    getEnv("EODHD_API_KEY", ""),
			BaseURL:   getEnv("EODHD_BASE_URL", "https://eodhd.com/api"),
			Exchange:  getEnv("EODHD_EXCHANGE", "US"),
			RateLimit: getEnvAsInt("EODHD_RATE_LIMIT", 10),
			Timeout:   getEnvAsDuration("EODHD_TIMEOUT", 30*time.Second),
		},
		Analysis: AnalysisConfig{
			TrendLookback: getEnvAsDuration("TREND_LOOKBACK", 30*24*time.Hour),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvAsBool("LOG_PRETTY", true),
		},
	}
}

// Validate checks settings that have no usable default
func (c *Config) Validate() error {
	if c.Quotes.APIKey == "" && !c.Database.Enabled {
		return fmt.Errorf("EODHD_API_KEY is required unless DB_ENABLED serves stored prices")
	}
	if c.Analysis.TrendLookback <= 0 {
		return fmt.Errorf("TREND_LOOKBACK must be positive, got %s", c.Analysis.TrendLookback)
	}
	return nil
}

// ConnectionString returns the PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.DBName + "?sslmode=" + d.SSLMode
}

// ListenAddr returns the HTTP listen address
func (s *ServerConfig) ListenAddr() string {
	return s.Host + ":" + s.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

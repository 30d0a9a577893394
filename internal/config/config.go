package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Policy   PolicyConfig
	Audit    AuditConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// PolicyConfig points at an optional YAML policy file. Empty means built-in defaults.
type PolicyConfig struct {
	File string
}

// AuditConfig controls the rule audit trail and the scheduled compliance audit.
type AuditConfig struct {
	LogCapacity      int
	Concurrency      int
	ScheduleInterval time.Duration
	FlushInterval    time.Duration
	Sink             string // 'none', 'postgres', 'redis', 'kafka'
	RedisStream      string
}

type StorageConfig struct {
	BasePath string
	BaseURL  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

const (
	AuditSinkNone     = "none"
	AuditSinkPostgres = "postgres"
	AuditSinkRedis    = "redis"
	AuditSinkKafka    = "kafka"
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
	}
	if len(config.App.AllowedOrigins) == 0 {
		config.App.AllowedOrigins = []string{"http://localhost:3000"}
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Policy = PolicyConfig{
		File: getEnv("POLICY_FILE", ""),
	}

	// Audit configuration
	capacity, err := strconv.Atoi(getEnv("AUDIT_LOG_CAPACITY", "1000"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_LOG_CAPACITY: %w", err)
	}
	concurrency, err := strconv.Atoi(getEnv("AUDIT_CONCURRENCY", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_CONCURRENCY: %w", err)
	}
	scheduleInterval, err := time.ParseDuration(getEnv("AUDIT_SCHEDULE_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_SCHEDULE_INTERVAL: %w", err)
	}
	flushInterval, err := time.ParseDuration(getEnv("AUDIT_FLUSH_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_FLUSH_INTERVAL: %w", err)
	}

	config.Audit = AuditConfig{
		LogCapacity:      capacity,
		Concurrency:      concurrency,
		ScheduleInterval: scheduleInterval,
		FlushInterval:    flushInterval,
		Sink:             strings.ToLower(getEnv("AUDIT_SINK", AuditSinkNone)),
		RedisStream:      getEnv("AUDIT_REDIS_STREAM", "hr:rule-audit"),
	}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./exports"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/api/v1/rules/audits/exports"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	config.Kafka = KafkaConfig{
		Brokers: getEnvSlice("KAFKA_BROKERS"),
		Topic:   getEnv("KAFKA_AUDIT_TOPIC", "hr.rule-audit"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Audit.LogCapacity <= 0 {
		return fmt.Errorf("AUDIT_LOG_CAPACITY must be positive")
	}
	if c.Audit.Concurrency <= 0 {
		return fmt.Errorf("AUDIT_CONCURRENCY must be positive")
	}
	if c.Audit.ScheduleInterval < 0 {
		return fmt.Errorf("AUDIT_SCHEDULE_INTERVAL must not be negative")
	}
	if c.Audit.FlushInterval <= 0 {
		return fmt.Errorf("AUDIT_FLUSH_INTERVAL must be positive")
	}
	switch c.Audit.Sink {
	case AuditSinkNone, AuditSinkPostgres, AuditSinkRedis:
	case AuditSinkKafka:
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required for the kafka audit sink")
		}
	default:
		return fmt.Errorf("AUDIT_SINK must be one of none, postgres, redis, kafka")
	}
	return nil
}

// ValidateServer adds the checks only the HTTP server needs.
func (c *Config) ValidateServer() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT must be a valid port")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

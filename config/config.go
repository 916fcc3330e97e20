package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the control service
type Config struct {
	Database        DatabaseConfig
	Kafka           KafkaConfig
	Logging         LoggingConfig
	Service         ServiceConfig
	ChannelDefaults ChannelDefaultsConfig
	OwnerIDs        []int64
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string
	Port string
}

// ChannelDefaultsConfig holds defaults applied to newly registered channels
// and freshly created drafts
type ChannelDefaultsConfig struct {
	Timezone         string
	PostIntervalMin  int
	DefaultReactions []string
	Footer           string
}

// Result is fx.Out struct for providing config dependencies
type Result struct {
	fx.Out

	Config          *Config
	DatabaseConfig  *DatabaseConfig
	KafkaConfig     *KafkaConfig
	LoggingConfig   *LoggingConfig
	ServiceConfig   *ServiceConfig
	ChannelDefaults *ChannelDefaultsConfig
}

// Out returns fx-compatible config result
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:          cfg,
		DatabaseConfig:  &cfg.Database,
		KafkaConfig:     &cfg.Kafka,
		LoggingConfig:   &cfg.Logging,
		ServiceConfig:   &cfg.Service,
		ChannelDefaults: &cfg.ChannelDefaults,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "controller_user"),
			Password: getEnv("DATABASE_PASSWORD", "controller_pass"),
			DBName:   getEnv("DATABASE_NAME", "controller_db"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9093"), ","),
			AuditTopic: getEnv("KAFKA_AUDIT_TOPIC", "audit.events"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Service: ServiceConfig{
			Name: getEnv("SERVICE_NAME", "control-service"),
			Port: getEnv("SERVICE_PORT", "8084"),
		},
		ChannelDefaults: ChannelDefaultsConfig{
			Timezone:         getEnv("CHANNEL_DEFAULT_TZ", "Asia/Tashkent"),
			PostIntervalMin:  getEnvInt("CHANNEL_POST_INTERVAL_MIN", 60),
			DefaultReactions: strings.Split(getEnv("CHANNEL_DEFAULT_REACTIONS", "👍,👎,🔥,🎯,😂"), ","),
			Footer:           getEnv("CHANNEL_DEFAULT_FOOTER", ""),
		},
		OwnerIDs: parseOwnerIDs(getEnv("OWNER_IDS", "")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DATABASE_HOST is required")
	}

	if c.Database.User == "" {
		return fmt.Errorf("DATABASE_USER is required")
	}

	if c.Database.DBName == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}

	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}

	if c.ChannelDefaults.PostIntervalMin <= 0 {
		return fmt.Errorf("CHANNEL_POST_INTERVAL_MIN must be positive")
	}

	return nil
}

// GetDSN returns database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// parseOwnerIDs parses a comma-separated list of Telegram user IDs
func parseOwnerIDs(raw string) []int64 {
	ids := make([]int64, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets environment variable as int with default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

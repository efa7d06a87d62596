package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Dataset sources
const (
	DatasetSourceFile     = "file"
	DatasetSourcePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Dataset    DatasetConfig
	PostgreSQL PostgreSQLConfig
	LLM        LLMConfig
	Logging    LoggingConfig
	RateLimit  RateLimitConfig
	QueryLog   QueryLogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// DatasetConfig selects where the transactions table is loaded from
type DatasetConfig struct {
	Source string // "file" or "postgres"
	Path   string // .xlsx or .csv, for Source=file
	Sheet  string // workbook sheet; empty = first
	Table  string // table name, for Source=postgres
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, preferred when set
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
	Enabled            bool
}

// LLMConfig holds the chat-completion API configuration
type LLMConfig struct {
	APIKey       string
	APIBase      string
	Model        string
	Referer      string // HTTP-Referer attribution header
	Title        string // X-Title attribution header
	Temperature  float64
	MaxTokens    int
	Timeout      int // seconds
	IncludeError bool // append the failure detail to the fallback summary
	Enabled      bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// RateLimitConfig limits inbound requests; RPS <= 0 disables it
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// QueryLogConfig controls persisting analyzed queries to PostgreSQL
type QueryLogConfig struct {
	Enabled bool
	Timeout time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	apiKey := getEnv("LLM_API_KEY", getEnv("OPENROUTER_API_KEY", ""))
	pgDSN := getEnv("DATABASE_URL", getEnv("PG_DSN", ""))
	pgHost := getEnv("PG_HOST", "")

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Dataset: DatasetConfig{
			Source: getEnv("DATASET_SOURCE", DatasetSourceFile),
			Path:   getEnv("DATASET_PATH", "real_estate_data.xlsx"),
			Sheet:  getEnv("DATASET_SHEET", ""),
			Table:  getEnv("DATASET_TABLE", "real_estate_data"),
		},
		PostgreSQL: PostgreSQLConfig{
			DSN:                pgDSN,
			Host:               pgHost,
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "real_estate"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
			Enabled:            pgDSN != "" || pgHost != "",
		},
		LLM: LLMConfig{
			APIKey:       apiKey,
			APIBase:      getEnv("LLM_API_BASE", "https://openrouter.ai/api/v1"),
			Model:        getEnv("LLM_MODEL", "deepseek/deepseek-r1-zero:free"),
			Referer:      getEnv("LLM_REFERER", "http://localhost"),
			Title:        getEnv("LLM_TITLE", "RealEstateBot"),
			Temperature:  getEnvAsFloat("LLM_TEMPERATURE", 0),
			MaxTokens:    getEnvAsInt("LLM_MAX_TOKENS", 0),
			Timeout:      getEnvAsInt("LLM_TIMEOUT", 15),
			IncludeError: getEnvAsBool("LLM_FALLBACK_INCLUDE_ERROR", false),
			Enabled:      apiKey != "",
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvAsFloat("RATE_LIMIT_RPS", 0),
			Burst: getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
		QueryLog: QueryLogConfig{
			Enabled: getEnvAsBool("QUERY_LOG_ENABLED", true),
			Timeout: time.Duration(getEnvAsInt("QUERY_LOG_TIMEOUT_MS", 500)) * time.Millisecond,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.Server.Port)
	}

	switch c.Dataset.Source {
	case DatasetSourceFile:
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_PATH is required for dataset source %q", DatasetSourceFile)
		}
	case DatasetSourcePostgres:
		if !c.PostgreSQL.Enabled {
			return fmt.Errorf("dataset source %q needs DATABASE_URL or PG_HOST", DatasetSourcePostgres)
		}
		if c.Dataset.Table == "" {
			return fmt.Errorf("DATASET_TABLE is required for dataset source %q", DatasetSourcePostgres)
		}
	default:
		return fmt.Errorf("unknown DATASET_SOURCE %q", c.Dataset.Source)
	}

	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %d", c.LLM.Timeout)
	}

	return nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// LLMTimeout returns the summarizer deadline
func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.Timeout) * time.Second
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}

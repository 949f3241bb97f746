package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Rules         RulesConfig
	Export        ExportConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	BaseURL            string
	AllowedOrigins     []string
	RateLimitPerSecond int
	RateLimitBurst     int
}

// RulesConfig points at an optional JSON rules file that overrides the
// built-in defaults (keywords, thresholds).
type RulesConfig struct {
	Path string
}

// ExportConfig controls the scheduled workbook export.
type ExportConfig struct {
	Enabled      bool
	Dir          string
	CronSchedule string
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	LogLevel       string
}

// Load reads configuration from a .env file when present, then from
// environment variables.
func Load() (*Config, error) {
	// Missing .env is fine; env vars rule either way.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "localhost"),
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
			AllowedOrigins:     []string{getEnv("CORS_ALLOWED_ORIGIN", "*")},
			RateLimitPerSecond: getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 50),
			RateLimitBurst:     getEnvAsInt("SERVER_RATE_LIMIT_BURST", 100),
		},
		Rules: RulesConfig{
			Path: getEnv("RULES_CONFIG_PATH", ""),
		},
		Export: ExportConfig{
			Enabled:      getEnvAsBool("EXPORT_ENABLED", false),
			Dir:          getEnv("EXPORT_DIR", "exports"),
			CronSchedule: getEnv("EXPORT_CRON", "0 6 * * *"),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid SERVER_PORT: %d", cfg.Server.Port)
	}
	return cfg, nil
}

// Addr returns the host:port the server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

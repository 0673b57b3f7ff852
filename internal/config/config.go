package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Log         LogConfig
	CORS        CORSConfig
	RateLimit   RateLimitConfig
	SeedTodos   []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// CORSConfig holds the fixed header values attached to every response
type CORSConfig struct {
	AllowOrigin  string
	AllowHeaders string
	AllowMethods string
}

// RateLimitConfig holds request rate limiting configuration.
// RequestsPerSecond <= 0 disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("CORS_ALLOW_HEADERS", "Content-Type")
	v.SetDefault("CORS_ALLOW_METHODS", "OPTIONS,GET,POST,PUT,DELETE")
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 0)
	v.SetDefault("SEED_TODOS", "")

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		CORS: CORSConfig{
			AllowOrigin:  v.GetString("CORS_ALLOW_ORIGIN"),
			AllowHeaders: v.GetString("CORS_ALLOW_HEADERS"),
			AllowMethods: v.GetString("CORS_ALLOW_METHODS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		SeedTodos: splitSeed(v.GetString("SEED_TODOS")),
	}

	return config, nil
}

// IsProduction reports whether the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitSeed(raw string) []string {
	var texts []string
	for _, part := range strings.Split(raw, ";") {
		if text := strings.TrimSpace(part); text != "" {
			texts = append(texts, text)
		}
	}
	return texts
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt gets an environment variable as integer with a fallback value
func GetEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

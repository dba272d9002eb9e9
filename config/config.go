package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Ollama configuration
	OllamaHost  string
	OllamaModel string

	// AllowedOrigins is the list of origins permitted by CORS
	AllowedOrigins []string

	// GenerationTimeout bounds a single persona's model call. A persona
	// that exceeds it transitions to its error state without affecting
	// the other two.
	GenerationTimeout time.Duration

	// Rate limiting
	GenerateRateWindow time.Duration
	GenerateRateLimit  int
	FeedbackRateWindow time.Duration
	FeedbackRateLimit  int

	// Optional recipe image generation (disabled when the key is empty)
	ImagesAPIKey string
	ImagesAPIURL string
	S3Bucket     string
	AWSRegion    string
}

// LoadConfig creates a new Config instance with values from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort: getEnv("SERVER_PORT", "4000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "recipe_generator"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		OllamaHost:  getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel: getEnv("OLLAMA_MODEL", "llama3.1:8b"),

		AllowedOrigins: splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		GenerationTimeout: getEnvDuration("GENERATION_TIMEOUT", 2*time.Minute),

		GenerateRateWindow: getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		GenerateRateLimit:  getEnvInt("RATE_LIMIT_MAX_REQUESTS", 10),
		FeedbackRateWindow: getEnvDuration("FEEDBACK_RATE_LIMIT_WINDOW", time.Minute),
		FeedbackRateLimit:  getEnvInt("FEEDBACK_RATE_LIMIT_MAX_REQUESTS", 5),

		ImagesAPIKey: os.Getenv("OPENAI_API_KEY"),
		ImagesAPIURL: getEnv("OPENAI_IMAGES_API_URL", "https://api.openai.com/v1/images/generations"),
		S3Bucket:     os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:    os.Getenv("AWS_REGION"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ValidateConfig checks the configuration for values that cannot work
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return fmt.Errorf("invalid server port %q", cfg.ServerPort)
	}
	if cfg.OllamaHost == "" {
		return fmt.Errorf("ollama host must not be empty")
	}
	if !strings.HasPrefix(cfg.OllamaHost, "http://") && !strings.HasPrefix(cfg.OllamaHost, "https://") {
		return fmt.Errorf("ollama host must be an http(s) URL, got %q", cfg.OllamaHost)
	}
	if cfg.OllamaModel == "" {
		return fmt.Errorf("ollama model must not be empty")
	}
	if cfg.GenerationTimeout <= 0 {
		return fmt.Errorf("generation timeout must be positive")
	}
	if cfg.GenerateRateLimit <= 0 || cfg.FeedbackRateLimit <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}
	return nil
}

// ImagesEnabled reports whether the optional recipe image pipeline is configured
func (c *Config) ImagesEnabled() bool {
	return c.ImagesAPIKey != "" && c.S3Bucket != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

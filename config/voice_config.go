package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	// Redis (profile durability)
	RedisURL      string
	ProfileTTLDay int

	// OpenAI
	OpenAIAPIKey   string
	LLMModel       string
	LLMMaxTokens   int
	LLMTemperature float64
	LLMTimeout     time.Duration

	// Voice learning
	MaxMessagesPerChannel int
	// DefaultUserID is the profile identity restored at startup.
	// Single-tenant deployments pin it via env.
	DefaultUserID string

	// Batch drafting
	DraftBatchSize    int
	DraftBatchWorkers int

	// CORS
	AllowedOrigins []string
}

func Load() (*Config, error) {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		RedisURL:      getEnv("REDIS_URL", ""),
		ProfileTTLDay: getEnvInt("PROFILE_TTL_DAYS", 30),

		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		LLMModel:       getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMMaxTokens:   getEnvInt("LLM_MAX_TOKENS", 2048),
		LLMTemperature: getEnvFloat("LLM_TEMPERATURE", 0.7),
		LLMTimeout:     time.Duration(getEnvInt("LLM_TIMEOUT_SEC", 30)) * time.Second,

		MaxMessagesPerChannel: getEnvInt("VOICE_MAX_MESSAGES_PER_CHANNEL", 100),
		DefaultUserID:         getEnv("VOICE_DEFAULT_USER_ID", "default"),

		DraftBatchSize:    getEnvInt("DRAFT_BATCH_SIZE", 5),
		DraftBatchWorkers: getEnvInt("DRAFT_BATCH_WORKERS", 5),

		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

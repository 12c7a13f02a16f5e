package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret          string
	AccessTokenTTLMin  int
	RefreshTokenTTLDay int
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	AnthropicAPIKey string
	OpenAIAPIKey    string
	GeminiAPIKey    string

	// Minimum delay between the starts of two provider invocations, in
	// milliseconds. Pacing against provider-side rate limits.
	RateLimitMs int

	// How long catalog entries live in the model cache, in seconds.
	CatalogCacheTTLSec int

	// Completion token cap per member response. Zero keeps each
	// provider's default.
	MaxResponseTokens int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret:          getEnv("JWT_SECRET", ""),
			AccessTokenTTLMin:  getEnvAsInt("ACCESS_TOKEN_TTL_MIN", 60),
			RefreshTokenTTLDay: getEnvAsInt("REFRESH_TOKEN_TTL_DAY", 30),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "The Family"),
		},
		Ai: AIConfig{
			AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
			OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
			GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
			RateLimitMs:        getEnvAsInt("AI_RATE_LIMIT_MS", 1000),
			CatalogCacheTTLSec: getEnvAsInt("CATALOG_CACHE_TTL_SEC", 300),
			MaxResponseTokens:  getEnvAsInt("AI_MAX_RESPONSE_TOKENS", 0),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

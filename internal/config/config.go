package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Default values shared by the server, the function and the admin CLI
const (
	DefaultGeminiModel   = "gemini-2.5-flash-preview-05-20"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultSQLitePath    = "./data/interview.db"
)

// Config holds all configuration for the application
type Config struct {
	Environment  string
	Port         string
	MaxBodyBytes int64
	CORSOrigin   string
	Log          LogConfig
	Generation   GenerationConfig
	Store        StoreConfig
	Tracing      TracingConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// GenerationConfig holds configuration for the generation API
type GenerationConfig struct {
	Backend string // "rest" or "sdk"
	APIKey  string
	Model   string
	BaseURL string
}

// StoreConfig holds document store configuration
type StoreConfig struct {
	Type            string // "firestore", "sqlite", "memory" or "none"
	CredentialsJSON string
	ProjectID       string
	SQLitePath      string
}

// TracingConfig holds OpenTelemetry exporter configuration
type TracingConfig struct {
	OTLPEndpoint string
	ServiceName  string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("PORT", "8888")
	v.SetDefault("MAX_BODY_BYTES", 1<<20)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("GENERATION_BACKEND", "rest")
	v.SetDefault("GEMINI_MODEL", DefaultGeminiModel)
	v.SetDefault("GEMINI_BASE_URL", DefaultGeminiBaseURL)
	v.SetDefault("STORE_SQLITE_PATH", DefaultSQLitePath)
	v.SetDefault("OTEL_SERVICE_NAME", "science-interview")

	storeType := v.GetString("STORE_TYPE")
	if storeType == "" {
		if v.GetString("FIREBASE_CONFIG") != "" {
			storeType = "firestore"
		} else {
			storeType = "none"
		}
	}

	cfg := &Config{
		Environment:  v.GetString("ENVIRONMENT"),
		Port:         v.GetString("PORT"),
		MaxBodyBytes: v.GetInt64("MAX_BODY_BYTES"),
		CORSOrigin:   v.GetString("CORS_ALLOWED_ORIGIN"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Generation: GenerationConfig{
			Backend: strings.ToLower(v.GetString("GENERATION_BACKEND")),
			APIKey:  v.GetString("GEMINI_API_KEY"),
			Model:   v.GetString("GEMINI_MODEL"),
			BaseURL: strings.TrimRight(v.GetString("GEMINI_BASE_URL"), "/"),
		},
		Store: StoreConfig{
			Type:            strings.ToLower(storeType),
			CredentialsJSON: v.GetString("FIREBASE_CONFIG"),
			ProjectID:       v.GetString("FIREBASE_PROJECT_ID"),
			SQLitePath:      v.GetString("STORE_SQLITE_PATH"),
		},
		Tracing: TracingConfig{
			OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName:  v.GetString("OTEL_SERVICE_NAME"),
		},
	}

	return cfg, nil
}

// Validate reports configuration that cannot produce a working handler.
// A missing API key is only logged by callers; the function still answers login requests.
func (c *Config) Validate() error {
	switch c.Generation.Backend {
	case "rest", "sdk":
	default:
		return fmt.Errorf("unsupported generation backend: %s", c.Generation.Backend)
	}

	switch c.Store.Type {
	case "firestore":
		if c.Store.CredentialsJSON == "" {
			return fmt.Errorf("FIREBASE_CONFIG is required for the firestore store")
		}
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("STORE_SQLITE_PATH is required for the sqlite store")
		}
	case "memory", "none":
	default:
		return fmt.Errorf("unsupported store type: %s", c.Store.Type)
	}

	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}

	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

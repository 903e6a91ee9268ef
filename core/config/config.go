package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	OTel     OTelConfig
	Pipeline PipelineConfig
	Webhook  WebhookConfig
	Env      string
	Port     string
	NodeID   int64
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type PipelineConfig struct {
	RedisURL        string
	RedisStream     string
	TraceHeaderName string
}

type WebhookConfig struct {
	// MaxBodyBytes bounds the inbound payload read by the HTTP layer.
	MaxBodyBytes int64
}

type ServiceType string

const (
	ServiceTypeServer ServiceType = "server"
)

const defaultMaxBodyBytes = 5 << 20

// Load loads configuration from environment variables.
// In development, it loads .env.<service> first and falls back to .env.
func Load(serviceType ServiceType) (Config, error) {
	if getEnv("RELAY_ENV", "development") == "development" {
		envFile := fmt.Sprintf(".env.%s", serviceType)
		if err := godotenv.Load(envFile); err != nil {
			_ = godotenv.Load(".env")
		}
	}

	cfg := Config{
		Env:    getEnv("RELAY_ENV", "development"),
		Port:   getEnv("PORT", "8080"),
		NodeID: getEnvInt64("NODE_ID", 1),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "commit-relay"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		Pipeline: PipelineConfig{
			RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
			RedisStream:     getEnv("REDIS_STREAM", "commit_events"),
			TraceHeaderName: getEnv("TRACE_HEADER_NAME", "X-Trace-Id"),
		},
		Webhook: WebhookConfig{
			MaxBodyBytes: getEnvInt64("WEBHOOK_MAX_BODY_BYTES", defaultMaxBodyBytes),
		},
	}

	if cfg.Pipeline.RedisStream == "" {
		return Config{}, fmt.Errorf("REDIS_STREAM is required")
	}

	if cfg.Webhook.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("WEBHOOK_MAX_BODY_BYTES must be positive, got %d", cfg.Webhook.MaxBodyBytes)
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

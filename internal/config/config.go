package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	TelemetrySinkLog  = "log"
	TelemetrySinkNats = "nats"

	PersistenceMemory = "memory"
	PersistenceRedis  = "redis"
)

type Config struct {
	App       AppConfig
	Settings  SettingsConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string `validate:"required,numeric"`
	Environment        string `validate:"required"`
	LogFilePath        string `validate:"required"`
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type SettingsConfig struct {
	ProfileKey       string        `validate:"required,min=1"`
	MockLatency      time.Duration `validate:"min=0"`
	ExportLatency    time.Duration `validate:"min=0"`
	Persistence      string        `validate:"oneof=memory redis"`
	SnapshotTTL      time.Duration `validate:"min=0"`
	StreamBufferSize int           `validate:"min=1"`
}

type TelemetryConfig struct {
	Sink          string `validate:"oneof=log nats"`
	TracingEnable bool
	OtlpEndpoint  string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/settings.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Settings: SettingsConfig{
			ProfileKey:       getEnv("SETTINGS_PROFILE_KEY", "default"),
			MockLatency:      getEnvAsMillis("MOCK_LATENCY_MS", 800),
			ExportLatency:    getEnvAsMillis("EXPORT_LATENCY_MS", 2000),
			Persistence:      getEnv("PREFERENCES_PERSISTENCE", PersistenceMemory),
			SnapshotTTL:      getEnvAsMillis("SNAPSHOT_TTL_MS", 0),
			StreamBufferSize: getEnvAsInt("STREAM_BUFFER_SIZE", 256),
		},
		Telemetry: TelemetryConfig{
			Sink:          getEnv("TELEMETRY_SINK", TelemetrySinkLog),
			TracingEnable: getEnvAsBool("OTEL_ENABLED", false),
			OtlpEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

var validate = validator.New()

// Validate checks the loaded values. Persistence and sink names must be one
// of the supported backends.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsMillis(key string, fallbackMs int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallbackMs)) * time.Millisecond
}

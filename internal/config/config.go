package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	Environment        string
	CORSAllowedOrigins []string
	RedisURL           string
	SessionTimeUnit    time.Duration

	Database  DatabaseConfig
	Generator GeneratorConfig
	Events    EventConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
}

// DatabaseConfig selects the repository implementation
type DatabaseConfig struct {
	Driver    string // postgres or memory
	URL       string
	AuthToken string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return FromEnv(), nil
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RedisURL:           getEnv("REDIS_URL", ""),
		SessionTimeUnit:    getEnvDuration("SESSION_TIME_UNIT", time.Second),
		Database: DatabaseConfig{
			Driver:    strings.ToLower(getEnv("DATABASE_DRIVER", "postgres")),
			URL:       getEnv("DATABASE_URL", ""),
			AuthToken: getEnv("DATABASE_AUTH_TOKEN", ""),
		},
		Generator: GeneratorConfig{
			Provider:      strings.ToLower(getEnv("GENERATOR_PROVIDER", "")),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			OpenAIModel:   getEnv("OPENAI_MODEL", ""),
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", ""),
			Timeout:       getEnvDuration("GENERATION_TIMEOUT", 30*time.Second),
		},
		Events: EventConfig{
			Enabled:      getEnvBool("EVENTS_ENABLED", false),
			Publisher:    strings.ToLower(getEnv("EVENTS_PUBLISHER", "kafka")),
			KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
			Topic:        getEnv("EVENTS_TOPIC", "interview-coach-events"),
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			LocalPath:      getEnv("STORAGE_LOCAL_PATH", "./uploads"),
			BaseURL:        getEnv("STORAGE_BASE_URL", ""),
			MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
			MinioBucket:    getEnv("MINIO_BUCKET", "resumes"),
			MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvInt("RATE_LIMIT_REQUESTS", 10),
			Window:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsMemory reports whether the in-process repository was requested.
func (d DatabaseConfig) IsMemory() bool {
	return d.Driver == "memory"
}

// Configured reports whether a usable database was provided. Template
// values copied from an example env file count as missing.
func (d DatabaseConfig) Configured() bool {
	if d.IsMemory() {
		return true
	}
	return !isLikelyPlaceholder(d.URL)
}

// DSN returns the connection URL with the auth token applied as the password
// when the URL carries none.
func (d DatabaseConfig) DSN() string {
	if d.AuthToken == "" {
		return d.URL
	}
	parsed, err := url.Parse(d.URL)
	if err != nil || parsed.User == nil || parsed.Scheme == "" {
		return d.URL
	}
	if _, hasPassword := parsed.User.Password(); hasPassword {
		return d.URL
	}
	parsed.User = url.UserPassword(parsed.User.Username(), d.AuthToken)
	return parsed.String()
}

func isLikelyPlaceholder(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return true
	}
	for _, marker := range []string{"<your", "%3c", "your_db", "your-db", "placeholder"} {
		if strings.Contains(v, marker) {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

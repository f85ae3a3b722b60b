package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Auth     AuthConfig
	AI       AIConfig
	Share    ShareConfig
	Log      LogConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Version     string
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StoreConfig selects the record store backing. The memory driver holds all
// collections in process and optionally seeds demo data; postgres is the
// durable backing for real deployments.
type StoreConfig struct {
	Driver   string // "memory" | "postgres"
	SeedDemo bool
	// DemoOwnerID, when set, is treated as a shared second owner: document
	// listings for any user also include documents owned by this id.
	// Empty disables the dual-ownership check.
	DemoOwnerID string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s Timezone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

// AuthConfig covers verification of tokens minted by the external identity
// provider. The service never issues tokens itself.
type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

type AIConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	RequestTimeout time.Duration
}

// ShareConfig controls doctor share links. Links embed a raw token of
// TokenBytes random bytes, hex encoded.
type ShareConfig struct {
	BaseURL    string
	TokenBytes int
}

type LogConfig struct {
	Level      string
	Format     string
	OutputPath string
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
	OTLPURL     string
	SampleRate  float64
}

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "healthvault-api"),
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "0.0.0"),
		},
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Store: StoreConfig{
			Driver:      getEnv("STORE_DRIVER", "memory"),
			SeedDemo:    getEnvBool("STORE_SEED_DEMO", true),
			DemoOwnerID: getEnv("STORE_DEMO_OWNER_ID", ""),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "healthvault"),
			User:            getEnv("DB_USER", "healthvault"),
			Password:        getEnv("DB_PASSWORD", ""),
			SSLMode:         getEnv("DB_SSLMODE", "require"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
			Issuer:    getEnv("AUTH_ISSUER", "healthvault-identity"),
		},
		AI: AIConfig{
			APIKey:         getEnv("AI_API_KEY", ""),
			Model:          getEnv("AI_MODEL", "gemini-2.5-flash"),
			BaseURL:        getEnv("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			RequestTimeout: getEnvDuration("AI_REQUEST_TIMEOUT", 90*time.Second),
		},
		Share: ShareConfig{
			BaseURL:    getEnv("SHARE_BASE_URL", "https://app.healthvault.io/doctor-view"),
			TokenBytes: getEnvInt("SHARE_TOKEN_BYTES", 16),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvBool("TRACING_ENABLED", true),
			ServiceName: getEnv("TRACING_SERVICE_NAME", "healthvault-api"),
			OTLPURL:     getEnv("OTLP_ENDPOINT", "http://otel-collector:4318"),
			SampleRate:  getEnvFloat("TRACING_SAMPLE_RATE", 0.1),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces production security requirements.
func validate(cfg *Config) error {
	var errs []string

	if cfg.Auth.JWTSecret == "" {
		errs = append(errs, "AUTH_JWT_SECRET is required")
	} else if len(cfg.Auth.JWTSecret) < 32 && cfg.App.Environment == "production" {
		errs = append(errs, "AUTH_JWT_SECRET must be at least 32 characters in production")
	}

	if cfg.Store.Driver != "memory" && cfg.Store.Driver != "postgres" {
		errs = append(errs, fmt.Sprintf("STORE_DRIVER %q is not supported (memory, postgres)", cfg.Store.Driver))
	}

	if cfg.Store.Driver == "postgres" {
		if cfg.Database.Password == "" && cfg.App.Environment != "development" {
			errs = append(errs, "DB_PASSWORD is required in non-development environments")
		}
		if cfg.Database.SSLMode == "disable" && cfg.App.Environment == "production" {
			errs = append(errs, "DB_SSLMODE=disable is not allowed in production")
		}
	}

	if cfg.Store.Driver == "memory" && cfg.App.Environment == "production" {
		errs = append(errs, "STORE_DRIVER=memory is not allowed in production")
	}

	if cfg.AI.APIKey == "" && cfg.App.Environment == "production" {
		errs = append(errs, "AI_API_KEY is required in production")
	}

	if cfg.Share.TokenBytes < 16 {
		errs = append(errs, "SHARE_TOKEN_BYTES must be at least 16")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the portal API.
type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	DatabaseURL string
	RedisURL    string

	JWTSecret string
	JWTTTL    time.Duration

	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageRegion    string
	StorageUseSSL    bool

	DocumentLinkTTL   time.Duration
	DashboardCacheTTL time.Duration
	MaxDocumentBytes  int64
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PORTAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Campus Portal API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("storage.bucket", "certificate-documents")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("document.link_ttl", "60s")
	v.SetDefault("dashboard.cache_ttl", "5m")
	v.SetDefault("document.max_bytes", 10<<20)

	jwtTTL, err := time.ParseDuration(v.GetString("jwt.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt ttl: %w", err)
	}

	linkTTL, err := time.ParseDuration(v.GetString("document.link_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid document link ttl: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("dashboard.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName: v.GetString("app.name"),
		AppEnv:  v.GetString("app.env"),
		AppPort: v.GetString("app.port"),

		DatabaseURL: v.GetString("database.url"),
		RedisURL:    v.GetString("redis.url"),

		JWTSecret: v.GetString("jwt.secret"),
		JWTTTL:    jwtTTL,

		StorageEndpoint:  v.GetString("storage.endpoint"),
		StorageAccessKey: v.GetString("storage.access_key"),
		StorageSecretKey: v.GetString("storage.secret_key"),
		StorageBucket:    v.GetString("storage.bucket"),
		StorageRegion:    v.GetString("storage.region"),
		StorageUseSSL:    v.GetBool("storage.use_ssl"),

		DocumentLinkTTL:   linkTTL,
		DashboardCacheTTL: cacheTTL,
		MaxDocumentBytes:  v.GetInt64("document.max_bytes"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = 10 << 20
	}

	return cfg, nil
}

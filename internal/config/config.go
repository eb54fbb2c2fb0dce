package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service. It is
// constructed once at startup and injected by value into every component
// that needs it.
type Config struct {
	AppName     string
	AppEnv      string
	AppPort     string
	DatabaseURL string
	RedisURL    string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	SuperAdminTokenSecret   string
	SuperAdminUsername      string
	SuperAdminPassword      string
	SuperAdminSessionSecret string

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	StudentCacheTTL time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CAMPUS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "CampusCore API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("access_token.ttl", "24h")
	v.SetDefault("refresh_token.ttl", "720h")
	v.SetDefault("cloudinary.folder", "campuscore/uploads")
	v.SetDefault("student.cache_ttl", "5m")

	accessTTL, err := time.ParseDuration(v.GetString("access_token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid access token ttl: %w", err)
	}

	refreshTTL, err := time.ParseDuration(v.GetString("refresh_token.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid refresh token ttl: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("student.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid student cache ttl: %w", err)
	}

	cfg := Config{
		AppName:     v.GetString("app.name"),
		AppEnv:      v.GetString("app.env"),
		AppPort:     v.GetString("app.port"),
		DatabaseURL: v.GetString("database.url"),
		RedisURL:    v.GetString("redis.url"),

		AccessTokenSecret:  v.GetString("access_token.secret"),
		RefreshTokenSecret: v.GetString("refresh_token.secret"),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,

		SuperAdminTokenSecret:   v.GetString("super_admin.token_secret"),
		SuperAdminUsername:      v.GetString("super_admin.username"),
		SuperAdminPassword:      v.GetString("super_admin.password"),
		SuperAdminSessionSecret: v.GetString("super_admin.session_secret"),

		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),

		StudentCacheTTL: cacheTTL,
	}

	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return Config{}, fmt.Errorf("token secrets must be provided")
	}

	if cfg.SuperAdminTokenSecret == "" {
		return Config{}, fmt.Errorf("super admin token secret must be provided")
	}

	return cfg, nil
}

package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	Server    ServerConfig
	CORS      CORSConfig
	Cookie    CookieConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Log       LogConfig
	Seed      SeedConfig
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
}

type CORSConfig struct {
	AllowedOrigins []string
}

type CookieConfig struct {
	Domain string
	Secure bool
}

type StorageConfig struct {
	ImageDir string
}

type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level       string
	Environment string
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminUsername string
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := &Config{
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Database: v.GetString("DB_NAME"),
		},
		JWT: JWTConfig{
			Secret:             v.GetString("JWT_SECRET"),
			AccessTokenExpiry:  v.GetDuration("ACCESS_TOKEN_EXPIRY"),
			RefreshTokenExpiry: v.GetDuration("REFRESH_TOKEN_EXPIRY"),
		},
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			GinMode:         v.GetString("GIN_MODE"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
			MaxUploadBytes:  v.GetInt64("MAX_UPLOAD_BYTES"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(v.GetString("ALLOWED_ORIGINS")),
		},
		Cookie: CookieConfig{
			Domain: v.GetString("COOKIE_DOMAIN"),
			Secure: v.GetBool("COOKIE_SECURE"),
		},
		Storage: StorageConfig{
			ImageDir: v.GetString("IMAGE_DIR"),
		},
		RateLimit: RateLimitConfig{
			Enabled:        v.GetBool("RATE_LIMIT_ENABLED"),
			Capacity:       v.GetInt("RATE_LIMIT_CAPACITY"),
			RefillTokens:   v.GetInt("RATE_LIMIT_REFILL_TOKENS"),
			RefillInterval: v.GetDuration("RATE_LIMIT_REFILL_INTERVAL"),
			TTL:            v.GetDuration("RATE_LIMIT_TTL"),
			Prefix:         v.GetString("RATE_LIMIT_PREFIX"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level:       v.GetString("LOG_LEVEL"),
			Environment: v.GetString("APP_ENV"),
		},
		Seed: SeedConfig{
			AdminEmail:    v.GetString("SEED_ADMIN_EMAIL"),
			AdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),
			AdminUsername: v.GetString("SEED_ADMIN_USERNAME"),
		},
	}

	config.RateLimit.normalize()

	return config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "events_web_app")

	v.SetDefault("JWT_SECRET", "your-jwt-secret-key")
	v.SetDefault("ACCESS_TOKEN_EXPIRY", "15m")
	v.SetDefault("REFRESH_TOKEN_EXPIRY", "168h")

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("MAX_UPLOAD_BYTES", 8<<20)

	v.SetDefault("ALLOWED_ORIGINS", "https://localhost:5173")
	v.SetDefault("COOKIE_DOMAIN", "localhost")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("IMAGE_DIR", "wwwroot/images")

	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_CAPACITY", 20)
	v.SetDefault("RATE_LIMIT_REFILL_TOKENS", 1)
	v.SetDefault("RATE_LIMIT_REFILL_INTERVAL", "3s")
	v.SetDefault("RATE_LIMIT_TTL", "10m")
	v.SetDefault("RATE_LIMIT_PREFIX", "rl")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_ENV", "development")

	v.SetDefault("SEED_ADMIN_EMAIL", "admin@events.local")
	v.SetDefault("SEED_ADMIN_PASSWORD", "admin123")
	v.SetDefault("SEED_ADMIN_USERNAME", "admin")
}

func (c *RateLimitConfig) normalize() {
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.RefillTokens < 1 {
		c.RefillTokens = 1
	}
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	if minTTL := 5 * c.RefillInterval; c.TTL < minTTL {
		c.TTL = minTTL
	}
}

func parseOrigins(s string) []string {
	origins := []string{}
	for _, origin := range strings.Split(s, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

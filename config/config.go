package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// InsecureDefaultSecret is only ever used when APP_ENV=development
	InsecureDefaultSecret = "a-very-weak-default-key-shhh"
)

var ErrMissingSecret = errors.New("SECRET_KEY is not set")

// Config holds every setting read from the environment
type Config struct {
	AppEnv    string
	SecretKey string
	// InsecureSecret is true when the development fallback key is in use
	InsecureSecret bool
	// AdminPassword guards the Admin login; empty disables it
	AdminPassword string
	Port          string
	LogLevel      string
	ClientURL     string

	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
}

// DatabaseConfig selects the store driver and its connection location
type DatabaseConfig struct {
	Driver   string // sqlite, postgres or mysql
	Path     string // sqlite file
	DSN      string // overrides the pieces below when set
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Driver      string // local or s3
	UploadDir   string
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	PublicURL   string
}

// Load reads the configuration from the environment.
// A missing SECRET_KEY is an error unless APP_ENV is development.
func Load() (*Config, error) {
	cfg := LoadWithoutSecret()

	cfg.SecretKey = os.Getenv("SECRET_KEY")
	if cfg.SecretKey == "" {
		if cfg.AppEnv != EnvDevelopment {
			return nil, fmt.Errorf("%w (set APP_ENV=%s to use the insecure default)", ErrMissingSecret, EnvDevelopment)
		}
		cfg.SecretKey = InsecureDefaultSecret
		cfg.InsecureSecret = true
	}
	return cfg, nil
}

// LoadWithoutSecret reads everything except the secret key, for commands
// that never sign anything (init-db).
func LoadWithoutSecret() *Config {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		redisDB = 0
	}

	return &Config{
		AppEnv:        strings.ToLower(getEnv("APP_ENV", EnvProduction)),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		Port:          getEnv("PORT", "5000"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ClientURL:     getEnv("CLIENT_URL", "http://localhost:3000"),
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			Path:     getEnv("DB_PATH", "instance/app.db"),
			DSN:      os.Getenv("DB_DSN"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     os.Getenv("DB_PORT"),
			User:     getEnv("DB_USER", "kidspace"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "kidspace"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
			S3Endpoint:  os.Getenv("S3_ENDPOINT"),
			S3Region:    getEnv("S3_REGION", "auto"),
			S3Bucket:    os.Getenv("S3_BUCKET"),
			S3AccessKey: os.Getenv("S3_ACCESS_KEY_ID"),
			S3SecretKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			PublicURL:   os.Getenv("S3_PUBLIC_URL"),
		},
	}
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

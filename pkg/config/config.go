package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"

	"github.com/GhaniKale/skincare-marketplace/pkg/global"
)

var ErrMissingMongoURI = errors.New("MONGODB_URI is not set")

type Config struct {
	AppEnv   string
	LogLevel string
	Port     string

	MongoURI      string
	MongoDatabase string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	CatalogCacheTTL    time.Duration
	CatalogRefreshSpec string
	RequestTimeout     time.Duration

	CORSOrigins     []string
	AdminAPIKeyHash string

	AzureOpenAIEndpoint   string
	AzureOpenAIKey        string
	AzureOpenAIDeployment string
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		AppEnv:   global.GetEnvOrDefault("APP_ENV", "dev"),
		LogLevel: global.GetEnvOrDefault("LOG_LEVEL", "info"),
		Port:     global.GetEnvOrDefault("PORT", "8000"),

		MongoURI:      global.GetEnvOrDefault("MONGODB_URI", ""),
		MongoDatabase: global.GetEnvOrDefault("MONGODB_DATABASE", "lumiere"),

		RedisAddress:  global.GetEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: global.GetEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       global.GetEnvIntOrDefault("REDIS_DB", 0),

		CatalogCacheTTL:    global.GetEnvDurationOrDefault("CATALOG_CACHE_TTL", 15*time.Minute),
		CatalogRefreshSpec: global.GetEnvOrDefault("CATALOG_REFRESH_SPEC", "@every 10m"),
		RequestTimeout:     global.GetEnvDurationOrDefault("REQUEST_TIMEOUT", 10*time.Second),

		CORSOrigins: global.GetEnvListOrDefault("CORS_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),
		AdminAPIKeyHash: global.GetEnvOrDefault("ADMIN_API_KEY_HASH", ""),

		AzureOpenAIEndpoint:   global.GetEnvOrDefault("AZURE_OPENAI_ENDPOINT", ""),
		AzureOpenAIKey:        global.GetEnvOrDefault("AZURE_OPENAI_API_KEY", ""),
		AzureOpenAIDeployment: global.GetEnvOrDefault("AZURE_OPENAI_DEPLOYMENT_NAME", "gpt-35-turbo"),
	}

	if cfg.MongoURI == "" {
		return Config{}, ErrMissingMongoURI
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

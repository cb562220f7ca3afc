package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/schnose/schnose-bot-go/internal/constants"
)

type Config struct {
	Discord   DiscordConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	GlobalAPI GlobalAPIConfig
	KZGO      KZGOConfig
	Bot       BotConfig
	Metrics   MetricsConfig
	Logging   LoggingConfig
}

type DiscordConfig struct {
	Token   string
	GuildID string // empty = register commands globally
	OwnerID string
}

type PostgresConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type GlobalAPIConfig struct {
	BaseURL   string
	HealthURL string
}

type KZGOConfig struct {
	BaseURL string
}

type BotConfig struct {
	// FetchPlacements controls whether record embeds include leaderboard
	// placement, at the cost of one extra API round trip per category.
	FetchPlacements bool
}

type MetricsConfig struct {
	Addr string // empty = metrics listener disabled
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Discord: DiscordConfig{
			Token:   getEnv("DISCORD_TOKEN", ""),
			GuildID: getEnv("DISCORD_GUILD_ID", ""),
			OwnerID: getEnv("DISCORD_OWNER_ID", ""),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			User:            getEnv("POSTGRES_USER", "schnose"),
			Password:        getEnv("POSTGRES_PASSWORD", ""),
			Database:        getEnv("POSTGRES_DB", "schnose"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		GlobalAPI: GlobalAPIConfig{
			BaseURL:   getEnv("GLOBAL_API_BASE_URL", constants.APIConfig.GlobalAPIBaseURL),
			HealthURL: getEnv("GLOBAL_API_HEALTH_URL", constants.APIConfig.HealthBaseURL),
		},
		KZGO: KZGOConfig{
			BaseURL: getEnv("KZGO_BASE_URL", constants.APIConfig.KZGOBaseURL),
		},
		Bot: BotConfig{
			FetchPlacements: getEnvBool("BOT_FETCH_PLACEMENTS", true),
		},
		Metrics: MetricsConfig{
			Addr: getEnv("METRICS_ADDR", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.Postgres.Host == "" {
		return fmt.Errorf("POSTGRES_HOST is required")
	}
	if c.Postgres.User == "" {
		return fmt.Errorf("POSTGRES_USER is required")
	}
	if c.GlobalAPI.BaseURL == "" {
		return fmt.Errorf("GLOBAL_API_BASE_URL is required")
	}
	if c.KZGO.BaseURL == "" {
		return fmt.Errorf("KZGO_BASE_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Config holds all configuration values
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	APISports APISportsConfig
	Sync      SyncConfig
}

// AppConfig holds service identity
type AppConfig struct {
	Name    string
	Version string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port        string
	Env         string
	CORSOrigins []string
}

// DatabaseConfig holds database configuration.
// URL takes precedence over the discrete fields when set.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the database connection string
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// APISportsConfig holds the external sports API settings
type APISportsConfig struct {
	URL     string
	Key     string
	Host    string
	Season  string
	Timeout time.Duration
}

// SyncConfig controls the scheduled team sync
type SyncConfig struct {
	Enabled  bool
	Schedule string
	Season   string
}

// Load loads configuration from environment variables
func Load() *Config {
	apiURL := strings.TrimRight(getEnv("API_SPORTS_URL", "https://api.example.com"), "/")
	season := getEnv("API_SPORTS_SEASON", "2023")

	return &Config{
		App: AppConfig{
			Name:    getEnv("API_NAME", "Diamond Insights API"),
			Version: getEnv("API_VERSION", "1.0.0"),
		},
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			Env:         getEnv("SERVER_ENV", "development"),
			CORSOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "diamond_insights"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		APISports: APISportsConfig{
			URL:     apiURL,
			Key:     getEnv("API_SPORTS_KEY", "your-api-key-here"),
			Host:    getEnv("API_SPORTS_HOST", hostOf(apiURL)),
			Season:  season,
			Timeout: getEnvAsDuration("API_SPORTS_TIMEOUT", 10*time.Second),
		},
		Sync: SyncConfig{
			Enabled:  getEnvAsBool("TEAM_SYNC_ENABLED", false),
			Schedule: getEnv("TEAM_SYNC_SCHEDULE", "0 6 * * *"),
			Season:   getEnv("TEAM_SYNC_SEASON", season),
		},
	}
}

// Validate checks the values that would otherwise fail late at request time
func (c *Config) Validate() error {
	u, err := url.Parse(c.APISports.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_SPORTS_URL %q", c.APISports.URL)
	}
	if c.APISports.Timeout <= 0 {
		return errors.New("API_SPORTS_TIMEOUT must be positive")
	}
	if c.Sync.Enabled {
		if _, err := cron.ParseStandard(c.Sync.Schedule); err != nil {
			return fmt.Errorf("invalid TEAM_SYNC_SCHEDULE %q: %w", c.Sync.Schedule, err)
		}
	}
	return nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

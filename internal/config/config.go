// Package config loads the application configuration from environment
// variables, with optional .env support for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backend selector values
const (
	BackendPostgres = "postgres"
	BackendRESTAPI  = "restapi"
	BackendJSONFile = "jsonfile"
)

// Config holds the application configuration
type Config struct {
	Environment string
	ServiceName string
	Version     string
	LogLevel    string
	LogFormat   string
	LogDir      string

	Port   int
	APIKey string // API key protecting the HTTP API routes

	DiscordToken string
	DiscordAppID string

	// TrackedVoiceChannels are the voice channel IDs whose occupancy is
	// converted into work XP.
	TrackedVoiceChannels []string
	// AnnouncementChannelID receives voice XP announcements. Empty
	// disables announcements.
	AnnouncementChannelID string

	StoreBackend string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	RESTBaseURL string
	RESTAPIKey  string

	JSONFilePath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't.
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "habitbot"),
		Version:     getEnv("VERSION", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),

		APIKey: getEnv("API_KEY", ""),

		DiscordToken: getEnv("DISCORD_TOKEN", ""),
		DiscordAppID: getEnv("DISCORD_APP_ID", ""),

		TrackedVoiceChannels:  splitCSV(getEnv("TRACKED_VOICE_CHANNEL_IDS", "")),
		AnnouncementChannelID: getEnv("XP_ANNOUNCEMENT_CHANNEL_ID", ""),

		StoreBackend: getEnv("STORE_BACKEND", BackendPostgres),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "habitbot"),

		RESTBaseURL: getEnv("REST_STORE_URL", ""),
		RESTAPIKey:  getEnv("REST_STORE_KEY", ""),

		JSONFilePath: getEnv("JSON_STORE_PATH", "habitbot.json"),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN environment variable must be set")
	}

	switch c.StoreBackend {
	case BackendPostgres, BackendJSONFile:
	case BackendRESTAPI:
		if c.RESTBaseURL == "" || c.RESTAPIKey == "" {
			return fmt.Errorf("REST_STORE_URL and REST_STORE_KEY must be set for the restapi backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (expected %s, %s or %s)",
			c.StoreBackend, BackendPostgres, BackendRESTAPI, BackendJSONFile)
	}

	return nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// splitCSV splits a comma-separated list, dropping empty items.
func splitCSV(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	cfg, err := FromLookup(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}
	return cfg
}

// FromLookup builds a Config from the given lookup function. Required keys
// that are missing are reported together.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	getOptional := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:    getEnv("DB_NAME"),
		Port:      getEnv("PORT"),
		RosterURL: getEnv("ROSTER_URL"),
		LogLevel:  getOptional("LOG_LEVEL", "info"),
		Slack: SlackConfig{
			Token:     getOptional("SLACK_BOT_TOKEN", ""),
			ChannelID: getOptional("SLACK_CHANNEL_ID", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getOptional("TURSO_PRIMARY_URL", ""),
			AuthToken:  getOptional("TURSO_AUTH_TOKEN", ""),
		},
		FetchTimeout: defaultFetchTimeout,
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %v", missing)
	}

	if raw, ok := lookup("FETCH_TIMEOUT"); ok && raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout < 0 {
			return Config{}, fmt.Errorf("invalid FETCH_TIMEOUT %q", raw)
		}
		cfg.FetchTimeout = timeout
	}
	if raw, ok := lookup("ALLOW_SOURCE_OVERRIDE"); ok && raw != "" {
		allow, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ALLOW_SOURCE_OVERRIDE %q", raw)
		}
		cfg.AllowSourceOverride = allow
	}
	if raw, ok := lookup("SLACK_DRY_RUN"); ok && raw != "" {
		dryRun, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SLACK_DRY_RUN %q", raw)
		}
		cfg.Slack.DryRun = dryRun
	}
	return cfg, nil
}

package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	RosterURL string
	// AllowSourceOverride lets POST /fetch load from a caller-supplied url.
	AllowSourceOverride bool
	FetchTimeout        time.Duration
	LogLevel            string
	Slack               SlackConfig
	Turso               TursoConfig
}
type SlackConfig struct {
	Token     string
	ChannelID string
	// DryRun logs alerts instead of posting them.
	DryRun bool
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// Enabled reports whether Slack alerts are configured.
func (c SlackConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}

const defaultFetchTimeout = 10 * time.Second

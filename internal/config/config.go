package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
// It exits the process when the configuration is incomplete.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var errs []error

	// A helper function to get a required env var.
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		errs = append(errs, fmt.Errorf("required environment variable %s is not set", key))
		return ""
	}
	getEnvDefault := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}
	getDuration := func(key string, fallback time.Duration) time.Duration {
		value, ok := lookup(key)
		if !ok || value == "" {
			return fallback
		}
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("environment variable %s must be a positive duration, got %q", key, value))
			return fallback
		}
		return d
	}
	getInt := func(key string, fallback int) int {
		value, ok := lookup(key)
		if !ok || value == "" {
			return fallback
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			errs = append(errs, fmt.Errorf("environment variable %s must be a positive integer, got %q", key, value))
			return fallback
		}
		return n
	}

	cfg := Config{
		DBName: getEnv("DB_NAME"),
		Port:   getEnvDefault("PORT", "8080"),
		Turso: TursoConfig{
			PrimaryURL: getEnvDefault("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnvDefault("TURSO_AUTH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:     getEnvDefault("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnvDefault("SLACK_CHANNEL_ID", ""),
		},
		ProjectID: getEnvDefault("GCP_PROJECT", ""),
		Notifier: NotifierConfig{
			Kind:        getEnvDefault("NOTIFIER", NotifierSlack),
			Topic:       getEnvDefault("NOTIFICATION_TOPIC", "crewboard-notifications"),
			Timeout:     getDuration("NOTIFY_TIMEOUT", 10*time.Second),
			Concurrency: getInt("NOTIFY_CONCURRENCY", 8),
		},
		Profile: PeerConfig{
			BaseURL:   getEnv("PROFILE_BASE_URL"),
			Timeout:   getDuration("PROFILE_TIMEOUT", 5*time.Second),
			AuthToken: getEnvDefault("PROFILE_AUTH_TOKEN", ""),
		},
		SaveMaxAttempts: getInt("SAVE_MAX_ATTEMPTS", 3),
	}

	switch cfg.Notifier.Kind {
	case NotifierSlack:
		getEnv("SLACK_BOT_TOKEN")
	case NotifierPubSub:
		getEnv("GCP_PROJECT")
	default:
		errs = append(errs, fmt.Errorf("NOTIFIER must be %q or %q, got %q", NotifierSlack, NotifierPubSub, cfg.Notifier.Kind))
	}

	return cfg, errors.Join(errs...)
}

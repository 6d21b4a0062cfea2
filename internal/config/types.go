package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName          string
	Port            string
	Turso           TursoConfig
	Slack           SlackConfig
	ProjectID       string
	Notifier        NotifierConfig
	Profile         PeerConfig
	SaveMaxAttempts int
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

// NotifierConfig selects and tunes the notification gateway.
type NotifierConfig struct {
	Kind        string // "slack" or "pubsub"
	Topic       string
	Timeout     time.Duration
	Concurrency int
}

// PeerConfig is the connection block for a peer HTTP service.
type PeerConfig struct {
	BaseURL   string
	Timeout   time.Duration
	AuthToken string
}

const (
	NotifierSlack  = "slack"
	NotifierPubSub = "pubsub"
)

package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub.
// It travels as the "event" attribute of every message.
type EventType string

const (
	EventNotify EventType = "notify"
)

// PushRequest is the envelope Pub/Sub posts to push subscriptions.
type PushRequest struct {
	Message struct {
		Data       []byte            `json:"data"`
		ID         string            `json:"messageId"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

package pubsub

import "context"

type PubSubClient interface {
	SendMessage(ctx context.Context, topic string, event EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
	Close() error
}

// Package bus hands notifications to Pub/Sub so a push subscriber can deliver them later.
package bus

import (
	"context"
	"fmt"

	"github.com/mauv0809/crewboard/internal/notifier"
	"github.com/mauv0809/crewboard/internal/pubsub"
)

var _ notifier.Notifier = &Notifier{}

// Notifier publishes every notification to a topic.
type Notifier struct {
	client pubsub.PubSubClient
	topic  string
}

// NewNotifier creates a new Notifier publishing to topic.
func NewNotifier(client pubsub.PubSubClient, topic string) *Notifier {
	return &Notifier{client: client, topic: topic}
}

func (b *Notifier) Notify(ctx context.Context, n notifier.Notification) error {
	if err := b.client.SendMessage(ctx, b.topic, pubsub.EventNotify, n); err != nil {
		return fmt.Errorf("failed to publish notification for user %s: %w", n.UserID, err)
	}
	return nil
}

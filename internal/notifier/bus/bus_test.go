package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/crewboard/internal/activity"
	"github.com/mauv0809/crewboard/internal/notifier"
	"github.com/mauv0809/crewboard/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestNotify_Publishes(t *testing.T) {
	client := pubsub.NewMock()
	b := NewNotifier(client, "crewboard-notifications")

	n := notifier.Notification{UserID: "u1", ActivityID: "a1", Status: activity.StatusChanges, NewDate: "2026-10-27T10:00:00Z", NewLocation: "Bagsværd"}
	require.NoError(t, b.Notify(context.Background(), n))

	require.Len(t, client.SendMessageCalls, 1)
	call := client.SendMessageCalls[0]
	assert.Equal(t, "crewboard-notifications", call.Topic)
	assert.Equal(t, pubsub.EventNotify, call.Event)

	// The subscriber decodes what the publisher encodes.
	data, err := msgpack.Marshal(call.Data)
	require.NoError(t, err)
	var decoded notifier.Notification
	require.NoError(t, client.ProcessMessage(data, &decoded))
	assert.Equal(t, n, decoded)
}

func TestNotify_PublishError(t *testing.T) {
	client := pubsub.NewMock()
	client.SendMessageFunc = func(ctx context.Context, topic string, event pubsub.EventType, data any) error {
		return errors.New("topic not found")
	}
	b := NewNotifier(client, "missing")

	err := b.Notify(context.Background(), notifier.Notification{UserID: "u1", ActivityID: "a1", Status: activity.StatusAccepted})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "topic not found")
}

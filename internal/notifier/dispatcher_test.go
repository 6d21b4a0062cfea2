package notifier

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mauv0809/crewboard/internal/activity"
	"github.com/mauv0809/crewboard/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_Delivers(t *testing.T) {
	gateway := NewMock()
	m := metrics.NewMock()
	d := NewDispatcher(gateway, m, time.Second, 4)

	d.Dispatch(context.Background(), Notification{UserID: "u1", ActivityID: "a1", Status: activity.StatusAccepted})
	d.Dispatch(context.Background(), Notification{UserID: "u2", ActivityID: "a1", Status: activity.StatusActivityFull})
	d.Wait()

	assert.Len(t, gateway.Calls(), 2)
	assert.Equal(t, 1, m.NotificationsSent(string(activity.StatusAccepted)))
	assert.Equal(t, 1, m.NotificationsSent(string(activity.StatusActivityFull)))
}

func TestDispatcher_FailureIsCounted(t *testing.T) {
	gateway := NewMock()
	gateway.NotifyFunc = func(ctx context.Context, n Notification) error {
		return errors.New("slack is down")
	}
	m := metrics.NewMock()
	d := NewDispatcher(gateway, m, time.Second, 1)

	d.Dispatch(context.Background(), Notification{UserID: "u1", ActivityID: "a1", Status: activity.StatusKicked})
	d.Wait()

	assert.Equal(t, 1, m.NotificationsFailed(string(activity.StatusKicked)))
	assert.Equal(t, 0, m.NotificationsSent(string(activity.StatusKicked)))
}

func TestDispatcher_TimeoutIsAFailure(t *testing.T) {
	gateway := NewMock()
	gateway.NotifyFunc = func(ctx context.Context, n Notification) error {
		<-ctx.Done()
		return ctx.Err()
	}
	m := metrics.NewMock()
	d := NewDispatcher(gateway, m, 20*time.Millisecond, 1)

	d.Dispatch(context.Background(), Notification{UserID: "u1", ActivityID: "a1", Status: activity.StatusChanges})
	d.Wait()

	assert.Equal(t, 1, m.NotificationsFailed(string(activity.StatusChanges)))
}

func TestDispatcher_DetachedFromCallerCancellation(t *testing.T) {
	gateway := NewMock()
	var cancelled atomic.Bool
	gateway.NotifyFunc = func(ctx context.Context, n Notification) error {
		cancelled.Store(ctx.Err() != nil)
		return nil
	}
	d := NewDispatcher(gateway, metrics.NewMock(), time.Second, 1)

	ctx, cancel := context.WithCancel(WithDryRun(context.Background(), true))
	cancel()
	d.Dispatch(ctx, Notification{UserID: "u1", ActivityID: "a1", Status: activity.StatusAccepted})
	d.Wait()

	assert.False(t, cancelled.Load())
	calls := gateway.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].DryRun)
}

func TestDispatcher_BoundedConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	gateway := NewMock()
	gateway.NotifyFunc = func(ctx context.Context, n Notification) error {
		cur := inFlight.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	}
	d := NewDispatcher(gateway, metrics.NewMock(), time.Second, 2)

	for i := 0; i < 10; i++ {
		d.Dispatch(context.Background(), Notification{UserID: "u", ActivityID: "a1", Status: activity.StatusChanges})
	}
	d.Wait()

	assert.Len(t, gateway.Calls(), 10)
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestDispatcher_BlocksWhileSlotsAreBusy(t *testing.T) {
	release := make(chan struct{})
	gateway := NewMock()
	gateway.NotifyFunc = func(ctx context.Context, n Notification) error {
		<-release
		return nil
	}
	d := NewDispatcher(gateway, metrics.NewMock(), time.Second, 1)

	d.Dispatch(context.Background(), Notification{UserID: "u1", ActivityID: "a1", Status: activity.StatusAccepted})

	returned := make(chan struct{})
	go func() {
		d.Dispatch(context.Background(), Notification{UserID: "u2", ActivityID: "a1", Status: activity.StatusActivityFull})
		close(returned)
	}()

	select {
	case <-returned:
		t.Fatal("Dispatch returned while the only slot was busy")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Dispatch did not return after the slot was freed")
	}
	d.Wait()
	assert.Len(t, gateway.Calls(), 2)
}
